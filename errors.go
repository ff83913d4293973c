package jxl

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSignature = errors.New("jxl: not a JXL container or codestream")
	ErrNoCodestream     = errors.New("jxl: no jxlc/jxlp box found")
	ErrMagicMismatch    = errors.New("jxl: extracted codestream has wrong magic bytes")
)

// MalformedBoxError reports a box whose declared size cannot be satisfied:
// smaller than its own header, or extending past the end of the stream.
type MalformedBoxError struct {
	Type   BoxType
	Size   int64
	Offset int64
}

func (e *MalformedBoxError) Error() string {
	return fmt.Sprintf("jxl: malformed %q box at offset %d: size %d", e.Type, e.Offset, e.Size)
}
