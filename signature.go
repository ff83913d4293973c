package jxl

import (
	"bytes"
	"io"
	"os"
)

// Signature classifies the leading bytes of a JXL file.
type Signature int

const (
	SignatureInvalid   Signature = iota
	SignatureContainer           // ISOBMFF-style container, codestream carried in boxes
	SignatureBare                // bare codestream with no container framing
)

func (s Signature) String() string {
	switch s {
	case SignatureContainer:
		return "container"
	case SignatureBare:
		return "bare codestream"
	}
	return "invalid"
}

// containerPrefix is the size field of the fixed 12-byte signature box.
var containerPrefix = []byte{0x00, 0x00, 0x00, 0x0C}

// Codestream magic bytes.
const (
	magic0 = 0xFF
	magic1 = 0x0A
)

// DetectSignature classifies a file prefix (up to the first 12 bytes) by
// pure byte-pattern matching; it never inspects later content.
func DetectSignature(prefix []byte) Signature {
	if len(prefix) >= 4 && bytes.Equal(prefix[:4], containerPrefix) {
		return SignatureContainer
	}
	if len(prefix) >= 2 && prefix[0] == magic0 && prefix[1] == magic1 {
		return SignatureBare
	}
	return SignatureInvalid
}

// CheckMagic reports whether data begins with the two codestream magic bytes.
func CheckMagic(data []byte) bool {
	return len(data) >= 2 && data[0] == magic0 && data[1] == magic1
}

// VerifyFile reports whether the file at path begins with a recognized JXL
// signature, either form.
func VerifyFile(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	var sig [12]byte
	n, err := io.ReadFull(f, sig[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		return false
	}
	return DetectSignature(sig[:n]) != SignatureInvalid
}
