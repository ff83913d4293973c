package jxl

import (
	"fmt"
	"io"
	"log/slog"
	"os"
)

// Result reports the byte counts of one extraction.
type Result struct {
	ContainerSize  int64 // size of the input file
	CodestreamSize int64 // size of the written codestream
}

// Overhead returns the number of container framing bytes removed.
func (r Result) Overhead() int64 {
	return r.ContainerSize - r.CodestreamSize
}

// Extract reads the JXL file at input and writes its bare codestream to
// output. Bare input is copied byte-for-byte. Container input has its
// codestream reassembled from jxlc/jxlp boxes and written as one buffer.
//
// The output file is written before the magic check runs: on
// ErrMagicMismatch the (possibly unusable) bytes stay on disk for
// inspection, and the existing file at output is never rolled back.
func Extract(input, output string) (Result, error) {
	f, err := os.Open(input)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	var sig [12]byte
	n, err := io.ReadFull(f, sig[:])
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return Result{}, err
	}

	switch DetectSignature(sig[:n]) {
	case SignatureBare:
		slog.Debug("bare codestream detected, copying", "input", input)
		return copyBare(f, output)
	case SignatureContainer:
		slog.Debug("container detected", "input", input)
	default:
		return Result{}, ErrInvalidSignature
	}

	// Boxes begin right after the 12-byte signature box.
	sc := NewScanner(f)
	segs, err := collectSegments(&sc)
	if err != nil {
		return Result{}, err
	}
	merged := mergeSegments(segs)
	if len(segs) > 1 {
		slog.Debug("merged jxlp boxes", "count", len(segs), "bytes", len(merged))
	}

	fi, err := f.Stat()
	if err != nil {
		return Result{}, err
	}
	res := Result{
		ContainerSize:  fi.Size(),
		CodestreamSize: int64(len(merged)),
	}

	if err := os.WriteFile(output, merged, 0o644); err != nil {
		return res, fmt.Errorf("jxl: writing codestream: %w", err)
	}
	slog.Debug("extracted codestream", "output", output, "bytes", len(merged))

	// Deliberately after the write; see above.
	if !CheckMagic(merged) {
		return res, ErrMagicMismatch
	}
	return res, nil
}

// copyBare copies the already-open input (positioned anywhere) to output
// byte-for-byte.
func copyBare(f *os.File, output string) (Result, error) {
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return Result{}, err
	}
	out, err := os.Create(output)
	if err != nil {
		return Result{}, err
	}
	n, err := io.Copy(out, f)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return Result{}, fmt.Errorf("jxl: copying codestream: %w", err)
	}
	return Result{ContainerSize: n, CodestreamSize: n}, nil
}
