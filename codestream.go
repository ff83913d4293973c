package jxl

import (
	"bytes"
	"io"
	"log/slog"
	"sort"
)

// Segment is one ordered piece of the codestream. A jxlc box produces a
// single segment with index 0; jxlp boxes carry an explicit index because
// they may appear in the file in any order.
type Segment struct {
	Index   uint32
	Payload []byte
}

// collectSegments drives the scanner over the box stream, gathering
// codestream segments. A jxlc box is authoritative: its payload is the
// whole codestream and no further boxes are read. jxlp boxes accumulate
// until the stream ends. All other box types are skipped without reading
// their payloads.
func collectSegments(sc *Scanner) ([]Segment, error) {
	var segs []Segment
	for sc.Next() {
		e := sc.Entry()
		switch e.Type {
		case TypeJxlc:
			slog.Debug("found jxlc box", "offset", e.Offset, "size", e.Size)
			buf := make([]byte, e.DataSize())
			if err := sc.ReadBody(buf); err != nil {
				return nil, err
			}
			segs = append(segs, Segment{Index: 0, Payload: buf})
			return segs, nil
		case TypeJxlp:
			// Payload is a 4-byte big-endian index followed by codestream bytes.
			if e.DataSize() < 4 {
				return nil, &MalformedBoxError{Type: e.Type, Size: e.Size, Offset: e.Offset}
			}
			buf := make([]byte, e.DataSize())
			if err := sc.ReadBody(buf); err != nil {
				return nil, err
			}
			seg := Segment{Index: be.Uint32(buf[:4]), Payload: buf[4:]}
			slog.Debug("found jxlp box", "offset", e.Offset, "size", e.Size, "index", seg.Index)
			segs = append(segs, seg)
		default:
			slog.Debug("skipping box", "type", e.Type.String(), "offset", e.Offset, "size", e.Size)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, ErrNoCodestream
	}
	return segs, nil
}

// mergeSegments reassembles segments into one contiguous codestream,
// ordered by index rather than file order. A single segment is returned
// as-is without copying. The sort is stable so equal indices keep their
// file order.
func mergeSegments(segs []Segment) []byte {
	if len(segs) == 1 {
		return segs[0].Payload
	}
	sort.SliceStable(segs, func(i, j int) bool {
		return segs[i].Index < segs[j].Index
	})
	n := 0
	for _, s := range segs {
		n += len(s.Payload)
	}
	out := make([]byte, 0, n)
	for _, s := range segs {
		out = append(out, s.Payload...)
	}
	return out
}

// Codestream extracts the bare codestream from an in-memory JXL image.
// Bare input is returned unchanged. For container input the codestream is
// reassembled from its boxes. If the assembled bytes do not begin with the
// codestream magic, they are still returned alongside ErrMagicMismatch so
// the caller can inspect them.
func Codestream(data []byte) ([]byte, error) {
	switch DetectSignature(data) {
	case SignatureBare:
		return data, nil
	case SignatureContainer:
		r := bytes.NewReader(data)
		if _, err := r.Seek(12, io.SeekStart); err != nil {
			return nil, err
		}
		sc := NewScanner(r)
		segs, err := collectSegments(&sc)
		if err != nil {
			return nil, err
		}
		merged := mergeSegments(segs)
		if !CheckMagic(merged) {
			return merged, ErrMagicMismatch
		}
		return merged, nil
	}
	return nil, ErrInvalidSignature
}
