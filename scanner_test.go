package jxl

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"testing"
)

// rawBox builds a box with an 8-byte header.
func rawBox(typ string, payload []byte) []byte {
	buf := make([]byte, 8+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], uint32(8+len(payload)))
	copy(buf[4:8], typ)
	copy(buf[8:], payload)
	return buf
}

// rawBoxExt builds a box with a 16-byte extended-size header.
func rawBoxExt(typ string, payload []byte) []byte {
	buf := make([]byte, 16+len(payload))
	binary.BigEndian.PutUint32(buf[0:4], 1)
	copy(buf[4:8], typ)
	binary.BigEndian.PutUint64(buf[8:16], uint64(16+len(payload)))
	copy(buf[16:], payload)
	return buf
}

func TestScannerBasic(t *testing.T) {
	t.Parallel()

	data := append(rawBox("abcd", []byte{1, 2, 3}), rawBox("efgh", nil)...)
	sc := NewScanner(bytes.NewReader(data))

	if !sc.Next() {
		t.Fatalf("Next failed on first box: %v", sc.Err())
	}
	e := sc.Entry()
	if e.Type != (BoxType{'a', 'b', 'c', 'd'}) {
		t.Errorf("expected type abcd, got %s", e.Type)
	}
	if e.Size != 11 || e.Offset != 0 || e.HeaderSize != 8 {
		t.Errorf("unexpected entry: %+v", e)
	}
	if e.DataSize() != 3 {
		t.Errorf("expected data size 3, got %d", e.DataSize())
	}

	if !sc.Next() {
		t.Fatalf("Next failed on second box: %v", sc.Err())
	}
	e = sc.Entry()
	if e.Type.String() != "efgh" || e.Offset != 11 || e.Size != 8 {
		t.Errorf("unexpected entry: %+v", e)
	}

	if sc.Next() {
		t.Error("expected end of stream")
	}
	if sc.Err() != nil {
		t.Errorf("unexpected error: %v", sc.Err())
	}
}

func TestScannerExtendedSize(t *testing.T) {
	t.Parallel()

	payload := []byte{9, 9, 9, 9, 9}
	data := append(rawBoxExt("abcd", payload), rawBox("efgh", nil)...)
	sc := NewScanner(bytes.NewReader(data))

	if !sc.Next() {
		t.Fatalf("Next failed: %v", sc.Err())
	}
	e := sc.Entry()
	if e.HeaderSize != 16 {
		t.Errorf("expected header size 16, got %d", e.HeaderSize)
	}
	if e.Size != int64(16+len(payload)) {
		t.Errorf("expected size %d, got %d", 16+len(payload), e.Size)
	}

	// The extended box must be skipped by its 64-bit span, not 8 bytes.
	if !sc.Next() {
		t.Fatalf("Next failed after extended box: %v", sc.Err())
	}
	if sc.Entry().Type.String() != "efgh" {
		t.Errorf("expected efgh, got %s", sc.Entry().Type)
	}
}

func TestScannerReadBody(t *testing.T) {
	t.Parallel()

	payload := []byte{0xAA, 0xBB, 0xCC}
	data := append(rawBox("abcd", payload), rawBox("efgh", []byte{0xDD})...)
	sc := NewScanner(bytes.NewReader(data))

	if !sc.Next() {
		t.Fatalf("Next failed: %v", sc.Err())
	}
	buf := make([]byte, sc.Entry().DataSize())
	if err := sc.ReadBody(buf); err != nil {
		t.Fatalf("ReadBody failed: %v", err)
	}
	if !bytes.Equal(buf, payload) {
		t.Errorf("expected %x, got %x", payload, buf)
	}

	// Position must be restored so iteration continues.
	if !sc.Next() {
		t.Fatalf("Next failed after ReadBody: %v", sc.Err())
	}
	if sc.Entry().Type.String() != "efgh" {
		t.Errorf("expected efgh, got %s", sc.Entry().Type)
	}
}

func TestScannerStartsAtCurrentPosition(t *testing.T) {
	t.Parallel()

	data := append(make([]byte, 12), rawBox("abcd", []byte{1})...)
	r := bytes.NewReader(data)
	if _, err := r.Seek(12, io.SeekStart); err != nil {
		t.Fatal(err)
	}
	sc := NewScanner(r)

	if !sc.Next() {
		t.Fatalf("Next failed: %v", sc.Err())
	}
	if sc.Entry().Offset != 12 {
		t.Errorf("expected offset 12, got %d", sc.Entry().Offset)
	}
}

func TestScannerZeroSize(t *testing.T) {
	t.Parallel()

	data := make([]byte, 8)
	copy(data[4:8], "abcd")
	sc := NewScanner(bytes.NewReader(data))

	if sc.Next() {
		t.Fatal("expected Next to fail on zero-size box")
	}
	var mbe *MalformedBoxError
	if !errors.As(sc.Err(), &mbe) {
		t.Fatalf("expected MalformedBoxError, got %v", sc.Err())
	}
	if mbe.Size != 0 || mbe.Offset != 0 {
		t.Errorf("unexpected error fields: %+v", mbe)
	}
}

func TestScannerSizeSmallerThanHeader(t *testing.T) {
	t.Parallel()

	data := rawBox("abcd", nil)
	binary.BigEndian.PutUint32(data[0:4], 5)
	sc := NewScanner(bytes.NewReader(data))

	if sc.Next() {
		t.Fatal("expected Next to fail")
	}
	var mbe *MalformedBoxError
	if !errors.As(sc.Err(), &mbe) {
		t.Fatalf("expected MalformedBoxError, got %v", sc.Err())
	}
}

func TestScannerBoxPastEOF(t *testing.T) {
	t.Parallel()

	data := rawBox("abcd", []byte{1, 2})
	binary.BigEndian.PutUint32(data[0:4], 1000)
	sc := NewScanner(bytes.NewReader(data))

	if sc.Next() {
		t.Fatal("expected Next to fail")
	}
	var mbe *MalformedBoxError
	if !errors.As(sc.Err(), &mbe) {
		t.Fatalf("expected MalformedBoxError, got %v", sc.Err())
	}
	if mbe.Size != 1000 {
		t.Errorf("expected size 1000 in error, got %d", mbe.Size)
	}
}

func TestScannerTruncatedHeader(t *testing.T) {
	t.Parallel()

	// Fewer than 8 bytes left is the normal end of the stream.
	for _, n := range []int{0, 1, 4, 7} {
		sc := NewScanner(bytes.NewReader(make([]byte, n)))
		if sc.Next() {
			t.Errorf("n=%d: expected end of stream", n)
		}
		if sc.Err() != nil {
			t.Errorf("n=%d: unexpected error: %v", n, sc.Err())
		}
	}
}
