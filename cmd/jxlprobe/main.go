// Command jxlprobe reads a JXL file and prints its box structure.
package main

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"

	"github.com/tetsuo/jxl"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.jxl>\n", os.Args[0])
		os.Exit(1)
	}

	f, err := os.Open(os.Args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
	defer f.Close()

	var sig [12]byte
	n, err := io.ReadFull(f, sig[:])
	if err != nil && err != io.ErrUnexpectedEOF {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	kind := jxl.DetectSignature(sig[:n])
	fmt.Printf("signature: %s\n", kind)

	switch kind {
	case jxl.SignatureBare:
		return
	case jxl.SignatureInvalid:
		os.Exit(1)
	}

	sc := jxl.NewScanner(f)
	for sc.Next() {
		e := sc.Entry()
		fmt.Printf("[%s] offset=%d size=%d header=%d%s\n",
			e.Type, e.Offset, e.Size, e.HeaderSize, boxInfo(&sc, e))
	}
	if err := sc.Err(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func boxInfo(sc *jxl.Scanner, e jxl.ScanEntry) string {
	switch e.Type {
	case jxl.TypeJxlc:
		return fmt.Sprintf(" codestream=%d bytes", e.DataSize())
	case jxl.TypeJxlp:
		if e.DataSize() < 4 {
			return " (truncated)"
		}
		buf := make([]byte, e.DataSize())
		if err := sc.ReadBody(buf); err != nil {
			return ""
		}
		return fmt.Sprintf(" index=%d partial=%d bytes", binary.BigEndian.Uint32(buf[:4]), e.DataSize()-4)
	}
	return ""
}
