// Package jxl implements reading and writing of the ISOBMFF-style container
// used by JPEG XL files, and extraction of the bare codestream from it.
package jxl

import "encoding/binary"

var be = binary.BigEndian

// BoxType is a 4-byte box type identifier.
type BoxType [4]byte

func (t BoxType) String() string {
	return string(t[:])
}

// Known box types.
var (
	TypeJXL  = BoxType{'J', 'X', 'L', ' '} // Signature box (always the fixed 12-byte form)
	TypeFtyp = BoxType{'f', 't', 'y', 'p'}
	TypeJxlc = BoxType{'j', 'x', 'l', 'c'} // Complete codestream
	TypeJxlp = BoxType{'j', 'x', 'l', 'p'} // Partial codestream with ordering index
	TypeJxll = BoxType{'j', 'x', 'l', 'l'} // Codestream level
	TypeJbrd = BoxType{'j', 'b', 'r', 'd'} // JPEG bitstream reconstruction data
	TypeExif = BoxType{'E', 'x', 'i', 'f'}
	TypeXML  = BoxType{'x', 'm', 'l', ' '}
	TypeBrob = BoxType{'b', 'r', 'o', 'b'} // Brotli-compressed metadata box
	TypeJumb = BoxType{'j', 'u', 'm', 'b'} // JUMBF metadata
)

// IsCodestreamBox returns true if the box type carries codestream bytes.
func IsCodestreamBox(t BoxType) bool {
	switch t {
	case TypeJxlc, TypeJxlp:
		return true
	}
	return false
}
