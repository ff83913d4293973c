package jxl

// maxDepth limits the writer's box nesting stack.
const maxDepth = 16

// writerFrame tracks the start offset of a box for size backpatching.
type writerFrame struct {
	offset int
}

// Writer encodes container boxes into a byte buffer.
type Writer struct {
	buf   []byte
	pos   int
	stack [maxDepth]writerFrame
	depth int
}

// NewWriter creates a Writer that writes into buf.
func NewWriter(buf []byte) Writer {
	return Writer{buf: buf[:cap(buf)]}
}

// Bytes returns the written data.
func (w *Writer) Bytes() []byte {
	return w.buf[:w.pos]
}

// Len returns the number of bytes written.
func (w *Writer) Len() int { return w.pos }

// putUint32 appends a big-endian uint32.
func (w *Writer) putUint32(v uint32) {
	be.PutUint32(w.buf[w.pos:], v)
	w.pos += 4
}

// putBytes appends raw bytes.
func (w *Writer) putBytes(p []byte) {
	copy(w.buf[w.pos:], p)
	w.pos += len(p)
}

// Reset resets the writer position to 0.
func (w *Writer) Reset() {
	w.pos = 0
	w.depth = 0
}

// StartBox begins a new box. Write content, then call EndBox.
func (w *Writer) StartBox(t BoxType) {
	w.stack[w.depth] = writerFrame{offset: w.pos}
	w.depth++
	w.putUint32(0) // placeholder size
	w.putBytes(t[:])
}

// EndBox finishes the current box by backpatching its size.
func (w *Writer) EndBox() {
	w.depth--
	f := w.stack[w.depth]
	size := uint32(w.pos - f.offset)
	be.PutUint32(w.buf[f.offset:], size)
}

// WriteSignature writes the fixed 12-byte JXL signature box.
func (w *Writer) WriteSignature() {
	w.StartBox(TypeJXL)
	w.putBytes([]byte{0x0D, 0x0A, 0x87, 0x0A})
	w.EndBox()
}

// WriteFtyp writes the file type box with the jxl brand.
func (w *Writer) WriteFtyp() {
	w.StartBox(TypeFtyp)
	w.putBytes([]byte("jxl "))
	w.putUint32(0)             // minor version
	w.putBytes([]byte("jxl ")) // compatible brand
	w.EndBox()
}

// WriteJxlc writes a complete-codestream box.
func (w *Writer) WriteJxlc(codestream []byte) {
	w.StartBox(TypeJxlc)
	w.putBytes(codestream)
	w.EndBox()
}

// WriteJxlp writes a partial-codestream box carrying the given
// reassembly index.
func (w *Writer) WriteJxlp(index uint32, partial []byte) {
	w.StartBox(TypeJxlp)
	w.putUint32(index)
	w.putBytes(partial)
	w.EndBox()
}

// Embed wraps a bare codestream into a minimal container: signature box,
// ftyp box, and a single jxlc box. It is the inverse of Codestream for
// container input.
func Embed(codestream []byte) []byte {
	w := NewWriter(make([]byte, 0, 12+20+8+len(codestream)))
	w.WriteSignature()
	w.WriteFtyp()
	w.WriteJxlc(codestream)
	return w.Bytes()
}
