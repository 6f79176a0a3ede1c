package clausewitz

import (
	"bytes"
	"encoding/binary"
)

// Writer builds binary token streams. Tools and tests use it to produce
// synthetic saves.
type Writer struct {
	buf bytes.Buffer
}

func (w *Writer) u16(v uint16) {
	w.buf.Write(binary.LittleEndian.AppendUint16(nil, v))
}

// Token writes a bare token id.
func (w *Writer) Token(id uint16) *Writer {
	w.u16(id)
	return w
}

// Field writes id followed by '='.
func (w *Writer) Field(id uint16) *Writer {
	return w.Token(id).Token(TokenEqual)
}

func (w *Writer) Equal() *Writer { return w.Token(TokenEqual) }
func (w *Writer) Open() *Writer  { return w.Token(TokenOpen) }
func (w *Writer) Close() *Writer { return w.Token(TokenClose) }

func (w *Writer) I32(v int32) *Writer {
	w.u16(TokenI32)
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(v)))
	return w
}

func (w *Writer) U32(v uint32) *Writer {
	w.u16(TokenU32)
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, v))
	return w
}

func (w *Writer) I64(v int64) *Writer {
	w.u16(TokenI64)
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(v)))
	return w
}

func (w *Writer) U64(v uint64) *Writer {
	w.u16(TokenU64)
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, v))
	return w
}

// F32 writes a raw fixed-point f32 payload.
func (w *Writer) F32(raw int32) *Writer {
	w.u16(TokenF32)
	w.buf.Write(binary.LittleEndian.AppendUint32(nil, uint32(raw)))
	return w
}

// F64 writes a raw fixed-point f64 payload.
func (w *Writer) F64(raw int64) *Writer {
	w.u16(TokenF64)
	w.buf.Write(binary.LittleEndian.AppendUint64(nil, uint64(raw)))
	return w
}

func (w *Writer) Bool(v bool) *Writer {
	w.u16(TokenBool)
	if v {
		w.buf.WriteByte(1)
	} else {
		w.buf.WriteByte(0)
	}
	return w
}

func (w *Writer) Quoted(s string) *Writer {
	return w.str(TokenQuoted, s)
}

func (w *Writer) Unquoted(s string) *Writer {
	return w.str(TokenUnquoted, s)
}

func (w *Writer) str(id uint16, s string) *Writer {
	w.u16(id)
	w.u16(uint16(len(s)))
	w.buf.WriteString(s)
	return w
}

func (w *Writer) RGB(r, g, b uint32) *Writer {
	w.u16(TokenRGB)
	w.Open().U32(r).U32(g).U32(b)
	return w.Close()
}

// Raw appends bytes unchanged.
func (w *Writer) Raw(b []byte) *Writer {
	w.buf.Write(b)
	return w
}

func (w *Writer) Bytes() []byte {
	return w.buf.Bytes()
}
