package binfbx

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Cursor is a bounds-checked sequential reader over a byte slice. It is the
// only component in the codec that does byte-level arithmetic; every record
// constructor takes a Cursor and advances it by exactly what it consumed.
type Cursor struct {
	data []byte
	off  int
}

func NewCursor(data []byte) *Cursor {
	return &Cursor{data: data}
}

// Offset returns the current read position.
func (c *Cursor) Offset() int { return c.off }

// Remaining returns the number of unread bytes.
func (c *Cursor) Remaining() int { return len(c.data) - c.off }

func (c *Cursor) need(n int) error {
	if n < 0 || c.off+n > len(c.data) {
		return fmt.Errorf("binfbx: read of %d bytes at offset %d exceeds buffer of %d bytes", n, c.off, len(c.data))
	}
	return nil
}

// ReadBytes returns n bytes as a copy, so records never alias the input.
func (c *Cursor) ReadBytes(n int) ([]byte, error) {
	if err := c.need(n); err != nil {
		return nil, err
	}
	b := make([]byte, n)
	copy(b, c.data[c.off:c.off+n])
	c.off += n
	return b, nil
}

func (c *Cursor) ReadU8() (uint8, error) {
	if err := c.need(1); err != nil {
		return 0, err
	}
	v := c.data[c.off]
	c.off++
	return v, nil
}

func (c *Cursor) ReadU16() (uint16, error) {
	if err := c.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(c.data[c.off:])
	c.off += 2
	return v, nil
}

func (c *Cursor) ReadU32() (uint32, error) {
	if err := c.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(c.data[c.off:])
	c.off += 4
	return v, nil
}

func (c *Cursor) ReadI32() (int32, error) {
	v, err := c.ReadU32()
	return int32(v), err
}

func (c *Cursor) ReadU64() (uint64, error) {
	if err := c.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(c.data[c.off:])
	c.off += 8
	return v, nil
}

func (c *Cursor) ReadF32() (float32, error) {
	v, err := c.ReadU32()
	return math.Float32frombits(v), err
}

// ReadString reads a 4-byte length prefix followed by that many raw bytes.
func (c *Cursor) ReadString() (string, error) {
	n, err := c.ReadU32()
	if err != nil {
		return "", err
	}
	b, err := c.ReadBytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (c *Cursor) ReadF32Array(n int) ([]float32, error) {
	if err := c.need(n * 4); err != nil {
		return nil, err
	}
	v := make([]float32, n)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(c.data[c.off+i*4:]))
	}
	c.off += n * 4
	return v, nil
}

func (c *Cursor) ReadU32Array(n int) ([]uint32, error) {
	if err := c.need(n * 4); err != nil {
		return nil, err
	}
	v := make([]uint32, n)
	for i := range v {
		v[i] = binary.LittleEndian.Uint32(c.data[c.off+i*4:])
	}
	c.off += n * 4
	return v, nil
}

// Writer is the write-side mirror of Cursor: it appends to a growable
// output buffer. Writes cannot fail.
type Writer struct {
	buf []byte
}

// Bytes returns the accumulated output.
func (w *Writer) Bytes() []byte { return w.buf }

func (w *Writer) WriteBytes(b []byte) {
	w.buf = append(w.buf, b...)
}

func (w *Writer) WriteU8(v uint8) {
	w.buf = append(w.buf, v)
}

func (w *Writer) WriteU16(v uint16) {
	w.buf = binary.LittleEndian.AppendUint16(w.buf, v)
}

func (w *Writer) WriteU32(v uint32) {
	w.buf = binary.LittleEndian.AppendUint32(w.buf, v)
}

func (w *Writer) WriteI32(v int32) {
	w.WriteU32(uint32(v))
}

func (w *Writer) WriteU64(v uint64) {
	w.buf = binary.LittleEndian.AppendUint64(w.buf, v)
}

func (w *Writer) WriteF32(v float32) {
	w.WriteU32(math.Float32bits(v))
}

// WriteString writes a 4-byte length prefix followed by the raw bytes.
func (w *Writer) WriteString(s string) {
	w.WriteU32(uint32(len(s)))
	w.buf = append(w.buf, s...)
}

func (w *Writer) WriteF32Array(v []float32) {
	for _, f := range v {
		w.WriteF32(f)
	}
}

func (w *Writer) WriteU32Array(v []uint32) {
	for _, u := range v {
		w.WriteU32(u)
	}
}
