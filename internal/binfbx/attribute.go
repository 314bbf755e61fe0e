package binfbx

import "fmt"

// AttributeInfo is a 4-byte descriptor of one per-vertex data channel:
// which of the two shared vertex buffers holds it, its storage format, its
// usage semantic and a reserved byte preserved verbatim.
type AttributeInfo struct {
	BufferIndex byte
	Format      byte
	Usage       byte
	Reserved    byte
}

func readAttributeInfo(c *Cursor) (AttributeInfo, error) {
	b, err := c.ReadBytes(4)
	if err != nil {
		return AttributeInfo{}, err
	}
	return AttributeInfo{BufferIndex: b[0], Format: b[1], Usage: b[2], Reserved: b[3]}, nil
}

func (a *AttributeInfo) write(w *Writer) {
	w.WriteU8(a.BufferIndex)
	w.WriteU8(a.Format)
	w.WriteU8(a.Usage)
	w.WriteU8(a.Reserved)
}

// Size returns the bytes this attribute contributes to its vertex buffer.
func (a *AttributeInfo) Size() (int, error) {
	return formatSize(a.Format)
}

// VertexSizes sums the per-vertex byte strides of the two vertex buffers
// over an attribute list.
func VertexSizes(attrs []AttributeInfo) (stride0, stride1 int, err error) {
	for i := range attrs {
		size, err := attrs[i].Size()
		if err != nil {
			return 0, 0, err
		}
		switch attrs[i].BufferIndex {
		case 0:
			stride0 += size
		case 1:
			stride1 += size
		default:
			return 0, 0, fmt.Errorf("binfbx: attribute buffer index %d out of range", attrs[i].BufferIndex)
		}
	}
	return stride0, stride1, nil
}
