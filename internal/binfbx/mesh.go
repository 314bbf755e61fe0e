package binfbx

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mesh is one renderable submesh at one LOD. Besides the on-disk record it
// owns localized copies of the vertex and index data it references: the
// subset of the shared buffers it uses, renumbered to compact 0-based
// indices. The local buffers are built once at construction and never
// alias the shared buffers afterwards.
type Mesh struct {
	LOD            uint32
	Index          uint32 // ordinal within its LOD, assigned at decode
	VertexCount    uint32
	TriangleCount  uint32
	VertexOffsets  [2]uint32 // byte offsets into the shared vertex buffers
	IndexOffset    uint32    // element offset into the shared index buffer
	Flags0         int32
	BoundingSphere [4]float32 // cx, cy, cz, r
	BoundingBox    [6]float32 // min xyz, max xyz
	Flags1         int32
	Attributes     []AttributeInfo
	JointIndex     int32
	Unknown0       float32
	RigidFlag      byte
	Unknown1       float32

	IndexSize      int
	VertexBuffers  [2][]byte
	IndexBuffer    []byte
	UniqueVertices int
}

func readMesh(c *Cursor, vertexBuffers *[2][]byte, indexBuffer []byte, indexSize int) (Mesh, error) {
	var m Mesh
	var err error
	if m.LOD, err = c.ReadU32(); err != nil {
		return m, err
	}
	if m.VertexCount, err = c.ReadU32(); err != nil {
		return m, err
	}
	if m.TriangleCount, err = c.ReadU32(); err != nil {
		return m, err
	}
	if m.VertexOffsets[0], err = c.ReadU32(); err != nil {
		return m, err
	}
	if m.VertexOffsets[1], err = c.ReadU32(); err != nil {
		return m, err
	}
	if m.IndexOffset, err = c.ReadU32(); err != nil {
		return m, err
	}
	if m.Flags0, err = c.ReadI32(); err != nil {
		return m, err
	}
	sphere, err := c.ReadF32Array(4)
	if err != nil {
		return m, err
	}
	copy(m.BoundingSphere[:], sphere)
	box, err := c.ReadF32Array(6)
	if err != nil {
		return m, err
	}
	copy(m.BoundingBox[:], box)
	if m.Flags1, err = c.ReadI32(); err != nil {
		return m, err
	}
	// Single-byte count, unlike every other array in the format.
	attrCount, err := c.ReadU8()
	if err != nil {
		return m, err
	}
	m.Attributes = make([]AttributeInfo, 0, attrCount)
	for i := 0; i < int(attrCount); i++ {
		a, err := readAttributeInfo(c)
		if err != nil {
			return m, err
		}
		m.Attributes = append(m.Attributes, a)
	}
	if m.JointIndex, err = c.ReadI32(); err != nil {
		return m, err
	}
	if m.Unknown0, err = c.ReadF32(); err != nil {
		return m, err
	}
	if m.RigidFlag, err = c.ReadU8(); err != nil {
		return m, err
	}
	if m.Unknown1, err = c.ReadF32(); err != nil {
		return m, err
	}

	m.IndexSize = indexSize
	if err := m.localize(vertexBuffers, indexBuffer); err != nil {
		return m, err
	}
	return m, nil
}

// localize builds the mesh-owned vertex and index buffers from the shared
// container buffers. Each distinct shared-buffer index is assigned the next
// local index in first-seen order and its vertex data is copied out of both
// shared buffers exactly once; the local index buffer holds the renumbered
// triangle corners at the mesh's own index width.
func (m *Mesh) localize(vertexBuffers *[2][]byte, indexBuffer []byte) error {
	stride0, stride1, err := VertexSizes(m.Attributes)
	if err != nil {
		return err
	}
	strides := [2]int{stride0, stride1}

	total := int(m.TriangleCount) * 3
	remap := make(map[uint64]uint64, m.VertexCount)
	m.IndexBuffer = make([]byte, 0, total*m.IndexSize)
	for k := 0; k < total; k++ {
		global, err := readIndexAt(indexBuffer, int(m.IndexOffset)+k, m.IndexSize)
		if err != nil {
			return err
		}
		local, seen := remap[global]
		if !seen {
			local = uint64(len(remap))
			remap[global] = local
			for b := 0; b < 2; b++ {
				stride := strides[b]
				if stride == 0 {
					continue
				}
				start := int(m.VertexOffsets[b]) + int(global)*stride
				if start < 0 || start+stride > len(vertexBuffers[b]) {
					return fmt.Errorf("binfbx: vertex %d at byte %d exceeds shared buffer %d of %d bytes", global, start, b, len(vertexBuffers[b]))
				}
				m.VertexBuffers[b] = append(m.VertexBuffers[b], vertexBuffers[b][start:start+stride]...)
			}
		}
		m.IndexBuffer = appendIndex(m.IndexBuffer, local, m.IndexSize)
	}
	m.UniqueVertices = len(remap)
	return nil
}

// write re-emits the on-disk mesh record. The local buffers are not
// written here; the container writer re-emits the shared buffers instead.
func (m *Mesh) write(w *Writer) {
	w.WriteU32(m.LOD)
	w.WriteU32(m.VertexCount)
	w.WriteU32(m.TriangleCount)
	w.WriteU32(m.VertexOffsets[0])
	w.WriteU32(m.VertexOffsets[1])
	w.WriteU32(m.IndexOffset)
	w.WriteI32(m.Flags0)
	w.WriteF32Array(m.BoundingSphere[:])
	w.WriteF32Array(m.BoundingBox[:])
	w.WriteI32(m.Flags1)
	w.WriteU8(uint8(len(m.Attributes)))
	for i := range m.Attributes {
		m.Attributes[i].write(w)
	}
	w.WriteI32(m.JointIndex)
	w.WriteF32(m.Unknown0)
	w.WriteU8(m.RigidFlag)
	w.WriteF32(m.Unknown1)
}

// positionLayout locates the FLOAT3 position attribute: which local buffer
// holds it, its byte offset within the stride, and that buffer's stride.
func (m *Mesh) positionLayout() (buffer, offset, stride int, ok bool) {
	var offsets [2]int
	found := -1
	for i := range m.Attributes {
		a := &m.Attributes[i]
		size, err := a.Size()
		if err != nil || a.BufferIndex > 1 {
			return 0, 0, 0, false
		}
		b := int(a.BufferIndex)
		if a.Usage == UsagePosition && a.Format == AttrFloat3 && found < 0 {
			found = i
			buffer, offset = b, offsets[b]
		}
		offsets[b] += size
	}
	if found < 0 {
		return 0, 0, 0, false
	}
	return buffer, offset, offsets[buffer], true
}

// position reads one localized vertex position.
func (m *Mesh) position(buffer, offset, stride int, local uint64) mgl32.Vec3 {
	base := int(local)*stride + offset
	buf := m.VertexBuffers[buffer]
	return mgl32.Vec3{
		math.Float32frombits(binary.LittleEndian.Uint32(buf[base:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[base+4:])),
		math.Float32frombits(binary.LittleEndian.Uint32(buf[base+8:])),
	}
}

// AccumulateTriangleAreas appends the area of every triangle in the mesh
// to areas, in triangle order, and reports whether it appended anything.
// A mesh without a FLOAT3 position attribute contributes nothing.
func (m *Mesh) AccumulateTriangleAreas(areas []float32) ([]float32, bool) {
	buffer, offset, stride, ok := m.positionLayout()
	if !ok {
		return areas, false
	}
	for t := 0; t < int(m.TriangleCount); t++ {
		i0, _ := readIndexAt(m.IndexBuffer, t*3, m.IndexSize)
		i1, _ := readIndexAt(m.IndexBuffer, t*3+1, m.IndexSize)
		i2, _ := readIndexAt(m.IndexBuffer, t*3+2, m.IndexSize)
		a := m.position(buffer, offset, stride, i0)
		b := m.position(buffer, offset, stride, i1)
		c := m.position(buffer, offset, stride, i2)
		areas = append(areas, b.Sub(a).Cross(c.Sub(a)).Len()/2)
	}
	return areas, true
}

// Positions decodes the localized position of every unique vertex. Returns
// false if the mesh has no FLOAT3 position attribute.
func (m *Mesh) Positions() ([]mgl32.Vec3, bool) {
	buffer, offset, stride, ok := m.positionLayout()
	if !ok {
		return nil, false
	}
	out := make([]mgl32.Vec3, m.UniqueVertices)
	for i := range out {
		out[i] = m.position(buffer, offset, stride, uint64(i))
	}
	return out, true
}

// Indices decodes the localized index buffer into triangle corners.
func (m *Mesh) Indices() []uint32 {
	out := make([]uint32, int(m.TriangleCount)*3)
	for i := range out {
		v, _ := readIndexAt(m.IndexBuffer, i, m.IndexSize)
		out[i] = uint32(v)
	}
	return out
}

// readIndexAt reads the element-th index from an index buffer of the given
// width.
func readIndexAt(buf []byte, element, width int) (uint64, error) {
	start := element * width
	if start < 0 || start+width > len(buf) {
		return 0, fmt.Errorf("binfbx: index %d exceeds index buffer of %d bytes", element, len(buf))
	}
	switch width {
	case 1:
		return uint64(buf[start]), nil
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf[start:])), nil
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf[start:])), nil
	case 8:
		return binary.LittleEndian.Uint64(buf[start:]), nil
	}
	return 0, fmt.Errorf("binfbx: index width %d not in {1,2,4,8}", width)
}

func appendIndex(buf []byte, v uint64, width int) []byte {
	switch width {
	case 1:
		return append(buf, byte(v))
	case 2:
		return binary.LittleEndian.AppendUint16(buf, uint16(v))
	case 4:
		return binary.LittleEndian.AppendUint32(buf, uint32(v))
	case 8:
		return binary.LittleEndian.AppendUint64(buf, v)
	}
	return buf
}
