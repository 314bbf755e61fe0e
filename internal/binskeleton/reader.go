// Package binskeleton reads the skeleton container that accompanies
// BinFBX models. It is structurally unrelated to BinFBX: an 8-byte magic,
// a 16-byte header, then sub-section index tables whose offset arrays
// point at 64-bit offsets to the actual data arrays, plus a separately
// indexed bone-name table.
package binskeleton

import (
	"encoding/binary"
	"fmt"
	"math"
)

// Magic is the 8-byte tag that opens a binskeleton stream.
const Magic uint64 = 0x2

const headerSize = 0x10

// Bone is one skeleton entry: a quaternion rotation and a position (both
// stored as 4 floats), the parent index and the engine's bone ID.
type Bone struct {
	Name     string
	Rotation [4]float32
	Position [4]float32
	Parent   uint32
	ID       uint32
}

// Skeleton is the decoded bone list.
type Skeleton struct {
	Bones []Bone
}

// subSectionIndex is the on-disk index table: a data start and size
// relative to the table, and an offset array pointing at 64-bit offsets
// inside the data.
type subSectionIndex struct {
	start   uint32
	size    uint32
	offsets []uint32
}

func u32At(data []byte, off int) (uint32, error) {
	if off < 0 || off+4 > len(data) {
		return 0, fmt.Errorf("binskeleton: u32 at offset %d exceeds buffer of %d bytes", off, len(data))
	}
	return binary.LittleEndian.Uint32(data[off:]), nil
}

func u64At(data []byte, off int) (uint64, error) {
	if off < 0 || off+8 > len(data) {
		return 0, fmt.Errorf("binskeleton: u64 at offset %d exceeds buffer of %d bytes", off, len(data))
	}
	return binary.LittleEndian.Uint64(data[off:]), nil
}

func f32At(data []byte, off int) (float32, error) {
	v, err := u32At(data, off)
	return math.Float32frombits(v), err
}

func cstringAt(data []byte, off int) (string, error) {
	if off < 0 || off >= len(data) {
		return "", fmt.Errorf("binskeleton: name at offset %d exceeds buffer of %d bytes", off, len(data))
	}
	for end := off; end < len(data); end++ {
		if data[end] == 0 {
			return string(data[off:end]), nil
		}
	}
	return "", fmt.Errorf("binskeleton: unterminated name at offset %d", off)
}

func readSubSectionIndex(data []byte, base int) (subSectionIndex, error) {
	var idx subSectionIndex
	var err error
	if idx.start, err = u32At(data, base); err != nil {
		return idx, err
	}
	if idx.size, err = u32At(data, base+4); err != nil {
		return idx, err
	}
	count, err := u32At(data, base+8)
	if err != nil {
		return idx, err
	}
	idx.offsets = make([]uint32, count)
	for i := range idx.offsets {
		if idx.offsets[i], err = u32At(data, base+12+i*4); err != nil {
			return idx, err
		}
	}
	return idx, nil
}

// arrayOffset resolves the i-th entry of an index table to the 64-bit
// data offset it points at, relative to the section data base.
func arrayOffset(data []byte, dataBase int, idx subSectionIndex, i int) (int, error) {
	v, err := u64At(data, dataBase+int(idx.offsets[i]))
	if err != nil {
		return 0, err
	}
	return dataBase + int(v), nil
}

// Read decodes a binskeleton buffer.
func Read(data []byte) (*Skeleton, error) {
	magic, err := u64At(data, 0)
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("binskeleton: bad magic 0x%x, want 0x%x", magic, Magic)
	}

	boneData, err := readSubSectionIndex(data, headerSize)
	if err != nil {
		return nil, err
	}
	if len(boneData.offsets) < 3 {
		return nil, fmt.Errorf("binskeleton: %d bone sub-sections, want transform, parent and id", len(boneData.offsets))
	}
	dataBase := headerSize + int(boneData.start)

	boneCount, err := u32At(data, dataBase)
	if err != nil {
		return nil, err
	}
	transforms, err := arrayOffset(data, dataBase, boneData, 0)
	if err != nil {
		return nil, err
	}
	parents, err := arrayOffset(data, dataBase, boneData, 1)
	if err != nil {
		return nil, err
	}
	ids, err := arrayOffset(data, dataBase, boneData, 2)
	if err != nil {
		return nil, err
	}

	s := &Skeleton{Bones: make([]Bone, boneCount)}
	for i := 0; i < int(boneCount); i++ {
		b := &s.Bones[i]
		for k := 0; k < 4; k++ {
			if b.Rotation[k], err = f32At(data, transforms+i*32+k*4); err != nil {
				return nil, err
			}
			if b.Position[k], err = f32At(data, transforms+i*32+16+k*4); err != nil {
				return nil, err
			}
		}
		if b.Parent, err = u32At(data, parents+i*4); err != nil {
			return nil, err
		}
		if b.ID, err = u32At(data, ids+i*4); err != nil {
			return nil, err
		}
	}

	// The bone-name section starts at the next 16-byte boundary after the
	// bone data.
	nameBase := headerSize + int((boneData.start+boneData.size+0xf)&^uint32(0xf))
	names, err := readSubSectionIndex(data, nameBase)
	if err != nil {
		return nil, err
	}
	if len(names.offsets) < 1 {
		return nil, fmt.Errorf("binskeleton: missing bone-name sub-section")
	}
	arrayBase := nameBase + int(names.start) + int(names.offsets[0])
	tableOffset, err := u64At(data, arrayBase)
	if err != nil {
		return nil, err
	}
	nameCount, err := u64At(data, arrayBase+8)
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(nameCount) && i < len(s.Bones); i++ {
		// Name offsets are relative to the name array record itself.
		rel, err := u64At(data, arrayBase+int(tableOffset)+i*8)
		if err != nil {
			return nil, err
		}
		if s.Bones[i].Name, err = cstringAt(data, arrayBase+int(rel)); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// Hash is the salted FNV-1a variant the engine derives bone IDs from.
func Hash(name string, salt byte) uint32 {
	h := uint32(0x811c9dc5)
	for i := 0; i < len(name); i++ {
		h = ((uint32(name[i]) | uint32(salt<<5)) ^ h) * 0x1000193
	}
	return h
}
