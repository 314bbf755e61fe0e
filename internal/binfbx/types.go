package binfbx

import "fmt"

// Magic is the 4-byte tag that opens every BinFBX stream.
const Magic uint32 = 0x2e

// materialMagic precedes every material record.
const materialMagic uint32 = 7

// Uniform variable type tags as they appear on disk. The payload shape is
// strictly determined by the tag; TextureSampler and NoPayload carry zero
// bytes.
const (
	UniformFloat          uint32 = 0x00
	UniformRange          uint32 = 0x01
	UniformVector         uint32 = 0x02
	UniformColor          uint32 = 0x03
	UniformTextureSampler uint32 = 0x08
	UniformTextureMap     uint32 = 0x09
	UniformNoPayload      uint32 = 0x0a
	UniformBoolean        uint32 = 0x0c
)

// Vertex attribute storage formats. Codes recovered from observed files;
// the set is closed because an unknown format has an unknown stride and
// makes the rest of the vertex buffer unreadable.
const (
	AttrFloat3      byte = 0x02
	AttrByte4SNorm  byte = 0x04
	AttrByte4UNorm  byte = 0x05
	AttrByte4UInt   byte = 0x06
	AttrShort2SNorm byte = 0x07
	AttrShort4SNorm byte = 0x08
	AttrShort4UInt  byte = 0x0d
)

// Attribute usage semantics.
const (
	UsagePosition byte = 0x0
	UsageNormal   byte = 0x1
	UsageTexCoord byte = 0x2
	UsageTangent  byte = 0x3
	UsageIndex    byte = 0x5
	UsageWeight   byte = 0x6
)

// formatSize returns the per-vertex byte contribution of an attribute
// format.
func formatSize(format byte) (int, error) {
	switch format {
	case AttrFloat3:
		return 12, nil
	case AttrByte4SNorm, AttrByte4UNorm, AttrByte4UInt, AttrShort2SNorm:
		return 4, nil
	case AttrShort4SNorm, AttrShort4UInt:
		return 8, nil
	}
	return 0, fmt.Errorf("binfbx: unknown attribute format 0x%02x", format)
}
