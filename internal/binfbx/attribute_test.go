package binfbx

import "testing"

func TestVertexSizes(t *testing.T) {
	tests := []struct {
		name             string
		attrs            []AttributeInfo
		stride0, stride1 int
	}{
		{
			name: "float3 and short4",
			attrs: []AttributeInfo{
				{BufferIndex: 1, Format: AttrFloat3, Usage: UsagePosition},
				{BufferIndex: 0, Format: AttrShort4UInt, Usage: UsageIndex},
			},
			stride0: 8, stride1: 12,
		},
		{
			name: "all in buffer zero",
			attrs: []AttributeInfo{
				{BufferIndex: 0, Format: AttrFloat3, Usage: UsagePosition},
				{BufferIndex: 0, Format: AttrByte4UNorm, Usage: UsageNormal},
				{BufferIndex: 0, Format: AttrShort2SNorm, Usage: UsageTexCoord},
			},
			stride0: 20, stride1: 0,
		},
		{name: "empty", attrs: nil, stride0: 0, stride1: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s0, s1, err := VertexSizes(tt.attrs)
			if err != nil {
				t.Fatal(err)
			}
			if s0 != tt.stride0 || s1 != tt.stride1 {
				t.Fatalf("VertexSizes = (%d, %d), want (%d, %d)", s0, s1, tt.stride0, tt.stride1)
			}
		})
	}
}

func TestVertexSizesRejectsUnknownFormat(t *testing.T) {
	if _, _, err := VertexSizes([]AttributeInfo{{BufferIndex: 0, Format: 0x3f}}); err == nil {
		t.Fatal("unknown format did not fail")
	}
	if _, _, err := VertexSizes([]AttributeInfo{{BufferIndex: 2, Format: AttrFloat3}}); err == nil {
		t.Fatal("buffer index 2 did not fail")
	}
}
