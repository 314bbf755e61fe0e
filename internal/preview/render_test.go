package preview

import (
	"encoding/binary"
	"math"
	"testing"

	"binfbx-tools/internal/binfbx"
)

func testModel() *binfbx.BinFBX {
	var vertices []byte
	for _, f := range []float32{
		0, 0, 0,
		10, 0, 0,
		0, 10, 0,
	} {
		vertices = binary.LittleEndian.AppendUint32(vertices, math.Float32bits(f))
	}
	mesh := binfbx.Mesh{
		TriangleCount:  1,
		UniqueVertices: 3,
		IndexSize:      1,
		IndexBuffer:    []byte{0, 1, 2},
		Attributes: []binfbx.AttributeInfo{
			{BufferIndex: 0, Format: binfbx.AttrFloat3, Usage: binfbx.UsagePosition},
		},
	}
	mesh.VertexBuffers[0] = vertices
	model := &binfbx.BinFBX{IndexSize: 1}
	model.MeshGroups[0] = []binfbx.Mesh{mesh}
	return model
}

func TestRenderProducesPixels(t *testing.T) {
	img := Render(testModel(), Options{Group: 0, LOD: -1, Size: 64, Supersample: 1})
	b := img.Bounds()
	if b.Dx() != 64 || b.Dy() != 64 {
		t.Fatalf("bounds = %v", b)
	}
	opaque := 0
	for i := 3; i < len(img.Pix); i += 4 {
		if img.Pix[i] != 0 {
			opaque++
		}
	}
	if opaque == 0 {
		t.Fatal("rendered image is fully transparent")
	}
}

func TestRenderSupersampleKeepsTargetSize(t *testing.T) {
	img := Render(testModel(), Options{Group: -1, LOD: -1, Size: 32, Supersample: 2})
	if img.Bounds().Dx() != 32 {
		t.Fatalf("bounds = %v", img.Bounds())
	}
}

func TestRenderEmptySelection(t *testing.T) {
	img := Render(testModel(), Options{Group: 1, LOD: -1, Size: 16, Supersample: 1})
	for _, p := range img.Pix {
		if p != 0 {
			t.Fatal("empty selection produced pixels")
		}
	}
}
