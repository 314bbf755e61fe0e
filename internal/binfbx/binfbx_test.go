package binfbx

import (
	"bytes"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// buildTestContainer serializes a small but complete model: two vertex
// buffers holding six vertices, a 16-bit index buffer, one joint, two
// materials, two meshes in group 0 (LODs 0 and 1) and one in group 1.
func buildTestContainer(t *testing.T) []byte {
	t.Helper()
	w := &Writer{}
	w.WriteU32(Magic)
	w.WriteU32(72) // vertex buffer 0: 6 vertices x 12 bytes
	w.WriteU32(24) // vertex buffer 1: 6 vertices x 4 bytes
	w.WriteU32(12) // index count
	w.WriteU32(2)  // index width

	w.WriteF32Array([]float32{
		0, 0, 0,
		1, 0, 0,
		0, 1, 0,
		1, 1, 0,
		2, 0, 0,
		2, 1, 0,
	})
	for i := 0; i < 24; i++ {
		w.WriteU8(byte(i))
	}
	for _, idx := range []uint16{0, 1, 2, 2, 1, 3, 4, 5, 0, 1, 2, 4} {
		w.WriteU16(idx)
	}

	w.WriteU32(1)
	root := Joint{Name: "root", Radius: 0.1, Parent: -1}
	root.write(w)

	w.WriteU32(0) // reserved
	w.WriteU32(0)
	w.WriteF32(1) // global scale
	w.WriteU32(2)
	w.WriteF32Array([]float32{10, 20}) // lod thresholds
	w.WriteF32(1)                      // mirror sign
	w.WriteF32Array([]float32{0, 0, 0})
	w.WriteF32(2)
	w.WriteF32Array([]float32{0, 0, 0})
	w.WriteF32Array([]float32{2, 1, 0})
	w.WriteU32(2) // lod count

	w.WriteU32(2)
	m0 := Material{
		Name: "body", Type: "standardmaterial", Path: "materials/body.mat",
		Uniforms: []UniformVariable{
			{Name: "g_fAlpha", Type: UniformFloat, Floats: []float32{1}},
			{Name: "g_vTint", Type: UniformColor, Floats: []float32{1, 1, 1, 1}},
			{Name: "g_sDiffuse", Type: UniformTextureMap, Map: "runtimedata/body.dds"},
			{Name: "g_bSkinned", Type: UniformBoolean, Flag: 1},
			{Name: "g_sSampler", Type: UniformTextureSampler},
		},
	}
	copy(m0.ID[:], []byte{1, 2, 3, 4, 5, 6, 7, 8})
	if err := m0.write(w); err != nil {
		t.Fatal(err)
	}
	m1 := Material{Name: "trim", Type: "standardmaterial", Path: "materials/trim.mat"}
	if err := m1.write(w); err != nil {
		t.Fatal(err)
	}

	w.WriteU32(2)
	w.WriteU32Array([]uint32{0, 1}) // material map, group 0
	w.WriteU32(1)
	w.WriteString("skin01")
	w.WriteU32Array([]uint32{1, 0}) // alternate map, same length as group 0
	w.WriteU32(1)
	w.WriteU32Array([]uint32{0}) // material map, group 1

	w.WriteU32(2)
	writeTestMesh(w, 0, 4, 2, 0)
	writeTestMesh(w, 1, 3, 1, 6)
	w.WriteU32(1)
	writeTestMesh(w, 0, 3, 1, 9)

	w.WriteU32(7)   // trailer reserved word
	w.WriteF32(2.5) // total surface area
	w.WriteU32(4)
	w.WriteF32Array([]float32{0.2, 0.4, 0.8, 1.0})
	return w.Bytes()
}

func writeTestMesh(w *Writer, lod, vertexCount, triangleCount, indexOffset uint32) {
	w.WriteU32(lod)
	w.WriteU32(vertexCount)
	w.WriteU32(triangleCount)
	w.WriteU32(0) // vertex offsets
	w.WriteU32(0)
	w.WriteU32(indexOffset)
	w.WriteI32(0)
	w.WriteF32Array(make([]float32, 4))
	w.WriteF32Array(make([]float32, 6))
	w.WriteI32(0)
	w.WriteU8(2)
	pos := AttributeInfo{BufferIndex: 0, Format: AttrFloat3, Usage: UsagePosition}
	pos.write(w)
	normal := AttributeInfo{BufferIndex: 1, Format: AttrByte4UNorm, Usage: UsageNormal}
	normal.write(w)
	w.WriteI32(0)
	w.WriteF32(0)
	w.WriteU8(1)
	w.WriteF32(0)
}

func TestReadWriteRoundTrip(t *testing.T) {
	data := buildTestContainer(t)
	b, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	out, err := b.Write()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(out, data) {
		t.Fatalf("round trip differs: wrote %d bytes, read %d", len(out), len(data))
	}
}

func TestReadRejectsBadMagic(t *testing.T) {
	data := buildTestContainer(t)
	data[0] = 0x2f
	if _, err := Read(data); err == nil {
		t.Fatal("bad magic did not fail")
	}
}

func TestReadRejectsBadIndexWidth(t *testing.T) {
	data := buildTestContainer(t)
	data[16] = 3
	if _, err := Read(data); err == nil {
		t.Fatal("index width 3 did not fail")
	}
}

func TestReadRejectsTruncated(t *testing.T) {
	data := buildTestContainer(t)
	for n := 0; n < len(data); n++ {
		if _, err := Read(data[:n]); err == nil {
			t.Fatalf("prefix of %d bytes decoded without error", n)
		}
	}
}

func TestReadRejectsTrailingBytes(t *testing.T) {
	data := append(buildTestContainer(t), 0)
	if _, err := Read(data); err == nil {
		t.Fatal("trailing byte did not fail")
	}
}

func TestMeshLocalization(t *testing.T) {
	b, err := Read(buildTestContainer(t))
	if err != nil {
		t.Fatal(err)
	}
	m := &b.MeshGroups[0][0]
	if m.UniqueVertices != 4 {
		t.Fatalf("UniqueVertices = %d, want 4", m.UniqueVertices)
	}
	if len(m.VertexBuffers[0]) != 4*12 || len(m.VertexBuffers[1]) != 4*4 {
		t.Fatalf("local buffer sizes = %d, %d", len(m.VertexBuffers[0]), len(m.VertexBuffers[1]))
	}
	// First-seen numbering: shared 0,1,2,2,1,3 becomes local 0,1,2,2,1,3.
	want := []uint32{0, 1, 2, 2, 1, 3}
	got := m.Indices()
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("local indices = %v, want %v", got, want)
		}
		if int(got[i]) >= m.UniqueVertices {
			t.Fatalf("local index %d out of range [0, %d)", got[i], m.UniqueVertices)
		}
	}

	// The second group-0 mesh references shared 4,5,0 and renumbers from 0.
	m = &b.MeshGroups[0][1]
	if m.UniqueVertices != 3 {
		t.Fatalf("UniqueVertices = %d, want 3", m.UniqueVertices)
	}
	pos, ok := m.Positions()
	if !ok {
		t.Fatal("Positions not found")
	}
	if pos[0] != (mgl32.Vec3{2, 0, 0}) || pos[1] != (mgl32.Vec3{2, 1, 0}) || pos[2] != (mgl32.Vec3{0, 0, 0}) {
		t.Fatalf("localized positions = %v", pos)
	}
}

func TestMeshIndexOrdinals(t *testing.T) {
	b, err := Read(buildTestContainer(t))
	if err != nil {
		t.Fatal(err)
	}
	if b.MeshGroups[0][0].LOD != 0 || b.MeshGroups[0][0].Index != 0 {
		t.Fatalf("mesh 0 = lod %d index %d", b.MeshGroups[0][0].LOD, b.MeshGroups[0][0].Index)
	}
	// Ordinals restart when the LOD changes.
	if b.MeshGroups[0][1].LOD != 1 || b.MeshGroups[0][1].Index != 0 {
		t.Fatalf("mesh 1 = lod %d index %d", b.MeshGroups[0][1].LOD, b.MeshGroups[0][1].Index)
	}
}

func TestAccumulateTriangleAreas(t *testing.T) {
	b, err := Read(buildTestContainer(t))
	if err != nil {
		t.Fatal(err)
	}
	areas, ok := b.MeshGroups[0][0].AccumulateTriangleAreas(nil)
	if !ok {
		t.Fatal("no position attribute found")
	}
	want := []float32{0.5, 0.5}
	if len(areas) != len(want) {
		t.Fatalf("got %d areas, want %d", len(areas), len(want))
	}
	for i := range want {
		if diff := math.Abs(float64(areas[i] - want[i])); diff > 1e-6 {
			t.Fatalf("area[%d] = %g, want %g", i, areas[i], want[i])
		}
	}

	// No position attribute means nothing is appended.
	m := Mesh{Attributes: []AttributeInfo{{BufferIndex: 1, Format: AttrByte4UNorm, Usage: UsageNormal}}}
	areas, ok = m.AccumulateTriangleAreas(areas)
	if ok || len(areas) != 2 {
		t.Fatalf("mesh without positions appended areas: %v, %t", areas, ok)
	}
}

func TestRemoveMesh(t *testing.T) {
	b, err := Read(buildTestContainer(t))
	if err != nil {
		t.Fatal(err)
	}
	if !b.RemoveMesh(0, 1, 0) {
		t.Fatal("mesh (0, lod 1, index 0) not found")
	}
	if len(b.MeshGroups[0]) != 1 || b.MeshGroups[0][0].LOD != 0 {
		t.Fatalf("group 0 after removal: %d meshes", len(b.MeshGroups[0]))
	}
	if len(b.MaterialMaps[0]) != 1 || b.MaterialMaps[0][0] != 0 {
		t.Fatalf("material map 0 after removal: %v", b.MaterialMaps[0])
	}
	if len(b.AlternateMaterialMaps[0].Map) != 1 || b.AlternateMaterialMaps[0].Map[0] != 1 {
		t.Fatalf("alternate map after removal: %v", b.AlternateMaterialMaps[0].Map)
	}
	if len(b.MeshGroups[1]) != 1 || len(b.MaterialMaps[1]) != 1 {
		t.Fatal("group 1 was modified")
	}

	// Trailer: three surviving triangles with areas 0.5 each.
	if len(b.CDF) != b.TriangleCount() {
		t.Fatalf("CDF has %d entries for %d triangles", len(b.CDF), b.TriangleCount())
	}
	if b.TrailerReserved != 0 {
		t.Fatalf("trailer reserved = %d, want 0", b.TrailerReserved)
	}
	if diff := math.Abs(float64(b.TotalArea - 1.5)); diff > 1e-6 {
		t.Fatalf("total area = %g, want 1.5", b.TotalArea)
	}
	wantCDF := []float32{1.0 / 3, 2.0 / 3, 1.0}
	for i := range wantCDF {
		if diff := math.Abs(float64(b.CDF[i] - wantCDF[i])); diff > 1e-6 {
			t.Fatalf("CDF = %v, want %v", b.CDF, wantCDF)
		}
	}
	if b.CDF[len(b.CDF)-1] != 1.0 {
		t.Fatal("last CDF entry is not exactly 1.0")
	}
	for i := 1; i < len(b.CDF); i++ {
		if b.CDF[i] < b.CDF[i-1] {
			t.Fatalf("CDF not non-decreasing at %d: %v", i, b.CDF)
		}
	}

	// The shared buffers are untouched: the removed geometry stays in the
	// output, only the records referencing it are gone.
	if len(b.VertexBuffers[0]) != 72 || len(b.IndexBuffer) != 24 {
		t.Fatal("shared buffers were rebuilt")
	}
}

func TestRemoveMeshNotFound(t *testing.T) {
	data := buildTestContainer(t)
	b, err := Read(data)
	if err != nil {
		t.Fatal(err)
	}
	before, err := b.Write()
	if err != nil {
		t.Fatal(err)
	}
	if b.RemoveMesh(0, 9, 9) {
		t.Fatal("nonexistent mesh reported as removed")
	}
	if b.RemoveMesh(2, 0, 0) {
		t.Fatal("nonexistent group reported as removed")
	}
	after, err := b.Write()
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(before, after) {
		t.Fatal("not-found removal modified the model")
	}
}

func TestRecomputeTrailerWithoutPositions(t *testing.T) {
	b := &BinFBX{TrailerReserved: 5, TotalArea: 9, CDF: []float32{0.5, 1}}
	b.RecomputeTrailer()
	if b.TrailerReserved != 5 || b.TotalArea != 9 || len(b.CDF) != 2 {
		t.Fatal("trailer changed although no mesh yields area data")
	}
}

func TestDumpMentionsStructure(t *testing.T) {
	b, err := Read(buildTestContainer(t))
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	b.Dump(&buf, true)
	out := buf.String()
	for _, want := range []string{"joints: 1", "materials: 2", "body", "skin01", "non-decreasing=true", "g_sDiffuse"} {
		if !bytes.Contains([]byte(out), []byte(want)) {
			t.Fatalf("dump output missing %q:\n%s", want, out)
		}
	}
}
