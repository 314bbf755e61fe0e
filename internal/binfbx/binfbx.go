package binfbx

import "fmt"

// AlternateMaterialMap is a named variant of the group-0 material map,
// used for alternate material assignments such as skins.
type AlternateMaterialMap struct {
	Name string
	Map  []uint32
}

// BinFBX is the decoded model container. It owns the shared vertex and
// index buffers exactly as captured from the input; every Mesh additionally
// owns a localized copy of the data it references. Fields whose meaning is
// not recovered are preserved verbatim and re-emitted unchanged.
type BinFBX struct {
	VertexBuffers [2][]byte
	IndexBuffer   []byte
	IndexSize     int

	Joints []Joint

	Reserved      [2]uint32
	GlobalScale   float32
	LODThresholds []float32
	MirrorSign    float32
	Center        [3]float32
	Radius        float32
	Min           [3]float32
	Max           [3]float32
	LODCount      uint32

	Materials             []Material
	MaterialMaps          [2][]uint32
	AlternateMaterialMaps []AlternateMaterialMap

	MeshGroups [2][]Mesh

	TrailerReserved uint32
	TotalArea       float32
	CDF             []float32
}

// Read decodes a BinFBX container in one linear pass. On any structural
// violation it returns an error and no model; a partially decoded model is
// never exposed.
func Read(data []byte) (*BinFBX, error) {
	c := NewCursor(data)
	b := &BinFBX{}

	magic, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, fmt.Errorf("binfbx: bad magic 0x%x, want 0x%x", magic, Magic)
	}
	size0, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	size1, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	indexCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	indexSize, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	switch indexSize {
	case 1, 2, 4, 8:
		b.IndexSize = int(indexSize)
	default:
		return nil, fmt.Errorf("binfbx: index width %d not in {1,2,4,8}", indexSize)
	}

	if b.VertexBuffers[0], err = c.ReadBytes(int(size0)); err != nil {
		return nil, err
	}
	if b.VertexBuffers[1], err = c.ReadBytes(int(size1)); err != nil {
		return nil, err
	}
	if b.IndexBuffer, err = c.ReadBytes(int(indexCount) * b.IndexSize); err != nil {
		return nil, err
	}

	jointCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	b.Joints = make([]Joint, 0, jointCount)
	for i := uint32(0); i < jointCount; i++ {
		j, err := readJoint(c)
		if err != nil {
			return nil, fmt.Errorf("binfbx: joint %d: %w", i, err)
		}
		b.Joints = append(b.Joints, j)
	}

	if err := b.readGlobals(c); err != nil {
		return nil, err
	}

	materialCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	b.Materials = make([]Material, 0, materialCount)
	for i := uint32(0); i < materialCount; i++ {
		m, err := readMaterial(c)
		if err != nil {
			return nil, fmt.Errorf("binfbx: material %d: %w", i, err)
		}
		b.Materials = append(b.Materials, m)
	}

	mapCount0, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if b.MaterialMaps[0], err = c.ReadU32Array(int(mapCount0)); err != nil {
		return nil, err
	}

	altCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	b.AlternateMaterialMaps = make([]AlternateMaterialMap, 0, altCount)
	for i := uint32(0); i < altCount; i++ {
		var alt AlternateMaterialMap
		if alt.Name, err = c.ReadString(); err != nil {
			return nil, err
		}
		// Each alternate map has the same length as the group-0 map.
		if alt.Map, err = c.ReadU32Array(int(mapCount0)); err != nil {
			return nil, err
		}
		b.AlternateMaterialMaps = append(b.AlternateMaterialMaps, alt)
	}

	mapCount1, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if b.MaterialMaps[1], err = c.ReadU32Array(int(mapCount1)); err != nil {
		return nil, err
	}

	for g := 0; g < 2; g++ {
		meshCount, err := c.ReadU32()
		if err != nil {
			return nil, err
		}
		b.MeshGroups[g] = make([]Mesh, 0, meshCount)
		prevLOD := int64(-1)
		ordinal := uint32(0)
		for i := uint32(0); i < meshCount; i++ {
			m, err := readMesh(c, &b.VertexBuffers, b.IndexBuffer, b.IndexSize)
			if err != nil {
				return nil, fmt.Errorf("binfbx: group %d mesh %d: %w", g, i, err)
			}
			// Mesh ordinals restart at 0 whenever the LOD changes.
			if int64(m.LOD) != prevLOD {
				prevLOD = int64(m.LOD)
				ordinal = 0
			}
			m.Index = ordinal
			ordinal++
			b.MeshGroups[g] = append(b.MeshGroups[g], m)
		}
	}

	if b.TrailerReserved, err = c.ReadU32(); err != nil {
		return nil, err
	}
	if b.TotalArea, err = c.ReadF32(); err != nil {
		return nil, err
	}
	cdfCount, err := c.ReadU32()
	if err != nil {
		return nil, err
	}
	if b.CDF, err = c.ReadF32Array(int(cdfCount)); err != nil {
		return nil, err
	}

	if c.Remaining() != 0 {
		return nil, fmt.Errorf("binfbx: %d bytes of trailing data at offset %d", c.Remaining(), c.Offset())
	}
	return b, nil
}

// readGlobals decodes the global parameter block between the joints and
// the materials. Several of these fields are reserved; they round-trip
// unchanged.
func (b *BinFBX) readGlobals(c *Cursor) error {
	var err error
	for i := range b.Reserved {
		if b.Reserved[i], err = c.ReadU32(); err != nil {
			return err
		}
	}
	if b.GlobalScale, err = c.ReadF32(); err != nil {
		return err
	}
	count, err := c.ReadU32()
	if err != nil {
		return err
	}
	if b.LODThresholds, err = c.ReadF32Array(int(count)); err != nil {
		return err
	}
	if b.MirrorSign, err = c.ReadF32(); err != nil {
		return err
	}
	center, err := c.ReadF32Array(3)
	if err != nil {
		return err
	}
	copy(b.Center[:], center)
	if b.Radius, err = c.ReadF32(); err != nil {
		return err
	}
	min, err := c.ReadF32Array(3)
	if err != nil {
		return err
	}
	copy(b.Min[:], min)
	max, err := c.ReadF32Array(3)
	if err != nil {
		return err
	}
	copy(b.Max[:], max)
	if b.LODCount, err = c.ReadU32(); err != nil {
		return err
	}
	return nil
}

// Write re-serializes the container. The shared buffers are re-emitted
// exactly as captured at decode time, so an unedited model round-trips
// byte for byte; after RemoveMesh the removed geometry stays physically
// present but unreferenced (see DESIGN.md).
func (b *BinFBX) Write() ([]byte, error) {
	w := &Writer{}
	w.WriteU32(Magic)
	w.WriteU32(uint32(len(b.VertexBuffers[0])))
	w.WriteU32(uint32(len(b.VertexBuffers[1])))
	w.WriteU32(uint32(len(b.IndexBuffer) / b.IndexSize))
	w.WriteU32(uint32(b.IndexSize))
	w.WriteBytes(b.VertexBuffers[0])
	w.WriteBytes(b.VertexBuffers[1])
	w.WriteBytes(b.IndexBuffer)

	w.WriteU32(uint32(len(b.Joints)))
	for i := range b.Joints {
		b.Joints[i].write(w)
	}

	for _, v := range b.Reserved {
		w.WriteU32(v)
	}
	w.WriteF32(b.GlobalScale)
	w.WriteU32(uint32(len(b.LODThresholds)))
	w.WriteF32Array(b.LODThresholds)
	w.WriteF32(b.MirrorSign)
	w.WriteF32Array(b.Center[:])
	w.WriteF32(b.Radius)
	w.WriteF32Array(b.Min[:])
	w.WriteF32Array(b.Max[:])
	w.WriteU32(b.LODCount)

	w.WriteU32(uint32(len(b.Materials)))
	for i := range b.Materials {
		if err := b.Materials[i].write(w); err != nil {
			return nil, err
		}
	}

	w.WriteU32(uint32(len(b.MaterialMaps[0])))
	w.WriteU32Array(b.MaterialMaps[0])
	w.WriteU32(uint32(len(b.AlternateMaterialMaps)))
	for i := range b.AlternateMaterialMaps {
		w.WriteString(b.AlternateMaterialMaps[i].Name)
		w.WriteU32Array(b.AlternateMaterialMaps[i].Map)
	}
	w.WriteU32(uint32(len(b.MaterialMaps[1])))
	w.WriteU32Array(b.MaterialMaps[1])

	for g := 0; g < 2; g++ {
		w.WriteU32(uint32(len(b.MeshGroups[g])))
		for i := range b.MeshGroups[g] {
			b.MeshGroups[g][i].write(w)
		}
	}

	w.WriteU32(b.TrailerReserved)
	w.WriteF32(b.TotalArea)
	w.WriteU32(uint32(len(b.CDF)))
	w.WriteF32Array(b.CDF)
	return w.Bytes(), nil
}

// RemoveMesh deletes the mesh identified by (group, lod, index) together
// with its material-map entry and, for group 0, the matching entry of
// every alternate material map, then recomputes the trailer from the
// surviving meshes. Returns false without modifying anything when no mesh
// matches.
func (b *BinFBX) RemoveMesh(group int, lod, index uint32) bool {
	if group < 0 || group >= len(b.MeshGroups) {
		return false
	}
	pos := -1
	for i := range b.MeshGroups[group] {
		if b.MeshGroups[group][i].LOD == lod && b.MeshGroups[group][i].Index == index {
			pos = i
			break
		}
	}
	if pos < 0 {
		return false
	}
	b.MeshGroups[group] = append(b.MeshGroups[group][:pos], b.MeshGroups[group][pos+1:]...)
	if pos < len(b.MaterialMaps[group]) {
		b.MaterialMaps[group] = append(b.MaterialMaps[group][:pos], b.MaterialMaps[group][pos+1:]...)
	}
	if group == 0 {
		for i := range b.AlternateMaterialMaps {
			alt := &b.AlternateMaterialMaps[i]
			if pos < len(alt.Map) {
				alt.Map = append(alt.Map[:pos], alt.Map[pos+1:]...)
			}
		}
	}
	b.RecomputeTrailer()
	return true
}

// RecomputeTrailer rebuilds the surface-area CDF from the surviving
// meshes. When no mesh yields area data (or the total area is zero) the
// existing trailer is left untouched; there is nothing to recompute.
func (b *BinFBX) RecomputeTrailer() {
	var areas []float32
	any := false
	for g := range b.MeshGroups {
		for i := range b.MeshGroups[g] {
			var appended bool
			areas, appended = b.MeshGroups[g][i].AccumulateTriangleAreas(areas)
			any = any || appended
		}
	}
	if !any || len(areas) == 0 {
		return
	}
	var total float64
	for _, a := range areas {
		total += float64(a)
	}
	if total <= 0 {
		return
	}
	cdf := make([]float32, len(areas))
	running := 0.0
	for i, a := range areas {
		running += float64(a)
		cdf[i] = float32(running / total)
	}
	// Absorb floating-point drift so samplers can rely on the last entry.
	cdf[len(cdf)-1] = 1.0
	b.CDF = cdf
	b.TotalArea = float32(total)
	b.TrailerReserved = 0
}

// TriangleCount sums the triangles of every mesh in both groups.
func (b *BinFBX) TriangleCount() int {
	total := 0
	for g := range b.MeshGroups {
		for i := range b.MeshGroups[g] {
			total += int(b.MeshGroups[g][i].TriangleCount)
		}
	}
	return total
}
