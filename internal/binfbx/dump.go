package binfbx

import (
	"fmt"
	"io"
)

// Names for the recovered material family codes. Unlisted values print as
// unknown(n).
var materialFamilies = map[uint32]string{
	0: "standard",
	1: "character",
	2: "skin",
	3: "hair",
	4: "eye",
	5: "cloth",
}

var renderModes = map[uint32]string{
	0: "opaque",
	1: "alpha-test",
	2: "alpha-blend",
	3: "additive",
	4: "decal",
}

func lookupName(table map[uint32]string, v uint32) string {
	if name, ok := table[v]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", v)
}

// Dump writes a structural and statistical summary of the model. When
// verbose is set, every joint and uniform variable is listed as well.
func (b *BinFBX) Dump(w io.Writer, verbose bool) {
	fmt.Fprintf(w, "buffers: vertex0=%d vertex1=%d index=%d (width %d, %d indices)\n",
		len(b.VertexBuffers[0]), len(b.VertexBuffers[1]), len(b.IndexBuffer), b.IndexSize, len(b.IndexBuffer)/b.IndexSize)
	fmt.Fprintf(w, "joints: %d\n", len(b.Joints))
	if verbose {
		for i := range b.Joints {
			j := &b.Joints[i]
			fmt.Fprintf(w, "  [%d] %q parent=%d radius=%g\n", i, j.Name, j.Parent, j.Radius)
		}
	}
	fmt.Fprintf(w, "global scale: %g  mirror sign: %g  lod count: %d\n", b.GlobalScale, b.MirrorSign, b.LODCount)
	fmt.Fprintf(w, "lod thresholds: %v\n", b.LODThresholds)
	fmt.Fprintf(w, "aabb: min=%v max=%v center=%v radius=%g\n", b.Min, b.Max, b.Center, b.Radius)

	fmt.Fprintf(w, "materials: %d\n", len(b.Materials))
	for i := range b.Materials {
		m := &b.Materials[i]
		fmt.Fprintf(w, "  [%d] %q type=%q family=%s mode=%s uniforms=%d\n",
			i, m.Name, m.Type,
			lookupName(materialFamilies, m.Params[ParamFamily]),
			lookupName(renderModes, m.Params[ParamRenderMode]),
			len(m.Uniforms))
		if verbose {
			for j := range m.Uniforms {
				u := &m.Uniforms[j]
				switch u.Type {
				case UniformFloat, UniformRange, UniformVector, UniformColor:
					fmt.Fprintf(w, "      %q = %v\n", u.Name, u.Floats)
				case UniformTextureMap:
					fmt.Fprintf(w, "      %q -> %q\n", u.Name, u.Map)
				case UniformBoolean:
					fmt.Fprintf(w, "      %q = %t\n", u.Name, u.Flag != 0)
				default:
					fmt.Fprintf(w, "      %q (tag 0x%x)\n", u.Name, u.Type)
				}
			}
		}
	}
	fmt.Fprintf(w, "material maps: group0=%v group1=%v\n", b.MaterialMaps[0], b.MaterialMaps[1])
	for i := range b.AlternateMaterialMaps {
		alt := &b.AlternateMaterialMaps[i]
		fmt.Fprintf(w, "  alternate %q: %v\n", alt.Name, alt.Map)
	}

	for g := range b.MeshGroups {
		fmt.Fprintf(w, "group %d: %d meshes\n", g, len(b.MeshGroups[g]))
		for i := range b.MeshGroups[g] {
			m := &b.MeshGroups[g][i]
			stride0, stride1, _ := VertexSizes(m.Attributes)
			fmt.Fprintf(w, "  [%d] lod=%d index=%d vertices=%d (unique %d) triangles=%d strides=(%d,%d) attrs=%d\n",
				i, m.LOD, m.Index, m.VertexCount, m.UniqueVertices, m.TriangleCount, stride0, stride1, len(m.Attributes))
		}
	}

	fmt.Fprintf(w, "trailer: reserved=%d total area=%g cdf entries=%d (triangles %d)\n",
		b.TrailerReserved, b.TotalArea, len(b.CDF), b.TriangleCount())
	if len(b.CDF) > 0 {
		min, max := b.CDF[0], b.CDF[0]
		nonDecreasing, nonIncreasing := true, true
		for i := 1; i < len(b.CDF); i++ {
			if b.CDF[i] < min {
				min = b.CDF[i]
			}
			if b.CDF[i] > max {
				max = b.CDF[i]
			}
			if b.CDF[i] < b.CDF[i-1] {
				nonDecreasing = false
			}
			if b.CDF[i] > b.CDF[i-1] {
				nonIncreasing = false
			}
		}
		fmt.Fprintf(w, "cdf: min=%g max=%g last=%g non-decreasing=%t non-increasing=%t\n",
			min, max, b.CDF[len(b.CDF)-1], nonDecreasing, nonIncreasing)
	}
}
