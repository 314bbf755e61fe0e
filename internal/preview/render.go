// Package preview renders a decoded BinFBX model to an image. Only the
// localized position data is used; meshes are drawn flat-shaded in a
// three-quarter orthographic view, one palette color per mesh.
package preview

import (
	"image"
	"math"

	"binfbx-tools/internal/binfbx"
	"binfbx-tools/internal/raster"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/draw"
)

// Options selects what to render and at which quality.
type Options struct {
	Group       int // 0 or 1, -1 for both
	LOD         int // -1 for all LODs
	Size        int
	Supersample int
}

var palette = [][3]uint8{
	{205, 205, 215},
	{200, 160, 140},
	{150, 180, 205},
	{170, 200, 150},
	{205, 180, 120},
	{180, 150, 195},
}

// Render draws the selected meshes into a Size x Size image. Meshes
// without a position attribute are skipped; an empty selection yields a
// fully transparent image.
func Render(model *binfbx.BinFBX, opts Options) *image.NRGBA {
	if opts.Size <= 0 {
		opts.Size = 512
	}
	if opts.Supersample <= 0 {
		opts.Supersample = 1
	}

	type meshGeometry struct {
		positions []mgl32.Vec3
		indices   []uint32
	}
	var selected []meshGeometry
	for g := range model.MeshGroups {
		if opts.Group >= 0 && g != opts.Group {
			continue
		}
		for i := range model.MeshGroups[g] {
			m := &model.MeshGroups[g][i]
			if opts.LOD >= 0 && m.LOD != uint32(opts.LOD) {
				continue
			}
			positions, ok := m.Positions()
			if !ok {
				continue
			}
			selected = append(selected, meshGeometry{positions: positions, indices: m.Indices()})
		}
	}
	if len(selected) == 0 {
		return image.NewNRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	}

	// Three-quarter view: yaw then a slight downward pitch.
	view := mgl32.Rotate3DX(mgl32.DegToRad(-20)).Mul3(mgl32.Rotate3DY(mgl32.DegToRad(35)))

	var minV, maxV [3]float64
	for k := 0; k < 3; k++ {
		minV[k], maxV[k] = math.Inf(1), math.Inf(-1)
	}
	rotated := make([][]mgl32.Vec3, len(selected))
	for mi := range selected {
		rotated[mi] = make([]mgl32.Vec3, len(selected[mi].positions))
		for vi, p := range selected[mi].positions {
			tv := view.Mul3x1(p)
			rotated[mi][vi] = tv
			for k := 0; k < 3; k++ {
				v := float64(tv[k])
				if v < minV[k] {
					minV[k] = v
				}
				if v > maxV[k] {
					maxV[k] = v
				}
			}
		}
	}

	renderSize := opts.Size * opts.Supersample
	span := math.Max(maxV[0]-minV[0], maxV[1]-minV[1])
	if span < 1e-3 {
		span = 1e-3
	}
	margin := 16 * opts.Supersample
	scale := float64(renderSize-2*margin) / span
	cx := (minV[0] + maxV[0]) / 2
	cy := (minV[1] + maxV[1]) / 2
	half := float64(renderSize) / 2

	fb := raster.NewFrameBuffer(renderSize, renderSize)
	lc := raster.DefaultLightConfig()

	for mi := range selected {
		verts := rotated[mi]
		px := make([]float64, len(verts))
		py := make([]float64, len(verts))
		pz := make([]float64, len(verts))
		for vi, v := range verts {
			px[vi] = (float64(v.X())-cx)*scale + half
			// Screen y grows downward.
			py[vi] = half - (float64(v.Y())-cy)*scale
			pz[vi] = float64(v.Z())
		}
		color := palette[mi%len(palette)]
		indices := selected[mi].indices
		for t := 0; t+2 < len(indices); t += 3 {
			vi := [3]int{int(indices[t]), int(indices[t+1]), int(indices[t+2])}
			raster.RasterizeTriangle(fb, px, py, pz, vi, color[0], color[1], color[2], &lc)
		}
	}

	img := fb.Image()
	if opts.Supersample > 1 {
		img = downsample(img, opts.Size)
	}
	return img
}

// downsample reduces the supersampled render with premultiplied-alpha
// CatmullRom filtering, avoiding dark halos at transparent edges.
func downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, premul.Bounds(), draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	for y := 0; y < targetSize; y++ {
		for x := 0; x < targetSize; x++ {
			si := dst.PixOffset(x, y)
			di := result.PixOffset(x, y)
			a := float64(dst.Pix[si+3])
			if a > 1 {
				inv := 255.0 / a
				result.Pix[di] = clamp8(float64(dst.Pix[si]) * inv)
				result.Pix[di+1] = clamp8(float64(dst.Pix[si+1]) * inv)
				result.Pix[di+2] = clamp8(float64(dst.Pix[si+2]) * inv)
			}
			result.Pix[di+3] = dst.Pix[si+3]
		}
	}
	return result
}

func clamp8(v float64) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v + 0.5)
}
