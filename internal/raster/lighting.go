package raster

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightConfig holds precomputed lighting parameters for the flat-shaded
// preview.
type LightConfig struct {
	LightDir mgl32.Vec3
	RimDir   mgl32.Vec3
	Ambient  float64
	Hemi     float64
	Direct   float64
	Rim      float64
}

// DefaultLightConfig returns a key light from the upper front-right with a
// cool rim from the back-left.
func DefaultLightConfig() LightConfig {
	return LightConfig{
		LightDir: mgl32.Vec3{180, 260, 140}.Normalize(),
		RimDir:   mgl32.Vec3{-160, 130, -210}.Normalize(),
		Ambient:  0.35,
		Hemi:     0.25,
		Direct:   0.55,
		Rim:      0.20,
	}
}

// ComputeShade returns the combined lighting scalar for a face normal.
func (lc *LightConfig) ComputeShade(normal mgl32.Vec3) float64 {
	// Lambertian, abs for double-sided geometry
	ndlMain := math.Abs(float64(normal.Dot(lc.LightDir)))
	ndlRim := math.Abs(float64(normal.Dot(lc.RimDir)))

	// Hemisphere fill
	hemi := (1.0-math.Abs(float64(normal.Y())))*0.5 + 0.5

	shade := lc.Ambient + hemi*lc.Hemi + ndlMain*lc.Direct + ndlRim*lc.Rim
	if shade > 1 {
		shade = 1
	}
	return shade
}
