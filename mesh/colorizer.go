package mesh

import (
	"math"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Effect stage constants. Every value here is part of the shading contract;
// changing one changes the rendered result.
const (
	heightInfluence      = 0.2  // terrain brightening per unit height
	curvatureInfluence   = 0.15 // max darkening from curvature
	roughnessInfluence   = 0.1  // max desaturation from roughness
	wetnessFactor        = 0.3  // wetness darkening coefficient
	DefaultWetnessRadius = 0.1  // world-space reach of water influence
	DefaultNoiseSigma    = 0.15
	ambientFloor         = 0.4 // Lambert term lower clip
)

// Tint colors used by the height and wetness stages.
var (
	highAltitudeTint = mgl64.Vec3{0.6, 0.4, 0.2}
	lushGreenTint    = mgl64.Vec3{0.1, 0.8, 0.2}
	weatheredTint    = mgl64.Vec3{0.8, 0.8, 0.8}
	wetBlueTint      = mgl64.Vec3{0, 0, 0.1}
)

// ApplyBaseColors paints each vertex with the palette color of its cluster's
// semantic category. No blending happens here.
func ApplyBaseColors(labels []int, mapping []Category, pal Palette) []mgl64.Vec3 {
	colors := make([]mgl64.Vec3, len(labels))
	for i, l := range labels {
		colors[i] = pal.Color(categoryFor(mapping, l))
	}
	return colors
}

// EffectsParams carries the tunable knobs of the shading pipeline; zero
// values select the documented defaults.
type EffectsParams struct {
	WetnessRadius float64
	NoiseSigma    float64
}

// ApplyEffects runs the six shading stages in their fixed order: height,
// lighting, curvature, roughness, wetness, noise. Each stage reads the
// previous stage's output; the final array is clipped to [0,1]. The base
// color slice is not modified.
func ApplyEffects(m *Mesh, base []mgl64.Vec3, gf GeometricFeatures, labels []int, mapping []Category, params EffectsParams, rng *rand.Rand) []mgl64.Vec3 {
	radius := params.WetnessRadius
	if radius <= 0 {
		radius = DefaultWetnessRadius
	}
	sigma := params.NoiseSigma
	if sigma <= 0 {
		sigma = DefaultNoiseSigma
	}

	colors := append([]mgl64.Vec3(nil), base...)
	applyHeightEffects(colors, gf.Height, labels, mapping)
	applyLighting(colors, gf.Normals)
	applyCurvatureShading(colors, gf.Curvature)
	applyRoughnessDesaturation(colors, gf.Roughness)
	applyWetnessEffects(m.Vertices, colors, labels, mapping, radius)
	addColorNoise(colors, sigma, rng)
	ClipColors(colors)
	return colors
}

// applyHeightEffects tweaks colors by category and normalized height:
// terrain brightens with altitude, vegetation shifts toward a dry brown high
// up and a lush green low down, rocks weather toward light gray at the top.
func applyHeightEffects(colors []mgl64.Vec3, height []float64, labels []int, mapping []Category) {
	for i := range colors {
		h := height[i]
		switch categoryFor(mapping, labels[i]) {
		case Terrain:
			colors[i] = colors[i].Mul(1.0 + heightInfluence*h)
		case Vegetation:
			if h > 0.7 {
				colors[i] = blend(colors[i], highAltitudeTint, 0.3)
			} else if h < 0.3 {
				colors[i] = blend(colors[i], lushGreenTint, 0.2)
			}
		case Rocks:
			if h > 0.8 {
				colors[i] = blend(colors[i], weatheredTint, 0.2)
			}
		}
	}
}

// applyLighting multiplies each color by a Lambertian term for a fixed sun
// direction, clipped to an ambient floor so nothing goes fully black.
func applyLighting(colors []mgl64.Vec3, normals []mgl64.Vec3) {
	light := mgl64.Vec3{0.3, 0.3, 0.9}.Normalize()
	for i := range colors {
		intensity := normals[i].Dot(light)
		if intensity < ambientFloor {
			intensity = ambientFloor
		}
		if intensity > 1 {
			intensity = 1
		}
		colors[i] = colors[i].Mul(intensity)
	}
}

// applyCurvatureShading darkens crevices: colors scale down with min-max
// normalized curvature.
func applyCurvatureShading(colors []mgl64.Vec3, curvature []float64) {
	norm := minMaxNormalize(curvature)
	for i := range colors {
		colors[i] = colors[i].Mul(1.0 - curvatureInfluence*norm[i])
	}
}

// applyRoughnessDesaturation scales the HSV saturation channel down by up to
// roughnessInfluence for the roughest vertices. It runs on the raw colors:
// channels pushed past 1 by earlier stages stay there until the final clip,
// so the desaturation sees the true channel spread.
func applyRoughnessDesaturation(colors []mgl64.Vec3, rough []float64) {
	norm := minMaxNormalize(rough)
	for i := range colors {
		factor := 1.0 - roughnessInfluence*norm[i]
		h, s, v := colorful.Color{R: colors[i].X(), G: colors[i].Y(), B: colors[i].Z()}.Hsv()
		out := colorful.Hsv(h, s*factor, v)
		colors[i] = mgl64.Vec3{out.R, out.G, out.B}
	}
}

// applyWetnessEffects darkens and blue-shifts non-water vertices close to
// water, proportionally to proximity. Vertices beyond radius are untouched.
func applyWetnessEffects(vertices []mgl64.Vec3, colors []mgl64.Vec3, labels []int, mapping []Category, radius float64) {
	var waterCoords []mgl64.Vec3
	for i, l := range labels {
		if categoryFor(mapping, l) == Water {
			waterCoords = append(waterCoords, vertices[i])
		}
	}
	if len(waterCoords) == 0 {
		return
	}

	for i := range colors {
		if categoryFor(mapping, labels[i]) == Water {
			continue
		}
		minDist := math.MaxFloat64
		for _, w := range waterCoords {
			if d := vertices[i].Sub(w).Len(); d < minDist {
				minDist = d
			}
		}
		if minDist >= radius {
			continue
		}
		wetness := 1.0 - minDist/radius
		colors[i] = colors[i].Mul(1.0 - wetnessFactor*wetness*0.3)
		tint := wetBlueTint.Mul(wetness * 0.2)
		colors[i] = blend(colors[i], tint, 0.3)
	}
}

// addColorNoise adds independent Gaussian noise per channel per vertex.
func addColorNoise(colors []mgl64.Vec3, sigma float64, rng *rand.Rand) {
	for i := range colors {
		colors[i] = colors[i].Add(mgl64.Vec3{
			rng.NormFloat64() * sigma,
			rng.NormFloat64() * sigma,
			rng.NormFloat64() * sigma,
		})
	}
}

// blend mixes two colors: factor 0 keeps a, factor 1 gives b.
func blend(a, b mgl64.Vec3, factor float64) mgl64.Vec3 {
	return a.Mul(1 - factor).Add(b.Mul(factor))
}

// categoryFor looks up a cluster's category, defaulting to terrain for any
// id outside the mapping.
func categoryFor(mapping []Category, label int) Category {
	if label < 0 || label >= len(mapping) {
		return Terrain
	}
	return mapping[label]
}

// minMaxNormalize rescales values to [0,1] with an epsilon guard against a
// constant input.
func minMaxNormalize(values []float64) []float64 {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, v := range values {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = (v - min) / (max - min + epsilon)
	}
	return out
}
