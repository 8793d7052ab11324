package mesh

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// environmentPalettes are the fixed base colors per environment theme.
// These values are part of the numeric contract; tests assert them exactly.
var environmentPalettes = [NumEnvironments]Palette{
	Alpine: {
		Water:      {0.15, 0.45, 0.75},
		Terrain:    {0.45, 0.35, 0.25},
		Vegetation: {0.2, 0.6, 0.3},
		Rocks:      {0.6, 0.6, 0.65},
		Snow:       {0.95, 0.95, 1.0},
	},
	Desert: {
		Water:      {0.2, 0.5, 0.8},
		Terrain:    {0.85, 0.7, 0.45},
		Vegetation: {0.4, 0.6, 0.2},
		Rocks:      {0.7, 0.5, 0.3},
		Snow:       {0.9, 0.9, 0.9},
	},
	Forest: {
		Water:      {0.1, 0.3, 0.6},
		Terrain:    {0.3, 0.2, 0.1},
		Vegetation: {0.15, 0.5, 0.2},
		Rocks:      {0.4, 0.4, 0.4},
		Snow:       {0.8, 0.8, 0.85},
	},
	Tropical: {
		Water:      {0.0, 0.7, 0.9},
		Terrain:    {0.6, 0.4, 0.2},
		Vegetation: {0.1, 0.8, 0.3},
		Rocks:      {0.3, 0.3, 0.3},
		Snow:       {1.0, 1.0, 1.0},
	},
	Tundra: {
		Water:      {0.2, 0.4, 0.6},
		Terrain:    {0.5, 0.4, 0.3},
		Vegetation: {0.4, 0.5, 0.2},
		Rocks:      {0.5, 0.5, 0.6},
		Snow:       {0.9, 0.95, 1.0},
	},
	Volcanic: {
		Water:      {0.1, 0.2, 0.4},
		Terrain:    {0.3, 0.15, 0.1},
		Vegetation: {0.2, 0.4, 0.15},
		Rocks:      {0.2, 0.2, 0.2},
		Snow:       {0.85, 0.85, 0.9},
	},
}

// environmentKeywords drive auto-detection; environments are checked in
// declaration order and the first match wins.
var environmentKeywords = [NumEnvironments][]string{
	Alpine:   {"alpine", "mountain", "highland", "peak", "snow", "glacier"},
	Desert:   {"desert", "sand", "dune", "arid", "dry", "oasis"},
	Forest:   {"forest", "woodland", "tree", "jungle", "canopy"},
	Tropical: {"tropical", "palm", "beach", "island", "turquoise"},
	Tundra:   {"tundra", "arctic", "frozen", "polar", "cold"},
	Volcanic: {"volcanic", "lava", "crater", "ash", "basalt"},
}

// DetectEnvironment scans the scene text for environment keywords. Without a
// match it defaults to Alpine.
func DetectEnvironment(text string) Environment {
	lower := strings.ToLower(text)
	for e := 0; e < NumEnvironments; e++ {
		if containsAny(lower, environmentKeywords[e]) {
			return Environment(e)
		}
	}
	return Alpine
}

// BasePalette returns the unmodified palette table for an environment.
func BasePalette(env Environment) Palette {
	return environmentPalettes[env]
}

// paletteModifier adjusts one aspect of every palette color when its keyword
// appears in the scene text. Value/saturation deltas operate in HSV space;
// offsets add directly in RGB. Modifiers apply in declaration order.
type paletteModifier struct {
	keyword    string
	value      float64
	saturation float64
	offset     mgl64.Vec3
}

var paletteModifiers = []paletteModifier{
	{keyword: "bright", value: 0.2},
	{keyword: "dark", value: -0.15},
	{keyword: "vibrant", saturation: 0.3},
	{keyword: "muted", saturation: -0.2},
	{keyword: "warm", offset: mgl64.Vec3{0.1, 0.1, 0}},
	{keyword: "cool", offset: mgl64.Vec3{0, 0, 0.1}},
	{keyword: "golden", offset: mgl64.Vec3{0.2, 0.1, 0}},
	{keyword: "misty", offset: mgl64.Vec3{0, 0, 0.05}},
}

// BuildPalette selects the environment palette and customizes it with any
// modifier keywords found in the scene text. Results are clipped to [0,1].
func BuildPalette(env Environment, text string) Palette {
	p := environmentPalettes[env]
	lower := strings.ToLower(text)

	for _, mod := range paletteModifiers {
		if !strings.Contains(lower, mod.keyword) {
			continue
		}
		for c := range p {
			switch {
			case mod.value != 0:
				p[c] = adjustHSV(p[c], 0, mod.value)
			case mod.saturation != 0:
				p[c] = adjustHSV(p[c], mod.saturation, 0)
			default:
				p[c] = clipColor(p[c].Add(mod.offset))
			}
		}
	}
	return p
}

// adjustHSV shifts a color's saturation and value channels in HSV space and
// clips the result.
func adjustHSV(rgb mgl64.Vec3, dSat, dVal float64) mgl64.Vec3 {
	h, s, v := colorful.Color{R: rgb.X(), G: rgb.Y(), B: rgb.Z()}.Hsv()
	s = clamp01(s + dSat)
	v = clamp01(v + dVal)
	c := colorful.Hsv(h, s, v)
	return clipColor(mgl64.Vec3{c.R, c.G, c.B})
}

// clipColor clamps every channel to [0,1]. Clipping is idempotent.
func clipColor(c mgl64.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{clamp01(c.X()), clamp01(c.Y()), clamp01(c.Z())}
}

// ClipColors clamps a whole vertex color array to [0,1] in place.
func ClipColors(colors []mgl64.Vec3) {
	for i := range colors {
		colors[i] = clipColor(colors[i])
	}
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
