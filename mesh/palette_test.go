package mesh

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	colorful "github.com/lucasb-eyer/go-colorful"
)

func TestDetectEnvironment(t *testing.T) {
	cases := []struct {
		text string
		want Environment
	}{
		{"sandy dune at sunset", Desert},
		{"dense jungle canopy", Forest},
		{"palm beach island", Tropical},
		{"arctic tundra plain", Tundra},
		{"lava fields and ash", Volcanic},
		{"mountain lake", Alpine},
		{"nothing matches here", Alpine}, // default
		{"frozen forest", Forest},       // declaration order: forest before tundra
	}
	for _, c := range cases {
		if got := DetectEnvironment(c.text); got != c.want {
			t.Errorf("DetectEnvironment(%q) = %s, want %s", c.text, got, c.want)
		}
	}
}

func TestBasePaletteValues(t *testing.T) {
	alpine := BasePalette(Alpine)
	if alpine.Color(Water) != (mgl64.Vec3{0.15, 0.45, 0.75}) {
		t.Errorf("alpine water = %v", alpine.Color(Water))
	}
	if alpine.Color(Snow) != (mgl64.Vec3{0.95, 0.95, 1.0}) {
		t.Errorf("alpine snow = %v", alpine.Color(Snow))
	}
	desert := BasePalette(Desert)
	if desert.Color(Terrain) != (mgl64.Vec3{0.85, 0.7, 0.45}) {
		t.Errorf("desert terrain = %v", desert.Color(Terrain))
	}
	volcanic := BasePalette(Volcanic)
	if volcanic.Color(Rocks) != (mgl64.Vec3{0.2, 0.2, 0.2}) {
		t.Errorf("volcanic rocks = %v", volcanic.Color(Rocks))
	}
}

func TestDesertPaletteFromDuneText(t *testing.T) {
	text := "rolling dune field"
	env := DetectEnvironment(text)
	if env != Desert {
		t.Fatalf("environment = %s, want desert", env)
	}

	// Without modifier words the built palette is the full base table.
	pal := BuildPalette(env, text)
	want := Palette{
		Water:      {0.2, 0.5, 0.8},
		Terrain:    {0.85, 0.7, 0.45},
		Vegetation: {0.4, 0.6, 0.2},
		Rocks:      {0.7, 0.5, 0.3},
		Snow:       {0.9, 0.9, 0.9},
	}
	for _, c := range Categories() {
		if pal.Color(c) != want.Color(c) {
			t.Errorf("%s = %v, want %v", c, pal.Color(c), want.Color(c))
		}
	}
}

func TestBuildPaletteNoModifiers(t *testing.T) {
	base := BasePalette(Alpine)
	built := BuildPalette(Alpine, "mountain lake")
	if built != base {
		t.Errorf("plain text changed the palette: %v vs %v", built, base)
	}
}

func TestBuildPaletteBright(t *testing.T) {
	base := BasePalette(Forest)
	built := BuildPalette(Forest, "bright forest clearing")

	for _, c := range Categories() {
		_, _, vBase := toHSV(base.Color(c))
		_, _, vBuilt := toHSV(built.Color(c))
		want := vBase + 0.2
		if want > 1 {
			want = 1
		}
		if math.Abs(vBuilt-want) > 1e-6 {
			t.Errorf("%s value = %g, want %g", c, vBuilt, want)
		}
	}
}

func TestBuildPaletteMutedLowersSaturation(t *testing.T) {
	base := BasePalette(Tropical)
	built := BuildPalette(Tropical, "muted tropical shore")

	_, sBase, _ := toHSV(base.Color(Vegetation))
	_, sBuilt, _ := toHSV(built.Color(Vegetation))
	want := sBase - 0.2
	if math.Abs(sBuilt-want) > 1e-6 {
		t.Errorf("vegetation saturation = %g, want %g", sBuilt, want)
	}
}

func TestBuildPaletteWarmOffset(t *testing.T) {
	base := BasePalette(Alpine)
	built := BuildPalette(Alpine, "warm evening glow")

	got := built.Color(Terrain)
	want := clipColor(base.Color(Terrain).Add(mgl64.Vec3{0.1, 0.1, 0}))
	if got.Sub(want).Len() > 1e-9 {
		t.Errorf("warm terrain = %v, want %v", got, want)
	}
}

func TestBuildPaletteModifierOrder(t *testing.T) {
	// "dark misty" applies the value drop first, then the blue offset.
	base := BasePalette(Alpine)
	manual := base
	for c := range manual {
		manual[c] = adjustHSV(manual[c], 0, -0.15)
		manual[c] = clipColor(manual[c].Add(mgl64.Vec3{0, 0, 0.05}))
	}
	built := BuildPalette(Alpine, "dark misty valley")
	for c := range built {
		if built[c].Sub(manual[c]).Len() > 1e-9 {
			t.Errorf("category %d = %v, want %v", c, built[c], manual[c])
		}
	}
}

func TestClipColorIdempotent(t *testing.T) {
	c := clipColor(mgl64.Vec3{-0.5, 0.5, 1.7})
	if c != (mgl64.Vec3{0, 0.5, 1}) {
		t.Fatalf("clip = %v", c)
	}
	if clipColor(c) != c {
		t.Error("clipping a clipped color changed it")
	}
}

func toHSV(rgb mgl64.Vec3) (float64, float64, float64) {
	return colorful.Color{R: rgb.X(), G: rgb.Y(), B: rgb.Z()}.Hsv()
}
