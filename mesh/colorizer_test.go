package mesh

import (
	"math"
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestApplyBaseColors(t *testing.T) {
	pal := BasePalette(Alpine)
	labels := []int{0, 1, 0, 7}
	mapping := []Category{Water, Vegetation}

	colors := ApplyBaseColors(labels, mapping, pal)
	if colors[0] != pal.Color(Water) || colors[2] != pal.Color(Water) {
		t.Errorf("water vertices = %v, %v", colors[0], colors[2])
	}
	if colors[1] != pal.Color(Vegetation) {
		t.Errorf("vegetation vertex = %v", colors[1])
	}
	// Labels outside the mapping fall back to terrain.
	if colors[3] != pal.Color(Terrain) {
		t.Errorf("unmapped vertex = %v, want terrain", colors[3])
	}
}

func TestApplyLighting(t *testing.T) {
	colors := []mgl64.Vec3{{1, 1, 1}, {1, 1, 1}}
	normals := []mgl64.Vec3{{0, 0, 1}, {0, 0, -1}}
	applyLighting(colors, normals)

	// An upward normal gets the full Lambert term, a downward one is
	// clipped at the ambient floor.
	up := 0.9 / math.Sqrt(0.99)
	if math.Abs(colors[0].X()-up) > 1e-9 {
		t.Errorf("upward intensity = %g, want %g", colors[0].X(), up)
	}
	if math.Abs(colors[1].X()-0.4) > 1e-9 {
		t.Errorf("downward intensity = %g, want ambient floor 0.4", colors[1].X())
	}
}

func TestApplyHeightEffectsTerrain(t *testing.T) {
	pal := BasePalette(Alpine)
	colors := []mgl64.Vec3{pal.Color(Terrain), pal.Color(Terrain)}
	applyHeightEffects(colors, []float64{0, 1}, []int{0, 0}, []Category{Terrain})

	if colors[0] != pal.Color(Terrain) {
		t.Errorf("sea-level terrain changed: %v", colors[0])
	}
	want := pal.Color(Terrain).Mul(1.2)
	if colors[1].Sub(want).Len() > 1e-9 {
		t.Errorf("high terrain = %v, want %v", colors[1], want)
	}
}

func TestApplyWetnessEffects(t *testing.T) {
	vertices := []mgl64.Vec3{
		{0, 0, 0},    // water
		{0.05, 0, 0}, // terrain within the wetness radius
		{5, 0, 0},    // terrain far away
	}
	labels := []int{0, 1, 1}
	mapping := []Category{Water, Terrain}
	pal := BasePalette(Alpine)

	colors := []mgl64.Vec3{pal.Color(Water), pal.Color(Terrain), pal.Color(Terrain)}
	applyWetnessEffects(vertices, colors, labels, mapping, 0.1)

	if colors[0] != pal.Color(Water) {
		t.Errorf("water vertex changed: %v", colors[0])
	}
	if colors[2] != pal.Color(Terrain) {
		t.Errorf("distant vertex changed: %v", colors[2])
	}
	near := colors[1]
	dry := pal.Color(Terrain)
	if near == dry {
		t.Error("vertex near water was not darkened")
	}
	if near.X() >= dry.X() || near.Y() >= dry.Y() {
		t.Errorf("wet vertex not darker: %v vs %v", near, dry)
	}
}

func TestApplyEffectsDeterministicAndBounded(t *testing.T) {
	m := makeGrid(6, 6, func(x, y int) float64 { return math.Sin(float64(x)) * 0.5 })
	g := BuildGraph(m)
	gf := ExtractGeometricFeatures(m, g)
	labels := HeightBands(m.Vertices, 3)
	mapping := []Category{Water, Terrain, Vegetation}
	base := ApplyBaseColors(labels, mapping, BasePalette(Alpine))

	run := func() []mgl64.Vec3 {
		return ApplyEffects(m, base, gf, labels, mapping, EffectsParams{}, rand.New(rand.NewSource(9)))
	}
	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at %d: %v vs %v", i, a[i], b[i])
		}
		for c := 0; c < 3; c++ {
			if a[i][c] < 0 || a[i][c] > 1 {
				t.Fatalf("color[%d][%d] = %g outside [0,1]", i, c, a[i][c])
			}
		}
	}
	// The base array is borrowed, never written.
	if base[0] != BasePalette(Alpine).Color(mapping[labels[0]]) {
		t.Error("base colors were modified")
	}
}

func TestApplyEffectsFlatWaterShading(t *testing.T) {
	// On a flat all-water mesh only the lighting stage has any effect at
	// interior vertices: height and wetness skip water, curvature and
	// roughness are uniformly zero there, and the noise is driven to
	// nothing.
	m := makeGrid(5, 5, flatZ)
	g := BuildGraph(m)
	gf := ExtractGeometricFeatures(m, g)
	labels := make([]int, 25)
	mapping := []Category{Water}
	pal := BasePalette(Alpine)
	base := ApplyBaseColors(labels, mapping, pal)

	colors := ApplyEffects(m, base, gf, labels, mapping,
		EffectsParams{NoiseSigma: 1e-12}, rand.New(rand.NewSource(1)))

	center := 2*5 + 2
	want := pal.Color(Water).Mul(0.9 / math.Sqrt(0.99))
	if colors[center].Sub(want).Len() > 1e-4 {
		t.Errorf("interior water = %v, want %v", colors[center], want)
	}
}

func TestApplyRoughnessDesaturationUnclippedInput(t *testing.T) {
	// Terrain brightening can push a channel past 1 before this stage
	// runs. The conversion must see the overshoot, not a clipped copy:
	// the brightest channel survives desaturation above 1 and only the
	// final clip brings it down.
	over := mgl64.Vec3{1.02, 0.84, 0.54}
	colors := []mgl64.Vec3{over, over}
	applyRoughnessDesaturation(colors, []float64{1, 0})

	if colors[0].X() <= 1 {
		t.Errorf("rough channel = %g, want the overshoot preserved above 1", colors[0].X())
	}
	// Normalized roughness 0 leaves the color alone.
	if colors[1].Sub(over).Len() > 1e-9 {
		t.Errorf("smooth vertex changed: %v", colors[1])
	}
}

func TestMinMaxNormalize(t *testing.T) {
	out := minMaxNormalize([]float64{2, 4, 6})
	want := []float64{0, 0.5, 1}
	for i := range want {
		if math.Abs(out[i]-want[i]) > 1e-6 {
			t.Errorf("norm[%d] = %g, want %g", i, out[i], want[i])
		}
	}

	flat := minMaxNormalize([]float64{3, 3, 3})
	for i, v := range flat {
		if v != 0 {
			t.Errorf("constant input norm[%d] = %g, want 0", i, v)
		}
	}
}

func TestCategoryFor(t *testing.T) {
	mapping := []Category{Water, Snow}
	if got := categoryFor(mapping, 1); got != Snow {
		t.Errorf("categoryFor(1) = %s", got)
	}
	if got := categoryFor(mapping, -1); got != Terrain {
		t.Errorf("categoryFor(-1) = %s, want terrain", got)
	}
	if got := categoryFor(mapping, 5); got != Terrain {
		t.Errorf("categoryFor(5) = %s, want terrain", got)
	}
}
