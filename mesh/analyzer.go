package mesh

import (
	"fmt"
	"image"
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// Analyzer runs the full segmentation and colorization pipeline. A zero
// Analyzer is not usable; construct one with NewAnalyzer.
type Analyzer struct {
	Tuning *TuningConfig
	// Seed drives every source of randomness (k-means initialization,
	// color noise) so identical inputs produce identical outputs.
	Seed int64
	// GenerateTexture enables the best-effort texture map stage.
	GenerateTexture bool
	// ForceEnvironment overrides text-based environment detection when
	// non-nil.
	ForceEnvironment *Environment
}

// NewAnalyzer builds an analyzer with the given tuning (nil selects the
// defaults) and deterministic seed.
func NewAnalyzer(tuning *TuningConfig, seed int64) *Analyzer {
	if tuning == nil {
		tuning = DefaultTuning()
	}
	return &Analyzer{Tuning: tuning, Seed: seed, GenerateTexture: true}
}

// Result is everything one analysis call produces. Texture is nil when
// texture generation was disabled or failed.
type Result struct {
	Labels       []int
	ClusterCount int
	Mapping      []Category
	Environment  Environment
	Palette      Palette
	Colors       []mgl64.Vec3
	Texture      *image.RGBA
	Info         ColorInfo
}

// AnalyzeAndColorize partitions the mesh into semantic regions and paints
// every vertex. It fails hard only for an empty mesh or out-of-range face
// indices; all other degeneracies fall back as documented per stage.
func (a *Analyzer) AnalyzeAndColorize(m *Mesh, text string) (*Result, error) {
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid mesh: %w", err)
	}

	log.Printf("[ANALYZE] %d vertices, %d faces", len(m.Vertices), len(m.Faces))
	graph := BuildGraph(m)
	geo := ExtractGeometricFeatures(m, graph)
	topo := ExtractTopologicalFeatures(m, graph)

	features := CombineFeatures(geo, topo)
	Standardize(features)

	k := EstimateClusterCount(text)
	ensemble := &Ensemble{
		Weights:           a.Tuning.Weights,
		HierarchicalLimit: a.Tuning.HierarchicalLimit,
		RNG:               rand.New(rand.NewSource(a.Seed)),
	}
	labels := ensemble.Segment(features, m.Vertices, k)

	labels = SmoothLabels(graph, labels, a.Tuning.SmoothingPasses, a.Tuning.SmoothingThreshold)
	// Smoothing can absorb small clusters entirely; renumber so the label
	// set is exactly 0..K'-1 again.
	labels = relabelContiguous(labels)
	clusterCount := countUnique(labels)
	log.Printf("[ANALYZE] %d semantic regions after smoothing", clusterCount)

	mapping := MapClusters(clusterCount, text)

	env := DetectEnvironment(text)
	if a.ForceEnvironment != nil {
		env = *a.ForceEnvironment
	}
	palette := BuildPalette(env, text)
	log.Printf("[COLOR] environment %s, %d clusters mapped", env, clusterCount)

	base := ApplyBaseColors(labels, mapping, palette)
	colors := ApplyEffects(m, base, geo, labels, mapping, EffectsParams{
		WetnessRadius: a.Tuning.WetnessRadius,
		NoiseSigma:    a.Tuning.NoiseSigma,
	}, rand.New(rand.NewSource(a.Seed+1)))

	result := &Result{
		Labels:       labels,
		ClusterCount: clusterCount,
		Mapping:      mapping,
		Environment:  env,
		Palette:      palette,
		Colors:       colors,
		Info:         BuildColorInfo(labels, mapping, palette, env),
	}

	if a.GenerateTexture {
		tex, err := GenerateTextureMap(m.Vertices, colors, a.Tuning.TextureSize)
		if err != nil {
			log.Printf("[COLOR] texture unavailable: %v", err)
		} else {
			result.Texture = tex
		}
	}

	return result, nil
}
