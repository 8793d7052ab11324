package mesh

import (
	"log"
	"math/rand"

	"github.com/go-gl/mathgl/mgl64"
)

// EnsembleWeights are the per-strategy voting weights. Defaults follow the
// documented tuning: density clustering is trusted slightly more than
// centroid clustering, height banding most of all (it never degenerates),
// hierarchical least.
type EnsembleWeights struct {
	KMeans       float64 `yaml:"kmeans"`
	DBSCAN       float64 `yaml:"dbscan"`
	Hierarchical float64 `yaml:"hierarchical"`
	HeightBands  float64 `yaml:"heightBands"`
}

// DefaultEnsembleWeights returns the documented default strategy weights.
func DefaultEnsembleWeights() EnsembleWeights {
	return EnsembleWeights{
		KMeans:       1.0,
		DBSCAN:       1.2,
		Hierarchical: 0.8,
		HeightBands:  1.5,
	}
}

// Ensemble fuses up to four clustering strategies by per-vertex weighted
// plurality vote.
type Ensemble struct {
	Weights EnsembleWeights
	// HierarchicalLimit is the vertex count above which hierarchical
	// clustering is skipped. Zero means the package default.
	HierarchicalLimit int
	// RNG drives the k-means restarts. A nil RNG falls back to a fixed
	// zero-seeded source, so a zero Ensemble is still deterministic.
	RNG *rand.Rand
}

// strategyVote is one strategy's labeling plus its voting weight.
type strategyVote struct {
	name   string
	labels []int
	weight float64
}

// Segment runs every applicable strategy on the standardized feature matrix
// and fuses the results. Strategies that degenerate to a single cluster are
// silently excluded; if all of them degenerate, the result falls back to a
// deterministic 3-band height quantization. Final labels are contiguous
// 0..K'-1 in order of first appearance.
func (e *Ensemble) Segment(features [][]float64, vertices []mgl64.Vec3, k int) []int {
	n := len(vertices)
	limit := e.HierarchicalLimit
	if limit <= 0 {
		limit = HierarchicalLimit
	}
	rng := e.RNG
	if rng == nil {
		rng = rand.New(rand.NewSource(0))
	}

	var votes []strategyVote
	add := func(name string, labels []int, weight float64) {
		if countUnique(labels) <= 1 {
			log.Printf("[SEGMENT] %s degenerated to a single cluster, excluded from vote", name)
			return
		}
		votes = append(votes, strategyVote{name, labels, weight})
	}

	add("kmeans", KMeans(features, k, rng), e.Weights.KMeans)

	minSamples := n / 100
	if minSamples < 5 {
		minSamples = 5
	}
	add("dbscan", DBSCAN(features, DBSCANParams{
		Eps:        EstimateEps(features),
		MinSamples: minSamples,
	}), e.Weights.DBSCAN)

	if n < limit {
		add("hierarchical", HierarchicalWard(features, k), e.Weights.Hierarchical)
	} else {
		log.Printf("[SEGMENT] skipping hierarchical clustering for %d vertices (limit %d)", n, limit)
	}

	add("height", HeightBands(vertices, k), e.Weights.HeightBands)

	if len(votes) == 0 {
		log.Printf("[SEGMENT] all strategies degenerated, falling back to 3-band height quantization")
		return relabelContiguous(HeightBands(vertices, 3))
	}

	fused := fuseVotes(votes, n)
	return relabelContiguous(fused)
}

// fuseVotes picks, per vertex, the label with the highest summed weight among
// the labels the strategies assigned to it. Ties keep the label proposed by
// the earliest strategy in run order, which is deterministic.
func fuseVotes(votes []strategyVote, n int) []int {
	fused := make([]int, n)
	tally := make(map[int]float64)
	for i := 0; i < n; i++ {
		for k := range tally {
			delete(tally, k)
		}
		for _, v := range votes {
			tally[v.labels[i]] += v.weight
		}
		best := votes[0].labels[i]
		bestWeight := tally[best]
		for _, v := range votes[1:] {
			l := v.labels[i]
			if tally[l] > bestWeight {
				bestWeight = tally[l]
				best = l
			}
		}
		fused[i] = best
	}
	return fused
}

// HeightBands quantizes normalized vertex height into k equal-width bins.
// It is fully deterministic and never degenerates as long as heights vary.
func HeightBands(vertices []mgl64.Vec3, k int) []int {
	heights := normalizedHeights(vertices)
	labels := make([]int, len(vertices))
	for i, h := range heights {
		band := int(h * float64(k))
		if band >= k {
			band = k - 1
		}
		if band < 0 {
			band = 0
		}
		labels[i] = band
	}
	return labels
}

// relabelContiguous renumbers labels to 0..K'-1 ordered by first appearance
// in vertex order.
func relabelContiguous(labels []int) []int {
	mapping := make(map[int]int)
	out := make([]int, len(labels))
	next := 0
	for i, l := range labels {
		id, ok := mapping[l]
		if !ok {
			id = next
			mapping[l] = id
			next++
		}
		out[i] = id
	}
	return out
}

func countUnique(labels []int) int {
	seen := make(map[int]struct{}, 8)
	for _, l := range labels {
		seen[l] = struct{}{}
	}
	return len(seen)
}
