package mesh

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// NoiseLabel marks vertices that DBSCAN could not assign to any cluster.
const NoiseLabel = -1

// DBSCANParams configures density clustering in standardized feature space.
type DBSCANParams struct {
	Eps        float64 // neighborhood radius
	MinSamples int     // minimum points (incl. the core point) for a core neighborhood
}

// EstimateEps derives the DBSCAN neighborhood radius from the k-distance
// graph: the 80th percentile of each row's distance to its k-th nearest
// neighbor counting the row itself, with k = min(10, rows/10), floored at 1.
// A k of 1 therefore degenerates to eps 0 (the self-distance).
func EstimateEps(features [][]float64) float64 {
	n := len(features)
	k := n / 10
	if k > 10 {
		k = 10
	}
	if k < 1 {
		k = 1
	}

	kth := make([]float64, 0, n)
	dists := make([]float64, 0, n-1)
	for i := range features {
		dists = dists[:0]
		for j := range features {
			if j == i {
				continue
			}
			dists = append(dists, sqDist(features[i], features[j]))
		}
		sort.Float64s(dists)
		// dists excludes the row itself, so the k-th neighbor including
		// self sits at index k-2.
		idx := k - 2
		if idx >= len(dists) {
			idx = len(dists) - 1
		}
		if idx < 0 {
			kth = append(kth, 0)
			continue
		}
		kth = append(kth, math.Sqrt(dists[idx]))
	}

	sort.Float64s(kth)
	return stat.Quantile(0.8, stat.LinInterp, kth, nil)
}

// DBSCAN runs density-based clustering over the feature rows. The returned
// labels are contiguous cluster ids in discovery order, with NoiseLabel for
// unassigned rows. Cluster count is data-dependent.
func DBSCAN(features [][]float64, p DBSCANParams) []int {
	n := len(features)
	labels := make([]int, n)
	for i := range labels {
		labels[i] = NoiseLabel
	}
	if n == 0 || p.Eps <= 0 {
		return labels
	}

	epsSq := p.Eps * p.Eps
	visited := make([]bool, n)
	cluster := 0

	regionQuery := func(i int) []int {
		var nb []int
		for j := 0; j < n; j++ {
			if sqDist(features[i], features[j]) <= epsSq {
				nb = append(nb, j)
			}
		}
		return nb
	}

	for i := 0; i < n; i++ {
		if visited[i] {
			continue
		}
		visited[i] = true
		seeds := regionQuery(i)
		if len(seeds) < p.MinSamples {
			continue // stays noise unless claimed by a later cluster
		}

		labels[i] = cluster
		for s := 0; s < len(seeds); s++ {
			j := seeds[s]
			if labels[j] == NoiseLabel {
				labels[j] = cluster
			}
			if visited[j] {
				continue
			}
			visited[j] = true
			nb := regionQuery(j)
			if len(nb) >= p.MinSamples {
				seeds = append(seeds, nb...)
			}
		}
		cluster++
	}
	return labels
}
