package mesh

import "math/rand"

const (
	kmeansMaxIterations = 300
	kmeansRestarts      = 10
)

// KMeans partitions the feature rows into exactly k clusters with Lloyd's
// algorithm, restarted kmeansRestarts times from random initializations; the
// run with the lowest inertia wins. All randomness comes from rng, so a fixed
// seed gives identical labels.
func KMeans(features [][]float64, k int, rng *rand.Rand) []int {
	n := len(features)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	bestInertia := -1.0
	var bestLabels []int
	for restart := 0; restart < kmeansRestarts; restart++ {
		labels, inertia := kmeansOnce(features, k, rng)
		if bestInertia < 0 || inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}
	return bestLabels
}

func kmeansOnce(features [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	n := len(features)
	dims := len(features[0])

	// Initialize centroids from k distinct random rows.
	perm := rng.Perm(n)
	centroids := make([][]float64, k)
	for c := 0; c < k; c++ {
		centroids[c] = append([]float64(nil), features[perm[c]]...)
	}

	labels := make([]int, n)
	for i := range labels {
		labels[i] = -1
	}

	for iter := 0; iter < kmeansMaxIterations; iter++ {
		changed := false
		for i, row := range features {
			best := 0
			bestDist := sqDist(row, centroids[0])
			for c := 1; c < k; c++ {
				if d := sqDist(row, centroids[c]); d < bestDist {
					bestDist = d
					best = c
				}
			}
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if !changed {
			break
		}

		// Recompute centroids; empty clusters keep their previous position.
		counts := make([]int, k)
		sums := make([][]float64, k)
		for c := range sums {
			sums[c] = make([]float64, dims)
		}
		for i, row := range features {
			c := labels[i]
			counts[c]++
			for d, v := range row {
				sums[c][d] += v
			}
		}
		for c := 0; c < k; c++ {
			if counts[c] == 0 {
				continue
			}
			for d := 0; d < dims; d++ {
				centroids[c][d] = sums[c][d] / float64(counts[c])
			}
		}
	}

	inertia := 0.0
	for i, row := range features {
		inertia += sqDist(row, centroids[labels[i]])
	}
	return labels, inertia
}

func sqDist(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
