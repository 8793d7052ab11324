package mesh

import "math"

// HierarchicalLimit is the default vertex-count ceiling above which the
// ensemble skips hierarchical clustering entirely. Agglomerative merging is
// quadratic in memory and worse in time, so it only runs on smaller meshes.
const HierarchicalLimit = 5000

// HierarchicalWard agglomerates the feature rows bottom-up under Ward
// linkage (minimum variance increase) and cuts the dendrogram at k clusters.
// Labels are contiguous in row order of first appearance.
func HierarchicalWard(features [][]float64, k int) []int {
	n := len(features)
	if k > n {
		k = n
	}
	if k < 1 {
		k = 1
	}

	size := make([]int, n)
	centroid := make([][]float64, n)
	active := make([]bool, n)
	member := make([][]int, n)
	for i := 0; i < n; i++ {
		size[i] = 1
		centroid[i] = append([]float64(nil), features[i]...)
		active[i] = true
		member[i] = []int{i}
	}

	// Ward merge cost between two clusters from sizes and centroids.
	cost := func(a, b int) float64 {
		na, nb := float64(size[a]), float64(size[b])
		return na * nb / (na + nb) * sqDist(centroid[a], centroid[b])
	}

	// Per-cluster nearest active neighbor cache; recomputed lazily when a
	// cached partner disappears in a merge.
	nearest := make([]int, n)
	nearestCost := make([]float64, n)
	rescan := func(a int) {
		nearest[a] = -1
		nearestCost[a] = math.MaxFloat64
		for b := 0; b < n; b++ {
			if b == a || !active[b] {
				continue
			}
			if c := cost(a, b); c < nearestCost[a] {
				nearestCost[a] = c
				nearest[a] = b
			}
		}
	}
	for i := 0; i < n; i++ {
		rescan(i)
	}

	remaining := n
	for remaining > k {
		// Pick the globally cheapest merge.
		best, bestCost := -1, math.MaxFloat64
		for i := 0; i < n; i++ {
			if active[i] && nearest[i] >= 0 && nearestCost[i] < bestCost {
				bestCost = nearestCost[i]
				best = i
			}
		}
		if best < 0 {
			break
		}
		a, b := best, nearest[best]

		// Merge b into a.
		na, nb := float64(size[a]), float64(size[b])
		for d := range centroid[a] {
			centroid[a][d] = (centroid[a][d]*na + centroid[b][d]*nb) / (na + nb)
		}
		size[a] += size[b]
		member[a] = append(member[a], member[b]...)
		active[b] = false
		remaining--

		rescan(a)
		for i := 0; i < n; i++ {
			if !active[i] || i == a {
				continue
			}
			if nearest[i] == a || nearest[i] == b {
				rescan(i)
			} else if c := cost(i, a); c < nearestCost[i] {
				nearestCost[i] = c
				nearest[i] = a
			}
		}
	}

	labels := make([]int, n)
	next := 0
	assigned := make(map[int]int)
	for i := 0; i < n; i++ {
		if !active[i] {
			continue
		}
		if _, ok := assigned[i]; !ok {
			assigned[i] = next
			next++
		}
	}
	for cl, id := range assigned {
		for _, row := range member[cl] {
			labels[row] = id
		}
	}
	return relabelContiguous(labels)
}
