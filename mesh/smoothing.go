package mesh

// Spatial smoothing defaults: three synchronous passes, and a vertex only
// adopts its neighbors' majority label when that majority exceeds 60% of the
// neighbor count.
const (
	DefaultSmoothingPasses    = 3
	DefaultSmoothingThreshold = 0.6
)

// SmoothLabels applies synchronous majority-vote label smoothing. Every pass
// reads only the previous pass's labels, so partial updates are never
// visible within a pass. A vertex changes label only when the most common
// neighbor label differs from its own and its count strictly exceeds
// threshold * neighborCount. The input slice is not modified.
func SmoothLabels(g *Graph, labels []int, passes int, threshold float64) []int {
	current := append([]int(nil), labels...)
	next := make([]int, len(labels))

	for pass := 0; pass < passes; pass++ {
		copy(next, current)
		for i := range current {
			neighbors := g.Neighbors(i)
			if len(neighbors) == 0 {
				continue
			}
			majority, count := majorityLabel(current, neighbors)
			if majority != current[i] && float64(count) > float64(len(neighbors))*threshold {
				next[i] = majority
			}
		}
		current, next = next, current
	}
	return current
}

// majorityLabel returns the most common label among the given vertices and
// its count. Ties resolve to the smallest label for determinism.
func majorityLabel(labels []int, vertices []int) (int, int) {
	counts := make(map[int]int, len(vertices))
	for _, v := range vertices {
		counts[labels[v]]++
	}
	best, bestCount := -1, 0
	for _, v := range vertices {
		l := labels[v]
		c := counts[l]
		if c > bestCount || (c == bestCount && l < best) {
			best = l
			bestCount = c
		}
	}
	return best, bestCount
}
