package mesh

import "testing"

func TestSmoothLabelsFixesIsolatedVertex(t *testing.T) {
	m := makeGrid(5, 5, flatZ)
	g := BuildGraph(m)

	labels := make([]int, 25)
	center := 2*5 + 2
	labels[center] = 1

	smoothed := SmoothLabels(g, labels, DefaultSmoothingPasses, DefaultSmoothingThreshold)
	for i, l := range smoothed {
		if l != 0 {
			t.Errorf("smoothed[%d] = %d, want the isolated vertex absorbed", i, l)
		}
	}
	if labels[center] != 1 {
		t.Error("input slice was modified")
	}
}

func TestSmoothLabelsKeepsStableRegions(t *testing.T) {
	m := makeGrid(6, 6, flatZ)
	g := BuildGraph(m)

	// Two solid halves: the straight frontier never reaches the >60%
	// majority needed to flip either side.
	labels := make([]int, 36)
	for y := 0; y < 6; y++ {
		for x := 3; x < 6; x++ {
			labels[y*6+x] = 1
		}
	}

	smoothed := SmoothLabels(g, labels, 10, DefaultSmoothingThreshold)
	for i := range labels {
		if smoothed[i] != labels[i] {
			t.Errorf("vertex %d flipped from %d to %d", i, labels[i], smoothed[i])
		}
	}
}

func TestSmoothLabelsZeroPasses(t *testing.T) {
	m := makeGrid(3, 3, flatZ)
	g := BuildGraph(m)
	labels := []int{0, 1, 0, 1, 0, 1, 0, 1, 0}

	smoothed := SmoothLabels(g, labels, 0, DefaultSmoothingThreshold)
	for i := range labels {
		if smoothed[i] != labels[i] {
			t.Fatalf("zero passes changed vertex %d", i)
		}
	}
}

func TestMajorityLabelTie(t *testing.T) {
	labels := []int{4, 2, 4, 2}
	l, count := majorityLabel(labels, []int{0, 1, 2, 3})
	if l != 2 || count != 2 {
		t.Errorf("majority = (%d,%d), want the smallest tied label (2,2)", l, count)
	}
}
