package mesh

import "testing"

func TestEstimateClusterCount(t *testing.T) {
	cases := []struct {
		text string
		want int
	}{
		{"", 3},
		{"a mountain range", 3},
		{"lake with forest and rocks", 5},
		{"snowy mountain lake with forest, rocks and ice", 7},
		{"LAKE", 3}, // matching is case-insensitive, "lake" alone gives 1+2
	}
	for _, c := range cases {
		if got := EstimateClusterCount(c.text); got != c.want {
			t.Errorf("EstimateClusterCount(%q) = %d, want %d", c.text, got, c.want)
		}
	}
}

func TestCandidateCategoriesOrder(t *testing.T) {
	// Candidates come out in declaration order regardless of where the
	// keywords sit in the text.
	got := CandidateCategories("rocks by the lake under the trees")
	want := []Category{Water, Vegetation, Rocks}
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("candidate[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestCandidateCategoriesDefault(t *testing.T) {
	got := CandidateCategories("something entirely unrelated")
	want := []Category{Terrain, Vegetation, Water}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("default candidate[%d] = %s, want %s", i, got[i], want[i])
		}
	}
}

func TestMapClustersOverflow(t *testing.T) {
	mapping := MapClusters(5, "calm lake")
	if mapping[0] != Water {
		t.Errorf("cluster 0 = %s, want water", mapping[0])
	}
	for i := 1; i < 5; i++ {
		if mapping[i] != Terrain {
			t.Errorf("overflow cluster %d = %s, want terrain", i, mapping[i])
		}
	}
}

func TestMapClustersColorWords(t *testing.T) {
	// Color words participate in mapping but not in the cluster-count
	// estimate.
	if got := EstimateClusterCount("blue and green"); got != 3 {
		t.Errorf("EstimateClusterCount = %d, want the floor 3", got)
	}
	mapping := MapClusters(2, "blue and green")
	if mapping[0] != Water || mapping[1] != Vegetation {
		t.Errorf("mapping = %v, want [water vegetation]", mapping)
	}
}
