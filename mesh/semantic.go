package mesh

import "strings"

// estimateKeywords are the per-category keyword lists used to size the
// ensemble: each category mentioned in the scene text adds one expected
// cluster.
var estimateKeywords = [NumCategories][]string{
	Water:      {"water", "lake", "river", "stream", "pond", "spring"},
	Terrain:    {"mountain", "hill", "terrain", "ground", "landscape"},
	Vegetation: {"tree", "forest", "grass", "flower", "vegetation", "bush"},
	Rocks:      {"rock", "stone", "cliff", "boulder"},
	Snow:       {"snow", "ice", "frozen"},
}

// mappingKeywords are the broader per-category lists used to pick candidate
// categories for cluster assignment; they include color words and synonyms
// the cluster-count estimate deliberately ignores.
var mappingKeywords = [NumCategories][]string{
	Water:      {"water", "lake", "river", "stream", "pond", "spring", "pool", "blue"},
	Terrain:    {"terrain", "ground", "earth", "soil", "dirt", "brown"},
	Vegetation: {"tree", "forest", "grass", "flower", "green", "vegetation", "bush", "plant"},
	Rocks:      {"rock", "stone", "cliff", "boulder", "gray", "grey"},
	Snow:       {"snow", "ice", "frozen", "white", "winter"},
}

// Cluster-count clamp bounds for the ensemble.
const (
	MinClusters = 3
	MaxClusters = 8
)

// EstimateClusterCount derives the expected cluster count from the scene
// text: the number of distinct semantic categories mentioned, plus two,
// clamped to [MinClusters, MaxClusters].
func EstimateClusterCount(text string) int {
	lower := strings.ToLower(text)
	mentioned := 0
	for _, words := range estimateKeywords {
		if containsAny(lower, words) {
			mentioned++
		}
	}
	k := mentioned + 2
	if k < MinClusters {
		k = MinClusters
	}
	if k > MaxClusters {
		k = MaxClusters
	}
	return k
}

// CandidateCategories returns the ordered list of categories the scene text
// mentions, in declaration order. With no matches it falls back to the
// default candidate list terrain, vegetation, water.
func CandidateCategories(text string) []Category {
	lower := strings.ToLower(text)
	var candidates []Category
	for _, c := range Categories() {
		if containsAny(lower, mappingKeywords[c]) {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		candidates = []Category{Terrain, Vegetation, Water}
	}
	return candidates
}

// MapClusters assigns semantic categories to cluster ids: cluster i gets the
// i-th candidate category, overflow clusters default to terrain. The mapping
// is order-dependent by raw cluster id, not a feature-similarity match.
func MapClusters(clusterCount int, text string) []Category {
	candidates := CandidateCategories(text)
	mapping := make([]Category, clusterCount)
	for i := 0; i < clusterCount; i++ {
		if i < len(candidates) {
			mapping[i] = candidates[i]
		} else {
			mapping[i] = Terrain
		}
	}
	return mapping
}

func containsAny(lower string, words []string) bool {
	for _, w := range words {
		if strings.Contains(lower, w) {
			return true
		}
	}
	return false
}
