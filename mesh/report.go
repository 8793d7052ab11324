package mesh

// CategoryStat summarizes one semantic category's share of a colored mesh.
type CategoryStat struct {
	Color       [3]float64 `json:"color"`
	VertexCount int        `json:"vertexCount"`
	Percentage  float64    `json:"percentage"`
}

// ColorInfo is the aggregate report handed to external consumers: which
// environment was selected and how vertices distribute over semantic
// categories. Pure data, no side effects.
type ColorInfo struct {
	Environment      string                  `json:"environment"`
	Categories       map[string]CategoryStat `json:"categories"`
	TotalVertices    int                     `json:"totalVertices"`
	UniqueCategories int                     `json:"uniqueCategories"`
}

// BuildColorInfo counts vertices per resolved category and packages the
// result with the environment name and palette colors.
func BuildColorInfo(labels []int, mapping []Category, pal Palette, env Environment) ColorInfo {
	counts := make(map[Category]int)
	for _, l := range labels {
		counts[categoryFor(mapping, l)]++
	}

	info := ColorInfo{
		Environment:   env.String(),
		Categories:    make(map[string]CategoryStat, len(counts)),
		TotalVertices: len(labels),
	}
	for _, c := range Categories() {
		n, ok := counts[c]
		if !ok {
			continue
		}
		base := pal.Color(c)
		info.Categories[c.String()] = CategoryStat{
			Color:       [3]float64{base.X(), base.Y(), base.Z()},
			VertexCount: n,
			Percentage:  float64(n) / float64(len(labels)) * 100,
		}
		info.UniqueCategories++
	}
	return info
}
