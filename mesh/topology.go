package mesh

import (
	"math"
	"sort"
)

// Graph is the undirected vertex adjacency graph of a mesh: two vertices are
// adjacent iff they co-occur in some face. Neighbor lists are kept sorted so
// every traversal is deterministic.
type Graph struct {
	adj       []map[int]struct{}
	neighbors [][]int
	// incidence counts how many faces each vertex appears in. A vertex
	// shared by f faces has incidence f, regardless of its edge degree.
	incidence []int
}

// BuildGraph constructs the adjacency graph from face connectivity.
func BuildGraph(m *Mesh) *Graph {
	n := len(m.Vertices)
	g := &Graph{
		adj:       make([]map[int]struct{}, n),
		neighbors: make([][]int, n),
		incidence: make([]int, n),
	}
	for i := range g.adj {
		g.adj[i] = make(map[int]struct{})
	}

	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			g.incidence[f[i]]++
			for j := i + 1; j < 3; j++ {
				a, b := f[i], f[j]
				if a == b {
					continue
				}
				g.adj[a][b] = struct{}{}
				g.adj[b][a] = struct{}{}
			}
		}
	}

	for i, set := range g.adj {
		nb := make([]int, 0, len(set))
		for v := range set {
			nb = append(nb, v)
		}
		sort.Ints(nb)
		g.neighbors[i] = nb
	}
	return g
}

// Neighbors returns the sorted adjacency list of vertex i. The returned slice
// is shared; callers must not modify it.
func (g *Graph) Neighbors(i int) []int {
	return g.neighbors[i]
}

// Degree returns the number of distinct vertices adjacent to vertex i.
func (g *Graph) Degree(i int) int {
	return len(g.neighbors[i])
}

// Adjacent reports whether vertices a and b share an edge.
func (g *Graph) Adjacent(a, b int) bool {
	_, ok := g.adj[a][b]
	return ok
}

// ClusteringCoefficient returns the fraction of neighbor pairs of vertex i
// that are themselves adjacent. Vertices with fewer than two neighbors have
// coefficient 0.
func (g *Graph) ClusteringCoefficient(i int) float64 {
	nb := g.neighbors[i]
	d := len(nb)
	if d < 2 {
		return 0
	}
	links := 0
	for a := 0; a < d; a++ {
		for b := a + 1; b < d; b++ {
			if g.Adjacent(nb[a], nb[b]) {
				links++
			}
		}
	}
	return 2.0 * float64(links) / float64(d*(d-1))
}

// TopologicalFeatures holds the per-vertex graph descriptors used for
// segmentation. All slices have one entry per vertex.
type TopologicalFeatures struct {
	Degree           []float64
	Clustering       []float64
	BoundaryDistance []float64
}

// ExtractTopologicalFeatures computes degree, local clustering coefficient
// and normalized boundary distance for every vertex.
func ExtractTopologicalFeatures(m *Mesh, g *Graph) TopologicalFeatures {
	n := len(m.Vertices)
	tf := TopologicalFeatures{
		Degree:     make([]float64, n),
		Clustering: make([]float64, n),
	}
	for i := 0; i < n; i++ {
		tf.Degree[i] = float64(g.Degree(i))
		tf.Clustering[i] = g.ClusteringCoefficient(i)
	}
	tf.BoundaryDistance = boundaryDistances(m, g)
	return tf
}

// boundaryDistances identifies boundary vertices as those whose face
// incidence falls below 0.7x the mean incidence, then measures each vertex's
// Euclidean distance to the nearest boundary vertex, normalized by the
// maximum. Closed meshes typically produce no boundary vertices at all; in
// that case every vertex gets distance 1.0.
func boundaryDistances(m *Mesh, g *Graph) []float64 {
	n := len(m.Vertices)
	dist := make([]float64, n)

	var meanIncidence float64
	for _, c := range g.incidence {
		meanIncidence += float64(c)
	}
	meanIncidence /= float64(n)

	var boundary []int
	for i, c := range g.incidence {
		if float64(c) < meanIncidence*0.7 {
			boundary = append(boundary, i)
		}
	}
	if len(boundary) == 0 {
		for i := range dist {
			dist[i] = 1.0
		}
		return dist
	}

	isBoundary := make(map[int]bool, len(boundary))
	for _, b := range boundary {
		isBoundary[b] = true
	}

	maxDist := 0.0
	for i := 0; i < n; i++ {
		if isBoundary[i] {
			continue
		}
		min := math.MaxFloat64
		for _, b := range boundary {
			if d := m.Vertices[i].Sub(m.Vertices[b]).Len(); d < min {
				min = d
			}
		}
		dist[i] = min
		if min > maxDist {
			maxDist = min
		}
	}

	if maxDist > 0 {
		for i := range dist {
			dist[i] /= maxDist
		}
	}
	return dist
}
