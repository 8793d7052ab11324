package mesh

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl64"
)

const epsilon = 1e-8

// GeometricFeatures holds the per-vertex geometric descriptors. All scalar
// slices have one value per vertex; Normals are unit length or the (0,0,1)
// fallback.
type GeometricFeatures struct {
	Height         []float64 // up-axis coordinate, min-max normalized
	Curvature      []float64 // angle defect, or neighbor-spread fallback
	Roughness      []float64 // mean angular normal variation over 8-NN
	Density        []float64 // inverse mean distance to 10-NN
	Slope          []float64 // mean |dz/dxy| over adjacency neighbors
	CenterDistance []float64 // distance to centroid, normalized to [0,1]
	Normals        []mgl64.Vec3
}

// ExtractGeometricFeatures computes all geometric descriptors for a mesh.
// It never fails: degenerate inputs (coincident points, isolated vertices)
// degrade to zero-valued features and the default up normal.
//
// Roughness and density use a full pairwise neighbor search, which is fine
// up to a few tens of thousands of vertices but quadratic beyond that.
func ExtractGeometricFeatures(m *Mesh, g *Graph) GeometricFeatures {
	n := len(m.Vertices)
	gf := GeometricFeatures{
		Height:         normalizedHeights(m.Vertices),
		Slope:          make([]float64, n),
		CenterDistance: make([]float64, n),
	}

	gf.Normals = vertexNormals(m, g)
	gf.Curvature = vertexCurvature(m, g)

	// Shared k-NN pass for roughness (k=8) and density (k=10).
	knn := nearestNeighbors(m.Vertices, 10)
	gf.Roughness = roughness(gf.Normals, knn, 8)
	gf.Density = localDensity(m.Vertices, knn, 10)

	for i, v := range m.Vertices {
		gf.Slope[i] = localSlope(m.Vertices, v, g.Neighbors(i))
	}

	center := m.Centroid()
	maxDist := 0.0
	for i, v := range m.Vertices {
		d := v.Sub(center).Len()
		gf.CenterDistance[i] = d
		if d > maxDist {
			maxDist = d
		}
	}
	for i := range gf.CenterDistance {
		gf.CenterDistance[i] /= maxDist + epsilon
	}

	return gf
}

// normalizedHeights min-max rescales the Z coordinate across all vertices.
func normalizedHeights(vertices []mgl64.Vec3) []float64 {
	min, max := math.MaxFloat64, -math.MaxFloat64
	for _, v := range vertices {
		if v.Z() < min {
			min = v.Z()
		}
		if v.Z() > max {
			max = v.Z()
		}
	}
	h := make([]float64, len(vertices))
	for i, v := range vertices {
		h[i] = (v.Z() - min) / (max - min + epsilon)
	}
	return h
}

// vertexNormals averages incident face normals per vertex. Vertices without
// a usable face normal fall back to the cross product of the edges to their
// first two adjacency neighbors, and to (0,0,1) when fewer than two exist.
func vertexNormals(m *Mesh, g *Graph) []mgl64.Vec3 {
	n := len(m.Vertices)
	acc := make([]mgl64.Vec3, n)
	for _, f := range m.Faces {
		a, b, c := m.Vertices[f[0]], m.Vertices[f[1]], m.Vertices[f[2]]
		// Unnormalized cross product weights large faces more heavily.
		fn := b.Sub(a).Cross(c.Sub(a))
		for _, vi := range f {
			acc[vi] = acc[vi].Add(fn)
		}
	}

	normals := make([]mgl64.Vec3, n)
	for i := range normals {
		if l := acc[i].Len(); l > epsilon {
			normals[i] = acc[i].Mul(1 / l)
			continue
		}
		normals[i] = fallbackNormal(m.Vertices, i, g.Neighbors(i))
	}
	return normals
}

func fallbackNormal(vertices []mgl64.Vec3, i int, neighbors []int) mgl64.Vec3 {
	up := mgl64.Vec3{0, 0, 1}
	if len(neighbors) < 2 {
		return up
	}
	v1 := vertices[neighbors[0]].Sub(vertices[i])
	v2 := vertices[neighbors[1]].Sub(vertices[i])
	nrm := v1.Cross(v2)
	if l := nrm.Len(); l > epsilon {
		return nrm.Mul(1 / l)
	}
	return up
}

// vertexCurvature prefers the angle-defect estimate (2*pi minus the sum of
// incident face corner angles). Vertices with no incident face use the
// neighbor-spread fallback: the standard deviation of distances to the
// centroid of their adjacency neighbors, 0 when fewer than three exist.
func vertexCurvature(m *Mesh, g *Graph) []float64 {
	n := len(m.Vertices)
	angleSum := make([]float64, n)
	hasFace := make([]bool, n)

	for _, f := range m.Faces {
		for i := 0; i < 3; i++ {
			vi := f[i]
			a := m.Vertices[f[(i+1)%3]].Sub(m.Vertices[vi])
			b := m.Vertices[f[(i+2)%3]].Sub(m.Vertices[vi])
			la, lb := a.Len(), b.Len()
			if la < epsilon || lb < epsilon {
				continue
			}
			cos := clampUnit(a.Dot(b) / (la * lb))
			angleSum[vi] += math.Acos(cos)
			hasFace[vi] = true
		}
	}

	curv := make([]float64, n)
	for i := 0; i < n; i++ {
		if hasFace[i] {
			curv[i] = 2*math.Pi - angleSum[i]
			continue
		}
		curv[i] = neighborSpread(m.Vertices, g.Neighbors(i))
	}
	return curv
}

// neighborSpread is the fallback curvature proxy: std deviation of distances
// from the neighbor centroid to each neighbor.
func neighborSpread(vertices []mgl64.Vec3, neighbors []int) float64 {
	if len(neighbors) <= 2 {
		return 0
	}
	var center mgl64.Vec3
	for _, ni := range neighbors {
		center = center.Add(vertices[ni])
	}
	center = center.Mul(1 / float64(len(neighbors)))

	var sum, sumSq float64
	for _, ni := range neighbors {
		d := vertices[ni].Sub(center).Len()
		sum += d
		sumSq += d * d
	}
	mean := sum / float64(len(neighbors))
	variance := sumSq/float64(len(neighbors)) - mean*mean
	if variance < 0 {
		variance = 0
	}
	return math.Sqrt(variance)
}

// neighborSet holds one vertex's nearest neighbors in ascending distance
// order, excluding the vertex itself.
type neighborSet struct {
	indices   []int
	distances []float64
}

// nearestNeighbors computes up to k nearest neighbors for every vertex via a
// full pairwise distance pass.
func nearestNeighbors(vertices []mgl64.Vec3, k int) []neighborSet {
	n := len(vertices)
	sets := make([]neighborSet, n)
	type cand struct {
		idx  int
		dist float64
	}
	for i := 0; i < n; i++ {
		cands := make([]cand, 0, n-1)
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			cands = append(cands, cand{j, vertices[i].Sub(vertices[j]).Len()})
		}
		sort.Slice(cands, func(a, b int) bool {
			if cands[a].dist != cands[b].dist {
				return cands[a].dist < cands[b].dist
			}
			return cands[a].idx < cands[b].idx
		})
		if len(cands) > k {
			cands = cands[:k]
		}
		sets[i].indices = make([]int, len(cands))
		sets[i].distances = make([]float64, len(cands))
		for c, cd := range cands {
			sets[i].indices[c] = cd.idx
			sets[i].distances[c] = cd.dist
		}
	}
	return sets
}

// roughness is the mean angular difference between a vertex normal and the
// normals of its k nearest neighbors.
func roughness(normals []mgl64.Vec3, knn []neighborSet, k int) []float64 {
	r := make([]float64, len(normals))
	for i := range normals {
		nb := knn[i].indices
		if len(nb) > k {
			nb = nb[:k]
		}
		if len(nb) == 0 {
			continue
		}
		var sum float64
		for _, ni := range nb {
			sum += math.Acos(clampUnit(normals[i].Dot(normals[ni])))
		}
		r[i] = sum / float64(len(nb))
	}
	return r
}

// localDensity is the inverse of the mean distance to the k nearest
// neighbors.
func localDensity(vertices []mgl64.Vec3, knn []neighborSet, k int) []float64 {
	d := make([]float64, len(vertices))
	for i := range vertices {
		dists := knn[i].distances
		if len(dists) > k {
			dists = dists[:k]
		}
		if len(dists) == 0 {
			continue
		}
		var sum float64
		for _, dist := range dists {
			sum += dist
		}
		d[i] = 1.0 / (sum/float64(len(dists)) + epsilon)
	}
	return d
}

// localSlope averages |dz / horizontal distance| over adjacency neighbors,
// skipping neighbors at zero horizontal distance.
func localSlope(vertices []mgl64.Vec3, v mgl64.Vec3, neighbors []int) float64 {
	if len(neighbors) < 2 {
		return 0
	}
	var sum float64
	count := 0
	for _, ni := range neighbors {
		nv := vertices[ni]
		dx := nv.X() - v.X()
		dy := nv.Y() - v.Y()
		horizontal := math.Hypot(dx, dy)
		if horizontal <= epsilon {
			continue
		}
		sum += math.Abs((nv.Z() - v.Z()) / horizontal)
		count++
	}
	if count == 0 {
		return 0
	}
	return sum / float64(count)
}

func clampUnit(x float64) float64 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}
