package mesh

import "gonum.org/v1/gonum/stat"

// FeatureChannels is the number of scalar channels in the combined matrix:
// height, curvature, roughness, density, slope, center distance, degree,
// clustering coefficient, boundary distance. Vector channels (normals) are
// excluded.
const FeatureChannels = 9

// CombineFeatures stacks all scalar feature channels into one row-per-vertex
// matrix in a fixed channel order.
func CombineFeatures(gf GeometricFeatures, tf TopologicalFeatures) [][]float64 {
	n := len(gf.Height)
	channels := [FeatureChannels][]float64{
		gf.Height,
		gf.Curvature,
		gf.Roughness,
		gf.Density,
		gf.Slope,
		gf.CenterDistance,
		tf.Degree,
		tf.Clustering,
		tf.BoundaryDistance,
	}
	matrix := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, FeatureChannels)
		for c, ch := range channels {
			row[c] = ch[i]
		}
		matrix[i] = row
	}
	return matrix
}

// Standardize rescales each column to zero mean and unit variance in place.
// The epsilon on the divisor keeps constant columns at zero instead of NaN.
func Standardize(matrix [][]float64) {
	if len(matrix) == 0 {
		return
	}
	cols := len(matrix[0])
	column := make([]float64, len(matrix))
	for c := 0; c < cols; c++ {
		for i := range matrix {
			column[i] = matrix[i][c]
		}
		mean := stat.Mean(column, nil)
		std := stat.PopStdDev(column, nil)
		for i := range matrix {
			matrix[i][c] = (matrix[i][c] - mean) / (std + epsilon)
		}
	}
}
