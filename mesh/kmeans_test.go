package mesh

import (
	"math/rand"
	"testing"
)

// makeBlobs generates tightly packed 2D feature rows around each center,
// deterministic so tests never flake.
func makeBlobs(perBlob int, centers ...[2]float64) [][]float64 {
	var rows [][]float64
	for _, c := range centers {
		for i := 0; i < perBlob; i++ {
			rows = append(rows, []float64{
				c[0] + 0.01*float64(i),
				c[1] + 0.013*float64(i),
			})
		}
	}
	return rows
}

func TestKMeansSeparatesBlobs(t *testing.T) {
	features := makeBlobs(20, [2]float64{0, 0}, [2]float64{10, 10})
	labels := KMeans(features, 2, rand.New(rand.NewSource(1)))

	if len(labels) != 40 {
		t.Fatalf("got %d labels, want 40", len(labels))
	}
	for i := 1; i < 20; i++ {
		if labels[i] != labels[0] {
			t.Fatalf("first blob split: labels[%d]=%d, labels[0]=%d", i, labels[i], labels[0])
		}
	}
	for i := 21; i < 40; i++ {
		if labels[i] != labels[20] {
			t.Fatalf("second blob split: labels[%d]=%d, labels[20]=%d", i, labels[i], labels[20])
		}
	}
	if labels[0] == labels[20] {
		t.Errorf("blobs merged into one cluster %d", labels[0])
	}
}

func TestKMeansDeterministic(t *testing.T) {
	features := makeBlobs(15, [2]float64{0, 0}, [2]float64{5, 0}, [2]float64{0, 5})

	a := KMeans(features, 3, rand.New(rand.NewSource(42)))
	b := KMeans(features, 3, rand.New(rand.NewSource(42)))
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("same seed diverged at row %d: %d vs %d", i, a[i], b[i])
		}
	}
}

func TestKMeansClampsK(t *testing.T) {
	features := [][]float64{{0, 0}, {1, 1}, {2, 2}}
	labels := KMeans(features, 10, rand.New(rand.NewSource(1)))

	for i, l := range labels {
		if l < 0 || l >= 3 {
			t.Errorf("labels[%d] = %d outside [0,3)", i, l)
		}
	}
}
