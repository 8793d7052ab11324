package mesh

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
)

// Mesh is a triangulated 3D surface: an ordered vertex list and an ordered
// list of index triples into it. The analysis pipeline borrows a mesh for the
// duration of one call and never mutates vertex positions.
type Mesh struct {
	Vertices []mgl64.Vec3
	Faces    [][3]int
}

// Validate checks the hard preconditions of the pipeline: at least one vertex
// and one face, and every face index within [0, len(Vertices)).
func (m *Mesh) Validate() error {
	if m == nil || len(m.Vertices) == 0 {
		return fmt.Errorf("mesh has no vertices")
	}
	if len(m.Faces) == 0 {
		return fmt.Errorf("mesh has no faces")
	}
	n := len(m.Vertices)
	for fi, f := range m.Faces {
		for _, vi := range f {
			if vi < 0 || vi >= n {
				return fmt.Errorf("face %d references vertex %d, out of range [0,%d)", fi, vi, n)
			}
		}
	}
	return nil
}

// Centroid returns the mean of all vertex positions.
func (m *Mesh) Centroid() mgl64.Vec3 {
	var c mgl64.Vec3
	for _, v := range m.Vertices {
		c = c.Add(v)
	}
	return c.Mul(1.0 / float64(len(m.Vertices)))
}

// Category is one of the closed set of semantic region kinds a vertex can
// belong to. The zero value is Water.
type Category int

const (
	Water Category = iota
	Terrain
	Vegetation
	Rocks
	Snow
)

// NumCategories is the size of the closed category set.
const NumCategories = int(Snow) + 1

var categoryNames = [NumCategories]string{"water", "terrain", "vegetation", "rocks", "snow"}

func (c Category) String() string {
	if c < 0 || int(c) >= NumCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// Categories returns all categories in declaration order.
func Categories() []Category {
	return []Category{Water, Terrain, Vegetation, Rocks, Snow}
}

// Environment names one of the fixed color palette themes.
type Environment int

const (
	Alpine Environment = iota
	Desert
	Forest
	Tropical
	Tundra
	Volcanic
)

// NumEnvironments is the size of the closed environment set.
const NumEnvironments = int(Volcanic) + 1

var environmentNames = [NumEnvironments]string{"alpine", "desert", "forest", "tropical", "tundra", "volcanic"}

func (e Environment) String() string {
	if e < 0 || int(e) >= NumEnvironments {
		return fmt.Sprintf("Environment(%d)", int(e))
	}
	return environmentNames[e]
}

// ParseEnvironment resolves an environment name. Used by the CLI boundary;
// the pipeline itself auto-detects the environment from text.
func ParseEnvironment(name string) (Environment, error) {
	for i, n := range environmentNames {
		if n == name {
			return Environment(i), nil
		}
	}
	return Alpine, fmt.Errorf("unknown environment %q", name)
}

// Palette maps every semantic category to an RGB base color in [0,1].
// Indexing by Category makes an unmapped category unrepresentable.
type Palette [NumCategories]mgl64.Vec3

// Color returns the base color for a category.
func (p Palette) Color(c Category) mgl64.Vec3 {
	return p[c]
}
