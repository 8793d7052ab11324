package mesh

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// ParseOBJ reads a Wavefront OBJ mesh: v and f records, everything else
// skipped. It supports the common per-vertex color extension
// ("v x y z r g b"); the returned color slice is nil when no vertex carries
// colors. Faces with more than three vertices are fan-triangulated, and
// negative (relative) indices are resolved.
func ParseOBJ(r io.Reader) (*Mesh, []mgl64.Vec3, error) {
	m := &Mesh{}
	var colors []mgl64.Vec3
	hasColors := false

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		switch fields[0] {
		case "v":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: vertex needs 3 coordinates", lineNo)
			}
			var coords [6]float64
			n := len(fields) - 1
			if n > 6 {
				n = 6
			}
			for i := 0; i < n; i++ {
				val, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: bad vertex value %q: %w", lineNo, fields[i+1], err)
				}
				coords[i] = val
			}
			m.Vertices = append(m.Vertices, mgl64.Vec3{coords[0], coords[1], coords[2]})
			if n >= 6 {
				colors = append(colors, mgl64.Vec3{coords[3], coords[4], coords[5]})
				hasColors = true
			} else {
				colors = append(colors, mgl64.Vec3{})
			}
		case "f":
			if len(fields) < 4 {
				return nil, nil, fmt.Errorf("line %d: face needs at least 3 vertices", lineNo)
			}
			idx := make([]int, 0, len(fields)-1)
			for _, f := range fields[1:] {
				vi, err := parseFaceIndex(f, len(m.Vertices))
				if err != nil {
					return nil, nil, fmt.Errorf("line %d: %w", lineNo, err)
				}
				idx = append(idx, vi)
			}
			// Fan triangulation for quads and larger polygons.
			for i := 1; i < len(idx)-1; i++ {
				m.Faces = append(m.Faces, [3]int{idx[0], idx[i], idx[i+1]})
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("reading OBJ: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, nil, err
	}
	if !hasColors {
		colors = nil
	}
	return m, colors, nil
}

// parseFaceIndex resolves one face vertex reference ("7", "7/1", "7//3",
// "-1") to a zero-based vertex index.
func parseFaceIndex(field string, vertexCount int) (int, error) {
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	vi, err := strconv.Atoi(field)
	if err != nil {
		return 0, fmt.Errorf("bad face index %q: %w", field, err)
	}
	if vi < 0 {
		vi = vertexCount + vi
	} else {
		vi--
	}
	return vi, nil
}

// LoadOBJFile reads a mesh (and optional vertex colors) from an OBJ file.
func LoadOBJFile(path string) (*Mesh, []mgl64.Vec3, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening OBJ: %w", err)
	}
	defer f.Close()
	return ParseOBJ(f)
}

// WriteOBJ writes a mesh as Wavefront OBJ. When colors is non-nil it must
// have one entry per vertex; colors are appended to each v record.
func WriteOBJ(w io.Writer, m *Mesh, colors []mgl64.Vec3) error {
	if colors != nil && len(colors) != len(m.Vertices) {
		return fmt.Errorf("color count %d does not match vertex count %d", len(colors), len(m.Vertices))
	}

	bw := bufio.NewWriter(w)
	for i, v := range m.Vertices {
		if colors != nil {
			c := clipColor(colors[i])
			fmt.Fprintf(bw, "v %g %g %g %g %g %g\n", v.X(), v.Y(), v.Z(), c.X(), c.Y(), c.Z())
		} else {
			fmt.Fprintf(bw, "v %g %g %g\n", v.X(), v.Y(), v.Z())
		}
	}
	for _, f := range m.Faces {
		fmt.Fprintf(bw, "f %d %d %d\n", f[0]+1, f[1]+1, f[2]+1)
	}
	return bw.Flush()
}

// SaveOBJFile writes a mesh (and optional vertex colors) to an OBJ file.
func SaveOBJFile(path string, m *Mesh, colors []mgl64.Vec3) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating OBJ: %w", err)
	}
	defer f.Close()
	if err := WriteOBJ(f, m, colors); err != nil {
		return err
	}
	return nil
}
