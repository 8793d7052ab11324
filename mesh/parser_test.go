package mesh

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseOBJBasic(t *testing.T) {
	obj := `# a single quad
v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
f 1 2 3 4
`
	m, colors, err := ParseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(m.Vertices) != 4 {
		t.Fatalf("got %d vertices, want 4", len(m.Vertices))
	}
	if colors != nil {
		t.Error("no colors in input, got a color slice")
	}
	// The quad fan-triangulates into two faces sharing vertex 0.
	if len(m.Faces) != 2 {
		t.Fatalf("got %d faces, want 2", len(m.Faces))
	}
	if m.Faces[0] != [3]int{0, 1, 2} || m.Faces[1] != [3]int{0, 2, 3} {
		t.Errorf("faces = %v", m.Faces)
	}
}

func TestParseOBJSlashAndNegativeIndices(t *testing.T) {
	obj := `v 0 0 0
vt 0 0
vn 0 0 1
v 1 0 0
v 0 1 0
f 1/1/1 2/1/1 3/1/1
f -3 -2 -1
`
	m, _, err := ParseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	want := [3]int{0, 1, 2}
	if m.Faces[0] != want || m.Faces[1] != want {
		t.Errorf("faces = %v, want both %v", m.Faces, want)
	}
}

func TestParseOBJVertexColors(t *testing.T) {
	obj := `v 0 0 0 1 0 0
v 1 0 0 0 1 0
v 0 1 0 0 0 1
f 1 2 3
`
	_, colors, err := ParseOBJ(strings.NewReader(obj))
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if colors == nil {
		t.Fatal("expected vertex colors")
	}
	if colors[0] != (mgl64.Vec3{1, 0, 0}) || colors[2] != (mgl64.Vec3{0, 0, 1}) {
		t.Errorf("colors = %v", colors)
	}
}

func TestParseOBJErrors(t *testing.T) {
	cases := []struct {
		name string
		obj  string
	}{
		{"bad float", "v 0 zero 0\n"},
		{"short vertex", "v 0 0\nf 1 1 1\n"},
		{"short face", "v 0 0 0\nf 1 1\n"},
		{"bad face index", "v 0 0 0\nf 1 x 1\n"},
		{"out of range", "v 0 0 0\nv 1 0 0\nv 0 1 0\nf 1 2 9\n"},
		{"no faces", "v 0 0 0\n"},
		{"empty", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, _, err := ParseOBJ(strings.NewReader(tc.obj)); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestOBJRoundtripWithColors(t *testing.T) {
	m := makeGrid(3, 3, func(x, y int) float64 { return float64(x) * 0.25 })
	colors := make([]mgl64.Vec3, len(m.Vertices))
	for i := range colors {
		colors[i] = mgl64.Vec3{float64(i) / 10, 0.5, 1 - float64(i)/10}
	}

	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, colors); err != nil {
		t.Fatalf("WriteOBJ: %v", err)
	}

	back, backColors, err := ParseOBJ(&buf)
	if err != nil {
		t.Fatalf("ParseOBJ: %v", err)
	}
	if len(back.Vertices) != len(m.Vertices) || len(back.Faces) != len(m.Faces) {
		t.Fatalf("roundtrip shape %d/%d, want %d/%d",
			len(back.Vertices), len(back.Faces), len(m.Vertices), len(m.Faces))
	}
	for i := range m.Vertices {
		if back.Vertices[i].Sub(m.Vertices[i]).Len() > 1e-9 {
			t.Errorf("vertex %d = %v, want %v", i, back.Vertices[i], m.Vertices[i])
		}
		if backColors[i].Sub(colors[i]).Len() > 1e-9 {
			t.Errorf("color %d = %v, want %v", i, backColors[i], colors[i])
		}
	}
	for i := range m.Faces {
		if back.Faces[i] != m.Faces[i] {
			t.Errorf("face %d = %v, want %v", i, back.Faces[i], m.Faces[i])
		}
	}
}

func TestWriteOBJColorMismatch(t *testing.T) {
	m := makeGrid(2, 2, flatZ)
	var buf bytes.Buffer
	if err := WriteOBJ(&buf, m, []mgl64.Vec3{{1, 1, 1}}); err == nil {
		t.Error("expected error for color count mismatch")
	}
}

func TestLoadSaveOBJFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mesh.obj")
	m := makeGrid(3, 2, flatZ)

	if err := SaveOBJFile(path, m, nil); err != nil {
		t.Fatalf("SaveOBJFile: %v", err)
	}
	back, colors, err := LoadOBJFile(path)
	if err != nil {
		t.Fatalf("LoadOBJFile: %v", err)
	}
	if colors != nil {
		t.Error("unexpected colors from an uncolored file")
	}
	if len(back.Vertices) != 6 || len(back.Faces) != 4 {
		t.Errorf("loaded %d vertices, %d faces", len(back.Vertices), len(back.Faces))
	}

	if _, _, err := LoadOBJFile(filepath.Join(dir, "absent.obj")); err == nil {
		t.Error("expected error for a missing file")
	}
}
