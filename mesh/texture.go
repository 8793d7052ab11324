package mesh

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"github.com/anthonynsimon/bild/blur"
	"github.com/go-gl/mathgl/mgl64"
)

// DefaultTextureSize is the default square texture resolution.
const DefaultTextureSize = 512

// GenerateTextureMap rasterizes vertex colors into a square texture using a
// centroid-relative cylindrical projection, then softens it with a small
// Gaussian blur. The texture starts white; only texels hit by a vertex carry
// mesh color. Errors here are advisory: the caller should treat a failure as
// "no texture", not abort the pipeline.
func GenerateTextureMap(vertices []mgl64.Vec3, colors []mgl64.Vec3, size int) (*image.RGBA, error) {
	if len(vertices) == 0 {
		return nil, fmt.Errorf("no vertices to project")
	}
	if len(colors) != len(vertices) {
		return nil, fmt.Errorf("color count %d does not match vertex count %d", len(colors), len(vertices))
	}
	if size <= 1 {
		return nil, fmt.Errorf("texture size %d too small", size)
	}

	img := image.NewRGBA(image.Rect(0, 0, size, size))
	white := color.RGBA{255, 255, 255, 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			img.SetRGBA(x, y, white)
		}
	}

	uvs := cylindricalUV(vertices)
	for i, uv := range uvs {
		x := int(uv.X() * float64(size-1))
		y := int(uv.Y() * float64(size-1))
		c := clipColor(colors[i])
		img.SetRGBA(x, y, color.RGBA{
			R: uint8(c.X()*255 + 0.5),
			G: uint8(c.Y()*255 + 0.5),
			B: uint8(c.Z()*255 + 0.5),
			A: 255,
		})
	}

	return blur.Gaussian(img, 1.0), nil
}

// cylindricalUV projects vertices to UV space around the centroid axis:
// u from the XZ angle, v from the normalized Y range. Both land in [0,1].
func cylindricalUV(vertices []mgl64.Vec3) []mgl64.Vec2 {
	center := centroidOf(vertices)

	yMin, yMax := math.MaxFloat64, -math.MaxFloat64
	for _, v := range vertices {
		y := v.Y() - center.Y()
		if y < yMin {
			yMin = y
		}
		if y > yMax {
			yMax = y
		}
	}

	uvs := make([]mgl64.Vec2, len(vertices))
	for i, v := range vertices {
		p := v.Sub(center)
		u := math.Atan2(p.X(), p.Z())/(2*math.Pi) + 0.5
		vv := (p.Y() - yMin) / (yMax - yMin + epsilon)
		uvs[i] = mgl64.Vec2{clamp01(u), clamp01(vv)}
	}
	return uvs
}

func centroidOf(vertices []mgl64.Vec3) mgl64.Vec3 {
	var c mgl64.Vec3
	for _, v := range vertices {
		c = c.Add(v)
	}
	return c.Mul(1.0 / float64(len(vertices)))
}
