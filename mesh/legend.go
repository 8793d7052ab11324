package mesh

import (
	"fmt"
	"image"
	"image/color"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	legendRowHeight = 28
	legendPadding   = 12
	legendSwatch    = 18
)

// legendEntry pairs a category name with its stats, ordered for display.
type legendEntry struct {
	name string
	stat CategoryStat
}

// sortedEntries orders categories by descending vertex count, name as the
// tie-breaker, so legends are stable across runs.
func sortedEntries(info ColorInfo) []legendEntry {
	entries := make([]legendEntry, 0, len(info.Categories))
	for name, stat := range info.Categories {
		entries = append(entries, legendEntry{name, stat})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].stat.VertexCount != entries[j].stat.VertexCount {
			return entries[i].stat.VertexCount > entries[j].stat.VertexCount
		}
		return entries[i].name < entries[j].name
	})
	return entries
}

// RenderLegend draws a color legend for a ColorInfo report: one row per
// category present, with its base color swatch, vertex count and share.
// The caller owns encoding/writing the returned image.
func RenderLegend(info ColorInfo, width int) *image.RGBA {
	if width < 120 {
		width = 120
	}
	entries := sortedEntries(info)
	height := legendPadding*2 + legendRowHeight*(len(entries)+1)

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	fillRect(img, img.Bounds(), color.RGBA{255, 255, 255, 255})

	title := fmt.Sprintf("%s environment, %d vertices", info.Environment, info.TotalVertices)
	drawText(img, legendPadding, legendPadding+13, title, color.RGBA{0, 0, 0, 255})

	y := legendPadding + legendRowHeight
	for _, e := range entries {
		swatch := color.RGBA{
			R: uint8(clamp01(e.stat.Color[0])*255 + 0.5),
			G: uint8(clamp01(e.stat.Color[1])*255 + 0.5),
			B: uint8(clamp01(e.stat.Color[2])*255 + 0.5),
			A: 255,
		}
		fillRect(img, image.Rect(legendPadding, y, legendPadding+legendSwatch, y+legendSwatch), swatch)

		label := fmt.Sprintf("%s  %d (%.1f%%)", e.name, e.stat.VertexCount, e.stat.Percentage)
		drawText(img, legendPadding+legendSwatch+8, y+13, label, color.RGBA{0, 0, 0, 255})
		y += legendRowHeight
	}
	return img
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.RGBA) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, c)
		}
	}
}

func drawText(img *image.RGBA, x, y int, text string, c color.RGBA) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: basicfont.Face7x13,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}
