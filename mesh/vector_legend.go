package mesh

import (
	"image/color"
	"image/png"
	"io"

	"github.com/tdewolff/canvas"
	"github.com/tdewolff/canvas/renderers/rasterizer"
	"github.com/tdewolff/canvas/renderers/svg"
)

// VectorLegend renders a ColorInfo report as a horizontal bar chart in
// vector form, one bar per category with length proportional to its vertex
// share. Text labels are deliberately omitted in the vector path (font
// loading is on the raster legend's side); consumers embedding the SVG add
// their own.
type VectorLegend struct {
	Info       ColorInfo
	Width      float64 // canvas width in mm
	BarHeight  float64 // bar height in mm
	Resolution canvas.Resolution
}

// NewVectorLegend creates a legend with default geometry.
func NewVectorLegend(info ColorInfo) *VectorLegend {
	return &VectorLegend{
		Info:       info,
		Width:      120,
		BarHeight:  8,
		Resolution: canvas.DPI(300),
	}
}

// canvasRenderer is the common surface of the svg and rasterizer targets.
type canvasRenderer interface {
	RenderPath(path *canvas.Path, style canvas.Style, m canvas.Matrix)
}

// RenderToSVG writes the legend as an SVG document.
func (l *VectorLegend) RenderToSVG(w io.Writer) error {
	width, height := l.size()
	r := svg.New(w, width, height, nil)
	l.renderToCanvas(r, width, height)
	return r.Close()
}

// RenderToPNG rasterizes the legend and writes it as PNG.
func (l *VectorLegend) RenderToPNG(w io.Writer) error {
	width, height := l.size()
	rast := rasterizer.New(width, height, l.Resolution, canvas.DefaultColorSpace)
	l.renderToCanvas(rast, width, height)
	return png.Encode(w, rast)
}

func (l *VectorLegend) size() (float64, float64) {
	rows := len(l.Info.Categories)
	if rows == 0 {
		rows = 1
	}
	gap := l.BarHeight / 2
	height := float64(rows)*(l.BarHeight+gap) + gap
	return l.Width, height
}

func (l *VectorLegend) renderToCanvas(r canvasRenderer, width, height float64) {
	bg := canvas.DefaultStyle
	bg.Fill = canvas.Paint{Color: canvas.White}
	r.RenderPath(canvas.Rectangle(width, height), bg, canvas.Identity)

	gap := l.BarHeight / 2
	y := height - gap - l.BarHeight
	for _, e := range sortedEntries(l.Info) {
		barStyle := canvas.DefaultStyle
		barStyle.Fill = canvas.Paint{Color: color.RGBA{
			R: uint8(clamp01(e.stat.Color[0])*255 + 0.5),
			G: uint8(clamp01(e.stat.Color[1])*255 + 0.5),
			B: uint8(clamp01(e.stat.Color[2])*255 + 0.5),
			A: 255,
		}}
		barStyle.Stroke = canvas.Paint{Color: canvas.Black}

		barWidth := (width - 2*gap) * e.stat.Percentage / 100
		if barWidth < 1 {
			barWidth = 1
		}
		bar := canvas.Rectangle(barWidth, l.BarHeight)
		r.RenderPath(bar, barStyle, canvas.Identity.Translate(gap, y))
		y -= l.BarHeight + gap
	}
}
