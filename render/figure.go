// Package render draws a generators.Buffer as a static X-Y plot.
//
// Plotting is optional: binaries built with the noplot tag leave it out and
// Render reports ErrRenderingUnavailable.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"

	"github.com/Alextopher/lisscope/generators"
	"github.com/pkg/errors"
)

var (
	ErrRenderingUnavailable = errors.New("render: plotting support not built in (rebuild without -tags noplot)")
	ErrEmptyBuffer          = errors.New("render: empty buffer")
)

const (
	DefaultSize      = 512
	DefaultLineWidth = 1.5

	minSize = 64
)

var (
	background = color.RGBA{0x00, 0x00, 0x00, 0xff}
	gridColor  = color.RGBA{0x40, 0x40, 0x40, 0xff}
	traceColor = color.RGBA{0x00, 0xff, 0x00, 0xff}
	textColor  = color.RGBA{0xc0, 0xc0, 0xc0, 0xff}
)

// Options controls the look of a Figure. The zero value uses the defaults.
type Options struct {
	Size      int // width and height in pixels
	LineWidth float64
}

func (o Options) withDefaults() Options {
	if o.Size <= 0 {
		o.Size = DefaultSize
	}
	if o.Size < minSize {
		o.Size = minSize
	}
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	return o
}

// Figure is a rendered plot.
type Figure struct {
	Title string
	Image *image.RGBA
}

// EncodePNG writes the figure to w as a PNG.
func (f *Figure) EncodePNG(w io.Writer) error {
	return errors.Wrap(png.Encode(w, f.Image), "render: encode png")
}

func title(buf *generators.Buffer) string {
	p := buf.Params()
	fx := buf.Frequency()

	freq := fmt.Sprintf("fx=%g Hz", fx)
	if fx != p.BaseFreq {
		freq = fmt.Sprintf("fx=%g Hz (requested %g Hz)", fx, p.BaseFreq)
	}
	return fmt.Sprintf("Lissajous: %s, fy=%d*fx (%.0f Hz), phase=%.1f deg", freq, p.Ratio, fx*float64(p.Ratio), p.PhaseDeg)
}

// plotArea maps figure coordinates in [-1, 1] onto a square region of the
// canvas below the title line.
type plotArea struct {
	cx, cy, half float64
}

const titleHeight = 18

func newPlotArea(size int) plotArea {
	margin := float64(size) / 20
	w := float64(size) - 2*margin
	h := float64(size) - 2*margin - titleHeight

	side := w
	if h < side {
		side = h
	}
	return plotArea{
		cx:   float64(size) / 2,
		cy:   titleHeight + margin + h/2,
		half: side / 2,
	}
}

func (a plotArea) point(x, y float64) (float64, float64) {
	return a.cx + x*a.half, a.cy - y*a.half
}
