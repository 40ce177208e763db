//go:build !noplot

package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/Alextopher/lisscope/generators"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Render plots the X channel of buf against its Y channel as a closed trace.
func Render(buf *generators.Buffer, opts Options) (*Figure, error) {
	if buf == nil || buf.Len() == 0 {
		return nil, ErrEmptyBuffer
	}
	opts = opts.withDefaults()

	img := image.NewRGBA(image.Rect(0, 0, opts.Size, opts.Size))
	draw.Draw(img, img.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	area := newPlotArea(opts.Size)
	drawGrid(img, area)
	drawTrace(img, area, buf, opts.LineWidth)

	fig := &Figure{
		Title: title(buf),
		Image: img,
	}
	drawTitle(img, fig.Title)

	return fig, nil
}

// dotted lines at every half unit, axes included
func drawGrid(img *image.RGBA, a plotArea) {
	for _, v := range []float64{-1, -0.5, 0, 0.5, 1} {
		x0, y0 := a.point(-1, v)
		x1, _ := a.point(1, v)
		for x := int(x0); x <= int(x1); x += 3 {
			img.SetRGBA(x, int(y0), gridColor)
		}

		x0, y0 = a.point(v, 1)
		_, y1 := a.point(v, -1)
		for y := int(y0); y <= int(y1); y += 3 {
			img.SetRGBA(int(x0), y, gridColor)
		}
	}
}

func drawTrace(img *image.RGBA, a plotArea, buf *generators.Buffer, width float64) {
	b := img.Bounds()
	z := vector.NewRasterizer(b.Dx(), b.Dy())

	n := buf.Len()
	for i := 0; i < n; i++ {
		f0, f1 := buf.Frame(i), buf.Frame((i+1)%n)
		x0, y0 := a.point(f0[0], f0[1])
		x1, y1 := a.point(f1[0], f1[1])
		segment(z, x0, y0, x1, y1, width/2)
	}

	z.Draw(img, b, image.NewUniform(traceColor), image.Point{})
}

// segment adds a w*2 wide quad from (x0, y0) to (x1, y1), extended by w at
// both ends so consecutive segments overlap at the joints.
func segment(z *vector.Rasterizer, x0, y0, x1, y1, w float64) {
	dx, dy := x1-x0, y1-y0
	l := math.Hypot(dx, dy)
	if l < 1e-9 {
		dx, dy, l = 1, 0, 1
	}
	ux, uy := dx/l*w, dy/l*w

	x0, y0 = x0-ux, y0-uy
	x1, y1 = x1+ux, y1+uy
	nx, ny := -uy, ux

	z.MoveTo(float32(x0+nx), float32(y0+ny))
	z.LineTo(float32(x1+nx), float32(y1+ny))
	z.LineTo(float32(x1-nx), float32(y1-ny))
	z.LineTo(float32(x0-nx), float32(y0-ny))
	z.ClosePath()
}

func drawTitle(img *image.RGBA, s string) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(textColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(8, titleHeight-4),
	}
	d.DrawString(s)
}
