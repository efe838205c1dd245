package render

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Point is a screen position in pixels.
type Point struct {
	X, Y float64
}

var fillImage *ebiten.Image

func whiteImage() *ebiten.Image {
	if fillImage == nil {
		fillImage = ebiten.NewImage(1, 1)
		fillImage.Fill(color.White)
	}
	return fillImage
}

// FillPolygon fills a convex polygon as a triangle fan.
func FillPolygon(dst *ebiten.Image, pts []Point, clr color.RGBA) {
	if dst == nil || len(pts) < 3 {
		return
	}

	r := float32(clr.R) / 255
	g := float32(clr.G) / 255
	b := float32(clr.B) / 255
	a := float32(clr.A) / 255

	vs := make([]ebiten.Vertex, 0, len(pts))
	for _, p := range pts {
		vs = append(vs, ebiten.Vertex{
			DstX:   float32(p.X),
			DstY:   float32(p.Y),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: r * a,
			ColorG: g * a,
			ColorB: b * a,
			ColorA: a,
		})
	}
	is := make([]uint16, 0, (len(pts)-2)*3)
	for i := 1; i < len(pts)-1; i++ {
		is = append(is, 0, uint16(i), uint16(i+1))
	}

	dst.DrawTriangles(vs, is, whiteImage(), &ebiten.DrawTrianglesOptions{AntiAlias: true})
}

// FillEllipse approximates an axis aligned ellipse with segments.
func FillEllipse(dst *ebiten.Image, cx, cy, rx, ry float64, clr color.RGBA) {
	const segments = 20
	pts := make([]Point, 0, segments)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / segments
		pts = append(pts, Point{X: cx + rx*math.Cos(a), Y: cy + ry*math.Sin(a)})
	}
	FillPolygon(dst, pts, clr)
}

// Shade scales the colour channels by f, keeping alpha.
func Shade(c color.RGBA, f float64) color.RGBA {
	scale := func(v uint8) uint8 {
		return uint8(math.Max(0, math.Min(255, float64(v)*f)))
	}
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: c.A}
}

// Fade multiplies alpha by f.
func Fade(c color.RGBA, f float64) color.RGBA {
	c.A = uint8(math.Max(0, math.Min(255, float64(c.A)*f)))
	return c
}
