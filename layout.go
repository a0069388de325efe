package charts

import (
	"math"
)

type Padding struct {
	Top    float64
	Right  float64
	Bottom float64
	Left   float64
}

func (p Padding) Horizontal() float64 {
	return p.Left + p.Right
}

func (p Padding) Vertical() float64 {
	return p.Top + p.Bottom
}

type Rect struct {
	X float64
	Y float64
	W float64
	H float64
}

func (r Rect) Right() float64 {
	return r.X + r.W
}

func (r Rect) Bottom() float64 {
	return r.Y + r.H
}

func (r Rect) Area() float64 {
	return r.W * r.H
}

func (r Rect) Center() Pos {
	return NewPos(r.X+r.W/2, r.Y+r.H/2)
}

func (r Rect) Contains(p Pos) bool {
	return p.X >= r.X && p.X <= r.Right() && p.Y >= r.Y && p.Y <= r.Bottom()
}

// Inset shrinks the rectangle by d on every side, never below an empty one.
func (r Rect) Inset(d float64) Rect {
	x := Rect{
		X: r.X + d,
		Y: r.Y + d,
		W: r.W - 2*d,
		H: r.H - 2*d,
	}
	if x.W < 0 {
		x.X, x.W = r.X+r.W/2, 0
	}
	if x.H < 0 {
		x.Y, x.H = r.Y+r.H/2, 0
	}
	return x
}

// Viewport is the size of the render target and the margins requested by the
// caller. A nil padding leaves the margins to the chart.
type Viewport struct {
	Width   float64
	Height  float64
	Padding *Padding
}

func (v Viewport) padding(def Padding) Padding {
	if v.Padding != nil {
		return *v.Padding
	}
	return def
}

// Layout is the geometry builders draw into. Left and Right are only set for
// split layouts, Center and Radius for polar ones.
type Layout struct {
	Width  float64
	Height float64
	Padding
	Plot Rect

	Left   Rect
	Right  Rect
	Gutter float64

	Center Pos
	Radius float64
}

// Compose subtracts the margins from the viewport. Extents never go
// negative and non finite sizes give an empty viewport.
func Compose(width, height float64, pad Padding) Layout {
	width, height = finiteSize(width), finiteSize(height)
	return Layout{
		Width:   width,
		Height:  height,
		Padding: pad,
		Plot: Rect{
			X: pad.Left,
			Y: pad.Top,
			W: nonNegative(width - pad.Horizontal()),
			H: nonNegative(height - pad.Vertical()),
		},
	}
}

func finiteSize(f float64) float64 {
	if !isFinite(f) {
		return 0
	}
	return nonNegative(f)
}

// Split divides the plot area in two halves separated by gutter.
func (l Layout) Split(gutter float64) Layout {
	gutter = math.Min(nonNegative(gutter), l.Plot.W)
	half := (l.Plot.W - gutter) / 2
	l.Gutter = gutter
	l.Left = Rect{
		X: l.Plot.X,
		Y: l.Plot.Y,
		W: half,
		H: l.Plot.H,
	}
	l.Right = Rect{
		X: l.Plot.X + half + gutter,
		Y: l.Plot.Y,
		W: half,
		H: l.Plot.H,
	}
	return l
}

// Polar centers the layout in the plot area. A positive radius is used as is
// when it fits, otherwise the largest one is taken.
func (l Layout) Polar(radius float64) Layout {
	l.Center = l.Plot.Center()
	fit := math.Min(l.Plot.W, l.Plot.H) / 2
	if radius <= 0 || radius > fit {
		radius = fit
	}
	l.Radius = radius
	return l
}

func (l Layout) Viewport() Viewport {
	pad := l.Padding
	return Viewport{
		Width:   l.Width,
		Height:  l.Height,
		Padding: &pad,
	}
}
