package charts

import (
	"strconv"
)

const FontSize = 12.0

type Orientation int

const (
	OrientTop Orientation = 1 << iota
	OrientRight
	OrientBottom
	OrientLeft
)

func (o Orientation) Vertical() bool {
	return o == OrientLeft || o == OrientRight
}

func (o Orientation) Reverse() bool {
	return o == OrientRight || o == OrientTop
}

type NumberAxis struct {
	Layer string
	Orientation
	Ticks  int
	Values []float64
	Scaler LinearScaler
	Format Formatter
	Offset float64

	WithGrid       bool
	WithLabelTicks bool
}

func (a NumberAxis) values() []float64 {
	if len(a.Values) > 0 {
		return a.Values
	}
	return a.Scaler.Ticks(a.Ticks)
}

func (a NumberAxis) Render(plot Rect, style Style, s *shapes) {
	layer := a.Layer
	if layer == "" {
		layer = "axis"
	}
	for _, f := range a.values() {
		var (
			pos = a.Scaler.Scale(f)
			id  = strconv.FormatFloat(f, 'g', -1, 64)
		)
		if a.WithGrid {
			from, to := gridLine(a.Orientation, plot, pos)
			s.line(KeyOf(layer+"-grid", id, 0), "", from, to, style.gridPaint())
		}
		if a.WithLabelTicks {
			at, paint := tickText(a.Orientation, plot, pos, a.Offset, style)
			s.text(KeyOf(layer+"-tick", id, 0), a.Format.format(f), at, paint)
		}
	}
}

type CategoryAxis struct {
	Layer  string
	Scaler BandScaler
	Orientation
	Truncate int
	Offset   float64

	WithGuides bool
}

// Render writes a label at the center of each band. Guides are dashed lines
// at the start of every band but the first.
func (a CategoryAxis) Render(plot Rect, style Style, s *shapes) {
	layer := a.Layer
	if layer == "" {
		layer = "category"
	}
	for i, str := range a.Scaler.Strings {
		pos, ok := a.Scaler.Center(str)
		if !ok {
			continue
		}
		label := str
		if a.Truncate > 0 {
			label = Truncate(label, a.Truncate)
		}
		at, paint := tickText(a.Orientation, plot, pos, a.Offset, style)
		s.text(KeyOf(layer+"-tick", str, 0), label, at, paint)

		if !a.WithGuides || i == 0 {
			continue
		}
		start, _ := a.Scaler.Scale(str)
		from, to := gridLine(a.Orientation, plot, start)
		paint = style.gridPaint()
		paint.Dashed = true
		s.line(KeyOf(layer+"-guide", str, 0), str, from, to, paint)
	}
}

func gridLine(orient Orientation, plot Rect, pos float64) (Pos, Pos) {
	if orient.Vertical() {
		return NewPos(plot.X, pos), NewPos(plot.Right(), pos)
	}
	return NewPos(pos, plot.Y), NewPos(pos, plot.Bottom())
}

func tickText(orient Orientation, plot Rect, pos, offset float64, style Style) (Pos, Paint) {
	if offset <= 0 {
		offset = FontSize * 0.8
	}
	var (
		base   = "hanging"
		anchor = "middle"
		at     = NewPos(pos, plot.Bottom()+offset)
	)
	switch {
	case orient.Vertical() && !orient.Reverse():
		base = "middle"
		anchor = "end"
		at = NewPos(plot.X-offset, pos)
	case orient.Vertical() && orient.Reverse():
		base = "middle"
		anchor = "start"
		at = NewPos(plot.Right()+offset, pos)
	case !orient.Vertical() && orient.Reverse():
		base = "auto"
		at = NewPos(pos, plot.Y-offset)
	default:
	}
	return at, style.textPaint(anchor, base)
}
