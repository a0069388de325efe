package charts

import (
	"math"
	"strconv"
	"strings"
)

type Kind int

const (
	KindRect Kind = iota
	KindPath
	KindLine
	KindArc
	KindPolygon
	KindCircle
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindPath:
		return "path"
	case KindLine:
		return "line"
	case KindArc:
		return "arc"
	case KindPolygon:
		return "polygon"
	case KindCircle:
		return "circle"
	case KindText:
		return "text"
	default:
		return "unknown"
	}
}

// Key identifies a primitive across passes. It is derived from the layer the
// primitive belongs to, the category of its datum and the index of its serie.
type Key string

func KeyOf(layer, category string, serie int) Key {
	var str strings.Builder
	str.WriteString(layer)
	str.WriteByte('/')
	str.WriteString(category)
	str.WriteByte('#')
	str.WriteString(strconv.Itoa(serie))
	return Key(str.String())
}

// Paint holds the visual attributes of a primitive. Zero opacities are read as
// fully opaque.
type Paint struct {
	Fill          string
	FillOpacity   float64
	Stroke        string
	StrokeWidth   float64
	StrokeOpacity float64
	Dashed        bool

	FontSize   float64
	FontWeight int
	Anchor     string
	Baseline   string

	Hidden bool
}

const transparent = "transparent"

// Arc describes an annular sector. Angles are in radians, clockwise from
// twelve o'clock.
type Arc struct {
	Inner  float64
	Outer  float64
	Start  float64
	End    float64
	Corner float64
}

func (a Arc) Sweep() float64 {
	return a.End - a.Start
}

type Primitive struct {
	Key   Key
	Kind  Kind
	Layer string
	// Datum is the category used to resolve highlight.
	Datum string
	Serie int

	Pos    Pos
	W      float64
	H      float64
	End    Pos
	Radius float64
	Points []Pos
	Closed bool
	Arc    Arc
	Text   string

	Paint

	Hit       bool
	HoverOnly bool
	Tip       *Tip
}

func (p Primitive) Center() Pos {
	switch p.Kind {
	case KindRect:
		return NewPos(p.Pos.X+p.W/2, p.Pos.Y+p.H/2)
	case KindLine:
		return NewPos((p.Pos.X+p.End.X)/2, (p.Pos.Y+p.End.Y)/2)
	case KindPath, KindPolygon:
		if len(p.Points) == 0 {
			return p.Pos
		}
		var c Pos
		for _, pt := range p.Points {
			c = c.Add(pt)
		}
		n := float64(len(p.Points))
		return NewPos(c.X/n, c.Y/n)
	default:
		return p.Pos
	}
}

// Contains reports whether p falls on the primitive. Only shapes with an area
// can be hit.
func (p Primitive) Contains(pt Pos) bool {
	switch p.Kind {
	case KindRect:
		return pt.X >= p.Pos.X && pt.X <= p.Pos.X+p.W && pt.Y >= p.Pos.Y && pt.Y <= p.Pos.Y+p.H
	case KindCircle:
		return distance(p.Pos, pt) <= p.Radius
	case KindPolygon, KindPath:
		return insidePolygon(pt, p.Points)
	case KindArc:
		dist := distance(p.Pos, pt)
		if dist < p.Arc.Inner || dist > p.Arc.Outer {
			return false
		}
		if p.Arc.Sweep() >= fullcircle {
			return true
		}
		angle := clockAngle(p.Pos, pt)
		return angle >= p.Arc.Start && angle <= p.Arc.End
	default:
		return false
	}
}

func (p Primitive) clamp() Primitive {
	if p.W < 0 {
		p.W = 0
	}
	if p.H < 0 {
		p.H = 0
	}
	if p.Radius < 0 {
		p.Radius = 0
	}
	if p.Arc.Inner < 0 {
		p.Arc.Inner = 0
	}
	if p.Arc.Outer < p.Arc.Inner {
		p.Arc.Outer = p.Arc.Inner
	}
	if p.Arc.End < p.Arc.Start {
		p.Arc.End = p.Arc.Start
	}
	return p
}

func (p Primitive) valid() bool {
	if !p.Pos.finite() || !p.End.finite() {
		return false
	}
	for _, f := range []float64{p.W, p.H, p.Radius, p.Arc.Inner, p.Arc.Outer, p.Arc.Start, p.Arc.End, p.Arc.Corner} {
		if !isFinite(f) {
			return false
		}
	}
	for _, pt := range p.Points {
		if !pt.finite() {
			return false
		}
	}
	return true
}

// Highlighted returns a copy of prims where hover only primitives are visible
// when they belong to the highlighted category.
func Highlighted(prims []Primitive, key string) []Primitive {
	out := make([]Primitive, len(prims))
	for i, p := range prims {
		if p.HoverOnly {
			p.Hidden = key == "" || p.Datum != key
		}
		out[i] = p
	}
	return out
}

type shapes struct {
	list []Primitive
}

func (s *shapes) add(p Primitive) {
	p = p.clamp()
	if !p.valid() {
		Logger().Debug("primitive dropped", "key", p.Key, "kind", p.Kind.String())
		return
	}
	if p.HoverOnly {
		p.Hidden = true
	}
	s.list = append(s.list, p)
}

func (s *shapes) rect(key Key, datum string, x, y, w, h float64, paint Paint) {
	s.add(Primitive{
		Key:   key,
		Kind:  KindRect,
		Datum: datum,
		Pos:   NewPos(x, y),
		W:     w,
		H:     h,
		Paint: paint,
	})
}

func (s *shapes) line(key Key, datum string, from, to Pos, paint Paint) {
	s.add(Primitive{
		Key:   key,
		Kind:  KindLine,
		Datum: datum,
		Pos:   from,
		End:   to,
		Paint: paint,
	})
}

func (s *shapes) text(key Key, str string, pos Pos, paint Paint) {
	s.add(Primitive{
		Key:   key,
		Kind:  KindText,
		Pos:   pos,
		Text:  str,
		Paint: paint,
	})
}

// hit adds a transparent target carrying the tooltip of its datum.
func (s *shapes) hit(p Primitive, tip Tip) {
	p.Hit = true
	p.Paint = Paint{Fill: transparent}
	p.Tip = &tip
	s.add(p)
}

func (s *shapes) primitives() []Primitive {
	return s.list
}

func nonNegative(f float64) float64 {
	return math.Max(0, f)
}
