package charts

import (
	"bufio"
	"io"
	"math"

	"github.com/midbel/svg"
)

// SVGSurface is a retained surface keeping primitives in creation order and
// rendering them as a SVG document.
type SVGSurface struct {
	Width  float64
	Height float64

	keys  []Key
	items map[Key]Primitive
}

func NewSVGSurface() *SVGSurface {
	return &SVGSurface{
		items: make(map[Key]Primitive),
	}
}

func (s *SVGSurface) Resize(width, height float64) {
	s.Width, s.Height = width, height
}

func (s *SVGSurface) Clear() {
	s.keys = s.keys[:0]
	s.items = make(map[Key]Primitive)
}

func (s *SVGSurface) Create(p Primitive) {
	if _, ok := s.items[p.Key]; !ok {
		s.keys = append(s.keys, p.Key)
	}
	s.items[p.Key] = p
}

func (s *SVGSurface) Update(p Primitive) {
	s.Create(p)
}

func (s *SVGSurface) Remove(k Key) {
	if _, ok := s.items[k]; !ok {
		return
	}
	delete(s.items, k)
	for i := range s.keys {
		if s.keys[i] == k {
			s.keys = append(s.keys[:i], s.keys[i+1:]...)
			break
		}
	}
}

func (s *SVGSurface) Len() int {
	return len(s.keys)
}

func (s *SVGSurface) Lookup(k Key) (Primitive, bool) {
	p, ok := s.items[k]
	return p, ok
}

func (s *SVGSurface) Render(w io.Writer) error {
	el := svg.NewSVG(svg.WithDimension(s.Width, s.Height))
	el.OmitProlog = true
	for _, k := range s.keys {
		p := s.items[k]
		if p.Hidden {
			continue
		}
		if e := renderPrimitive(p); e != nil {
			el.Append(e)
		}
	}
	bw := bufio.NewWriter(w)
	el.Render(bw)
	return bw.Flush()
}

func renderPrimitive(p Primitive) svg.Element {
	grp := getBaseGroup(p)
	switch p.Kind {
	case KindRect:
		if p.Radius > 0 {
			pat := getBasePath(p.Paint)
			roundedRect(&pat, p.Pos.X, p.Pos.Y, p.W, p.H, p.Radius)
			grp.Append(pat.AsElement())
			break
		}
		var el svg.Rect
		el.Pos = svg.NewPos(p.Pos.X, p.Pos.Y)
		el.Dim = svg.NewDim(p.W, p.H)
		el.Fill = getFill(p.Paint)
		grp.Append(el.AsElement())
	case KindCircle:
		var el svg.Circle
		el.Pos = svg.NewPos(p.Pos.X, p.Pos.Y)
		el.Radius = p.Radius
		el.Fill = getFill(p.Paint)
		grp.Append(el.AsElement())
	case KindLine:
		el := svg.NewLine(svg.NewPos(p.Pos.X, p.Pos.Y), svg.NewPos(p.End.X, p.End.Y))
		el.Stroke = getStroke(p.Paint)
		grp.Append(el.AsElement())
	case KindPath, KindPolygon:
		if len(p.Points) == 0 {
			return nil
		}
		pat := getBasePath(p.Paint)
		for i, pt := range p.Points {
			if i == 0 {
				pat.AbsMoveTo(svg.NewPos(pt.X, pt.Y))
				continue
			}
			pat.AbsLineTo(svg.NewPos(pt.X, pt.Y))
		}
		if p.Closed || p.Kind == KindPolygon {
			pat.ClosePath()
		}
		grp.Append(pat.AsElement())
	case KindArc:
		if p.Arc.Sweep() <= 0 {
			return nil
		}
		pat := getBasePath(p.Paint)
		drawArc(&pat, p.Pos, p.Arc)
		grp.Append(pat.AsElement())
	case KindText:
		size := p.FontSize
		if size <= 0 {
			size = FontSize
		}
		text := svg.NewText(p.Text)
		text.Pos = svg.NewPos(p.Pos.X, p.Pos.Y)
		text.Font = svg.NewFont(size)
		text.Anchor = p.Anchor
		text.Baseline = p.Baseline
		if p.FontWeight >= 600 {
			grp.Class = append(grp.Class, "bold")
		}
		grp.Append(text.AsElement())
	default:
		return nil
	}
	return grp.AsElement()
}

func drawArc(pat *svg.Path, center Pos, arc Arc) {
	sweep := math.Min(arc.Sweep(), fullcircle)
	if sweep >= fullcircle-1e-9 {
		half := arc
		half.Corner = 0
		half.End = half.Start + halfcircle
		drawArc(pat, center, half)
		half.Start, half.End = half.End, arc.Start+fullcircle
		drawArc(pat, center, half)
		return
	}
	if r := cornerRadius(arc); r > 0 {
		drawRoundedArc(pat, center, arc, r)
		return
	}
	var (
		large = sweep > halfcircle
		pos1  = getPosFromClock(center, arc.Start, arc.Outer)
		pos2  = getPosFromClock(center, arc.End, arc.Outer)
		pos3  = getPosFromClock(center, arc.End, arc.Inner)
		pos4  = getPosFromClock(center, arc.Start, arc.Inner)
	)
	pat.AbsMoveTo(svg.NewPos(pos1.X, pos1.Y))
	pat.AbsArcTo(svg.NewPos(pos2.X, pos2.Y), arc.Outer, arc.Outer, 0, large, true)
	if arc.Inner > 0 {
		pat.AbsLineTo(svg.NewPos(pos3.X, pos3.Y))
		pat.AbsArcTo(svg.NewPos(pos4.X, pos4.Y), arc.Inner, arc.Inner, 0, large, false)
	} else {
		pat.AbsLineTo(svg.NewPos(center.X, center.Y))
	}
	pat.ClosePath()
}

// cornerRadius limits the corner of arc to half its thickness and to what its
// outer edge can hold. Zero means sharp corners.
func cornerRadius(arc Arc) float64 {
	if arc.Corner <= 0 || arc.Outer <= 0 {
		return 0
	}
	r := math.Min(arc.Corner, (arc.Outer-arc.Inner)/2)
	if 2*r/arc.Outer >= arc.Sweep() {
		return 0
	}
	if arc.Inner > 0 && 2*r/arc.Inner >= arc.Sweep() {
		return 0
	}
	return r
}

func drawRoundedArc(pat *svg.Path, center Pos, arc Arc, r float64) {
	var (
		outer = r / arc.Outer
		at    = func(angle, radius float64) svg.Pos {
			p := getPosFromClock(center, angle, radius)
			return svg.NewPos(p.X, p.Y)
		}
	)
	pat.AbsMoveTo(at(arc.Start+outer, arc.Outer))
	pat.AbsArcTo(at(arc.End-outer, arc.Outer), arc.Outer, arc.Outer, 0, arc.Sweep()-2*outer > halfcircle, true)
	pat.AbsArcTo(at(arc.End, arc.Outer-r), r, r, 0, false, true)
	if arc.Inner > 0 {
		inner := r / arc.Inner
		pat.AbsLineTo(at(arc.End, arc.Inner+r))
		pat.AbsArcTo(at(arc.End-inner, arc.Inner), r, r, 0, false, true)
		pat.AbsArcTo(at(arc.Start+inner, arc.Inner), arc.Inner, arc.Inner, 0, arc.Sweep()-2*inner > halfcircle, false)
		pat.AbsArcTo(at(arc.Start, arc.Inner+r), r, r, 0, false, true)
	} else {
		pat.AbsLineTo(svg.NewPos(center.X, center.Y))
	}
	pat.AbsLineTo(at(arc.Start, arc.Outer-r))
	pat.AbsArcTo(at(arc.Start+outer, arc.Outer), r, r, 0, false, true)
	pat.ClosePath()
}

func roundedRect(pat *svg.Path, x, y, w, h, r float64) {
	r = math.Min(r, math.Min(w/2, h/2))
	pat.AbsMoveTo(svg.NewPos(x+r, y))
	pat.AbsLineTo(svg.NewPos(x+w-r, y))
	pat.AbsArcTo(svg.NewPos(x+w, y+r), r, r, 0, false, true)
	pat.AbsLineTo(svg.NewPos(x+w, y+h-r))
	pat.AbsArcTo(svg.NewPos(x+w-r, y+h), r, r, 0, false, true)
	pat.AbsLineTo(svg.NewPos(x+r, y+h))
	pat.AbsArcTo(svg.NewPos(x, y+h-r), r, r, 0, false, true)
	pat.AbsLineTo(svg.NewPos(x, y+r))
	pat.AbsArcTo(svg.NewPos(x+r, y), r, r, 0, false, true)
	pat.ClosePath()
}

func getFill(p Paint) svg.Fill {
	color := p.Fill
	if color == "" {
		color = "none"
	}
	fill := svg.NewFill(color)
	if p.FillOpacity > 0 {
		fill.Opacity = p.FillOpacity
	}
	return fill
}

func getStroke(p Paint) svg.Stroke {
	width := p.StrokeWidth
	if width <= 0 {
		width = 1
	}
	stroke := svg.NewStroke(p.Stroke, width)
	if p.StrokeOpacity > 0 {
		stroke.Opacity = p.StrokeOpacity
	}
	if p.Dashed {
		stroke.DashArray(4)
	}
	return stroke
}

func getBasePath(p Paint) svg.Path {
	var pat svg.Path
	pat.Rendering = "geometricPrecision"
	pat.Fill = getFill(p)
	if p.Stroke != "" {
		pat.Stroke = getStroke(p)
	}
	return pat
}

func getBaseGroup(p Primitive) svg.Group {
	var g svg.Group
	g.Id = string(p.Key)
	g.Class = []string{p.Kind.String()}
	if p.Layer != "" {
		g.Class = append(g.Class, p.Layer)
	}
	if p.Kind == KindText && p.Fill != "" {
		g.Fill = getFill(p.Paint)
	}
	return g
}
