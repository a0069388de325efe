package charts

import (
	"math"
	"strconv"
)

const (
	DefaultRingWidth = 20
	DefaultMargin    = 10
)

// DonutChart splits a ring between the values of the first serie. Wedges
// start at twelve o'clock and go clockwise.
type DonutChart struct {
	Size         float64
	Margin       float64
	RingWidth    float64
	CornerRadius float64
	Tooltip      bool
}

func (c DonutChart) Compose(vp Viewport) Layout {
	var (
		l    = Compose(vp.Width, vp.Height, vp.padding(Padding{}))
		size = c.Size
	)
	if size <= 0 {
		size = math.Min(l.Plot.W, l.Plot.H)
	}
	return l.Polar(size/2 - withDefault(c.Margin, DefaultMargin))
}

func (c DonutChart) Build(f Frame) Plot {
	serie, ok := f.first()
	if !ok {
		return Plot{}
	}
	var total float64
	for _, v := range serie.Values() {
		total += nonNegative(v)
	}
	if total <= 0 {
		return Plot{Scales: Scales{Radius: RadiusScaler(Domain{}, f.Radius, f.Center)}}
	}
	var (
		s      shapes
		outer  = f.Radius
		inner  = nonNegative(outer - withDefault(c.RingWidth, DefaultRingWidth))
		colors = f.Style.colors(BarColors)
		angle  float64
		tips   = make(map[string]Tip)
	)
	for i, d := range serie.Data {
		var (
			v     = nonNegative(serie.Value(i))
			sweep = v / total * fullcircle
			arc   = Arc{
				Inner:  inner,
				Outer:  outer,
				Start:  angle,
				End:    angle + sweep,
				Corner: c.CornerRadius,
			}
		)
		angle += sweep
		s.add(Primitive{
			Key:   KeyOf("arc", d.Key, 0),
			Kind:  KindArc,
			Layer: "arc",
			Datum: d.Key,
			Pos:   f.Center,
			Arc:   arc,
			Paint: Paint{Fill: colors.At(i)},
		})
		tip := Tip{
			Datum: d,
			Title: serie.Title,
			Value: v,
			Share: share(v, total),
		}
		tips[d.Key] = tip
		if c.Tooltip && sweep > 0 {
			s.hit(Primitive{
				Key:   KeyOf("arc-hit", d.Key, 0),
				Kind:  KindArc,
				Layer: "hit",
				Datum: d.Key,
				Pos:   f.Center,
				Arc:   arc,
			}, tip)
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Tips:       tips,
		Scales:     Scales{Radius: RadiusScaler(NumberDomain(0, total), outer, f.Center)},
	}
}

var RadarTicks = []float64{0, 25, 50, 75, 100}

// RadarChart draws every serie as a closed polygon over the categories of the
// first one. Values are percents.
type RadarChart struct {
	Margin      float64
	Ticks       []float64
	LabelOffset float64
	Tooltip     bool
}

func (c RadarChart) Compose(vp Viewport) Layout {
	m := withDefault(c.Margin, 40)
	return Compose(vp.Width, vp.Height, vp.padding(Padding{Top: m, Right: m, Bottom: m, Left: m})).Polar(0)
}

func (c RadarChart) Build(f Frame) Plot {
	first, ok := f.first()
	if !ok || first.Len() == 0 {
		return Plot{}
	}
	var (
		s      shapes
		keys   = first.Keys()
		slice  = fullcircle / float64(len(keys))
		radius = RadiusScaler(NumberDomain(0, 100), f.Radius, f.Center)
		ticks  = c.Ticks
		colors = f.Style.colors(BarColors)
		grid   = f.Style.gridPaint()
		tips   = make(map[string]Tip)
	)
	if len(ticks) == 0 {
		ticks = RadarTicks
	}
	spoke := func(i int) float64 {
		return float64(i)*slice - math.Pi/2
	}
	for _, t := range ticks {
		id := strconv.FormatFloat(t, 'g', -1, 64)
		s.add(Primitive{
			Key:    KeyOf("grid", id, 0),
			Kind:   KindCircle,
			Layer:  "grid",
			Pos:    f.Center,
			Radius: radius.Scale(t),
			Paint:  Paint{Stroke: grid.Stroke, StrokeWidth: 1},
		})
		s.text(KeyOf("grid-tick", id, 0), id, NewPos(f.Center.X+2, f.Center.Y-radius.Scale(t)), f.Style.textPaint("start", "auto"))
	}
	offset := withDefault(c.LabelOffset, FontSize+4)
	for i, d := range first.Data {
		angle := spoke(i)
		s.line(KeyOf("spoke", d.Key, 0), "", f.Center, radius.Point(100, angle), grid)
		at := getPosFromAngle(f.Center, angle, f.Radius+offset)
		s.text(KeyOf("spoke-label", d.Key, 0), d.Title(), at, f.Style.textPaint(radarAnchor(angle), "middle"))
	}
	for j, serie := range f.Series {
		var (
			color  = serieColor(serie, j, colors)
			points = make([]Pos, 0, len(keys))
		)
		for i, k := range keys {
			var (
				v  = valueAt(serie, i, k)
				at = radius.Point(v, spoke(i))
			)
			points = append(points, at)
			s.add(Primitive{
				Key:    KeyOf("vertex", k, j),
				Kind:   KindCircle,
				Layer:  "vertex",
				Datum:  k,
				Serie:  j,
				Pos:    at,
				Radius: 2,
				Paint:  Paint{Fill: color},
			})
			tip := Tip{
				Datum:      first.Data[i],
				Serie:      j,
				Title:      serie.Title,
				Value:      v,
				Companions: companionsAt(f.Series, i, k),
			}
			if j == 0 {
				tips[k] = tip
			}
			if c.Tooltip {
				s.hit(Primitive{
					Key:    KeyOf("vertex-hit", k, j),
					Kind:   KindCircle,
					Layer:  "hit",
					Datum:  k,
					Serie:  j,
					Pos:    at,
					Radius: 8,
				}, tip)
			}
		}
		s.add(Primitive{
			Key:    KeyOf("polygon", "", j),
			Kind:   KindPolygon,
			Layer:  "polygon",
			Serie:  j,
			Points: points,
			Paint: Paint{
				Fill:          color,
				FillOpacity:   f.Style.fillOpacity(0.1),
				Stroke:        color,
				StrokeWidth:   f.Style.lineWidth(1),
				StrokeOpacity: f.Style.lineOpacity(),
			},
		})
	}
	return Plot{
		Primitives: s.primitives(),
		Tips:       tips,
		Scales:     Scales{Radius: radius},
	}
}

// radarAnchor aligns a spoke label on its angle: centered near the vertical
// axis, starting on the right side of the chart, ending on the left one.
func radarAnchor(angle float64) string {
	x := math.Cos(angle)
	switch {
	case math.Abs(x) < 0.1:
		return "middle"
	case x > 0:
		return "start"
	default:
		return "end"
	}
}
