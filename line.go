package charts

import (
	"math"

	"github.com/midbel/slices"
)

var (
	linePadding = Padding{Top: 20, Right: 20, Bottom: 30, Left: 40}
	dualPadding = Padding{Top: 20, Right: 48, Bottom: 30, Left: 48}
)

const (
	DefaultPointSize = 4
	HoverPointSize   = 10
	DefaultHitWidth  = 30
	MaxZoom          = 5
)

// Zoom is the transform applied to the x axis: a scale factor and a
// translation.
type Zoom struct {
	K  float64
	TX float64
}

func (z Zoom) clamp() Zoom {
	if z.K < 1 {
		z.K = 1
	}
	if z.K > MaxZoom {
		z.K = MaxZoom
	}
	return z
}

// within limits the translation so that the zoomed axis still covers the
// whole range of the plot.
func (z Zoom) within(plot Rect) Zoom {
	z = z.clamp()
	var (
		lo = (1 - z.K) * plot.Right()
		hi = (1 - z.K) * plot.X
	)
	z.TX = math.Max(lo, math.Min(hi, z.TX))
	return z
}

func (z Zoom) identity() bool {
	z = z.clamp()
	return z.K == 1 && z.TX == 0
}

// LineChart draws every serie over the periods of the first one.
type LineChart struct {
	Ticks    int
	XFormat  Formatter
	HitWidth float64
	Zoom     Zoom
	Marker   Marker

	Area      bool
	Point     bool
	Dash      bool
	OverPoint bool
	OverDash  bool
	Percent   bool
	Grid      bool
	Tooltip   bool
}

func (c LineChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(linePadding))
}

func (c LineChart) Build(f Frame) Plot {
	first, ok := f.first()
	if !ok || first.Len() == 0 {
		return Plot{}
	}
	var (
		s          shapes
		keys, xs   = periodsOf(first)
		x          = periodScaler(xs, f.Plot)
		y          = NumberScaler(valueDomain(c.Percent, f.Series...), NewRange(f.Plot.Bottom(), f.Plot.Y))
		colors     = f.Style.colors(BarColors)
		lineWidth  = f.Style.lineWidth(2)
		hoverPoint = c.OverPoint
	)
	if z := c.Zoom.within(f.Plot); !z.identity() {
		x = x.Rescale(z.K, z.TX)
	}
	valueAxis(y, c.Ticks, c.Grid, c.Percent, f, &s)
	periodLabels(keys, xs, x, c.XFormat, f, &s)

	for j, serie := range f.Series {
		drawSerie(&s, serieLine{
			index:  j,
			serie:  serie,
			keys:   keys,
			xs:     xs,
			x:      x,
			y:      y,
			plot:   f.Plot,
			color:  serieColor(serie, j, colors),
			width:  lineWidth,
			style:  f.Style,
			area:   c.Area,
			point:  c.Point || c.OverPoint,
			hover:  hoverPoint,
			radius: pointSize(hoverPoint),
			shape:  c.Marker,
		})
	}
	if c.Dash || c.OverDash {
		for i, k := range keys {
			px := x.Scale(xs[i])
			if !withinX(f.Plot, px) {
				continue
			}
			top := y.Scale(maxAt(f.Series, i, k))
			if c.OverDash {
				top = y.Scale(y.Domain.Max)
			}
			paint := f.Style.gridPaint()
			paint.Dashed = true
			s.add(Primitive{
				Key:       KeyOf("dash", k, 0),
				Kind:      KindLine,
				Layer:     "dash",
				Datum:     k,
				Pos:       NewPos(px, f.Plot.Bottom()),
				End:       NewPos(px, top),
				Paint:     paint,
				HoverOnly: c.OverPoint,
			})
		}
	}
	tips := periodTips(&s, f.Series, keys, xs, x, f.Plot, c.Tooltip, c.HitWidth)
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, nearestPeriod(keys, xs, x)),
		Scales:     Scales{X: x, Y: y},
	}
}

// DualAxisChart draws two groups of series sharing the x axis, each one with
// its own value axis.
type DualAxisChart struct {
	Left     []int
	Right    []int
	Ticks    int
	XFormat  Formatter
	HitWidth float64
	Marker   Marker

	Area      bool
	Point     bool
	OverPoint bool
	Percent   bool
	Grid      bool
	Tooltip   bool
}

func (c DualAxisChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(dualPadding))
}

func (c DualAxisChart) groups(n int) ([]int, []int) {
	left, right := c.Left, c.Right
	if len(left) == 0 && len(right) == 0 {
		left = []int{0}
		if n > 1 {
			right = []int{1}
		}
	}
	keep := func(list []int) []int {
		var ok []int
		for _, i := range list {
			if i >= 0 && i < n {
				ok = append(ok, i)
			}
		}
		return ok
	}
	return keep(left), keep(right)
}

func (c DualAxisChart) Build(f Frame) Plot {
	first, ok := f.first()
	if !ok || first.Len() == 0 {
		return Plot{}
	}
	var (
		s            shapes
		left, right  = c.groups(len(f.Series))
		keys, xs     = periodsOf(first)
		x            = periodScaler(xs, f.Plot)
		leftSeries   = pick(f.Series, left)
		rightSeries  = pick(f.Series, right)
		ly           = NumberScaler(ZeroDomain(leftSeries...), NewRange(f.Plot.Bottom(), f.Plot.Y))
		ry           = NumberScaler(valueDomain(c.Percent, rightSeries...), NewRange(f.Plot.Bottom(), f.Plot.Y))
		colors       = f.Style.colors(BarColors)
		hoverPoint   = c.OverPoint
		ticks        = withDefaultInt(c.Ticks, 5)
		leftFormat   = valueFormat(f, false)
		rightFormat  = valueFormat(f, c.Percent)
		scalerOf     = make(map[int]LinearScaler)
		orderedIndex = append(append([]int{}, left...), right...)
	)
	NumberAxis{
		Layer:          "y",
		Orientation:    OrientLeft,
		Ticks:          ticks,
		Scaler:         ly,
		Format:         leftFormat,
		WithGrid:       c.Grid,
		WithLabelTicks: true,
	}.Render(f.Plot, f.Style, &s)
	NumberAxis{
		Layer:          "y2",
		Orientation:    OrientRight,
		Ticks:          ticks,
		Scaler:         ry,
		Format:         rightFormat,
		WithLabelTicks: true,
	}.Render(f.Plot, f.Style, &s)
	periodLabels(keys, xs, x, c.XFormat, f, &s)

	for _, i := range left {
		scalerOf[i] = ly
	}
	for _, i := range right {
		scalerOf[i] = ry
	}
	for _, j := range orderedIndex {
		serie := f.Series[j]
		drawSerie(&s, serieLine{
			index:  j,
			serie:  serie,
			keys:   keys,
			xs:     xs,
			x:      x,
			y:      scalerOf[j],
			plot:   f.Plot,
			color:  serieColor(serie, j, colors),
			width:  f.Style.lineWidth(2),
			style:  f.Style,
			area:   c.Area,
			point:  c.Point || c.OverPoint,
			hover:  hoverPoint,
			radius: pointSize(hoverPoint),
			shape:  c.Marker,
		})
	}
	tips := periodTips(&s, pick(f.Series, orderedIndex), keys, xs, x, f.Plot, c.Tooltip, c.HitWidth)
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, nearestPeriod(keys, xs, x)),
		Scales:     Scales{X: x, Y: ly, Y2: ry},
	}
}

// BarLineChart draws the first serie as bars on the left axis and the second
// one as a percent line on the right axis.
type BarLineChart struct {
	Thickness float64
	Radius    float64
	Ticks     int
	Truncate  int
	Dash      bool
	Grid      bool
	Tooltip   bool
}

func (c BarLineChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(dualPadding))
}

func (c BarLineChart) Build(f Frame) Plot {
	bars, ok := f.first()
	if !ok {
		return Plot{}
	}
	var (
		s       shapes
		line, _ = f.serie(1)
		x       = StringScaler(bars.Keys(), NewRange(f.Plot.X, f.Plot.Right()))
		ly      = NumberScaler(ZeroDomain(bars), NewRange(f.Plot.Bottom(), f.Plot.Y))
		ry      = NumberScaler(NumberDomain(0, 100), NewRange(f.Plot.Bottom(), f.Plot.Y))
		width   = math.Min(withDefault(c.Thickness, DefaultBarThickness), x.Space())
		colors  = f.Style.colors(BarColors)
		total   = bars.Sum()
		points  []Pos
		tips    = make(map[string]Tip)
		ticks   = withDefaultInt(c.Ticks, 5)
	)
	valueAxis(ly, ticks, c.Grid, false, f, &s)
	NumberAxis{
		Layer:          "y2",
		Orientation:    OrientRight,
		Ticks:          ticks,
		Scaler:         ry,
		Format:         PercentNumber,
		WithLabelTicks: true,
	}.Render(f.Plot, f.Style, &s)
	CategoryAxis{
		Layer:       "x",
		Scaler:      x,
		Orientation: OrientBottom,
		Truncate:    withDefaultInt(c.Truncate, DefaultTruncate),
		WithGuides:  c.Dash,
	}.Render(f.Plot, f.Style, &s)

	for i, d := range bars.Data {
		start, ok := x.Scale(d.Key)
		if !ok {
			continue
		}
		var (
			v      = bars.Value(i)
			rate   = valueAt(line, i, d.Key)
			top    = ly.Scale(nonNegative(v))
			center = start + x.Space()/2
			at     = NewPos(center, ry.Scale(rate))
		)
		s.add(Primitive{
			Key:    KeyOf("bar", d.Key, 0),
			Kind:   KindRect,
			Layer:  "bar",
			Datum:  d.Key,
			Pos:    NewPos(center-width/2, top),
			W:      width,
			H:      f.Plot.Bottom() - top,
			Radius: withDefault(c.Radius, DefaultBarRadius),
			Paint:  Paint{Fill: serieColor(bars, 0, colors)},
		})
		if line.Len() > 0 {
			points = append(points, at)
			marker(&s, MarkerSquare, KeyOf("point", d.Key, 1), d.Key, 1, at, HoverPointSize, serieColor(line, 1, colors), true)
		}
		tip := Tip{
			Datum:      d,
			Title:      bars.Title,
			Value:      v,
			Share:      share(v, total),
			Companions: companionsAt(f.Series, i, d.Key),
		}
		tips[d.Key] = tip
		if c.Tooltip {
			s.hit(Primitive{
				Key:   KeyOf("bar-hit", d.Key, 0),
				Kind:  KindRect,
				Layer: "hit",
				Datum: d.Key,
				Pos:   NewPos(start, f.Plot.Y),
				W:     x.Space(),
				H:     f.Plot.H,
			}, tip)
		}
	}
	if len(points) > 1 {
		s.add(Primitive{
			Key:    KeyOf("line", "", 1),
			Kind:   KindPath,
			Layer:  "line",
			Serie:  1,
			Points: points,
			Paint: Paint{
				Stroke:      serieColor(line, 1, colors),
				StrokeWidth: f.Style.lineWidth(2),
			},
		})
	}
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, bandInvert(x, false)),
		Scales:     Scales{Y: ly, Y2: ry, Band: x},
	}
}

type serieLine struct {
	index  int
	serie  Serie
	keys   []string
	xs     []float64
	x      LinearScaler
	y      LinearScaler
	plot   Rect
	color  string
	width  float64
	style  Style
	area   bool
	point  bool
	hover  bool
	radius float64
	shape  Marker
}

func drawSerie(s *shapes, line serieLine) {
	var (
		points []Pos
		count  = min(line.serie.Len(), len(line.xs))
	)
	for i := 0; i < count; i++ {
		at := NewPos(line.x.Scale(line.xs[i]), line.y.Scale(valueAt(line.serie, i, line.keys[i])))
		points = append(points, at)
		if !line.point || !withinX(line.plot, at.X) {
			continue
		}
		marker(s, line.shape, KeyOf("point", line.keys[i], line.index), line.keys[i], line.index, at, line.radius, line.color, line.hover)
	}
	points = clipX(points, line.plot.X, line.plot.Right())
	if len(points) == 0 {
		return
	}
	if line.area {
		var (
			fst  = slices.Fst(points)
			lst  = slices.Lst(points)
			poly = append(append([]Pos{}, points...), NewPos(lst.X, line.plot.Bottom()), NewPos(fst.X, line.plot.Bottom()))
		)
		s.add(Primitive{
			Key:    KeyOf("area", "", line.index),
			Kind:   KindPolygon,
			Layer:  "area",
			Serie:  line.index,
			Points: poly,
			Paint: Paint{
				Fill:        line.color,
				FillOpacity: line.style.fillOpacity(0.1),
			},
		})
	}
	s.add(Primitive{
		Key:    KeyOf("line", "", line.index),
		Kind:   KindPath,
		Layer:  "line",
		Serie:  line.index,
		Points: points,
		Paint: Paint{
			Stroke:        line.color,
			StrokeWidth:   line.width,
			StrokeOpacity: line.style.lineOpacity(),
		},
	})
}

// clipX cuts the polyline at the vertical edges x0 and x1, adding the
// points where it crosses them.
func clipX(points []Pos, x0, x1 float64) []Pos {
	var list []Pos
	for i, p := range points {
		if i > 0 {
			q := points[i-1]
			var cuts []float64
			for _, edge := range []float64{x0, x1} {
				if (q.X < edge && p.X > edge) || (q.X > edge && p.X < edge) {
					cuts = append(cuts, (edge-q.X)/(p.X-q.X))
				}
			}
			if len(cuts) == 2 && cuts[0] > cuts[1] {
				cuts[0], cuts[1] = cuts[1], cuts[0]
			}
			for _, t := range cuts {
				list = append(list, NewPos(q.X+t*(p.X-q.X), q.Y+t*(p.Y-q.Y)))
			}
		}
		if p.X >= x0 && p.X <= x1 {
			list = append(list, p)
		}
	}
	return list
}

func marker(s *shapes, shape Marker, key Key, datum string, serie int, at Pos, size float64, color string, hover bool) {
	p := shape.shape(at, size)
	p.Key = key
	p.Layer = "point"
	p.Datum = datum
	p.Serie = serie
	p.Paint = Paint{Fill: color, Stroke: ColorWhite}
	p.HoverOnly = hover
	s.add(p)
}

func periodTips(s *shapes, series []Serie, keys []string, xs []float64, x LinearScaler, plot Rect, hit bool, width float64) map[string]Tip {
	tips := make(map[string]Tip)
	if len(series) == 0 {
		return tips
	}
	first := slices.Fst(series)
	width = withDefault(width, DefaultHitWidth)
	for i, k := range keys {
		tip := Tip{
			Datum:      findDatum(k, series...),
			Title:      first.Title,
			Value:      valueAt(first, i, k),
			Companions: companionsAt(series, i, k),
		}
		tips[k] = tip
		px := x.Scale(xs[i])
		if !hit || !withinX(plot, px) {
			continue
		}
		s.hit(Primitive{
			Key:   KeyOf("hit", k, 0),
			Kind:  KindRect,
			Layer: "hit",
			Datum: k,
			Pos:   NewPos(px-width/2, plot.Y),
			W:     width,
			H:     plot.H,
		}, tip)
	}
	return tips
}

func periodLabels(keys []string, xs []float64, x LinearScaler, format Formatter, f Frame, s *shapes) {
	for i, k := range keys {
		px := x.Scale(xs[i])
		if !withinX(f.Plot, px) {
			continue
		}
		label := k
		if format != nil {
			label = format(xs[i])
		}
		at, paint := tickText(OrientBottom, f.Plot, px, 0, f.Style)
		s.text(KeyOf("x-tick", k, 0), label, at, paint)
	}
}

// periodsOf gives the keys of s and their position on the x axis. When a key
// is not a number nor a date, every period is placed by its index.
func periodsOf(s Serie) ([]string, []float64) {
	var (
		keys = s.Keys()
		xs   = make([]float64, len(keys))
	)
	for i, k := range keys {
		v, ok := PeriodValue(k)
		if !ok {
			for j := range xs {
				xs[j] = float64(j)
			}
			return keys, xs
		}
		xs[i] = v
	}
	return keys, xs
}

func periodScaler(xs []float64, plot Rect) LinearScaler {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, v := range xs {
		lo, hi = math.Min(lo, v), math.Max(hi, v)
	}
	if lo == hi {
		lo, hi = lo-1, hi+1
	}
	return NumberScaler(NumberDomain(lo, hi), NewRange(plot.X, plot.Right()))
}

func nearestPeriod(keys []string, xs []float64, x LinearScaler) func(Pos) (string, bool) {
	return func(p Pos) (string, bool) {
		var (
			want = x.Invert(p.X)
			best = -1
			diff = math.Inf(1)
		)
		for i, v := range xs {
			if d := math.Abs(v - want); d < diff {
				best, diff = i, d
			}
		}
		if best < 0 {
			return "", false
		}
		return keys[best], true
	}
}

func maxAt(series []Serie, i int, key string) float64 {
	var top float64
	for _, s := range series {
		top = math.Max(top, valueAt(s, i, key))
	}
	return top
}

func pick(series []Serie, index []int) []Serie {
	list := make([]Serie, 0, len(index))
	for _, i := range index {
		list = append(list, series[i])
	}
	return list
}

func pointSize(hover bool) float64 {
	if hover {
		return HoverPointSize
	}
	return DefaultPointSize
}

func withinX(plot Rect, x float64) bool {
	const eps = 1e-6
	return x >= plot.X-eps && x <= plot.Right()+eps
}
