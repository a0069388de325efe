package charts

import (
	"math"
	"sort"
)

var (
	barPadding        = Padding{Top: 10, Right: 16, Bottom: 34, Left: 40}
	horizontalPadding = Padding{Top: 0, Right: 48, Bottom: 0, Left: 0}
	pyramidPadding    = Padding{Top: 10, Right: 20, Bottom: 30, Left: 20}
	overlapPadding    = Padding{Top: 10, Right: 20, Bottom: 30, Left: 80}
)

const (
	DefaultBarThickness = 40
	DefaultBarRadius    = 4
	DefaultTruncate     = 8
)

// BarChart draws the first serie as vertical bars. The value axis covers every
// given serie.
type BarChart struct {
	Thickness float64
	Radius    float64
	Ticks     int
	Truncate  int
	Percent   bool
	Dash      bool
	Grid      bool
	Tooltip   bool
}

func (c BarChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(barPadding))
}

func (c BarChart) Build(f Frame) Plot {
	serie, ok := f.first()
	if !ok {
		return Plot{}
	}
	var (
		s      shapes
		dom    = valueDomain(c.Percent, f.Series...)
		x      = StringScaler(serie.Keys(), NewRange(f.Plot.X, f.Plot.Right()))
		y      = NumberScaler(dom, NewRange(f.Plot.Bottom(), f.Plot.Y))
		width  = math.Min(withDefault(c.Thickness, DefaultBarThickness), x.Space())
		colors = f.Style.colors(BarColors)
		total  = serie.Sum()
		tips   = make(map[string]Tip)
	)
	valueAxis(y, c.Ticks, c.Grid, c.Percent, f, &s)
	CategoryAxis{
		Layer:       "x",
		Scaler:      x,
		Orientation: OrientBottom,
		Truncate:    withDefaultInt(c.Truncate, DefaultTruncate),
		WithGuides:  c.Dash,
	}.Render(f.Plot, f.Style, &s)

	for i, d := range serie.Data {
		start, ok := x.Scale(d.Key)
		if !ok {
			continue
		}
		var (
			v   = serie.Value(i)
			top = y.Scale(nonNegative(v))
		)
		s.add(Primitive{
			Key:    KeyOf("bar", d.Key, 0),
			Kind:   KindRect,
			Layer:  "bar",
			Datum:  d.Key,
			Pos:    NewPos(start+(x.Space()-width)/2, top),
			W:      width,
			H:      f.Plot.Bottom() - top,
			Radius: withDefault(c.Radius, DefaultBarRadius),
			Paint:  Paint{Fill: colors.At(i)},
		})
		tip := Tip{
			Datum: d,
			Title: serie.Title,
			Value: v,
			Share: share(v, total),
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
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, bandInvert(x, false)),
		Scales:     Scales{Y: y, Band: x},
	}
}

// GroupedBarChart draws every serie side by side in each category.
type GroupedBarChart struct {
	Thickness float64
	Gap       float64
	Radius    float64
	Ticks     int
	Truncate  int
	Percent   bool
	Dash      bool
	Grid      bool
	Tooltip   bool
}

func (c GroupedBarChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(barPadding))
}

func (c GroupedBarChart) Build(f Frame) Plot {
	first, ok := f.first()
	if !ok {
		return Plot{}
	}
	var (
		s      shapes
		dom    = valueDomain(c.Percent, f.Series...)
		x      = StringScaler(first.Keys(), NewRange(f.Plot.X, f.Plot.Right()))
		y      = NumberScaler(dom, NewRange(f.Plot.Bottom(), f.Plot.Y))
		count  = float64(len(f.Series))
		thick  = withDefault(c.Thickness, DefaultBarThickness)
		gap    = withDefault(c.Gap, 10)
		group  = count*thick + (count-1)*gap
		colors = f.Style.colors(BarColors)
		tips   = make(map[string]Tip)
	)
	if group > x.Space() && group > 0 {
		ratio := x.Space() / group
		thick, gap, group = thick*ratio, gap*ratio, x.Space()
	}
	valueAxis(y, c.Ticks, c.Grid, c.Percent, f, &s)
	CategoryAxis{
		Layer:       "x",
		Scaler:      x,
		Orientation: OrientBottom,
		Truncate:    withDefaultInt(c.Truncate, DefaultTruncate),
		WithGuides:  c.Dash,
	}.Render(f.Plot, f.Style, &s)

	for i, d := range first.Data {
		start, ok := x.Scale(d.Key)
		if !ok {
			continue
		}
		offset := start + (x.Space()-group)/2
		for j, serie := range f.Series {
			var (
				v   = valueAt(serie, i, d.Key)
				top = y.Scale(nonNegative(v))
			)
			s.add(Primitive{
				Key:    KeyOf("bar", d.Key, j),
				Kind:   KindRect,
				Layer:  "bar",
				Datum:  d.Key,
				Serie:  j,
				Pos:    NewPos(offset+float64(j)*(thick+gap), top),
				W:      thick,
				H:      f.Plot.Bottom() - top,
				Radius: withDefault(c.Radius, DefaultBarRadius),
				Paint:  Paint{Fill: serieColor(serie, j, colors)},
			})
		}
		tip := Tip{
			Datum:      d,
			Title:      first.Title,
			Value:      first.Value(i),
			Companions: companionsAt(f.Series, i, d.Key),
		}
		tips[d.Key] = tip
		if c.Tooltip {
			s.hit(Primitive{
				Key:   KeyOf("bar-hit", d.Key, 0),
				Kind:  KindRect,
				Layer: "hit",
				Datum: d.Key,
				Pos:   NewPos(offset, f.Plot.Y),
				W:     group,
				H:     f.Plot.H,
			}, tip)
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, bandInvert(x, false)),
		Scales:     Scales{Y: y, Band: x},
	}
}

// HorizontalBarChart lists the first serie as horizontal bars, their length
// relative to the largest value.
type HorizontalBarChart struct {
	Thickness float64
	Gap       float64
	Radius    float64
	Percent   bool
	Tooltip   bool
}

func (c HorizontalBarChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(horizontalPadding))
}

func (c HorizontalBarChart) Build(f Frame) Plot {
	serie, ok := f.first()
	if !ok {
		return Plot{}
	}
	var (
		s      shapes
		ext    = ZeroDomain(serie)
		x      = NumberScaler(ext, NewRange(f.Plot.X, f.Plot.Right()))
		thick  = withDefault(c.Thickness, 24)
		gap    = withDefault(c.Gap, 12)
		colors = f.Style.colors(BlueShades)
		format = valueFormat(f, c.Percent)
		total  = serie.Sum()
		tips   = make(map[string]Tip)
	)
	for i, d := range serie.Data {
		var (
			v     = serie.Value(i)
			top   = f.Plot.Y + float64(i)*(thick+gap)
			width = x.Scale(v) - f.Plot.X
			color = ColorLabel
		)
		if i == 0 {
			color = ColorWhite
		}
		s.add(Primitive{
			Key:    KeyOf("bar", d.Key, 0),
			Kind:   KindRect,
			Layer:  "bar",
			Datum:  d.Key,
			Pos:    NewPos(f.Plot.X, top),
			W:      width,
			H:      thick,
			Radius: c.Radius,
			Paint:  Paint{Fill: colors.Rank(i, colors[len(colors)-1])},
		})
		title := f.Style.textPaint("start", "middle")
		title.Fill = color
		s.text(KeyOf("bar-title", d.Key, 0), d.Title(), NewPos(f.Plot.X+8, top+thick/2), title)
		s.text(KeyOf("bar-value", d.Key, 0), format(v), NewPos(f.Plot.X+nonNegative(width)+4, top+thick/2), f.Style.textPaint("start", "middle"))

		tip := Tip{
			Datum: d,
			Title: serie.Title,
			Value: v,
			Share: share(v, total),
		}
		tips[d.Key] = tip
		if c.Tooltip {
			s.hit(Primitive{
				Key:   KeyOf("bar-hit", d.Key, 0),
				Kind:  KindRect,
				Layer: "hit",
				Datum: d.Key,
				Pos:   NewPos(f.Plot.X, top),
				W:     f.Plot.W,
				H:     thick,
			}, tip)
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Tips:       tips,
		Scales:     Scales{X: x},
	}
}

// PyramidChart puts the first serie on the left of the label gutter, mirrored,
// and the second one on the right.
type PyramidChart struct {
	Thickness float64
	Gutter    float64
	Ticks     int
	Percent   bool
	Grid      bool
	Tooltip   bool
}

func (c PyramidChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(pyramidPadding)).Split(withDefault(c.Gutter, 150))
}

func (c PyramidChart) Build(f Frame) Plot {
	var (
		left, _  = f.serie(0)
		right, _ = f.serie(1)
		keys     = mergeKeys(left, right)
	)
	if len(keys) == 0 {
		return Plot{}
	}
	var (
		s      shapes
		limit  = valueDomain(c.Percent, left, right).Max
		band   = StringScaler(keys, NewRange(f.Plot.Y, f.Plot.Bottom()))
		lx     = NumberScaler(NumberDomain(0, -limit), NewRange(f.Left.Right(), f.Left.X))
		rx     = NumberScaler(NumberDomain(0, limit), NewRange(f.Right.X, f.Right.Right()))
		thick  = math.Min(withDefault(c.Thickness, 20), band.Space())
		colors = f.Style.colors(BarColors)
		format = valueFormat(f, c.Percent)
		ticks  = GenerateTicks(NumberDomain(0, limit), withDefaultInt(c.Ticks, 11))
		tips   = make(map[string]Tip)
	)
	mirror := make([]float64, len(ticks))
	for i, t := range ticks {
		mirror[i] = -t
	}
	NumberAxis{
		Layer:       "x-left",
		Orientation: OrientBottom,
		Values:      mirror,
		Scaler:      lx,
		Format: func(v float64) string {
			return format(-v)
		},
		WithGrid:       c.Grid,
		WithLabelTicks: true,
	}.Render(f.Left, f.Style, &s)
	NumberAxis{
		Layer:          "x-right",
		Orientation:    OrientBottom,
		Values:         ticks,
		Scaler:         rx,
		Format:         format,
		WithGrid:       c.Grid,
		WithLabelTicks: true,
	}.Render(f.Right, f.Style, &s)

	for _, key := range keys {
		var (
			start, _ = band.Scale(key)
			top      = start + (band.Space()-thick)/2
			lv, _    = left.Lookup(key)
			rv, _    = right.Lookup(key)
			pos      = lx.Scale(-lv)
		)
		s.add(Primitive{
			Key:   KeyOf("bar", key, 0),
			Kind:  KindRect,
			Layer: "bar",
			Datum: key,
			Pos:   NewPos(pos, top),
			W:     f.Left.Right() - pos,
			H:     thick,
			Paint: Paint{Fill: serieColor(left, 0, colors)},
		})
		s.add(Primitive{
			Key:   KeyOf("bar", key, 1),
			Kind:  KindRect,
			Layer: "bar",
			Datum: key,
			Serie: 1,
			Pos:   NewPos(f.Right.X, top),
			W:     rx.Scale(rv) - f.Right.X,
			H:     thick,
			Paint: Paint{Fill: serieColor(right, 1, colors)},
		})
		center, _ := band.Center(key)
		s.text(KeyOf("y-tick", key, 0), key, NewPos(f.Left.Right()+f.Gutter/2, center), f.Style.textPaint("middle", "middle"))

		tip := Tip{
			Datum: findDatum(key, left, right),
			Title: left.Title,
			Value: lv,
			Companions: []Companion{
				{Title: left.Title, Color: left.Color, Value: lv},
				{Title: right.Title, Color: right.Color, Value: rv},
			},
		}
		tips[key] = tip
		if c.Tooltip {
			s.hit(Primitive{
				Key:   KeyOf("row-hit", key, 0),
				Kind:  KindRect,
				Layer: "hit",
				Datum: key,
				Pos:   NewPos(f.Plot.X, start),
				W:     f.Plot.W,
				H:     band.Space(),
			}, tip)
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, bandInvert(band, true)),
		Scales:     Scales{X: rx, Band: band},
	}
}

// OverlapChart draws every serie on the same row, the largest value first so
// that smaller ones stay visible.
type OverlapChart struct {
	Thickness float64
	Ticks     int
	Percent   bool
	Grid      bool
	Tooltip   bool
}

func (c OverlapChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(overlapPadding))
}

func (c OverlapChart) Build(f Frame) Plot {
	keys := mergeKeys(f.Series...)
	if len(keys) == 0 {
		return Plot{}
	}
	var (
		s      shapes
		dom    = valueDomain(c.Percent, f.Series...)
		band   = StringScaler(keys, NewRange(f.Plot.Y, f.Plot.Bottom()))
		x      = NumberScaler(dom, NewRange(f.Plot.X, f.Plot.Right()))
		thick  = math.Min(withDefault(c.Thickness, 20), band.Space())
		colors = f.Style.colors(BarColors)
		tips   = make(map[string]Tip)
	)
	NumberAxis{
		Layer:          "x",
		Orientation:    OrientBottom,
		Ticks:          withDefaultInt(c.Ticks, 11),
		Scaler:         x,
		Format:         valueFormat(f, c.Percent),
		WithGrid:       c.Grid,
		WithLabelTicks: true,
	}.Render(f.Plot, f.Style, &s)
	CategoryAxis{
		Layer:       "y",
		Scaler:      band,
		Orientation: OrientLeft,
	}.Render(f.Plot, f.Style, &s)

	type entry struct {
		serie int
		value float64
	}
	for _, key := range keys {
		var (
			start, _ = band.Scale(key)
			top      = start + (band.Space()-thick)/2
			list     []entry
			comps    []Companion
		)
		for j, serie := range f.Series {
			v, _ := serie.Lookup(key)
			list = append(list, entry{serie: j, value: v})
			comps = append(comps, Companion{Title: serie.Title, Color: serie.Color, Value: v})
		}
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].value > list[j].value
		})
		for _, e := range list {
			serie := f.Series[e.serie]
			s.add(Primitive{
				Key:   KeyOf("bar", key, e.serie),
				Kind:  KindRect,
				Layer: "bar",
				Datum: key,
				Serie: e.serie,
				Pos:   NewPos(f.Plot.X, top),
				W:     x.Scale(e.value) - f.Plot.X,
				H:     thick,
				Paint: Paint{Fill: serieColor(serie, e.serie, colors)},
			})
		}
		tip := Tip{
			Datum:      findDatum(key, f.Series...),
			Title:      f.Series[0].Title,
			Value:      comps[0].Value,
			Companions: comps,
		}
		tips[key] = tip
		if c.Tooltip {
			s.hit(Primitive{
				Key:   KeyOf("row-hit", key, 0),
				Kind:  KindRect,
				Layer: "hit",
				Datum: key,
				Pos:   NewPos(f.Plot.X, start),
				W:     f.Plot.W,
				H:     band.Space(),
			}, tip)
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Area:       f.Plot,
		Tips:       tips,
		Invert:     invertWhen(c.Tooltip, bandInvert(band, true)),
		Scales:     Scales{X: x, Band: band},
	}
}

func valueDomain(percent bool, series ...Serie) Domain {
	dom := ZeroDomain(series...)
	if percent {
		dom = dom.Percent()
	}
	return dom
}

func valueFormat(f Frame, percent bool) Formatter {
	if percent {
		return PercentNumber
	}
	if f.Format != nil {
		return f.Format
	}
	return CompactNumber
}

func valueAxis(y LinearScaler, ticks int, grid, percent bool, f Frame, s *shapes) {
	NumberAxis{
		Layer:          "y",
		Orientation:    OrientLeft,
		Ticks:          withDefaultInt(ticks, 5),
		Scaler:         y,
		Format:         valueFormat(f, percent),
		WithGrid:       grid,
		WithLabelTicks: true,
	}.Render(f.Plot, f.Style, s)
}

func bandInvert(band BandScaler, vertical bool) func(Pos) (string, bool) {
	return func(p Pos) (string, bool) {
		if vertical {
			return band.Invert(p.Y)
		}
		return band.Invert(p.X)
	}
}

// valueAt reads the value of key in serie, trying index i first.
func valueAt(s Serie, i int, key string) float64 {
	if i >= 0 && i < len(s.Data) && s.Data[i].Key == key {
		return s.Value(i)
	}
	v, _ := s.Lookup(key)
	return v
}

func companionsAt(series []Serie, i int, key string) []Companion {
	list := make([]Companion, 0, len(series))
	for _, s := range series {
		list = append(list, Companion{
			Title: s.Title,
			Color: s.Color,
			Value: valueAt(s, i, key),
		})
	}
	return list
}

func mergeKeys(series ...Serie) []string {
	var (
		keys []string
		seen = make(map[string]struct{})
	)
	for _, s := range series {
		for _, d := range s.Data {
			if _, ok := seen[d.Key]; ok {
				continue
			}
			seen[d.Key] = struct{}{}
			keys = append(keys, d.Key)
		}
	}
	return keys
}

func findDatum(key string, series ...Serie) Datum {
	for _, s := range series {
		for _, d := range s.Data {
			if d.Key == key {
				return d
			}
		}
	}
	return Datum{Key: key}
}

func withDefault(v, def float64) float64 {
	if v <= 0 {
		return def
	}
	return v
}

func withDefaultInt(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}
