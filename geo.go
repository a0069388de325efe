package charts

import (
	"math"
)

// Region is a named boundary. Polygons are rings of longitude/latitude pairs
// in degrees, X being the longitude.
type Region struct {
	Name     string
	Polygons [][]Pos
}

// Mercator projects lon/lat to the plane then scales and translates the
// result.
type Mercator struct {
	Scale  float64
	Offset Pos
}

func mercator(p Pos) Pos {
	const maxLat = 85.05112878
	var (
		lat    = math.Max(-maxLat, math.Min(maxLat, p.Y))
		lambda = p.X * math.Pi / 180
		phi    = lat * math.Pi / 180
	)
	return NewPos(lambda, -math.Log(math.Tan(math.Pi/4+phi/2)))
}

func (m Mercator) Project(p Pos) Pos {
	q := mercator(p)
	return NewPos(m.Offset.X+m.Scale*q.X, m.Offset.Y+m.Scale*q.Y)
}

// FitMercator gives the projection fitting every region in the rectangle,
// keeping the aspect ratio and centering the result.
func FitMercator(regions []Region, r Rect) Mercator {
	var (
		x0, y0 = math.Inf(1), math.Inf(1)
		x1, y1 = math.Inf(-1), math.Inf(-1)
		seen   bool
	)
	for _, g := range regions {
		for _, ring := range g.Polygons {
			for _, p := range ring {
				q := mercator(p)
				if !q.finite() {
					continue
				}
				seen = true
				x0, x1 = math.Min(x0, q.X), math.Max(x1, q.X)
				y0, y1 = math.Min(y0, q.Y), math.Max(y1, q.Y)
			}
		}
	}
	if !seen {
		return Mercator{Scale: 1, Offset: r.Center()}
	}
	var (
		fx    = (x1 - x0) / r.W
		fy    = (y1 - y0) / r.H
		fit   = math.Max(fx, fy)
		scale = 1.0
	)
	if fit > 0 && isFinite(fit) {
		scale = 1 / fit
	}
	return Mercator{
		Scale:  scale,
		Offset: NewPos(r.X+r.W/2-scale*(x1+x0)/2, r.Y+r.H/2-scale*(y1+y0)/2),
	}
}

// MapChart fills every region with a color from the range of the values of
// the first serie, keyed by region name. The largest value gets the first
// color.
type MapChart struct {
	Regions []Region
	Colors  Palette
	Tooltip bool
}

func (c MapChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(Padding{Top: 10, Right: 10, Bottom: 10, Left: 10}))
}

func (c MapChart) Build(f Frame) Plot {
	if len(c.Regions) == 0 {
		return Plot{}
	}
	var (
		s        shapes
		serie, _ = f.first()
		proj     = FitMercator(c.Regions, f.Plot)
		colors   = c.Colors
		dom      = ExtentOf(serie)
		total    = serie.Sum()
		tips     = make(map[string]Tip)
	)
	if len(colors) == 0 {
		colors = MapColors
	}
	var (
		grad = Gradient(colors)
		norm = NumberScaler(NumberDomain(dom.Max, dom.Min), NewRange(0, 1))
	)
	for _, g := range c.Regions {
		var (
			v, _ = serie.Lookup(g.Name)
			t    = math.Max(0, math.Min(1, norm.Scale(v)))
			fill = hexColor(grad.Map(t))
		)
		for i, ring := range g.Polygons {
			points := make([]Pos, 0, len(ring))
			for _, p := range ring {
				points = append(points, proj.Project(p))
			}
			region := Primitive{
				Key:    KeyOf("region", g.Name, i),
				Kind:   KindPolygon,
				Layer:  "region",
				Datum:  g.Name,
				Points: points,
				Paint: Paint{
					Fill:        fill,
					Stroke:      ColorWhite,
					StrokeWidth: 0.5,
				},
			}
			s.add(region)
			tip := Tip{
				Datum: findDatum(g.Name, serie),
				Title: serie.Title,
				Value: v,
				Share: share(v, total),
			}
			tips[g.Name] = tip
			if c.Tooltip {
				region.Key = KeyOf("region-hit", g.Name, i)
				region.Layer = "hit"
				s.hit(region, tip)
			}
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Tips:       tips,
	}
}
