package charts

import (
	"math"
	"sort"
)

var (
	TreeOpacities = []float64{1, 0.7, 0.4, 0.3, 0.2, 0.16, 0.12, 0.08, 0.04, 0.02, 0.01}
	TreeFontSizes = []float64{24, 20, 18, 18, 16, 16}
)

// TreeMapChart tiles the plot area with one rectangle per datum of the first
// serie, its area proportional to its value.
type TreeMapChart struct {
	Padding float64
	Labels  int
	Color   string
	Tooltip bool
}

func (c TreeMapChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(Padding{}))
}

func (c TreeMapChart) Build(f Frame) Plot {
	serie, ok := f.first()
	if !ok || serie.Len() == 0 {
		return Plot{}
	}
	var (
		s      shapes
		order  = make([]int, serie.Len())
		values = serie.Values()
		total  float64
		labels = c.Labels
		color  = c.Color
		pad    = c.Padding
		tips   = make(map[string]Tip)
		format = valueFormat(f, false)
	)
	if labels <= 0 {
		labels = 4
	}
	if color == "" {
		color = BarColors.At(0)
	}
	if pad <= 0 {
		pad = 1
	}
	for i := range order {
		order[i] = i
		values[i] = nonNegative(values[i])
		total += values[i]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] > values[order[j]]
	})
	sorted := make([]float64, len(order))
	for i, j := range order {
		sorted[i] = values[j]
	}
	tiles := Squarify(sorted, f.Plot)
	for rank, i := range order {
		var (
			d    = serie.Data[i]
			v    = values[i]
			tile = tiles[rank]
			box  = tile.Inset(pad / 2)
		)
		if tile.Area() <= 0 {
			continue
		}
		s.add(Primitive{
			Key:   KeyOf("tile", d.Key, 0),
			Kind:  KindRect,
			Layer: "tile",
			Datum: d.Key,
			Pos:   NewPos(box.X, box.Y),
			W:     box.W,
			H:     box.H,
			Paint: Paint{
				Fill:        color,
				FillOpacity: rankValue(TreeOpacities, rank),
			},
		})
		if rank >= labels {
			continue
		}
		var (
			size  = rankValue(TreeFontSizes, rank)
			title = f.Style.textPaint("start", "hanging")
			value = f.Style.textPaint("start", "hanging")
		)
		title.FontSize = size
		title.FontWeight = 700
		if rank == 0 {
			title.Fill = ColorWhite
			value.Fill = ColorWhite
		} else {
			title.Fill = ColorLabel
			value.Fill = ColorLabel
		}
		s.text(KeyOf("tile-title", d.Key, 0), d.Title(), NewPos(box.X+8, box.Y+8), title)
		s.text(KeyOf("tile-value", d.Key, 0), format(v)+" ("+PercentNumber(share(v, total))+")", NewPos(box.X+8, box.Y+12+size), value)

		tip := Tip{
			Datum: d,
			Title: serie.Title,
			Value: v,
			Share: share(v, total),
		}
		tips[d.Key] = tip
		if c.Tooltip {
			s.hit(Primitive{
				Key:   KeyOf("tile-hit", d.Key, 0),
				Kind:  KindRect,
				Layer: "hit",
				Datum: d.Key,
				Pos:   NewPos(tile.X, tile.Y),
				W:     tile.W,
				H:     tile.H,
			}, tip)
		}
	}
	return Plot{
		Primitives: s.primitives(),
		Tips:       tips,
	}
}

// Squarify partitions r in one rectangle per value, areas proportional to the
// values, laying out rows along the shortest side while the worst aspect
// ratio of the row improves. Values are best given in decreasing order.
// Non positive values get an empty rectangle.
func Squarify(values []float64, r Rect) []Rect {
	var (
		tiles = make([]Rect, len(values))
		areas = make([]float64, len(values))
		total float64
	)
	for _, v := range values {
		if v > 0 && isFinite(v) {
			total += v
		}
	}
	for i := range tiles {
		tiles[i] = Rect{X: r.X, Y: r.Y}
	}
	if total <= 0 || r.Area() <= 0 {
		return tiles
	}
	ratio := r.Area() / total
	if !isFinite(ratio) {
		return tiles
	}
	for i, v := range values {
		if v > 0 && isFinite(v) {
			areas[i] = v * ratio
		}
	}
	var (
		free = r
		i    int
	)
	for i < len(areas) {
		if !usableArea(areas[i]) || !usableArea(free.W) || !usableArea(free.H) {
			tiles[i] = Rect{X: free.X, Y: free.Y}
			i++
			continue
		}
		var (
			side  = math.Min(free.W, free.H)
			j     = i
			sum   float64
			worst = math.Inf(1)
		)
		for j < len(areas) && usableArea(areas[j]) {
			w := worstRatio(areas[i:j+1], sum+areas[j], side)
			if j > i && w > worst {
				break
			}
			worst = w
			sum += areas[j]
			j++
		}
		if j == i {
			tiles[i] = Rect{X: free.X, Y: free.Y}
			i++
			continue
		}
		if free.W >= free.H {
			thick := sum / free.H
			y := free.Y
			for k := i; k < j; k++ {
				h := areas[k] / thick
				tiles[k] = Rect{X: free.X, Y: y, W: thick, H: h}
				y += h
			}
			free.X += thick
			free.W = nonNegative(free.W - thick)
		} else {
			thick := sum / free.W
			x := free.X
			for k := i; k < j; k++ {
				w := areas[k] / thick
				tiles[k] = Rect{X: x, Y: free.Y, W: w, H: thick}
				x += w
			}
			free.Y += thick
			free.H = nonNegative(free.H - thick)
		}
		i = j
	}
	return tiles
}

func usableArea(f float64) bool {
	return f > 0 && isFinite(f)
}

func worstRatio(row []float64, sum, side float64) float64 {
	if sum <= 0 || side <= 0 {
		return math.Inf(1)
	}
	var (
		lo = math.Inf(1)
		hi = math.Inf(-1)
	)
	for _, a := range row {
		lo = math.Min(lo, a)
		hi = math.Max(hi, a)
	}
	var (
		s2 = sum * sum
		w2 = side * side
	)
	return math.Max(w2*hi/s2, s2/(w2*lo))
}

func rankValue(list []float64, rank int) float64 {
	if len(list) == 0 {
		return 1
	}
	if rank >= len(list) {
		return list[len(list)-1]
	}
	return list[rank]
}
