package charts

import (
	"math"
	"sort"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	WordSizes   = []float64{42, 36, 30, 25, 22, 19, 19, 16}
	WordWeights = []int{700, 700, 700, 700, 700, 700, 400}
)

const (
	DefaultWordSize   = 14
	DefaultWordWeight = 400
	DefaultWordLabels = 8
	wordFontSize      = 8
	wordColor         = ColorText
)

// WordCloudChart packs one circle per datum of the first serie around the
// center of the plot. The radius of a circle depends on the rank of its
// value. The circles move from the center until the simulation settles.
type WordCloudChart struct {
	Iterations int
	Strength   float64
	Padding    float64
	Labels     int
	Tooltip    bool
}

func (c WordCloudChart) Compose(vp Viewport) Layout {
	return Compose(vp.Width, vp.Height, vp.padding(Padding{}))
}

func (c WordCloudChart) Build(f Frame) Plot {
	serie, ok := f.first()
	if !ok || serie.Len() == 0 {
		return Plot{}
	}
	var (
		order  = make([]int, serie.Len())
		values = serie.Values()
		total  float64
	)
	for i := range order {
		order[i] = i
		values[i] = nonNegative(values[i])
		total += values[i]
	}
	sort.SliceStable(order, func(i, j int) bool {
		return values[order[i]] > values[order[j]]
	})

	cloud := wordCloud{
		labels:  c.Labels,
		tooltip: c.Tooltip,
		colors:  f.Style.colors(WordColors),
	}
	if cloud.labels <= 0 {
		cloud.labels = DefaultWordLabels
	}
	var (
		center = f.Plot.Center()
		nodes  = make([]Node, 0, len(order))
	)
	for rank, i := range order {
		var (
			d    = serie.Data[i]
			size = wordSize(rank)
			w    = textWidth(d.Title(), wordFontSize)
		)
		// nodes start on a small spiral so that the forces have a direction
		angle := float64(rank) * math.Pi * (3 - math.Sqrt(5))
		nodes = append(nodes, Node{
			X: center.X + math.Sqrt(float64(rank)+0.5)*math.Cos(angle),
			Y: center.Y + math.Sqrt(float64(rank)+0.5)*math.Sin(angle),
			R: math.Max(size, w/2) + c.Padding,
		})
		cloud.words = append(cloud.words, word{
			Datum: d,
			Rank:  rank,
			Size:  size,
			Tip: Tip{
				Datum: d,
				Title: serie.Title,
				Value: values[i],
				Share: share(values[i], total),
			},
		})
	}
	cloud.sim = NewSimulation(nodes, center)
	if c.Iterations > 0 {
		cloud.sim.MaxIterations = c.Iterations
	}
	if c.Strength != 0 {
		cloud.sim.Strength = c.Strength
	}

	tips := make(map[string]Tip)
	for _, w := range cloud.words {
		tips[w.Datum.Key] = w.Tip
	}
	return Plot{
		Primitives: cloud.Primitives(),
		Tips:       tips,
		Motion:     &cloud,
	}
}

type word struct {
	Datum Datum
	Rank  int
	Size  float64
	Tip   Tip
}

type wordCloud struct {
	sim     *Simulation
	words   []word
	colors  Palette
	labels  int
	tooltip bool
}

func (w *wordCloud) Step() bool {
	return w.sim.Step()
}

func (w *wordCloud) Primitives() []Primitive {
	var s shapes
	for i, wd := range w.words {
		var (
			n     = w.sim.Nodes[i]
			at    = NewPos(n.X, n.Y)
			key   = wd.Datum.Key
			color = w.colors.Rank(wd.Rank, wordColor)
		)
		s.add(Primitive{
			Key:    KeyOf("word", key, 0),
			Kind:   KindCircle,
			Layer:  "word",
			Datum:  key,
			Pos:    at,
			Radius: wd.Size,
			Paint: Paint{
				Fill:        color,
				FillOpacity: 0.7,
			},
		})
		if wd.Rank < w.labels {
			paint := Paint{
				Fill:       ColorWhite,
				FontSize:   wordFontSize,
				FontWeight: wordWeight(wd.Rank),
				Anchor:     "middle",
				Baseline:   "middle",
			}
			first, second := wordLines(wd.Datum.Title(), wd.Size)
			s.text(KeyOf("word-line", key, 0), first, NewPos(at.X, at.Y-2), paint)
			if second != "" {
				s.text(KeyOf("word-line", key, 1), second, NewPos(at.X, at.Y+10), paint)
			}
		}
		if w.tooltip {
			s.hit(Primitive{
				Key:    KeyOf("word-hit", key, 0),
				Kind:   KindCircle,
				Layer:  "hit",
				Datum:  key,
				Pos:    at,
				Radius: wd.Size,
			}, wd.Tip)
		}
	}
	return s.primitives()
}

// wordLines splits a label on two lines sized after the radius of its
// circle. The second line is cut when the label is still too long.
func wordLines(str string, size float64) (string, string) {
	var (
		runes = []rune(str)
		cut1  = int(size / 3)
		cut2  = int(size * 3 / 7)
	)
	if cut1 >= len(runes) {
		return str, ""
	}
	if cut2 >= len(runes) {
		return string(runes[:cut1]), string(runes[cut1:])
	}
	return string(runes[:cut1]), string(runes[cut1:cut2]) + "..."
}

func wordSize(rank int) float64 {
	if rank < len(WordSizes) {
		return WordSizes[rank]
	}
	return DefaultWordSize
}

func wordWeight(rank int) int {
	if rank < len(WordWeights) {
		return WordWeights[rank]
	}
	return DefaultWordWeight
}

// textWidth approximates the width of str at the given font size using the
// metrics of a fixed face.
func textWidth(str string, size float64) float64 {
	face := basicfont.Face7x13
	w := font.MeasureString(face, str).Ceil()
	return float64(w) * size / float64(face.Height)
}
