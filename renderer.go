package charts

// Builder turns series into primitives. Compose gives the layout the chart
// needs for a viewport, Build the primitives drawn in that layout.
type Builder interface {
	Compose(Viewport) Layout
	Build(Frame) Plot
}

type Frame struct {
	Layout
	Series []Serie
	Style  Style
	Format Formatter
}

func (f Frame) first() (Serie, bool) {
	if len(f.Series) == 0 {
		return Serie{}, false
	}
	return f.Series[0], true
}

func (f Frame) serie(i int) (Serie, bool) {
	if i < 0 || i >= len(f.Series) {
		return Serie{}, false
	}
	return f.Series[i], true
}

// Motion is implemented by charts whose primitives keep moving after they
// have been built.
type Motion interface {
	// Step advances the motion by one frame. It returns false once it is
	// settled.
	Step() bool
	Primitives() []Primitive
}

type Scales struct {
	X      LinearScaler
	Y      LinearScaler
	Y2     LinearScaler
	Band   BandScaler
	Radius RadialScaler
}

type Plot struct {
	Primitives []Primitive
	// Area is where Invert is used when no hit target is under the pointer.
	Area   Rect
	Tips   map[string]Tip
	Invert func(Pos) (string, bool)
	Scales Scales
	Motion Motion
}

func (p Plot) Empty() bool {
	return len(p.Primitives) == 0
}

type invertFunc func(Pos) (string, bool)

// invertWhen keeps fn only for charts with tooltips.
func invertWhen(tooltip bool, fn invertFunc) invertFunc {
	if !tooltip {
		return nil
	}
	return fn
}

// companions collects the value of every serie at index i.
func companions(series []Serie, i int) []Companion {
	list := make([]Companion, 0, len(series))
	for _, s := range series {
		list = append(list, Companion{
			Title: s.Title,
			Color: s.Color,
			Value: s.Value(i),
		})
	}
	return list
}

func serieColor(s Serie, i int, def Palette) string {
	if s.Color != "" {
		return s.Color
	}
	return def.At(i)
}

func share(v, total float64) float64 {
	if total == 0 {
		return 0
	}
	return v * 100 / total
}
