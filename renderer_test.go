package charts

import (
	"math"
	"testing"
)

func build(b Builder, w, h float64, series ...Serie) Plot {
	layout := b.Compose(Viewport{Width: w, Height: h})
	return b.Build(Frame{
		Layout: layout,
		Series: series,
	})
}

func serieOf(title string, keys []string, values ...any) Serie {
	s := Serie{Label: Label{Title: title}}
	for i, k := range keys {
		var v any
		if i < len(values) {
			v = values[i]
		}
		s.Data = append(s.Data, NewDatum(k, v))
	}
	return s
}

func checkPrimitives(t *testing.T, list []Primitive) {
	t.Helper()
	for _, p := range list {
		if p.W < 0 || p.H < 0 || p.Radius < 0 {
			t.Errorf("%s: negative size (w: %f, h: %f, r: %f)", p.Key, p.W, p.H, p.Radius)
		}
		for _, f := range []float64{p.Pos.X, p.Pos.Y, p.End.X, p.End.Y, p.W, p.H, p.Arc.Start, p.Arc.End} {
			if math.IsNaN(f) || math.IsInf(f, 0) {
				t.Errorf("%s: non finite value in %+v", p.Key, p)
				break
			}
		}
	}
}

func findPrimitive(list []Primitive, k Key) (Primitive, bool) {
	for _, p := range list {
		if p.Key == k {
			return p, true
		}
	}
	return Primitive{}, false
}

var weekdays = []string{"Monday", "Tuesday", "Wednesday"}
