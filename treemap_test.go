package charts

import (
	"math"
	"testing"
	"time"
)

func TestSquarify(t *testing.T) {
	tests := []struct {
		Values []float64
		Rect   Rect
	}{
		{Values: []float64{6, 6, 4, 3, 2, 2, 1}, Rect: Rect{W: 600, H: 400}},
		{Values: []float64{1}, Rect: Rect{X: 10, Y: 10, W: 100, H: 50}},
		{Values: []float64{50, 1, 1, 1}, Rect: Rect{W: 300, H: 300}},
		{Values: []float64{5, 0, 3, -2}, Rect: Rect{W: 200, H: 100}},
	}
	for _, tt := range tests {
		var (
			tiles = Squarify(tt.Values, tt.Rect)
			area  float64
		)
		if len(tiles) != len(tt.Values) {
			t.Fatalf("want %d tiles, got %d", len(tt.Values), len(tiles))
		}
		for i, r := range tiles {
			if r.W < 0 || r.H < 0 {
				t.Errorf("tile %d: negative size %v", i, r)
			}
			if tt.Values[i] <= 0 && r.Area() != 0 {
				t.Errorf("tile %d: non positive value should be empty", i)
			}
			if r.Area() > 0 && (r.X < tt.Rect.X-1e-6 || r.Right() > tt.Rect.Right()+1e-6 || r.Y < tt.Rect.Y-1e-6 || r.Bottom() > tt.Rect.Bottom()+1e-6) {
				t.Errorf("tile %d: %v outside of %v", i, r, tt.Rect)
			}
			area += r.Area()
		}
		if math.Abs(area-tt.Rect.Area()) > 1e-6*tt.Rect.Area() {
			t.Errorf("%v: tiles cover %f, want %f", tt.Values, area, tt.Rect.Area())
		}
	}
}

func TestSquarifyEmpty(t *testing.T) {
	for _, r := range Squarify([]float64{0, 0}, Rect{W: 10, H: 10}) {
		if r.Area() != 0 {
			t.Fatalf("zero values should give empty tiles")
		}
	}
}

func TestTreeMapChart(t *testing.T) {
	var (
		keys = []string{"small", "big", "medium"}
		s    = serieOf("sales", keys, 10, 60, 30)
		plot = build(TreeMapChart{Tooltip: true}, 400, 300, s)
	)
	checkPrimitives(t, plot.Primitives)
	big, ok := findPrimitive(plot.Primitives, KeyOf("tile", "big", 0))
	if !ok {
		t.Fatalf("tile of big not found")
	}
	small, _ := findPrimitive(plot.Primitives, KeyOf("tile", "small", 0))
	if big.W*big.H <= small.W*small.H {
		t.Fatalf("larger value should get the larger tile")
	}
	if big.FillOpacity != TreeOpacities[0] {
		t.Fatalf("largest tile should be the most opaque")
	}
	value, ok := findPrimitive(plot.Primitives, KeyOf("tile-value", "big", 0))
	if !ok || value.Text != "60 (60%)" {
		t.Fatalf("unexpected value label %q", value.Text)
	}
}

func TestTreeMapChartNonFiniteViewport(t *testing.T) {
	sizes := []struct {
		Width  float64
		Height float64
	}{
		{Width: math.NaN(), Height: 400},
		{Width: math.Inf(1), Height: 400},
		{Width: 400, Height: math.Inf(-1)},
	}
	for _, sz := range sizes {
		done := make(chan Plot, 1)
		go func() {
			done <- build(TreeMapChart{Tooltip: true}, sz.Width, sz.Height, serieOf("sales", weekdays, 1, 2, 3))
		}()
		select {
		case plot := <-done:
			checkPrimitives(t, plot.Primitives)
		case <-time.After(2 * time.Second):
			t.Fatalf("%f x %f: treemap did not complete", sz.Width, sz.Height)
		}
	}
}

func TestSquarifyNonFinite(t *testing.T) {
	tests := []struct {
		Values []float64
		Rect   Rect
	}{
		{Values: []float64{1, 2, 3}, Rect: Rect{W: math.NaN(), H: 100}},
		{Values: []float64{1, 2, 3}, Rect: Rect{W: math.Inf(1), H: 100}},
		{Values: []float64{1, math.NaN(), math.Inf(1), 3}, Rect: Rect{W: 100, H: 100}},
	}
	for _, tt := range tests {
		tiles := Squarify(tt.Values, tt.Rect)
		if len(tiles) != len(tt.Values) {
			t.Fatalf("want %d tiles, got %d", len(tt.Values), len(tiles))
		}
		for i, r := range tiles {
			if !isFinite(r.W) || !isFinite(r.H) || !isFinite(r.X) || !isFinite(r.Y) {
				t.Errorf("%v in %v: tile %d is not finite: %v", tt.Values, tt.Rect, i, r)
			}
		}
	}
}
