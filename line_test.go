package charts

import (
	"math"
	"strings"
	"testing"
)

func TestDualAxisChart(t *testing.T) {
	var (
		periods = []string{"2024-01-01", "2024-01-02", "2024-01-03"}
		left    = serieOf("orders", periods, 10, 20, 30)
		right   = serieOf("visits", periods, 50, 40, 60)
		plot    = build(DualAxisChart{Point: true}, 600, 400, left, right)
	)
	checkPrimitives(t, plot.Primitives)
	if max := plot.Scales.Y.Domain.Max; max != 30 {
		t.Errorf("left axis: want max 30, got %f", max)
	}
	if max := plot.Scales.Y2.Domain.Max; max != 60 {
		t.Errorf("right axis: want max 60, got %f", max)
	}
	l, ok := findPrimitive(plot.Primitives, KeyOf("line", "", 0))
	if !ok {
		t.Fatalf("left line not found")
	}
	r, ok := findPrimitive(plot.Primitives, KeyOf("line", "", 1))
	if !ok {
		t.Fatalf("right line not found")
	}
	if len(l.Points) != 3 || len(r.Points) != 3 {
		t.Fatalf("lines should have 3 points: %d, %d", len(l.Points), len(r.Points))
	}
	for i := range l.Points {
		if math.Abs(l.Points[i].X-r.Points[i].X) > 1e-9 {
			t.Errorf("period %d: x positions differ %f and %f", i, l.Points[i].X, r.Points[i].X)
		}
	}
	// both series end on the top of their own axis
	if math.Abs(l.Points[2].Y-r.Points[2].Y) > 1e-9 {
		t.Errorf("last points should both be on top: %f and %f", l.Points[2].Y, r.Points[2].Y)
	}
	var ticks int
	for _, p := range plot.Primitives {
		if p.Kind == KindText && strings.HasPrefix(string(p.Key), "x-tick/") {
			ticks++
		}
	}
	if ticks != 3 {
		t.Errorf("want 3 period labels, got %d", ticks)
	}
}

func TestLineChartIndexPeriods(t *testing.T) {
	var (
		s    = serieOf("visits", weekdays, 3, 1, 2)
		plot = build(LineChart{Tooltip: true}, 500, 300, s)
	)
	line, ok := findPrimitive(plot.Primitives, KeyOf("line", "", 0))
	if !ok || len(line.Points) != 3 {
		t.Fatalf("line with 3 points expected")
	}
	if line.Points[0].X >= line.Points[1].X || line.Points[1].X >= line.Points[2].X {
		t.Fatalf("periods should be placed in order: %v", line.Points)
	}
	key, ok := plot.Invert(NewPos(line.Points[1].X+1, line.Points[1].Y))
	if !ok || key != "Tuesday" {
		t.Fatalf("nearest period should be Tuesday, got %s", key)
	}
}

func TestLineChartHoverPoints(t *testing.T) {
	var (
		s    = serieOf("visits", weekdays, 3, 1, 2)
		plot = build(LineChart{OverPoint: true, Marker: MarkerDiamond}, 500, 300, s)
	)
	point, ok := findPrimitive(plot.Primitives, KeyOf("point", "Tuesday", 0))
	if !ok {
		t.Fatalf("point of Tuesday not found")
	}
	if !point.HoverOnly || !point.Hidden {
		t.Fatalf("hover point should start hidden")
	}
	if point.Kind != KindPolygon || len(point.Points) != 4 {
		t.Fatalf("diamond marker expected, got %s", point.Kind)
	}
	shown := Highlighted(plot.Primitives, "Tuesday")
	for _, p := range shown {
		if p.Key == point.Key && p.Hidden {
			t.Fatalf("point of Tuesday should be visible when highlighted")
		}
	}
}

func TestLineChartZoom(t *testing.T) {
	var (
		s    = serieOf("visits", []string{"1", "2", "3", "4", "5"}, 1, 2, 3, 4, 5)
		full = build(LineChart{}, 500, 300, s)
		zoom = build(LineChart{Zoom: Zoom{K: 2}}, 500, 300, s)
	)
	if zoom.Scales.X.Domain.Extent() >= full.Scales.X.Domain.Extent() {
		t.Fatalf("zoom should narrow the domain")
	}
	if zoom.Scales.X.Range != full.Scales.X.Range {
		t.Fatalf("zoom should keep the range")
	}
}

func TestLineChartZoomClip(t *testing.T) {
	var (
		periods = []string{"1", "2", "3", "4", "5", "6", "7", "8"}
		s       = serieOf("visits", periods, 4, 8, 2, 6, 9, 3, 5, 7)
		plot    = build(LineChart{Zoom: Zoom{K: 4, TX: -600}, Area: true, Point: true}, 500, 300, s)
		area    = plot.Area
	)
	checkPrimitives(t, plot.Primitives)
	line, ok := findPrimitive(plot.Primitives, KeyOf("line", "", 0))
	if !ok {
		t.Fatalf("line not found")
	}
	fill, ok := findPrimitive(plot.Primitives, KeyOf("area", "", 0))
	if !ok {
		t.Fatalf("area not found")
	}
	for _, p := range [][]Pos{line.Points, fill.Points} {
		for _, pt := range p {
			if pt.X < area.X-1e-9 || pt.X > area.Right()+1e-9 {
				t.Fatalf("point %v outside of the plot [%f, %f]", pt, area.X, area.Right())
			}
		}
	}
	fst, lst := line.Points[0], line.Points[len(line.Points)-1]
	if math.Abs(fst.X-area.X) > 1e-9 || math.Abs(lst.X-area.Right()) > 1e-9 {
		t.Fatalf("line should be cut on the edges of the plot: %v, %v", fst, lst)
	}
	for _, p := range plot.Primitives {
		if p.Layer == "point" && !withinX(area, p.Center().X) {
			t.Errorf("marker %s outside of the plot", p.Key)
		}
	}
}

func TestZoomWithin(t *testing.T) {
	var (
		s     = serieOf("visits", []string{"1", "2", "3", "4", "5"}, 1, 2, 3, 4, 5)
		full  = build(LineChart{}, 500, 300, s)
		tests = []struct {
			Zoom Zoom
			Min  float64
			Max  float64
		}{
			{Zoom: Zoom{K: 2, TX: 5000}, Min: full.Scales.X.Domain.Min},
			{Zoom: Zoom{K: 2, TX: -5000}, Max: full.Scales.X.Domain.Max},
			{Zoom: Zoom{K: 1, TX: 100}, Min: full.Scales.X.Domain.Min, Max: full.Scales.X.Domain.Max},
		}
	)
	for _, tt := range tests {
		dom := build(LineChart{Zoom: tt.Zoom}, 500, 300, s).Scales.X.Domain
		if tt.Min != 0 && math.Abs(dom.Min-tt.Min) > 1e-9 {
			t.Errorf("%+v: domain should start at %f, got %f", tt.Zoom, tt.Min, dom.Min)
		}
		if tt.Max != 0 && math.Abs(dom.Max-tt.Max) > 1e-9 {
			t.Errorf("%+v: domain should end at %f, got %f", tt.Zoom, tt.Max, dom.Max)
		}
	}
}

func TestClipX(t *testing.T) {
	points := []Pos{NewPos(-10, 0), NewPos(10, 10), NewPos(30, 0), NewPos(50, 10)}
	got := clipX(points, 0, 40)
	want := []Pos{NewPos(0, 5), NewPos(10, 10), NewPos(30, 0), NewPos(40, 5)}
	if len(got) != len(want) {
		t.Fatalf("want %v, got %v", want, got)
	}
	for i := range want {
		if math.Abs(got[i].X-want[i].X) > 1e-9 || math.Abs(got[i].Y-want[i].Y) > 1e-9 {
			t.Fatalf("point %d: want %v, got %v", i, want[i], got[i])
		}
	}
	if got := clipX([]Pos{NewPos(-20, 0), NewPos(60, 8)}, 0, 40); len(got) != 2 || got[0].X != 0 || got[1].X != 40 {
		t.Fatalf("segment over the whole range should be cut twice: %v", got)
	}
}

func TestLineChartStyleOpacity(t *testing.T) {
	var (
		c     = LineChart{Area: true}
		s     = serieOf("visits", weekdays, 3, 1, 2)
		frame = Frame{Layout: c.Compose(Viewport{Width: 500, Height: 300}), Series: []Serie{s}}
	)
	frame.Style.Line.Opacity = 0.5
	frame.Style.Fill.Opacity = 0.3
	plot := c.Build(frame)
	line, ok := findPrimitive(plot.Primitives, KeyOf("line", "", 0))
	if !ok || line.StrokeOpacity != 0.5 {
		t.Errorf("line should use the stroke opacity of the style: %+v", line.Paint)
	}
	area, ok := findPrimitive(plot.Primitives, KeyOf("area", "", 0))
	if !ok || area.FillOpacity != 0.3 {
		t.Errorf("area should use the fill opacity of the style: %+v", area.Paint)
	}
	plot = build(c, 500, 300, s)
	if area, _ := findPrimitive(plot.Primitives, KeyOf("area", "", 0)); area.FillOpacity != 0.1 {
		t.Errorf("area should default to 0.1 opacity, got %f", area.FillOpacity)
	}
}
