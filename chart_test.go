package charts

import (
	"errors"
	"strings"
	"testing"
)

func weekConfig() Config {
	return Config{
		Width:  600,
		Height: 400,
		Series: []Serie{serieOf("visits", weekdays, 120, 340, 90)},
	}
}

func TestChartHover(t *testing.T) {
	var (
		host  = NewOverlays()
		chart = New(BarChart{Tooltip: true}, NewSVGSurface(), WithOverlays(host))
	)
	if err := chart.Draw(weekConfig()); err != nil {
		t.Fatalf("draw: %s", err)
	}
	var target Primitive
	for _, p := range chart.Primitives() {
		if p.Hit && p.Datum == "Tuesday" {
			target = p
		}
	}
	if !target.Hit {
		t.Fatalf("no hit target for Tuesday")
	}
	at := target.Center()
	tt, ok := chart.PointerMove(NewPointer(at.X, at.Y))
	if !ok {
		t.Fatalf("pointer over Tuesday should give a tooltip")
	}
	if tt.Key != "Tuesday" || tt.Datum.Key != "Tuesday" || tt.Value != 340 {
		t.Fatalf("unexpected tooltip %+v", tt)
	}
	if !strings.Contains(tt.Markup, "Tuesday") {
		t.Fatalf("markup should name the datum: %q", tt.Markup)
	}
	if got := chart.Highlight(); got != "Tuesday" {
		t.Fatalf("highlight: want Tuesday, got %q", got)
	}
	el, ok := host.Get(chart.ID)
	if !ok || !el.Visible || el.Markup != tt.Markup {
		t.Fatalf("overlay should show the tooltip: %+v", el)
	}
	if want := NewPos(at.X+DefaultOffset.X, at.Y+DefaultOffset.Y); el.Pos != want {
		t.Fatalf("overlay should be offset from the pointer: %v", el.Pos)
	}

	chart.PointerOut()
	if got := chart.Highlight(); got != "" {
		t.Fatalf("highlight should be cleared, got %q", got)
	}
	if _, ok := chart.Tooltip(); ok {
		t.Fatalf("tooltip should be cleared")
	}
	if el.Visible {
		t.Fatalf("overlay should be hidden")
	}
}

func TestChartPointerOutside(t *testing.T) {
	chart := New(BarChart{Tooltip: true}, NewSVGSurface())
	chart.Draw(weekConfig())
	if _, ok := chart.PointerMove(NewPointer(-10, -10)); ok {
		t.Fatalf("pointer outside of the plot should give nothing")
	}
}

func TestChartWithoutTooltip(t *testing.T) {
	builders := []Builder{
		BarChart{},
		GroupedBarChart{},
		PyramidChart{},
		OverlapChart{},
		LineChart{},
		DualAxisChart{},
		BarLineChart{},
	}
	for _, b := range builders {
		var (
			host  = NewOverlays()
			chart = New(b, NewSVGSurface(), WithOverlays(host))
			cfg   = weekConfig()
		)
		cfg.Series = append(cfg.Series, serieOf("orders", weekdays, 10, 20, 30))
		if err := chart.Draw(cfg); err != nil {
			t.Fatalf("%T: draw: %s", b, err)
		}
		for x := 0.0; x <= cfg.Width; x += 20 {
			if tt, ok := chart.PointerMove(NewPointer(x, cfg.Height/2)); ok {
				t.Fatalf("%T: tooltip shown without being enabled: %+v", b, tt)
			}
		}
		if got := chart.Highlight(); got != "" {
			t.Errorf("%T: unexpected highlight %q", b, got)
		}
		if el, ok := host.Get(chart.ID); ok && el.Visible {
			t.Errorf("%T: overlay should stay hidden", b)
		}
		chart.Teardown()
	}
}

func TestChartOverlays(t *testing.T) {
	var (
		host  = NewOverlays()
		one   = New(BarChart{}, NewSVGSurface(), WithOverlays(host))
		other = New(DonutChart{}, NewSVGSurface(), WithOverlays(host))
	)
	if one.ID == other.ID {
		t.Fatalf("charts should have their own identifier")
	}
	for i := 0; i < 3; i++ {
		if err := one.Draw(weekConfig()); err != nil {
			t.Fatalf("draw: %s", err)
		}
		if host.Len() != 1 {
			t.Fatalf("redraw %d: want 1 overlay, got %d", i, host.Len())
		}
	}
	other.Draw(weekConfig())
	if host.Len() != 2 {
		t.Fatalf("want one overlay per chart, got %d", host.Len())
	}
	one.Teardown()
	other.Teardown()
	if host.Len() != 0 {
		t.Fatalf("teardown should remove overlays, %d left", host.Len())
	}
	if err := one.Draw(weekConfig()); !errors.Is(err, ErrDisposed) {
		t.Fatalf("draw after teardown: want ErrDisposed, got %v", err)
	}
	if len(one.Primitives()) != 0 {
		t.Fatalf("teardown should empty the surface")
	}
}

func TestChartRedraw(t *testing.T) {
	var (
		surface = NewSVGSurface()
		chart   = New(BarChart{}, surface)
	)
	if err := chart.Redraw(); err != nil {
		t.Fatalf("redraw before draw: %s", err)
	}
	chart.Draw(weekConfig())
	n := surface.Len()
	if n == 0 || n != len(chart.Primitives()) {
		t.Fatalf("surface and scene should hold the same primitives: %d", n)
	}
	chart.Redraw()
	if surface.Len() != n {
		t.Fatalf("redraw should not accumulate primitives: %d vs %d", surface.Len(), n)
	}
	if surface.Width != 600 || surface.Height != 400 {
		t.Fatalf("surface should be resized")
	}
}

func TestChartHoverOnly(t *testing.T) {
	var (
		surface = NewSVGSurface()
		chart   = New(LineChart{OverPoint: true, Tooltip: true}, surface)
	)
	chart.Draw(weekConfig())
	key := KeyOf("point", "Tuesday", 0)
	p, ok := surface.Lookup(key)
	if !ok || !p.Hidden {
		t.Fatalf("hover point should be hidden before hover")
	}
	chart.PointerMove(NewPointer(p.Center().X, p.Center().Y))
	if p, _ = surface.Lookup(key); p.Hidden {
		t.Fatalf("hover point should be shown on hover")
	}
	chart.PointerOut()
	if p, _ = surface.Lookup(key); !p.Hidden {
		t.Fatalf("hover point should be hidden again")
	}
}

func TestChartMotion(t *testing.T) {
	var (
		sched manual
		chart = New(WordCloudChart{}, NewSVGSurface(), WithScheduler(&sched))
		cfg   = Config{Width: 400, Height: 300, Series: []Serie{words(6)}}
	)
	if err := chart.Draw(cfg); err != nil {
		t.Fatalf("draw: %s", err)
	}
	before, _ := findPrimitive(chart.Primitives(), KeyOf("word", "keyword05", 0))
	if n := sched.Run(5); n != 5 {
		t.Fatalf("motion should run one frame at a time, got %d", n)
	}
	after, _ := findPrimitive(chart.Primitives(), KeyOf("word", "keyword05", 0))
	if before.Pos == after.Pos {
		t.Fatalf("words should move between frames")
	}
	chart.Teardown()
	if n := sched.Run(1000); n > 1 {
		t.Fatalf("no frame should run after teardown, got %d", n)
	}
	if sched.Pending() != 0 {
		t.Fatalf("no frame should be pending after teardown")
	}
}

func TestChartMotionWithoutScheduler(t *testing.T) {
	chart := New(WordCloudChart{}, NewSVGSurface())
	chart.Draw(Config{Width: 400, Height: 300, Series: []Serie{words(6)}})
	var circles int
	for _, p := range chart.Primitives() {
		if p.Kind == KindCircle {
			circles++
		}
	}
	if circles != 6 {
		t.Fatalf("want 6 circles, got %d", circles)
	}
}
