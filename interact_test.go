package charts

import (
	"strings"
	"testing"
)

func TestResolverInvert(t *testing.T) {
	var (
		r    = NewResolver(nil)
		c    = BarChart{Tooltip: true}
		plot = build(c, 600, 400, serieOf("visits", weekdays, 1, 2, 3))
		band = plot.Scales.Band
	)
	r.Bind(plot, nil)
	x, _ := band.Center("Wednesday")
	tt, ok := r.Move(NewPointer(x, plot.Area.Y+1))
	if !ok || tt.Key != "Wednesday" {
		t.Fatalf("pointer over the band of Wednesday should resolve it, got %+v", tt)
	}
	if r.Highlight() != "Wednesday" {
		t.Fatalf("highlight should follow the pointer")
	}
	if _, ok := r.Move(NewPointer(x, plot.Area.Bottom()+20)); ok {
		t.Fatalf("pointer below the plot should resolve nothing")
	}
	if r.Highlight() != "" {
		t.Fatalf("highlight should be cleared when nothing is found")
	}
}

func TestResolverFormat(t *testing.T) {
	r := NewResolver(func(t Tip) string {
		return strings.ToUpper(t.Datum.Title())
	})
	plot := build(BarChart{Tooltip: true}, 600, 400, serieOf("visits", weekdays, 1, 2, 3))
	r.Bind(plot, nil)
	hit, _ := findPrimitive(plot.Primitives, KeyOf("bar-hit", "Monday", 0))
	at := hit.Center()
	tt, ok := r.Move(Pointer{X: at.X, Y: at.Y, PageX: 1000, PageY: 500})
	if !ok || tt.Markup != "MONDAY" {
		t.Fatalf("custom format should be used, got %q", tt.Markup)
	}
	if tt.Pos != NewPos(1000+DefaultOffset.X, 500+DefaultOffset.Y) {
		t.Fatalf("tooltip should be placed from the page position, got %v", tt.Pos)
	}
}

func TestDefaultTooltip(t *testing.T) {
	tip := Tip{
		Datum: NewDatum("Tuesday", 1234),
		Value: 1234,
		Share: 25,
	}
	if got := DefaultTooltip(tip); got != "Tuesday: 1,234 (25%)" {
		t.Fatalf("unexpected markup %q", got)
	}
	tip.Share = 0
	tip.Companions = []Companion{{Title: "men", Value: 10}, {Title: "women", Value: 12}}
	want := "Tuesday\nmen: 10\nwomen: 12"
	if got := DefaultTooltip(tip); got != want {
		t.Fatalf("want %q, got %q", want, got)
	}
}
