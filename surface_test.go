package charts

import (
	"bytes"
	"strings"
	"testing"
)

func TestSVGSurface(t *testing.T) {
	surface := NewSVGSurface()
	surface.Resize(200, 100)
	surface.Create(Primitive{Key: "a", Kind: KindText, Text: "visible", Pos: NewPos(10, 10)})
	surface.Create(Primitive{Key: "b", Kind: KindText, Text: "hidden", Pos: NewPos(10, 30), Paint: Paint{Hidden: true}})
	surface.Create(Primitive{Key: "c", Kind: KindRect, W: 10, H: 10})
	surface.Remove("c")
	surface.Update(Primitive{Key: "a", Kind: KindText, Text: "updated", Pos: NewPos(10, 10)})

	if surface.Len() != 2 {
		t.Fatalf("want 2 primitives, got %d", surface.Len())
	}
	var buf bytes.Buffer
	if err := surface.Render(&buf); err != nil {
		t.Fatalf("render: %s", err)
	}
	str := buf.String()
	if !strings.Contains(str, "<svg") {
		t.Fatalf("output is not a svg document: %s", str)
	}
	if !strings.Contains(str, "updated") || strings.Contains(str, "visible") {
		t.Fatalf("updated primitive should be rendered: %s", str)
	}
	if strings.Contains(str, ">hidden<") {
		t.Fatalf("hidden primitive should not be rendered: %s", str)
	}
}

func TestRenderChart(t *testing.T) {
	var (
		surface = NewSVGSurface()
		chart   = New(DonutChart{}, surface)
	)
	chart.Draw(Config{Width: 200, Height: 200, Series: []Serie{serieOf("votes", []string{"A", "B"}, 1, 3)}})
	var buf bytes.Buffer
	if err := surface.Render(&buf); err != nil {
		t.Fatalf("render: %s", err)
	}
	if buf.Len() == 0 {
		t.Fatalf("nothing rendered")
	}
}

func TestCornerRadius(t *testing.T) {
	tests := []struct {
		Arc  Arc
		Want float64
	}{
		{Arc: Arc{Inner: 60, Outer: 100, Start: 0, End: 1, Corner: 4}, Want: 4},
		{Arc: Arc{Inner: 60, Outer: 100, Start: 0, End: 1, Corner: 50}, Want: 20},
		{Arc: Arc{Inner: 60, Outer: 100, Start: 0, End: 0.05, Corner: 4}, Want: 0},
		{Arc: Arc{Inner: 0, Outer: 100, Start: 0, End: 1}, Want: 0},
	}
	for _, tt := range tests {
		if got := cornerRadius(tt.Arc); got != tt.Want {
			t.Errorf("%+v: want corner %f, got %f", tt.Arc, tt.Want, got)
		}
	}
	var (
		surface = NewSVGSurface()
		chart   = New(DonutChart{CornerRadius: 4}, surface)
		buf     bytes.Buffer
	)
	chart.Draw(Config{Width: 200, Height: 200, Series: []Serie{serieOf("votes", []string{"A", "B", "C"}, 1, 3, 2)}})
	if err := surface.Render(&buf); err != nil {
		t.Fatalf("render: %s", err)
	}
	if strings.Contains(buf.String(), "NaN") {
		t.Fatalf("rounded wedges rendered with NaN coordinates")
	}
}
