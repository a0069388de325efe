package charts

import (
	"math"
	"testing"
	"time"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		In   any
		Want float64
		NaN  bool
	}{
		{In: 12, Want: 12},
		{In: int64(-3), Want: -3},
		{In: float32(1.5), Want: 1.5},
		{In: "42.5", Want: 42.5},
		{In: " 7 ", Want: 7},
		{In: "", Want: 0},
		{In: true, Want: 1},
		{In: "abc", NaN: true},
		{In: nil, NaN: true},
		{In: struct{}{}, NaN: true},
	}
	for _, tt := range tests {
		got := ParseNumber(tt.In)
		if tt.NaN {
			if !math.IsNaN(got) {
				t.Errorf("%v: expected NaN, got %f", tt.In, got)
			}
			continue
		}
		if got != tt.Want {
			t.Errorf("%v: want %f, got %f", tt.In, tt.Want, got)
		}
	}
}

func TestNumber(t *testing.T) {
	for _, v := range []any{"abc", nil, math.Inf(1), math.NaN()} {
		if got := Number(v); got != 0 {
			t.Errorf("%v: want 0, got %f", v, got)
		}
	}
}

func TestSerie(t *testing.T) {
	rows := []Datum{
		{Key: "mon", Measures: map[string]any{"visits": "10", "rate": 50}},
		{Key: "tue", Label: "Tuesday", Measures: map[string]any{"visits": 20, "rate": "40"}},
		{Key: "wed", Measures: map[string]any{"visits": 30}},
	}
	series := SplitSeries(rows, []Label{
		{Title: "visits", ValueKey: "visits"},
		{Title: "rate", ValueKey: "rate"},
	})
	if len(series) != 2 {
		t.Fatalf("want 2 series, got %d", len(series))
	}
	visits, rate := series[0], series[1]
	if visits.Sum() != 60 {
		t.Errorf("visits: want sum 60, got %f", visits.Sum())
	}
	if v := rate.Value(2); v != 0 {
		t.Errorf("rate: missing measure should be 0, got %f", v)
	}
	if v, ok := rate.Lookup("tue"); !ok || v != 40 {
		t.Errorf("rate: lookup tue gives %f (%t)", v, ok)
	}
	if _, ok := rate.Lookup("sun"); ok {
		t.Errorf("rate: lookup of unknown key should fail")
	}
	if title := rows[1].Title(); title != "Tuesday" {
		t.Errorf("title should be the label, got %s", title)
	}
	if v := rows[0].Measures["visits"]; v != "10" {
		t.Errorf("raw measures should be left untouched, got %v", v)
	}
}

func TestPeriodValue(t *testing.T) {
	v, ok := PeriodValue("2024-03-01")
	if !ok {
		t.Fatalf("date should be parsed")
	}
	want := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC).UnixMilli()
	if int64(v) != want {
		t.Fatalf("want %d, got %f", want, v)
	}
	if v, ok := PeriodValue("3"); !ok || v != 3 {
		t.Fatalf("number should be parsed as is, got %f (%t)", v, ok)
	}
	if _, ok := PeriodValue("monday"); ok {
		t.Fatalf("word should not be parsed")
	}
}
