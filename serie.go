package charts

import (
	"math"
	"strconv"
	"strings"
	"time"
)

const DefaultValueKey = "value"

// Datum is one record of the input. Measures hold raw values as they were
// read (numbers or strings); use Number to read them.
type Datum struct {
	Key      string
	Label    string
	Measures map[string]any
}

func NewDatum(key string, value any) Datum {
	return Datum{
		Key:      key,
		Measures: map[string]any{DefaultValueKey: value},
	}
}

func (d Datum) Title() string {
	if d.Label != "" {
		return d.Label
	}
	return d.Key
}

func (d Datum) Value(key string) float64 {
	if key == "" {
		key = DefaultValueKey
	}
	return Number(d.Measures[key])
}

// Label describes how a serie is read and painted.
type Label struct {
	Color    string
	Title    string
	ValueKey string
}

func (b Label) key() string {
	if b.ValueKey == "" {
		return DefaultValueKey
	}
	return b.ValueKey
}

type Serie struct {
	Label
	Data []Datum
}

func (s Serie) Len() int {
	return len(s.Data)
}

func (s Serie) Value(i int) float64 {
	if i < 0 || i >= len(s.Data) {
		return 0
	}
	return s.Data[i].Value(s.key())
}

func (s Serie) Values() []float64 {
	vs := make([]float64, len(s.Data))
	for i := range s.Data {
		vs[i] = s.Value(i)
	}
	return vs
}

func (s Serie) Keys() []string {
	ks := make([]string, len(s.Data))
	for i := range s.Data {
		ks[i] = s.Data[i].Key
	}
	return ks
}

func (s Serie) Sum() float64 {
	var total float64
	for _, v := range s.Values() {
		total += v
	}
	return total
}

// Lookup returns the value recorded for the given key.
func (s Serie) Lookup(key string) (float64, bool) {
	for i := range s.Data {
		if s.Data[i].Key == key {
			return s.Value(i), true
		}
	}
	return 0, false
}

// SplitSeries builds one serie per label over the same rows, each label
// reading its own measure.
func SplitSeries(rows []Datum, labels []Label) []Serie {
	series := make([]Serie, 0, len(labels))
	for _, b := range labels {
		series = append(series, Serie{
			Label: b,
			Data:  rows,
		})
	}
	return series
}

// ParseNumber converts a raw measure to a number. Values that can not be read
// give NaN. An empty string counts as 0.
func ParseNumber(v any) float64 {
	switch v := v.(type) {
	case nil:
		return math.NaN()
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case int32:
		return float64(v)
	case uint:
		return float64(v)
	case uint64:
		return float64(v)
	case bool:
		if v {
			return 1
		}
		return 0
	case string:
		str := strings.TrimSpace(v)
		if str == "" {
			return 0
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	default:
		return math.NaN()
	}
}

// Number is ParseNumber with every non finite result coerced to 0.
func Number(v any) float64 {
	f := ParseNumber(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

var periodLayouts = []string{
	"2006-01-02",
	"2006-01",
	"2006/01/02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// PeriodValue gives the position of a period key on a continuous axis: the
// number itself or, for dates, the unix time in milliseconds.
func PeriodValue(key string) (float64, bool) {
	key = strings.TrimSpace(key)
	if f, err := strconv.ParseFloat(key, 64); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
		return f, true
	}
	for _, layout := range periodLayouts {
		if t, err := time.Parse(layout, key); err == nil {
			return float64(t.UnixMilli()), true
		}
	}
	return 0, false
}
