package charts

import (
	"math"

	"github.com/aclements/go-moremath/scale"
	"github.com/aclements/go-moremath/stats"
)

type Domain struct {
	Min float64
	Max float64
}

func NumberDomain(f, t float64) Domain {
	return Domain{
		Min: f,
		Max: t,
	}
}

func (d Domain) Extent() float64 {
	return d.Max - d.Min
}

// Percent gives the domain used by charts in percent mode.
func (d Domain) Percent() Domain {
	d.Max = 100
	return d
}

func (d Domain) degenerate() bool {
	return d.Min == d.Max || !isFinite(d.Min) || !isFinite(d.Max)
}

// ExtentOf scans every value of the given series at once.
func ExtentOf(series ...Serie) Domain {
	var all []float64
	for _, s := range series {
		all = append(all, s.Values()...)
	}
	if len(all) == 0 {
		return Domain{}
	}
	lo, hi := stats.Bounds(all)
	return NumberDomain(lo, hi)
}

// ZeroDomain is the domain of bar like charts: from zero to the largest value
// of all the series.
func ZeroDomain(series ...Serie) Domain {
	ext := ExtentOf(series...)
	return NumberDomain(0, math.Max(0, ext.Max))
}

type Range struct {
	F float64
	T float64
}

func NewRange(f, t float64) Range {
	return Range{
		F: f,
		T: t,
	}
}

func (r Range) Len() float64 {
	return r.T - r.F
}

func (r Range) Max() float64 {
	return math.Max(r.F, r.T)
}

func (r Range) Min() float64 {
	return math.Min(r.F, r.T)
}

func (r Range) contains(v float64) bool {
	return v >= r.Min() && v <= r.Max()
}

type LinearScaler struct {
	Domain Domain
	Range  Range
}

func NumberScaler(dom Domain, rg Range) LinearScaler {
	return LinearScaler{
		Domain: dom,
		Range:  rg,
	}
}

func (s LinearScaler) Scale(v float64) float64 {
	if s.Domain.degenerate() {
		return s.Range.F
	}
	ls := scale.Linear{
		Min: s.Domain.Min,
		Max: s.Domain.Max,
	}
	return s.Range.F + ls.Map(v)*s.Range.Len()
}

func (s LinearScaler) Invert(px float64) float64 {
	if s.Range.Len() == 0 {
		return s.Domain.Min
	}
	t := (px - s.Range.F) / s.Range.Len()
	return s.Domain.Min + t*s.Domain.Extent()
}

// Rescale applies a zoom transform of factor k and translation tx to the
// domain. The range is left untouched.
func (s LinearScaler) Rescale(k, tx float64) LinearScaler {
	if k <= 0 {
		k = 1
	}
	x := s
	x.Domain = NumberDomain(s.Invert((s.Range.F-tx)/k), s.Invert((s.Range.T-tx)/k))
	return x
}

func (s LinearScaler) Ticks(count int) []float64 {
	return GenerateTicks(s.Domain, count)
}

type BandScaler struct {
	Range
	Strings []string

	index map[string]int
}

func StringScaler(str []string, rg Range) BandScaler {
	s := BandScaler{
		Range:   rg,
		Strings: str,
		index:   make(map[string]int),
	}
	for i, v := range str {
		if _, ok := s.index[v]; !ok {
			s.index[v] = i
		}
	}
	return s
}

// Scale gives the start of the band of v. Unknown categories are reported and
// never mapped.
func (s BandScaler) Scale(v string) (float64, bool) {
	i, ok := s.index[v]
	if !ok {
		return 0, false
	}
	return s.F + float64(i)*s.Space(), true
}

func (s BandScaler) Center(v string) (float64, bool) {
	x, ok := s.Scale(v)
	return x + s.Space()/2, ok
}

func (s BandScaler) Space() float64 {
	if len(s.Strings) == 0 {
		return 0
	}
	return s.Len() / float64(len(s.Strings))
}

func (s BandScaler) Invert(px float64) (string, bool) {
	space := s.Space()
	if space == 0 || !s.contains(px) {
		return "", false
	}
	i := int(math.Floor((px - s.F) / space))
	if i == len(s.Strings) {
		i--
	}
	if i < 0 || i >= len(s.Strings) {
		return "", false
	}
	return s.Strings[i], true
}

type RadialScaler struct {
	LinearScaler
	Center Pos
}

func RadiusScaler(dom Domain, radius float64, center Pos) RadialScaler {
	return RadialScaler{
		LinearScaler: NumberScaler(dom, NewRange(0, radius)),
		Center:       center,
	}
}

// Point gives the position of value v on the spoke at angle.
func (s RadialScaler) Point(v, angle float64) Pos {
	return getPosFromAngle(s.Center, angle, s.Scale(v))
}

// GenerateTicks returns ticks starting at the domain minimum, spaced by
// span/(count-1) rounded up to a tenth of its decade, the last one being on
// the domain maximum or just past it.
func GenerateTicks(dom Domain, count int) []float64 {
	lo, hi := dom.Min, dom.Max
	if !isFinite(lo) || !isFinite(hi) {
		if isFinite(lo) {
			return []float64{lo}
		}
		return []float64{0}
	}
	if lo == hi {
		return []float64{lo}
	}
	if lo > hi {
		lo, hi = hi, lo
	}
	if count < 2 {
		count = 2
	}
	var (
		step  = snapStep((hi - lo) / float64(count-1))
		unit  = tickUnit(step)
		ticks = make([]float64, 0, count+1)
		eps   = step * 1e-9
	)
	ticks = append(ticks, lo)
	for i := 1; i < count+1; i++ {
		v := roundTo(lo+float64(i)*step, unit)
		if math.Abs(v-hi) <= eps {
			v = hi
		}
		if v <= ticks[len(ticks)-1] {
			continue
		}
		ticks = append(ticks, v)
		if v >= hi {
			break
		}
	}
	if last := ticks[len(ticks)-1]; last < hi {
		ticks = append(ticks, hi)
	}
	return ticks
}

// NiceTicks gives at most max ticks on round values inside the domain.
func NiceTicks(dom Domain, max int) []float64 {
	if dom.degenerate() {
		return GenerateTicks(dom, max)
	}
	lo, hi := dom.Min, dom.Max
	if lo > hi {
		lo, hi = hi, lo
	}
	ls := scale.Linear{
		Min: lo,
		Max: hi,
	}
	major, _ := ls.Ticks(scale.TickOptions{Max: max})
	return major
}

func snapStep(raw float64) float64 {
	if raw <= 0 || !isFinite(raw) {
		return 1
	}
	var (
		mag  = math.Pow(10, math.Floor(math.Log10(raw)))
		gran = mag / 10
	)
	return math.Ceil(raw/gran-1e-9) * gran
}

// tickUnit is the precision ticks are rounded to: nine decades below the
// step, so that rounding never moves a tick by a visible amount.
func tickUnit(step float64) float64 {
	return math.Pow(10, math.Floor(math.Log10(step))-9)
}

func roundTo(f, unit float64) float64 {
	if unit <= 0 || !isFinite(unit) {
		return f
	}
	n := f / unit
	if math.Abs(n) >= 1<<52 {
		return f
	}
	return math.Round(n) * unit
}
