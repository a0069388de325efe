package charts

import (
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Formatter turns a value into the text of a label.
type Formatter func(float64) string

func (f Formatter) format(v float64) string {
	if f == nil {
		return CompactNumber(v)
	}
	return f(v)
}

var compactUnits = []string{"", "K", "M", "B", "T"}

// CompactNumber writes values the short way: 1.2K, 12K, 3.4M.
func CompactNumber(v float64) string {
	if !isFinite(v) {
		return "0"
	}
	var (
		sign string
		unit int
		abs  = math.Abs(v)
	)
	if v < 0 {
		sign = "-"
	}
	for abs >= 1000 && unit < len(compactUnits)-1 {
		abs /= 1000
		unit++
	}
	abs = roundCompact(abs)
	if abs >= 1000 && unit < len(compactUnits)-1 {
		abs = roundCompact(abs / 1000)
		unit++
	}
	if abs == 0 {
		sign = ""
	}
	return sign + strconv.FormatFloat(abs, 'f', -1, 64) + compactUnits[unit]
}

func roundCompact(v float64) float64 {
	if v < 10 {
		return math.Round(v*10) / 10
	}
	return math.Round(v)
}

// NumberFormat groups the digits of values following the conventions of the
// given language.
func NumberFormat(tag language.Tag) Formatter {
	p := message.NewPrinter(tag)
	return func(v float64) string {
		if !isFinite(v) {
			v = 0
		}
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return p.Sprintf("%d", int64(v))
		}
		str := p.Sprintf("%.2f", v)
		if strings.ContainsAny(str, ".") {
			str = strings.TrimRight(strings.TrimRight(str, "0"), ".")
		}
		return str
	}
}

var GroupNumber = NumberFormat(language.English)

func PercentNumber(v float64) string {
	if !isFinite(v) {
		v = 0
	}
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64) + "%"
}

var (
	Weekdays       = []string{"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}
	KoreanWeekdays = []string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}
)

// WeekdayFormat labels periods given as weekday numbers (0 is sunday).
func WeekdayFormat(names []string) Formatter {
	if len(names) == 0 {
		names = Weekdays
	}
	return func(v float64) string {
		i := int(math.Round(v)) % len(names)
		if i < 0 {
			i += len(names)
		}
		return names[i]
	}
}

// StrftimeFormat labels periods given in unix milliseconds. The pattern uses
// the % verbs: %Y %y %m %d %H %M %S %a %b %w and %%. A pattern made only
// of %w labels weekday numbers directly.
func StrftimeFormat(pattern string) Formatter {
	if pattern == "%w" {
		return WeekdayFormat(Weekdays)
	}
	return func(v float64) string {
		t := time.UnixMilli(int64(v)).UTC()
		return strftime(pattern, t)
	}
}

func strftime(pattern string, t time.Time) string {
	var (
		str strings.Builder
		pad = func(n int) string {
			if n < 10 {
				return "0" + strconv.Itoa(n)
			}
			return strconv.Itoa(n)
		}
	)
	for i := 0; i < len(pattern); i++ {
		if pattern[i] != '%' || i == len(pattern)-1 {
			str.WriteByte(pattern[i])
			continue
		}
		i++
		switch pattern[i] {
		case 'Y':
			str.WriteString(strconv.Itoa(t.Year()))
		case 'y':
			str.WriteString(pad(t.Year() % 100))
		case 'm':
			str.WriteString(pad(int(t.Month())))
		case 'd':
			str.WriteString(pad(t.Day()))
		case 'H':
			str.WriteString(pad(t.Hour()))
		case 'M':
			str.WriteString(pad(t.Minute()))
		case 'S':
			str.WriteString(pad(t.Second()))
		case 'a':
			str.WriteString(t.Weekday().String()[:3])
		case 'b':
			str.WriteString(t.Month().String()[:3])
		case 'w':
			str.WriteString(strconv.Itoa(int(t.Weekday())))
		case '%':
			str.WriteByte('%')
		default:
			str.WriteByte('%')
			str.WriteByte(pattern[i])
		}
	}
	return str.String()
}

// Truncate keeps the n first characters of str, marking the cut with an
// ellipsis.
func Truncate(str string, n int) string {
	rs := []rune(str)
	if n < 0 || len(rs) <= n {
		return str
	}
	return string(rs[:n]) + "..."
}
