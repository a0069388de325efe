package charts

import (
	"math"
)

const (
	fullcircle = 2 * math.Pi
	halfcircle = math.Pi
)

type Pos struct {
	X float64
	Y float64
}

func NewPos(x, y float64) Pos {
	return Pos{
		X: x,
		Y: y,
	}
}

func (p Pos) Add(o Pos) Pos {
	return NewPos(p.X+o.X, p.Y+o.Y)
}

func (p Pos) finite() bool {
	return isFinite(p.X) && isFinite(p.Y)
}

// getPosFromAngle gives the position at radius from the center, angle being
// measured in radians from the x axis with y growing downward.
func getPosFromAngle(center Pos, angle, radius float64) Pos {
	return NewPos(center.X+radius*math.Cos(angle), center.Y+radius*math.Sin(angle))
}

// getPosFromClock is getPosFromAngle with angles measured clockwise from
// twelve o'clock.
func getPosFromClock(center Pos, angle, radius float64) Pos {
	return getPosFromAngle(center, angle-math.Pi/2, radius)
}

// clockAngle is the inverse of getPosFromClock, in [0, 2π).
func clockAngle(center, p Pos) float64 {
	a := math.Atan2(p.X-center.X, center.Y-p.Y)
	if a < 0 {
		a += fullcircle
	}
	return a
}

func distance(a, b Pos) float64 {
	return math.Hypot(b.X-a.X, b.Y-a.Y)
}

// insidePolygon tests p against the polygon using ray casting.
func insidePolygon(p Pos, points []Pos) bool {
	if len(points) < 3 {
		return false
	}
	var (
		inside bool
		j      = len(points) - 1
	)
	for i := range points {
		a, b := points[i], points[j]
		if (a.Y > p.Y) != (b.Y > p.Y) {
			x := (b.X-a.X)*(p.Y-a.Y)/(b.Y-a.Y) + a.X
			if p.X < x {
				inside = !inside
			}
		}
		j = i
	}
	return inside
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
