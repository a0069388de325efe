package charts

// Marker is the shape drawn on the points of a line.
type Marker int

const (
	MarkerSquare Marker = iota
	MarkerCircle
	MarkerDiamond
)

func (m Marker) String() string {
	switch m {
	case MarkerCircle:
		return "circle"
	case MarkerDiamond:
		return "diamond"
	default:
		return "square"
	}
}

// ParseMarker returns the marker named str, the square when unknown.
func ParseMarker(str string) Marker {
	switch str {
	case "circle":
		return MarkerCircle
	case "diamond":
		return MarkerDiamond
	default:
		return MarkerSquare
	}
}

// shape gives the geometry of the marker of the given size centered on at.
func (m Marker) shape(at Pos, size float64) Primitive {
	half := size / 2
	switch m {
	case MarkerCircle:
		return Primitive{
			Kind:   KindCircle,
			Pos:    at,
			Radius: half,
		}
	case MarkerDiamond:
		return Primitive{
			Kind: KindPolygon,
			Pos:  at,
			Points: []Pos{
				NewPos(at.X, at.Y-half),
				NewPos(at.X+half, at.Y),
				NewPos(at.X, at.Y+half),
				NewPos(at.X-half, at.Y),
			},
		}
	default:
		return Primitive{
			Kind: KindRect,
			Pos:  NewPos(at.X-half, at.Y-half),
			W:    size,
			H:    size,
		}
	}
}
