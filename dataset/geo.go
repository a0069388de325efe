package dataset

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	charts "github.com/midbel/statcharts"
)

type collection struct {
	Type     string    `json:"type"`
	Features []feature `json:"features"`
}

type feature struct {
	Properties map[string]any `json:"properties"`
	Geometry   geometry       `json:"geometry"`
}

type geometry struct {
	Type        string          `json:"type"`
	Coordinates json.RawMessage `json:"coordinates"`
}

// NameProperty is the property of a feature holding the name of a region.
var NameProperty = "name"

func LoadRegions(file string) ([]charts.Region, error) {
	r, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer r.Close()
	regions, err := ReadRegions(r)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return regions, nil
}

// ReadRegions decodes a GeoJSON feature collection. Only the outer ring of
// polygons is kept. Features with another geometry are skipped.
func ReadRegions(r io.Reader) ([]charts.Region, error) {
	var fc collection
	if err := json.NewDecoder(r).Decode(&fc); err != nil {
		return nil, err
	}
	if fc.Type != "FeatureCollection" {
		return nil, fmt.Errorf("%s: %w", fc.Type, ErrFormat)
	}
	var list []charts.Region
	for i, f := range fc.Features {
		name, _ := f.Properties[NameProperty].(string)
		if name == "" {
			name = fmt.Sprintf("region%d", i)
		}
		rings, err := f.Geometry.rings()
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
		if len(rings) == 0 {
			continue
		}
		list = append(list, charts.Region{
			Name:     name,
			Polygons: rings,
		})
	}
	return list, nil
}

func (g geometry) rings() ([][]charts.Pos, error) {
	switch g.Type {
	case "Polygon":
		var poly [][][]float64
		if err := json.Unmarshal(g.Coordinates, &poly); err != nil {
			return nil, err
		}
		if len(poly) == 0 {
			return nil, nil
		}
		return [][]charts.Pos{toRing(poly[0])}, nil
	case "MultiPolygon":
		var multi [][][][]float64
		if err := json.Unmarshal(g.Coordinates, &multi); err != nil {
			return nil, err
		}
		var list [][]charts.Pos
		for _, poly := range multi {
			if len(poly) == 0 {
				continue
			}
			list = append(list, toRing(poly[0]))
		}
		return list, nil
	default:
		return nil, nil
	}
}

func toRing(coords [][]float64) []charts.Pos {
	ring := make([]charts.Pos, 0, len(coords))
	for _, c := range coords {
		if len(c) < 2 {
			continue
		}
		ring = append(ring, charts.NewPos(c[0], c[1]))
	}
	return ring
}
