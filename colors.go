package charts

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/aclements/go-gg/palette"
)

type Palette []string

// At cycles through the palette. An empty palette falls back on Category10.
func (p Palette) At(i int) string {
	if len(p) == 0 {
		return Category10.At(i)
	}
	if i < 0 {
		i = -i
	}
	return p[i%len(p)]
}

// Rank returns the color at i, or def when the palette is exhausted.
func (p Palette) Rank(i int, def string) string {
	if i < 0 || i >= len(p) {
		return def
	}
	return p[i]
}

var (
	Category10 Palette
	Tableau10  Palette

	BarColors = Palette{"#006FFF", "#000A29", "#7E8696", "#7CB4FC", "#8F9CC4", "#CC9966", "#27C28A"}
	// WordColors are given to words by rank.
	WordColors = Palette{"#006FFF", "#000A29", "#7CB4FC", "#CC9966", "#27C28A", "#E65C5C", "#8F9CC4", "#FFAB00", "#7E8696"}
	BlueShades = Palette{"rgba(0, 111, 255, 1)", "rgba(0, 111, 255, 0.6)", "rgba(0, 111, 255, 0.4)", "rgba(0, 111, 255, 0.2)", "rgba(0, 111, 255, 0.1)"}
	MapColors  = Palette{"#006FFF", "#7CB4FC", "#a4c6ff", "#d2e3ff", "#e9f0ff"}
)

const (
	ColorGrid  = "#E1E4EB"
	ColorText  = "#7E8696"
	ColorLabel = "#626871"
	ColorWhite = "#FFFFFF"
)

func init() {
	Category10 = splitColorString("1f77b4ff7f0e2ca02cd627289467bd8c564be377c27f7f7fbcbd2217becf")
	Tableau10 = splitColorString("4e79a7f28e2ce1575976b7b259a14fedc949af7aa1ff9da79c755fbab0ab")
}

// PaletteByName gives one of the predefined palettes: bar, word, map,
// category10 or tableau10.
func PaletteByName(name string) (Palette, bool) {
	switch strings.ToLower(name) {
	case "", "bar":
		return BarColors, true
	case "word":
		return WordColors, true
	case "map":
		return MapColors, true
	case "category10":
		return Category10, true
	case "tableau10":
		return Tableau10, true
	default:
		return nil, false
	}
}

func splitColorString(str string) []string {
	var arr []string
	for i := 0; i+6 <= len(str); i += 6 {
		arr = append(arr, "#"+str[i:i+6])
	}
	return arr
}

// Gradient builds a continuous palette going through the given colors.
// Colors that can not be parsed are skipped.
func Gradient(colors Palette) palette.RGBGradient {
	var g palette.RGBGradient
	for _, c := range colors {
		if rgba, ok := parseHex(c); ok {
			g.Colors = append(g.Colors, rgba)
		}
	}
	if len(g.Colors) == 0 {
		g.Colors = append(g.Colors, color.RGBA{A: 0xff})
	}
	return g
}

func parseHex(str string) (color.RGBA, bool) {
	str = strings.TrimPrefix(strings.TrimSpace(str), "#")
	if len(str) == 3 {
		str = string([]byte{str[0], str[0], str[1], str[1], str[2], str[2]})
	}
	if len(str) != 6 {
		return color.RGBA{}, false
	}
	n, err := strconv.ParseUint(str, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{
		R: uint8(n >> 16),
		G: uint8(n >> 8),
		B: uint8(n),
		A: 0xff,
	}, true
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
