package charts

// Style carries the shared visual settings of a chart. Builders fall back on
// their own defaults for every zero field.
type Style struct {
	Line struct {
		Width   float64
		Opacity float64
	}
	Fill struct {
		Opacity float64
		List    Palette
	}
	Text struct {
		Size  float64
		Color string
	}
	Grid struct {
		Color string
		Dash  bool
	}
}

func (s Style) colors(def Palette) Palette {
	if len(s.Fill.List) > 0 {
		return s.Fill.List
	}
	return def
}

func (s Style) lineWidth(def float64) float64 {
	if s.Line.Width > 0 {
		return s.Line.Width
	}
	return def
}

func (s Style) lineOpacity() float64 {
	if s.Line.Opacity > 0 && s.Line.Opacity <= 1 {
		return s.Line.Opacity
	}
	return 0
}

func (s Style) fillOpacity(def float64) float64 {
	if s.Fill.Opacity > 0 && s.Fill.Opacity <= 1 {
		return s.Fill.Opacity
	}
	return def
}

func (s Style) textPaint(anchor, baseline string) Paint {
	p := Paint{
		Fill:     s.Text.Color,
		FontSize: s.Text.Size,
		Anchor:   anchor,
		Baseline: baseline,
	}
	if p.Fill == "" {
		p.Fill = ColorText
	}
	if p.FontSize <= 0 {
		p.FontSize = FontSize
	}
	return p
}

func (s Style) gridPaint() Paint {
	p := Paint{
		Stroke:      s.Grid.Color,
		StrokeWidth: 1,
		Dashed:      s.Grid.Dash,
	}
	if p.Stroke == "" {
		p.Stroke = ColorGrid
	}
	return p
}
