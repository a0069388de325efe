package charts

import (
	"strings"
	"sync"
)

type Companion struct {
	Title string
	Color string
	Value float64
}

// Tip is the payload shown for a datum: its own value and, for charts with
// several series, the values of the other series at the same position.
type Tip struct {
	Datum      Datum
	Serie      int
	Title      string
	Value      float64
	Share      float64
	Companions []Companion
}

type TooltipFunc func(Tip) string

// DefaultTooltip writes one line per value.
func DefaultTooltip(t Tip) string {
	var str strings.Builder
	str.WriteString(t.Datum.Title())
	if len(t.Companions) == 0 {
		str.WriteString(": ")
		str.WriteString(GroupNumber(t.Value))
	}
	if t.Share > 0 {
		str.WriteString(" (")
		str.WriteString(PercentNumber(t.Share))
		str.WriteString(")")
	}
	for _, c := range t.Companions {
		str.WriteString("\n")
		str.WriteString(c.Title)
		str.WriteString(": ")
		str.WriteString(GroupNumber(c.Value))
	}
	return str.String()
}

type Tooltip struct {
	Tip
	Key    string
	Markup string
	Pos    Pos
}

// Pointer holds the coordinates of the pointer on the surface and on the
// page the overlay is anchored to.
type Pointer struct {
	X     float64
	Y     float64
	PageX float64
	PageY float64
}

func NewPointer(x, y float64) Pointer {
	return Pointer{
		X:     x,
		Y:     y,
		PageX: x,
		PageY: y,
	}
}

// Overlay is the element tooltips are written into.
type Overlay interface {
	Show(markup string, at Pos)
	Hide()
}

// OverlayHost manages overlays outside of the chart surface, one per chart
// instance.
type OverlayHost interface {
	Mount(id string) Overlay
	Unmount(id string)
}

type OverlayElement struct {
	ID      string
	Markup  string
	Pos     Pos
	Visible bool
}

func (e *OverlayElement) Show(markup string, at Pos) {
	e.Markup = markup
	e.Pos = at
	e.Visible = true
}

func (e *OverlayElement) Hide() {
	e.Visible = false
}

// Overlays is an in memory OverlayHost.
type Overlays struct {
	mu    sync.Mutex
	items map[string]*OverlayElement
}

func NewOverlays() *Overlays {
	return &Overlays{
		items: make(map[string]*OverlayElement),
	}
}

func (o *Overlays) Mount(id string) Overlay {
	o.mu.Lock()
	defer o.mu.Unlock()
	el := &OverlayElement{ID: id}
	o.items[id] = el
	return el
}

func (o *Overlays) Unmount(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.items, id)
}

func (o *Overlays) Len() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.items)
}

func (o *Overlays) Get(id string) (*OverlayElement, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	el, ok := o.items[id]
	return el, ok
}

type nopOverlay struct{}

func (nopOverlay) Show(string, Pos) {}
func (nopOverlay) Hide()            {}

// DefaultOffset is where the tooltip goes relative to the pointer.
var DefaultOffset = NewPos(-160, 10)

// Resolver maps pointer positions to the datum under them and keeps the
// highlight and tooltip state of a chart.
type Resolver struct {
	Offset Pos
	Format TooltipFunc

	plot      Plot
	overlay   Overlay
	highlight string
	current   *Tooltip
}

func NewResolver(format TooltipFunc) *Resolver {
	if format == nil {
		format = DefaultTooltip
	}
	return &Resolver{
		Offset:  DefaultOffset,
		Format:  format,
		overlay: nopOverlay{},
	}
}

// Bind gives the resolver the plot of the last draw and the overlay tooltips
// go to. Previous state is dropped.
func (r *Resolver) Bind(p Plot, o Overlay) {
	if o == nil {
		o = nopOverlay{}
	}
	r.plot = p
	r.overlay = o
	r.highlight = ""
	r.current = nil
}

// Rebind replaces the primitives hit testing is done against, keeping the
// current state.
func (r *Resolver) Rebind(prims []Primitive) {
	r.plot.Primitives = prims
}

// Move resolves the datum under the pointer. When nothing is found, the
// state is cleared as on Out.
func (r *Resolver) Move(p Pointer) (Tooltip, bool) {
	tip, key, ok := r.find(NewPos(p.X, p.Y))
	if !ok {
		r.Out()
		return Tooltip{}, false
	}
	tt := Tooltip{
		Tip:    tip,
		Key:    key,
		Markup: r.Format(tip),
		Pos:    NewPos(p.PageX+r.Offset.X, p.PageY+r.Offset.Y),
	}
	r.highlight = key
	r.current = &tt
	r.overlay.Show(tt.Markup, tt.Pos)
	return tt, true
}

func (r *Resolver) Out() {
	r.highlight = ""
	r.current = nil
	r.overlay.Hide()
}

func (r *Resolver) Highlight() string {
	return r.highlight
}

func (r *Resolver) Current() (Tooltip, bool) {
	if r.current == nil {
		return Tooltip{}, false
	}
	return *r.current, true
}

func (r *Resolver) find(pt Pos) (Tip, string, bool) {
	for i := len(r.plot.Primitives) - 1; i >= 0; i-- {
		p := r.plot.Primitives[i]
		if !p.Hit || p.Tip == nil || !p.Contains(pt) {
			continue
		}
		return *p.Tip, p.Datum, true
	}
	if r.plot.Invert == nil || !r.plot.Area.Contains(pt) {
		return Tip{}, "", false
	}
	key, ok := r.plot.Invert(pt)
	if !ok {
		return Tip{}, "", false
	}
	tip, ok := r.plot.Tips[key]
	return tip, key, ok
}
