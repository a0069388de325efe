package charts

import (
	"errors"
	"sync"

	"github.com/google/uuid"
)

var ErrDisposed = errors.New("chart disposed")

// Config is the input of a draw.
type Config struct {
	Width   float64
	Height  float64
	Padding *Padding
	Series  []Serie
}

// Chart binds a builder to a surface. Every instance owns its scene, its
// hover state and its overlay so that several charts can live side by side.
type Chart struct {
	ID string

	builder  Builder
	scene    *Scene
	resolver *Resolver
	host     OverlayHost
	overlay  Overlay
	sched    Scheduler
	style    Style
	format   Formatter

	mu       sync.Mutex
	base     []Primitive
	anim     *Animation
	gen      int
	last     Config
	drawn    bool
	disposed bool
}

type Option func(*Chart)

func WithOverlays(host OverlayHost) Option {
	return func(c *Chart) {
		c.host = host
	}
}

// WithScheduler makes the charts in motion advance one step per frame of
// sched. Without one, the motion is run to the end on draw.
func WithScheduler(sched Scheduler) Option {
	return func(c *Chart) {
		c.sched = sched
	}
}

func WithTooltip(fn TooltipFunc) Option {
	return func(c *Chart) {
		c.resolver.Format = fn
	}
}

func WithStyle(st Style) Option {
	return func(c *Chart) {
		c.style = st
	}
}

func WithFormat(f Formatter) Option {
	return func(c *Chart) {
		c.format = f
	}
}

func New(b Builder, s Surface, options ...Option) *Chart {
	c := Chart{
		ID:       uuid.New().String(),
		builder:  b,
		scene:    NewScene(s),
		resolver: NewResolver(nil),
	}
	for _, o := range options {
		o(&c)
	}
	if c.resolver.Format == nil {
		c.resolver.Format = DefaultTooltip
	}
	return &c
}

// Draw replaces everything on the surface by the primitives built from cfg.
func (c *Chart) Draw(cfg Config) error {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return ErrDisposed
	}
	anim := c.anim
	c.anim = nil
	c.mu.Unlock()
	if anim != nil {
		anim.Stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed {
		return ErrDisposed
	}
	c.gen++
	c.remount()

	var (
		vp     = Viewport{Width: cfg.Width, Height: cfg.Height, Padding: cfg.Padding}
		layout = c.builder.Compose(vp)
		plot   = c.builder.Build(Frame{
			Layout: layout,
			Series: cfg.Series,
			Style:  c.style,
			Format: c.format,
		})
	)
	c.base = plot.Primitives
	c.last = cfg
	c.drawn = true
	c.scene.Rebuild(layout.Width, layout.Height, Highlighted(c.base, ""))
	c.resolver.Bind(plot, c.overlay)

	Logger().Debug("chart drawn", "id", c.ID, "primitives", len(c.base), "width", layout.Width, "height", layout.Height)

	if plot.Motion == nil {
		return nil
	}
	if c.sched == nil {
		for plot.Motion.Step() {
		}
		c.settle(plot.Motion)
		return nil
	}
	var (
		motion = plot.Motion
		gen    = c.gen
	)
	c.anim = Animate(c.sched, func() bool {
		return c.advance(gen, motion)
	})
	return nil
}

// Redraw draws again with the last configuration.
func (c *Chart) Redraw() error {
	c.mu.Lock()
	cfg, drawn := c.last, c.drawn
	c.mu.Unlock()
	if !drawn {
		return nil
	}
	return c.Draw(cfg)
}

// advance runs one step of the motion started by the draw of generation gen.
func (c *Chart) advance(gen int, m Motion) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen || c.disposed {
		return false
	}
	more := m.Step()
	c.settle(m)
	return more
}

func (c *Chart) settle(m Motion) {
	c.base = m.Primitives()
	c.resolver.Rebind(c.base)
	c.scene.Apply(Highlighted(c.base, c.resolver.Highlight()))
}

// PointerMove updates the highlight and the tooltip for a pointer over the
// surface.
func (c *Chart) PointerMove(p Pointer) (Tooltip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || !c.drawn {
		return Tooltip{}, false
	}
	prev := c.resolver.Highlight()
	tt, ok := c.resolver.Move(p)
	if key := c.resolver.Highlight(); key != prev {
		c.scene.Apply(Highlighted(c.base, key))
	}
	return tt, ok
}

// PointerOut clears the highlight and hides the tooltip.
func (c *Chart) PointerOut() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.disposed || !c.drawn {
		return
	}
	prev := c.resolver.Highlight()
	c.resolver.Out()
	if prev != "" {
		c.scene.Apply(Highlighted(c.base, ""))
	}
}

func (c *Chart) Highlight() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolver.Highlight()
}

func (c *Chart) Tooltip() (Tooltip, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.resolver.Current()
}

func (c *Chart) Primitives() []Primitive {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scene.Primitives()
}

// Teardown stops the motion, removes the overlay and empties the surface.
// The chart can not be drawn afterwards.
func (c *Chart) Teardown() {
	c.mu.Lock()
	if c.disposed {
		c.mu.Unlock()
		return
	}
	c.disposed = true
	anim := c.anim
	c.anim = nil
	c.mu.Unlock()
	if anim != nil {
		anim.Stop()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.resolver.Out()
	c.unmount()
	c.scene.Clear()
	c.base = nil
	Logger().Info("chart disposed", "id", c.ID)
}

func (c *Chart) remount() {
	c.unmount()
	if c.host != nil {
		c.overlay = c.host.Mount(c.ID)
	}
}

func (c *Chart) unmount() {
	if c.overlay == nil {
		return
	}
	c.overlay.Hide()
	if c.host != nil {
		c.host.Unmount(c.ID)
	}
	c.overlay = nil
}
