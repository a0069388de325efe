package charts

import (
	"context"
	"math"
	"sync"
	"time"
)

type Node struct {
	X  float64
	Y  float64
	VX float64
	VY float64
	R  float64
}

// Simulation relaxes nodes under three forces: a pull of their barycenter
// toward the center, a many body force between every pair (repulsive for a
// negative strength) and collision avoidance using the radius of each node.
// It stops when alpha cools below its minimum, when the motion of the nodes
// dies out or after MaxIterations steps.
type Simulation struct {
	Nodes  []Node
	Center Pos

	Strength        float64
	CenterStrength  float64
	CollideStrength float64

	Alpha         float64
	AlphaMin      float64
	AlphaDecay    float64
	VelocityDecay float64
	MaxIterations int
	Energy        float64

	iter int
	done bool
}

const (
	DefaultIterations = 300
	defaultAlphaMin   = 0.001
)

func NewSimulation(nodes []Node, center Pos) *Simulation {
	return &Simulation{
		Nodes:           nodes,
		Center:          center,
		Strength:        -1,
		CenterStrength:  1,
		CollideStrength: 1,
		Alpha:           1,
		AlphaMin:        defaultAlphaMin,
		AlphaDecay:      1 - math.Pow(defaultAlphaMin, 1.0/DefaultIterations),
		VelocityDecay:   0.4,
		MaxIterations:   DefaultIterations,
		Energy:          1e-6,
	}
}

func (s *Simulation) Iterations() int {
	return s.iter
}

func (s *Simulation) Settled() bool {
	return s.done
}

// Step advances the simulation by one tick. It returns false once the
// simulation is settled.
func (s *Simulation) Step() bool {
	if s.done {
		return false
	}
	if len(s.Nodes) == 0 {
		s.done = true
		return false
	}
	s.Alpha += -s.Alpha * s.AlphaDecay
	s.charge()
	s.collide()
	s.center()

	var energy float64
	for i := range s.Nodes {
		n := &s.Nodes[i]
		n.VX *= 1 - s.VelocityDecay
		n.VY *= 1 - s.VelocityDecay
		n.X += n.VX
		n.Y += n.VY
		energy += n.VX*n.VX + n.VY*n.VY
	}
	energy /= float64(len(s.Nodes))
	s.iter++

	if s.Alpha < s.AlphaMin || s.iter >= s.MaxIterations || energy < s.Energy {
		s.done = true
		Logger().Debug("simulation settled", "iterations", s.iter, "alpha", s.Alpha, "energy", energy)
	}
	return !s.done
}

// Run steps the simulation until it settles or ctx is done.
func (s *Simulation) Run(ctx context.Context) error {
	for s.Step() {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Simulation) charge() {
	if s.Strength == 0 {
		return
	}
	for i := range s.Nodes {
		for j := i + 1; j < len(s.Nodes); j++ {
			var (
				a, b   = &s.Nodes[i], &s.Nodes[j]
				dx, dy = b.X - a.X, b.Y - a.Y
				l2     = dx*dx + dy*dy
			)
			if l2 == 0 {
				dx, dy = jiggle(i, j)
				l2 = dx*dx + dy*dy
			}
			if l2 < 1 {
				l2 = math.Sqrt(l2)
			}
			w := s.Strength * s.Alpha / l2
			a.VX += dx * w
			a.VY += dy * w
			b.VX -= dx * w
			b.VY -= dy * w
		}
	}
}

func (s *Simulation) collide() {
	for i := range s.Nodes {
		for j := i + 1; j < len(s.Nodes); j++ {
			var (
				a, b   = &s.Nodes[i], &s.Nodes[j]
				r      = a.R + b.R
				dx     = (a.X + a.VX) - (b.X + b.VX)
				dy     = (a.Y + a.VY) - (b.Y + b.VY)
				l2     = dx*dx + dy*dy
				ra, rb = a.R * a.R, b.R * b.R
			)
			if l2 >= r*r {
				continue
			}
			if l2 == 0 {
				dx, dy = jiggle(i, j)
				l2 = dx*dx + dy*dy
			}
			l := math.Sqrt(l2)
			push := (r - l) / l * s.CollideStrength
			dx, dy = dx*push, dy*push
			part := 0.5
			if ra+rb > 0 {
				part = rb / (ra + rb)
			}
			a.VX += dx * part
			a.VY += dy * part
			b.VX -= dx * (1 - part)
			b.VY -= dy * (1 - part)
		}
	}
}

func (s *Simulation) center() {
	var sx, sy float64
	for _, n := range s.Nodes {
		sx += n.X
		sy += n.Y
	}
	sx = (sx/float64(len(s.Nodes)) - s.Center.X) * s.CenterStrength
	sy = (sy/float64(len(s.Nodes)) - s.Center.Y) * s.CenterStrength
	for i := range s.Nodes {
		s.Nodes[i].X -= sx
		s.Nodes[i].Y -= sy
	}
}

// jiggle separates coincident nodes along a direction depending only on their
// indices so that runs are reproducible.
func jiggle(i, j int) (float64, float64) {
	angle := float64(i*31+j*17) * 0.618033988749895 * fullcircle
	return 1e-6 * math.Cos(angle), 1e-6 * math.Sin(angle)
}

// Scheduler runs a function at the next frame. The returned function cancels
// it if it has not run yet.
type Scheduler interface {
	Schedule(func()) (cancel func())
}

// FrameTicker schedules the frames with a timer.
type FrameTicker struct {
	Interval time.Duration
}

func (t FrameTicker) Schedule(fn func()) func() {
	iv := t.Interval
	if iv <= 0 {
		iv = time.Second / 60
	}
	timer := time.AfterFunc(iv, fn)
	return func() {
		timer.Stop()
	}
}

// Animation calls its step function once per frame until it returns false or
// the animation is stopped.
type Animation struct {
	mu      sync.Mutex
	sched   Scheduler
	step    func() bool
	cancel  func()
	stopped bool
	frames  int
}

func Animate(sched Scheduler, step func() bool) *Animation {
	a := &Animation{
		sched: sched,
		step:  step,
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.cancel = sched.Schedule(a.frame)
	return a
}

func (a *Animation) frame() {
	a.mu.Lock()
	if a.stopped {
		a.mu.Unlock()
		return
	}
	a.cancel = nil
	a.mu.Unlock()

	more := a.step()

	a.mu.Lock()
	defer a.mu.Unlock()
	a.frames++
	if a.stopped {
		return
	}
	if !more {
		a.stopped = true
		return
	}
	a.cancel = a.sched.Schedule(a.frame)
}

// Stop cancels the pending frame. No frame runs its step after Stop returns,
// except one that had already started.
func (a *Animation) Stop() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stopped {
		return
	}
	a.stopped = true
	if a.cancel != nil {
		a.cancel()
		a.cancel = nil
	}
}

func (a *Animation) Done() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.stopped
}

func (a *Animation) Frames() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.frames
}
