package charts

import (
	"context"
	"math"
	"sync"
	"testing"
)

// manual runs the scheduled frames on demand.
type manual struct {
	mu    sync.Mutex
	queue []*frame
}

type frame struct {
	fn        func()
	cancelled bool
}

func (m *manual) Schedule(fn func()) func() {
	m.mu.Lock()
	defer m.mu.Unlock()
	f := &frame{fn: fn}
	m.queue = append(m.queue, f)
	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		f.cancelled = true
	}
}

func (m *manual) Pending() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, f := range m.queue {
		if !f.cancelled {
			n++
		}
	}
	return n
}

// Run executes at most n frames and returns how many were run.
func (m *manual) Run(n int) int {
	var count int
	for count < n {
		m.mu.Lock()
		if len(m.queue) == 0 {
			m.mu.Unlock()
			break
		}
		f := m.queue[0]
		m.queue = m.queue[1:]
		m.mu.Unlock()
		if f.cancelled {
			continue
		}
		f.fn()
		count++
	}
	return count
}

func overlapping(nodes []Node, tolerance float64) bool {
	for i := range nodes {
		for j := i + 1; j < len(nodes); j++ {
			a, b := nodes[i], nodes[j]
			if math.Hypot(a.X-b.X, a.Y-b.Y) < (a.R+b.R)*tolerance {
				return true
			}
		}
	}
	return false
}

func TestSimulationRun(t *testing.T) {
	nodes := []Node{
		{X: 100, Y: 100, R: 20},
		{X: 101, Y: 100, R: 15},
		{X: 100, Y: 101, R: 10},
		{X: 100, Y: 100, R: 10},
		{X: 99, Y: 99, R: 5},
	}
	sim := NewSimulation(nodes, NewPos(100, 100))
	if err := sim.Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if !sim.Settled() {
		t.Fatalf("simulation should be settled")
	}
	if sim.Iterations() > sim.MaxIterations {
		t.Fatalf("too many iterations: %d", sim.Iterations())
	}
	for i, n := range sim.Nodes {
		if !isFinite(n.X) || !isFinite(n.Y) {
			t.Fatalf("node %d: position not finite", i)
		}
	}
	if overlapping(sim.Nodes, 0.9) {
		t.Fatalf("nodes should be pushed apart: %+v", sim.Nodes)
	}
	if sim.Step() {
		t.Fatalf("settled simulation should not step")
	}
}

func TestSimulationCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	sim := NewSimulation([]Node{{X: 1, R: 5}, {X: 2, R: 5}}, Pos{})
	if err := sim.Run(ctx); err == nil {
		t.Fatalf("cancelled run should fail")
	}
	if sim.Iterations() != 1 {
		t.Fatalf("cancelled run should stop after the first step, got %d", sim.Iterations())
	}
}

func TestSimulationEmpty(t *testing.T) {
	sim := NewSimulation(nil, Pos{})
	if sim.Step() {
		t.Fatalf("empty simulation should settle at once")
	}
}

func TestAnimationStop(t *testing.T) {
	var (
		sched manual
		steps int
	)
	anim := Animate(&sched, func() bool {
		steps++
		return true
	})
	if n := sched.Run(3); n != 3 {
		t.Fatalf("want 3 frames, got %d", n)
	}
	anim.Stop()
	sched.Run(10)
	if steps != 3 {
		t.Fatalf("no step should run after stop, got %d", steps)
	}
	if sched.Pending() != 0 {
		t.Fatalf("no frame should be pending after stop")
	}
	if !anim.Done() || anim.Frames() != 3 {
		t.Fatalf("unexpected animation state: done %t, frames %d", anim.Done(), anim.Frames())
	}
}

func TestAnimationEnd(t *testing.T) {
	var (
		sched manual
		steps int
	)
	anim := Animate(&sched, func() bool {
		steps++
		return steps < 5
	})
	sched.Run(100)
	if steps != 5 {
		t.Fatalf("want 5 steps, got %d", steps)
	}
	if !anim.Done() {
		t.Fatalf("animation should be done")
	}
}
