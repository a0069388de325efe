package charts

import (
	"reflect"
)

// Surface is the retained drawing target primitives are reconciled against.
type Surface interface {
	Resize(width, height float64)
	Clear()
	Create(Primitive)
	Update(Primitive)
	Remove(Key)
}

type Diff struct {
	Enter  []Primitive
	Update []Primitive
	Exit   []Key
}

func (d Diff) Empty() bool {
	return len(d.Enter) == 0 && len(d.Update) == 0 && len(d.Exit) == 0
}

// Reconcile computes the primitives to create, update and remove to go from
// prev to next. Enter and Update follow the order of next, Exit the order of
// prev. When next holds the same key twice, the last one wins.
func Reconcile(prev, next []Primitive) Diff {
	return reconcile(unique(prev), unique(next))
}

func reconcile(prev, next []Primitive) Diff {
	var (
		diff Diff
		old  = make(map[Key]struct{}, len(prev))
		now  = make(map[Key]struct{}, len(next))
	)
	for _, p := range prev {
		old[p.Key] = struct{}{}
	}
	for _, p := range next {
		now[p.Key] = struct{}{}
		if _, ok := old[p.Key]; ok {
			diff.Update = append(diff.Update, p)
		} else {
			diff.Enter = append(diff.Enter, p)
		}
	}
	for _, p := range prev {
		if _, ok := now[p.Key]; !ok {
			diff.Exit = append(diff.Exit, p.Key)
		}
	}
	return diff
}

func unique(list []Primitive) []Primitive {
	var (
		out  = make([]Primitive, 0, len(list))
		seen = make(map[Key]int, len(list))
	)
	for _, p := range list {
		if i, ok := seen[p.Key]; ok {
			Logger().Warn("duplicate primitive key", "key", p.Key)
			out[i] = p
			continue
		}
		seen[p.Key] = len(out)
		out = append(out, p)
	}
	return out
}

// Scene keeps the primitives currently drawn on a surface.
type Scene struct {
	surface Surface
	current []Primitive
	index   map[Key]int
}

func NewScene(s Surface) *Scene {
	return &Scene{
		surface: s,
		index:   make(map[Key]int),
	}
}

// Apply reconciles next against the current primitives. Only primitives whose
// attributes changed are updated on the surface.
func (s *Scene) Apply(next []Primitive) Diff {
	next = unique(next)
	diff := reconcile(s.current, next)
	for _, k := range diff.Exit {
		s.surface.Remove(k)
	}
	for _, p := range diff.Update {
		if old := s.current[s.index[p.Key]]; reflect.DeepEqual(old, p) {
			continue
		}
		s.surface.Update(p)
	}
	for _, p := range diff.Enter {
		s.surface.Create(p)
	}
	s.reset(next)
	return diff
}

// Rebuild clears the surface and draws next from scratch.
func (s *Scene) Rebuild(width, height float64, next []Primitive) Diff {
	next = unique(next)
	s.surface.Clear()
	s.surface.Resize(width, height)
	for _, p := range next {
		s.surface.Create(p)
	}
	s.reset(next)
	return Diff{Enter: next}
}

func (s *Scene) Clear() {
	s.surface.Clear()
	s.reset(nil)
}

func (s *Scene) Primitives() []Primitive {
	return s.current
}

func (s *Scene) Len() int {
	return len(s.current)
}

func (s *Scene) Lookup(k Key) (Primitive, bool) {
	i, ok := s.index[k]
	if !ok {
		return Primitive{}, false
	}
	return s.current[i], true
}

func (s *Scene) reset(list []Primitive) {
	s.current = list
	s.index = make(map[Key]int, len(list))
	for i, p := range list {
		s.index[p.Key] = i
	}
}
