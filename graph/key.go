package graph

import "fmt"

// Key identifies a node instance within a graph. Zero value is never a
// valid key. Keys of removed nodes are never reused: the slot generation is
// bumped when the slot is taken again, so a stale key is detected instead
// of aliasing a new node.
type Key struct {
	index      uint32
	generation uint32
}

// IsZero returns true for the zero key.
func (k Key) IsZero() bool {
	return k.generation == 0
}

// Less orders keys by slot index and then by generation.
func (k Key) Less(o Key) bool {
	if k.index != o.index {
		return k.index < o.index
	}
	return k.generation < o.generation
}

func (k Key) String() string {
	if k.IsZero() {
		return "node(nil)"
	}
	return fmt.Sprintf("node(%dv%d)", k.index, k.generation)
}

// slot is an arena cell. Node and its descriptor share the slot, so one
// can't exist without the other.
type slot[N Describer] struct {
	generation uint32
	occupied   bool
	node       N
	descriptor Descriptor
}

// arena stores nodes by generational keys.
type arena[N Describer] struct {
	slots []slot[N]
	free  []uint32
	size  int
}

func (a *arena[N]) insert(node N, d Descriptor) Key {
	var idx uint32
	if n := len(a.free); n > 0 {
		idx = a.free[n-1]
		a.free = a.free[:n-1]
	} else {
		idx = uint32(len(a.slots))
		a.slots = append(a.slots, slot[N]{})
	}
	s := &a.slots[idx]
	s.generation++
	s.occupied = true
	s.node = node
	s.descriptor = d
	a.size++
	return Key{index: idx, generation: s.generation}
}

func (a *arena[N]) get(k Key) (*slot[N], bool) {
	if k.IsZero() || int(k.index) >= len(a.slots) {
		return nil, false
	}
	s := &a.slots[k.index]
	if !s.occupied || s.generation != k.generation {
		return nil, false
	}
	return s, true
}

func (a *arena[N]) remove(k Key) (N, bool) {
	var zero N
	s, ok := a.get(k)
	if !ok {
		return zero, false
	}
	node := s.node
	s.node = zero
	s.descriptor = Descriptor{}
	s.occupied = false
	// generation is bumped on the next insert, so the stale key
	// can never match again.
	a.free = append(a.free, k.index)
	a.size--
	return node, true
}
