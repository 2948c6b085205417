/*
Package graph provides storage for processing nodes and wires between
their sockets.

Every node is stored along with its descriptor, which is computed once at
insertion. Sockets are addressed by index. Wires are kept by destination:
each input socket has at most one incoming wire, while a single output can
feed any number of inputs.

Graph is not safe for concurrent use, callers coordinate access.
*/
package graph

import (
	"fmt"
	"iter"
)

type (
	// Socket addresses an input or output pin of the node.
	Socket struct {
		Node  Key
		Index int
	}

	// Wire connects source output socket with destination input socket.
	Wire struct {
		Source      Socket
		Destination Socket
	}

	// Graph owns nodes, their descriptors and wires.
	Graph[N Describer] struct {
		nodes arena[N]
		// each input socket has only one thing connected, so wires are
		// kept by destination.
		wires map[Socket]Socket
	}
)

func (s Socket) String() string {
	return fmt.Sprintf("%v[%d]", s.Node, s.Index)
}

// New returns an empty graph.
func New[N Describer]() *Graph[N] {
	return &Graph[N]{
		wires: make(map[Socket]Socket),
	}
}

// Add computes node descriptor, stores the node and returns its key.
func (g *Graph[N]) Add(node N) Key {
	// take the descriptor before node is stored.
	d := node.Descriptor().clone()
	return g.nodes.insert(node, d)
}

// Remove deletes the node and every wire connected to it. If the node
// doesn't exist, zero value and false are returned.
func (g *Graph[N]) Remove(k Key) (N, bool) {
	if _, ok := g.nodes.get(k); !ok {
		var zero N
		return zero, false
	}
	for dst, src := range g.wires {
		if dst.Node == k || src.Node == k {
			delete(g.wires, dst)
		}
	}
	return g.nodes.remove(k)
}

// Connect wires source output to destination input. If destination was
// already connected, previous source is replaced and returned with
// replaced set to true. Keys and socket indices are validated before any
// change is made.
func (g *Graph[N]) Connect(src, dst Socket) (prev Socket, replaced bool, err error) {
	if err := g.checkSocket(src, Output); err != nil {
		return Socket{}, false, fmt.Errorf("source: %w", err)
	}
	if err := g.checkSocket(dst, Input); err != nil {
		return Socket{}, false, fmt.Errorf("destination: %w", err)
	}
	prev, replaced = g.wires[dst]
	g.wires[dst] = src
	return prev, replaced, nil
}

// Disconnect removes wires of the socket and returns number of removed
// wires. Input socket has at most one wire. Output socket might feed
// multiple inputs, all of them are disconnected.
func (g *Graph[N]) Disconnect(k Key, dir Direction, idx int) (int, error) {
	s := Socket{Node: k, Index: idx}
	if err := g.checkSocket(s, dir); err != nil {
		return 0, err
	}
	if dir == Input {
		if _, ok := g.wires[s]; !ok {
			return 0, nil
		}
		delete(g.wires, s)
		return 1, nil
	}
	// output can be connected to many inputs, linear scan.
	removed := 0
	for dst, src := range g.wires {
		if src == s {
			delete(g.wires, dst)
			removed++
		}
	}
	return removed, nil
}

// Descriptor returns cached node descriptor. Returned slices are shared
// and must not be modified.
func (g *Graph[N]) Descriptor(k Key) (Descriptor, error) {
	s, ok := g.nodes.get(k)
	if !ok {
		return Descriptor{}, invalidKey(k)
	}
	return s.descriptor, nil
}

// Node returns the node for provided key.
func (g *Graph[N]) Node(k Key) (N, bool) {
	s, ok := g.nodes.get(k)
	if !ok {
		var zero N
		return zero, false
	}
	return s.node, true
}

// Contains returns true if key identifies a live node.
func (g *Graph[N]) Contains(k Key) bool {
	_, ok := g.nodes.get(k)
	return ok
}

// Len returns number of nodes.
func (g *Graph[N]) Len() int {
	return g.nodes.size
}

// NumWires returns number of wires.
func (g *Graph[N]) NumWires() int {
	return len(g.wires)
}

// Nodes iterates over nodes in ascending key order.
func (g *Graph[N]) Nodes() iter.Seq2[Key, N] {
	return func(yield func(Key, N) bool) {
		for i := range g.nodes.slots {
			s := &g.nodes.slots[i]
			if !s.occupied {
				continue
			}
			if !yield(Key{index: uint32(i), generation: s.generation}, s.node) {
				return
			}
		}
	}
}

// Wires iterates over (destination, source) pairs. Destination is unique
// across the graph. Order is not defined.
func (g *Graph[N]) Wires() iter.Seq2[Socket, Socket] {
	return func(yield func(Socket, Socket) bool) {
		for dst, src := range g.wires {
			if !yield(dst, src) {
				return
			}
		}
	}
}

// Source returns the output socket connected to provided input.
func (g *Graph[N]) Source(dst Socket) (Socket, bool) {
	src, ok := g.wires[dst]
	return src, ok
}

// Validate checks that every wire references live nodes and existing
// sockets.
func (g *Graph[N]) Validate() error {
	for dst, src := range g.wires {
		if err := g.checkSocket(src, Output); err != nil {
			return fmt.Errorf("wire %v -> %v: %w", src, dst, err)
		}
		if err := g.checkSocket(dst, Input); err != nil {
			return fmt.Errorf("wire %v -> %v: %w", src, dst, err)
		}
	}
	return nil
}

func (g *Graph[N]) checkSocket(s Socket, dir Direction) error {
	n, ok := g.nodes.get(s.Node)
	if !ok {
		return invalidKey(s.Node)
	}
	sockets := n.descriptor.sockets(dir)
	if s.Index < 0 || s.Index >= len(sockets) {
		return invalidSocket(s.Node, dir, s.Index, len(sockets))
	}
	return nil
}
