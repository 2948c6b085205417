package pipeline

import (
	"sync"

	"pipelined.dev/quadio/engine"
)

type (
	// Patch is a graph shared between the compute loop and editors. Any
	// access takes the full lock, there is no reader/writer distinction.
	Patch struct {
		mu    sync.Mutex
		graph *engine.Graph
	}

	// Edit changes the graph. It's called with the patch lock held.
	Edit func(*engine.Graph) error
)

// NewPatch wraps the graph. If graph is nil, an empty one is created.
func NewPatch(g *engine.Graph) *Patch {
	if g == nil {
		g = engine.NewGraph()
	}
	return &Patch{graph: g}
}

// Edit calls fn with exclusive access to the graph.
func (p *Patch) Edit(fn Edit) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return fn(p.graph)
}

// View calls fn with the graph for reading. It takes the same lock as Edit.
func (p *Patch) View(fn func(*engine.Graph)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	fn(p.graph)
}

// run computes one block under the lock. Pending edits are applied first,
// so they take effect at the block boundary.
func (p *Patch) run(e *engine.Engine, edits []Edit, out []float32) (editErrs []error, err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, edit := range edits {
		if err := edit(p.graph); err != nil {
			editErrs = append(editErrs, err)
		}
	}
	return editErrs, e.Run(p.graph, out)
}
