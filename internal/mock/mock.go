// Package mock provides instrumented nodes for engine and pipeline tests.
package mock

import (
	"sync/atomic"
	"time"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

// Node mocks an engine.Node. Every output is the sum of all inputs plus
// Value, so the mock works as a constant source (no inputs), a passthrough
// (one input, zero Value) or a mixer.
type Node struct {
	counter
	Inputs  int
	Outputs int
	Value   sample.Sample
	// Step is added to Value after every call, so consecutive blocks are
	// distinguishable.
	Step        sample.Sample
	Interval    time.Duration
	PanicOnCall bool
	// Scribble writes into inputs, which nodes must never do.
	Scribble bool
}

// Descriptor implements graph.Describer.
func (m *Node) Descriptor() graph.Descriptor {
	d := graph.Descriptor{}
	for i := 0; i < m.Inputs; i++ {
		d.Inputs = append(d.Inputs, graph.SocketDescriptor{Label: "In"})
	}
	for i := 0; i < m.Outputs; i++ {
		d.Outputs = append(d.Outputs, graph.SocketDescriptor{Label: "Out"})
	}
	return d
}

// Process implements engine.Node.
func (m *Node) Process(inputs, outputs [][]sample.Sample) {
	calls := m.advance(len(outputs), blockSize(inputs, outputs))
	if m.PanicOnCall {
		panic("mock: panic on call")
	}
	time.Sleep(m.Interval)
	base := m.Value.Add(m.Step.Scale(float32(calls - 1)))
	for _, out := range outputs {
		for j := range out {
			v := base
			for _, in := range inputs {
				v = v.Add(in[j])
			}
			out[j] = v
		}
	}
	if m.Scribble {
		for _, in := range inputs {
			sample.Fill(in, sample.Real(13))
		}
	}
}

func blockSize(inputs, outputs [][]sample.Sample) int {
	if len(outputs) > 0 {
		return len(outputs[0])
	}
	if len(inputs) > 0 {
		return len(inputs[0])
	}
	return 0
}

// counter counts calls and samples. It's safe to read while the node is
// processed in another goroutine.
type counter struct {
	calls   atomic.Int64
	samples atomic.Int64
	outputs atomic.Int64
}

func (c *counter) advance(outputs, size int) int64 {
	c.samples.Add(int64(size))
	c.outputs.Store(int64(outputs))
	return c.calls.Add(1)
}

// Calls returns number of Process calls.
func (c *counter) Calls() int64 {
	return c.calls.Load()
}

// Samples returns total number of processed samples.
func (c *counter) Samples() int64 {
	return c.samples.Load()
}

// LastOutputs returns number of output buffers passed with the last call.
func (c *counter) LastOutputs() int {
	return int(c.outputs.Load())
}

// Source returns a constant source node.
func Source(v sample.Sample) *Node {
	return &Node{Outputs: 1, Value: v}
}

// Passthrough returns a node that copies its input to output.
func Passthrough() *Node {
	return &Node{Inputs: 1, Outputs: 1}
}
