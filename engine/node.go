package engine

import (
	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

type (
	// Node is a processing unit of the graph. Process is called once per
	// block. Inputs has one slice per input socket, unconnected inputs are
	// filled with zeros and must not be modified. Outputs has one slice per
	// output socket and every slice must be fully populated. All slices have
	// the block length.
	Node interface {
		graph.Describer
		Process(inputs, outputs [][]sample.Sample)
	}

	// Graph is a graph of processing nodes.
	Graph = graph.Graph[Node]

	// Output is the sink of the graph. Signal connected to its only input
	// becomes the output of the engine.
	Output struct{}
)

// NewGraph returns an empty graph of processing nodes.
func NewGraph() *Graph {
	return graph.New[Node]()
}

// Descriptor has a single input and no outputs.
func (Output) Descriptor() graph.Descriptor {
	return graph.Descriptor{
		Inputs: graph.Sockets("Out"),
	}
}

// Process does nothing, the engine reads the input of output node
// directly.
func (Output) Process(_, _ [][]sample.Sample) {}

// IsOutput returns true if node is the output sink.
func IsOutput(n Node) bool {
	switch n.(type) {
	case Output, *Output:
		return true
	}
	return false
}
