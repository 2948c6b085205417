package nodes

import (
	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

var sample1 = sample.Real(1)

// Constant emits the same value every sample.
type Constant struct {
	Value sample.Sample `yaml:"value"`
}

// Descriptor implements graph.Describer.
func (*Constant) Descriptor() graph.Descriptor {
	return graph.Descriptor{Outputs: graph.Sockets("Out")}
}

// Process implements engine.Node.
func (n *Constant) Process(_, outputs [][]sample.Sample) {
	sample.Fill(outputs[0], n.Value)
}

// Passthru copies input to output.
type Passthru struct{}

// Descriptor implements graph.Describer.
func (*Passthru) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (*Passthru) Process(inputs, outputs [][]sample.Sample) {
	copy(outputs[0], inputs[0])
}

// Sum adds two inputs.
type Sum struct{}

// Descriptor implements graph.Describer.
func (*Sum) Descriptor() graph.Descriptor {
	return graph.Descriptor{
		Inputs:  graph.Sockets("A", "B"),
		Outputs: graph.Sockets("Out"),
	}
}

// Process implements engine.Node.
func (*Sum) Process(inputs, outputs [][]sample.Sample) {
	a, b := inputs[0], inputs[1]
	for i := range outputs[0] {
		outputs[0][i] = a[i].Add(b[i])
	}
}

// Product multiplies two inputs as complex numbers.
type Product struct{}

// Descriptor implements graph.Describer.
func (*Product) Descriptor() graph.Descriptor {
	return graph.Descriptor{
		Inputs:  graph.Sockets("A", "B"),
		Outputs: graph.Sockets("Out"),
	}
}

// Process implements engine.Node.
func (*Product) Process(inputs, outputs [][]sample.Sample) {
	a, b := inputs[0], inputs[1]
	for i := range outputs[0] {
		outputs[0][i] = a[i].Mul(b[i])
	}
}

// Linear computes m*x + b.
type Linear struct {
	M sample.Sample `yaml:"m"`
	B sample.Sample `yaml:"b"`
}

// Descriptor implements graph.Describer.
func (*Linear) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (n *Linear) Process(inputs, outputs [][]sample.Sample) {
	for i, x := range inputs[0] {
		outputs[0][i] = n.M.Mul(x).Add(n.B)
	}
}
