package nodes

import (
	"fmt"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

// maxMixerInputs limits the number of mixer sockets.
const maxMixerInputs = 64

// Mixer averages its inputs. Number of inputs is fixed when the mixer is
// added to the graph, changing it later has no effect.
type Mixer struct {
	Inputs int `yaml:"inputs"`
}

// Descriptor implements graph.Describer.
func (n *Mixer) Descriptor() graph.Descriptor {
	inputs := min(max(n.Inputs, 1), maxMixerInputs)
	labels := make([]string, inputs)
	for i := range labels {
		labels[i] = fmt.Sprintf("In%d", i+1)
	}
	return graph.Descriptor{
		Inputs:  graph.Sockets(labels...),
		Outputs: graph.Sockets("Out"),
	}
}

// Process implements engine.Node.
func (*Mixer) Process(inputs, outputs [][]sample.Sample) {
	out := outputs[0]
	clear(out)
	for _, in := range inputs {
		for i := range out {
			out[i] = out[i].Add(in[i])
		}
	}
	scale := 1 / float32(len(inputs))
	for i := range out {
		out[i] = out[i].Scale(scale)
	}
}
