package nodes

import (
	"math"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

// Scope captures Length samples of the signal each time the imaginary part
// crosses zero upwards. With FreeRun the capture restarts right away. The
// signal is passed through unchanged.
type Scope struct {
	Length  int  `yaml:"length"`
	FreeRun bool `yaml:"free_run"`

	triggered bool
	last      sample.Sample
	capture   []sample.Sample
	waveform  []sample.Sample
}

// Descriptor implements graph.Describer.
func (*Scope) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (n *Scope) Process(inputs, outputs [][]sample.Sample) {
	length := max(n.Length, 1)
	for _, in := range inputs[0] {
		rising := !math.Signbit(float64(in.Im)) && math.Signbit(float64(n.last.Im))
		if rising || n.FreeRun {
			n.triggered = true
		}
		n.last = in

		if !n.triggered {
			continue
		}
		n.capture = append(n.capture, in)
		if len(n.capture) >= length {
			n.capture, n.waveform = n.waveform, n.capture
			n.capture = n.capture[:0]
			n.triggered = false
		}
	}
	copy(outputs[0], inputs[0])
}

// Waveform returns a copy of the last complete capture. Scope is processed
// under the patch lock, so it must be called under the same lock.
func (n *Scope) Waveform() []sample.Sample {
	return append([]sample.Sample(nil), n.waveform...)
}
