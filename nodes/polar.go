package nodes

import (
	"math"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

const (
	pi  = float32(math.Pi)
	tau = float32(2 * math.Pi)
)

// PhaseScale multiplies the angle of the signal keeping its magnitude.
type PhaseScale struct {
	Scale float32 `yaml:"scale"`
}

// Descriptor implements graph.Describer.
func (*PhaseScale) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (n *PhaseScale) Process(inputs, outputs [][]sample.Sample) {
	for i, in := range inputs[0] {
		r, theta := in.Polar()
		outputs[0][i] = sample.FromPolar(r, theta*n.Scale)
	}
}

// MagAngSwitch swaps magnitude and angle of the signal. Angle is
// normalized by Pi and magnitude is scaled by Pi, so unit circle maps to
// itself.
type MagAngSwitch struct{}

// Descriptor implements graph.Describer.
func (*MagAngSwitch) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (*MagAngSwitch) Process(inputs, outputs [][]sample.Sample) {
	for i, in := range inputs[0] {
		r, theta := in.Polar()
		outputs[0][i] = sample.FromPolar(theta/pi, r*pi)
	}
}

// ReImSplit separates real and imaginary parts into two outputs.
type ReImSplit struct{}

// Descriptor implements graph.Describer.
func (*ReImSplit) Descriptor() graph.Descriptor {
	return graph.Descriptor{
		Inputs:  graph.Sockets("In"),
		Outputs: graph.Sockets("Re", "Im"),
	}
}

// Process implements engine.Node.
func (*ReImSplit) Process(inputs, outputs [][]sample.Sample) {
	re, im := outputs[0], outputs[1]
	for i, in := range inputs[0] {
		re[i] = sample.New(in.Re, 0)
		im[i] = sample.New(0, in.Im)
	}
}

// Quadrant scales the signal by the factor of the complex plane quadrant
// the sample is in. Scales are ordered I to IV.
type Quadrant struct {
	Scales [4]sample.Sample `yaml:"scales"`
}

// NewQuadrant returns quadrant node with unit scales.
func NewQuadrant() *Quadrant {
	return &Quadrant{
		Scales: [4]sample.Sample{sample1, sample1, sample1, sample1},
	}
}

// Descriptor implements graph.Describer.
func (*Quadrant) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (n *Quadrant) Process(inputs, outputs [][]sample.Sample) {
	for i, in := range inputs[0] {
		outputs[0][i] = in.Mul(n.Scales[quadrant(in)])
	}
}

// quadrant returns zero-based quadrant index. Signed zeros count as their
// sign.
func quadrant(s sample.Sample) int {
	re := !math.Signbit(float64(s.Re))
	im := !math.Signbit(float64(s.Im))
	switch {
	case re && im:
		return 0
	case !re && im:
		return 1
	case !re && !im:
		return 2
	}
	return 3
}

// Quantize rounds magnitude and angle to the grid of provided bit depth.
type Quantize struct {
	AmpBits   float32 `yaml:"amp_bits"`
	PhaseBits float32 `yaml:"phase_bits"`
}

// Descriptor implements graph.Describer.
func (*Quantize) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (n *Quantize) Process(inputs, outputs [][]sample.Sample) {
	ampFactor := float32(math.Pow(2, float64(n.AmpBits)))
	phaseFactor := float32(math.Pow(2, float64(n.PhaseBits)))
	for i, in := range inputs[0] {
		amp, phase := in.Polar()
		amp = round(amp*ampFactor) / ampFactor
		phase = round(phase*phaseFactor/tau) / phaseFactor
		outputs[0][i] = sample.FromPolar(amp, phase*tau)
	}
}

func round(v float32) float32 {
	return float32(math.Round(float64(v)))
}

// Slomo smooths the angle of the signal with exponential moving average.
// Alpha close to 1 means slow angle changes.
type Slomo struct {
	Alpha float32 `yaml:"alpha"`

	lastPhase float32
}

// Descriptor implements graph.Describer.
func (*Slomo) Descriptor() graph.Descriptor {
	return inOut()
}

// Process implements engine.Node.
func (n *Slomo) Process(inputs, outputs [][]sample.Sample) {
	for i, in := range inputs[0] {
		amp, phase := in.Polar()
		phase = sample.Lerp(n.lastPhase, phase, 1-n.Alpha)
		n.lastPhase = phase
		outputs[0][i] = sample.FromPolar(amp, phase)
	}
}
