package nodes

import (
	"math"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/sample"
)

// phasorStep is the base phase increment per sample.
const phasorStep = 0.02

// Phasor is a unit-magnitude oscillator. Frequency is phasorStep*FMul/FDiv
// radians per sample. The Mod input modulates the phase by the angular
// velocity of the modulator (PM) and the frequency by its real part (FM).
type Phasor struct {
	FMul        float32 `yaml:"f_mul"`
	FDiv        float32 `yaml:"f_div"`
	ModMagScale float32 `yaml:"mod_mag_scale"`
	ModAngScale float32 `yaml:"mod_ang_scale"`

	phase        float32
	lastModPhase float32
}

// NewPhasor returns phasor with default parameters.
func NewPhasor() *Phasor {
	return &Phasor{
		FMul:        1,
		FDiv:        1,
		ModAngScale: 0.1,
	}
}

// Descriptor implements graph.Describer.
func (*Phasor) Descriptor() graph.Descriptor {
	return graph.Descriptor{
		Inputs:  graph.Sockets("Mod"),
		Outputs: graph.Sockets("Out"),
	}
}

// Process implements engine.Node.
func (n *Phasor) Process(inputs, outputs [][]sample.Sample) {
	fDiv := n.FDiv
	if fDiv <= 0 {
		fDiv = 1
	}
	for i, mod := range inputs[0] {
		modAng := mod.Arg()
		modFreq := sample.CleanAngle(modAng - n.lastModPhase)

		// main accumulator, then PM and FM.
		n.phase += phasorStep * n.FMul / fDiv
		n.phase += modFreq * n.ModAngScale
		n.phase += phasorStep * mod.Re * n.ModMagScale
		n.phase = float32(math.Mod(float64(n.phase), float64(tau)))

		outputs[0][i] = sample.FromPolar(1, n.phase)
		n.lastModPhase = modAng
	}
}

// Phase returns current phase of the oscillator.
func (n *Phasor) Phase() float32 {
	return n.phase
}
