// Package sample provides the quadrature sample that flows along the wires
// of a graph. A sample is a complex number with float32 components; only
// the real part leaves the graph.
package sample

import (
	"fmt"
	"math"
)

// Sample is a single quadrature value.
type Sample struct {
	Re float32 `yaml:"re"`
	Im float32 `yaml:"im"`
}

// New returns sample with provided components.
func New(re, im float32) Sample {
	return Sample{Re: re, Im: im}
}

// Real returns sample with zero imaginary part.
func Real(re float32) Sample {
	return Sample{Re: re}
}

// FromPolar builds a sample from magnitude and angle in radians.
func FromPolar(magnitude, angle float32) Sample {
	sin, cos := math.Sincos(float64(angle))
	return Sample{
		Re: magnitude * float32(cos),
		Im: magnitude * float32(sin),
	}
}

// Add returns s + o.
func (s Sample) Add(o Sample) Sample {
	return Sample{Re: s.Re + o.Re, Im: s.Im + o.Im}
}

// Sub returns s - o.
func (s Sample) Sub(o Sample) Sample {
	return Sample{Re: s.Re - o.Re, Im: s.Im - o.Im}
}

// Mul returns complex product s * o.
func (s Sample) Mul(o Sample) Sample {
	return Sample{
		Re: s.Re*o.Re - s.Im*o.Im,
		Im: s.Re*o.Im + s.Im*o.Re,
	}
}

// Scale multiplies both components by k.
func (s Sample) Scale(k float32) Sample {
	return Sample{Re: s.Re * k, Im: s.Im * k}
}

// Conj returns complex conjugate.
func (s Sample) Conj() Sample {
	return Sample{Re: s.Re, Im: -s.Im}
}

// Abs returns magnitude.
func (s Sample) Abs() float32 {
	return float32(math.Hypot(float64(s.Re), float64(s.Im)))
}

// Arg returns angle in range [-Pi, Pi].
func (s Sample) Arg() float32 {
	return float32(math.Atan2(float64(s.Im), float64(s.Re)))
}

// Polar returns magnitude and angle.
func (s Sample) Polar() (magnitude, angle float32) {
	return s.Abs(), s.Arg()
}

// IsFinite reports whether both components are finite numbers.
func (s Sample) IsFinite() bool {
	return !math.IsNaN(float64(s.Re)) && !math.IsInf(float64(s.Re), 0) &&
		!math.IsNaN(float64(s.Im)) && !math.IsInf(float64(s.Im), 0)
}

func (s Sample) String() string {
	return fmt.Sprintf("(%g%+gi)", s.Re, s.Im)
}

// Fill sets every sample of the block to v.
func Fill(block []Sample, v Sample) {
	for i := range block {
		block[i] = v
	}
}

// Resize returns block of length n with all samples set to zero. Backing
// array is reused when capacity allows.
func Resize(block []Sample, n int) []Sample {
	if cap(block) < n {
		return make([]Sample, n)
	}
	block = block[:n]
	clear(block)
	return block
}
