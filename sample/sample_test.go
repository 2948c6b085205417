package sample_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"pipelined.dev/quadio/sample"
)

const delta = 1e-5

func TestArithmetic(t *testing.T) {
	a := sample.New(1, 2)
	b := sample.New(3, -1)

	assert.Equal(t, sample.New(4, 1), a.Add(b))
	assert.Equal(t, sample.New(-2, 3), a.Sub(b))
	// (1+2i)(3-i) = 3 - i + 6i - 2i^2 = 5 + 5i
	assert.Equal(t, sample.New(5, 5), a.Mul(b))
	assert.Equal(t, sample.New(2, 4), a.Scale(2))
	assert.Equal(t, sample.New(1, -2), a.Conj())
}

func TestPolar(t *testing.T) {
	var tests = []struct {
		s         sample.Sample
		magnitude float32
		angle     float32
	}{
		{s: sample.New(1, 0), magnitude: 1, angle: 0},
		{s: sample.New(0, 2), magnitude: 2, angle: math.Pi / 2},
		{s: sample.New(-1, 0), magnitude: 1, angle: math.Pi},
		{s: sample.New(3, 4), magnitude: 5, angle: float32(math.Atan2(4, 3))},
	}
	for _, test := range tests {
		m, a := test.s.Polar()
		assert.InDelta(t, test.magnitude, m, delta)
		assert.InDelta(t, test.angle, a, delta)

		back := sample.FromPolar(m, a)
		assert.InDelta(t, test.s.Re, back.Re, delta)
		assert.InDelta(t, test.s.Im, back.Im, delta)
	}
}

func TestCleanAngle(t *testing.T) {
	var tests = []struct {
		in, expected float32
	}{
		{0, 0},
		{1, 1},
		{-1, -1},
		{3 * math.Pi / 2, -math.Pi / 2},
		{-3 * math.Pi / 2, math.Pi / 2},
	}
	for _, test := range tests {
		assert.InDelta(t, test.expected, sample.CleanAngle(test.in), 1e-4, "angle %v", test.in)
	}
}

func TestLerp(t *testing.T) {
	assert.Equal(t, float32(1), sample.Lerp(1, 3, 0))
	assert.Equal(t, float32(3), sample.Lerp(1, 3, 1))
	assert.Equal(t, float32(2), sample.Lerp(1, 3, 0.5))
}

func TestResize(t *testing.T) {
	block := []sample.Sample{sample.Real(1), sample.Real(2), sample.Real(3)}
	block = sample.Resize(block, 2)
	assert.Equal(t, []sample.Sample{{}, {}}, block)

	block = sample.Resize(block, 5)
	assert.Len(t, block, 5)
	for _, s := range block {
		assert.Equal(t, sample.Sample{}, s)
	}
}

func TestIsFinite(t *testing.T) {
	assert.True(t, sample.New(1, -1).IsFinite())
	assert.False(t, sample.New(float32(math.NaN()), 0).IsFinite())
	assert.False(t, sample.New(0, float32(math.Inf(1))).IsFinite())
}
