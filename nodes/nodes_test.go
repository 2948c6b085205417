package nodes_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/nodes"
	"pipelined.dev/quadio/sample"
)

const (
	blockSize = 8
	delta     = 1e-5
)

// process runs the node once with provided inputs and returns outputs.
func process(t *testing.T, n engine.Node, inputs ...[]sample.Sample) [][]sample.Sample {
	t.Helper()
	d := n.Descriptor()
	require.Equal(t, len(d.Inputs), len(inputs), "inputs count")
	size := blockSize
	if len(inputs) > 0 {
		size = len(inputs[0])
	}
	outputs := make([][]sample.Sample, len(d.Outputs))
	for i := range outputs {
		outputs[i] = make([]sample.Sample, size)
	}
	n.Process(inputs, outputs)
	return outputs
}

func constant(v sample.Sample) []sample.Sample {
	block := make([]sample.Sample, blockSize)
	sample.Fill(block, v)
	return block
}

func assertSamples(t *testing.T, expected, result []sample.Sample) {
	t.Helper()
	require.Equal(t, len(expected), len(result))
	for i := range expected {
		assert.InDelta(t, expected[i].Re, result[i].Re, delta, "re %d", i)
		assert.InDelta(t, expected[i].Im, result[i].Im, delta, "im %d", i)
	}
}

func TestRegistry(t *testing.T) {
	types := nodes.Types()
	require.NotEmpty(t, types)
	seen := map[string]bool{}
	for _, typ := range types {
		assert.False(t, seen[typ.Name], "duplicate %s", typ.Name)
		seen[typ.Name] = true
		assert.NotEmpty(t, typ.Label)

		n, err := nodes.New(typ.Name)
		require.NoError(t, err)
		name, ok := nodes.Name(n)
		assert.True(t, ok)
		assert.Equal(t, typ.Name, name)
	}

	name, ok := nodes.Name(engine.Output{})
	assert.True(t, ok)
	assert.Equal(t, "output", name)

	_, err := nodes.New("theremin")
	assert.ErrorIs(t, err, nodes.ErrUnknownType)
}

func TestRegistryProcess(t *testing.T) {
	for _, typ := range nodes.Types() {
		t.Run(typ.Name, func(t *testing.T) {
			n := typ.New()
			d := n.Descriptor()
			inputs := make([][]sample.Sample, len(d.Inputs))
			for i := range inputs {
				inputs[i] = constant(sample.New(0.5, -0.25))
			}
			for _, out := range process(t, n, inputs...) {
				for _, s := range out {
					assert.True(t, s.IsFinite())
				}
			}
		})
	}
}

func TestConstant(t *testing.T) {
	out := process(t, &nodes.Constant{Value: sample.New(1, 2)})
	assert.Equal(t, constant(sample.New(1, 2)), out[0])
}

func TestArithmetic(t *testing.T) {
	a := constant(sample.New(1, 2))
	b := constant(sample.New(3, -1))
	tests := []struct {
		name     string
		node     engine.Node
		inputs   [][]sample.Sample
		expected sample.Sample
	}{
		{
			name:     "passthru",
			node:     &nodes.Passthru{},
			inputs:   [][]sample.Sample{a},
			expected: sample.New(1, 2),
		},
		{
			name:     "sum",
			node:     &nodes.Sum{},
			inputs:   [][]sample.Sample{a, b},
			expected: sample.New(4, 1),
		},
		{
			name:     "product",
			node:     &nodes.Product{},
			inputs:   [][]sample.Sample{a, b},
			expected: sample.New(5, 5),
		},
		{
			name:     "linear",
			node:     &nodes.Linear{M: sample.Real(2), B: sample.New(0, 1)},
			inputs:   [][]sample.Sample{a},
			expected: sample.New(2, 5),
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out := process(t, test.node, test.inputs...)
			assert.Equal(t, constant(test.expected), out[0])
		})
	}
}

func TestPhaseScale(t *testing.T) {
	out := process(t, &nodes.PhaseScale{Scale: 2}, constant(sample.New(0, 1)))
	assertSamples(t, constant(sample.Real(-1)), out[0])
}

func TestMagAngSwitch(t *testing.T) {
	out := process(t, &nodes.MagAngSwitch{}, constant(sample.New(0, 1)))
	assertSamples(t, constant(sample.Real(-0.5)), out[0])
}

func TestReImSplit(t *testing.T) {
	out := process(t, &nodes.ReImSplit{}, constant(sample.New(3, 4)))
	assert.Equal(t, constant(sample.Real(3)), out[0])
	assert.Equal(t, constant(sample.New(0, 4)), out[1])
}

func TestQuadrant(t *testing.T) {
	n := nodes.NewQuadrant()
	n.Scales = [4]sample.Sample{sample.Real(1), sample.Real(2), sample.Real(3), sample.Real(4)}
	in := []sample.Sample{
		sample.New(1, 1),
		sample.New(-1, 1),
		sample.New(-1, -1),
		sample.New(1, -1),
	}
	out := process(t, n, in)
	assert.Equal(t, []sample.Sample{
		sample.New(1, 1),
		sample.New(-2, 2),
		sample.New(-3, -3),
		sample.New(4, -4),
	}, out[0])
}

func TestQuantize(t *testing.T) {
	n := &nodes.Quantize{AmpBits: 1, PhaseBits: 2}
	out := process(t, n, constant(sample.FromPolar(0.3, 0.7)))
	assertSamples(t, constant(sample.Real(0.5)), out[0])
}

func TestSlomo(t *testing.T) {
	t.Run("no smoothing", func(t *testing.T) {
		in := constant(sample.New(0, 1))
		out := process(t, &nodes.Slomo{}, in)
		assertSamples(t, in, out[0])
	})
	t.Run("half", func(t *testing.T) {
		out := process(t, &nodes.Slomo{Alpha: 0.5}, constant(sample.New(0, 1)))
		assertSamples(t, []sample.Sample{sample.FromPolar(1, math.Pi/4)}, out[0][:1])
		assert.Greater(t, out[0][1].Im, out[0][0].Im)
	})
}

func TestScope(t *testing.T) {
	in := make([]sample.Sample, blockSize)
	for i := range in {
		im := float32(1)
		if i < 2 {
			im = -1
		}
		in[i] = sample.New(float32(i), im)
	}

	t.Run("triggered", func(t *testing.T) {
		n := &nodes.Scope{Length: 4}
		out := process(t, n, in)
		assert.Equal(t, in, out[0])
		assert.Equal(t, in[2:6], n.Waveform())
	})
	t.Run("free run", func(t *testing.T) {
		n := &nodes.Scope{Length: 4, FreeRun: true}
		process(t, n, in)
		assert.Equal(t, in[4:8], n.Waveform())
	})
	t.Run("not triggered", func(t *testing.T) {
		n := &nodes.Scope{Length: 4}
		process(t, n, constant(sample.New(1, 1)))
		assert.Empty(t, n.Waveform())
	})
}

func TestPhasor(t *testing.T) {
	tests := []struct {
		name string
		fDiv float32
	}{
		{name: "default", fDiv: 1},
		{name: "zero divider", fDiv: 0},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			n := nodes.NewPhasor()
			n.FDiv = test.fDiv
			out := process(t, n, make([]sample.Sample, blockSize))

			expected := make([]sample.Sample, blockSize)
			for i := range expected {
				expected[i] = sample.FromPolar(1, 0.02*float32(i+1))
			}
			assertSamples(t, expected, out[0])
			assert.InDelta(t, 0.16, n.Phase(), delta)
		})
	}
}

func TestMixer(t *testing.T) {
	n := &nodes.Mixer{Inputs: 2}
	d := n.Descriptor()
	assert.Len(t, d.Inputs, 2)
	assert.Equal(t, "In2", d.Inputs[1].Label)

	out := process(t, n, constant(sample.New(1, 2)), constant(sample.New(3, 0)))
	assert.Equal(t, constant(sample.New(2, 1)), out[0])

	assert.Len(t, (&nodes.Mixer{}).Descriptor().Inputs, 1)
	assert.Len(t, (&nodes.Mixer{Inputs: 1000}).Descriptor().Inputs, 64)
}
