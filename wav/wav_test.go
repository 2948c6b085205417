package wav_test

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-audio/audio"
	gowav "github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/log"
	"pipelined.dev/quadio/nodes"
	"pipelined.dev/quadio/pipeline"
	"pipelined.dev/quadio/sample"
	"pipelined.dev/quadio/wav"
)

const sampleRate = 44100

func decode(t *testing.T, path string) *audio.IntBuffer {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	dec := gowav.NewDecoder(f)
	require.True(t, dec.IsValidFile())
	buf, err := dec.FullPCMBuffer()
	require.NoError(t, err)
	return buf
}

// closedReader returns reader of provided blocks.
func closedReader(blocks ...[]float32) *pipeline.Reader {
	c := make(chan []float32, len(blocks))
	for _, b := range blocks {
		c <- b
	}
	close(c)
	return pipeline.NewReader(c)
}

func TestRenderPipeline(t *testing.T) {
	g := engine.NewGraph()
	src := g.Add(&nodes.Constant{Value: sample.New(0.5, 1)})
	out := g.Add(engine.Output{})
	_, _, err := g.Connect(graph.Socket{Node: src}, graph.Socket{Node: out})
	require.NoError(t, err)

	p := pipeline.New(pipeline.NewPatch(g),
		pipeline.WithBlockSize(256),
		pipeline.WithSampleRate(sampleRate),
		pipeline.WithLogger(log.Discard()),
	)
	ctx, cancel := context.WithCancel(context.Background())
	errc := p.Run(ctx)

	sink, err := wav.NewSink(sampleRate, 2, 16)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "constant.wav")
	n, err := sink.RenderFile(ctx, path, p.Reader(), 3000)
	require.NoError(t, err)
	assert.Equal(t, 3000, n)

	cancel()
	for err := range errc {
		assert.NoError(t, err)
	}

	buf := decode(t, path)
	assert.Equal(t, 2, buf.Format.NumChannels)
	assert.Equal(t, sampleRate, buf.Format.SampleRate)
	require.Len(t, buf.Data, 6000)
	for _, v := range buf.Data {
		assert.Equal(t, 16383, v)
	}
}

func TestRenderClosed(t *testing.T) {
	tests := []struct {
		bitDepth int
		expected []int
	}{
		{
			bitDepth: 16,
			expected: []int{math.MaxInt16, math.MinInt16 + 1, 0, 0},
		},
		{
			bitDepth: 24,
			expected: []int{1<<23 - 1, -(1<<23 - 1), 0, 0},
		},
		{
			bitDepth: 32,
			expected: []int{math.MaxInt32, math.MinInt32 + 1, 0, 0},
		},
	}
	for _, test := range tests {
		sink, err := wav.NewSink(sampleRate, 1, test.bitDepth)
		require.NoError(t, err)
		r := closedReader(
			[]float32{2, -1},
			[]float32{float32(math.NaN()), 0},
		)
		path := filepath.Join(t.TempDir(), "closed.wav")
		n, err := sink.RenderFile(context.Background(), path, r, 100)
		require.NoError(t, err)
		assert.Equal(t, 4, n)
		assert.Equal(t, test.expected, decode(t, path).Data, "bit depth %d", test.bitDepth)
	}
}

func TestRenderCancelled(t *testing.T) {
	sink, err := wav.NewSink(sampleRate, 1, 16)
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	path := filepath.Join(t.TempDir(), "cancelled.wav")
	n, err := sink.RenderFile(ctx, path, closedReader([]float32{1}), 10)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, n)
}

func TestUnsupportedBitDepth(t *testing.T) {
	_, err := wav.NewSink(sampleRate, 1, 8)
	assert.ErrorIs(t, err, wav.ErrUnsupportedBitDepth)
}
