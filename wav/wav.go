// Package wav renders the pipeline output into wav files.
package wav

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"

	"pipelined.dev/quadio/internal/errs"
	"pipelined.dev/quadio/pipeline"
)

const (
	// pcmFormat is wav audio format tag for integer PCM.
	pcmFormat = 1
	// bufferFrames is the number of frames encoded per write.
	bufferFrames = 1024
)

// ErrUnsupportedBitDepth is returned when unsupported bit depth is used.
var ErrUnsupportedBitDepth = errors.New("only 16, 24 and 32 bit depth is supported")

// Sink encodes frames read from the pipeline as integer PCM.
type Sink struct {
	sampleRate int
	channels   int
	bitDepth   int
}

// NewSink creates new wav sink.
func NewSink(sampleRate, channels, bitDepth int) (*Sink, error) {
	switch bitDepth {
	case 16, 24, 32:
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedBitDepth, bitDepth)
	}
	return &Sink{
		sampleRate: sampleRate,
		channels:   max(channels, 1),
		bitDepth:   bitDepth,
	}, nil
}

// RenderFile creates the file at path and renders frames into it.
func (s *Sink) RenderFile(ctx context.Context, path string, r *pipeline.Reader, frames int) (int, error) {
	f, err := os.Create(path)
	if err != nil {
		return 0, err
	}
	n, err := s.Render(ctx, f, r, frames)
	var e errs.List
	e.Add(err, f.Close())
	return n, e.Ret()
}

// Render writes up to frames frames into ws. It returns earlier if the
// reader is done or the context is cancelled. Number of written frames is
// returned. The wav header is finalized in any case.
func (s *Sink) Render(ctx context.Context, ws io.WriteSeeker, r *pipeline.Reader, frames int) (n int, err error) {
	enc := wav.NewEncoder(ws, s.sampleRate, s.bitDepth, s.channels, pcmFormat)
	defer func() {
		var e errs.List
		e.Add(err, enc.Close())
		err = e.Ret()
	}()

	floats := make([]float32, bufferFrames*s.channels)
	ib := &audio.IntBuffer{
		Format: &audio.Format{
			NumChannels: s.channels,
			SampleRate:  s.sampleRate,
		},
		Data:           make([]int, len(floats)),
		SourceBitDepth: s.bitDepth,
	}
	scale := float64(int(1)<<(s.bitDepth-1) - 1)
	for n < frames {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		size := min(bufferFrames, frames-n)
		filled := r.Fill(floats[:size*s.channels], s.channels)
		if filled == 0 {
			return n, nil
		}
		ib.Data = ib.Data[:filled*s.channels]
		for i := range ib.Data {
			ib.Data[i] = toInt(floats[i], scale)
		}
		if err := enc.Write(ib); err != nil {
			return n, fmt.Errorf("error writing wav: %w", err)
		}
		n += filled
	}
	return n, nil
}

// toInt converts the sample into integer PCM value. Out of range and NaN
// values are clipped.
func toInt(v float32, scale float64) int {
	switch {
	case v != v:
		return 0
	case v > 1:
		v = 1
	case v < -1:
		v = -1
	}
	return int(float64(v) * scale)
}
