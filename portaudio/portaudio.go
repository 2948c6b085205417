// Package portaudio plays the pipeline output on the default device.
package portaudio

import (
	"fmt"

	"github.com/gordonklaus/portaudio"

	"pipelined.dev/quadio/internal/errs"
	"pipelined.dev/quadio/pipeline"
)

// Sink represents portaudio sink which plays the pipeline output using
// the default device.
type Sink struct {
	reader          *pipeline.Reader
	sampleRate      int
	channels        int
	framesPerBuffer int
	stream          *portaudio.Stream
}

// NewSink returns new sink which plays samples from the reader. Every
// sample is written to all channels.
func NewSink(r *pipeline.Reader, sampleRate, channels, framesPerBuffer int) *Sink {
	return &Sink{
		reader:          r,
		sampleRate:      sampleRate,
		channels:        max(channels, 1),
		framesPerBuffer: framesPerBuffer,
	}
}

// Start initializes portaudio api and starts the default output stream.
// Device pulls samples from the reader in the callback.
func (s *Sink) Start() error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("error initializing portaudio: %w", err)
	}
	stream, err := portaudio.OpenDefaultStream(0, s.channels, float64(s.sampleRate), s.framesPerBuffer, s.callback)
	if err != nil {
		var e errs.List
		e.Add(fmt.Errorf("error opening stream: %w", err), portaudio.Terminate())
		return e.Ret()
	}
	if err := stream.Start(); err != nil {
		var e errs.List
		e.Add(fmt.Errorf("error starting stream: %w", err), stream.Close(), portaudio.Terminate())
		return e.Ret()
	}
	s.stream = stream
	return nil
}

// callback is called by portaudio on the device thread.
func (s *Sink) callback(out []float32) {
	s.reader.Fill(out, s.channels)
}

// Close stops the stream and terminates portaudio structures.
func (s *Sink) Close() error {
	if s.stream == nil {
		return nil
	}
	var e errs.List
	e.Add(s.stream.Stop(), s.stream.Close(), portaudio.Terminate())
	s.stream = nil
	return e.Ret()
}

// Default returns sample rate and number of output channels of the default
// output device.
func Default() (sampleRate, channels int, err error) {
	if err := portaudio.Initialize(); err != nil {
		return 0, 0, fmt.Errorf("error initializing portaudio: %w", err)
	}
	defer func() {
		var e errs.List
		e.Add(err, portaudio.Terminate())
		err = e.Ret()
	}()
	d, err := portaudio.DefaultOutputDevice()
	if err != nil {
		return 0, 0, fmt.Errorf("error getting default device: %w", err)
	}
	return int(d.DefaultSampleRate), d.MaxOutputChannels, nil
}
