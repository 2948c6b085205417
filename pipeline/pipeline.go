/*
Package pipeline decouples graph evaluation from the real-time consumer.

A single compute loop repeatedly locks the patch, runs the engine for one
block, releases the lock and pushes the block into a queue of QueueSize
blocks. Pushing blocks the loop when the queue is full, so the loop never
runs more than QueueSize blocks ahead of the consumer. The consumer pulls
samples with Reader, which blocks only when the current block is drained.

	patch := pipeline.NewPatch(g)
	p := pipeline.New(patch, pipeline.WithBlockSize(512))
	errc := p.Run(ctx)
	r := p.Reader()
	r.Fill(out, channels)
*/
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/xid"
	"github.com/sirupsen/logrus"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/log"
	"pipelined.dev/quadio/metric"
)

const (
	// QueueSize is the capacity of the block queue.
	QueueSize = 2
	// DefaultBlockSize is used if no block size option provided.
	DefaultBlockSize = 1024
)

// ErrStarted is returned if the pipeline is run more than once.
var ErrStarted = errors.New("pipeline already started")

type (
	// Pipeline runs the compute loop.
	Pipeline struct {
		id         string
		patch      *Patch
		engine     *engine.Engine
		blockSize  int
		sampleRate int
		logger     logrus.FieldLogger
		blocks     chan []float32
		pool       sync.Pool
		started    atomic.Bool

		editsMu sync.Mutex
		edits   []Edit
	}

	// Option configures the pipeline.
	Option func(*Pipeline)
)

// WithBlockSize sets the length of computed blocks. Non-positive values are
// ignored.
func WithBlockSize(n int) Option {
	return func(p *Pipeline) {
		if n > 0 {
			p.blockSize = n
		}
	}
}

// WithSampleRate sets sample rate used for metrics.
func WithSampleRate(sampleRate int) Option {
	return func(p *Pipeline) {
		p.sampleRate = sampleRate
	}
}

// WithEngine sets the engine. By default a new engine is created.
func WithEngine(e *engine.Engine) Option {
	return func(p *Pipeline) {
		p.engine = e
	}
}

// WithLogger sets the logger of the pipeline.
func WithLogger(l logrus.FieldLogger) Option {
	return func(p *Pipeline) {
		p.logger = l
	}
}

// New creates a pipeline for the patch. The pipeline does nothing until Run
// is called.
func New(patch *Patch, options ...Option) *Pipeline {
	p := &Pipeline{
		id:        xid.New().String(),
		patch:     patch,
		blockSize: DefaultBlockSize,
		blocks:    make(chan []float32, QueueSize),
	}
	for _, option := range options {
		option(p)
	}
	if p.logger == nil {
		p.logger = log.GetLogger()
	}
	p.logger = p.logger.WithField("pipeline", p.id)
	if p.engine == nil {
		p.engine = engine.New(
			engine.WithLogger(p.logger),
			engine.WithSampleRate(p.sampleRate),
		)
	}
	blockSize := p.blockSize
	p.pool.New = func() any {
		return make([]float32, blockSize)
	}
	return p
}

// ID returns unique id of the pipeline.
func (p *Pipeline) ID() string {
	return p.id
}

// BlockSize returns the length of computed blocks.
func (p *Pipeline) BlockSize() int {
	return p.blockSize
}

// Blocks returns the queue of computed blocks. It's closed when the compute
// loop stops.
func (p *Pipeline) Blocks() <-chan []float32 {
	return p.blocks
}

// Reader returns a consumer of computed blocks. Consumed blocks are
// returned to the pipeline for reuse. Only one reader must be used.
func (p *Pipeline) Reader() *Reader {
	return &Reader{
		blocks:  p.blocks,
		recycle: p.put,
	}
}

// Push queues edits of the graph. They are applied by the compute loop
// under the patch lock before the next block is computed. Edit errors are
// logged and don't stop the loop.
func (p *Pipeline) Push(edits ...Edit) {
	p.editsMu.Lock()
	defer p.editsMu.Unlock()
	p.edits = append(p.edits, edits...)
}

// Run starts the compute loop in a new goroutine. The loop runs until the
// context is done or the engine fails. The returned channel receives the
// engine error, if any, and is closed when the loop stops.
func (p *Pipeline) Run(ctx context.Context) <-chan error {
	errc := make(chan error, 1)
	if !p.started.CompareAndSwap(false, true) {
		errc <- ErrStarted
		close(errc)
		return errc
	}
	go p.run(ctx, errc)
	return errc
}

func (p *Pipeline) run(ctx context.Context, errc chan<- error) {
	defer close(errc)
	defer close(p.blocks)
	measure := metric.Meter(p, p.sampleRate)()
	p.logger.WithField("block_size", p.blockSize).Debug("compute loop started")
	defer p.logger.Debug("compute loop stopped")

	for {
		if ctx.Err() != nil {
			return
		}
		block := p.get()
		editErrs, err := p.patch.run(p.engine, p.takeEdits(), block)
		for _, editErr := range editErrs {
			p.logger.WithError(editErr).Warn("error applying edit")
		}
		if err != nil {
			errc <- fmt.Errorf("error running pipeline %s: %w", p.id, err)
			return
		}
		measure(int64(len(block)))

		// blocks when the queue is full.
		select {
		case p.blocks <- block:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pipeline) takeEdits() []Edit {
	p.editsMu.Lock()
	defer p.editsMu.Unlock()
	edits := p.edits
	p.edits = nil
	return edits
}

func (p *Pipeline) get() []float32 {
	return p.pool.Get().([]float32)
}

func (p *Pipeline) put(block []float32) {
	if len(block) != p.blockSize {
		return
	}
	p.pool.Put(block)
}
