/*
Package engine evaluates a graph of processing nodes block by block.

Every block the engine walks the graph depth-first starting from the
Output node, so every producer is processed before its consumers. Each node
is processed at most once per block and its outputs are cached until the
next block. Cycles are detected with three-state visitation tags: the node
that closes a cycle is not processed again, and its consumer reads whatever
the cache holds (zeros after a fresh reset).

Only the real part of the signal connected to the Output node leaves the
engine.
*/
package engine

import (
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/log"
	"pipelined.dev/quadio/metric"
	"pipelined.dev/quadio/sample"
)

// ErrNodePanic is reported when node panics during processing.
var ErrNodePanic = errors.New("node panic")

type visitState int

const (
	notVisited visitState = iota
	visiting
	visited
)

type (
	// Engine computes output blocks of the graph. Engine keeps per-node
	// buffers between calls and must not be used concurrently.
	Engine struct {
		states    map[graph.Key]*state
		zeros     []sample.Sample
		scratch   []sample.Sample
		inputs    [][]sample.Sample
		outputs   [][]sample.Sample
		blockSize int
		sinks     int

		sampleRate int
		logger     logrus.FieldLogger
		measure    metric.MeasureFunc
		cycle      func()
		fault      func()
	}

	// state is per-node evaluation cache.
	state struct {
		visit   visitState
		buffers [][]sample.Sample
	}

	// Option configures the engine.
	Option func(*Engine)
)

// WithLogger sets the logger of the engine.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.logger = l
	}
}

// WithSampleRate sets sample rate used to meter signal duration.
func WithSampleRate(sampleRate int) Option {
	return func(e *Engine) {
		e.sampleRate = sampleRate
	}
}

// New returns a new engine.
func New(options ...Option) *Engine {
	e := &Engine{
		states: make(map[graph.Key]*state),
	}
	for _, option := range options {
		option(e)
	}
	if e.logger == nil {
		e.logger = log.GetLogger()
	}
	e.measure = metric.Meter(e, e.sampleRate)()
	e.cycle = metric.Counter(e, metric.CycleCounter)
	e.fault = metric.Counter(e, metric.FaultCounter)
	return e
}

// Run computes one block of the graph into out. Block length is the length
// of out and may change between calls. Missing or disconnected Output
// results in silence. Error is returned only if the graph is inconsistent.
func (e *Engine) Run(g *Graph, out []float32) error {
	e.blockSize = len(out)
	e.zeros = sample.Resize(e.zeros, e.blockSize)
	defer e.measure(int64(e.blockSize))

	if err := e.prepare(g); err != nil {
		return err
	}

	sink, ok := e.sink(g)
	if !ok {
		// no outputs no audio
		clear(out)
		return nil
	}
	e.visit(g, sink)

	src, ok := g.Source(graph.Socket{Node: sink, Index: 0})
	if !ok {
		clear(out)
		return nil
	}
	buf := e.states[src.Node].buffers[src.Index]
	for i := range out {
		out[i] = buf[i].Re
	}
	return nil
}

// prepare drops state of removed nodes and resets state of present nodes
// for the new block.
func (e *Engine) prepare(g *Graph) error {
	for k := range e.states {
		if !g.Contains(k) {
			delete(e.states, k)
		}
	}
	for k := range g.Nodes() {
		d, err := g.Descriptor(k)
		if err != nil {
			return fmt.Errorf("error preparing block: %w", err)
		}
		st, ok := e.states[k]
		if !ok {
			st = &state{}
			e.states[k] = st
		}
		st.visit = notVisited
		if len(st.buffers) != len(d.Outputs) {
			st.buffers = make([][]sample.Sample, len(d.Outputs))
		}
		for i := range st.buffers {
			st.buffers[i] = sample.Resize(st.buffers[i], e.blockSize)
		}
	}
	return nil
}

// sink returns the Output node with the smallest key.
func (e *Engine) sink(g *Graph) (graph.Key, bool) {
	var (
		sink  graph.Key
		count int
	)
	for k, n := range g.Nodes() {
		if !IsOutput(n) {
			continue
		}
		if count == 0 {
			sink = k
		}
		count++
	}
	if count > 1 && count != e.sinks {
		e.logger.WithFields(logrus.Fields{
			"outputs": count,
			"node":    sink,
		}).Warn("multiple output nodes, using the first one")
	}
	e.sinks = count
	return sink, count > 0
}

// visit processes the node after all its sources.
func (e *Engine) visit(g *Graph, k graph.Key) {
	st := e.states[k]
	switch st.visit {
	case visited:
		return
	case visiting:
		e.cycle()
		e.logger.WithField("node", k).Warn("cycle detected, using stale output")
		return
	}
	st.visit = visiting

	// descriptors and nodes were checked by prepare.
	d, _ := g.Descriptor(k)
	n, _ := g.Node(k)
	for i := range d.Inputs {
		if src, ok := g.Source(graph.Socket{Node: k, Index: i}); ok {
			e.visit(g, src.Node)
		}
	}

	zeros := false
	e.inputs = e.inputs[:0]
	for i := range d.Inputs {
		src, ok := g.Source(graph.Socket{Node: k, Index: i})
		if !ok {
			e.inputs = append(e.inputs, e.zeros)
			zeros = true
			continue
		}
		e.inputs = append(e.inputs, e.states[src.Node].buffers[src.Index])
	}

	numOutputs := len(d.Outputs)
	e.scratch = sample.Resize(e.scratch, e.blockSize*numOutputs)
	e.outputs = e.outputs[:0]
	for i := 0; i < numOutputs; i++ {
		lo, hi := i*e.blockSize, (i+1)*e.blockSize
		e.outputs = append(e.outputs, e.scratch[lo:hi:hi])
	}

	if err := e.process(n); err != nil {
		// outputs stay silent for this block.
		e.fault()
		e.logger.WithField("node", k).WithError(err).Error("error processing node")
	} else {
		for i := range e.outputs {
			copy(st.buffers[i], e.outputs[i])
		}
	}
	if zeros {
		clear(e.zeros)
	}
	st.visit = visited
}

func (e *Engine) process(n Node) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrNodePanic, r)
		}
	}()
	n.Process(e.inputs, e.outputs)
	return nil
}
