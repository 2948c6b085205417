/*
Package quadio renders graphs of quadrature signal processing nodes.

# Concept

Signal is a stream of complex samples. Nodes are connected with wires
from output sockets to input sockets and form a graph:

	Phasor --> PhaseScale --> Output

Every input accepts at most one wire, an output may feed any number of
inputs. Exactly one Output node is the sink, only the real part of its
input leaves the graph.

Components

	graph - generic node container with generational keys;
	engine - evaluates the graph one block at a time;
	pipeline - runs the engine ahead of the consumer with a bounded queue;
	nodes - processing nodes and their registry;
	patch - yaml documents of graphs;
	portaudio, wav - consumers of the pipeline output.

# Execution

The engine walks the graph depth-first from the sink. Each node is
processed at most once per block, its outputs are cached and shared by all
downstream nodes. Cycles are cut where they are detected, the edge that
closes the cycle reads silence. A node that fails to process a block
produces silence for that block.

The pipeline computes blocks in its own goroutine. The graph is shared
with editors through pipeline.Patch: every access takes one lock, so edits
take effect on block boundaries.

	g, _, err := patch.Load(f)
	p := pipeline.New(pipeline.NewPatch(g))
	errc := p.Run(ctx)
	sink := portaudio.NewSink(p.Reader(), 44100, 2, p.BlockSize())
	err = sink.Start()
*/
package quadio
