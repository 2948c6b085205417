/*
Package patch stores graphs as YAML documents.

Nodes are listed with unique ids, registered type names and optional
parameters. Wires connect an output socket of one node to an input socket
of another:

	nodes:
	  - id: osc
	    type: phasor
	    params:
	      f_mul: 2
	  - id: out
	    type: output
	wires:
	  - from: {node: osc, socket: 0}
	    to: {node: out, socket: 0}
*/
package patch

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"gopkg.in/yaml.v3"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/graph"
	"pipelined.dev/quadio/nodes"
)

var (
	// ErrDuplicateID is returned when two nodes of the document share id.
	ErrDuplicateID = errors.New("duplicate node id")
	// ErrUnknownID is returned when wire references a node that isn't
	// listed in the document.
	ErrUnknownID = errors.New("unknown node id")
	// ErrUnnamedType is returned on save when node type isn't registered.
	ErrUnnamedType = errors.New("node type is not registered")
)

type (
	// Document is a serialized graph.
	Document struct {
		Nodes []Node `yaml:"nodes"`
		Wires []Wire `yaml:"wires,omitempty"`
	}

	// Node is a single node entry of the document.
	Node struct {
		ID     string    `yaml:"id"`
		Type   string    `yaml:"type"`
		Params yaml.Node `yaml:"params,omitempty"`
	}

	// Endpoint addresses a socket of a node by id.
	Endpoint struct {
		Node   string `yaml:"node"`
		Socket int    `yaml:"socket"`
	}

	// Wire connects output From to input To.
	Wire struct {
		From Endpoint `yaml:"from"`
		To   Endpoint `yaml:"to"`
	}
)

// Load reads the document and builds a graph. It returns the graph and
// the keys of the nodes by document id.
func Load(r io.Reader) (*engine.Graph, map[string]graph.Key, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var doc Document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, nil, fmt.Errorf("error decoding patch: %w", err)
	}
	return Build(&doc)
}

// Build creates a graph from the document.
func Build(doc *Document) (*engine.Graph, map[string]graph.Key, error) {
	g := engine.NewGraph()
	keys := make(map[string]graph.Key, len(doc.Nodes))
	for i, entry := range doc.Nodes {
		if _, ok := keys[entry.ID]; ok {
			return nil, nil, fmt.Errorf("node %d: %w: %q", i, ErrDuplicateID, entry.ID)
		}
		n, err := nodes.New(entry.Type)
		if err != nil {
			return nil, nil, fmt.Errorf("node %q: %w", entry.ID, err)
		}
		if !entry.Params.IsZero() {
			if err := entry.Params.Decode(n); err != nil {
				return nil, nil, fmt.Errorf("node %q params: %w", entry.ID, err)
			}
		}
		keys[entry.ID] = g.Add(n)
	}

	for i, w := range doc.Wires {
		src, err := socket(keys, w.From)
		if err != nil {
			return nil, nil, fmt.Errorf("wire %d: %w", i, err)
		}
		dst, err := socket(keys, w.To)
		if err != nil {
			return nil, nil, fmt.Errorf("wire %d: %w", i, err)
		}
		if _, _, err := g.Connect(src, dst); err != nil {
			return nil, nil, fmt.Errorf("wire %d: %w", i, err)
		}
	}
	return g, keys, nil
}

func socket(keys map[string]graph.Key, e Endpoint) (graph.Socket, error) {
	k, ok := keys[e.Node]
	if !ok {
		return graph.Socket{}, fmt.Errorf("%w: %q", ErrUnknownID, e.Node)
	}
	return graph.Socket{Node: k, Index: e.Socket}, nil
}

// Save writes the graph as a document. Nodes are written in graph order
// and wires are sorted by destination, so the output is stable.
func Save(w io.Writer, g *engine.Graph) error {
	doc, err := Dump(g)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("error encoding patch: %w", err)
	}
	return enc.Close()
}

// Dump converts the graph into a document. Node ids are generated from
// the type name and position.
func Dump(g *engine.Graph) (*Document, error) {
	doc := Document{}
	ids := make(map[graph.Key]string, g.Len())
	for k, n := range g.Nodes() {
		name, ok := nodes.Name(n)
		if !ok {
			return nil, fmt.Errorf("%v %T: %w", k, n, ErrUnnamedType)
		}
		entry := Node{
			ID:   fmt.Sprintf("%s-%d", name, len(doc.Nodes)),
			Type: name,
		}
		if err := entry.Params.Encode(n); err != nil {
			return nil, fmt.Errorf("%v params: %w", k, err)
		}
		// nodes without parameters
		if entry.Params.Kind == yaml.MappingNode && len(entry.Params.Content) == 0 {
			entry.Params = yaml.Node{}
		}
		ids[k] = entry.ID
		doc.Nodes = append(doc.Nodes, entry)
	}

	type wire struct{ src, dst graph.Socket }
	var wires []wire
	for dst, src := range g.Wires() {
		wires = append(wires, wire{src: src, dst: dst})
	}
	slices.SortFunc(wires, func(a, b wire) int {
		switch {
		case a.dst.Node.Less(b.dst.Node):
			return -1
		case b.dst.Node.Less(a.dst.Node):
			return 1
		}
		return a.dst.Index - b.dst.Index
	})
	for _, w := range wires {
		doc.Wires = append(doc.Wires, Wire{
			From: Endpoint{Node: ids[w.src.Node], Socket: w.src.Index},
			To:   Endpoint{Node: ids[w.dst.Node], Socket: w.dst.Index},
		})
	}
	return &doc, nil
}
