/*
Package nodes provides processing nodes for the engine.

Nodes keep their parameters in exported fields, so they can be changed
between blocks under the patch lock and stored in patch files. Internal
state, like oscillator phase, is kept across blocks.

Every node type is registered with a name:

	n, err := nodes.New("phasor")
	name, ok := nodes.Name(n)
*/
package nodes

import (
	"errors"
	"fmt"
	"reflect"

	"pipelined.dev/quadio/engine"
	"pipelined.dev/quadio/graph"
)

// ErrUnknownType is returned when node type is not registered.
var ErrUnknownType = errors.New("unknown node type")

type (
	// Constructor returns a node with default parameters.
	Constructor func() engine.Node

	// Type describes registered node type.
	Type struct {
		Name  string
		Label string
		New   Constructor
	}
)

var (
	types = []Type{
		{Name: "constant", Label: "CONSTANT", New: func() engine.Node { return &Constant{Value: sample1} }},
		{Name: "passthru", Label: "PASSTHRU", New: func() engine.Node { return &Passthru{} }},
		{Name: "sum", Label: "SUM", New: func() engine.Node { return &Sum{} }},
		{Name: "product", Label: "PRODUCT", New: func() engine.Node { return &Product{} }},
		{Name: "mixer", Label: "MIXER", New: func() engine.Node { return &Mixer{Inputs: 4} }},
		{Name: "linear", Label: "LINEAR", New: func() engine.Node { return &Linear{M: sample1} }},
		{Name: "phase-scale", Label: "PHASE-SCALE", New: func() engine.Node { return &PhaseScale{Scale: 1} }},
		{Name: "mag-ang-switch", Label: "MAG-ANG SWITCH", New: func() engine.Node { return &MagAngSwitch{} }},
		{Name: "re-im-split", Label: "RE-IM SPLIT", New: func() engine.Node { return &ReImSplit{} }},
		{Name: "quadrant", Label: "QUADRANT", New: func() engine.Node { return NewQuadrant() }},
		{Name: "quantize", Label: "QUANTIZE", New: func() engine.Node { return &Quantize{AmpBits: 16, PhaseBits: 16} }},
		{Name: "slomo", Label: "SLO-MO", New: func() engine.Node { return &Slomo{Alpha: 0.9} }},
		{Name: "scope", Label: "SCOPE", New: func() engine.Node { return &Scope{Length: 4096} }},
		{Name: "phasor", Label: "PHASOR", New: func() engine.Node { return NewPhasor() }},
		{Name: "output", Label: "OUT", New: func() engine.Node { return &engine.Output{} }},
	}

	byName = map[string]Type{}
	byType = map[reflect.Type]string{}
)

func init() {
	for _, t := range types {
		byName[t.Name] = t
		rt := reflect.TypeOf(t.New())
		byType[rt] = t.Name
		// both value and pointer of the type resolve to the same name.
		if rt.Kind() == reflect.Ptr {
			byType[rt.Elem()] = t.Name
		}
	}
}

// Types returns all registered node types in menu order.
func Types() []Type {
	return append([]Type(nil), types...)
}

// New returns a node of the named type with default parameters.
func New(name string) (engine.Node, error) {
	t, ok := byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}
	return t.New(), nil
}

// Name returns registered name of the node type.
func Name(n engine.Node) (string, bool) {
	name, ok := byType[reflect.TypeOf(n)]
	return name, ok
}

// inOut is a descriptor of a single input single output node.
func inOut() graph.Descriptor {
	return graph.Descriptor{
		Inputs:  graph.Sockets("In"),
		Outputs: graph.Sockets("Out"),
	}
}
