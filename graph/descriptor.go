package graph

type (
	// SocketDescriptor describes a single input or output pin of a node.
	// Label is display-only, sockets are addressed by index.
	SocketDescriptor struct {
		Label string
	}

	// Descriptor lists node sockets. It's computed once when the node is
	// added to the graph.
	Descriptor struct {
		Inputs  []SocketDescriptor
		Outputs []SocketDescriptor
	}

	// Describer is implemented by everything that can be stored in the
	// graph.
	Describer interface {
		Descriptor() Descriptor
	}
)

// Sockets is a shortcut to build socket descriptors from labels.
func Sockets(labels ...string) []SocketDescriptor {
	if len(labels) == 0 {
		return nil
	}
	s := make([]SocketDescriptor, len(labels))
	for i := range labels {
		s[i].Label = labels[i]
	}
	return s
}

// Direction identifies input or output side of the node.
type Direction int

const (
	// Input sockets receive signal.
	Input Direction = iota
	// Output sockets emit signal.
	Output
)

func (d Direction) String() string {
	switch d {
	case Input:
		return "input"
	case Output:
		return "output"
	}
	return "unknown"
}

// sockets returns the descriptors for provided direction.
func (d Descriptor) sockets(dir Direction) []SocketDescriptor {
	if dir == Input {
		return d.Inputs
	}
	return d.Outputs
}

// clone copies descriptor so callers can't mutate cached slices.
func (d Descriptor) clone() Descriptor {
	return Descriptor{
		Inputs:  append([]SocketDescriptor(nil), d.Inputs...),
		Outputs: append([]SocketDescriptor(nil), d.Outputs...),
	}
}
