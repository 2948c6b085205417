package graph

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned when the key doesn't identify a live node.
	ErrInvalidKey = errors.New("invalid node key")
	// ErrInvalidSocket is returned when the socket index is out of range
	// of node descriptor.
	ErrInvalidSocket = errors.New("invalid socket index")
)

func invalidKey(k Key) error {
	return fmt.Errorf("%w: %v", ErrInvalidKey, k)
}

func invalidSocket(k Key, dir Direction, idx, count int) error {
	return fmt.Errorf("%w: %v has %d %s sockets, got index %d", ErrInvalidSocket, k, count, dir, idx)
}
