package graph

import (
	"errors"
	"fmt"
)

// ErrUnknownNode indicates an edge points at a node that was never added.
var ErrUnknownNode = errors.New("unknown graph node")

// NodeError wraps a failure inside one node's execution.
type NodeError struct {
	Node string
	Err  error
}

func (e *NodeError) Error() string {
	return fmt.Sprintf("node %s failed: %v", e.Node, e.Err)
}

func (e *NodeError) Unwrap() error {
	return e.Err
}
