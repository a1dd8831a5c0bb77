package graph

import (
	"fmt"
	"log/slog"
	"time"

	"context"
)

// StartNode is the synthetic entry point; it has no node function.
const StartNode = "start"

// NodeFunc is the contract every node satisfies: take the current state,
// return the next state. The executor appends the NodeResult, so a run
// always grows node_results by exactly one entry per node visited.
type NodeFunc func(ctx context.Context, state *State) (*State, error)

// Graph is a directed graph of named nodes with ordered edge lists.
//
// The edge model stores multiple successors per node, but Execute follows
// only the first one: the walk is strictly linear and entries past index 0
// are inert. Kept that way intentionally; conditional branching would need
// a predicate per edge and is not implemented.
type Graph struct {
	nodes  map[string]NodeFunc
	edges  map[string][]string
	logger *slog.Logger
}

func New(logger *slog.Logger) *Graph {
	if logger == nil {
		logger = slog.Default()
	}
	return &Graph{
		nodes:  make(map[string]NodeFunc),
		edges:  make(map[string][]string),
		logger: logger.With("component", "story_graph"),
	}
}

// AddNode registers a node under its id.
func (g *Graph) AddNode(id string, fn NodeFunc) {
	g.nodes[id] = fn
}

// AddEdge appends a successor to a node's ordered edge list.
func (g *Graph) AddEdge(from, to string) {
	g.edges[from] = append(g.edges[from], to)
}

// Execute walks the graph from the start node. It stops when a node has no
// outgoing edges, when a node fails, or when the context is cancelled; the
// state reached so far is always returned.
func (g *Graph) Execute(ctx context.Context, state *State) (*State, error) {
	current := StartNode

	for {
		if err := ctx.Err(); err != nil {
			state.Errors = append(state.Errors, fmt.Sprintf("execution cancelled at %s: %v", current, err))
			g.logger.Warn("Graph execution cancelled", "node", current)
			return state, err
		}

		successors := g.edges[current]
		if len(successors) == 0 {
			g.logger.Debug("Graph walk complete", "final_node", current)
			return state, nil
		}
		next := successors[0]

		fn, ok := g.nodes[next]
		if !ok {
			err := fmt.Errorf("%w: %s", ErrUnknownNode, next)
			state.Errors = append(state.Errors, err.Error())
			state.NodeResults = append(state.NodeResults, NodeResult{
				NodeID:    next,
				Status:    StatusFailed,
				Error:     err.Error(),
				Timestamp: time.Now(),
			})
			return state, err
		}

		start := time.Now()
		nextState, err := fn(ctx, state)
		duration := time.Since(start)

		result := NodeResult{
			NodeID:     next,
			DurationMs: duration.Milliseconds(),
			Timestamp:  time.Now(),
		}

		if err != nil {
			nodeErr := &NodeError{Node: next, Err: err}
			result.Status = StatusFailed
			result.Error = err.Error()
			state.Errors = append(state.Errors, nodeErr.Error())
			state.NodeResults = append(state.NodeResults, result)
			state.CurrentNode = next
			g.logger.Error("Graph node failed",
				"node", next,
				"duration_ms", result.DurationMs,
				"error", err)
			return state, nodeErr
		}

		if nextState != nil {
			state = nextState
		}
		result.Status = StatusCompleted
		result.Output = fmt.Sprintf("%s completed", next)
		state.NodeResults = append(state.NodeResults, result)
		state.CurrentNode = next

		g.logger.Debug("Graph node completed",
			"node", next,
			"duration_ms", result.DurationMs)

		current = next
	}
}
