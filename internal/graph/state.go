package graph

import (
	"time"

	"github.com/google/uuid"

	"github.com/vampirenirmal/narrative/internal/beat"
	"github.com/vampirenirmal/narrative/internal/feedback"
	"github.com/vampirenirmal/narrative/internal/generate"
)

// NodeStatus is the outcome of one node invocation.
type NodeStatus string

const (
	StatusCompleted NodeStatus = "completed"
	StatusFailed    NodeStatus = "failed"
)

// NodeResult logs one node invocation. The executor appends exactly one
// per node visited.
type NodeResult struct {
	NodeID     string     `json:"node_id"`
	Status     NodeStatus `json:"status"`
	Output     string     `json:"output,omitempty"`
	Error      string     `json:"error,omitempty"`
	DurationMs int64      `json:"duration_ms"`
	Timestamp  time.Time  `json:"timestamp"`
}

// State is the mutable context threaded through graph nodes. The executor
// is its only writer during a run.
type State struct {
	SessionID       string                                 `json:"session_id"`
	Outline         []generate.SceneOutline                `json:"outline,omitempty"`
	Themes          []string                               `json:"themes,omitempty"`
	Arcs            map[string]*beat.CharacterArcState     `json:"arcs,omitempty"`
	PendingBeats    []*beat.StoryBeat                      `json:"pending_beats,omitempty"`
	CompletedBeats  []*beat.StoryBeat                      `json:"completed_beats,omitempty"`
	LatestAnalysis  *feedback.MultiDimensionalAnalysis     `json:"latest_analysis,omitempty"`
	AnalysisHistory []*feedback.MultiDimensionalAnalysis   `json:"analysis_history,omitempty"`
	LoopHistory     []feedback.FeedbackIteration           `json:"loop_history,omitempty"`
	CurrentNode     string                                 `json:"current_node"`
	NodeResults     []NodeResult                           `json:"node_results,omitempty"`
	Errors          []string                               `json:"errors,omitempty"`
}

// NewState creates an empty state with a fresh session id.
func NewState() *State {
	return &State{
		SessionID: uuid.NewString(),
		Arcs:      make(map[string]*beat.CharacterArcState),
	}
}

// LastResult returns the most recent node result, or nil before any node
// has run.
func (s *State) LastResult() *NodeResult {
	if len(s.NodeResults) == 0 {
		return nil
	}
	return &s.NodeResults[len(s.NodeResults)-1]
}
