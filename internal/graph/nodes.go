package graph

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/vampirenirmal/narrative/internal/feedback"
	"github.com/vampirenirmal/narrative/internal/generate"
)

// Default pipeline node ids.
const (
	NodeLoad     = "load"
	NodeGenerate = "generate"
	NodeAnalyze  = "analyze"
	NodeEnrich   = "enrich"
	NodeCommit   = "commit"
)

// SessionLoader restores a prior checkpoint for a session, if one exists.
// Implemented by the storage layer; the graph imposes no format.
type SessionLoader interface {
	LoadState(ctx context.Context, sessionID string) (*State, bool, error)
}

// Pipeline bundles the collaborators behind the default node sequence:
// load → generate → analyze → enrich → commit.
type Pipeline struct {
	Sessions SessionLoader
	Drafter  *generate.Drafter
	Analyzer *feedback.Analyzer
	Loop     *feedback.Loop
	Logger   *slog.Logger
}

// Graph builds the default linear pipeline.
func (p *Pipeline) Graph() *Graph {
	g := New(p.Logger)

	g.AddNode(NodeLoad, p.loadNode)
	g.AddNode(NodeGenerate, p.generateNode)
	g.AddNode(NodeAnalyze, p.analyzeNode)
	g.AddNode(NodeEnrich, p.enrichNode)
	g.AddNode(NodeCommit, p.commitNode)

	g.AddEdge(StartNode, NodeLoad)
	g.AddEdge(NodeLoad, NodeGenerate)
	g.AddEdge(NodeGenerate, NodeAnalyze)
	g.AddEdge(NodeAnalyze, NodeEnrich)
	g.AddEdge(NodeEnrich, NodeCommit)

	return g
}

// loadNode restores committed beats and arcs from a prior session
// checkpoint. A missing checkpoint is not a failure.
func (p *Pipeline) loadNode(ctx context.Context, state *State) (*State, error) {
	if p.Sessions == nil {
		return state, nil
	}
	prior, found, err := p.Sessions.LoadState(ctx, state.SessionID)
	if err != nil {
		return state, fmt.Errorf("loading session %s: %w", state.SessionID, err)
	}
	if !found {
		return state, nil
	}

	state.CompletedBeats = append(prior.CompletedBeats, state.CompletedBeats...)
	for id, arc := range prior.Arcs {
		if _, exists := state.Arcs[id]; !exists {
			state.Arcs[id] = arc
		}
	}
	return state, nil
}

// generateNode drafts one beat per outline entry, continuing the index
// sequence after any already-present beats.
func (p *Pipeline) generateNode(ctx context.Context, state *State) (*State, error) {
	if len(state.Outline) == 0 {
		return state, nil
	}
	startIndex := len(state.CompletedBeats) + len(state.PendingBeats)
	beats, err := p.Drafter.DraftBeats(ctx, state.Outline, startIndex)
	if err != nil {
		return state, err
	}
	state.PendingBeats = append(state.PendingBeats, beats...)
	return state, nil
}

// analyzeNode runs one multi-dimensional pass over the pending beats.
func (p *Pipeline) analyzeNode(ctx context.Context, state *State) (*State, error) {
	analysis := p.Analyzer.Analyze(state.PendingBeats, state.Arcs, state.Themes)
	state.LatestAnalysis = analysis
	state.AnalysisHistory = append(state.AnalysisHistory, analysis)
	return state, nil
}

// enrichNode runs the bounded feedback loop and adopts its working beat
// set and final analysis.
func (p *Pipeline) enrichNode(ctx context.Context, state *State) (*State, error) {
	result, err := p.Loop.Run(ctx, state.PendingBeats, state.Arcs, state.Themes)
	if err != nil {
		return state, err
	}
	state.PendingBeats = result.FinalBeats
	state.LoopHistory = append(state.LoopHistory, result.Iterations...)
	if result.FinalAnalysis != nil {
		state.LatestAnalysis = result.FinalAnalysis
		state.AnalysisHistory = append(state.AnalysisHistory, result.FinalAnalysis)
	}
	return state, nil
}

// commitNode moves pending beats into the completed set. The only node
// with no failure path.
func (p *Pipeline) commitNode(ctx context.Context, state *State) (*State, error) {
	state.CompletedBeats = append(state.CompletedBeats, state.PendingBeats...)
	state.PendingBeats = nil
	return state, nil
}
