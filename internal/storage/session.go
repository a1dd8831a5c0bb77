package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	"github.com/vampirenirmal/narrative/internal/graph"
)

// SessionStore checkpoints graph state as JSON under
// sessions/<session-id>/state.json. It satisfies graph.SessionLoader.
type SessionStore struct {
	store  Store
	logger *slog.Logger
}

func NewSessionStore(store Store, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{
		store:  store,
		logger: logger.With("component", "session_store"),
	}
}

func statePath(sessionID string) string {
	return filepath.Join("sessions", sessionID, "state.json")
}

// LoadState restores a session's checkpoint. A session without a
// checkpoint returns found=false with no error.
func (s *SessionStore) LoadState(ctx context.Context, sessionID string) (*graph.State, bool, error) {
	path := statePath(sessionID)
	if !s.store.Exists(ctx, path) {
		return nil, false, nil
	}

	data, err := s.store.Load(ctx, path)
	if err != nil {
		return nil, false, fmt.Errorf("loading session state: %w", err)
	}

	var state graph.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, false, fmt.Errorf("parsing session state: %w", err)
	}

	s.logger.Debug("Session state loaded",
		"session_id", sessionID,
		"completed_beats", len(state.CompletedBeats))

	return &state, true, nil
}

// SaveState checkpoints the state for later resumption.
func (s *SessionStore) SaveState(ctx context.Context, state *graph.State) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling session state: %w", err)
	}
	if err := s.store.Save(ctx, statePath(state.SessionID), data); err != nil {
		return fmt.Errorf("saving session state: %w", err)
	}

	s.logger.Debug("Session state saved",
		"session_id", state.SessionID,
		"pending_beats", len(state.PendingBeats),
		"completed_beats", len(state.CompletedBeats))

	return nil
}

// ListSessions returns known session ids, sorted.
func (s *SessionStore) ListSessions(ctx context.Context) ([]string, error) {
	matches, err := s.store.List(ctx, filepath.Join("sessions", "*", "state.json"))
	if err != nil {
		return nil, err
	}

	var ids []string
	for _, match := range matches {
		ids = append(ids, filepath.Base(filepath.Dir(match)))
	}
	sort.Strings(ids)
	return ids, nil
}
