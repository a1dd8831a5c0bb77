package beat

import (
	"log/slog"
	"time"
)

// ArcTypeGrowth is the default developmental arc assigned at registration.
const ArcTypeGrowth = "growth"

// CharacterArcState is the per-character aggregate built up as beats are
// recorded. Arcs live for the session lifetime; there is no removal.
type CharacterArcState struct {
	CharacterID          string    `json:"character_id"`
	Name                 string    `json:"name"`
	ArcType              string    `json:"arc_type"`
	CurrentPosition      int       `json:"current_position"`
	KeyMoments           []string  `json:"key_moments,omitempty"`
	DevelopmentNotes     []string  `json:"development_notes,omitempty"`
	ActiveBeats          []string  `json:"active_beats,omitempty"`
	EmotionalTrajectory  []string  `json:"emotional_trajectory,omitempty"`
	RegisteredAt         time.Time `json:"registered_at"`
}

// ArcTracker holds the character arc registry. Single-writer: the pipeline
// records beats sequentially, so no locking is needed.
type ArcTracker struct {
	arcs   map[string]*CharacterArcState
	logger *slog.Logger
}

func NewArcTracker(logger *slog.Logger) *ArcTracker {
	if logger == nil {
		logger = slog.Default()
	}
	return &ArcTracker{
		arcs:   make(map[string]*CharacterArcState),
		logger: logger.With("component", "arc_tracker"),
	}
}

// RegisterCharacter creates a fresh arc state. Registering an existing id
// replaces the prior state with an empty one.
func (t *ArcTracker) RegisterCharacter(id, name, arcType string) *CharacterArcState {
	if arcType == "" {
		arcType = ArcTypeGrowth
	}
	arc := &CharacterArcState{
		CharacterID:  id,
		Name:         name,
		ArcType:      arcType,
		RegisteredAt: time.Now(),
	}
	t.arcs[id] = arc
	t.logger.Debug("Character registered", "character_id", id, "arc_type", arcType)
	return arc
}

// RecordBeat appends the beat to the character's arc. Unrecognized emotion
// values are kept out of the trajectory but the beat still counts.
func (t *ArcTracker) RecordBeat(characterID string, b *StoryBeat) bool {
	arc, ok := t.arcs[characterID]
	if !ok || b == nil {
		return false
	}
	arc.ActiveBeats = append(arc.ActiveBeats, b.BeatID)
	if IsRecognizedEmotion(b.EmotionalTone) {
		arc.EmotionalTrajectory = append(arc.EmotionalTrajectory, b.EmotionalTone)
	}
	arc.CurrentPosition = len(arc.ActiveBeats)
	return true
}

// AssessConsistency scores how developed an arc is: one point per beat up
// to ten. Unregistered or beat-less characters score zero.
func (t *ArcTracker) AssessConsistency(characterID string) float64 {
	arc, ok := t.arcs[characterID]
	if !ok || len(arc.ActiveBeats) == 0 {
		return 0
	}
	score := float64(len(arc.ActiveBeats)) / 10.0
	if score > 1 {
		return 1
	}
	return score
}

// Arc returns the tracked state for a character, or nil.
func (t *ArcTracker) Arc(characterID string) *CharacterArcState {
	return t.arcs[characterID]
}

// Arcs returns all tracked arc states keyed by character id.
func (t *ArcTracker) Arcs() map[string]*CharacterArcState {
	return t.arcs
}
