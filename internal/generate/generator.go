package generate

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vampirenirmal/narrative/internal/agent"
	"github.com/vampirenirmal/narrative/internal/beat"
)

// SceneOutline is the input to beat drafting: one planned scene moment.
type SceneOutline struct {
	SceneID     string `json:"scene_id" yaml:"scene_id"`
	CharacterID string `json:"character_id" yaml:"character_id"`
	Summary     string `json:"summary" yaml:"summary"`
	Emotion     string `json:"emotion,omitempty" yaml:"emotion,omitempty"`
}

// Drafter turns scene outlines into draft story beats through the
// generation capability. Drafting is sequential by default; the
// concurrent path lives in pool.go for callers that do not depend on
// the core loop's ordering guarantees.
type Drafter struct {
	generator agent.Generator
	logger    *slog.Logger
}

func NewDrafter(generator agent.Generator, logger *slog.Logger) *Drafter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Drafter{
		generator: generator,
		logger:    logger.With("component", "drafter"),
	}
}

// DraftBeat generates one beat for an outline at the given sequence
// position. A generation failure propagates; the caller treats it as a
// node failure.
func (d *Drafter) DraftBeat(ctx context.Context, outline SceneOutline, index int) (*beat.StoryBeat, error) {
	if d.generator == nil {
		return nil, fmt.Errorf("drafting scene %s: no generator configured", outline.SceneID)
	}

	text, err := d.generator.Generate(ctx, draftPrompt(outline))
	if err != nil {
		return nil, fmt.Errorf("drafting scene %s: %w", outline.SceneID, err)
	}

	b := beat.NewBeat(index, outline.CharacterID, strings.TrimSpace(text))
	if beat.IsRecognizedEmotion(outline.Emotion) {
		b.EmotionalTone = outline.Emotion
	}
	b.Metadata = map[string]interface{}{"scene_id": outline.SceneID}

	d.logger.Debug("Beat drafted",
		"scene_id", outline.SceneID,
		"beat_index", index,
		"text_len", len(b.RawText))

	return b, nil
}

// DraftBeats drafts all outlines in order with strictly increasing beat
// indexes starting at startIndex.
func (d *Drafter) DraftBeats(ctx context.Context, outlines []SceneOutline, startIndex int) ([]*beat.StoryBeat, error) {
	beats := make([]*beat.StoryBeat, 0, len(outlines))
	for i, outline := range outlines {
		b, err := d.DraftBeat(ctx, outline, startIndex+i)
		if err != nil {
			return beats, err
		}
		beats = append(beats, b)
	}
	return beats, nil
}

func draftPrompt(outline SceneOutline) string {
	var sb strings.Builder
	sb.WriteString("Write one story beat for the following scene moment.\n\n")
	sb.WriteString(fmt.Sprintf("Character: %s\n", outline.CharacterID))
	sb.WriteString(fmt.Sprintf("Moment: %s\n", outline.Summary))
	if outline.Emotion != "" {
		sb.WriteString(fmt.Sprintf("Dominant emotion: %s\n", outline.Emotion))
	}
	sb.WriteString("\nWrite 2-4 paragraphs of prose. Return only the beat text.")
	return sb.String()
}
