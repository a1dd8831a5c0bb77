package generate

import (
	"context"
	"errors"
	"testing"

	"github.com/vampirenirmal/narrative/internal/agent"
	"github.com/vampirenirmal/narrative/internal/beat"
)

func testOutlines() []SceneOutline {
	return []SceneOutline{
		{SceneID: "s1", CharacterID: "mara", Summary: "the arrival", Emotion: beat.EmotionFear},
		{SceneID: "s2", CharacterID: "tomas", Summary: "the standoff", Emotion: "brooding"},
		{SceneID: "s3", CharacterID: "mara", Summary: "the departure"},
	}
}

func TestDraftBeatsSequence(t *testing.T) {
	gen := agent.NewMockGenerator()
	drafter := NewDrafter(gen, nil)

	beats, err := drafter.DraftBeats(context.Background(), testOutlines(), 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beats) != 3 {
		t.Fatalf("expected 3 beats, got %d", len(beats))
	}

	for i, b := range beats {
		if b.BeatIndex != 5+i {
			t.Errorf("beat %d: expected index %d, got %d", i, 5+i, b.BeatIndex)
		}
		if b.RawText == "" {
			t.Errorf("beat %d has empty text", i)
		}
	}
	if beats[0].EmotionalTone != beat.EmotionFear {
		t.Errorf("recognized emotion should carry over, got %q", beats[0].EmotionalTone)
	}
	if beats[1].EmotionalTone != "" {
		t.Errorf("unrecognized emotion should be dropped, got %q", beats[1].EmotionalTone)
	}
	if beats[0].CharacterID != "mara" || beats[1].CharacterID != "tomas" {
		t.Error("character ids not carried from outlines")
	}
}

func TestDraftBeatErrorPropagates(t *testing.T) {
	gen := agent.NewMockGenerator()
	gen.Err = errors.New("capability down")
	drafter := NewDrafter(gen, nil)

	if _, err := drafter.DraftBeat(context.Background(), testOutlines()[0], 0); err == nil {
		t.Fatal("generation failure must propagate")
	}
}

func TestDraftBeatNoGenerator(t *testing.T) {
	drafter := NewDrafter(nil, nil)
	if _, err := drafter.DraftBeat(context.Background(), testOutlines()[0], 0); err == nil {
		t.Fatal("missing generator must be an error")
	}
}

func TestDraftConcurrentPreservesOrder(t *testing.T) {
	gen := agent.NewMockGenerator()
	drafter := NewDrafter(gen, nil)

	outlines := testOutlines()
	beats, err := drafter.DraftConcurrent(context.Background(), outlines, 0, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beats) != len(outlines) {
		t.Fatalf("expected %d beats, got %d", len(outlines), len(beats))
	}
	for i, b := range beats {
		if b.BeatIndex != i {
			t.Errorf("position %d holds index %d", i, b.BeatIndex)
		}
		if b.CharacterID != outlines[i].CharacterID {
			t.Errorf("position %d holds character %s, want %s", i, b.CharacterID, outlines[i].CharacterID)
		}
	}
}

func TestDraftConcurrentSingleWorkerFallsBack(t *testing.T) {
	gen := agent.NewMockGenerator()
	drafter := NewDrafter(gen, nil)

	beats, err := drafter.DraftConcurrent(context.Background(), testOutlines(), 0, 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(beats) != 3 {
		t.Errorf("expected 3 beats, got %d", len(beats))
	}
}

func TestDraftConcurrentFailureAborts(t *testing.T) {
	gen := agent.NewMockGenerator()
	gen.Err = errors.New("capability down")
	drafter := NewDrafter(gen, nil)

	if _, err := drafter.DraftConcurrent(context.Background(), testOutlines(), 0, 2); err == nil {
		t.Fatal("expected failure to abort concurrent drafting")
	}
}
