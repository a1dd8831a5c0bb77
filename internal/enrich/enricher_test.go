package enrich

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vampirenirmal/narrative/internal/agent"
	"github.com/vampirenirmal/narrative/internal/beat"
)

func strongBeat() *beat.StoryBeat {
	return &beat.StoryBeat{
		BeatID:   "strong",
		Dialogue: "d",
		Internal: "i",
		Action:   "a",
		RawText:  strings.Repeat("x", 300),
	}
}

func weakBeat() *beat.StoryBeat {
	return &beat.StoryBeat{BeatID: "weak", RawText: "short"}
}

func TestEnrichBeatAlreadyAtTarget(t *testing.T) {
	e := New(nil, WithTargetQuality(0.7))
	result := e.EnrichBeat(context.Background(), strongBeat())

	if result.WasEnriched {
		t.Error("beat at target should not be enriched")
	}
	if result.Iterations != 0 {
		t.Errorf("expected 0 iterations, got %d", result.Iterations)
	}
	if len(result.Notes) == 0 {
		t.Error("expected a note explaining the early return")
	}
}

func TestEnrichBeatIdempotentAtFullQuality(t *testing.T) {
	b := weakBeat()
	b.QualityScore = 1.0

	e := New(nil)
	result := e.EnrichBeat(context.Background(), b)
	if result.WasEnriched {
		t.Error("further calls at quality 1.0 must report wasEnriched=false")
	}
}

func TestEnrichBeatBoundedIterations(t *testing.T) {
	e := New(nil, WithMaxIterations(3), WithTargetQuality(0.99))
	result := e.EnrichBeat(context.Background(), weakBeat())

	if result.Iterations > 3 {
		t.Errorf("iterations %d exceeded the cap", result.Iterations)
	}
	if !result.WasEnriched {
		t.Error("weak beat should have been enriched")
	}
	if result.OriginalBeat.QualityScore != 0 {
		t.Error("original beat mutated during enrichment")
	}
	if result.FinalBeat.QualityScore == 0 {
		t.Error("final beat quality score should have been bumped")
	}
	if len(result.FinalBeat.EnrichmentsApplied) == 0 {
		t.Error("applied techniques should be recorded on the final beat")
	}
}

func TestEnrichBeatRewriteChangesText(t *testing.T) {
	gen := agent.NewMockGenerator()
	gen.Default = "She gripped the rail until her knuckles whitened, " + strings.Repeat("and the wind rose. ", 20)

	e := New(nil, WithGenerator(gen), WithMaxIterations(3))
	result := e.EnrichBeat(context.Background(), weakBeat())

	if len(gen.Calls) == 0 {
		t.Fatal("generator was never invoked")
	}
	if result.FinalBeat.RawText == "short" {
		t.Error("rewrite should have replaced the beat text")
	}
	if result.ImprovementDelta <= 0 {
		t.Errorf("longer rewritten text should raise confidence, delta %v", result.ImprovementDelta)
	}
}

func TestEnrichBeatRewriteFailureTolerated(t *testing.T) {
	gen := agent.NewMockGenerator()
	gen.Err = errors.New("capability down")

	e := New(nil, WithGenerator(gen), WithMaxIterations(2))
	result := e.EnrichBeat(context.Background(), weakBeat())

	if !result.WasEnriched {
		t.Error("rewrite failure should not abort enrichment bookkeeping")
	}
	if result.FinalBeat.RawText != "short" {
		t.Error("failed rewrite must keep prior text")
	}
	found := false
	for _, note := range result.Notes {
		if strings.Contains(note, "rewrite failed") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a rewrite-failure note, got %v", result.Notes)
	}
}

func TestEnrichBeatsSequentialOrder(t *testing.T) {
	e := New(nil)
	beats := []*beat.StoryBeat{weakBeat(), strongBeat(), weakBeat()}
	results := e.EnrichBeats(context.Background(), beats)

	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	for i, r := range results {
		if r.OriginalBeat != beats[i] {
			t.Errorf("result %d out of input order", i)
		}
	}
	if results[1].WasEnriched {
		t.Error("strong beat in the middle should pass through unenriched")
	}
}
