package enrich

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/vampirenirmal/narrative/internal/agent"
	"github.com/vampirenirmal/narrative/internal/beat"
)

const (
	// DefaultTargetQuality is the confidence level at which a beat needs
	// no further enrichment.
	DefaultTargetQuality = 0.7
	// DefaultMaxIterations bounds the per-beat enrichment loop.
	DefaultMaxIterations = 3
	// qualityBump is the fixed score increment applied per iteration.
	qualityBump = 0.1
)

// Enricher raises a beat's emotional quality through bounded rewrite
// passes. The generator is optional: without one, enrichment still
// records techniques and bumps scores but leaves text untouched.
type Enricher struct {
	targetQuality float64
	maxIterations int
	generator     agent.Generator
	logger        *slog.Logger
}

type Option func(*Enricher)

// WithTargetQuality overrides the confidence target.
func WithTargetQuality(target float64) Option {
	return func(e *Enricher) {
		if target > 0 {
			e.targetQuality = beat.ClampScore(target)
		}
	}
}

// WithMaxIterations overrides the per-beat iteration cap.
func WithMaxIterations(max int) Option {
	return func(e *Enricher) {
		if max > 0 {
			e.maxIterations = max
		}
	}
}

// WithGenerator attaches the text-generation capability used for rewrites.
func WithGenerator(g agent.Generator) Option {
	return func(e *Enricher) {
		e.generator = g
	}
}

func New(logger *slog.Logger, opts ...Option) *Enricher {
	if logger == nil {
		logger = slog.Default()
	}
	e := &Enricher{
		targetQuality: DefaultTargetQuality,
		maxIterations: DefaultMaxIterations,
		logger:        logger.With("component", "enricher"),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TargetQuality returns the configured confidence target.
func (e *Enricher) TargetQuality() float64 {
	return e.targetQuality
}

// EnrichedBeatResult reports one beat's journey through the enrichment loop.
type EnrichedBeatResult struct {
	OriginalBeat     *beat.StoryBeat `json:"original_beat"`
	FinalBeat        *beat.StoryBeat `json:"final_beat"`
	Iterations       int             `json:"iterations"`
	WasEnriched      bool            `json:"was_enriched"`
	ImprovementDelta float64         `json:"improvement_delta"`
	Notes            []string        `json:"notes,omitempty"`
}

// EnrichBeat runs the bounded enrichment loop on a single beat. A rewrite
// failure keeps the prior text and the loop continues; enrichment never
// returns an error.
func (e *Enricher) EnrichBeat(ctx context.Context, b *beat.StoryBeat) *EnrichedBeatResult {
	result := &EnrichedBeatResult{OriginalBeat: b, FinalBeat: b}
	if b == nil {
		result.Notes = append(result.Notes, "no beat provided")
		return result
	}

	initial := AnalyzeBeat(b)
	if initial.Confidence >= e.targetQuality || b.QualityScore >= 1 {
		result.Notes = append(result.Notes, "beat already meets quality target")
		return result
	}

	working := b.Clone()
	analysis := initial

	for i := 0; i < e.maxIterations; i++ {
		if ctx.Err() != nil {
			result.Notes = append(result.Notes, "enrichment cancelled")
			break
		}

		techniques := SelectTechniques(analysis)
		if len(techniques) == 0 {
			result.Notes = append(result.Notes, "no applicable techniques")
			break
		}

		if e.generator != nil {
			rewritten, err := e.generator.Generate(ctx, rewritePrompt(working, techniques))
			if err != nil {
				e.logger.Warn("Rewrite failed, keeping prior text",
					"beat_id", working.BeatID,
					"iteration", i+1,
					"error", err)
				result.Notes = append(result.Notes, fmt.Sprintf("rewrite failed on iteration %d: %v", i+1, err))
			} else if rewritten != "" {
				working.RawText = rewritten
			}
		}

		working.EnrichmentsApplied = append(working.EnrichmentsApplied, techniques...)
		working.QualityScore = beat.ClampScore(working.QualityScore + qualityBump)
		result.Iterations++

		analysis = AnalyzeBeat(working)
		if analysis.Confidence >= e.targetQuality {
			break
		}
	}

	result.FinalBeat = working
	result.WasEnriched = result.Iterations > 0
	result.ImprovementDelta = analysis.Confidence - initial.Confidence

	e.logger.Debug("Beat enrichment finished",
		"beat_id", b.BeatID,
		"iterations", result.Iterations,
		"delta", result.ImprovementDelta)

	return result
}

// EnrichBeats processes beats strictly one at a time in input order. Each
// beat's enrichment completes before the next begins.
func (e *Enricher) EnrichBeats(ctx context.Context, beats []*beat.StoryBeat) []*EnrichedBeatResult {
	results := make([]*EnrichedBeatResult, 0, len(beats))
	for _, b := range beats {
		results = append(results, e.EnrichBeat(ctx, b))
	}
	return results
}

// rewritePrompt assembles the instruction block handed to the generation
// capability. Technique guidance is passed through verbatim.
func rewritePrompt(b *beat.StoryBeat, techniques []string) string {
	var sb strings.Builder
	sb.WriteString("Rewrite the following story beat to deepen its emotional impact.\n\n")
	sb.WriteString("Beat:\n")
	sb.WriteString(b.RawText)
	sb.WriteString("\n\nApply these techniques:\n")
	for _, name := range techniques {
		technique, ok := Catalogue(name)
		if !ok {
			continue
		}
		for _, guidance := range technique.Guidance {
			sb.WriteString(fmt.Sprintf("- [%s] %s\n", technique.Name, guidance))
		}
	}
	sb.WriteString("\nReturn only the rewritten beat text.")
	return sb.String()
}
