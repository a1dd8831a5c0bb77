package feedback

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vampirenirmal/narrative/internal/beat"
	"github.com/vampirenirmal/narrative/internal/enrich"
)

const (
	// DefaultMaxIterations bounds the feedback loop; termination is
	// guaranteed by this cap, convergence is not.
	DefaultMaxIterations = 3
	// DefaultQualityTarget is the overall score that ends the loop early.
	DefaultQualityTarget = 0.7
)

// LoopConfig tunes the bounded feedback loop.
type LoopConfig struct {
	MaxIterations int     `json:"max_iterations"`
	QualityTarget float64 `json:"quality_target"`
}

func DefaultLoopConfig() LoopConfig {
	return LoopConfig{
		MaxIterations: DefaultMaxIterations,
		QualityTarget: DefaultQualityTarget,
	}
}

// LoopResult carries the final analysis, the working beat set after the
// last enrichment pass, and the full iteration history. History is an
// explicit accumulator: the loop holds no state between Run calls.
type LoopResult struct {
	FinalAnalysis *MultiDimensionalAnalysis `json:"final_analysis"`
	FinalBeats    []*beat.StoryBeat         `json:"final_beats"`
	Iterations    []FeedbackIteration       `json:"iterations"`
	Converged     bool                      `json:"converged"`
}

// Loop drives analyze → enrich → re-analyze until the quality target is
// met, the gap list empties, or the iteration cap runs out.
type Loop struct {
	analyzer *Analyzer
	enricher *enrich.Enricher
	config   LoopConfig
	logger   *slog.Logger
}

func NewLoop(analyzer *Analyzer, enricher *enrich.Enricher, config LoopConfig, logger *slog.Logger) *Loop {
	if logger == nil {
		logger = slog.Default()
	}
	if config.MaxIterations <= 0 {
		config.MaxIterations = DefaultMaxIterations
	}
	if config.QualityTarget <= 0 {
		config.QualityTarget = DefaultQualityTarget
	}
	return &Loop{
		analyzer: analyzer,
		enricher: enricher,
		config:   config,
		logger:   logger.With("component", "feedback_loop"),
	}
}

// Run executes the bounded loop. It performs at most MaxIterations+1
// analysis passes. Cancellation stops between iterations with the partial
// history intact.
func (l *Loop) Run(ctx context.Context, beats []*beat.StoryBeat, arcs map[string]*beat.CharacterArcState, themes []string) (*LoopResult, error) {
	result := &LoopResult{FinalBeats: beats}
	working := beats

	for i := 1; i <= l.config.MaxIterations; i++ {
		if err := ctx.Err(); err != nil {
			result.FinalBeats = working
			return result, fmt.Errorf("feedback loop cancelled on iteration %d: %w", i, err)
		}

		analysis := l.analyzer.Analyze(working, arcs, themes)

		if analysis.OverallScore >= l.config.QualityTarget || len(analysis.Gaps) == 0 {
			result.FinalAnalysis = analysis
			result.FinalBeats = working
			result.Converged = true
			result.Iterations = append(result.Iterations, FeedbackIteration{
				Iteration:     i,
				Timestamp:     time.Now(),
				GapsRemaining: len(analysis.Gaps),
				Actions:       []string{"quality target reached"},
			})
			l.logger.Info("Feedback loop converged",
				"iteration", i,
				"overall", analysis.OverallScore,
				"gaps", len(analysis.Gaps))
			return result, nil
		}

		enriched := l.enricher.EnrichBeats(ctx, working)

		next := make([]*beat.StoryBeat, 0, len(working))
		enrichedCount := 0
		deltaSum := 0.0
		for _, r := range enriched {
			next = append(next, r.FinalBeat)
			if r.WasEnriched {
				enrichedCount++
			}
			deltaSum += r.ImprovementDelta
		}
		working = next

		iteration := FeedbackIteration{
			Iteration:     i,
			Timestamp:     time.Now(),
			GapsAddressed: enrichedCount,
			GapsRemaining: len(analysis.Gaps),
			QualityDelta:  deltaSum / float64(max(1, len(enriched))),
			Actions: []string{
				fmt.Sprintf("enriched %d of %d beats", enrichedCount, len(enriched)),
			},
		}
		result.Iterations = append(result.Iterations, iteration)

		l.logger.Debug("Feedback iteration complete",
			"iteration", i,
			"enriched", enrichedCount,
			"gaps_remaining", len(analysis.Gaps),
			"quality_delta", iteration.QualityDelta)
	}

	// Cap exhausted; report the final state regardless of convergence.
	final := l.analyzer.Analyze(working, arcs, themes)
	result.FinalAnalysis = final
	result.FinalBeats = working
	result.Converged = final.OverallScore >= l.config.QualityTarget || len(final.Gaps) == 0

	l.logger.Info("Feedback loop exhausted iteration cap",
		"iterations", l.config.MaxIterations,
		"overall", final.OverallScore,
		"converged", result.Converged)

	return result, nil
}
