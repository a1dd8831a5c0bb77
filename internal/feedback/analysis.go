package feedback

import (
	"time"

	"github.com/vampirenirmal/narrative/internal/beat"
	"github.com/vampirenirmal/narrative/internal/enrich"
)

// Character development classifications.
const (
	CharacterNoBeats        = "no beats"
	CharacterUnderdeveloped = "underdeveloped"
	CharacterDeveloping     = "developing"
)

// Theme development classifications.
const (
	ThemeStrong     = "strong"
	ThemeDeveloping = "developing"
	ThemeWeak       = "weak"
)

// CharacterAnalysis is the character dimension's verdict for one arc.
type CharacterAnalysis struct {
	CharacterID      string  `json:"character_id"`
	BeatCount        int     `json:"beat_count"`
	ConsistencyScore float64 `json:"consistency_score"`
	Status           string  `json:"status"`
}

// ThemeAnalysis is the thematic dimension's verdict for one theme.
type ThemeAnalysis struct {
	Theme         string  `json:"theme"`
	PresenceScore float64 `json:"presence_score"`
	Development   string  `json:"development"`
	BeatsTouching int     `json:"beats_touching"`
}

// MultiDimensionalAnalysis is the result of one full analysis pass over a
// beat set. Gaps are derived here and live only as long as the analysis.
type MultiDimensionalAnalysis struct {
	BeatAnalyses      []enrich.EmotionalAnalysis   `json:"beat_analyses"`
	CharacterAnalyses map[string]CharacterAnalysis `json:"character_analyses"`
	ThemeAnalyses     []ThemeAnalysis              `json:"theme_analyses"`
	Gaps              []beat.Gap                   `json:"gaps"`
	OverallScore      float64                      `json:"overall_score"`
	EmotionalScore    float64                      `json:"emotional_score"`
	CharacterScore    float64                      `json:"character_score"`
	ThematicScore     float64                      `json:"thematic_score"`
	Recommendations   []string                     `json:"recommendations,omitempty"`
	Timestamp         time.Time                    `json:"timestamp"`
}

// CriticalGaps returns only the critical-severity subset.
func (a *MultiDimensionalAnalysis) CriticalGaps() []beat.Gap {
	var critical []beat.Gap
	for _, g := range a.Gaps {
		if g.Severity == beat.SeverityCritical {
			critical = append(critical, g)
		}
	}
	return critical
}

// FeedbackIteration logs one pass of the bounded enrichment loop.
type FeedbackIteration struct {
	Iteration     int       `json:"iteration"`
	Timestamp     time.Time `json:"timestamp"`
	GapsAddressed int       `json:"gaps_addressed"`
	GapsRemaining int       `json:"gaps_remaining"`
	QualityDelta  float64   `json:"quality_delta"`
	Actions       []string  `json:"actions,omitempty"`
}
