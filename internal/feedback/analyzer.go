package feedback

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/vampirenirmal/narrative/internal/beat"
	"github.com/vampirenirmal/narrative/internal/enrich"
)

const (
	// AdequateThreshold is the overall score below which recommendations fire.
	AdequateThreshold = 0.7

	consistencyDivisor  = 8.0
	consistencyFloor    = 0.5
	themeStrongFloor    = 0.5
	themeDevelopedFloor = 0.2
)

// Analyzer runs the multi-dimensional analysis pass: emotional pacing via
// the enricher's heuristics, character development via arc records, and
// theme presence via plain substring counting.
type Analyzer struct {
	logger *slog.Logger
}

func NewAnalyzer(logger *slog.Logger) *Analyzer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Analyzer{logger: logger.With("component", "analyzer")}
}

// Analyze scores one beat set across all three dimensions and derives the
// gap list. Malformed input (no arcs, no themes, empty beats) degrades to
// zero scores on the affected dimension, never to an error.
func (a *Analyzer) Analyze(beats []*beat.StoryBeat, arcs map[string]*beat.CharacterArcState, themes []string) *MultiDimensionalAnalysis {
	analysis := &MultiDimensionalAnalysis{
		CharacterAnalyses: make(map[string]CharacterAnalysis),
		Timestamp:         time.Now(),
	}

	analysis.EmotionalScore = a.analyzeEmotional(beats, analysis)
	analysis.CharacterScore = a.analyzeCharacters(beats, arcs, analysis)
	analysis.ThematicScore = a.analyzeThemes(beats, themes, analysis)

	analysis.OverallScore = beat.ClampScore(
		(analysis.EmotionalScore + analysis.CharacterScore + analysis.ThematicScore) / 3.0)

	a.recommend(analysis)

	a.logger.Debug("Analysis pass complete",
		"beats", len(beats),
		"overall", analysis.OverallScore,
		"gaps", len(analysis.Gaps))

	return analysis
}

func (a *Analyzer) analyzeEmotional(beats []*beat.StoryBeat, analysis *MultiDimensionalAnalysis) float64 {
	total := 0.0
	for _, b := range beats {
		ba := enrich.AnalyzeBeat(b)
		analysis.BeatAnalyses = append(analysis.BeatAnalyses, ba)
		total += ba.Confidence
	}
	analysis.Gaps = append(analysis.Gaps, enrich.IdentifyGaps(beats)...)
	return total / float64(max(1, len(beats)))
}

func (a *Analyzer) analyzeCharacters(beats []*beat.StoryBeat, arcs map[string]*beat.CharacterArcState, analysis *MultiDimensionalAnalysis) float64 {
	total := 0.0
	for id, arc := range arcs {
		var touching []string
		for _, b := range beats {
			if b.CharacterID == id {
				touching = append(touching, b.BeatID)
			}
		}

		ca := CharacterAnalysis{
			CharacterID: id,
			BeatCount:   len(touching),
		}
		ca.ConsistencyScore = float64(len(touching)) / consistencyDivisor
		if ca.ConsistencyScore > 1 {
			ca.ConsistencyScore = 1
		}

		switch {
		case len(touching) == 0:
			ca.Status = CharacterNoBeats
			analysis.Gaps = append(analysis.Gaps, beat.Gap{
				Type:        beat.GapCharacterMissing,
				Severity:    beat.SeverityCritical,
				Description: fmt.Sprintf("character %s has no beats in this sequence", displayName(arc)),
				Suggestion:  "give the character at least one beat before the next pass",
				Dimension:   beat.DimensionCharacter,
			})
		case len(touching) <= 2:
			ca.Status = CharacterUnderdeveloped
		default:
			ca.Status = CharacterDeveloping
		}

		if ca.ConsistencyScore < consistencyFloor {
			analysis.Gaps = append(analysis.Gaps, beat.Gap{
				Type:          beat.GapCharacterStatic,
				Severity:      beat.SeverityMajor,
				Description:   fmt.Sprintf("character %s shows little development (%d beats)", displayName(arc), len(touching)),
				AffectedBeats: touching,
				Suggestion:    "add beats that move this character's arc forward",
				Dimension:     beat.DimensionCharacter,
			})
		}

		analysis.CharacterAnalyses[id] = ca
		total += ca.ConsistencyScore
	}
	return total / float64(max(1, len(arcs)))
}

func (a *Analyzer) analyzeThemes(beats []*beat.StoryBeat, themes []string, analysis *MultiDimensionalAnalysis) float64 {
	total := 0.0
	for _, theme := range themes {
		touching := 0
		for _, b := range beats {
			if beatMentionsTheme(b, theme) {
				touching++
			}
		}

		ta := ThemeAnalysis{
			Theme:         theme,
			BeatsTouching: touching,
			PresenceScore: float64(touching) / float64(max(1, len(beats))),
		}
		switch {
		case ta.PresenceScore > themeStrongFloor:
			ta.Development = ThemeStrong
		case ta.PresenceScore > themeDevelopedFloor:
			ta.Development = ThemeDeveloping
		default:
			ta.Development = ThemeWeak
		}

		if ta.PresenceScore < themeDevelopedFloor {
			analysis.Gaps = append(analysis.Gaps, beat.Gap{
				Type:        beat.GapThemeMissing,
				Severity:    beat.SeverityMinor,
				Description: fmt.Sprintf("theme %q appears in %d of %d beats", theme, touching, len(beats)),
				Suggestion:  fmt.Sprintf("weave %q into upcoming beats", theme),
				Dimension:   beat.DimensionThematic,
			})
		}

		analysis.ThemeAnalyses = append(analysis.ThemeAnalyses, ta)
		total += ta.PresenceScore
	}

	sort.Slice(analysis.ThemeAnalyses, func(i, j int) bool {
		return analysis.ThemeAnalyses[i].Theme < analysis.ThemeAnalyses[j].Theme
	})

	return total / float64(max(1, len(themes)))
}

func (a *Analyzer) recommend(analysis *MultiDimensionalAnalysis) {
	if analysis.OverallScore < AdequateThreshold {
		analysis.Recommendations = append(analysis.Recommendations,
			"overall narrative quality is below the adequate threshold; run another enrichment pass")
	}
	if critical := analysis.CriticalGaps(); len(critical) > 0 {
		analysis.Recommendations = append(analysis.Recommendations,
			fmt.Sprintf("%d critical gap(s) need attention before the sequence can be committed", len(critical)))
	}
}

func beatMentionsTheme(b *beat.StoryBeat, theme string) bool {
	if b == nil || theme == "" {
		return false
	}
	needle := strings.ToLower(theme)
	for _, field := range []string{b.RawText, b.Dialogue, b.Internal, b.Action} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func displayName(arc *beat.CharacterArcState) string {
	if arc.Name != "" {
		return arc.Name
	}
	return arc.CharacterID
}
