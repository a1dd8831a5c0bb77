package enrich

import (
	"fmt"
	"math"

	"github.com/vampirenirmal/narrative/internal/beat"
)

// Adjacency thresholds for emotional pacing problems.
const (
	flatnessWindow    = 0.1
	whiplashThreshold = 0.6
)

// IdentifyGaps walks consecutive beat pairs and flags the two pacing
// problems this layer knows about: flatness (same emotion, near-identical
// intensity) and whiplash (different emotions, large intensity jump).
func IdentifyGaps(beats []*beat.StoryBeat) []beat.Gap {
	var gaps []beat.Gap
	for i := 1; i < len(beats); i++ {
		prev := AnalyzeBeat(beats[i-1])
		curr := AnalyzeBeat(beats[i])
		delta := math.Abs(curr.Intensity - prev.Intensity)

		if prev.PrimaryEmotion == curr.PrimaryEmotion && delta < flatnessWindow {
			gaps = append(gaps, beat.Gap{
				Type:     beat.GapEmotionalFlatness,
				Severity: beat.SeverityMinor,
				Description: fmt.Sprintf("beats %d and %d hold the same %s emotion at near-identical intensity",
					beats[i-1].BeatIndex, beats[i].BeatIndex, curr.PrimaryEmotion),
				AffectedBeats: []string{beats[i-1].BeatID, beats[i].BeatID},
				Suggestion:    "vary intensity or shift the emotional register between adjacent beats",
				Dimension:     beat.DimensionEmotional,
			})
		}

		if prev.PrimaryEmotion != curr.PrimaryEmotion && delta > whiplashThreshold {
			gaps = append(gaps, beat.Gap{
				Type:     beat.GapEmotionalWhiplash,
				Severity: beat.SeverityMajor,
				Description: fmt.Sprintf("beats %d and %d swing from %s to %s with an intensity jump of %.2f",
					beats[i-1].BeatIndex, beats[i].BeatIndex, prev.PrimaryEmotion, curr.PrimaryEmotion, delta),
				AffectedBeats: []string{beats[i-1].BeatID, beats[i].BeatID},
				Suggestion:    "bridge the transition with an intermediate beat",
				Dimension:     beat.DimensionEmotional,
			})
		}
	}
	return gaps
}
