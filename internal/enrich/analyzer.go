package enrich

import (
	"github.com/vampirenirmal/narrative/internal/beat"
)

// Confidence scoring is deliberately shallow: presence of fields and text
// length tiers, nothing semantic.
const (
	baseConfidence      = 0.3
	dialogueBonus       = 0.15
	internalBonus       = 0.20
	actionBonus         = 0.10
	lengthBonus         = 0.10
	lengthTierOne       = 200
	lengthTierTwo       = 500
	intensityMultiplier = 1.2
)

// EmotionalAnalysis is the analyzer's verdict on a single beat.
type EmotionalAnalysis struct {
	BeatID         string  `json:"beat_id"`
	PrimaryEmotion string  `json:"primary_emotion"`
	Confidence     float64 `json:"confidence"`
	Intensity      float64 `json:"intensity"`
	HasDialogue    bool    `json:"has_dialogue"`
	HasInternal    bool    `json:"has_internal"`
	HasAction      bool    `json:"has_action"`
	TextLength     int     `json:"text_length"`
}

// AnalyzeBeat scores a beat's emotional quality from its surface features.
// Pure function of the beat: same beat, same analysis.
func AnalyzeBeat(b *beat.StoryBeat) EmotionalAnalysis {
	analysis := EmotionalAnalysis{
		PrimaryEmotion: beat.EmotionAnticipation,
		Confidence:     baseConfidence,
	}
	if b == nil {
		analysis.Confidence = 0
		analysis.Intensity = 0
		return analysis
	}

	analysis.BeatID = b.BeatID
	analysis.TextLength = len(b.RawText)

	if b.Dialogue != "" {
		analysis.HasDialogue = true
		analysis.Confidence += dialogueBonus
	}
	if b.Internal != "" {
		analysis.HasInternal = true
		analysis.Confidence += internalBonus
	}
	if b.Action != "" {
		analysis.HasAction = true
		analysis.Confidence += actionBonus
	}
	if analysis.TextLength > lengthTierOne {
		analysis.Confidence += lengthBonus
	}
	if analysis.TextLength > lengthTierTwo {
		analysis.Confidence += lengthBonus
	}

	analysis.Confidence = beat.ClampScore(analysis.Confidence)

	if b.EmotionalTone != "" {
		analysis.PrimaryEmotion = b.EmotionalTone
	}

	analysis.Intensity = analysis.Confidence * intensityMultiplier
	if analysis.Intensity > 1 {
		analysis.Intensity = 1
	}

	return analysis
}
