package beat

import (
	"time"

	"github.com/google/uuid"
)

// Shared narrative data model used across enrichment, feedback and graph execution.

// StoryBeat is one narrative unit: a slice of story content plus the
// emotion and quality metadata the analysis layers operate on.
type StoryBeat struct {
	BeatID             string                 `json:"beat_id"`
	BeatIndex          int                    `json:"beat_index"`
	CharacterID        string                 `json:"character_id"`
	Dialogue           string                 `json:"dialogue,omitempty"`
	Action             string                 `json:"action,omitempty"`
	Internal           string                 `json:"internal,omitempty"`
	RawText            string                 `json:"raw_text"`
	EmotionalTone      string                 `json:"emotional_tone,omitempty"`
	EmotionConfidence  float64                `json:"emotion_confidence"`
	ThemeResonance     float64                `json:"theme_resonance"`
	EnrichmentsApplied []string               `json:"enrichments_applied,omitempty"`
	QualityScore       float64                `json:"quality_score"`
	Metadata           map[string]interface{} `json:"metadata,omitempty"`
	Timestamp          time.Time              `json:"timestamp"`
}

// NewBeat creates a beat with a fresh UUID at the given sequence position.
func NewBeat(index int, characterID, rawText string) *StoryBeat {
	return &StoryBeat{
		BeatID:      uuid.NewString(),
		BeatIndex:   index,
		CharacterID: characterID,
		RawText:     rawText,
		Timestamp:   time.Now(),
	}
}

// Clone returns a deep copy so an enrichment pass can mutate its working
// beat without touching the caller's original.
func (b *StoryBeat) Clone() *StoryBeat {
	if b == nil {
		return nil
	}
	clone := *b
	clone.EnrichmentsApplied = append([]string(nil), b.EnrichmentsApplied...)
	if b.Metadata != nil {
		clone.Metadata = make(map[string]interface{}, len(b.Metadata))
		for k, v := range b.Metadata {
			clone.Metadata[k] = v
		}
	}
	return &clone
}

// ClampScore bounds a quality or dimension score to [0,1].
func ClampScore(s float64) float64 {
	if s < 0 {
		return 0
	}
	if s > 1 {
		return 1
	}
	return s
}

// Primary emotions recognized by arc trajectories and the analyzer default.
const (
	EmotionJoy          = "joy"
	EmotionSadness      = "sadness"
	EmotionAnger        = "anger"
	EmotionFear         = "fear"
	EmotionTrust        = "trust"
	EmotionDisgust      = "disgust"
	EmotionSurprise     = "surprise"
	EmotionAnticipation = "anticipation"
)

var recognizedEmotions = map[string]bool{
	EmotionJoy:          true,
	EmotionSadness:      true,
	EmotionAnger:        true,
	EmotionFear:         true,
	EmotionTrust:        true,
	EmotionDisgust:      true,
	EmotionSurprise:     true,
	EmotionAnticipation: true,
}

// IsRecognizedEmotion reports whether e is one of the eight primaries.
func IsRecognizedEmotion(e string) bool {
	return recognizedEmotions[e]
}
