package beat

// GapType captures the category of a quality deficiency found by analysis.
type GapType string

const (
	GapEmotionalWeak     GapType = "emotional_weak"
	GapEmotionalFlatness GapType = "emotional_flatness"
	GapEmotionalWhiplash GapType = "emotional_whiplash"
	GapCharacterStatic   GapType = "character_static"
	GapCharacterMissing  GapType = "character_missing"
	GapThemeMissing      GapType = "theme_missing"
	GapPacingIssue       GapType = "pacing_issue"
)

// GapSeverity ranks how urgent a gap is.
type GapSeverity string

const (
	SeverityCritical GapSeverity = "critical"
	SeverityMajor    GapSeverity = "major"
	SeverityMinor    GapSeverity = "minor"
)

// Dimension names the analysis axis that produced a gap.
type Dimension string

const (
	DimensionEmotional  Dimension = "emotional"
	DimensionCharacter  Dimension = "character"
	DimensionThematic   Dimension = "thematic"
	DimensionStructural Dimension = "structural"
)

// Gap is a typed quality deficiency. Gaps are derived data: they are
// recomputed on every analysis pass and never persisted on their own.
type Gap struct {
	Type          GapType     `json:"type"`
	Severity      GapSeverity `json:"severity"`
	Description   string      `json:"description"`
	AffectedBeats []string    `json:"affected_beats,omitempty"`
	Suggestion    string      `json:"suggestion,omitempty"`
	Dimension     Dimension   `json:"dimension"`
}
