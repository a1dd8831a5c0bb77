package enrich

// Technique names form a fixed catalogue. The guidance strings are not
// interpreted by the enricher; they travel as instructions into the
// rewrite prompt for the generation capability.
const (
	TechniqueStakes   = "stakes"
	TechniqueSensory  = "sensory"
	TechniqueInternal = "internal"
	TechniqueContrast = "contrast"
	TechniqueDialogue = "dialogue"
)

// Technique pairs a name with its generation guidance.
type Technique struct {
	Name     string   `json:"name"`
	Guidance []string `json:"guidance"`
}

var techniqueCatalogue = map[string]Technique{
	TechniqueStakes: {
		Name: TechniqueStakes,
		Guidance: []string{
			"Raise what the character stands to lose in this moment",
			"Make the cost of failure concrete and immediate",
		},
	},
	TechniqueSensory: {
		Name: TechniqueSensory,
		Guidance: []string{
			"Ground the emotion in physical sensation",
			"Add one specific sensory detail per paragraph",
			"Prefer texture and sound over visual description",
		},
	},
	TechniqueInternal: {
		Name: TechniqueInternal,
		Guidance: []string{
			"Show the character's unspoken reaction",
			"Let the interior thought contradict the spoken line",
		},
	},
	TechniqueContrast: {
		Name: TechniqueContrast,
		Guidance: []string{
			"Set the dominant emotion against a quieter counter-note",
			"Undercut the peak moment with one mundane detail",
		},
	},
	TechniqueDialogue: {
		Name: TechniqueDialogue,
		Guidance: []string{
			"Carry the emotional shift through spoken exchange",
			"Cut dialogue tags where the voice is already clear",
		},
	},
}

// Catalogue returns the technique definition for a name, if it exists.
func Catalogue(name string) (Technique, bool) {
	t, ok := techniqueCatalogue[name]
	return t, ok
}

// Thresholds driving technique selection.
const (
	intensityThreshold  = 0.5
	confidenceThreshold = 0.6
)

// SelectTechniques applies the fixed rule table to one analysis. The
// result is deterministic: same analysis, same technique names.
func SelectTechniques(analysis EmotionalAnalysis) []string {
	var selected []string
	if analysis.Intensity < intensityThreshold {
		selected = append(selected, TechniqueStakes)
	}
	if analysis.Confidence < confidenceThreshold {
		selected = append(selected, TechniqueSensory, TechniqueInternal)
	}
	if analysis.Intensity >= intensityThreshold && analysis.Confidence >= confidenceThreshold {
		selected = append(selected, TechniqueContrast)
	}
	return selected
}
