package beat

import "testing"

func TestNewBeatAssignsUniqueIDs(t *testing.T) {
	a := NewBeat(0, "mara", "one")
	b := NewBeat(1, "mara", "two")

	if a.BeatID == "" || a.BeatID == b.BeatID {
		t.Errorf("expected unique non-empty beat ids, got %q and %q", a.BeatID, b.BeatID)
	}
	if a.BeatIndex != 0 || b.BeatIndex != 1 {
		t.Errorf("unexpected indexes: %d, %d", a.BeatIndex, b.BeatIndex)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	original := NewBeat(3, "mara", "She waited.")
	original.EnrichmentsApplied = []string{"stakes"}
	original.Metadata = map[string]interface{}{"scene_id": "s1"}

	clone := original.Clone()
	clone.RawText = "She ran."
	clone.EnrichmentsApplied = append(clone.EnrichmentsApplied, "sensory")
	clone.Metadata["scene_id"] = "s2"

	if original.RawText != "She waited." {
		t.Error("clone mutation leaked into original text")
	}
	if len(original.EnrichmentsApplied) != 1 {
		t.Errorf("clone mutation leaked into enrichments: %v", original.EnrichmentsApplied)
	}
	if original.Metadata["scene_id"] != "s1" {
		t.Error("clone mutation leaked into metadata")
	}
}

func TestClampScore(t *testing.T) {
	cases := []struct{ in, want float64 }{
		{-0.5, 0},
		{0, 0},
		{0.42, 0.42},
		{1, 1},
		{1.7, 1},
	}
	for _, c := range cases {
		if got := ClampScore(c.in); got != c.want {
			t.Errorf("ClampScore(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIsRecognizedEmotion(t *testing.T) {
	for _, e := range []string{EmotionJoy, EmotionFear, EmotionAnticipation} {
		if !IsRecognizedEmotion(e) {
			t.Errorf("%s should be recognized", e)
		}
	}
	if IsRecognizedEmotion("melancholy") {
		t.Error("melancholy is not a primary emotion")
	}
}
