package beat

import (
	"testing"
)

func TestRegisterCharacterDefaults(t *testing.T) {
	tracker := NewArcTracker(nil)
	arc := tracker.RegisterCharacter("mara", "Mara", "")

	if arc.ArcType != ArcTypeGrowth {
		t.Errorf("expected default arc type %q, got %q", ArcTypeGrowth, arc.ArcType)
	}
	if arc.CurrentPosition != 0 {
		t.Errorf("expected position 0, got %d", arc.CurrentPosition)
	}
	if tracker.Arc("mara") == nil {
		t.Fatal("registered character not retrievable")
	}
}

func TestRecordBeatTracksPositionAndTrajectory(t *testing.T) {
	tracker := NewArcTracker(nil)
	tracker.RegisterCharacter("mara", "Mara", "fall")

	b1 := NewBeat(0, "mara", "She watched the door.")
	b1.EmotionalTone = EmotionFear
	b2 := NewBeat(1, "mara", "The knock came again.")
	b2.EmotionalTone = "wistful" // not a recognized primary

	if !tracker.RecordBeat("mara", b1) {
		t.Fatal("recording beat for registered character failed")
	}
	tracker.RecordBeat("mara", b2)

	arc := tracker.Arc("mara")
	if arc.CurrentPosition != 2 {
		t.Errorf("expected position 2, got %d", arc.CurrentPosition)
	}
	if len(arc.ActiveBeats) != 2 {
		t.Errorf("expected 2 active beats, got %d", len(arc.ActiveBeats))
	}
	if len(arc.EmotionalTrajectory) != 1 || arc.EmotionalTrajectory[0] != EmotionFear {
		t.Errorf("expected trajectory [fear], got %v", arc.EmotionalTrajectory)
	}
}

func TestRecordBeatUnregisteredCharacter(t *testing.T) {
	tracker := NewArcTracker(nil)
	if tracker.RecordBeat("ghost", NewBeat(0, "ghost", "text")) {
		t.Error("recording a beat for an unregistered character should fail")
	}
}

func TestAssessConsistency(t *testing.T) {
	tracker := NewArcTracker(nil)
	tracker.RegisterCharacter("mara", "Mara", "")

	if got := tracker.AssessConsistency("mara"); got != 0 {
		t.Errorf("beat-less arc: expected 0, got %v", got)
	}
	if got := tracker.AssessConsistency("ghost"); got != 0 {
		t.Errorf("unregistered: expected 0, got %v", got)
	}

	for i := 0; i < 4; i++ {
		tracker.RecordBeat("mara", NewBeat(i, "mara", "text"))
	}
	if got := tracker.AssessConsistency("mara"); got != 0.4 {
		t.Errorf("4 beats: expected 0.4, got %v", got)
	}

	for i := 4; i < 15; i++ {
		tracker.RecordBeat("mara", NewBeat(i, "mara", "text"))
	}
	if got := tracker.AssessConsistency("mara"); got != 1.0 {
		t.Errorf("15 beats: expected cap at 1.0, got %v", got)
	}
}
