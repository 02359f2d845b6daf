package command

import "testing"

func TestMatchContainsPhrase(t *testing.T) {
	r := NewRegistry([]Binding{{Phrase: "start workout", Action: "startWorkout"}})

	match, ok := r.Match("Please start workout now")
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Action != "startWorkout" {
		t.Fatalf("unexpected action: %s", match.Action)
	}
	if match.Phrase != "start workout" {
		t.Fatalf("unexpected phrase: %s", match.Phrase)
	}
	if match.Transcript != "Please start workout now" {
		t.Fatalf("transcript not preserved: %s", match.Transcript)
	}
}

func TestMatchCaseInsensitive(t *testing.T) {
	r := NewRegistry(DefaultBindings())

	for _, utterance := range []string{"START WORKOUT", "Start Workout please", "could you sTaRt WoRkOuT"} {
		match, ok := r.Match(utterance)
		if !ok {
			t.Fatalf("expected match for %q", utterance)
		}
		if match.Action != "startWorkout" {
			t.Fatalf("unexpected action for %q: %s", utterance, match.Action)
		}
	}
}

func TestMatchAllDefaultBindings(t *testing.T) {
	r := NewRegistry(DefaultBindings())

	for _, b := range DefaultBindings() {
		match, ok := r.Match("well " + b.Phrase + " thanks")
		if !ok {
			t.Fatalf("expected match for phrase %q", b.Phrase)
		}
		if match.Phrase != b.Phrase {
			t.Fatalf("phrase %q matched as %q", b.Phrase, match.Phrase)
		}
	}
}

func TestMatchNone(t *testing.T) {
	r := NewRegistry(DefaultBindings())

	if _, ok := r.Match("what's the weather like"); ok {
		t.Fatal("expected no match")
	}
	if _, ok := r.Match(""); ok {
		t.Fatal("expected no match for empty utterance")
	}
}

func TestMatchFirstRegisteredWins(t *testing.T) {
	r := NewRegistry([]Binding{
		{Phrase: "workout", Action: "first"},
		{Phrase: "start workout", Action: "second"},
	})

	match, ok := r.Match("start workout")
	if !ok {
		t.Fatal("expected a match")
	}
	if match.Action != "first" {
		t.Fatalf("expected insertion-order winner, got %s", match.Action)
	}
}

func TestRegisterReplacesBindings(t *testing.T) {
	r := NewRegistry([]Binding{{Phrase: "start workout", Action: "startWorkout"}})
	r.Register([]Binding{{Phrase: "begin training", Action: "startWorkout"}})

	if _, ok := r.Match("start workout"); ok {
		t.Fatal("old binding should be gone after Register")
	}
	if _, ok := r.Match("begin training"); !ok {
		t.Fatal("new binding should match")
	}
}
