package entry

import (
	"encoding/json"
	"testing"

	"tableflip.dev/anno/pkg/granularity"
)

func TestTimeOfDay(t *testing.T) {
	e := New("2024-06-01", granularity.Day, "standup")
	if got := e.TimeOfDay(); got != "" {
		t.Fatalf("expected empty time of day, got %q", got)
	}

	e.HasTime = true
	e.Hour = 9
	e.Minute = 30
	if got := e.TimeOfDay(); got != "09:30" {
		t.Fatalf("expected 09:30, got %q", got)
	}

	e.Second = 5
	if got := e.TimeOfDay(); got != "09:30:05" {
		t.Fatalf("expected 09:30:05, got %q", got)
	}
}

func TestSaved(t *testing.T) {
	e := New("2024-06-01", granularity.Day, "note")
	if e.Saved() {
		t.Fatalf("new entry must not report saved")
	}
	e.ID = 42
	if !e.Saved() {
		t.Fatalf("entry with id must report saved")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	e := New("-0044-03-15", granularity.Day, "ides")
	e.ID = 7
	e.HasTime = true
	e.Hour = 12
	e.Tags = []string{"history"}

	data, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var back Entry
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.ID != 7 || back.CanonicalDate != "-0044-03-15" ||
		back.Granularity != granularity.Day || !back.HasTime || back.Hour != 12 {
		t.Fatalf("round trip mismatch: %+v", back)
	}
}

func TestDisplayColorStable(t *testing.T) {
	a := New("2024-06-01", granularity.Day, "garden")
	b := New("2025-01-01", granularity.Year, "garden")
	if DisplayColor(a) != DisplayColor(b) {
		t.Fatalf("same content must produce the same color")
	}

	c := New("2024-06-01", granularity.Day, "harvest")
	if DisplayColor(a) == DisplayColor(c) {
		t.Fatalf("different titles should produce different colors")
	}

	if got := DisplayColor(a); len(got) != 7 || got[0] != '#' {
		t.Fatalf("expected hex color, got %q", got)
	}
}
