package timeutil

import "testing"

func TestParseWindowDefault(t *testing.T) {
	days, label, err := ParseWindow("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 7 {
		t.Fatalf("expected 7 days, got %d", days)
	}
	if label != "1w" {
		t.Fatalf("expected label 1w, got %s", label)
	}
}

func TestParseWindowComposite(t *testing.T) {
	days, label, err := ParseWindow("1w2d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 9 {
		t.Fatalf("expected 9 days, got %d", days)
	}
	if label != "1w2d" {
		t.Fatalf("unexpected label: %s", label)
	}
}

func TestParseWindowNormalizes(t *testing.T) {
	days, label, err := ParseWindow("10d")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if days != 10 {
		t.Fatalf("expected 10 days, got %d", days)
	}
	if label != "1w3d" {
		t.Fatalf("expected canonical 1w3d, got %s", label)
	}
}

func TestParseWindowInvalid(t *testing.T) {
	if _, _, err := ParseWindow("noop"); err == nil {
		t.Fatalf("expected error for invalid window")
	}
	if _, _, err := ParseWindow("3h"); err == nil {
		t.Fatalf("expected error for sub-day unit")
	}
}
