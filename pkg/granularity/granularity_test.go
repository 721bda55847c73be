package granularity

import "testing"

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want Granularity
		err  bool
	}{
		{"day", Day, false},
		{"WEEK", Week, false},
		{" month ", Month, false},
		{"year", Year, false},
		{"decade", Decade, false},
		{"", Day, false},
		{"fortnight", Day, true},
	}
	for _, tc := range cases {
		got, err := Parse(tc.in)
		if tc.err {
			if err == nil {
				t.Fatalf("Parse(%q): expected error", tc.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("Parse(%q): %v", tc.in, err)
		}
		if got != tc.want {
			t.Fatalf("Parse(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestAtOrAbove(t *testing.T) {
	got := Day.AtOrAbove()
	if len(got) != 5 || got[0] != Day || got[4] != Decade {
		t.Fatalf("Day.AtOrAbove() = %v", got)
	}

	got = Year.AtOrAbove()
	if len(got) != 2 || got[0] != Year || got[1] != Decade {
		t.Fatalf("Year.AtOrAbove() = %v", got)
	}

	got = Decade.AtOrAbove()
	if len(got) != 1 || got[0] != Decade {
		t.Fatalf("Decade.AtOrAbove() = %v", got)
	}
}

func TestFinerThan(t *testing.T) {
	if !Day.FinerThan(Week) {
		t.Fatalf("day must be finer than week")
	}
	if Decade.FinerThan(Year) {
		t.Fatalf("decade must not be finer than year")
	}
	if Month.FinerThan(Month) {
		t.Fatalf("a granularity is not finer than itself")
	}
}

func TestValid(t *testing.T) {
	if !Week.Valid() {
		t.Fatalf("week must be valid")
	}
	if Granularity("fortnight").Valid() {
		t.Fatalf("fortnight must be invalid")
	}
}
