package julian

import (
	"errors"
	"testing"
)

func TestKnownAnchors(t *testing.T) {
	cases := []struct {
		year, month, day int
		jdn              int64
	}{
		{2000, 1, 1, 2451545},
		{1970, 1, 1, 2440588},
		{1582, 10, 15, 2299161},
		{1, 1, 1, 1721426},
		{0, 1, 1, 1721060},
		{-44, 3, 15, 1705063},
		{-4712, 1, 1, 38},
	}
	for _, tc := range cases {
		got, err := ToJDN(tc.year, tc.month, tc.day)
		if err != nil {
			t.Fatalf("ToJDN(%d,%d,%d): unexpected error: %v", tc.year, tc.month, tc.day, err)
		}
		if got != tc.jdn {
			t.Fatalf("ToJDN(%d,%d,%d) = %d, want %d", tc.year, tc.month, tc.day, got, tc.jdn)
		}
		y, m, d := FromJDN(tc.jdn)
		if y != tc.year || m != tc.month || d != tc.day {
			t.Fatalf("FromJDN(%d) = (%d,%d,%d), want (%d,%d,%d)",
				tc.jdn, y, m, d, tc.year, tc.month, tc.day)
		}
	}
}

func TestRoundTripSweep(t *testing.T) {
	// Exhaustive round trip over month boundaries across the supported
	// range, including every century year near zero.
	years := []int{MinYear, -9601, -400, -101, -100, -4, -1, 0, 1, 4, 99, 100, 400, 1900, 2000, 2024, MaxYear}
	for _, year := range years {
		for month := 1; month <= 12; month++ {
			for _, day := range []int{1, 15, DaysInMonth(year, month)} {
				jdn, err := ToJDN(year, month, day)
				if err != nil {
					t.Fatalf("ToJDN(%d,%d,%d): %v", year, month, day, err)
				}
				y, m, d := FromJDN(jdn)
				if y != year || m != month || d != day {
					t.Fatalf("round trip (%d,%d,%d) -> %d -> (%d,%d,%d)",
						year, month, day, jdn, y, m, d)
				}
			}
		}
	}
}

func TestConsecutiveDays(t *testing.T) {
	// Crossing a leap day, a year boundary, and the year zero boundary must
	// each advance the JDN by exactly one.
	pairs := [][2][3]int{
		{{2024, 2, 28}, {2024, 2, 29}},
		{{2024, 2, 29}, {2024, 3, 1}},
		{{1900, 2, 28}, {1900, 3, 1}},
		{{-1, 12, 31}, {0, 1, 1}},
		{{0, 12, 31}, {1, 1, 1}},
	}
	for _, pair := range pairs {
		a, err := ToJDN(pair[0][0], pair[0][1], pair[0][2])
		if err != nil {
			t.Fatalf("ToJDN(%v): %v", pair[0], err)
		}
		b, err := ToJDN(pair[1][0], pair[1][1], pair[1][2])
		if err != nil {
			t.Fatalf("ToJDN(%v): %v", pair[1], err)
		}
		if b-a != 1 {
			t.Fatalf("%v -> %v: jdn delta %d, want 1", pair[0], pair[1], b-a)
		}
	}
}

func TestYearRange(t *testing.T) {
	if _, err := ToJDN(MaxYear+1, 1, 1); !errors.Is(err, ErrYearRange) {
		t.Fatalf("expected ErrYearRange for %d, got %v", MaxYear+1, err)
	}
	if _, err := ToJDN(MinYear-1, 1, 1); !errors.Is(err, ErrYearRange) {
		t.Fatalf("expected ErrYearRange for %d, got %v", MinYear-1, err)
	}
	if _, err := ToJDN(MaxYear, 12, 31); err != nil {
		t.Fatalf("max year should be supported: %v", err)
	}
	if _, err := ToJDN(MinYear, 1, 1); err != nil {
		t.Fatalf("min year should be supported: %v", err)
	}
}

func TestInvalidMonthDay(t *testing.T) {
	if _, err := ToJDN(2024, 13, 1); err == nil {
		t.Fatalf("expected error for month 13")
	}
	if _, err := ToJDN(2024, 0, 1); err == nil {
		t.Fatalf("expected error for month 0")
	}
	if _, err := ToJDN(2023, 2, 29); err == nil {
		t.Fatalf("expected error for feb 29 in non-leap year")
	}
	if _, err := ToJDN(2024, 2, 29); err != nil {
		t.Fatalf("feb 29 2024 should be valid: %v", err)
	}
}

func TestWeekday(t *testing.T) {
	cases := []struct {
		year, month, day int
		weekday          int
	}{
		{2000, 1, 1, 6}, // Saturday
		{2024, 3, 6, 3}, // Wednesday
		{1970, 1, 1, 4}, // Thursday
		{-44, 3, 15, 4}, // Thursday (proleptic Gregorian)
	}
	for _, tc := range cases {
		jdn, err := ToJDN(tc.year, tc.month, tc.day)
		if err != nil {
			t.Fatalf("ToJDN(%d,%d,%d): %v", tc.year, tc.month, tc.day, err)
		}
		if got := Weekday(jdn); got != tc.weekday {
			t.Fatalf("Weekday(%d-%02d-%02d) = %d, want %d",
				tc.year, tc.month, tc.day, got, tc.weekday)
		}
	}
}

func TestIsLeapYear(t *testing.T) {
	leap := []int{2024, 2000, 1600, 0, -4, -400}
	for _, y := range leap {
		if !IsLeapYear(y) {
			t.Fatalf("expected %d to be a leap year", y)
		}
	}
	common := []int{2023, 1900, 100, -100, -1}
	for _, y := range common {
		if IsLeapYear(y) {
			t.Fatalf("expected %d to be a common year", y)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	if got := DaysInMonth(2024, 2); got != 29 {
		t.Fatalf("DaysInMonth(2024, 2) = %d, want 29", got)
	}
	if got := DaysInMonth(1900, 2); got != 28 {
		t.Fatalf("DaysInMonth(1900, 2) = %d, want 28", got)
	}
	if got := DaysInMonth(2024, 4); got != 30 {
		t.Fatalf("DaysInMonth(2024, 4) = %d, want 30", got)
	}
	if got := DaysInMonth(2024, 13); got != 0 {
		t.Fatalf("DaysInMonth(2024, 13) = %d, want 0", got)
	}
}
