// Package caldate provides a calendar date value type that stays correct
// for years far outside the range native time.Time handles reliably,
// including negative (BCE) years, plus the canonicalization rules that
// map a date to the start of its day/week/month/year/decade bucket.
package caldate

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"tableflip.dev/anno/pkg/granularity"
	"tableflip.dev/anno/pkg/julian"
)

// ErrMalformed reports a date string that cannot be parsed into
// year/month/day components.
var ErrMalformed = errors.New("caldate: malformed date")

// ErrWeekStart reports a week start day outside 0..6.
var ErrWeekStart = errors.New("caldate: week start day must be 0..6")

// Date is a proleptic Gregorian calendar date. Year uses ISO numbering:
// year 0 exists and is 1 BCE, year -44 is 45 BCE.
type Date struct {
	Year  int
	Month int
	Day   int
}

// Parse reads an ISO-8601 calendar date, sign-prefixed for negative years
// ("-0044-03-15"). A leading "+" is accepted and ignored.
func Parse(s string) (Date, error) {
	raw := strings.TrimSpace(s)
	rest := raw
	sign := 1
	switch {
	case strings.HasPrefix(rest, "-"):
		sign = -1
		rest = rest[1:]
	case strings.HasPrefix(rest, "+"):
		rest = rest[1:]
	}

	parts := strings.Split(rest, "-")
	if len(parts) != 3 || len(parts[0]) < 4 || len(parts[1]) != 2 || len(parts[2]) != 2 {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	year, err := strconv.Atoi(parts[0])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	month, err := strconv.Atoi(parts[1])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	day, err := strconv.Atoi(parts[2])
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}

	d := Date{Year: sign * year, Month: month, Day: day}
	if d.Year < julian.MinYear || d.Year > julian.MaxYear {
		// Distinguish an unsupported year from a garbled string: the
		// caller may want to report it rather than skip it.
		return Date{}, fmt.Errorf("%w: %d", julian.ErrYearRange, d.Year)
	}
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %q", ErrMalformed, s)
	}
	return d, nil
}

// MustParse parses the input and panics on error. Intended for tests.
func MustParse(s string) Date {
	d, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Valid reports whether the date names a real proleptic Gregorian day
// within the supported year range.
func (d Date) Valid() bool {
	if d.Year < julian.MinYear || d.Year > julian.MaxYear {
		return false
	}
	if d.Month < 1 || d.Month > 12 {
		return false
	}
	return d.Day >= 1 && d.Day <= julian.DaysInMonth(d.Year, d.Month)
}

// String formats the date as sign-prefixed ISO-8601 with a zero-padded
// four digit year.
func (d Date) String() string {
	return fmt.Sprintf("%s-%02d-%02d", FormatYear(d.Year), d.Month, d.Day)
}

// FormatYear renders an ISO year zero-padded to four digits, keeping the
// sign in front of the padding ("-0044", "0930").
func FormatYear(year int) string {
	if year < 0 {
		return fmt.Sprintf("-%04d", -year)
	}
	return fmt.Sprintf("%04d", year)
}

// JDN returns the Julian Day Number for the date.
func (d Date) JDN() (int64, error) {
	return julian.ToJDN(d.Year, d.Month, d.Day)
}

// FromJDN builds a Date from a Julian Day Number.
func FromJDN(jdn int64) Date {
	y, m, day := julian.FromJDN(jdn)
	return Date{Year: y, Month: m, Day: day}
}

// AddDays returns the date n days later (earlier for negative n), routed
// through JDN arithmetic so it is safe for any supported year.
func (d Date) AddDays(n int) (Date, error) {
	jdn, err := d.JDN()
	if err != nil {
		return Date{}, err
	}
	out := FromJDN(jdn + int64(n))
	if !out.Valid() {
		return Date{}, fmt.Errorf("%w: %d", julian.ErrYearRange, out.Year)
	}
	return out, nil
}

// Compare returns -1, 0, or 1 ordering d against other chronologically.
func (d Date) Compare(other Date) int {
	if d.Year != other.Year {
		if d.Year < other.Year {
			return -1
		}
		return 1
	}
	if d.Month != other.Month {
		if d.Month < other.Month {
			return -1
		}
		return 1
	}
	if d.Day != other.Day {
		if d.Day < other.Day {
			return -1
		}
		return 1
	}
	return 0
}

// Before reports whether d is strictly earlier than other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly later than other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Weekday returns the day of week, 0=Sunday through 6=Saturday.
func (d Date) Weekday() (int, error) {
	jdn, err := d.JDN()
	if err != nil {
		return 0, err
	}
	return julian.Weekday(jdn), nil
}

// Canonicalize maps a date to the start of its bucket at the given
// granularity. weekStart picks the first day of the week, 0=Sunday
// through 6=Saturday, and only affects week granularity. Pure function.
func Canonicalize(d Date, g granularity.Granularity, weekStart int) (Date, error) {
	if !d.Valid() {
		return Date{}, fmt.Errorf("%w: %v", ErrMalformed, d)
	}
	if weekStart < 0 || weekStart > 6 {
		return Date{}, fmt.Errorf("%w: %d", ErrWeekStart, weekStart)
	}
	switch g {
	case granularity.Day:
		return d, nil
	case granularity.Week:
		jdn, err := d.JDN()
		if err != nil {
			return Date{}, err
		}
		back := (julian.Weekday(jdn) - weekStart + 7) % 7
		start := FromJDN(jdn - int64(back))
		if !start.Valid() {
			return Date{}, fmt.Errorf("%w: %d", julian.ErrYearRange, start.Year)
		}
		return start, nil
	case granularity.Month:
		return Date{Year: d.Year, Month: d.Month, Day: 1}, nil
	case granularity.Year:
		return Date{Year: d.Year, Month: 1, Day: 1}, nil
	case granularity.Decade:
		return Date{Year: DecadeStart(d.Year), Month: 1, Day: 1}, nil
	default:
		return Date{}, fmt.Errorf("caldate: unknown granularity %q", g)
	}
}

// DecadeStart returns floor(year/10)*10, flooring toward negative
// infinity so year -5 lands in decade -10.
func DecadeStart(year int) int {
	q := year / 10
	if year < 0 && year%10 != 0 {
		q--
	}
	return q * 10
}

// DayKey returns the day bucket key: the ISO date string.
func DayKey(d Date) string { return d.String() }

// MonthKey returns the month bucket key ("YYYY-MM"), sign-aware.
func MonthKey(d Date) string {
	return fmt.Sprintf("%s-%02d", FormatYear(d.Year), d.Month)
}

// YearKey returns the year bucket key: the ISO year.
func YearKey(d Date) int { return d.Year }

// DecadeKey returns the decade bucket key: the decade start year.
func DecadeKey(d Date) int { return DecadeStart(d.Year) }
