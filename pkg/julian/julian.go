// Package julian converts proleptic Gregorian calendar dates to and from
// Julian Day Numbers. Native time.Time arithmetic misbehaves for years
// near and below zero, so every date computation that may leave the safe
// native range routes through this package instead.
package julian

import (
	"errors"
	"fmt"
)

const (
	// MinYear is the smallest supported ISO year (10000 BCE).
	MinYear = -9999
	// MaxYear is the largest supported ISO year.
	MaxYear = 9999
)

// ErrYearRange reports a year outside [MinYear, MaxYear].
var ErrYearRange = errors.New("julian: year outside supported range")

// The Gregorian cycle repeats every 400 years / 146097 days. Shifting the
// internal year by 8000 (20 cycles) keeps every intermediate value
// non-negative so truncating integer division behaves like floor division
// across the whole supported range.
const (
	yearShift = 8000
	jdnShift  = 20 * 146097
)

// ToJDN converts a proleptic Gregorian (year, month, day) to a Julian Day
// Number. Years use ISO numbering: year 0 exists and is 1 BCE.
func ToJDN(year, month, day int) (int64, error) {
	if year < MinYear || year > MaxYear {
		return 0, fmt.Errorf("%w: %d", ErrYearRange, year)
	}
	if month < 1 || month > 12 {
		return 0, fmt.Errorf("julian: month %d out of range", month)
	}
	if day < 1 || day > DaysInMonth(year, month) {
		return 0, fmt.Errorf("julian: day %d out of range for %d-%02d", day, year, month)
	}

	a := int64((14 - month) / 12)
	y := int64(year+yearShift+4800) - a
	m := int64(month) + 12*a - 3

	jdn := int64(day) + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045 - jdnShift
	return jdn, nil
}

// FromJDN converts a Julian Day Number back to a proleptic Gregorian
// (year, month, day). Inverse of ToJDN for every supported date.
func FromJDN(jdn int64) (year, month, day int) {
	a := jdn + jdnShift + 32044
	b := (4*a + 3) / 146097
	c := a - 146097*b/4
	d := (4*c + 3) / 1461
	e := c - 1461*d/4
	m := (5*e + 2) / 153

	day = int(e - (153*m+2)/5 + 1)
	month = int(m + 3 - 12*(m/10))
	year = int(100*b + d - 4800 + m/10 - yearShift)
	return year, month, day
}

// Weekday returns the day of week for a Julian Day Number, 0=Sunday through
// 6=Saturday.
func Weekday(jdn int64) int {
	return int(((jdn+1)%7 + 7) % 7)
}

// IsLeapYear applies the Gregorian leap rule proleptically, including to
// negative years (ISO numbering, so year -4 is divisible by 4 and leap).
func IsLeapYear(year int) bool {
	if year%4 != 0 {
		return false
	}
	if year%100 != 0 {
		return true
	}
	return year%400 == 0
}

var daysPerMonth = [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// DaysInMonth returns the number of days in the given month, honoring leap
// years. Month must be in 1..12; other values return 0.
func DaysInMonth(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapYear(year) {
		return 29
	}
	return daysPerMonth[month]
}
