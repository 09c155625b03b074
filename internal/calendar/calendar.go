// Package calendar provides the date arithmetic the accounting engine runs on.
//
// Dates are represented as time.Time values at midnight UTC. Working in UTC keeps
// AddDate day steps free of daylight-saving gaps; the calendar date of a
// timestamp is always taken in the timestamp's own location (see DateOf).
package calendar

import (
	"fmt"
	"strings"
	"time"
)

// InvalidDateError reports an out-of-range (year, month, day) triple.
type InvalidDateError struct {
	Year  int
	Month int
	Day   int
}

func (e *InvalidDateError) Error() string {
	if e.Day == 0 {
		return fmt.Sprintf("invalid calendar month %04d-%02d", e.Year, e.Month)
	}
	return fmt.Sprintf("invalid calendar date %04d-%02d-%02d", e.Year, e.Month, e.Day)
}

// CheckMonth returns an *InvalidDateError unless month is in 1..12.
func CheckMonth(year, month int) error {
	if month < 1 || month > 12 {
		return &InvalidDateError{Year: year, Month: month}
	}
	return nil
}

// NewDate builds a calendar date. Unlike time.Date it never normalizes:
// 2025-02-30 is an error, not March 2nd.
func NewDate(year, month, day int) (time.Time, error) {
	if err := CheckMonth(year, month); err != nil {
		return time.Time{}, err
	}
	if day < 1 || day > DaysIn(year, time.Month(month)) {
		return time.Time{}, &InvalidDateError{Year: year, Month: month, Day: day}
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// DateOf returns the calendar date of t, read in t's own location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysIn returns the number of days in the month. The month must be valid.
func DaysIn(year int, month time.Month) int {
	// Day 0 of the following month is the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// MonthDateRange returns the first and last date of the month.
func MonthDateRange(year int, month time.Month) (start, end time.Time, err error) {
	if err := CheckMonth(year, int(month)); err != nil {
		return time.Time{}, time.Time{}, err
	}
	start = time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	// AddDate rolls December over into January of year+1.
	end = start.AddDate(0, 1, -1)
	return start, end, nil
}

// AllDatesInMonth returns every date of the month in ascending order.
func AllDatesInMonth(year int, month time.Month) ([]time.Time, error) {
	start, end, err := MonthDateRange(year, month)
	if err != nil {
		return nil, err
	}
	dates := make([]time.Time, 0, end.Day())
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d)
	}
	return dates, nil
}

// InRange reports whether date d lies in [start, end], inclusive.
func InRange(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

// WeekdaySet is a membership set of weekdays.
type WeekdaySet [7]bool

// WeekdaysOf builds a set; duplicates collapse.
func WeekdaysOf(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		if d >= time.Sunday && d <= time.Saturday {
			s[d] = true
		}
	}
	return s
}

// Has reports whether d is in the set.
func (s WeekdaySet) Has(d time.Weekday) bool {
	if d < time.Sunday || d > time.Saturday {
		return false
	}
	return s[d]
}

// Empty reports whether the set has no members.
func (s WeekdaySet) Empty() bool {
	return s.Len() == 0
}

// Len returns the number of distinct weekdays in the set.
func (s WeekdaySet) Len() int {
	n := 0
	for _, ok := range s {
		if ok {
			n++
		}
	}
	return n
}

// ShortMonth returns the three-letter English month name ("Jan", "Feb", ...).
func ShortMonth(month time.Month) string {
	if month < time.January || month > time.December {
		return fmt.Sprintf("%%!Month(%d)", int(month))
	}
	return month.String()[:3]
}

// ParseWeekday accepts English weekday names, full or abbreviated to three
// letters, in any case.
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for d := time.Sunday; d <= time.Saturday; d++ {
		full := strings.ToLower(d.String())
		if name == full || name == full[:3] {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}

// ShortWeekday returns the three-letter English weekday name ("Mon", "Tue", ...).
func ShortWeekday(d time.Weekday) string {
	if d < time.Sunday || d > time.Saturday {
		return fmt.Sprintf("%%!Weekday(%d)", int(d))
	}
	return d.String()[:3]
}
