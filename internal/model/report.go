package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/calendar"
)

// YearMonth identifies a calendar month.
type YearMonth struct {
	Year  int
	Month time.Month
}

// NewYearMonth validates month and returns the YearMonth.
func NewYearMonth(year, month int) (YearMonth, error) {
	if err := calendar.CheckMonth(year, month); err != nil {
		return YearMonth{}, err
	}
	return YearMonth{Year: year, Month: time.Month(month)}, nil
}

// ParseYearMonth parses "YYYY-MM".
func ParseYearMonth(s string) (YearMonth, error) {
	y, m, ok := strings.Cut(strings.TrimSpace(s), "-")
	if !ok {
		return YearMonth{}, fmt.Errorf("invalid month %q: want YYYY-MM", s)
	}
	year, err := strconv.Atoi(y)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid year in %q: %w", s, err)
	}
	month, err := strconv.Atoi(m)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month in %q: %w", s, err)
	}
	return NewYearMonth(year, month)
}

// YearMonthOf returns the month containing t, read in t's location.
func YearMonthOf(t time.Time) YearMonth {
	return YearMonth{Year: t.Year(), Month: t.Month()}
}

// Valid reports whether Month is in 1..12.
func (ym YearMonth) Valid() bool {
	return ym.Month >= time.January && ym.Month <= time.December
}

// Before orders by (year, month).
func (ym YearMonth) Before(other YearMonth) bool {
	if ym.Year != other.Year {
		return ym.Year < other.Year
	}
	return ym.Month < other.Month
}

// Prev returns the immediately preceding calendar month.
func (ym YearMonth) Prev() YearMonth {
	if ym.Month == time.January {
		return YearMonth{Year: ym.Year - 1, Month: time.December}
	}
	return YearMonth{Year: ym.Year, Month: ym.Month - 1}
}

// Label returns the display label for the month.
func (ym YearMonth) Label() MonthLabel {
	return MonthLabel{Month: calendar.ShortMonth(ym.Month), Year: ym.Year}
}

func (ym YearMonth) String() string {
	return fmt.Sprintf("%04d-%02d", ym.Year, int(ym.Month))
}

// MonthLabel is the (short month name, year) pair charts key on.
type MonthLabel struct {
	Month string // "Nov"
	Year  int
}

func (l MonthLabel) String() string {
	return fmt.Sprintf("%s %d", l.Month, l.Year)
}

// IncomeData is one month of roster-wide revenue.
type IncomeData struct {
	YearMonth YearMonth
	Label     MonthLabel
	Potential decimal.Decimal
	Actual    decimal.Decimal
}

// Attendance is one month of roster-wide logged sessions.
type Attendance struct {
	YearMonth     YearMonth
	Label         string // short month name
	AttendedCount int
}

// Direction is the sign of a trend.
type Direction int

const (
	Up Direction = iota
	Down
)

func (d Direction) String() string {
	if d == Down {
		return "down"
	}
	return "up"
}

// NoDataReason says why two observations could not be compared.
type NoDataReason int

const (
	// ZeroBaseline: the previous observation is zero, so a percentage is unbounded.
	ZeroBaseline NoDataReason = iota
	// EmptySeries: there were no observations at all.
	EmptySeries
	// MissingObservation: the series exists but lacks one of the two months.
	MissingObservation
)

func (r NoDataReason) String() string {
	switch r {
	case EmptySeries:
		return "no observations"
	case MissingObservation:
		return "missing observation"
	default:
		return "zero baseline"
	}
}

// NumberTrend is either NoData or Trend.
type NumberTrend interface {
	isNumberTrend()
}

// NoData means there is nothing to compare.
type NoData struct {
	Reason NoDataReason
}

// Trend is the change from a previous to a current observation.
type Trend struct {
	Direction        Direction
	PercentageChange decimal.Decimal // always >= 0
}

func (NoData) isNumberTrend() {}
func (Trend) isNumberTrend()  {}
