// Package sessions counts a student's scheduled and completed sessions per
// month and turns those counts into money.
package sessions

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/calendar"
	"github.com/tutorledger/tutorledger/internal/model"
)

// Counter counts one student's sessions in a month.
type Counter interface {
	Count(s model.Student, ym model.YearMonth) int
}

// ScheduledCounter counts sessions that should have happened.
type ScheduledCounter struct{}

// Count implements Counter.
func (ScheduledCounter) Count(s model.Student, ym model.YearMonth) int {
	return MonthlyScheduled(s, ym)
}

// CompletedCounter counts logged sessions that fell on a scheduled weekday.
type CompletedCounter struct{}

// Count implements Counter.
func (CompletedCounter) Count(s model.Student, ym model.YearMonth) int {
	return MonthlyCompleted(s, ym)
}

var (
	_ Counter = ScheduledCounter{}
	_ Counter = CompletedCounter{}
)

// ScheduledWeekdays returns the distinct weekdays of the student's schedule.
func ScheduledWeekdays(s model.Student) calendar.WeekdaySet {
	return calendar.WeekdaysOf(s.Weekdays()...)
}

// MonthlyScheduled counts the dates of the month whose weekday is scheduled.
// An invalid month has no dates.
func MonthlyScheduled(s model.Student, ym model.YearMonth) int {
	days := ScheduledWeekdays(s)
	if days.Empty() {
		return 0
	}
	dates, err := calendar.AllDatesInMonth(ym.Year, ym.Month)
	if err != nil {
		return 0
	}
	n := 0
	for _, d := range dates {
		if days.Has(d.Weekday()) {
			n++
		}
	}
	return n
}

// MonthlyCompleted counts logged sessions in the month whose weekday is
// scheduled. Sessions logged on any other weekday are not counted.
func MonthlyCompleted(s model.Student, ym model.YearMonth) int {
	days := ScheduledWeekdays(s)
	n := 0
	for _, d := range loggedDates(s, ym) {
		if days.Has(d.Weekday()) {
			n++
		}
	}
	return n
}

// MonthlyLogged counts every logged session in the month, scheduled weekday or not.
func MonthlyLogged(s model.Student, ym model.YearMonth) int {
	return len(loggedDates(s, ym))
}

func loggedDates(s model.Student, ym model.YearMonth) []time.Time {
	start, end, err := calendar.MonthDateRange(ym.Year, ym.Month)
	if err != nil {
		return nil
	}
	var dates []time.Time
	for _, ts := range s.Sessions {
		d := calendar.DateOf(ts)
		if calendar.InRange(d, start, end) {
			dates = append(dates, d)
		}
	}
	return dates
}

// MonthlySum is the amount owed for the month given counter's session count.
// Monthly payers owe the flat amount regardless of sessions held; partial
// months are not prorated.
func MonthlySum(s model.Student, ym model.YearMonth, counter Counter) decimal.Decimal {
	switch s.Payment.Kind {
	case model.PaymentPerSession:
		return s.Payment.Amount.Mul(decimal.NewFromInt(int64(counter.Count(s, ym))))
	case model.PaymentMonthly:
		return s.Payment.Amount
	default:
		return decimal.Zero
	}
}

// Potential is MonthlySum over scheduled sessions.
func Potential(s model.Student, ym model.YearMonth) decimal.Decimal {
	return MonthlySum(s, ym, ScheduledCounter{})
}

// Actual is MonthlySum over completed sessions.
func Actual(s model.Student, ym model.YearMonth) decimal.Decimal {
	return MonthlySum(s, ym, CompletedCounter{})
}
