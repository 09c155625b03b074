package roster

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/sessions"
)

// GroupByMonth maps each month to the students who logged at least one
// session in it, in roster order. Months with no logged session anywhere in
// the roster are absent, whatever the schedules imply.
func GroupByMonth(students []model.Student) map[model.YearMonth][]model.Student {
	groups := make(map[model.YearMonth][]model.Student)
	for _, s := range students {
		seen := make(map[model.YearMonth]bool)
		for _, ts := range s.Sessions {
			ym := model.YearMonthOf(ts)
			if seen[ym] {
				continue
			}
			seen[ym] = true
			groups[ym] = append(groups[ym], s)
		}
	}
	return groups
}

// Months returns the keys of groups in ascending (year, month) order.
func Months(groups map[model.YearMonth][]model.Student) []model.YearMonth {
	months := make([]model.YearMonth, 0, len(groups))
	for ym := range groups {
		months = append(months, ym)
	}
	slices.SortFunc(months, func(a, b model.YearMonth) int {
		switch {
		case a.Before(b):
			return -1
		case b.Before(a):
			return 1
		default:
			return 0
		}
	})
	return months
}

// IncomeSeries returns potential and actual revenue for every active month,
// ascending. Actual revenue only counts sessions on scheduled weekdays.
func IncomeSeries(students []model.Student) []model.IncomeData {
	groups := GroupByMonth(students)
	series := make([]model.IncomeData, 0, len(groups))
	for _, ym := range Months(groups) {
		actual, potential := decimal.Zero, decimal.Zero
		for _, s := range groups[ym] {
			actual = actual.Add(sessions.MonthlySum(s, ym, sessions.CompletedCounter{}))
			potential = potential.Add(sessions.MonthlySum(s, ym, sessions.ScheduledCounter{}))
		}
		series = append(series, model.IncomeData{
			YearMonth: ym,
			Label:     ym.Label(),
			Potential: potential,
			Actual:    actual,
		})
	}
	return series
}

// AttendanceSeries returns the number of logged sessions for every active
// month, ascending. Unlike IncomeSeries it counts every logged session,
// including those on unscheduled weekdays.
func AttendanceSeries(students []model.Student) []model.Attendance {
	groups := GroupByMonth(students)
	series := make([]model.Attendance, 0, len(groups))
	for _, ym := range Months(groups) {
		count := 0
		for _, s := range groups[ym] {
			count += sessions.MonthlyLogged(s, ym)
		}
		series = append(series, model.Attendance{
			YearMonth:     ym,
			Label:         ym.Label().Month,
			AttendedCount: count,
		})
	}
	return series
}
