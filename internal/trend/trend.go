// Package trend compares pairs of monthly observations.
package trend

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/roster"
)

var hundred = decimal.NewFromInt(100)

// Compute returns the change from previous to current. A zero previous
// observation yields NoData rather than an unbounded percentage.
func Compute(previous, current decimal.Decimal) model.NumberTrend {
	if previous.IsZero() {
		return model.NoData{Reason: model.ZeroBaseline}
	}
	dir := model.Up
	if current.LessThan(previous) {
		dir = model.Down
	}
	return model.Trend{
		Direction:        dir,
		PercentageChange: current.Sub(previous).Div(previous).Mul(hundred).Abs(),
	}
}

// ComputeInt is Compute for counts.
func ComputeInt(previous, current int) model.NumberTrend {
	return Compute(decimal.NewFromInt(int64(previous)), decimal.NewFromInt(int64(current)))
}

// ActualIncome compares actual revenue for the reference month against the
// preceding calendar month of the previous year: for a reference date in
// November 2025 that is October 2024, not October 2025.
//
// TODO: confirm with product whether the year-ago offset is intended; the
// month-over-month comparison is RevenueHistory's last entry.
func ActualIncome(students []model.Student, reference time.Time) model.NumberTrend {
	series := roster.IncomeSeries(students)
	if len(series) == 0 {
		return model.NoData{Reason: model.EmptySeries}
	}

	current := model.YearMonthOf(reference)
	previous := model.YearMonth{Year: current.Year - 1, Month: current.Prev().Month}

	cur, okCur := findIncome(series, current.Label())
	prev, okPrev := findIncome(series, previous.Label())
	if !okCur || !okPrev {
		return model.NoData{Reason: model.MissingObservation}
	}
	return Compute(prev.Actual, cur.Actual)
}

func findIncome(series []model.IncomeData, label model.MonthLabel) (model.IncomeData, bool) {
	for _, d := range series {
		if d.Label == label {
			return d, true
		}
	}
	return model.IncomeData{}, false
}
