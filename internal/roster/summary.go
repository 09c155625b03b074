package roster

import (
	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/sessions"
)

// MonthSummary is the roster-wide position for one month.
type MonthSummary struct {
	YearMonth model.YearMonth
	Scheduled int
	Completed int
	Potential decimal.Decimal
	Actual    decimal.Decimal
	Lost      decimal.Decimal // Potential - Actual
}

// Summarize totals every student for ym, active or not.
func Summarize(students []model.Student, ym model.YearMonth) MonthSummary {
	sum := MonthSummary{
		YearMonth: ym,
		Potential: decimal.Zero,
		Actual:    decimal.Zero,
	}
	for _, s := range students {
		sum.Scheduled += sessions.MonthlyScheduled(s, ym)
		sum.Completed += sessions.MonthlyCompleted(s, ym)
		sum.Potential = sum.Potential.Add(sessions.Potential(s, ym))
		sum.Actual = sum.Actual.Add(sessions.Actual(s, ym))
	}
	sum.Lost = sum.Potential.Sub(sum.Actual)
	return sum
}
