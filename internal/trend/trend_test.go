package trend

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorledger/tutorledger/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func at(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 16, 0, 0, 0, time.UTC)
}

func requireTrend(t *testing.T, got model.NumberTrend) model.Trend {
	t.Helper()
	tr, ok := got.(model.Trend)
	require.True(t, ok, "want Trend, got %#v", got)
	return tr
}

func TestCompute(t *testing.T) {
	up := requireTrend(t, Compute(dec("100"), dec("150")))
	assert.Equal(t, model.Up, up.Direction)
	assert.True(t, dec("50").Equal(up.PercentageChange), "got %s", up.PercentageChange)

	down := requireTrend(t, Compute(dec("150"), dec("100")))
	assert.Equal(t, model.Down, down.Direction)
	assert.Equal(t, "33.33", down.PercentageChange.StringFixed(2))
	assert.False(t, down.PercentageChange.IsNegative())

	flat := requireTrend(t, Compute(dec("80"), dec("80")))
	assert.Equal(t, model.Up, flat.Direction)
	assert.True(t, flat.PercentageChange.IsZero())
}

func TestCompute_ZeroBaseline(t *testing.T) {
	for _, cur := range []string{"0", "1", "-3", "1000000"} {
		assert.Equal(t, model.NoData{Reason: model.ZeroBaseline}, Compute(decimal.Zero, dec(cur)), cur)
	}
}

func TestComputeInt(t *testing.T) {
	tr := requireTrend(t, ComputeInt(4, 5))
	assert.Equal(t, model.Up, tr.Direction)
	assert.True(t, dec("25").Equal(tr.PercentageChange))

	assert.IsType(t, model.NoData{}, ComputeInt(0, 5))
}

func perSession(id string, amount string, days []time.Weekday, sessions ...time.Time) model.Student {
	s := model.Student{
		ID:       id,
		Sessions: sessions,
		Payment:  model.Payment{Kind: model.PaymentPerSession, Amount: dec(amount)},
	}
	for _, d := range days {
		s.Schedule = append(s.Schedule, model.WeeklySlot{Day: d, Time: "4:00 PM"})
	}
	return s
}

var wed = []time.Weekday{time.Wednesday}

func TestActualIncome_ComparesWithPreviousMonthOfPreviousYear(t *testing.T) {
	students := []model.Student{
		perSession("s1", "100", wed,
			// Oct 2024: 2 sessions.
			at(2024, 10, 2), at(2024, 10, 9),
			// Oct 2025 is the previous calendar month and must be ignored.
			at(2025, 10, 1),
			// Nov 2025: 3 sessions.
			at(2025, 11, 5), at(2025, 11, 12), at(2025, 11, 19),
		),
	}

	tr := requireTrend(t, ActualIncome(students, time.Date(2025, 11, 20, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.Up, tr.Direction)
	assert.True(t, dec("50").Equal(tr.PercentageChange), "300 vs 200, got %s", tr.PercentageChange)
}

func TestActualIncome_January(t *testing.T) {
	// January's "previous month of the previous year" is December of last year.
	students := []model.Student{
		perSession("s1", "100", wed, at(2025, 12, 3), at(2025, 12, 10), at(2026, 1, 7)),
	}
	tr := requireTrend(t, ActualIncome(students, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, model.Down, tr.Direction)
	assert.True(t, dec("50").Equal(tr.PercentageChange))
}

func TestActualIncome_NoData(t *testing.T) {
	ref := time.Date(2025, 11, 20, 0, 0, 0, 0, time.UTC)

	t.Run("empty roster", func(t *testing.T) {
		assert.Equal(t, model.NoData{Reason: model.EmptySeries}, ActualIncome(nil, ref))
	})

	t.Run("single observation", func(t *testing.T) {
		students := []model.Student{perSession("s1", "100", wed, at(2025, 11, 5))}
		assert.Equal(t, model.NoData{Reason: model.MissingObservation}, ActualIncome(students, ref))
	})

	t.Run("current month missing", func(t *testing.T) {
		students := []model.Student{perSession("s1", "100", wed, at(2024, 10, 2), at(2025, 9, 3))}
		assert.Equal(t, model.NoData{Reason: model.MissingObservation}, ActualIncome(students, ref))
	})

	t.Run("previous month had only off-schedule sessions", func(t *testing.T) {
		// Oct 3 2024 is a Thursday: the month is active but earned nothing.
		students := []model.Student{perSession("s1", "100", wed, at(2024, 10, 3), at(2025, 11, 5))}
		assert.Equal(t, model.NoData{Reason: model.ZeroBaseline}, ActualIncome(students, ref))
	})
}

func TestRevenueHistory(t *testing.T) {
	income := []model.IncomeData{
		{YearMonth: model.YearMonth{Year: 2025, Month: time.September}, Actual: dec("0")},
		{YearMonth: model.YearMonth{Year: 2025, Month: time.October}, Actual: dec("1500")},
		{YearMonth: model.YearMonth{Year: 2025, Month: time.December}, Actual: dec("1200")},
	}
	points := RevenueHistory(income)
	require.Len(t, points, 2)

	assert.Equal(t, model.YearMonth{Year: 2025, Month: time.October}, points[0].YearMonth)
	assert.Equal(t, model.NoData{Reason: model.ZeroBaseline}, points[0].Trend)

	assert.Equal(t, model.YearMonth{Year: 2025, Month: time.December}, points[1].YearMonth)
	assert.True(t, dec("1500").Equal(points[1].Previous))
	tr := requireTrend(t, points[1].Trend)
	assert.Equal(t, model.Down, tr.Direction)
	assert.True(t, dec("20").Equal(tr.PercentageChange))

	assert.Nil(t, RevenueHistory(income[:1]))
	assert.Nil(t, RevenueHistory(nil))
}

func TestAttendanceHistory(t *testing.T) {
	att := []model.Attendance{
		{YearMonth: model.YearMonth{Year: 2025, Month: time.October}, AttendedCount: 5},
		{YearMonth: model.YearMonth{Year: 2025, Month: time.November}, AttendedCount: 3},
	}
	points := AttendanceHistory(att)
	require.Len(t, points, 1)
	tr := requireTrend(t, points[0].Trend)
	assert.Equal(t, model.Down, tr.Direction)
	assert.True(t, dec("40").Equal(tr.PercentageChange))
	assert.Nil(t, AttendanceHistory(att[:1]))
}
