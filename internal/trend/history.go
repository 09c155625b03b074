package trend

import (
	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/model"
)

// Point is the trend into one month from the entry before it in a series.
type Point struct {
	YearMonth model.YearMonth
	Previous  decimal.Decimal
	Current   decimal.Decimal
	Trend     model.NumberTrend
}

// RevenueHistory compares each month's actual revenue with the previous
// entry of the series. The series is sparse, so the previous entry is not
// necessarily the previous calendar month. Fewer than two entries yield nil.
func RevenueHistory(income []model.IncomeData) []Point {
	if len(income) < 2 {
		return nil
	}
	points := make([]Point, 0, len(income)-1)
	for i := 1; i < len(income); i++ {
		prev, cur := income[i-1].Actual, income[i].Actual
		points = append(points, Point{
			YearMonth: income[i].YearMonth,
			Previous:  prev,
			Current:   cur,
			Trend:     Compute(prev, cur),
		})
	}
	return points
}

// AttendanceHistory is RevenueHistory for logged session counts.
func AttendanceHistory(att []model.Attendance) []Point {
	if len(att) < 2 {
		return nil
	}
	points := make([]Point, 0, len(att)-1)
	for i := 1; i < len(att); i++ {
		prev := decimal.NewFromInt(int64(att[i-1].AttendedCount))
		cur := decimal.NewFromInt(int64(att[i].AttendedCount))
		points = append(points, Point{
			YearMonth: att[i].YearMonth,
			Previous:  prev,
			Current:   cur,
			Trend:     Compute(prev, cur),
		})
	}
	return points
}
