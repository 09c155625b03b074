// Package report assembles engine outputs into the figures a front end
// displays: the dashboard cards for the current month and one card per student.
package report

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/roster"
	"github.com/tutorledger/tutorledger/internal/sessions"
	"github.com/tutorledger/tutorledger/internal/trend"
)

// Dashboard is the roster-wide view of the reference month.
type Dashboard struct {
	roster.MonthSummary
	IncomeTrend model.NumberTrend
	LostTrend   model.NumberTrend
}

// BuildDashboard summarizes the month containing reference.
func BuildDashboard(students []model.Student, reference time.Time) Dashboard {
	return Dashboard{
		MonthSummary: roster.Summarize(students, model.YearMonthOf(reference)),
		IncomeTrend:  trend.ActualIncome(students, reference),
		// Lost revenue has no history to compare against yet.
		LostTrend: model.NoData{Reason: model.EmptySeries},
	}
}

// StudentCard is one student's position in the reference month.
type StudentCard struct {
	ID        string
	Name      string
	Subject   model.Subject
	Schedule  []model.WeeklySlot
	Next      time.Time // zero when HasNext is false
	HasNext   bool
	Completed int
	Accrued   decimal.Decimal
}

// Card builds the card for s as of reference.
func Card(s model.Student, reference time.Time) StudentCard {
	ym := model.YearMonthOf(reference)
	c := StudentCard{
		ID:        s.ID,
		Name:      s.Name.Full(),
		Subject:   s.Subject,
		Schedule:  s.Schedule,
		Completed: sessions.MonthlyCompleted(s, ym),
		Accrued:   sessions.Actual(s, ym),
	}
	if next, err := sessions.NextSession(s, reference); err == nil {
		c.Next, c.HasNext = next, true
	}
	return c
}

// Cards builds a card per student, in roster order.
func Cards(students []model.Student, reference time.Time) []StudentCard {
	cards := make([]StudentCard, len(students))
	for i, s := range students {
		cards[i] = Card(s, reference)
	}
	return cards
}

// Search returns the students whose full name or subject contains query,
// ignoring case. An empty query matches everyone.
func Search(students []model.Student, query string) []model.Student {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return students
	}
	var out []model.Student
	for _, s := range students {
		if strings.Contains(strings.ToLower(s.Name.Full()), q) ||
			strings.Contains(strings.ToLower(string(s.Subject)), q) {
			out = append(out, s)
		}
	}
	return out
}
