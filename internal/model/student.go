package model

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentKind selects how a student is billed.
type PaymentKind string

const (
	PaymentPerSession PaymentKind = "per_session"
	PaymentMonthly    PaymentKind = "monthly"
)

// Valid reports whether k is one of the known payment kinds.
func (k PaymentKind) Valid() bool {
	return k == PaymentPerSession || k == PaymentMonthly
}

// Payment holds a student's billing terms.
type Payment struct {
	Kind   PaymentKind
	Amount decimal.Decimal // per session or per month, depending on Kind
}

// Subject is the taught subject. The constants are the ones offered by
// default; any non-empty label is accepted.
type Subject string

const (
	SubjectAdditionalMathematics Subject = "Additional Mathematics"
	SubjectExtendedMathematics   Subject = "Extended Mathematics"
	SubjectStatistics            Subject = "Statistics"
)

// PersonalName is a person's name parts. Other holds middle names, if any.
type PersonalName struct {
	First string
	Last  string
	Other string
}

// Full joins the non-empty name parts: "First Other Last".
func (n PersonalName) Full() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{n.First, n.Other, n.Last} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, " ")
}

// WeeklySlot is one recurring weekly commitment, e.g. Tuesday at "5:30 PM".
type WeeklySlot struct {
	Day  time.Weekday
	Time string // display label only; never parsed by the engine
}

// Student is one roster entry.
type Student struct {
	ID           string
	Name         PersonalName
	Subject      Subject
	Schedule     []WeeklySlot
	Sessions     []time.Time // logged sessions, chronological
	Payment      Payment
	TuitionStart time.Time
}

// Weekdays returns the weekdays of the schedule in slot order, duplicates included.
func (s Student) Weekdays() []time.Weekday {
	days := make([]time.Weekday, len(s.Schedule))
	for i, slot := range s.Schedule {
		days[i] = slot.Day
	}
	return days
}

// Tutor owns the roster.
type Tutor struct {
	ID   string
	Name PersonalName
}
