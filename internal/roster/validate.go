package roster

import (
	"fmt"
	"strings"
	"time"

	"github.com/tutorledger/tutorledger/internal/calendar"
	"github.com/tutorledger/tutorledger/internal/model"
)

// Issue is a data-integrity problem with one student. Issues are warnings:
// the engine still computes figures for the student.
type Issue struct {
	StudentID   string
	Description string
}

func (i Issue) Error() string {
	return fmt.Sprintf("student %s: %s", i.StudentID, i.Description)
}

// Validate checks every student and returns the issues found, in roster order.
func Validate(students []model.Student) []Issue {
	var issues []Issue
	add := func(id, format string, args ...any) {
		issues = append(issues, Issue{StudentID: id, Description: fmt.Sprintf(format, args...)})
	}

	seenID := make(map[string]bool, len(students))
	for _, s := range students {
		if s.ID == "" {
			add(s.ID, "missing id")
		} else if seenID[s.ID] {
			add(s.ID, "duplicate id")
		}
		seenID[s.ID] = true

		if !s.Payment.Kind.Valid() {
			add(s.ID, "unknown payment kind %q", s.Payment.Kind)
		}
		if s.Payment.Amount.IsNegative() {
			add(s.ID, "negative payment amount %s", s.Payment.Amount.StringFixed(2))
		}

		if len(s.Schedule) == 0 {
			add(s.ID, "empty weekly schedule")
		}
		seenSlot := make(map[string]bool, len(s.Schedule))
		for _, slot := range s.Schedule {
			if slot.Day < time.Sunday || slot.Day > time.Saturday {
				add(s.ID, "invalid weekday %d in schedule", int(slot.Day))
				continue
			}
			label := strings.TrimSpace(slot.Time)
			if label == "" {
				add(s.ID, "%s slot has no time", slot.Day)
			}
			key := slot.Day.String() + " " + label
			if seenSlot[key] {
				add(s.ID, "duplicate slot %s", key)
			}
			seenSlot[key] = true
		}

		if !s.TuitionStart.IsZero() {
			start := calendar.DateOf(s.TuitionStart)
			for _, ts := range s.Sessions {
				if calendar.DateOf(ts).Before(start) {
					add(s.ID, "session on %s before tuition start %s",
						ts.Format("2006-01-02"), s.TuitionStart.Format("2006-01-02"))
				}
			}
		}
		for i := 1; i < len(s.Sessions); i++ {
			if s.Sessions[i].Before(s.Sessions[i-1]) {
				add(s.ID, "sessions out of order at %s", s.Sessions[i].Format(time.RFC3339))
				break
			}
		}
	}
	return issues
}
