package sessions

import (
	"errors"
	"time"

	"github.com/tutorledger/tutorledger/internal/calendar"
	"github.com/tutorledger/tutorledger/internal/model"
)

// ErrNoUpcomingSession is returned by NextSession when the student has no
// scheduled weekdays.
var ErrNoUpcomingSession = errors.New("no upcoming session")

// lookahead is how many days after the reference date NextSession inspects.
// Any scheduled weekday occurs exactly once in seven consecutive days.
const lookahead = 7

// NextSession returns the earliest scheduled date strictly after reference.
func NextSession(s model.Student, reference time.Time) (time.Time, error) {
	days := ScheduledWeekdays(s)
	today := calendar.DateOf(reference)
	for i := 1; i <= lookahead; i++ {
		d := today.AddDate(0, 0, i)
		if days.Has(d.Weekday()) {
			return d, nil
		}
	}
	return time.Time{}, ErrNoUpcomingSession
}
