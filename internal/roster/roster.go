// Package roster aggregates a whole roster's activity by month.
//
// Every function here is a pure computation over the students it is given.
// A Roster is an immutable snapshot and is safe to share between goroutines.
package roster

import (
	"slices"

	"github.com/tutorledger/tutorledger/internal/model"
)

// Roster is a tutor and their students, frozen at load time.
type Roster struct {
	tutor    model.Tutor
	students []model.Student
	byID     map[string]int
}

// New snapshots students. Later changes to the caller's slice, or to the
// session and schedule slices of its elements, are not observed.
func New(tutor model.Tutor, students []model.Student) *Roster {
	copied := make([]model.Student, len(students))
	byID := make(map[string]int, len(students))
	for i, s := range students {
		s.Schedule = slices.Clone(s.Schedule)
		s.Sessions = slices.Clone(s.Sessions)
		copied[i] = s
		if _, dup := byID[s.ID]; !dup {
			byID[s.ID] = i
		}
	}
	return &Roster{tutor: tutor, students: copied, byID: byID}
}

// Tutor returns the roster's owner.
func (r *Roster) Tutor() model.Tutor {
	return r.tutor
}

// Students returns the students in roster order. The slice is shared with
// the snapshot and must not be modified.
func (r *Roster) Students() []model.Student {
	return r.students
}

// Len returns the number of students.
func (r *Roster) Len() int {
	return len(r.students)
}

// Get returns a student by ID.
func (r *Roster) Get(id string) (model.Student, bool) {
	i, ok := r.byID[id]
	if !ok {
		return model.Student{}, false
	}
	return r.students[i], true
}
