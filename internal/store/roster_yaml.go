package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/tutorledger/tutorledger/internal/calendar"
	"github.com/tutorledger/tutorledger/internal/model"
)

const dateFormat = "2006-01-02"

// rosterFile is the on-disk shape of students.yaml. Sessions are kept in
// sessions.csv, not here.
type rosterFile struct {
	Tutor    tutorFile     `yaml:"tutor"`
	Students []studentFile `yaml:"students"`
}

type tutorFile struct {
	ID    string `yaml:"id"`
	First string `yaml:"first_name"`
	Last  string `yaml:"last_name"`
}

type studentFile struct {
	ID           string      `yaml:"id"`
	First        string      `yaml:"first_name"`
	Last         string      `yaml:"last_name"`
	Other        string      `yaml:"other_names,omitempty"`
	Subject      string      `yaml:"subject"`
	Schedule     []slotFile  `yaml:"schedule"`
	Payment      paymentFile `yaml:"payment"`
	TuitionStart string      `yaml:"tuition_start,omitempty"` // "YYYY-MM-DD"
}

type slotFile struct {
	Day  string `yaml:"day"`
	Time string `yaml:"time"`
}

type paymentFile struct {
	Kind   string `yaml:"kind"`
	Amount string `yaml:"amount"`
}

// DecodeRoster parses students.yaml content.
func DecodeRoster(data []byte) (model.Tutor, []model.Student, error) {
	var rf rosterFile
	if err := yaml.Unmarshal(data, &rf); err != nil {
		return model.Tutor{}, nil, fmt.Errorf("parsing roster: %w", err)
	}

	tutor := model.Tutor{
		ID:   rf.Tutor.ID,
		Name: model.PersonalName{First: rf.Tutor.First, Last: rf.Tutor.Last},
	}

	students := make([]model.Student, 0, len(rf.Students))
	for i, sf := range rf.Students {
		s, err := sf.toModel()
		if err != nil {
			return model.Tutor{}, nil, fmt.Errorf("student %d (%s): %w", i+1, sf.ID, err)
		}
		students = append(students, s)
	}
	return tutor, students, nil
}

// EncodeRoster renders students.yaml content. Sessions are not written.
func EncodeRoster(tutor model.Tutor, students []model.Student) ([]byte, error) {
	rf := rosterFile{
		Tutor: tutorFile{ID: tutor.ID, First: tutor.Name.First, Last: tutor.Name.Last},
	}
	for _, s := range students {
		rf.Students = append(rf.Students, studentToFile(s))
	}
	data, err := yaml.Marshal(&rf)
	if err != nil {
		return nil, fmt.Errorf("marshaling roster: %w", err)
	}
	return data, nil
}

func (sf studentFile) toModel() (model.Student, error) {
	s := model.Student{
		ID:      sf.ID,
		Name:    model.PersonalName{First: sf.First, Last: sf.Last, Other: sf.Other},
		Subject: model.Subject(sf.Subject),
		Payment: model.Payment{Kind: model.PaymentKind(sf.Payment.Kind), Amount: decimal.Zero},
	}

	for _, slot := range sf.Schedule {
		day, err := calendar.ParseWeekday(slot.Day)
		if err != nil {
			return model.Student{}, fmt.Errorf("schedule: %w", err)
		}
		s.Schedule = append(s.Schedule, model.WeeklySlot{Day: day, Time: slot.Time})
	}

	if sf.Payment.Amount != "" {
		amount, err := decimal.NewFromString(sf.Payment.Amount)
		if err != nil {
			return model.Student{}, fmt.Errorf("parsing payment amount %q: %w", sf.Payment.Amount, err)
		}
		s.Payment.Amount = amount
	}

	if sf.TuitionStart != "" {
		start, err := time.Parse(dateFormat, sf.TuitionStart)
		if err != nil {
			return model.Student{}, fmt.Errorf("parsing tuition_start %q: %w", sf.TuitionStart, err)
		}
		s.TuitionStart = start
	}
	return s, nil
}

func studentToFile(s model.Student) studentFile {
	sf := studentFile{
		ID:      s.ID,
		First:   s.Name.First,
		Last:    s.Name.Last,
		Other:   s.Name.Other,
		Subject: string(s.Subject),
		Payment: paymentFile{Kind: string(s.Payment.Kind), Amount: s.Payment.Amount.String()},
	}
	for _, slot := range s.Schedule {
		sf.Schedule = append(sf.Schedule, slotFile{Day: calendar.ShortWeekday(slot.Day), Time: slot.Time})
	}
	if !s.TuitionStart.IsZero() {
		sf.TuitionStart = s.TuitionStart.Format(dateFormat)
	}
	return sf
}
