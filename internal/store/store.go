// Package store keeps the roster on disk: students.yaml for the roster and
// sessions.csv for the log of sessions that took place. Load hands the
// engine an immutable snapshot.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/roster"
)

// ErrStudentNotFound is returned when a student ID is not on the roster.
var ErrStudentNotFound = errors.New("student not found")

// Options locate the data files inside the repo root.
type Options struct {
	RosterFile   string         // relative to root, default "students.yaml"
	SessionsFile string         // relative to root, default "sessions.csv"
	Location     *time.Location // sessions are read in this zone, default UTC
}

// Store reads and appends the roster files under one directory.
type Store struct {
	root string
	opts Options
}

// New creates a Store rooted at root.
func New(root string, opts Options) *Store {
	if opts.RosterFile == "" {
		opts.RosterFile = "students.yaml"
	}
	if opts.SessionsFile == "" {
		opts.SessionsFile = "sessions.csv"
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Store{root: root, opts: opts}
}

// RosterPath is the absolute path of students.yaml.
func (s *Store) RosterPath() string {
	return filepath.Join(s.root, s.opts.RosterFile)
}

// SessionsPath is the absolute path of sessions.csv.
func (s *Store) SessionsPath() string {
	return filepath.Join(s.root, s.opts.SessionsFile)
}

// Snapshot is a loaded roster plus the session log rows that named no
// student on it.
type Snapshot struct {
	Roster   *roster.Roster
	Orphaned []SessionRecord
}

// Init writes an empty roster and session log. Existing files are left alone.
func (s *Store) Init(tutor model.Tutor) error {
	if _, err := os.Stat(s.RosterPath()); errors.Is(err, fs.ErrNotExist) {
		if err := s.SaveRoster(tutor, nil); err != nil {
			return err
		}
	}
	if _, err := os.Stat(s.SessionsPath()); errors.Is(err, fs.ErrNotExist) {
		f, err := os.Create(s.SessionsPath())
		if err != nil {
			return fmt.Errorf("creating session log: %w", err)
		}
		defer f.Close()
		if err := WriteSessions(f, nil); err != nil {
			return fmt.Errorf("writing session log: %w", err)
		}
	}
	return nil
}

// Load reads both files and returns a snapshot with each student's sessions
// attached in chronological order.
func (s *Store) Load() (*Snapshot, error) {
	tutor, students, err := s.readRoster()
	if err != nil {
		return nil, err
	}
	records, err := s.ReadSessions()
	if err != nil {
		return nil, err
	}

	index := make(map[string]int, len(students))
	for i, st := range students {
		index[st.ID] = i
	}

	var orphaned []SessionRecord
	for _, rec := range records {
		i, ok := index[rec.StudentID]
		if !ok {
			orphaned = append(orphaned, rec)
			continue
		}
		students[i].Sessions = append(students[i].Sessions, rec.StartedAt.In(s.opts.Location))
	}
	for i := range students {
		slices.SortStableFunc(students[i].Sessions, func(a, b time.Time) int { return a.Compare(b) })
	}

	return &Snapshot{Roster: roster.New(tutor, students), Orphaned: orphaned}, nil
}

// SaveRoster overwrites students.yaml.
func (s *Store) SaveRoster(tutor model.Tutor, students []model.Student) error {
	data, err := EncodeRoster(tutor, students)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.RosterPath()), 0o755); err != nil {
		return fmt.Errorf("creating roster dir: %w", err)
	}
	if err := os.WriteFile(s.RosterPath(), data, 0o644); err != nil {
		return fmt.Errorf("writing roster: %w", err)
	}
	return nil
}

// AddStudentParams holds parameters for enrolling a student.
type AddStudentParams struct {
	Name         model.PersonalName
	Subject      model.Subject
	Schedule     []model.WeeklySlot
	PaymentKind  model.PaymentKind
	Amount       decimal.Decimal
	TuitionStart time.Time
}

// AddStudent appends a student to students.yaml and returns its new ID.
func (s *Store) AddStudent(params AddStudentParams) (string, error) {
	if strings.TrimSpace(params.Name.First) == "" || strings.TrimSpace(params.Name.Last) == "" {
		return "", fmt.Errorf("first and last name are required")
	}
	if !params.PaymentKind.Valid() {
		return "", fmt.Errorf("unknown payment kind %q", params.PaymentKind)
	}
	if params.Amount.IsNegative() {
		return "", fmt.Errorf("payment amount %s is negative", params.Amount)
	}

	tutor, students, err := s.readRoster()
	if err != nil {
		return "", err
	}

	id := uuid.NewString()
	students = append(students, model.Student{
		ID:           id,
		Name:         params.Name,
		Subject:      params.Subject,
		Schedule:     params.Schedule,
		Payment:      model.Payment{Kind: params.PaymentKind, Amount: params.Amount},
		TuitionStart: params.TuitionStart,
	})
	if err := s.SaveRoster(tutor, students); err != nil {
		return "", err
	}
	return id, nil
}

// LogSession appends sessions to sessions.csv after checking every student
// exists. Nothing is written if any record names an unknown student.
func (s *Store) LogSession(records ...SessionRecord) error {
	_, students, err := s.readRoster()
	if err != nil {
		return err
	}
	known := make(map[string]bool, len(students))
	for _, st := range students {
		known[st.ID] = true
	}
	for _, rec := range records {
		if !known[rec.StudentID] {
			return fmt.Errorf("%w: %s", ErrStudentNotFound, rec.StudentID)
		}
	}

	// A new log starts with the header.
	path := s.SessionsPath()
	isNew := false
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening session log: %w", err)
	}
	defer f.Close()

	write := AppendSessions
	if isNew {
		write = WriteSessions
	}
	if err := write(f, records); err != nil {
		return fmt.Errorf("appending sessions: %w", err)
	}
	return nil
}

// ReadSessions reads sessions.csv. A missing file is an empty log.
func (s *Store) ReadSessions() ([]SessionRecord, error) {
	path := s.SessionsPath()
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening session log %s: %w", path, err)
	}
	defer f.Close()

	records, err := ReadSessions(f)
	if err != nil {
		return nil, fmt.Errorf("reading session log %s: %w", path, err)
	}
	return records, nil
}

func (s *Store) readRoster() (model.Tutor, []model.Student, error) {
	data, err := os.ReadFile(s.RosterPath())
	if err != nil {
		return model.Tutor{}, nil, fmt.Errorf("reading roster: %w", err)
	}
	return DecodeRoster(data)
}
