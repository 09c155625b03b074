package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// SessionsHeader is the CSV header for sessions.csv.
const SessionsHeader = "student_id,started_at,notes"

const (
	numSessionFields = 3
	colStudentID     = 0
	colStartedAt     = 1
	colNotes         = 2
)

// SessionRecord is one row in sessions.csv: a session that took place.
type SessionRecord struct {
	StudentID string
	StartedAt time.Time
	Notes     string
}

// ReadSessions reads all records from a sessions.csv reader.
func ReadSessions(r io.Reader) ([]SessionRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = numSessionFields

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading sessions CSV: %w", err)
	}

	if len(records) == 0 {
		return nil, nil
	}

	// Skip header row.
	var out []SessionRecord
	for i, rec := range records[1:] {
		s, err := UnmarshalSession(rec)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		out = append(out, s)
	}
	return out, nil
}

// WriteSessions writes records to a sessions.csv writer (including header).
func WriteSessions(w io.Writer, records []SessionRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write(strings.Split(SessionsHeader, ",")); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, rec := range records {
		if err := cw.Write(MarshalSession(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// AppendSessions appends records to an existing sessions.csv writer (no header).
func AppendSessions(w io.Writer, records []SessionRecord) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, rec := range records {
		if err := cw.Write(MarshalSession(rec)); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// MarshalSession converts a SessionRecord to a CSV row.
func MarshalSession(rec SessionRecord) []string {
	row := make([]string, numSessionFields)
	row[colStudentID] = rec.StudentID
	row[colStartedAt] = rec.StartedAt.Format(time.RFC3339)
	row[colNotes] = rec.Notes
	return row
}

// UnmarshalSession converts a CSV row to a SessionRecord.
func UnmarshalSession(record []string) (SessionRecord, error) {
	if len(record) != numSessionFields {
		return SessionRecord{}, fmt.Errorf("expected %d fields, got %d", numSessionFields, len(record))
	}
	if record[colStudentID] == "" {
		return SessionRecord{}, fmt.Errorf("missing student_id")
	}

	ts, err := time.Parse(time.RFC3339, record[colStartedAt])
	if err != nil {
		return SessionRecord{}, fmt.Errorf("parsing started_at %q: %w", record[colStartedAt], err)
	}

	return SessionRecord{
		StudentID: record[colStudentID],
		StartedAt: ts,
		Notes:     record[colNotes],
	}, nil
}
