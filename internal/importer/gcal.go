package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"
)

// GoogleCalendarParser parses the CSV layout Google Calendar imports and
// exports: Subject,Start Date,Start Time,End Date,End Time,All Day Event,...
type GoogleCalendarParser struct{}

const (
	gcalDateTimeFormat = "01/02/2006 03:04 PM"
	gcalColSubject     = "subject"
	gcalColStartDate   = "start date"
	gcalColStartTime   = "start time"
	gcalColAllDay      = "all day event"
)

// Format returns the parser name.
func (p *GoogleCalendarParser) Format() string { return "gcal" }

// Parse reads a Google Calendar CSV. All-day events are skipped: a session
// has a start time.
func (p *GoogleCalendarParser) Parse(r io.Reader, loc *time.Location) ([]Event, error) {
	if loc == nil {
		loc = time.UTC
	}
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading calendar CSV: %w", err)
	}
	if len(records) <= 1 {
		return nil, nil
	}

	cols := make(map[string]int, len(records[0]))
	for i, h := range records[0] {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, want := range []string{gcalColSubject, gcalColStartDate, gcalColStartTime} {
		if _, ok := cols[want]; !ok {
			return nil, fmt.Errorf("calendar CSV missing %q column", want)
		}
	}

	field := func(rec []string, col string) string {
		i, ok := cols[col]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	var events []Event
	for i, rec := range records[1:] {
		if strings.EqualFold(field(rec, gcalColAllDay), "true") || field(rec, gcalColStartTime) == "" {
			continue
		}
		raw := field(rec, gcalColStartDate) + " " + strings.ToUpper(field(rec, gcalColStartTime))
		start, err := time.ParseInLocation(gcalDateTimeFormat, raw, loc)
		if err != nil {
			return nil, fmt.Errorf("row %d: parsing start %q: %w", i+2, raw, err)
		}
		events = append(events, Event{Title: field(rec, gcalColSubject), Start: start})
	}
	return events, nil
}
