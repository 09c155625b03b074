package importer

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/store"
)

func parseTestdata(t *testing.T, loc *time.Location) []Event {
	t.Helper()
	f, err := os.Open("testdata/gcal_export.csv")
	require.NoError(t, err)
	defer f.Close()

	events, err := (&GoogleCalendarParser{}).Parse(f, loc)
	require.NoError(t, err)
	return events
}

func TestGoogleCalendarParser_Parse(t *testing.T) {
	events := parseTestdata(t, time.UTC)
	require.Len(t, events, 4, "all-day event skipped")

	assert.Equal(t, "Add Maths - Mary Jane", events[0].Title)
	assert.Equal(t, time.Date(2025, 11, 4, 17, 30, 0, 0, time.UTC), events[0].Start)
	assert.Equal(t, time.Date(2025, 11, 20, 16, 0, 0, 0, time.UTC), events[2].Start, "lower-case pm accepted")
	assert.Equal(t, "Dentist", events[3].Title)
}

func TestGoogleCalendarParser_Location(t *testing.T) {
	accra := time.FixedZone("GMT-1", -3600)
	events := parseTestdata(t, accra)
	assert.Equal(t, accra, events[0].Start.Location())
	assert.Equal(t, 18, events[0].Start.UTC().Hour())
}

func TestGoogleCalendarParser_Errors(t *testing.T) {
	p := &GoogleCalendarParser{}

	_, err := p.Parse(strings.NewReader("Title,When\nx,y\n"), nil)
	assert.ErrorContains(t, err, `missing "subject" column`)

	_, err = p.Parse(strings.NewReader("Subject,Start Date,Start Time\nMary,2025-11-04,17:30\n"), nil)
	assert.ErrorContains(t, err, "row 2")

	events, err := p.Parse(strings.NewReader("Subject,Start Date,Start Time\n"), nil)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestRegistry(t *testing.T) {
	r := DefaultRegistry()
	assert.NotNil(t, r.Get("gcal"))
	assert.NotNil(t, r.Get("GCAL"))
	assert.Nil(t, r.Get("outlook"))

	assert.Panics(t, func() { r.Register(&GoogleCalendarParser{}) })
}

func students() []model.Student {
	return []model.Student{
		{ID: "s1", Name: model.PersonalName{First: "Mary", Last: "Jane"}},
		{ID: "s2", Name: model.PersonalName{First: "Peter", Other: "Benjamin", Last: "Parker"}},
		{ID: "s3", Name: model.PersonalName{First: "Peter", Last: "Parker"}},
	}
}

func TestMatch(t *testing.T) {
	events := parseTestdata(t, time.UTC)
	existing := []store.SessionRecord{{StudentID: "s1", StartedAt: time.Date(2025, 11, 4, 17, 30, 0, 0, time.UTC)}}

	matched, unmatched := Match(events, students(), existing)

	require.Len(t, matched, 2, "Mary's session is already logged")
	for _, m := range matched {
		assert.Equal(t, "s2", m.StudentID, "longest name wins")
	}
	assert.Equal(t, "Ext Maths: Peter Benjamin Parker", matched[0].Notes)

	require.Len(t, unmatched, 1)
	assert.Equal(t, "Dentist", unmatched[0].Title)
}

func TestMatch_DeduplicatesWithinExport(t *testing.T) {
	ev := Event{Title: "mary jane", Start: time.Date(2025, 11, 4, 17, 30, 0, 0, time.UTC)}
	matched, _ := Match([]Event{ev, ev}, students(), nil)
	assert.Len(t, matched, 1)
}

func TestScanAndMarkProcessed(t *testing.T) {
	dir := t.TempDir()
	importPath := filepath.Join(dir, "import")
	require.NoError(t, os.MkdirAll(importPath, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "nov.csv"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(importPath, "notes.txt"), []byte("x"), 0o644))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "nov.csv", files[0].Name)
	assert.Equal(t, int64(1), files[0].Size)

	require.NoError(t, MarkProcessed(dir, "nov.csv"))
	_, err = os.Stat(filepath.Join(dir, "import", "processed", "nov.csv"))
	require.NoError(t, err)

	files, err = Scan(dir)
	require.NoError(t, err)
	assert.Empty(t, files)

	files, err = Scan(t.TempDir())
	require.NoError(t, err)
	assert.Nil(t, files)
}
