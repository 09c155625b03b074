// Package importer turns calendar exports into logged sessions.
package importer

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/store"
)

// Event is one calendar entry read from an export.
type Event struct {
	Title string
	Start time.Time
}

// Parser converts a calendar export into Events. Times without a zone in
// the export are read in loc.
type Parser interface {
	Parse(r io.Reader, loc *time.Location) ([]Event, error)
	Format() string
}

// Registry holds named parsers.
type Registry struct {
	parsers map[string]Parser
}

// FileInfo describes a CSV file in the import directory.
type FileInfo struct {
	Name string
	Path string
	Size int64
}

// NewRegistry creates an empty parser registry.
func NewRegistry() *Registry {
	return &Registry{parsers: make(map[string]Parser)}
}

// Register adds a parser. Panics on duplicate format.
func (r *Registry) Register(p Parser) {
	key := strings.ToLower(p.Format())
	if _, ok := r.parsers[key]; ok {
		panic("duplicate parser format: " + key)
	}
	r.parsers[key] = p
}

// Get returns the parser for format, or nil.
func (r *Registry) Get(format string) Parser {
	return r.parsers[strings.ToLower(format)]
}

// DefaultRegistry returns a registry with all built-in parsers.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(&GoogleCalendarParser{})
	return r
}

// importDir is the subdirectory for calendar exports.
const importDir = "import"

// processedDir is the subdirectory for imported exports.
const processedDir = "import/processed"

// Scan returns CSV files in <repoRoot>/import/.
func Scan(repoRoot string) ([]FileInfo, error) {
	dir := filepath.Join(repoRoot, importDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading import dir: %w", err)
	}

	var files []FileInfo
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".csv") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", e.Name(), err)
		}
		files = append(files, FileInfo{
			Name: e.Name(),
			Path: filepath.Join(dir, e.Name()),
			Size: info.Size(),
		})
	}
	return files, nil
}

// MarkProcessed moves a file from import/ to import/processed/.
func MarkProcessed(repoRoot, fileName string) error {
	src := filepath.Join(repoRoot, importDir, fileName)
	dstDir := filepath.Join(repoRoot, processedDir)

	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating processed dir: %w", err)
	}

	dst := filepath.Join(dstDir, fileName)
	if err := os.Rename(src, dst); err != nil {
		return fmt.Errorf("moving %s to processed: %w", fileName, err)
	}
	return nil
}

// Match assigns each event to the student whose full name appears in its
// title, ignoring case. The longest matching name wins, so "Ama Mensah Jr"
// is not taken by "Ama Mensah". Events already in existing (same student,
// same start) are dropped. Events matching nobody are returned separately.
func Match(events []Event, students []model.Student, existing []store.SessionRecord) (matched []store.SessionRecord, unmatched []Event) {
	type key struct {
		id    string
		start int64
	}
	seen := make(map[key]bool, len(existing))
	for _, rec := range existing {
		seen[key{rec.StudentID, rec.StartedAt.Unix()}] = true
	}

	for _, ev := range events {
		title := strings.ToLower(ev.Title)
		best, bestLen := "", 0
		for _, s := range students {
			name := strings.ToLower(s.Name.Full())
			if name != "" && len(name) > bestLen && strings.Contains(title, name) {
				best, bestLen = s.ID, len(name)
			}
		}
		if best == "" {
			unmatched = append(unmatched, ev)
			continue
		}
		k := key{best, ev.Start.Unix()}
		if seen[k] {
			continue
		}
		seen[k] = true
		matched = append(matched, store.SessionRecord{StudentID: best, StartedAt: ev.Start, Notes: ev.Title})
	}
	return matched, unmatched
}
