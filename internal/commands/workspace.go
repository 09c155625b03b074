package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/tutorledger/tutorledger/internal/config"
	"github.com/tutorledger/tutorledger/internal/gitops"
	"github.com/tutorledger/tutorledger/internal/roster"
	"github.com/tutorledger/tutorledger/internal/store"
)

// workspace is an opened tutorledger repository.
type workspace struct {
	root  string
	cfg   *config.Config
	store *store.Store
}

func openWorkspace(flags *globalFlags) (*workspace, error) {
	root, err := filepath.Abs(flags.repo)
	if err != nil {
		return nil, fmt.Errorf("resolving path: %w", err)
	}
	cfg, err := config.Load(filepath.Join(root, config.FileName))
	if err != nil {
		return nil, fmt.Errorf("%w (run 'tutorledger init' first?)", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	st := store.New(root, store.Options{
		RosterFile:   cfg.Files.Roster,
		SessionsFile: cfg.Files.Sessions,
		Location:     cfg.Location(),
	})
	slog.Debug("opened repository", "root", root, "timezone", cfg.Location().String())
	return &workspace{root: root, cfg: cfg, store: st}, nil
}

// load reads a snapshot and warns about data the engine will ignore or
// count oddly.
func (w *workspace) load() (*store.Snapshot, error) {
	snap, err := w.store.Load()
	if err != nil {
		return nil, err
	}
	for _, issue := range roster.Validate(snap.Roster.Students()) {
		slog.Warn("roster issue", "student", issue.StudentID, "problem", issue.Description)
	}
	for _, rec := range snap.Orphaned {
		slog.Warn("session for unknown student ignored", "student", rec.StudentID, "started_at", rec.StartedAt.Format(time.RFC3339))
	}
	slog.Debug("loaded roster", "students", snap.Roster.Len(), "orphaned_sessions", len(snap.Orphaned))
	return snap, nil
}

// reference is the instant reports are computed for. The wall clock is only
// read here.
func (w *workspace) reference(flags *globalFlags) (time.Time, error) {
	loc := w.cfg.Location()
	if flags.today == "" {
		return time.Now().In(loc), nil
	}
	t, err := time.ParseInLocation("2006-01-02", flags.today, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing --today %q: %w", flags.today, err)
	}
	return t, nil
}

// commit records changed data files when auto-commit is on.
func (w *workspace) commit(message string, paths ...string) {
	if !w.cfg.Git.AutoCommit || !gitops.IsRepo(w.root) {
		return
	}
	author := gitops.Author{Name: w.cfg.Git.AuthorName, Email: w.cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(w.root, message, author, paths...)
	if err != nil {
		slog.Warn("auto-commit failed", "err", err)
		return
	}
	if hash != "" {
		slog.Debug("committed", "hash", hash, "message", message)
	}
}
