package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/tutorledger/tutorledger/internal/store"
)

func newSessionCommand(flags *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Record and review sessions",
	}
	cmd.AddCommand(newSessionLogCommand(flags), newSessionListCommand(flags))
	return cmd
}

// parseSessionTime accepts RFC3339 or "YYYY-MM-DD HH:MM" in loc.
func parseSessionTime(s string, loc *time.Location) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.ParseInLocation("2006-01-02 15:04", s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("want RFC3339 or YYYY-MM-DD HH:MM, got %q", s)
	}
	return t, nil
}

func newSessionLogCommand(flags *globalFlags) *cobra.Command {
	var at, notes string

	cmd := &cobra.Command{
		Use:   "log <student-id>",
		Short: "Record a session that took place",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}

			started := time.Now().In(ws.cfg.Location())
			if at != "" {
				if started, err = parseSessionTime(at, ws.cfg.Location()); err != nil {
					return fmt.Errorf("--at: %w", err)
				}
			}

			rec := store.SessionRecord{StudentID: args[0], StartedAt: started, Notes: notes}
			if err := ws.store.LogSession(rec); err != nil {
				return err
			}
			ws.commit(fmt.Sprintf("session: %s at %s", rec.StudentID, started.Format(time.RFC3339)), ws.cfg.Files.Sessions)

			fmt.Fprintf(cmd.OutOrStdout(), "Logged session for %s at %s\n", rec.StudentID, started.Format("Mon 02 Jan 2006 15:04"))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", `start time, RFC3339 or "YYYY-MM-DD HH:MM" (default: now)`)
	cmd.Flags().StringVar(&notes, "notes", "", "free-text notes")
	return cmd
}

func newSessionListCommand(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "list [student-id]",
		Short: "Show the session log",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}
			records, err := ws.store.ReadSessions()
			if err != nil {
				return err
			}

			var rows [][]string
			for _, rec := range records {
				if len(args) == 1 && rec.StudentID != args[0] {
					continue
				}
				rows = append(rows, []string{
					rec.StudentID,
					rec.StartedAt.In(ws.cfg.Location()).Format("Mon 02 Jan 2006 15:04"),
					rec.Notes,
				})
			}
			if len(rows) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No sessions.")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Student", "Started", "Notes"}, rows))
			return nil
		},
	}
}
