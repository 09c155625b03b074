package commands

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tutorledger/tutorledger/internal/importer"
)

func newImportCommand(flags *globalFlags) *cobra.Command {
	var format string
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "import [file...]",
		Short: "Log sessions from a calendar export",
		Long: `Reads calendar exports and logs one session per event whose title
contains a student's full name. Without arguments every CSV in import/ is
read and moved to import/processed/ afterwards.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(flags)
			if err != nil {
				return err
			}
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			type source struct {
				path     string
				queued   bool
				fileName string
			}
			var sources []source
			for _, a := range args {
				sources = append(sources, source{path: a})
			}
			if len(args) == 0 {
				files, err := importer.Scan(ws.root)
				if err != nil {
					return err
				}
				for _, f := range files {
					sources = append(sources, source{path: f.Path, queued: true, fileName: f.Name})
				}
			}
			if len(sources) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing to import.")
				return nil
			}

			// Each file is committed on its own so a later failure leaves
			// earlier imports recorded.
			total := 0
			for _, src := range sources {
				n, err := importFile(cmd, ws, parser, src.path, dryRun)
				if err != nil {
					return err
				}
				total += n
				if dryRun {
					continue
				}
				if src.queued {
					if err := importer.MarkProcessed(ws.root, src.fileName); err != nil {
						return err
					}
				}
				ws.commit(fmt.Sprintf("import: %d sessions from %s", n, filepath.Base(src.path)), ws.cfg.Files.Sessions, "import")
			}

			if dryRun {
				fmt.Fprintf(cmd.OutOrStdout(), "Would log %d sessions.\n", total)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged %d sessions.\n", total)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "gcal", "export format")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "report matches without logging them")
	return cmd
}

func importFile(cmd *cobra.Command, ws *workspace, parser importer.Parser, path string, dryRun bool) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	events, err := parser.Parse(f, ws.cfg.Location())
	if err != nil {
		return 0, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	snap, err := ws.load()
	if err != nil {
		return 0, err
	}
	existing, err := ws.store.ReadSessions()
	if err != nil {
		return 0, err
	}

	matched, unmatched := importer.Match(events, snap.Roster.Students(), existing)
	slog.Debug("parsed export", "file", path, "events", len(events), "matched", len(matched), "unmatched", len(unmatched))
	for _, ev := range unmatched {
		fmt.Fprintf(cmd.OutOrStdout(), "No student for %q at %s\n", ev.Title, ev.Start.Format("Mon 02 Jan 2006 15:04"))
	}

	if dryRun || len(matched) == 0 {
		return len(matched), nil
	}
	if err := ws.store.LogSession(matched...); err != nil {
		return 0, err
	}
	return len(matched), nil
}
