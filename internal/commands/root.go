package commands

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/tutorledger/tutorledger/internal/buildinfo"
)

// globalFlags are the persistent flags every subcommand sees.
type globalFlags struct {
	repo    string
	today   string
	verbose bool
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "tutorledger",
		Short:   "Roster, sessions and income tracking for private tutors",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", buildinfo.Version, buildinfo.Commit, buildinfo.Date),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := slog.LevelWarn
			if flags.verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flags.repo, "repo", ".", "tutorledger repository directory")
	pf.StringVar(&flags.today, "today", "", "reference date YYYY-MM-DD (default: today in the configured timezone)")
	pf.BoolVarP(&flags.verbose, "verbose", "v", false, "debug logging")

	rootCmd.AddCommand(
		newInitCommand(),
		newStudentCommand(flags),
		newSessionCommand(flags),
		newReportCommand(flags),
		newImportCommand(flags),
	)

	return rootCmd
}
