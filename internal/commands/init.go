package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tutorledger/tutorledger/internal/config"
	"github.com/tutorledger/tutorledger/internal/gitops"
	"github.com/tutorledger/tutorledger/internal/model"
	"github.com/tutorledger/tutorledger/internal/store"
)

type initOptions struct {
	firstName string
	lastName  string
	currency  string
	timezone  string
	noGit     bool
}

func newInitCommand() *cobra.Command {
	var opts initOptions

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new tutorledger repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			hash, err := runInit(absDir, opts)
			if err != nil {
				return err
			}
			if hash != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tutorledger repository at %s (%s)\n", absDir, hash)
			} else {
				fmt.Fprintf(cmd.OutOrStdout(), "Initialized tutorledger repository at %s\n", absDir)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.firstName, "first-name", "", "tutor first name (required)")
	_ = cmd.MarkFlagRequired("first-name")
	cmd.Flags().StringVar(&opts.lastName, "last-name", "", "tutor last name")
	cmd.Flags().StringVar(&opts.currency, "currency", "GHS", "currency label for reports")
	cmd.Flags().StringVar(&opts.timezone, "timezone", "UTC", "IANA time zone sessions are recorded in")
	cmd.Flags().BoolVar(&opts.noGit, "no-git", false, "do not create a git repository")

	return cmd
}

// runInit lays out a repository and returns the initial commit hash, if any.
func runInit(dir string, opts initOptions) (string, error) {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return "", fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return "", fmt.Errorf("checking config: %w", err)
	}

	for _, d := range []string{"import", filepath.Join("import", "processed")} {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	cfg := config.Default(opts.firstName, opts.lastName)
	cfg.Currency = opts.currency
	cfg.Timezone = opts.timezone
	if opts.noGit {
		cfg.Git.AutoCommit = false
	}
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return "", err
	}

	st := store.New(dir, store.Options{
		RosterFile:   cfg.Files.Roster,
		SessionsFile: cfg.Files.Sessions,
		Location:     cfg.Location(),
	})
	tutor := model.Tutor{
		ID:   cfg.Tutor.ID,
		Name: model.PersonalName{First: cfg.Tutor.FirstName, Last: cfg.Tutor.LastName},
	}
	if err := st.Init(tutor); err != nil {
		return "", err
	}

	if err := os.WriteFile(filepath.Join(dir, "import", ".gitkeep"), []byte{}, 0o644); err != nil {
		return "", fmt.Errorf("writing .gitkeep: %w", err)
	}

	if opts.noGit {
		return "", nil
	}
	if !gitops.IsRepo(dir) {
		if err := gitops.Init(dir); err != nil {
			return "", err
		}
	}
	author := gitops.Author{Name: cfg.Git.AuthorName, Email: cfg.Git.AuthorEmail}
	hash, err := gitops.Commit(dir, "init: roster for "+tutor.Name.Full(), author)
	if err != nil {
		return "", fmt.Errorf("initial commit: %w", err)
	}
	return hash, nil
}
