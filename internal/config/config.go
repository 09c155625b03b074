package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FileName is the config file at the root of a tutorledger repo.
const FileName = "tutorledger.yaml"

// Config represents the top-level tutorledger.yaml configuration.
type Config struct {
	Tutor    TutorConfig `yaml:"tutor"`
	Currency string      `yaml:"currency"` // display label, e.g. "GHS"
	Timezone string      `yaml:"timezone"` // IANA name; sessions and "today" are read in it
	Files    FilesConfig `yaml:"files"`
	Git      GitConfig   `yaml:"git"`
}

// TutorConfig identifies the tutor who owns the roster.
type TutorConfig struct {
	ID        string `yaml:"id"`
	FirstName string `yaml:"first_name"`
	LastName  string `yaml:"last_name"`
}

// FilesConfig names the data files, relative to the repo root.
type FilesConfig struct {
	Roster   string `yaml:"roster"`
	Sessions string `yaml:"sessions"`
}

// GitConfig controls git integration.
type GitConfig struct {
	AutoCommit  bool   `yaml:"auto_commit"`
	AuthorName  string `yaml:"author_name"`
	AuthorEmail string `yaml:"author_email"`
}

// Load reads a tutorledger.yaml file from disk.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

// Save writes a Config to a YAML file.
func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Default returns a Config with sensible defaults for a new roster.
func Default(firstName, lastName string) *Config {
	return &Config{
		Tutor: TutorConfig{
			ID:        "tutor1",
			FirstName: firstName,
			LastName:  lastName,
		},
		Currency: "GHS",
		Timezone: "UTC",
		Files: FilesConfig{
			Roster:   "students.yaml",
			Sessions: "sessions.csv",
		},
		Git: GitConfig{
			AutoCommit:  true,
			AuthorName:  "Tutorledger",
			AuthorEmail: "ledger@tutorledger.local",
		},
	}
}

// Validate reports every problem with the configuration at once.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Tutor.FirstName) == "" {
		problems = append(problems, "tutor.first_name is required")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone %q: %v", c.Timezone, err))
	}
	if c.Files.Roster == "" {
		problems = append(problems, "files.roster is required")
	}
	if c.Files.Sessions == "" {
		problems = append(problems, "files.sessions is required")
	}
	if c.Files.Roster != "" && c.Files.Roster == c.Files.Sessions {
		problems = append(problems, "files.roster and files.sessions must differ")
	}
	if c.Git.AutoCommit && (c.Git.AuthorName == "" || c.Git.AuthorEmail == "") {
		problems = append(problems, "git.author_name and git.author_email are required when auto_commit is on")
	}

	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// Location returns the configured time zone, UTC when unset or unknown.
func (c *Config) Location() *time.Location {
	if c.Timezone == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
