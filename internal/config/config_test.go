package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	cfg := Default("Andy", "Murray")
	cfg.Timezone = "Africa/Accra"
	cfg.Currency = "USD"

	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	got, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, cfg.Tutor, got.Tutor)
	assert.Equal(t, "USD", got.Currency)
	assert.Equal(t, "Africa/Accra", got.Timezone)
	assert.Equal(t, cfg.Files, got.Files)
	assert.Equal(t, cfg.Git.AutoCommit, got.Git.AutoCommit)
	assert.Equal(t, cfg.Git.AuthorName, got.Git.AuthorName)
	assert.Equal(t, cfg.Git.AuthorEmail, got.Git.AuthorEmail)
}

func TestDefaults(t *testing.T) {
	cfg := Default("Andy", "Murray")

	assert.Equal(t, "Andy", cfg.Tutor.FirstName)
	assert.Equal(t, "Murray", cfg.Tutor.LastName)
	assert.Equal(t, "GHS", cfg.Currency)
	assert.Equal(t, "UTC", cfg.Timezone)
	assert.Equal(t, "students.yaml", cfg.Files.Roster)
	assert.Equal(t, "sessions.csv", cfg.Files.Sessions)
	assert.True(t, cfg.Git.AutoCommit)
	require.NoError(t, cfg.Validate())
}

func TestLoadNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestYAMLFormat(t *testing.T) {
	cfg := Default("Andy", "Murray")
	path := filepath.Join(t.TempDir(), FileName)
	err := Save(path, cfg)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	contents := string(data)

	assert.Contains(t, contents, "first_name: Andy")
	assert.Contains(t, contents, "currency: GHS")
	assert.Contains(t, contents, "roster: students.yaml")
	assert.Contains(t, contents, "auto_commit: true")
}

func TestValidate(t *testing.T) {
	cfg := Default("", "Murray")
	cfg.Timezone = "Mars/Olympus"
	cfg.Files.Sessions = cfg.Files.Roster
	cfg.Git.AuthorEmail = ""

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "tutor.first_name is required")
	assert.Contains(t, err.Error(), `invalid timezone "Mars/Olympus"`)
	assert.Contains(t, err.Error(), "must differ")
	assert.Contains(t, err.Error(), "git.author_name and git.author_email")
}

func TestLocation(t *testing.T) {
	cfg := Default("Andy", "Murray")
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = "Mars/Olympus"
	assert.Equal(t, time.UTC, cfg.Location())

	cfg.Timezone = ""
	assert.Equal(t, time.UTC, cfg.Location())
}
