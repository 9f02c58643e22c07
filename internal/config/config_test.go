package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	var cfg Config
	cfg.App.Port = 38517
	cfg.Polling.EmailSeconds = 300
	cfg.Polling.FeedSeconds = 900
	return cfg
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  port: 12345
  feed_url: "https://example.org/jobs.json"
email:
  enabled: true
  imap_host: imap.example.org
  imap_port: 993
  username: me@example.org
  mailbox: INBOX
  search_subject_any: ["ib-liste"]
polling:
  email_seconds: 300
  feed_seconds: 900
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 12345, cfg.App.Port)
	require.Equal(t, "https://example.org/jobs.json", cfg.App.FeedURL)
	require.True(t, cfg.Email.Enabled)
	require.Equal(t, []string{"ib-liste"}, cfg.Email.SearchSubjectAny)
}

func TestNormalizeAndValidateErrors(t *testing.T) {
	cfg := validConfig()
	cfg.App.Port = 0
	cfg.Polling.EmailSeconds = 0

	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	require.Len(t, vr.Errors, 2)
}

func TestNormalizeAndValidateEmailRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Email.Enabled = true

	_, vr := NormalizeAndValidate(cfg)
	require.False(t, vr.OK())
	// imap_host, imap_port, username, mailbox
	require.Len(t, vr.Errors, 4)
}

func TestNormalizeAndValidateTrimsSubjectList(t *testing.T) {
	cfg := validConfig()
	cfg.Email.SearchSubjectAny = []string{" ib-liste ", "IB-LISTE", "", "other"}

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK())
	require.Equal(t, []string{"ib-liste", "other"}, out.Email.SearchSubjectAny)
}

func TestSaveAtomicAndEnsureUserConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")

	require.NoError(t, SaveAtomic(path, validConfig()))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 38517, loaded.App.Port)

	// bootstrap copies the default into an empty data dir
	dataDir := t.TempDir()
	userPath, err := EnsureUserConfig(dataDir, path)
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dataDir, "config.yml"), userPath)

	again, err := EnsureUserConfig(dataDir, path)
	require.NoError(t, err)
	require.Equal(t, userPath, again)
}
