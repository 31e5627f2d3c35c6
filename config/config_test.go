package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFile(t *testing.T) {
	t.Setenv(SnapshotEnv, "")
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.Equal(t, defaultSnapshot, c.Snapshot)
	assert.Equal(t, "info", c.LogLevel)
	assert.False(t, c.UseSnapshot())
	assert.Error(t, c.ValidateJenkins())
}

func TestLoad(t *testing.T) {
	t.Setenv(SnapshotEnv, "")
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
jenkins:
  username: alceu
  token: secret
  url: http://localhost:8080
  folder_depth: 2
report:
  fail_fast: true
snapshot: /var/lib/jobs
log_level: debug
`), 0600))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "alceu", c.Jenkins.Username)
	assert.Equal(t, "secret", c.Jenkins.Token)
	assert.Equal(t, "http://localhost:8080", c.Jenkins.URL)
	assert.Equal(t, 2, c.Jenkins.FolderDepth)
	assert.True(t, c.Report.FailFast)
	assert.Equal(t, "/var/lib/jobs", c.Snapshot)
	assert.Equal(t, "debug", c.LogLevel)
	assert.NoError(t, c.ValidateJenkins())
}

func TestLoadInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jenkins: [not, a, map"), 0600))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestSnapshotEnv(t *testing.T) {
	t.Setenv(SnapshotEnv, "/tmp/cached")
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.True(t, c.UseSnapshot())
	assert.Equal(t, "/tmp/cached", c.Snapshot)
}

func TestSaveExample(t *testing.T) {
	t.Setenv(SnapshotEnv, "")
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, Save(path))
	assert.Error(t, Save(path), "existing config must not be overwritten")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://your.jenkins.fqdn/jenkins", c.Jenkins.URL)
	assert.Equal(t, filepath.Join(dir, defaultSnapshot), c.Snapshot)
	assert.Equal(t, filepath.Join(dir, "log.txt"), c.LogFile)
}

func TestSelectSnapshot(t *testing.T) {
	t.Setenv(SnapshotEnv, "")
	c, err := Load(filepath.Join(t.TempDir(), "config.yaml"))
	require.NoError(t, err)
	assert.False(t, c.UseSnapshot())

	c.SelectSnapshot("/srv/jobs")
	assert.True(t, c.UseSnapshot())
	assert.Equal(t, "/srv/jobs", c.Snapshot)
}
