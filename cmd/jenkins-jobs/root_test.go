package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glasswalk3r/jenkins-jobs/config"
	"github.com/glasswalk3r/jenkins-jobs/logging"
)

const freestyleLine = "nightly|FreestyleJob|Builds the nightly artifacts|True|H 2 * * *"

func freestyleXML(t *testing.T) []byte {
	data, err := os.ReadFile(filepath.Join("..", "..", "jenkins", "testdata", "freestyle-job-trigger.xml"))
	require.NoError(t, err)
	return data
}

func fakeJenkins(t *testing.T) *httptest.Server {
	data := freestyleXML(t)
	mux := http.NewServeMux()
	mux.HandleFunc("/api/json", func(w http.ResponseWriter, r *http.Request) {
		user, token, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "alceu", user)
		assert.Equal(t, "secret", token)
		w.Write([]byte(`{"jobs":[
			{"_class":"hudson.model.FreeStyleProject","name":"nightly","url":"x","color":"blue"},
			{"_class":"hudson.model.FreeStyleProject","name":"broken","url":"y","color":"red"}]}`))
	})
	mux.HandleFunc("/job/nightly/config.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write(data)
	})
	mux.HandleFunc("/job/broken/config.xml", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<?xml version='1.1' encoding='UTF-8'?><flow-definition plugin="unknown-plugin@1.0"/>`))
	})
	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts
}

func run(t *testing.T, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "config.yaml")))
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestReportRequiresJenkins(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	_, err := run(t, "report")
	assert.EqualError(t, err, "the Jenkins URL is required")

	_, err = run(t, "report", "--jenkins", "localhost:8080", "--user", "u", "--token", "t")
	assert.Error(t, err)
}

func TestReportFromJenkins(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	ts := fakeJenkins(t)
	metrics := filepath.Join(t.TempDir(), "jobs.prom")

	out, err := run(t, "report", "--jenkins", ts.URL, "--user", "alceu", "--token", "secret",
		"--metrics-file", metrics)
	require.Error(t, err, "the broken job makes the run fail")
	assert.Equal(t, "1 jobs could not be classified", err.Error())
	assert.Equal(t, freestyleLine+"\n", out)
	assert.FileExists(t, metrics)
}

func TestReportFailFast(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	ts := fakeJenkins(t)

	out, err := run(t, "report", "--jenkins", ts.URL, "--user", "alceu", "--token", "secret", "--fail-fast")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")
	assert.Equal(t, freestyleLine+"\n", out)
}

func TestExportThenReportFromSnapshot(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	ts := fakeJenkins(t)
	dir := filepath.Join(t.TempDir(), "snapshot")

	_, err := run(t, "export", "--jenkins", ts.URL, "--user", "alceu", "--token", "secret",
		"--snapshot", dir)
	require.NoError(t, err)

	t.Setenv(config.SnapshotEnv, dir)
	out, err := run(t, "report")
	require.Error(t, err)
	assert.Equal(t, freestyleLine+"\n", out)
}

func TestSlackSummary(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	ts := fakeJenkins(t)
	var posted bool
	slack := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		posted = true
	}))
	defer slack.Close()

	_, err := run(t, "report", "--jenkins", ts.URL, "--user", "alceu", "--token", "secret",
		"--slack-webhook", slack.URL)
	require.Error(t, err)
	assert.True(t, posted)
}

func TestInitConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"init-config", "--config", path})
	require.NoError(t, cmd.Execute())
	assert.FileExists(t, path)
	assert.Contains(t, out.String(), path)

	cmd = newRootCmd()
	cmd.SetArgs([]string{"init-config", "--config", path})
	assert.Error(t, cmd.Execute())
}

func TestInvalidLogLevel(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	_, err := run(t, "report", "--log-level", "loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestReportSnapshotFlag(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	ts := fakeJenkins(t)
	dir := filepath.Join(t.TempDir(), "snapshot")

	_, err := run(t, "export", "--jenkins", ts.URL, "--user", "alceu", "--token", "secret",
		"--snapshot", dir)
	require.NoError(t, err)

	out, err := run(t, "report", "--snapshot", dir)
	require.Error(t, err)
	assert.Equal(t, "1 jobs could not be classified", err.Error())
	assert.Equal(t, freestyleLine+"\n", out)
}

func TestLogFileAcrossRuns(t *testing.T) {
	t.Setenv(config.SnapshotEnv, "")
	t.Cleanup(func() { logging.GetLogger().CloseLogFile() })
	dir := t.TempDir()
	logFile := filepath.Join(dir, "jobs.log")
	snapshotDir := filepath.Join(dir, "snapshot")

	for i := 0; i < 2; i++ {
		_, err := run(t, "report", "--snapshot", snapshotDir, "--log-file", logFile)
		require.NoError(t, err)
	}

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Equal(t, 2, strings.Count(string(data), "reading jobs from snapshot"))
}
