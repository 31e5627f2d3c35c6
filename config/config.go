package config

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"

	"github.com/glasswalk3r/jenkins-jobs/common"
	"github.com/glasswalk3r/jenkins-jobs/logging"
)

const (
	configFileName = "config.yaml"

	// SnapshotEnv points the reporter at a snapshot instead of a live server.
	SnapshotEnv = "JOBS_REPORTER_DATA"

	defaultSnapshot = "jenkins_jobs.snapshot"
)

type JenkinsConfig struct {
	Username    string `yaml:"username"`
	Token       string `yaml:"token"`
	URL         string `yaml:"url"`
	Insecure    bool   `yaml:"insecure,omitempty"`
	FolderDepth int    `yaml:"folder_depth,omitempty"`
}

type ReportConfig struct {
	FailFast     bool   `yaml:"fail_fast,omitempty"`
	MetricsFile  string `yaml:"metrics_file,omitempty"`
	SlackWebhook string `yaml:"slack_webhook,omitempty"`
	SlackChannel string `yaml:"slack_channel,omitempty"`
}

type Config struct {
	Jenkins  JenkinsConfig `yaml:"jenkins"`
	Report   ReportConfig  `yaml:"report,omitempty"`
	Snapshot string        `yaml:"snapshot"`
	RawDir   string        `yaml:"raw_dir,omitempty"`
	LogFile  string        `yaml:"log_file,omitempty"`
	LogLevel string        `yaml:"log_level,omitempty"`
	log      *logrus.Entry

	snapshotSelected bool
}

// DefaultPath is config.yaml next to the executable.
func DefaultPath() (string, error) {
	return common.InExeDir(configFileName)
}

func newConfig() *Config {
	return &Config{
		Snapshot: defaultSnapshot,
		LogLevel: "info",
		log:      logging.GetLogger().For("config"),
	}
}

func (c *Config) setDefaultValues(path string) *Config {
	c.log.Info("Generating example config...")
	c.Jenkins = JenkinsConfig{
		Username: "yourUserName",
		Token:    "yourApiToken",
		URL:      "https://your.jenkins.fqdn/jenkins",
	}
	dir := filepath.Dir(path)
	c.Snapshot = filepath.Join(dir, defaultSnapshot)
	c.LogFile = filepath.Join(dir, "log.txt")
	return c
}

// Load reads the configuration at path. A missing file is not an error, the
// defaults are returned and flags are expected to fill the rest.
func Load(path string) (*Config, error) {
	c := newConfig()
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		c.log.WithField("path", path).Debug("no config file, using defaults")
		return c.applyEnv(), nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "reading config file %s", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return nil, errors.Wrapf(err, "parsing config file %s", path)
	}
	c.log.Debug("Successfully loaded configuration from " + path)
	return c.applyEnv(), nil
}

func (c *Config) applyEnv() *Config {
	if dir := os.Getenv(SnapshotEnv); dir != "" {
		c.Snapshot = dir
	}
	return c
}

// SelectSnapshot makes reports read the snapshot in dir, as the environment
// variable does.
func (c *Config) SelectSnapshot(dir string) *Config {
	c.Snapshot = dir
	c.snapshotSelected = true
	return c
}

// UseSnapshot tells whether reports come from the snapshot rather than
// from Jenkins.
func (c *Config) UseSnapshot() bool {
	return c.snapshotSelected || os.Getenv(SnapshotEnv) != ""
}

// ValidateJenkins checks what is needed to talk to a Jenkins server.
func (c *Config) ValidateJenkins() error {
	switch {
	case c.Jenkins.URL == "":
		return errors.New("the Jenkins URL is required")
	case c.Jenkins.Username == "":
		return errors.New("the Jenkins user is required")
	case c.Jenkins.Token == "":
		return errors.New("the Jenkins token is required")
	}
	return nil
}

// Save writes an example configuration to path, refusing to overwrite an
// existing file.
func Save(path string) error {
	c := newConfig().setDefaultValues(path)
	c.log.Info("Saving config to " + path)
	configFile, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0600)
	if err != nil {
		return errors.Wrapf(err, "creating config file %s", path)
	}
	defer configFile.Close()
	yamlBytes, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	_, err = configFile.Write(yamlBytes)
	return err
}
