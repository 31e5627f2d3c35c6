package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/glasswalk3r/jenkins-jobs/config"
	"github.com/glasswalk3r/jenkins-jobs/jenkins"
	"github.com/glasswalk3r/jenkins-jobs/logging"
	"github.com/glasswalk3r/jenkins-jobs/notifications"
	"github.com/glasswalk3r/jenkins-jobs/report"
)

// options holds the command line values; they win over config.yaml.
type options struct {
	configFile   string
	user         string
	token        string
	jenkinsURL   string
	insecure     bool
	folderDepth  int
	snapshot     string
	rawDir       string
	failFast     bool
	metricsFile  string
	slackWebhook string
	slackChannel string
	logLevel     string
	logFile      string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	o := &options{}
	rootCmd := &cobra.Command{
		Use:           "jenkins-jobs",
		Short:         "Reports how the jobs of a Jenkins server are triggered",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return o.load(cmd.Flags())
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&o.configFile, "config", "c", "", "Path to configuration file, defaults to config.yaml beside the executable")
	flags.StringVar(&o.user, "user", "", "Jenkins user name")
	flags.StringVar(&o.token, "token", "", "Jenkins API token")
	flags.StringVar(&o.jenkinsURL, "jenkins", "", "Jenkins base URL, including the scheme")
	flags.BoolVar(&o.insecure, "insecure", false, "Skip TLS certificate verification")
	flags.IntVar(&o.folderDepth, "folder-depth", 0, "How many folder levels to descend into")
	flags.StringVar(&o.snapshot, "snapshot", "", "Snapshot directory written by export; given to report, or set in env "+config.SnapshotEnv+", report reads it instead of Jenkins")
	flags.StringVar(&o.rawDir, "raw-dir", "", "Keep a copy of every exported config.xml in this directory")
	flags.BoolVar(&o.failFast, "fail-fast", false, "Stop the report at the first job that cannot be classified")
	flags.StringVar(&o.metricsFile, "metrics-file", "", "Write prometheus metrics to this text file when done")
	flags.StringVar(&o.slackWebhook, "slack-webhook", "", "Post the run summary to this Slack webhook")
	flags.StringVar(&o.slackChannel, "slack-channel", "", "Slack channel overriding the webhook default")
	flags.StringVar(&o.logLevel, "log-level", "", "Log level: trace, debug, info, warn or error")
	flags.StringVar(&o.logFile, "log-file", "", "Also write logs to this file")

	rootCmd.AddCommand(newReportCmd(o))
	rootCmd.AddCommand(newExportCmd(o))
	rootCmd.AddCommand(newInitConfigCmd(o))
	return rootCmd
}

func (o *options) configPath() (string, error) {
	if o.configFile != "" {
		return o.configFile, nil
	}
	return config.DefaultPath()
}

// load reads config.yaml and applies the flags that were set explicitly.
func (o *options) load(flags *pflag.FlagSet) error {
	path, err := o.configPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	set := func(name string, apply func()) {
		if flags.Changed(name) {
			apply()
		}
	}
	set("user", func() { cfg.Jenkins.Username = o.user })
	set("token", func() { cfg.Jenkins.Token = o.token })
	set("jenkins", func() { cfg.Jenkins.URL = o.jenkinsURL })
	set("insecure", func() { cfg.Jenkins.Insecure = o.insecure })
	set("folder-depth", func() { cfg.Jenkins.FolderDepth = o.folderDepth })
	set("snapshot", func() { cfg.SelectSnapshot(o.snapshot) })
	set("raw-dir", func() { cfg.RawDir = o.rawDir })
	set("fail-fast", func() { cfg.Report.FailFast = o.failFast })
	set("metrics-file", func() { cfg.Report.MetricsFile = o.metricsFile })
	set("slack-webhook", func() { cfg.Report.SlackWebhook = o.slackWebhook })
	set("slack-channel", func() { cfg.Report.SlackChannel = o.slackChannel })
	set("log-level", func() { cfg.LogLevel = o.logLevel })
	set("log-file", func() { cfg.LogFile = o.logFile })

	log := logging.GetLogger()
	if cfg.LogLevel != "" {
		if err := log.SetLevelName(cfg.LogLevel); err != nil {
			return errors.Wrap(err, "invalid log level")
		}
	}
	if cfg.LogFile != "" {
		if err := log.AddLogFile(cfg.LogFile); err != nil {
			return err
		}
	}
	o.cfg = cfg
	return nil
}

func (o *options) client() (*jenkins.JenkinsAPIClient, error) {
	if err := o.cfg.ValidateJenkins(); err != nil {
		return nil, err
	}
	client, err := jenkins.New(o.cfg.Jenkins.URL)
	if err != nil {
		return nil, err
	}
	return client.
		SetUser(o.cfg.Jenkins.Username).
		SetToken(o.cfg.Jenkins.Token).
		SetInsecure(o.cfg.Jenkins.Insecure).
		SetMetrics(jenkins.NewClientMetrics()), nil
}

// finish writes metrics and posts the summary, whatever the run outcome.
func (o *options) finish(summary string) {
	log := logging.GetLogger().For("cli")
	if o.cfg.Report.MetricsFile != "" {
		if err := report.WriteMetrics(o.cfg.Report.MetricsFile); err != nil {
			log.WithError(err).Warn("could not write metrics")
		}
	}
	if o.cfg.Report.SlackWebhook != "" {
		var notifier notifications.Notifier = notifications.
			NewSlackNotifier(o.cfg.Report.SlackWebhook).
			SetChannel(o.cfg.Report.SlackChannel)
		if err := notifier.Post(summary); err != nil {
			log.WithError(err).Warn("could not notify Slack")
		}
	}
}
