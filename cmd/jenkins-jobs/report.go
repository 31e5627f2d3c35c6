package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/glasswalk3r/jenkins-jobs/jobs"
	"github.com/glasswalk3r/jenkins-jobs/logging"
	"github.com/glasswalk3r/jenkins-jobs/report"
	"github.com/glasswalk3r/jenkins-jobs/retrieval"
	"github.com/glasswalk3r/jenkins-jobs/snapshot"
)

func newReportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Prints one line per job: name|type|description|timer based|timer spec",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			source, err := o.source()
			if err != nil {
				return err
			}
			retriever := retrieval.New(source, jobs.NewFactory(jobs.DefaultPlugins()))
			summary, err := report.NewReporter(retriever, cmd.OutOrStdout()).
				SetFailFast(o.cfg.Report.FailFast).
				Run(cmd.Context())
			logging.GetLogger().For("cli").Info(summary.String())
			o.finish(summary.String())
			if err != nil {
				return err
			}
			if summary.Failed > 0 {
				return errors.Errorf("%d jobs could not be classified", summary.Failed)
			}
			return nil
		},
	}
}

// source reads from the snapshot when the environment asks for it, from
// Jenkins otherwise.
func (o *options) source() (retrieval.Source, error) {
	if o.cfg.UseSnapshot() {
		logging.GetLogger().For("cli").WithField("snapshot", o.cfg.Snapshot).Info("reading jobs from snapshot")
		return retrieval.NewSnapshotSource(snapshot.Open(o.cfg.Snapshot)), nil
	}
	client, err := o.client()
	if err != nil {
		return nil, err
	}
	return retrieval.NewRESTSource(client, o.cfg.Jenkins.FolderDepth), nil
}
