package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glasswalk3r/jenkins-jobs/report"
	"github.com/glasswalk3r/jenkins-jobs/snapshot"
)

func newExportCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Saves every job configuration from Jenkins into the snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			client, err := o.client()
			if err != nil {
				return err
			}
			saved, err := report.NewExporter(client, snapshot.Open(o.cfg.Snapshot)).
				SetRawDir(o.cfg.RawDir).
				SetFolderDepth(o.cfg.Jenkins.FolderDepth).
				Run(cmd.Context())
			o.finish(fmt.Sprintf("%d jobs exported to %s", saved, o.cfg.Snapshot))
			return err
		},
	}
}
