package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/glasswalk3r/jenkins-jobs/config"
)

func newInitConfigCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "init-config",
		Short: "Writes an example config.yaml to edit",
		Args:  cobra.NoArgs,
		// no config to load yet
		PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := o.configPath()
			if err != nil {
				return err
			}
			if err := config.Save(path); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Example config written to %s, please edit it\n", path)
			return nil
		},
	}
}
