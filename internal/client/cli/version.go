package cli

import (
	"runtime"

	"github.com/spf13/cobra"
)

func (c *Cli) newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Show version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{"skipConfigLoad": "true"},
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runVersion()
		},
	}
}

func (c *Cli) runVersion() error {
	if c.jsonOutput {
		return c.printJSON(map[string]string{
			"version":    c.build.Version,
			"build_date": c.build.BuildDate,
			"git_commit": c.build.GitCommit,
			"go":         runtime.Version(),
		})
	}
	c.io.Printf("fieldsync %s\n", c.build.Version)
	c.io.Printf("Build date: %s\n", c.build.BuildDate)
	c.io.Printf("Git commit: %s\n", c.build.GitCommit)
	c.io.Printf("Go version: %s\n", runtime.Version())
	return nil
}
