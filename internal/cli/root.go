package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

type rootOptions struct {
	envFile      string
	settingsFile string
	verbose      bool
}

func newRootCmd(version string) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:   "timetracker",
		Short: "Track time spent on tasks and log it to Jira",
		Long: `timetracker runs one timer at a time, keeps every task in a local database
and posts the tracked time as Jira worklogs.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.envFile, "env-file", "", "Env file holding database and Jira settings (default .env)")
	rootCmd.PersistentFlags().StringVar(&opts.settingsFile, "settings", "", "YAML settings file (default settings.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "Enable debug logging")

	rootCmd.AddCommand(
		newStartCmd(opts),
		newPauseCmd(opts),
		newResumeCmd(opts),
		newStopCmd(opts),
		newStatusCmd(opts),
		newListCmd(opts),
		newShowCmd(opts),
		newEditCmd(opts),
		newRecalcCmd(opts),
		newDeleteCmd(opts),
		newSyncCmd(opts),
		newConfigureCmd(opts),
		newServeCmd(opts, version),
		newVersionCmd(version),
	)

	return rootCmd
}

// Execute runs the root command
func Execute(version string) error {
	if err := newRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
