package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "campus-agent",
		Short:         "Campus-side agent bridging a host to the second-course service",
		Long:          "campus-agent connects out to a host over WebSocket, executes typed commands against the campus second-course site on behalf of pooled student accounts, and streams structured results back.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newRunCmd(app),
	)

	return rootCmd
}
