package cmd

import (
	"github.com/spf13/cobra"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run the first-launch import once and print the merged list",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.shutdown()

		tasks, err := a.taskService.ReconcileOnLaunch(cmd.Context())
		if err != nil {
			return err
		}

		return printTasks(cmd.OutOrStdout(), tasks)
	},
}

var resetLaunchCmd = &cobra.Command{
	Use:   "reset-launch",
	Short: "Clear the first-launch flag so the next launch imports seed tasks again",
	RunE: func(cmd *cobra.Command, args []string) error {
		a := bootstrap()
		defer a.shutdown()

		if err := a.taskService.ResetFirstLaunch(cmd.Context()); err != nil {
			return err
		}

		a.logger.Info("first-launch flag cleared")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(resetLaunchCmd)
}
