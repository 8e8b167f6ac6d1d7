package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the current token for a fresh one",
	Long: `Rotate the session token. On any failure the session is torn down
rather than left half-valid; sign in again afterwards.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := manager.Refresh(cmd.Context()); err != nil {
			return err
		}
		state := manager.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Token refreshed (expires %s)\n",
			state.User.ExpiresAt().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
