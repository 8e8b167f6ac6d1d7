package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and discard the persisted session",
	Long: `Sign out of the auth API. The server is notified best-effort; the
local session and the persisted token are cleared regardless. Logging out
while already signed out is not an error.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := manager.Logout(cmd.Context()); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Signed out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(logoutCmd)
}
