package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/session"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := manager.Require(); err != nil {
			if errors.Is(err, session.ErrNotAuthenticated) {
				return errors.New("not signed in")
			}
			return err
		}

		state := manager.Snapshot()
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "User:    %s\n", state.User.UserID)
		if state.User.Name != "" {
			fmt.Fprintf(out, "Name:    %s\n", state.User.Name)
		}
		if state.User.Email != "" {
			fmt.Fprintf(out, "Email:   %s\n", state.User.Email)
		}
		if state.User.Role != "" {
			fmt.Fprintf(out, "Role:    %s\n", state.User.Role)
		}
		fmt.Fprintf(out, "Expires: %s\n", state.User.ExpiresAt().Format("2006-01-02 15:04:05"))
		return nil
	},
}

// identityLabel picks the friendliest identifier a snapshot offers.
func identityLabel(state session.State) string {
	switch {
	case state.User == nil:
		return "unknown"
	case state.User.Name != "":
		return state.User.Name
	case state.User.Email != "":
		return state.User.Email
	default:
		return state.User.UserID
	}
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}
