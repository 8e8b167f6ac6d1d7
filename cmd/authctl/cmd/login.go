package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/authkit/pkg/authclient"
)

var (
	loginEmail       string
	loginPassword    string
	loginMobile      string
	loginCountryCode string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in with email+password or mobile+OTP",
	Long: `Sign in to the auth API. With --email and --password the login is a
single exchange. With --mobile and --country-code an OTP is sent to the
number, and the command prompts for the code to complete the handshake.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		if loginMobile != "" {
			if err := client.RequestOTP(ctx, loginMobile, loginCountryCode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Code sent to %s %s. Enter code: ", loginCountryCode, loginMobile)

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("reading code: %w", err)
			}

			if err := manager.VerifyOTP(ctx, loginMobile, loginCountryCode, strings.TrimSpace(code)); err != nil {
				return err
			}
		} else {
			err := manager.Login(ctx, authclient.Credentials{
				Email:    loginEmail,
				Password: loginPassword,
			})
			if err != nil {
				return err
			}
		}

		state := manager.Snapshot()
		fmt.Fprintf(cmd.OutOrStdout(), "Signed in as %s (expires %s)\n",
			identityLabel(state), state.User.ExpiresAt().Format("2006-01-02 15:04"))
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "account email")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "account password")
	loginCmd.Flags().StringVar(&loginMobile, "mobile", "", "mobile number without country code")
	loginCmd.Flags().StringVar(&loginCountryCode, "country-code", "", "mobile country code, e.g. +971")
	loginCmd.MarkFlagsRequiredTogether("email", "password")
	loginCmd.MarkFlagsRequiredTogether("mobile", "country-code")
	loginCmd.MarkFlagsMutuallyExclusive("email", "mobile")

	rootCmd.AddCommand(loginCmd)
}
