package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Manage session tokens (admin)",
}

var sessionCreateCmd = &cobra.Command{
	Use:   "create <user-id>",
	Short: "Issue a session token for a user",
	Long: `Issue a session token for a user.

The raw token is printed exactly once; only its digest is stored on the
server, so keep the output.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		session, err := adminClient(cmd).CreateSession(context.Background(), args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(session)
			return nil
		}
		fmt.Printf("token:       %s\n", session.Token)
		fmt.Printf("user:        %s\n", session.UserID)
		fmt.Printf("expires at:  %s\n", session.ExpiresAt.Format("2006-01-02 15:04:05"))
		return nil
	},
}

var sessionRevokeCmd = &cobra.Command{
	Use:   "revoke <token>",
	Short: "Revoke a session token",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := adminClient(cmd).RevokeSession(context.Background(), args[0]); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("session revoked")
		return nil
	},
}

func init() {
	sessionCmd.PersistentFlags().String("admin-token", "", "admin API token")

	sessionCmd.AddCommand(sessionCreateCmd)
	sessionCmd.AddCommand(sessionRevokeCmd)
}
