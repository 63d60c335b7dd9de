package main

import (
	"context"
	"fmt"
	"os"

	"github.com/groblegark/infradash/internal/client"
	"github.com/spf13/cobra"
)

// adminClient returns the API client with the admin credential attached.
func adminClient(cmd *cobra.Command) *client.HTTPClient {
	token, _ := cmd.Flags().GetString("admin-token")
	if token == "" {
		token = os.Getenv("INFRADASH_ADMIN_TOKEN")
	}
	if token == "" {
		fmt.Fprintln(os.Stderr, "Error: admin token required (--admin-token or INFRADASH_ADMIN_TOKEN)")
		os.Exit(1)
	}
	return api.WithAdminToken(token)
}

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Manage user accounts (admin)",
}

var userCreateCmd = &cobra.Command{
	Use:   "create <full-name> <email>",
	Short: "Create a user account",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := adminClient(cmd).CreateUser(context.Background(), args[0], args[1])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(user)
		} else {
			printUserTable(user)
		}
		return nil
	},
}

var userListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all user accounts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		users, err := adminClient(cmd).ListUsers(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(users)
		} else {
			printUserListTable(users)
		}
		return nil
	},
}

func init() {
	userCmd.PersistentFlags().String("admin-token", "", "admin API token")

	userCmd.AddCommand(userCreateCmd)
	userCmd.AddCommand(userListCmd)
}
