package main

import (
	"context"
	"fmt"
	"os"

	"github.com/groblegark/infradash/internal/model"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "View or update your profile",
}

var profileGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Show your profile",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		user, err := api.GetProfile(context.Background())
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

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your full name and email",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fullName, _ := cmd.Flags().GetString("full-name")
		email, _ := cmd.Flags().GetString("email")

		// Unset flags keep the stored value, so either field can be changed
		// on its own.
		current, err := api.GetProfile(context.Background())
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		if !cmd.Flags().Changed("full-name") {
			fullName = current.FullName
		}
		if !cmd.Flags().Changed("email") {
			email = current.Email
		}

		user, err := api.UpdateProfile(context.Background(), model.UserProfile{
			FullName: fullName,
			Email:    email,
		})
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

func init() {
	profileSetCmd.Flags().String("full-name", "", "new full name")
	profileSetCmd.Flags().String("email", "", "new email address")

	profileCmd.AddCommand(profileGetCmd)
	profileCmd.AddCommand(profileSetCmd)
}
