package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var saveCmd = &cobra.Command{
	Use:   "save <type> [description]",
	Short: "Save an execution record",
	Long: `Save an execution record for the authenticated user.

The description is the raw result payload. Pass it as the second argument,
or use --file to read it from a file ("-" for stdin). An omitted description
saves a record with no result.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		recordType := args[0]

		description := ""
		if len(args) == 2 {
			description = args[1]
		}
		if file, _ := cmd.Flags().GetString("file"); file != "" {
			if description != "" {
				return fmt.Errorf("pass the description as an argument or via --file, not both")
			}
			data, err := readPayload(file)
			if err != nil {
				return err
			}
			description = string(data)
		}

		exec, err := api.SaveExecution(context.Background(), recordType, description)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		if jsonOutput {
			printJSON(exec)
		} else {
			fmt.Printf("saved %s\n", exec.ID)
		}
		return nil
	},
}

func readPayload(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func init() {
	saveCmd.Flags().String("file", "", "read the description payload from a file (\"-\" for stdin)")
}
