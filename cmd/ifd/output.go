package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/groblegark/infradash/internal/client"
	"github.com/groblegark/infradash/internal/model"
	"github.com/groblegark/infradash/internal/ui"
)

func printJSON(v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error marshaling JSON: %v\n", err)
		return
	}
	fmt.Println(string(data))
}

func printExecutionTable(exec *client.Execution) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(exec.ID))
	fmt.Printf("Type:        %s\n", exec.DisplayType)
	fmt.Printf("Created At:  %s\n", ui.RenderMuted(exec.CreatedAt.Format("2006-01-02 15:04:05")))
}

func printExecutionListTable(execs []client.Execution) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tCREATED")
	for _, e := range execs {
		fmt.Fprintf(w, "%s\t%s\t%s\n",
			ui.RenderAccent(e.ID),
			e.DisplayType,
			ui.RenderMuted(e.CreatedAt.Format("2006-01-02 15:04:05")),
		)
	}
	w.Flush()
	fmt.Printf("\n%d executions\n", len(execs))
}

// printExecutionDetail renders a record with its decoded result. Every step
// is shown fully expanded; the single-step collapse only matters in the
// browser.
func printExecutionDetail(detail *client.ExecutionDetail) {
	printExecutionTable(&detail.Execution)
	fmt.Printf("Result:      %s\n", ui.RenderResultState(detail.State))

	switch detail.State {
	case "corrupt":
		fmt.Println()
		fmt.Println(detail.Message)
	case "valid":
		if detail.Result == nil || len(detail.Result.Steps) == 0 {
			fmt.Println("\nNo steps recorded.")
			return
		}
		for _, step := range detail.Result.Steps {
			fmt.Printf("\n%s [%s]\n", ui.RenderAccent(step.Label()), ui.RenderStatus(step.DisplayStatus()))
			fmt.Println(indentJSON(step.Output, "  "))
		}
	}
}

func printUserTable(user *model.User) {
	fmt.Printf("ID:          %s\n", ui.RenderAccent(user.ID))
	fmt.Printf("Full Name:   %s\n", user.FullName)
	fmt.Printf("Email:       %s\n", user.Email)
	if !user.CreatedAt.IsZero() {
		fmt.Printf("Created At:  %s\n", ui.RenderMuted(user.CreatedAt.Format("2006-01-02 15:04:05")))
	}
}

func printUserListTable(users []*model.User) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tFULL NAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(w, "%s\t%s\t%s\n", ui.RenderAccent(u.ID), u.FullName, u.Email)
	}
	w.Flush()
	fmt.Printf("\n%d users\n", len(users))
}

// indentJSON reindents a raw fragment for step display. Invalid fragments
// render verbatim.
func indentJSON(raw json.RawMessage, prefix string) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return prefix + string(raw)
	}
	buf, err := json.MarshalIndent(v, prefix, "  ")
	if err != nil {
		return prefix + string(raw)
	}
	return prefix + string(buf)
}
