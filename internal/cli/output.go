package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/mesh-intelligence/todos/pkg/types"
)

// listOutput is the --json form of the list command.
type listOutput struct {
	Filter    types.Filter `json:"filter"`
	Remaining int          `json:"remaining"`
	Total     int          `json:"total"`
	Todos     []types.Todo `json:"todos"`
}

// printJSON writes v as indented JSON.
func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return sysError(fmt.Errorf("marshal JSON: %w", err))
	}
	fmt.Fprintln(w, string(out))
	return nil
}

// checkbox renders the completion state.
func checkbox(t types.Todo) string {
	if t.Completed {
		return "[x]"
	}
	return "[ ]"
}

// printTodo writes a single todo in human-readable form.
func printTodo(w io.Writer, verb string, t types.Todo) {
	fmt.Fprintf(w, "%s %s %s  %s\n", verb, checkbox(t), t.Text, t.ID)
}

// printTable writes todos as aligned rows. Positions are 1-based indexes
// into all, so they stay valid as refs whatever filter selected rows.
func printTable(w io.Writer, rows, all []types.Todo) error {
	pos := make(map[string]int, len(all))
	for i, t := range all {
		pos[t.ID] = i + 1
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "#\tDONE\tTEXT\tID\tCREATED")
	for _, t := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			pos[t.ID], checkbox(t), t.Text, t.ID,
			t.Created().Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

// remainingLine is the status shown under a list.
func remainingLine(n int) string {
	return fmt.Sprintf("%d remaining", n)
}
