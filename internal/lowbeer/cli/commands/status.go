// Package commands holds the non-TUI lowbeer subcommands.
package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

func StatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print the current task status",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if err != nil {
					err = wrapCommandError("status", err)
				}
			}()
			return runStatus(".", cmd.OutOrStdout())
		},
	}
}

func runStatus(root string, out io.Writer) error {
	st := project.LoadStorage(project.StoragePath(root))

	var pending, lastVerified *project.Task
	verified := 0
	for i := range st.Tasks {
		switch st.Tasks[i].Status {
		case project.StatusPending:
			if pending == nil {
				pending = &st.Tasks[i]
			}
		case project.StatusVerified:
			lastVerified = &st.Tasks[i]
			verified++
		}
	}

	fmt.Fprintf(out, "Tasks: %d total, %d verified\n", len(st.Tasks), verified)
	if pending != nil {
		fmt.Fprintf(out, "Current task: #%d %s\n", pending.ID, pending.Description)
	} else {
		fmt.Fprintln(out, "No pending tasks.")
	}
	if lastVerified != nil {
		fmt.Fprintf(out, "Last completed: #%d %s\n", lastVerified.ID, lastVerified.Description)
	}
	fmt.Fprintf(out, "Log entries: %d\n", len(st.Logs))
	return nil
}
