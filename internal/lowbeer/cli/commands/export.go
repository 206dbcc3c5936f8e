package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mistakeknot/lowbeer/internal/lowbeer/project"
)

func ExportCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Dump tasks and logs to stdout",
		RunE: func(cmd *cobra.Command, args []string) (err error) {
			defer func() {
				if err != nil {
					err = wrapCommandError("export", err)
				}
			}()
			return runExport(".", format, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVar(&format, "format", "json", "Output format (json|yaml)")
	return cmd
}

func runExport(root, format string, out io.Writer) error {
	st := project.LoadStorage(project.StoragePath(root))
	switch format {
	case "json":
		raw, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(raw))
		return err
	case "yaml":
		raw, err := yaml.Marshal(st)
		if err != nil {
			return err
		}
		_, err = out.Write(raw)
		return err
	default:
		return fmt.Errorf("unknown format: %q", format)
	}
}
