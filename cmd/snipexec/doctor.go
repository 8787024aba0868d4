package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/snipexec/internal/validation"
)

type doctorOptions struct {
	jsonOutput bool
}

func newDoctorCmd(root *rootFlags) *cobra.Command {
	opts := &doctorOptions{}

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check that interpreter toolchains and the work directory are usable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}

			results, checkErr := validation.RunChecks(cmd.Context(), app.Config.WorkDir, app.Registry.List())
			if opts.jsonOutput {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				if err := encoder.Encode(results); err != nil {
					return err
				}
			} else if err := renderDoctorTable(cmd.OutOrStdout(), results); err != nil {
				return err
			}

			if checkErr != nil {
				return &reportedError{err: fmt.Errorf("%d of %d checks failed", countFailed(results), len(results))}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

func renderDoctorTable(w io.Writer, results []validation.CheckResult) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "CHECK\tINTERPRETER\tTARGET\tRESULT")

	for _, r := range results {
		outcome := "[OK] " + valueOrFallback(r.Resolved, "ok")
		if !r.Passed {
			outcome = "[XX] " + r.Message
		}
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\n",
			r.Kind,
			valueOrFallback(r.Interpreter, "-"),
			r.Target,
			outcome,
		)
	}

	return writer.Flush()
}

func countFailed(results []validation.CheckResult) int {
	failed := 0
	for _, r := range results {
		if !r.Passed {
			failed++
		}
	}
	return failed
}
