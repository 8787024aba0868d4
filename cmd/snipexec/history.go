package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/alexisbeaulieu97/snipexec/internal/history"
)

type historyOptions struct {
	jsonOutput bool
	clear      bool
}

func newHistoryCmd(root *rootFlags) *cobra.Command {
	opts := &historyOptions{}

	cmd := &cobra.Command{
		Use:   "history [interpreter]",
		Short: "Show the last run of every interpreter",
		Long: `History lists the last recorded run of every interpreter. RAN WITH names
the interpreter that executed the snippet after fallbacks.

With --clear, the whole history is forgotten, or only the entry of the named
interpreter when one is given.`,
		Example: `  snipexec history
  snipexec history --clear lua-nvim`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			if app.History == nil {
				return fmt.Errorf("run history is unavailable for work directory %s", app.Config.WorkDir)
			}
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return runHistory(cmd, app.History, name, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")
	cmd.Flags().BoolVar(&opts.clear, "clear", false, "Forget recorded runs (all, or only the named interpreter)")

	return cmd
}

func runHistory(cmd *cobra.Command, store *history.Store, name string, opts *historyOptions) error {
	if opts.clear {
		return clearHistory(cmd.OutOrStdout(), store, name)
	}

	entries := store.Entries()
	if name != "" {
		entry, ok := store.Get(name)
		entries = nil
		if ok {
			entries = []history.Entry{entry}
		}
	}
	if opts.jsonOutput {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(entries)
	}

	if len(entries) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded yet.")
		fmt.Fprintln(cmd.OutOrStdout(), "\nRun 'snipexec run --lang <language>' to execute your first snippet.")
		return nil
	}

	return renderHistoryTable(cmd.OutOrStdout(), entries)
}

func clearHistory(w io.Writer, store *history.Store, name string) error {
	if name == "" {
		if err := store.InvalidateAll(); err != nil {
			return newCommandError("clear history", "", err, "Check work directory permissions and try again.")
		}
		fmt.Fprintln(w, "Run history cleared.")
		return nil
	}

	found, err := store.Invalidate(name)
	if err != nil {
		return newCommandError("clear history", name, err, "Check work directory permissions and try again.")
	}
	if !found {
		fmt.Fprintf(w, "No recorded run for %s.\n", name)
		return nil
	}
	fmt.Fprintf(w, "Run history cleared for %s.\n", name)
	return nil
}

func renderHistoryTable(w io.Writer, entries []history.Entry) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "INTERPRETER\tRAN WITH\tSTATUS\tLEVEL\tLAST RUN\tSUMMARY")

	useUnicode := supportsUnicode(w)
	for _, e := range entries {
		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\t%s\n",
			e.Interpreter,
			valueOrFallback(e.RanWith, e.Interpreter),
			formatStatus(e.Status, useUnicode),
			e.Level,
			formatRelativeTime(e.LastRun),
			valueOrFallback(e.Summary, "(no output)"),
		)
	}

	return writer.Flush()
}
