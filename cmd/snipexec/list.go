package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/snipexec/internal/history"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/model"
)

type listOptions struct {
	jsonOutput bool
}

func newListCmd(root *rootFlags) *cobra.Command {
	opts := &listOptions{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List available interpreters",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newAppContext(root, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			return runList(cmd, app, opts)
		},
	}

	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output in JSON format")

	return cmd
}

type interpreterWithHistory struct {
	Metadata interpreter.Metadata
	Last     history.Entry
}

func runList(cmd *cobra.Command, app *AppContext, opts *listOptions) error {
	metas := app.Registry.List()
	enriched := make([]interpreterWithHistory, len(metas))
	for i, meta := range metas {
		enriched[i] = interpreterWithHistory{Metadata: meta}
		if app.History != nil {
			if entry, ok := app.History.Get(meta.Name); ok {
				enriched[i].Last = entry
			}
		}
	}

	if opts.jsonOutput {
		return renderListJSON(cmd.OutOrStdout(), enriched, app.Registry.Disabled())
	}
	return renderListTable(cmd.OutOrStdout(), enriched)
}

func renderListTable(w io.Writer, entries []interpreterWithHistory) error {
	writer := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintln(writer, "NAME\tLANGUAGES\tMAX LEVEL\tFALLBACK\tLAST RUN")

	useUnicode := supportsUnicode(w)
	for _, e := range entries {
		lastRun := "never"
		if e.Last.Status != "" {
			lastRun = fmt.Sprintf("%s %s", formatStatus(e.Last.Status, useUnicode), formatRelativeTime(e.Last.LastRun))
			if e.Last.RanWith != "" && e.Last.RanWith != e.Metadata.Name {
				lastRun += " via " + e.Last.RanWith
			}
		}

		fmt.Fprintf(writer, "%s\t%s\t%s\t%s\t%s\n",
			e.Metadata.Name,
			strings.Join(e.Metadata.Languages, ","),
			e.Metadata.MaxLevel,
			valueOrFallback(strings.Join(e.Metadata.FallsBackTo, ","), "-"),
			lastRun,
		)
	}

	return writer.Flush()
}

type listJSONInterpreter struct {
	Name        string       `json:"name"`
	Languages   []string     `json:"languages"`
	MaxLevel    string       `json:"max_level"`
	FallsBackTo []string     `json:"falls_back_to,omitempty"`
	Description string       `json:"description,omitempty"`
	LastStatus  model.Status `json:"last_status,omitempty"`
	LastRanWith string       `json:"last_ran_with,omitempty"`
	LastRun     *time.Time   `json:"last_run,omitempty"`
}

type listJSONPayload struct {
	Version      string                `json:"version"`
	Count        int                   `json:"count"`
	Interpreters []listJSONInterpreter `json:"interpreters"`
	Disabled     []string              `json:"disabled,omitempty"`
}

func renderListJSON(w io.Writer, entries []interpreterWithHistory, disabled []string) error {
	payload := listJSONPayload{
		Version:      "1.0",
		Count:        len(entries),
		Interpreters: make([]listJSONInterpreter, len(entries)),
		Disabled:     disabled,
	}

	for i, e := range entries {
		item := listJSONInterpreter{
			Name:        e.Metadata.Name,
			Languages:   e.Metadata.Languages,
			MaxLevel:    e.Metadata.MaxLevel.String(),
			FallsBackTo: e.Metadata.FallsBackTo,
			Description: e.Metadata.Description,
			LastStatus:  e.Last.Status,
			LastRanWith: e.Last.RanWith,
		}
		if !e.Last.LastRun.IsZero() {
			lastRun := e.Last.LastRun
			item.LastRun = &lastRun
		}
		payload.Interpreters[i] = item
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(payload)
}

func supportsUnicode(writer any) bool {
	if file, ok := writer.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}

func formatStatus(status model.Status, useUnicode bool) string {
	if useUnicode {
		return fmt.Sprintf("%s %s", status.Icon(), status.String())
	}

	return fmt.Sprintf("%s %s", status.IconFallback(), status.String())
}

func formatRelativeTime(ts time.Time) string {
	if ts.IsZero() {
		return "never"
	}

	delta := time.Since(ts)
	if delta < time.Minute {
		return "just now"
	}
	if delta < time.Hour {
		return fmt.Sprintf("%d minutes ago", int(delta.Minutes()))
	}
	if delta < 24*time.Hour {
		return fmt.Sprintf("%d hours ago", int(delta.Hours()))
	}

	return fmt.Sprintf("%d days ago", int(delta.Hours()/24))
}

func valueOrFallback(value, fallback string) string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return fallback
	}
	return trimmed
}
