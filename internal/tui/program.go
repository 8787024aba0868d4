package tui

import (
	"context"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/snipexec/internal/model"
)

// Run executes fn while a spinner labelled label is drawn on out. Input is
// not read and signals are left to the caller: interrupting the process
// cancels ctx through the root signal context, which ends fn.
func Run(ctx context.Context, out io.Writer, label string, fn RunFunc) (model.RunResult, error) {
	program := tea.NewProgram(
		NewModel(ctx, label, fn),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	final, err := program.Run()
	if m, ok := final.(Model); ok && m.IsFinished() {
		return m.Result()
	}
	if err != nil {
		return model.RunResult{}, fmt.Errorf("run spinner: %w", err)
	}
	return model.RunResult{}, fmt.Errorf("run spinner exited before the run finished")
}
