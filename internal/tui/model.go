// Package tui shows a spinner on the terminal while a snippet is staged,
// compiled and run.
package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/alexisbeaulieu97/snipexec/internal/model"
)

// RunFunc performs the run the spinner waits on.
type RunFunc func(ctx context.Context) (model.RunResult, error)

// RunFinishedMsg carries the outcome of the run.
type RunFinishedMsg struct {
	Result model.RunResult
	Err    error
}

// Model is the Bubbletea state of the run spinner.
type Model struct {
	label    string
	run      RunFunc
	ctx      context.Context
	spinner  spinner.Model
	started  time.Time
	now      func() time.Time
	result   model.RunResult
	err      error
	finished bool
}

// NewModel constructs a spinner model for run. The model does not read
// input: cancelling ctx stops the run, and the model keeps spinning until run
// returns.
func NewModel(ctx context.Context, label string, run RunFunc) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinnerStyle

	return Model{
		label:   label,
		run:     run,
		ctx:     ctx,
		spinner: s,
		started: time.Now(),
		now:     time.Now,
	}
}

// Init starts the spinner and the run.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runCmd())
}

func (m Model) runCmd() tea.Cmd {
	run, ctx := m.run, m.ctx
	return func() tea.Msg {
		if run == nil {
			return RunFinishedMsg{}
		}
		result, err := run(ctx)
		return RunFinishedMsg{Result: result, Err: err}
	}
}

// Result returns the run outcome once IsFinished reports true.
func (m Model) Result() (model.RunResult, error) {
	return m.result, m.err
}

// IsFinished reports whether the run has returned.
func (m Model) IsFinished() bool {
	return m.finished
}
