package tui

import (
	"fmt"
	"time"
)

// View renders the spinner line. It is empty once the run has finished so
// the terminal is left clean for the program output.
func (m Model) View() string {
	if m.finished {
		return ""
	}

	status := "running"
	if m.ctx != nil && m.ctx.Err() != nil {
		status = "cancelling"
	}
	elapsed := m.now().Sub(m.started).Truncate(100 * time.Millisecond)
	return fmt.Sprintf("%s %s %s %s\n",
		m.spinner.View(),
		statusStyle.Render(status),
		labelStyle.Render(m.label),
		elapsedStyle.Render(elapsed.String()),
	)
}
