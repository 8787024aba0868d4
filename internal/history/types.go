package history

import (
	"time"

	"github.com/alexisbeaulieu97/snipexec/internal/model"
)

// FileName is the history file created under the work directory.
const FileName = "history.json"

const fileVersion = "1.0"

// Entry stores the outcome of the latest run of one interpreter. RanWith is
// the interpreter that executed the snippet once fallbacks were followed.
type Entry struct {
	Interpreter string        `json:"interpreter"`
	Language    string        `json:"language,omitempty"`
	Level       string        `json:"level"`
	Status      model.Status  `json:"status"`
	Summary     string        `json:"summary"`
	Delegated   []string      `json:"delegated,omitempty"`
	RanWith     string        `json:"ran_with"`
	Duration    time.Duration `json:"duration"`
	LastRun     time.Time     `json:"last_run"`
}

// EntryFromResult condenses a run result into an Entry.
func EntryFromResult(result model.RunResult) Entry {
	return Entry{
		Interpreter: result.Interpreter,
		Language:    result.Language,
		Level:       result.Level,
		Status:      result.Status,
		Summary:     result.Summary(),
		Delegated:   append([]string(nil), result.Delegated...),
		RanWith:     result.FinalInterpreter(),
		Duration:    result.Duration,
		LastRun:     result.Timestamp,
	}
}

// File is the JSON file format for the history store.
type File struct {
	Version string           `json:"version"`
	Entries map[string]Entry `json:"entries"`
}
