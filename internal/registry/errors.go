package registry

import (
	"fmt"
	"strings"
)

// ErrInterpreterNotFound is returned when no interpreter carries the name.
type ErrInterpreterNotFound struct {
	Name        string
	Suggestions []string
}

func (e ErrInterpreterNotFound) Error() string {
	msg := fmt.Sprintf("interpreter '%s' not found in registry", e.Name)
	if len(e.Suggestions) > 0 {
		return msg + fmt.Sprintf("\nHint: did you mean %s?", strings.Join(quoteAll(e.Suggestions), " or "))
	}
	return msg + "\nHint: run 'snipexec list' to see available interpreters"
}

// ErrNoInterpreterForLanguage is returned when no enabled interpreter claims a language.
type ErrNoInterpreterForLanguage struct {
	Language string
}

func (e ErrNoInterpreterForLanguage) Error() string {
	return fmt.Sprintf("no interpreter supports language '%s'\nHint: run 'snipexec list' to see supported languages", e.Language)
}

// ErrMissingFallback is returned when an interpreter falls back to one that is not registered.
type ErrMissingFallback struct {
	Interpreter string
	Target      string
}

func (e ErrMissingFallback) Error() string {
	return fmt.Sprintf(
		"interpreter '%s' falls back to '%s' which is not registered\nHint: register '%s' or remove it from FallsBackTo",
		e.Interpreter,
		e.Target,
		e.Target,
	)
}

// ErrCircularFallback is returned when fallback edges form a cycle.
type ErrCircularFallback struct {
	Cycle []string
}

func (e ErrCircularFallback) Error() string {
	if len(e.Cycle) == 0 {
		return "circular fallback detected\nHint: review FallsBackTo declarations to remove cycles"
	}

	sequence := append(append([]string{}, e.Cycle...), e.Cycle[0])
	return fmt.Sprintf(
		"circular fallback detected: %s\nHint: a run could bounce between these interpreters forever; remove one edge",
		strings.Join(sequence, " -> "),
	)
}

func quoteAll(values []string) []string {
	quoted := make([]string, len(values))
	for i, v := range values {
		quoted[i] = "'" + v + "'"
	}
	return quoted
}
