package interpreter

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

var namePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]*$`)

// Interpreter is the contract every language adapter implements. One instance
// serves exactly one run and is discarded afterwards.
//
// Implementations should:
//   - Populate the code buffer from Data() in FetchCode, honoring CurrentLevel()
//   - Turn the buffer into a complete program in AddBoilerplate
//   - Stage (and compile, if needed) the program in Build
//   - Invoke the program in Execute and return what it printed
//   - Optionally redirect the whole run to a sibling in Fallback
//
// Most adapters embed Base and only write Build and Execute.
type Interpreter interface {
	// Metadata returns the adapter's identity and capabilities.
	Metadata() Metadata

	// Data returns a copy of the execution context the instance was built with.
	Data() DataHolder

	// CurrentLevel returns the operating support level.
	CurrentLevel() SupportLevel

	// SetCurrentLevel changes the operating level, capped at Metadata().MaxLevel.
	SetCurrentLevel(level SupportLevel)

	// Code returns the current content of the code buffer.
	Code() string

	// FetchCode selects the snippet text from Data(). Empty input is not an error.
	FetchCode() error

	// AddBoilerplate wraps the code buffer into a runnable unit. It must be
	// deterministic and touch nothing but the buffer.
	AddBoilerplate() error

	// Build writes the buffer to the scratch directory and compiles it when the
	// target is compiled. A non-zero compiler exit yields a CompilationError.
	Build(ctx context.Context) error

	// Execute runs the staged program. A non-zero exit yields a RuntimeError
	// carrying the captured stderr.
	Execute(ctx context.Context) (string, error)

	// Fallback is called after FetchCode. When the snippet belongs to another
	// interpreter, it runs the whole pipeline there and returns delegated=true
	// with that run's outcome. delegated=false lets the pipeline continue.
	Fallback(ctx context.Context) (output string, delegated bool, err error)
}

// Metadata describes an interpreter for the registry and for users.
type Metadata struct {
	// Name is the stable identifier, also used as the scratch subdirectory.
	Name string
	// Languages lists the filetype tags the interpreter claims.
	Languages []string
	// MaxLevel is the highest support level the interpreter can ever honor.
	MaxLevel SupportLevel
	// FallsBackTo names the interpreters Fallback may delegate to.
	FallsBackTo []string
	// Requires lists the executables that must be on PATH.
	Requires    []string
	Description string
}

// Validate ensures metadata is well-formed.
func (m Metadata) Validate() error {
	if strings.TrimSpace(m.Name) == "" {
		return fmt.Errorf("interpreter metadata requires a non-empty Name")
	}
	if !namePattern.MatchString(m.Name) {
		return fmt.Errorf("interpreter '%s' has invalid Name (expected lowercase letters, digits, '-' or '_')", m.Name)
	}
	if len(m.Languages) == 0 {
		return fmt.Errorf("interpreter '%s' metadata requires at least one language", m.Name)
	}
	for _, lang := range m.Languages {
		if strings.TrimSpace(lang) == "" {
			return fmt.Errorf("interpreter '%s' declares an empty language", m.Name)
		}
	}
	if m.MaxLevel < Unsupported || m.MaxLevel > File {
		return fmt.Errorf("interpreter '%s' has invalid MaxLevel %s", m.Name, m.MaxLevel)
	}

	for _, command := range m.Requires {
		if strings.TrimSpace(command) == "" {
			return fmt.Errorf("interpreter '%s' requires an empty command", m.Name)
		}
	}

	seen := map[string]struct{}{}
	for _, target := range m.FallsBackTo {
		if strings.TrimSpace(target) == "" {
			return fmt.Errorf("interpreter '%s' declares fallback with empty name", m.Name)
		}
		if target == m.Name {
			return fmt.Errorf("interpreter '%s' cannot fall back to itself", m.Name)
		}
		if _, exists := seen[target]; exists {
			return fmt.Errorf("interpreter '%s' lists fallback '%s' more than once", m.Name, target)
		}
		seen[target] = struct{}{}
	}

	return nil
}

// Supports reports whether the interpreter claims the language tag.
func (m Metadata) Supports(language string) bool {
	for _, lang := range m.Languages {
		if strings.EqualFold(lang, language) {
			return true
		}
	}
	return false
}

// Factory builds a fresh interpreter for one run.
type Factory func(data DataHolder, level SupportLevel) (Interpreter, error)

// Descriptor pairs an interpreter's metadata with its constructor so the
// interpreter can be listed and selected before any instance exists.
type Descriptor struct {
	Metadata
	New Factory
}
