package interpreter

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// Base carries the state every interpreter needs and implements the parts of
// the contract that rarely vary: accessors, the fetch policy, an empty
// boilerplate stage and no fallback. Adapters embed it and override as needed.
type Base struct {
	meta  Metadata
	data  DataHolder
	level SupportLevel
	code  string
}

// NewBase returns a Base with level capped at meta.MaxLevel.
func NewBase(meta Metadata, data DataHolder, level SupportLevel) Base {
	return Base{
		meta:  meta,
		data:  data,
		level: level.Clamp(meta.MaxLevel),
	}
}

func (b *Base) Metadata() Metadata {
	return b.meta
}

func (b *Base) Data() DataHolder {
	return b.data
}

func (b *Base) CurrentLevel() SupportLevel {
	return b.level
}

func (b *Base) SetCurrentLevel(level SupportLevel) {
	b.level = level.Clamp(b.meta.MaxLevel)
}

func (b *Base) Code() string {
	return b.code
}

// SetCode replaces the code buffer.
func (b *Base) SetCode(code string) {
	b.code = code
}

// FetchCode prefers the bloc when it holds anything besides whitespace and the
// level allows it, then the line, and otherwise leaves the buffer empty.
func (b *Base) FetchCode() error {
	switch {
	case stripChars(b.data.CurrentBloc, " \t\n\r") != "" && b.level.AtLeast(Bloc):
		b.code = b.data.CurrentBloc
	case stripChars(b.data.CurrentLine, " ") != "" && b.level.AtLeast(Line):
		b.code = b.data.CurrentLine
	default:
		b.code = ""
	}
	return nil
}

func (b *Base) AddBoilerplate() error {
	return nil
}

func (b *Base) Fallback(ctx context.Context) (string, bool, error) {
	return "", false, nil
}

// WriteMain writes the code buffer to path.
func (b *Base) WriteMain(path string) error {
	if err := os.WriteFile(path, []byte(b.code), 0o644); err != nil {
		return snipexecerrors.NewEnvironmentError(b.meta.Name, "write "+filepath.Base(path), err)
	}
	return nil
}

// Workspace creates <work_dir>/<name> if absent and returns its path.
func Workspace(data DataHolder, name string) (string, error) {
	if strings.TrimSpace(data.WorkDir) == "" {
		return "", snipexecerrors.NewEnvironmentError(name, "create scratch directory", fmt.Errorf("work directory is empty"))
	}

	dir := filepath.Join(data.WorkDir, name)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", snipexecerrors.NewEnvironmentError(name, "create scratch directory", err)
	}
	return dir, nil
}

func stripChars(s, chars string) string {
	return strings.Map(func(r rune) rune {
		if strings.ContainsRune(chars, r) {
			return -1
		}
		return r
	}, s)
}
