package c

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/internalexec"
)

// Name identifies the interpreter and its scratch directory.
const Name = "c-original"

var metadata = interpreter.Metadata{
	Name:        Name,
	Languages:   []string{"c"},
	MaxLevel:    interpreter.Bloc,
	Requires:    []string{"gcc"},
	Description: "Wraps the snippet in main(), compiles it with gcc and runs the binary.",
}

var defaultIncludes = []string{"#include <stdio.h>", "#include <stdlib.h>"}

// C compiles snippets with gcc.
type C struct {
	interpreter.Base

	mainFile string
	binPath  string
}

// Descriptor returns the registry entry for c-original.
func Descriptor() interpreter.Descriptor {
	return interpreter.Descriptor{Metadata: metadata, New: New}
}

// New prepares <work_dir>/c-original for a run.
func New(data interpreter.DataHolder, level interpreter.SupportLevel) (interpreter.Interpreter, error) {
	dir, err := interpreter.Workspace(data, Name)
	if err != nil {
		return nil, err
	}

	return &C{
		Base:     interpreter.NewBase(metadata, data, level),
		mainFile: filepath.Join(dir, "main.c"),
		binPath:  filepath.Join(dir, "main"),
	}, nil
}

// AddBoilerplate hoists #include lines out of the snippet and wraps the rest
// in main, producing a complete translation unit.
func (c *C) AddBoilerplate() error {
	includes := append([]string(nil), defaultIncludes...)
	seen := make(map[string]struct{}, len(includes))
	for _, inc := range includes {
		seen[inc] = struct{}{}
	}

	var body []string
	for _, line := range strings.Split(c.Code(), "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#include") {
			if _, dup := seen[trimmed]; !dup {
				seen[trimmed] = struct{}{}
				includes = append(includes, trimmed)
			}
			continue
		}
		body = append(body, line)
	}

	var b strings.Builder
	for _, inc := range includes {
		b.WriteString(inc)
		b.WriteString("\n")
	}
	b.WriteString("int main() {\n")
	b.WriteString(strings.Join(body, "\n"))
	b.WriteString("\nreturn 0;\n}\n")
	c.SetCode(b.String())
	return nil
}

func (c *C) Build(ctx context.Context) error {
	if err := c.WriteMain(c.mainFile); err != nil {
		return err
	}
	return internalexec.Compile(ctx, Name, "gcc", c.mainFile, "-o", c.binPath)
}

func (c *C) Execute(ctx context.Context) (string, error) {
	return internalexec.Execute(ctx, Name, internalexec.Stdout, c.binPath)
}
