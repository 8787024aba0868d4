package lua

import (
	"context"
	"path/filepath"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/internalexec"
)

// Name identifies the interpreter and its scratch directory.
const Name = "lua-original"

var metadata = interpreter.Metadata{
	Name:        Name,
	Languages:   []string{"lua"},
	MaxLevel:    interpreter.Bloc,
	Requires:    []string{"lua"},
	Description: "Runs the snippet with the standalone lua interpreter.",
}

// Lua runs snippets with the lua binary.
type Lua struct {
	interpreter.Base

	mainFile string
}

// Descriptor returns the registry entry for lua-original.
func Descriptor() interpreter.Descriptor {
	return interpreter.Descriptor{Metadata: metadata, New: New}
}

// New prepares <work_dir>/lua-original for a run.
func New(data interpreter.DataHolder, level interpreter.SupportLevel) (interpreter.Interpreter, error) {
	dir, err := interpreter.Workspace(data, Name)
	if err != nil {
		return nil, err
	}

	return &Lua{
		Base:     interpreter.NewBase(metadata, data, level),
		mainFile: filepath.Join(dir, "main.lua"),
	}, nil
}

func (l *Lua) Build(ctx context.Context) error {
	return l.WriteMain(l.mainFile)
}

func (l *Lua) Execute(ctx context.Context) (string, error) {
	return internalexec.Execute(ctx, Name, internalexec.Stdout, "lua", l.mainFile)
}
