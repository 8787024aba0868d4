package python3

import (
	"context"
	"path/filepath"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/internalexec"
)

// Name identifies the interpreter and its scratch directory.
const Name = "python3-original"

var metadata = interpreter.Metadata{
	Name:        Name,
	Languages:   []string{"python", "python3", "py"},
	MaxLevel:    interpreter.Bloc,
	Requires:    []string{"python3"},
	Description: "Runs the snippet with python3.",
}

// Python3 runs snippets with the python3 binary.
type Python3 struct {
	interpreter.Base

	mainFile string
}

// Descriptor returns the registry entry for python3-original.
func Descriptor() interpreter.Descriptor {
	return interpreter.Descriptor{Metadata: metadata, New: New}
}

// New prepares <work_dir>/python3-original for a run.
func New(data interpreter.DataHolder, level interpreter.SupportLevel) (interpreter.Interpreter, error) {
	dir, err := interpreter.Workspace(data, Name)
	if err != nil {
		return nil, err
	}

	return &Python3{
		Base:     interpreter.NewBase(metadata, data, level),
		mainFile: filepath.Join(dir, "main.py"),
	}, nil
}

func (p *Python3) Build(ctx context.Context) error {
	return p.WriteMain(p.mainFile)
}

func (p *Python3) Execute(ctx context.Context) (string, error) {
	return internalexec.Execute(ctx, Name, internalexec.Stdout, "python3", p.mainFile)
}
