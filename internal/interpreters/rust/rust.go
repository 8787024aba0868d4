package rust

import (
	"context"
	"path/filepath"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/internalexec"
)

// Name identifies the interpreter and its scratch directory.
const Name = "rust-original"

var metadata = interpreter.Metadata{
	Name:        Name,
	Languages:   []string{"rust", "rust-lang", "rs"},
	MaxLevel:    interpreter.Bloc,
	Requires:    []string{"rustc"},
	Description: "Compiles the snippet inside fn main() with rustc and runs the binary.",
}

// Rust compiles snippets with rustc.
type Rust struct {
	interpreter.Base

	workDir  string
	mainFile string
	binPath  string
}

// Descriptor returns the registry entry for rust-original.
func Descriptor() interpreter.Descriptor {
	return interpreter.Descriptor{Metadata: metadata, New: New}
}

// New prepares <work_dir>/rust-original for a run.
func New(data interpreter.DataHolder, level interpreter.SupportLevel) (interpreter.Interpreter, error) {
	dir, err := interpreter.Workspace(data, Name)
	if err != nil {
		return nil, err
	}

	return &Rust{
		Base:     interpreter.NewBase(metadata, data, level),
		workDir:  dir,
		mainFile: filepath.Join(dir, "main.rs"),
		binPath:  filepath.Join(dir, "main"),
	}, nil
}

func (r *Rust) AddBoilerplate() error {
	r.SetCode("fn main() {" + r.Code() + "}")
	return nil
}

func (r *Rust) Build(ctx context.Context) error {
	if err := r.WriteMain(r.mainFile); err != nil {
		return err
	}
	return internalexec.Compile(ctx, Name, "rustc", "--out-dir", r.workDir, r.mainFile)
}

func (r *Rust) Execute(ctx context.Context) (string, error) {
	return internalexec.Execute(ctx, Name, internalexec.Stdout, r.binPath)
}
