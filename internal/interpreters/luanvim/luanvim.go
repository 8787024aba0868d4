package luanvim

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/internalexec"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/lua"
)

// Name identifies the interpreter and its scratch directory.
const Name = "lua-nvim"

// marker must appear in a snippet for it to be treated as Neovim Lua.
const marker = "nvim"

var metadata = interpreter.Metadata{
	Name:        Name,
	Languages:   []string{"lua"},
	MaxLevel:    interpreter.Bloc,
	Requires:    []string{"nvim"},
	FallsBackTo: []string{lua.Name},
	Description: "Runs Neovim Lua in a headless nvim; plain Lua is handed to lua-original.",
}

// LuaNvim runs snippets through `nvim --headless -c "luafile ..."`.
type LuaNvim struct {
	interpreter.Base

	mainFile string
}

// Descriptor returns the registry entry for lua-nvim.
func Descriptor() interpreter.Descriptor {
	return interpreter.Descriptor{Metadata: metadata, New: New}
}

// New prepares <work_dir>/lua-nvim for a run.
func New(data interpreter.DataHolder, level interpreter.SupportLevel) (interpreter.Interpreter, error) {
	dir, err := interpreter.Workspace(data, Name)
	if err != nil {
		return nil, err
	}

	return &LuaNvim{
		Base:     interpreter.NewBase(metadata, data, level),
		mainFile: filepath.Join(dir, "main.lua"),
	}, nil
}

// Fallback hands snippets that never mention nvim to lua-original. It builds
// the target from lua.Descriptor rather than through a registry; the registry
// keeps that safe by disabling lua-nvim whenever lua-original is missing or
// disabled, so an enabled lua-nvim never reaches a disabled target.
func (l *LuaNvim) Fallback(ctx context.Context) (string, bool, error) {
	if strings.Contains(l.Code(), marker) {
		return "", false, nil
	}
	out, err := interpreter.Delegate(ctx, l, lua.Descriptor())
	return out, true, err
}

func (l *LuaNvim) Build(ctx context.Context) error {
	return l.WriteMain(l.mainFile)
}

// Execute reports stderr on success: headless nvim prints messages there.
func (l *LuaNvim) Execute(ctx context.Context) (string, error) {
	return internalexec.Execute(ctx, Name, internalexec.Stderr,
		"nvim", "--headless",
		"-c", fmt.Sprintf("luafile %s", l.mainFile),
		"-c", "q!",
	)
}
