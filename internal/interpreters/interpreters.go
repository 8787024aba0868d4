// Package interpreters lists the language adapters shipped with snipexec.
package interpreters

import (
	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/c"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/lua"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/luanvim"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/python3"
	"github.com/alexisbeaulieu97/snipexec/internal/interpreters/rust"
)

// Builtin returns a descriptor for every shipped interpreter.
func Builtin() []interpreter.Descriptor {
	return []interpreter.Descriptor{
		c.Descriptor(),
		lua.Descriptor(),
		luanvim.Descriptor(),
		python3.Descriptor(),
		rust.Descriptor(),
	}
}
