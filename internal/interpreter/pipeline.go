package interpreter

import (
	"context"
	"fmt"
	"sync"

	"github.com/alexisbeaulieu97/snipexec/internal/logger"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// Run builds a fresh interpreter from desc and drives it through the
// pipeline. The requested level is capped at desc.MaxLevel.
func Run(ctx context.Context, desc Descriptor, data DataHolder, level SupportLevel) (string, error) {
	if desc.New == nil {
		return "", snipexecerrors.NewInterpreterError(desc.Name, fmt.Errorf("descriptor has no constructor"))
	}

	it, err := desc.New(data, level.Clamp(desc.MaxLevel))
	if err != nil {
		return "", err
	}
	return RunInterpreter(ctx, it)
}

// RunInterpreter drives an already constructed interpreter through
// fetch, fallback, boilerplate, build and execute. The first failing stage
// ends the run and its error is returned untouched.
func RunInterpreter(ctx context.Context, it Interpreter) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	name := it.Metadata().Name
	log := logger.FromContext(ctx).WithInterpreter(name)

	if err := it.FetchCode(); err != nil {
		return "", snipexecerrors.NewEnvironmentError(name, "fetch code", err)
	}
	log.Debug(fmt.Sprintf("fetched %d bytes at level %s", len(it.Code()), it.CurrentLevel()))

	output, delegated, err := it.Fallback(ctx)
	if delegated {
		log.Debug("run delegated by fallback")
		return output, err
	}
	if err != nil {
		return "", err
	}

	snippet := it.Code()
	if err := it.AddBoilerplate(); err != nil {
		return "", err
	}
	if trace := traceFrom(ctx); trace != nil {
		trace.stage(Staging{Interpreter: name, Snippet: snippet, Program: it.Code()})
	}
	log.Debug("building")
	if err := it.Build(ctx); err != nil {
		return "", err
	}
	log.Debug("executing")
	return it.Execute(ctx)
}

// Delegate re-runs the full pipeline on a fresh instance of target, built
// from the same context and level as from. Fallback implementations call it.
func Delegate(ctx context.Context, from Interpreter, target Descriptor) (string, error) {
	if trace := traceFrom(ctx); trace != nil {
		trace.add(target.Name)
	}
	logger.FromContext(ctx).
		WithInterpreter(from.Metadata().Name).
		Info(fmt.Sprintf("falling back to %s", target.Name))
	return Run(ctx, target, from.Data(), from.CurrentLevel())
}

type traceKey struct{}

// Staging is the code buffer of one interpreter before and after
// AddBoilerplate.
type Staging struct {
	Interpreter string
	Snippet     string
	Program     string
}

// Trace records every interpreter a run was delegated to, in order, and the
// program each interpreter staged.
type Trace struct {
	mu     sync.Mutex
	hops   []string
	staged []Staging
}

// WithTrace returns a context whose delegations are recorded in the returned Trace.
func WithTrace(ctx context.Context) (context.Context, *Trace) {
	trace := &Trace{}
	return context.WithValue(ctx, traceKey{}, trace), trace
}

// Hops returns the delegation targets seen so far.
func (t *Trace) Hops() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]string(nil), t.hops...)
}

// Staged returns the program prepared by the interpreter that reached the
// build stage last. ok is false when no interpreter got that far.
func (t *Trace) Staged() (Staging, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.staged) == 0 {
		return Staging{}, false
	}
	return t.staged[len(t.staged)-1], true
}

func (t *Trace) stage(s Staging) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.staged = append(t.staged, s)
}

func traceFrom(ctx context.Context) *Trace {
	if ctx == nil {
		return nil
	}
	trace, _ := ctx.Value(traceKey{}).(*Trace)
	return trace
}

func (t *Trace) add(name string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.hops = append(t.hops, name)
}
