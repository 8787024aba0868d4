package interpreter

import (
	"context"
	"fmt"
	"strings"
)

// recordingInterpreter is a scriptable Interpreter that records stage calls.
type recordingInterpreter struct {
	Base

	calls *[]string

	fetchErr  error
	buildErr  error
	execErr   error
	wrapWith  string
	delegate  *Descriptor
	fallbackE error
}

func newRecording(meta Metadata, data DataHolder, level SupportLevel, calls *[]string) *recordingInterpreter {
	return &recordingInterpreter{Base: NewBase(meta, data, level), calls: calls}
}

func (r *recordingInterpreter) record(stage string) {
	*r.calls = append(*r.calls, r.meta.Name+":"+stage)
}

func (r *recordingInterpreter) FetchCode() error {
	r.record("fetch")
	if r.fetchErr != nil {
		return r.fetchErr
	}
	return r.Base.FetchCode()
}

func (r *recordingInterpreter) Fallback(ctx context.Context) (string, bool, error) {
	r.record("fallback")
	if r.fallbackE != nil {
		return "", false, r.fallbackE
	}
	if r.delegate != nil {
		out, err := Delegate(ctx, r, *r.delegate)
		return out, true, err
	}
	return "", false, nil
}

func (r *recordingInterpreter) AddBoilerplate() error {
	r.record("boilerplate")
	if r.wrapWith != "" {
		r.SetCode(strings.Replace(r.wrapWith, "%s", r.Code(), 1))
	}
	return nil
}

func (r *recordingInterpreter) Build(ctx context.Context) error {
	r.record("build")
	return r.buildErr
}

func (r *recordingInterpreter) Execute(ctx context.Context) (string, error) {
	r.record("execute")
	if r.execErr != nil {
		return "", r.execErr
	}
	return fmt.Sprintf("ran[%s]@%s", r.Code(), r.CurrentLevel()), nil
}

// recordingDescriptor wraps a recordingInterpreter in a Descriptor; configure
// customizes each fresh instance.
func recordingDescriptor(meta Metadata, calls *[]string, configure func(*recordingInterpreter)) Descriptor {
	return Descriptor{
		Metadata: meta,
		New: func(data DataHolder, level SupportLevel) (Interpreter, error) {
			it := newRecording(meta, data, level, calls)
			if configure != nil {
				configure(it)
			}
			return it, nil
		},
	}
}
