// Package validation checks that the host can actually run snippets: the
// toolchains interpreters shell out to are installed and the work directory
// is usable.
package validation

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexisbeaulieu97/snipexec/internal/interpreter"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

// RunChecks checks workDir and every command required by metas, returning
// one result per check. The error lists every failed check.
func RunChecks(ctx context.Context, workDir string, metas []interpreter.Metadata) ([]CheckResult, error) {
	results := make([]CheckResult, 0, len(metas)+1)
	var failedMessages []string

	record := func(result CheckResult, err error) {
		if err != nil {
			result.Passed = false
			result.Message = err.Error()
			result.Error = err
			failedMessages = append(failedMessages, err.Error())
		} else {
			result.Passed = true
			result.Message = "passed"
		}
		results = append(results, result)
	}

	record(CheckResult{Kind: KindWorkDir, Target: workDir}, wrapEnv("", "check work directory", CheckWorkDirWritable(workDir)))

	for _, meta := range metas {
		for _, command := range meta.Requires {
			if err := ctx.Err(); err != nil {
				return results, err
			}
			path, err := CheckCommandExists(command)
			record(CheckResult{
				Kind:        KindCommand,
				Interpreter: meta.Name,
				Target:      command,
				Resolved:    path,
			}, wrapEnv(meta.Name, "find "+command, err))
		}
	}

	if len(failedMessages) > 0 {
		combined := strings.Join(failedMessages, "; ")
		return results, fmt.Errorf("checks failed: %s", combined)
	}

	return results, nil
}

func wrapEnv(interpreterName, op string, err error) error {
	if err == nil {
		return nil
	}
	return snipexecerrors.NewEnvironmentError(interpreterName, op, err)
}
