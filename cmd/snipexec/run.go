package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/alexisbeaulieu97/snipexec/internal/app/runner"
	"github.com/alexisbeaulieu97/snipexec/internal/model"
	"github.com/alexisbeaulieu97/snipexec/internal/tui"
	snipexecerrors "github.com/alexisbeaulieu97/snipexec/pkg/errors"
)

type runOptions struct {
	language    string
	interpreter string
	line        string
	bloc        string
	file        string
	level       string
	jsonOutput  bool
	boilerplate bool
}

func newRunCmd(root *rootFlags) *cobra.Command {
	opts := &runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run a code snippet",
		Long: `Run stages the snippet in a scratch directory, builds it with the
toolchain of the selected interpreter and prints what the program wrote.

The snippet comes from --bloc, --line or --file. Without any of them and with
stdin not attached to a terminal, the bloc is read from stdin.

Exit codes: 0 on success, 1 when the snippet fails to compile or run, 2 when
the environment is broken (missing toolchain, unwritable work directory).`,
		Example: `  snipexec run --lang c --bloc '1+1;'
  echo 'print("hi")' | snipexec run --lang lua
  snipexec run --file script.py --level line --line 'print(1)'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSnippet(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.language, "lang", "l", "", "Language tag of the snippet (e.g. rust, c, lua)")
	cmd.Flags().StringVarP(&opts.interpreter, "interpreter", "i", "", "Interpreter name; overrides language resolution")
	cmd.Flags().StringVar(&opts.line, "line", "", "Current line of the snippet")
	cmd.Flags().StringVar(&opts.bloc, "bloc", "", "Current block of the snippet")
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "Read the block from a file")
	cmd.Flags().StringVar(&opts.level, "level", "", "Operating support level: unsupported, line, bloc, import, file")
	cmd.Flags().BoolVar(&opts.jsonOutput, "json", false, "Output the run result in JSON format")
	cmd.Flags().BoolVar(&opts.boilerplate, "show-boilerplate", false, "Show the boilerplate wrapped around the snippet as a diff on stderr")

	return cmd
}

func runSnippet(cmd *cobra.Command, root *rootFlags, opts *runOptions) error {
	req, err := buildRunRequest(cmd.InOrStdin(), opts)
	if err != nil {
		return err
	}

	app, err := newAppContext(root, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	var (
		result model.RunResult
		runErr error
	)
	if showSpinner(cmd, root, opts) {
		result, runErr = tui.Run(cmd.Context(), cmd.ErrOrStderr(), runLabel(req), func(ctx context.Context) (model.RunResult, error) {
			return app.Runner.Run(ctx, req)
		})
	} else {
		result, runErr = app.Runner.Run(cmd.Context(), req)
	}

	if opts.jsonOutput {
		if result.Interpreter == "" && runErr != nil {
			return runErr
		}
		if err := renderRunJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
		if runErr != nil {
			return &reportedError{err: runErr}
		}
		return nil
	}

	if result.Boilerplate != "" {
		fmt.Fprint(cmd.ErrOrStderr(), result.Boilerplate)
	}
	if runErr != nil {
		return runErr
	}

	fmt.Fprint(cmd.OutOrStdout(), result.Output)
	return nil
}

func buildRunRequest(stdin io.Reader, opts *runOptions) (runner.Request, error) {
	req := runner.Request{
		Language:    strings.TrimSpace(opts.language),
		Interpreter: strings.TrimSpace(opts.interpreter),
		Line:        opts.line,
		Bloc:        opts.bloc,
		Level:       strings.TrimSpace(opts.level),

		ShowBoilerplate: opts.boilerplate,
	}

	if opts.file != "" {
		abs, err := filepath.Abs(opts.file)
		if err != nil {
			return runner.Request{}, fmt.Errorf("resolve snippet path: %w", err)
		}
		data, err := os.ReadFile(abs)
		if err != nil {
			return runner.Request{}, newCommandError("read snippet", abs, err, "Check that the file exists and is readable.")
		}
		if req.Bloc == "" {
			req.Bloc = string(data)
		}
		req.Filepath = abs
		if req.Language == "" {
			req.Language = strings.TrimPrefix(filepath.Ext(abs), ".")
		}
	}

	if req.Bloc == "" && req.Line == "" && opts.file == "" {
		if isTerminalReader(stdin) {
			return runner.Request{}, snipexecerrors.NewValidationError("snippet", "no snippet given: pass --bloc, --line, --file or pipe code on stdin", nil)
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return runner.Request{}, fmt.Errorf("read snippet from stdin: %w", err)
		}
		req.Bloc = string(data)
	}

	if req.Language == "" && req.Interpreter == "" {
		return runner.Request{}, snipexecerrors.NewValidationError("lang", "--lang or --interpreter is required", nil)
	}

	return req, nil
}

// showSpinner reports whether a progress spinner can be drawn without mixing
// into machine-readable or log output.
func showSpinner(cmd *cobra.Command, root *rootFlags, opts *runOptions) bool {
	if opts.jsonOutput || root.verbose {
		return false
	}
	file, ok := cmd.ErrOrStderr().(*os.File)
	return ok && supportsStyling(file)
}

func runLabel(req runner.Request) string {
	if req.Interpreter != "" {
		return req.Interpreter
	}
	return req.Language + " snippet"
}

func renderRunJSON(w io.Writer, result model.RunResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func isTerminalReader(r io.Reader) bool {
	if r == nil {
		return true
	}
	if file, ok := r.(*os.File); ok {
		return term.IsTerminal(int(file.Fd()))
	}
	return false
}
