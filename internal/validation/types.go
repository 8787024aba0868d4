package validation

// CheckKind names what a check inspected.
type CheckKind string

const (
	// KindCommand checks that a toolchain executable is on PATH.
	KindCommand CheckKind = "command_exists"
	// KindWorkDir checks that the scratch root can be written.
	KindWorkDir CheckKind = "work_dir_writable"
)

// CheckResult captures the outcome of a single environment check.
type CheckResult struct {
	Kind        CheckKind `json:"kind"`
	Interpreter string    `json:"interpreter,omitempty"`
	Target      string    `json:"target"`
	Resolved    string    `json:"resolved,omitempty"`
	Passed      bool      `json:"passed"`
	Message     string    `json:"message"`
	Error       error     `json:"-"`
}
