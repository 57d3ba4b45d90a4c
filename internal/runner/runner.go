// Package runner executes the external tools the upgrade sequence is
// built from. Every invocation is logged at debug level with the full
// command line and runs with LC_ALL=C so output parsing stays
// locale-stable.
package runner

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/virtstack/ffu/internal/messages"
)

// localeOverride pins the child's locale for stable output parsing.
var localeOverride = map[string]string{"LC_ALL": "C"}

// Runner wraps a System with logging and the locale override.
type Runner struct {
	sys System
	log *slog.Logger
}

// New returns a Runner executing through sys.
func New(sys System, log *slog.Logger) *Runner {
	return &Runner{sys: sys, log: log}
}

// Run executes argv attached to the operator's terminal and returns the
// command's exit code. Callers decide whether a non-zero code is fatal.
func (r *Runner) Run(argv ...string) (int, error) {
	r.log.Debug("executing command", "cmd", strings.Join(argv, " "))
	code, err := r.sys.RunAttached(argv[0], argv[1:], localeOverride)
	if err != nil {
		return 0, fmt.Errorf(messages.RunnerStartErrFmt, argv[0], err)
	}
	return code, nil
}

// RunCaptured executes a shell-interpreted command line and returns its
// standard output for line-based parsing. A failure here has no
// caller-recoverable path: the error propagates to main, which logs it
// and terminates the run.
func (r *Runner) RunCaptured(cmdline string) (string, error) {
	r.log.Debug("executing command", "cmd", cmdline)
	stdout, stderr, code, err := r.sys.RunShell(cmdline, localeOverride)
	if err != nil {
		return "", fmt.Errorf(messages.RunnerStartErrFmt, cmdline, err)
	}
	if code != 0 {
		r.log.Error("command failed",
			"cmd", cmdline,
			"exit", code,
			"stdout", stdout,
			"stderr", stderr,
		)
		return "", fmt.Errorf(messages.CapturedCommandFailedFmt, cmdline, code)
	}
	return stdout, nil
}
