package runner

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
)

// System abstracts process execution for the Runner. The interface is
// package-local so unit tests can script exit codes and output without
// touching the host.
type System interface {
	// RunAttached executes the command with the operator's stdio and
	// returns its exit code. The error is non-nil only when the command
	// could not be run at all.
	RunAttached(name string, args []string, env map[string]string) (int, error)
	// RunShell executes cmdline through /bin/sh -c with output captured.
	RunShell(cmdline string, env map[string]string) (stdout, stderr string, code int, err error)
}

// RealSystem implements System using os/exec.
type RealSystem struct{}

// RunAttached runs the command with inherited stdio.
func (RealSystem) RunAttached(name string, args []string, env map[string]string) (int, error) {
	cmd := exec.Command(name, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Env = mergeEnv(env)
	return exitCode(cmd.Run())
}

// RunShell runs cmdline through the shell and captures both streams.
func (RealSystem) RunShell(cmdline string, env map[string]string) (string, string, int, error) {
	cmd := exec.Command("/bin/sh", "-c", cmdline)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = mergeEnv(env)
	code, err := exitCode(cmd.Run())
	return stdout.String(), stderr.String(), code, err
}

// exitCode splits a Run error into (exit code, start failure).
func exitCode(err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, err
}

// mergeEnv overlays the overrides onto the current environment.
func mergeEnv(overrides map[string]string) []string {
	env := os.Environ()
	for key, value := range overrides {
		env = append(env, key+"="+value)
	}
	return env
}
