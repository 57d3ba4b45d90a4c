package runner

import (
	"errors"
	"fmt"
)

// errNotMocked is returned when a testSystem method is called without a
// mock function set.
var errNotMocked = errors.New("testSystem: method not mocked")

// testSystem provides a scripted System for unit tests. Both methods
// fail fast when unmocked; runner tests must never touch the host.
type testSystem struct {
	RunAttachedFunc func(name string, args []string, env map[string]string) (int, error)
	RunShellFunc    func(cmdline string, env map[string]string) (string, string, int, error)
}

func (s *testSystem) RunAttached(name string, args []string, env map[string]string) (int, error) {
	if s.RunAttachedFunc != nil {
		return s.RunAttachedFunc(name, args, env)
	}
	return 0, fmt.Errorf("%w: RunAttached", errNotMocked)
}

func (s *testSystem) RunShell(cmdline string, env map[string]string) (string, string, int, error) {
	if s.RunShellFunc != nil {
		return s.RunShellFunc(cmdline, env)
	}
	return "", "", 0, fmt.Errorf("%w: RunShell", errNotMocked)
}
