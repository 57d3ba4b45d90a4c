package subscription

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/virtstack/ffu/internal/confirm"
	"github.com/virtstack/ffu/internal/messages"
)

// listEnabledCommand is shell-interpreted; the subscription tool's
// output is parsed line by line for Repo ID markers.
const listEnabledCommand = "subscription-manager repos --list-enabled"

const repoIDKey = "Repo ID"

// compatGateVersion is the step whose channel check additionally fires
// the cluster-compatibility confirmation. The gate fires regardless of
// the check's own outcome.
const compatGateVersion = "4.2"

// Action selects the channel operation applied by SetChannels.
type Action string

const (
	Enable  Action = "enable"
	Disable Action = "disable"
)

// Runner executes external commands for the Manager.
type Runner interface {
	Run(argv ...string) (int, error)
	RunCaptured(cmdline string) (string, error)
}

// Manager queries and flips the host's subscription channels.
type Manager struct {
	runner  Runner
	confirm confirm.Confirmer
	log     *slog.Logger
}

// NewManager returns a Manager executing through runner and asking the
// operator through confirmer.
func NewManager(runner Runner, confirmer confirm.Confirmer, log *slog.Logger) *Manager {
	return &Manager{runner: runner, confirm: confirmer, log: log}
}

// ListEnabled returns the channels currently enabled on the host. The
// snapshot is never cached; callers re-query whenever they need it.
func (m *Manager) ListEnabled() ([]string, error) {
	output, err := m.runner.RunCaptured(listEnabledCommand)
	if err != nil {
		return nil, err
	}
	return parseEnabled(output), nil
}

// parseEnabled extracts the trimmed Repo ID values from the listing
// output. Lines without the marker are ignored.
func parseEnabled(output string) []string {
	channels := []string{}
	for _, line := range strings.Split(output, "\n") {
		key, value, found := strings.Cut(line, ":")
		if !found || strings.TrimSpace(key) != repoIDKey {
			continue
		}
		channels = append(channels, strings.TrimSpace(value))
	}
	return channels
}

// CheckRequired reports whether the enabled channel set matches the
// catalog for version exactly. Every missing or unexpected channel is
// logged as a warning. For the 4.2 step the operator must also pass
// the cluster-compatibility gate; declining terminates the run
// cleanly.
func (m *Manager) CheckRequired(version string) (bool, error) {
	enabled, err := m.ListEnabled()
	if err != nil {
		return false, err
	}
	required, err := RequiredChannels(version)
	if err != nil {
		return false, err
	}

	missing := difference(required, enabled)
	unknown := difference(enabled, required)
	for _, id := range missing {
		m.log.Warn(fmt.Sprintf(messages.ChannelMissingFmt, version, id))
	}
	for _, id := range unknown {
		m.log.Warn(fmt.Sprintf(messages.ChannelUnknownFmt, version, id))
	}

	if version == compatGateVersion {
		ok, err := m.confirm.Confirm(messages.CompatibilityGate, false)
		if err != nil {
			return false, err
		}
		if !ok {
			return false, confirm.ErrDeclined
		}
	}

	return len(missing) == 0 && len(unknown) == 0, nil
}

// SetChannels applies action to every channel in ids with a single
// subscription tool invocation. An empty id set is a no-op.
func (m *Manager) SetChannels(action Action, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	var flag string
	switch action {
	case Enable:
		flag = "--enable="
	case Disable:
		flag = "--disable="
	default:
		return fmt.Errorf(messages.InvalidActionFmt, string(action))
	}

	argv := []string{"subscription-manager", "repos"}
	for _, id := range ids {
		argv = append(argv, flag+id)
	}
	code, err := m.runner.Run(argv...)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf(messages.CommandFailedFmt, "subscription-manager repos", code)
	}
	return nil
}
