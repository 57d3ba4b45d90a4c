// Package driver sequences the upgrade: detect the installed engine
// version, walk the ordered release steps, and apply the single step
// matching the host.
package driver

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"github.com/fatih/color"

	"github.com/virtstack/ffu/internal/confirm"
	"github.com/virtstack/ffu/internal/messages"
	"github.com/virtstack/ffu/internal/subscription"
)

const (
	// enginePackage is the package whose version identifies the
	// installed release.
	enginePackage = "ovirt-engine"

	// versionQuery lists installed versions for the engine package; the
	// -qa form exits zero with empty output when nothing is installed,
	// letting the driver report that case distinctly.
	versionQuery = `rpm -qa --queryformat '%{VERSION}\n' ` + enginePackage

	systemUpdateCommand = "yum -y update"
	setupPackageGlob    = "ovirt-engine-setup*"
)

// CommandRunner executes external commands for the driver.
type CommandRunner interface {
	Run(argv ...string) (int, error)
	RunCaptured(cmdline string) (string, error)
}

// ChannelManager verifies and flips the host's subscription channels.
type ChannelManager interface {
	CheckRequired(version string) (bool, error)
	SetChannels(action subscription.Action, ids []string) error
}

// Options carries the operator's run configuration.
type Options struct {
	Backup    bool
	BackupDir string
}

// Driver walks the release steps once, front to back.
type Driver struct {
	runner   CommandRunner
	channels ChannelManager
	confirm  confirm.Confirmer
	log      *slog.Logger
	out      io.Writer
	opts     Options

	// now is a seam for deterministic backup file names in tests.
	now func() time.Time
}

// New returns a Driver with the given collaborators.
func New(runner CommandRunner, channels ChannelManager, confirmer confirm.Confirmer, log *slog.Logger, out io.Writer, opts Options) *Driver {
	return &Driver{
		runner:   runner,
		channels: channels,
		confirm:  confirmer,
		log:      log,
		out:      out,
		opts:     opts,
		now:      time.Now,
	}
}

// DetectVersion returns the major version (e.g. "4.1") of the installed
// engine package. The version is re-queried on every call, never
// cached.
func (d *Driver) DetectVersion() (string, error) {
	output, err := d.runner.RunCaptured(versionQuery)
	if err != nil {
		return "", err
	}
	version, _, _ := strings.Cut(strings.TrimSpace(output), "\n")
	version = strings.TrimSpace(version)
	if version == "" {
		return "", fmt.Errorf(messages.EngineNotInstalledFmt, enginePackage)
	}
	if len(version) > 3 {
		version = version[:3]
	}
	return version, nil
}

// Run walks the supported upgrade path. Each iteration re-detects the
// installed version; a step acts only when it matches. When no step
// matched at all the run fails with an unsupported-version error.
func (d *Driver) Run() error {
	matched := false
	var detected, target string
	for _, step := range subscription.Steps() {
		version, err := d.DetectVersion()
		if err != nil {
			return err
		}
		detected = version
		if version != step.Version {
			continue
		}
		matched = true
		target = step.Next
		if err := d.applyStep(step); err != nil {
			return err
		}
	}
	if !matched {
		return fmt.Errorf(messages.UnsupportedVersionFmt, detected)
	}
	d.printReminders(target)
	return nil
}

// applyStep runs the full sequence for one release transition.
func (d *Driver) applyStep(step subscription.ReleaseStep) error {
	ok, err := d.channels.CheckRequired(step.Version)
	if err != nil {
		return err
	}
	if !ok {
		proceed, err := d.confirm.Confirm(messages.ChannelMismatch, false)
		if err != nil {
			return err
		}
		if !proceed {
			return confirm.ErrDeclined
		}
	}

	if d.opts.Backup {
		if err := d.runBackup(); err != nil {
			return err
		}
	}

	available, err := d.upgradeAvailable(step.Version)
	if err != nil {
		return err
	}
	if available {
		d.log.Info(fmt.Sprintf(messages.UpgradeAvailFmt, step.Version))
		if err := d.refreshSetup(); err != nil {
			return err
		}
	}

	if err := d.updateSystem(); err != nil {
		return err
	}

	if err := d.channels.SetChannels(subscription.Enable, step.Enable); err != nil {
		return err
	}
	if err := d.refreshSetup(); err != nil {
		return err
	}
	if err := d.updateSystem(); err != nil {
		return err
	}
	return d.channels.SetChannels(subscription.Disable, step.Disable)
}

// upgradeAvailable runs the engine upgrade check. Exit code 1 means no
// newer setup package and is not a failure; any other non-zero code is
// fatal.
func (d *Driver) upgradeAvailable(version string) (bool, error) {
	code, err := d.runner.Run("engine-upgrade-check")
	if err != nil {
		return false, err
	}
	switch code {
	case 0:
		return true, nil
	case 1:
		d.log.Info(fmt.Sprintf(messages.NoSetupUpgradeFmt, version))
		return false, nil
	}
	return false, fmt.Errorf(messages.UpgradeCheckFmt, code)
}

// refreshSetup updates the setup packages and re-runs the engine setup
// tool.
func (d *Driver) refreshSetup() error {
	if err := d.runMustSucceed("yum", "-y", "update", setupPackageGlob); err != nil {
		return err
	}
	return d.runMustSucceed("engine-setup")
}

// updateSystem applies the full system package update. The captured
// output is scanned so a kernel update can be called out; the operator
// is reminded to reboot at the end of the run regardless.
func (d *Driver) updateSystem() error {
	output, err := d.runner.RunCaptured(systemUpdateCommand)
	if err != nil {
		return err
	}
	if strings.Contains(output, "kernel") {
		d.log.Warn(messages.KernelUpdateNotice)
	}
	return nil
}

// runBackup invokes the backup tool with a timestamped destination in
// the configured directory.
func (d *Driver) runBackup() error {
	stamp := d.now().Format("20060102150405")
	file := filepath.Join(d.opts.BackupDir, "engine-backup-"+stamp+".tar.gz")
	d.log.Info(messages.BackupStarting, "file", file)
	return d.runMustSucceed(
		"engine-backup",
		"--scope=all",
		"--mode=backup",
		"--file="+file,
		"--log="+file+".log",
	)
}

// runMustSucceed runs argv and converts any non-zero exit into an
// error.
func (d *Driver) runMustSucceed(argv ...string) error {
	code, err := d.runner.Run(argv...)
	if err != nil {
		return err
	}
	if code != 0 {
		return fmt.Errorf(messages.CommandFailedFmt, argv[0], code)
	}
	return nil
}

func (d *Driver) printReminders(target string) {
	reminder := color.New(color.FgYellow, color.Bold)
	_, _ = reminder.Fprintln(d.out, messages.RebootReminder)
	_, _ = reminder.Fprintf(d.out, messages.CompatReminderFmt, target)
}
