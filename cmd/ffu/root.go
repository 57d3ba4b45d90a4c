package main

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/virtstack/ffu/internal/confirm"
	"github.com/virtstack/ffu/internal/driver"
	"github.com/virtstack/ffu/internal/logging"
	"github.com/virtstack/ffu/internal/messages"
	"github.com/virtstack/ffu/internal/runner"
	"github.com/virtstack/ffu/internal/subscription"
)

// Seams for tests.
var (
	geteuid    = os.Geteuid
	isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
	logPath    = logging.DefaultLogPath
	runUpgrade = doUpgrade
)

func newRootCmd() *cobra.Command {
	var backup bool
	var backupDir string

	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if geteuid() != 0 {
				return errors.New(messages.RequiresRoot)
			}
			if backupDir != "" && !backup {
				return errors.New(messages.BackupDirRequiresBackup)
			}
			if backupDir == "" {
				backupDir = os.TempDir()
			}
			return runUpgrade(cmd, driver.Options{Backup: backup, BackupDir: backupDir})
		},
	}

	cmd.Flags().BoolVar(&backup, "backup", false, messages.FlagBackup)
	cmd.Flags().StringVar(&backupDir, "backup-dir", "", messages.FlagBackupDir)
	return cmd
}

// doUpgrade wires the real collaborators and runs the sequence.
func doUpgrade(cmd *cobra.Command, opts driver.Options) error {
	logger, closeLog, err := logging.New(cmd.OutOrStdout(), logPath, !isTerminal())
	if err != nil {
		return err
	}
	defer func() { _ = closeLog() }()

	run := runner.New(runner.RealSystem{}, logger)
	confirmer := confirm.Stdin{In: cmd.InOrStdin(), Out: cmd.OutOrStdout()}
	channels := subscription.NewManager(run, confirmer, logger)
	return driver.New(run, channels, confirmer, logger, cmd.OutOrStdout(), opts).Run()
}
