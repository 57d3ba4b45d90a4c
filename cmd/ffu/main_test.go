package main

// NOTE: Tests in this file mutate package-level globals (executeFunc,
// geteuid, runUpgrade, logPath). Do not use t.Parallel(). Each test
// restores globals via t.Cleanup().

import (
	"bytes"
	"errors"
	"io"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtstack/ffu/internal/confirm"
	"github.com/virtstack/ffu/internal/driver"
)

func stubExecute(t *testing.T, err error) {
	t.Helper()
	orig := executeFunc
	executeFunc = func([]string, io.Writer, io.Writer) error { return err }
	t.Cleanup(func() { executeFunc = orig })
}

func captureExit(t *testing.T) (*int, func(int)) {
	t.Helper()
	code := -1
	return &code, func(c int) { code = c }
}

func TestRunMainSuccessDoesNotExit(t *testing.T) {
	stubExecute(t, nil)
	code, exit := captureExit(t)

	runMain([]string{"ffu"}, &bytes.Buffer{}, &bytes.Buffer{}, exit)
	assert.Equal(t, -1, *code)
}

func TestRunMainOperatorDeclineExitsZero(t *testing.T) {
	stubExecute(t, confirm.ErrDeclined)
	code, exit := captureExit(t)
	var stderr bytes.Buffer

	runMain([]string{"ffu"}, &bytes.Buffer{}, &stderr, exit)
	assert.Equal(t, 0, *code)
	assert.Empty(t, stderr.String())
}

func TestRunMainFatalErrorExitsTwo(t *testing.T) {
	stubExecute(t, errors.New("engine-setup failed with exit code 1"))
	code, exit := captureExit(t)
	var stderr bytes.Buffer

	runMain([]string{"ffu"}, &bytes.Buffer{}, &stderr, exit)
	assert.Equal(t, 2, *code)
	assert.Contains(t, stderr.String(), "engine-setup failed with exit code 1")
	assert.Contains(t, stderr.String(), "Error:")
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origBuildDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origBuildDate })

	Version, Commit, BuildDate = "1.2.0", "unknown", "unknown"
	assert.Equal(t, "1.2.0", versionString())

	Commit, BuildDate = "abc123", "2026-08-24"
	assert.Equal(t, "1.2.0 (commit abc123, built 2026-08-24)", versionString())
}

func TestExecuteVersionFlag(t *testing.T) {
	var out bytes.Buffer
	err := execute([]string{"ffu", "--version"}, &out, &out)
	require.NoError(t, err)
	assert.Equal(t, "dev\n", out.String())
}

func stubRoot(t *testing.T, euid int) *[]driver.Options {
	t.Helper()
	origEuid := geteuid
	origRun := runUpgrade
	geteuid = func() int { return euid }
	calls := &[]driver.Options{}
	runUpgrade = func(_ *cobra.Command, opts driver.Options) error {
		*calls = append(*calls, opts)
		return nil
	}
	t.Cleanup(func() {
		geteuid = origEuid
		runUpgrade = origRun
	})
	return calls
}

func TestRootRefusesNonRoot(t *testing.T) {
	calls := stubRoot(t, 1000)
	var out bytes.Buffer

	err := execute([]string{"ffu"}, &out, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "root user")
	assert.Empty(t, *calls)
}

func TestRootBackupDirRequiresBackup(t *testing.T) {
	calls := stubRoot(t, 0)
	var out bytes.Buffer

	err := execute([]string{"ffu", "--backup-dir", "/var/backups"}, &out, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--backup-dir requires --backup")
	assert.Empty(t, *calls)
}

func TestRootBackupDefaultsDirToTemp(t *testing.T) {
	calls := stubRoot(t, 0)

	err := execute([]string{"ffu", "--backup"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.True(t, (*calls)[0].Backup)
	assert.Equal(t, os.TempDir(), (*calls)[0].BackupDir)
}

func TestRootBackupDirPassedThrough(t *testing.T) {
	calls := stubRoot(t, 0)

	err := execute([]string{"ffu", "--backup", "--backup-dir", "/var/backups"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.Equal(t, driver.Options{Backup: true, BackupDir: "/var/backups"}, (*calls)[0])
}

func TestRootNoBackupByDefault(t *testing.T) {
	calls := stubRoot(t, 0)

	err := execute([]string{"ffu"}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)
	require.Len(t, *calls, 1)
	assert.False(t, (*calls)[0].Backup)
}

func TestRootRejectsPositionalArgs(t *testing.T) {
	stubRoot(t, 0)
	var out bytes.Buffer

	err := execute([]string{"ffu", "extra"}, &out, &out)
	require.Error(t, err)
}

func TestDoUpgradeUnwritableLogPath(t *testing.T) {
	origPath := logPath
	logPath = "/nonexistent-dir/ffu.log"
	t.Cleanup(func() { logPath = origPath })

	err := doUpgrade(newRootCmd(), driver.Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open log file")
}
