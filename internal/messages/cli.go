package messages

// CLI messages for the root command and prompts.
const (
	// RootUse is the CLI command name.
	RootUse = "ffu"
	// RootShort is the short description for the root command.
	RootShort = "Fast-forward upgrade sequencer for the engine host"
	RootLong  = "Walks the engine host through successive minor releases: verifies the\n" +
		"enabled subscription channels, optionally takes an engine backup, applies\n" +
		"the in-place upgrade tooling, and flips the channel set to the next release."

	// VersionCommitFmt formats the commit hash for version display.
	VersionCommitFmt = "commit %s"
	VersionBuildFmt  = "built %s"
	VersionFullFmt   = "%s (%s)"
	VersionTemplate  = "{{.Version}}\n"

	// FlagBackup describes the --backup flag.
	FlagBackup = "Take an engine backup before touching the host"
	// FlagBackupDir describes the --backup-dir flag.
	FlagBackupDir = "Directory for the engine backup file (requires --backup)"

	BackupDirRequiresBackup = "--backup-dir requires --backup"
	RequiresRoot            = "this tool must be run as the root user"

	// PromptYesDefaultFmt formats yes/no prompts with yes as default.
	PromptYesDefaultFmt   = "%s [Y/n]: "
	PromptNoDefaultFmt    = "%s [y/N]: "
	PromptInvalidResponse = "invalid response %q"
	PromptRetryYesNo      = "Please enter y or n."
)
