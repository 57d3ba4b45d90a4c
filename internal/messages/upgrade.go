package messages

// Upgrade driver and subscription channel messages.
const (
	// EngineNotInstalledFmt reports a missing engine package during version detection.
	EngineNotInstalledFmt = "package %s is not installed; cannot determine the installed engine version"
	// UnsupportedVersionFmt reports a detected version outside the supported upgrade path.
	UnsupportedVersionFmt = "installed engine version %q does not match any supported upgrade path"
	// NoChannelCatalogFmt reports a version with no channel catalog.
	NoChannelCatalogFmt = "no channel catalog for version %q"

	ChannelMissingFmt  = "channel required for %s is not enabled: %s"
	ChannelUnknownFmt  = "enabled channel is not part of the %s channel set: %s"
	ChannelMismatch    = "The enabled channels do not match the expected set. Continue anyway?"
	CompatibilityGate  = "Upgrading past 4.2 removes support for cluster compatibility levels below 4.2. Confirm every cluster and data center is at level 4.2 or higher. Continue?"
	InvalidActionFmt   = "invalid channel action %q"
	UpgradeAvailFmt    = "An upgrade is available, upgrading to latest %s.z"
	NoSetupUpgradeFmt  = "No newer setup packages for %s, continuing with the channel switch"
	UpgradeCheckFmt    = "engine-upgrade-check failed with exit code %d"
	CommandFailedFmt   = "%s failed with exit code %d"
	KernelUpdateNotice = "a kernel update was installed; the pending reboot is required to complete it"

	BackupStarting = "taking engine backup"

	// RebootReminder is printed after a successful run.
	RebootReminder = "Please reboot the system to complete the upgrade."
	// CompatReminderFmt reminds the operator to raise compatibility levels after reboot.
	CompatReminderFmt = "Once rebooted, raise the cluster and data center compatibility level to %s.\nSee the post-upgrade tasks chapter of the upgrade guide.\n"
)
