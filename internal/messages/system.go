package messages

// Command runner and logging messages.
const (
	// RunnerStartErrFmt formats errors starting an external command.
	RunnerStartErrFmt = "start %s: %w"
	// CapturedCommandFailedFmt formats fatal captured-command failures.
	CapturedCommandFailedFmt = "command %q failed with exit code %d"

	// OpenLogFileErrFmt formats errors opening the persistent log file.
	OpenLogFileErrFmt = "open log file %s: %w"
)
