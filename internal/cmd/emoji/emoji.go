// Package emoji provides symbol constants for CLI output.
package emoji

// Status symbols shared by every command's output.
const (
	// Success marks a completed write or a clean validation.
	Success = "✓"

	// Error marks a failed operation or a violated invariant.
	Error = "✗"

	// Warning marks a non-fatal problem such as malformed catalog lines.
	Warning = "!"

	// Info marks informational status such as a dry run.
	Info = "i"
)
