package constants

// CLI Output Formatting
//
// These constants control the visual formatting of CLI output.
const (
	// SeparatorWidth is the character width of console separators/dividers.
	// Used for the run summary printed after split and join.
	SeparatorWidth = 60
)

// Run Phases
//
// Labels used in progress output.
const (
	// ProgressTag prefixes every progress line.
	ProgressTag = "[FSJ]"
)
