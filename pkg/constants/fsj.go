package constants

// Manifest Format
//
// A manifest is named "join_<source>.fsj" and holds the chunk file names
// in write order, each one followed by the delimiter byte.
const (
	// ManifestPrefix is prepended to the source path to build the manifest name.
	ManifestPrefix = "join_"

	// ManifestExtension is appended to the source path to build the manifest name.
	ManifestExtension = ".fsj"

	// ManifestDelimiter terminates every chunk name inside a manifest (ASCII CAN).
	ManifestDelimiter byte = 0x18

	// OutputNameStart marks the beginning of the reconstructed file name
	// inside a manifest name (first occurrence).
	OutputNameStart = '_'

	// OutputNameEnd marks the end of the reconstructed file name
	// inside a manifest name (last occurrence).
	OutputNameEnd = '.'
)

// Process Exit Status.
const (
	// ExitSuccess is returned when the requested operation completed.
	ExitSuccess = 0

	// ExitFailure is returned for every error class and for usage violations.
	// Kept at 911 for compatibility with scripts written against earlier releases;
	// the printed error code identifies the actual failure.
	ExitFailure = 911

	// ExpectedArgs is the exact number of process arguments accepted
	// (program name, one option, one path).
	ExpectedArgs = 3
)
