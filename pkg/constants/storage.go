package constants

// KB is one kilobyte (1,024 bytes).
const KB = 1024

// Buffer Sizes
//
// These control memory allocation for file operations.
const (
	// IOBufferSize is the capacity of the transfer buffer used for every
	// chunk copy. 64KB measured best on the original target platforms.
	IOBufferSize = 64 * KB

	// CopyBufferSize is the buffer size for storage backend copy operations.
	CopyBufferSize = IOBufferSize
)

// File Permissions
//
// Standard Unix file permission constants.
const (
	// ChunkFilePermission is the mode of created chunk, manifest and output files (rw-------).
	ChunkFilePermission = 0o600

	// DefaultDirPermission is the default permission mode for created directories (rwxr-xr-x).
	DefaultDirPermission = 0o755
)
