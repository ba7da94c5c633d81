package constants_test

import (
	"testing"

	"github.com/sgaunet/fsj/pkg/constants"
)

func TestManifestFormatConstants(t *testing.T) {
	// The manifest format is shared with files produced by earlier releases
	if constants.ManifestDelimiter != 0x18 {
		t.Errorf("ManifestDelimiter = %#x, want 0x18", constants.ManifestDelimiter)
	}
	if constants.ManifestPrefix != "join_" {
		t.Errorf("ManifestPrefix = %q, want %q", constants.ManifestPrefix, "join_")
	}
	if constants.ManifestExtension != ".fsj" {
		t.Errorf("ManifestExtension = %q, want %q", constants.ManifestExtension, ".fsj")
	}
}

func TestExitConstants(t *testing.T) {
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"ExitSuccess", constants.ExitSuccess, 0},
		{"ExitFailure", constants.ExitFailure, 911},
		{"ExpectedArgs", constants.ExpectedArgs, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

func TestSizeConstants(t *testing.T) {
	// Verify size calculations
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"KB", constants.KB, 1024},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

func TestBufferSizeConstants(t *testing.T) {
	if constants.IOBufferSize != 65536 {
		t.Errorf("IOBufferSize = %d, want 65536", constants.IOBufferSize)
	}
	if constants.CopyBufferSize != constants.IOBufferSize {
		t.Errorf("CopyBufferSize = %d, want %d", constants.CopyBufferSize, constants.IOBufferSize)
	}
}

func TestFilePermissionConstants(t *testing.T) {
	if constants.ChunkFilePermission != 0o600 {
		t.Errorf("ChunkFilePermission = %o, want 0600", constants.ChunkFilePermission)
	}
	if constants.DefaultDirPermission != 0o755 {
		t.Errorf("DefaultDirPermission = %o, want 0755", constants.DefaultDirPermission)
	}
}

func TestS3ValidationConstants(t *testing.T) {
	// Verify S3 bucket naming constraints match AWS rules
	tests := []struct {
		name     string
		constant int
		expected int
	}{
		{"S3BucketNameMinLength", constants.S3BucketNameMinLength, 3},
		{"S3BucketNameMaxLength", constants.S3BucketNameMaxLength, 63},
		{"S3RegionMinLength", constants.S3RegionMinLength, 2},
		{"S3RegionMaxLength", constants.S3RegionMaxLength, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.constant != tt.expected {
				t.Errorf("%s = %d, want %d", tt.name, tt.constant, tt.expected)
			}
		})
	}
}

func TestUploadConstants(t *testing.T) {
	if constants.MaxUploadConcurrency < 1 {
		t.Errorf("MaxUploadConcurrency = %d, want >= 1", constants.MaxUploadConcurrency)
	}
	if constants.StorageRateBurst < 1 {
		t.Error("StorageRateBurst should be positive")
	}
}

func TestRedactionConstants(t *testing.T) {
	// Verify redaction placeholder
	if constants.RedactedValue != "***REDACTED***" {
		t.Errorf("RedactedValue = %s, want ***REDACTED***", constants.RedactedValue)
	}
}
