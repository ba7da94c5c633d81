// Package constants provides centralized configuration constants for the fsj project.
//
// This package consolidates hard-coded values, limits and magic numbers
// from across the codebase into a single source of truth.
//
// Organization:
//   - fsj.go: chunk/manifest naming and process exit status
//   - storage.go: storage constants (buffer sizes, file permissions)
//   - validation.go: validation constraints (AWS limits, config boundaries)
//   - output.go: CLI output formatting constants
//
// Modifying Constants:
// The naming constants define the on-disk format shared by split and join.
// Changing them makes existing manifests unreadable by the new binary.
package constants
