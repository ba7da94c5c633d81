// Package storage defines where chunk sets are published after a split
// and fetched from before a join.
package storage

import (
	"context"
)

//go:generate go tool github.com/matryer/moq -out mocks/storage.go -pkg mocks . Storage

// Storage is a remote or local location holding manifests and chunks by name.
type Storage interface {
	// SaveFile stores the local file srcPath under dstName.
	SaveFile(ctx context.Context, srcPath string, dstName string) error
	// GetFile retrieves the object stored under key into the local file dstPath.
	GetFile(ctx context.Context, key string, dstPath string) error
}
