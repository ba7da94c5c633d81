// Package localstorage provides local file system storage implementation.
package localstorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/sgaunet/fsj/pkg/constants"
)

// ErrEmptyName is returned when a file name is empty.
var ErrEmptyName = errors.New("empty file name")

// LocalStorage implements storage interface for local file system.
type LocalStorage struct {
	dirpath string
}

// NewLocalStorage creates a new LocalStorage instance.
func NewLocalStorage(dirpath string) *LocalStorage {
	return &LocalStorage{
		dirpath: dirpath,
	}
}

// SaveFile copies srcPath into the storage directory under dstName.
func (s *LocalStorage) SaveFile(ctx context.Context, srcPath string, dstName string) error {
	if dstName == "" {
		return ErrEmptyName
	}
	if err := os.MkdirAll(s.dirpath, constants.DefaultDirPermission); err != nil {
		return fmt.Errorf("failed to create storage directory %s: %w", s.dirpath, err)
	}
	return copyFile(ctx, srcPath, filepath.Join(s.dirpath, filepath.Base(dstName)))
}

// GetFile copies the file stored under key to dstPath.
func (s *LocalStorage) GetFile(ctx context.Context, key string, dstPath string) error {
	if key == "" {
		return ErrEmptyName
	}
	return copyFile(ctx, filepath.Join(s.dirpath, filepath.Base(key)), dstPath)
}

// copyFile copies srcPath to dstPath, checking for cancellation between
// buffers. A partial destination is removed on failure.
func copyFile(ctx context.Context, srcPath string, dstPath string) error {
	if ctx.Err() != nil {
		return fmt.Errorf("operation cancelled before starting: %w", ctx.Err())
	}

	src, err := os.Open(srcPath) //nolint:gosec // G304: reading user supplied chunk paths is intended
	if err != nil {
		return fmt.Errorf("failed to open source file %s: %w", srcPath, err)
	}
	defer func() { _ = src.Close() }()

	same, err := sameFile(src, dstPath)
	if err != nil {
		return err
	}
	if same {
		return nil
	}

	//nolint:gosec // G304: writing user supplied chunk paths is intended
	fDst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, constants.ChunkFilePermission)
	if err != nil {
		return fmt.Errorf("failed to create destination file %s: %w", dstPath, err)
	}

	fail := func(err error) error {
		_ = fDst.Close()
		_ = os.Remove(dstPath)
		return err
	}

	buf := make([]byte, constants.CopyBufferSize)
	for {
		if ctx.Err() != nil {
			return fail(fmt.Errorf("copy cancelled: %w", ctx.Err()))
		}

		nr, er := src.Read(buf)
		if nr > 0 {
			nw, ew := fDst.Write(buf[0:nr])
			if ew != nil {
				return fail(fmt.Errorf("failed to write to destination: %w", ew))
			}
			if nr != nw {
				return fail(fmt.Errorf("short write: wrote %d bytes, expected %d: %w", nw, nr, io.ErrShortWrite))
			}
		}
		if er != nil {
			if !errors.Is(er, io.EOF) {
				return fail(fmt.Errorf("failed to read from source: %w", er))
			}
			break
		}
	}

	if err := fDst.Close(); err != nil {
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to close destination file %s: %w", dstPath, err)
	}
	return nil
}

// sameFile reports whether dstPath already is the open file src, as when the
// storage directory is the working directory. Truncating it would destroy src.
func sameFile(src *os.File, dstPath string) (bool, error) {
	dstInfo, err := os.Stat(dstPath)
	if err != nil {
		return false, nil //nolint:nilerr // a missing destination is created by the copy
	}
	srcInfo, err := src.Stat()
	if err != nil {
		return false, fmt.Errorf("failed to stat source file %s: %w", src.Name(), err)
	}
	return os.SameFile(srcInfo, dstInfo), nil
}
