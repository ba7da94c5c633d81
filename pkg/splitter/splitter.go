// Package splitter cuts a file into sequential chunk files and writes the
// manifest needed to join them back.
package splitter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/sgaunet/fsj/pkg/chunkplan"
	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/copier"
	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/sgaunet/fsj/pkg/manifest"
)

var errIsDirectory = errors.New("is a directory")

// Splitter produces chunk files and their manifest.
type Splitter struct {
	copier  *copier.Copier
	log     *slog.Logger
	onChunk ChunkFunc
}

// ChunkFunc is called after each chunk file is complete. current counts
// from 1 up to total.
type ChunkFunc func(name string, size uint64, current, total int)

// Result describes a completed split.
type Result struct {
	Plan     chunkplan.Plan
	Manifest string
	Chunks   []string
	// BytesWritten is the number of bytes copied into chunk files.
	BytesWritten uint64
}

// New returns a Splitter copying through c and logging to log.
func New(c *copier.Copier, log *slog.Logger) *Splitter {
	return &Splitter{copier: c, log: log}
}

// OnChunk registers f to be called after every chunk written.
func (s *Splitter) OnChunk(f ChunkFunc) {
	s.onChunk = f
}

// Split cuts sourcePath into chunks. requestedPartSize takes precedence
// over requestedParts when positive.
//
// Chunk files are named after sourcePath with their index appended and the
// manifest is "join_<sourcePath>.fsj"; existing files are overwritten.
// There is no rollback: on failure the files created so far stay on disk.
func (s *Splitter) Split(ctx context.Context, sourcePath string, requestedParts int64, requestedPartSize uint64) (*Result, error) {
	//nolint:gosec // G304: splitting a user supplied file is the purpose of the tool
	src, err := os.Open(sourcePath)
	if err != nil {
		return nil, errcode.New(errcode.CannotOpenSource, sourcePath, err)
	}
	defer func() { _ = src.Close() }()

	info, err := src.Stat()
	if err != nil {
		return nil, errcode.New(errcode.CannotStat, sourcePath, err)
	}
	if info.IsDir() {
		return nil, errcode.New(errcode.CannotOpenSource, sourcePath, errIsDirectory)
	}

	totalSize := uint64(info.Size()) //nolint:gosec // G115: file sizes are never negative
	s.log.Info("File size", slog.String("file", sourcePath), slog.Uint64("bytes", totalSize))

	plan, err := chunkplan.New(totalSize, requestedParts, requestedPartSize)
	if err != nil {
		return nil, err
	}
	s.logPlan(sourcePath, plan)

	manifestPath := manifest.Name(sourcePath)
	//nolint:gosec // G304: manifest name derives from the user supplied source path
	mf, err := os.OpenFile(manifestPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.ChunkFilePermission)
	if err != nil {
		return nil, errcode.New(errcode.CannotCreateManifest, manifestPath, err)
	}
	defer func() { _ = mf.Close() }()

	mw := manifest.NewWriter(mf)
	result := &Result{Plan: plan, Manifest: manifestPath}

	chunks := plan.Chunks()
	for i, chunk := range chunks {
		name := manifest.ChunkName(sourcePath, chunk.Index)
		if err := s.writeChunk(ctx, src, name, chunk.Size); err != nil {
			return nil, err
		}
		if err := mw.Append(name); err != nil {
			return nil, err
		}
		result.BytesWritten += chunk.Size
		if s.onChunk != nil {
			s.onChunk(name, chunk.Size, i+1, len(chunks))
		}
	}

	if err := mf.Close(); err != nil {
		return nil, errcode.New(errcode.CannotWriteManifest, manifestPath, err)
	}
	result.Chunks = mw.Names()
	return result, nil
}

func (s *Splitter) writeChunk(ctx context.Context, src *os.File, name string, size uint64) error {
	s.log.Info("new_file_name", slog.String("file", name), slog.Uint64("bytes", size))

	//nolint:gosec // G304: chunk name derives from the user supplied source path
	dst, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.ChunkFilePermission)
	if err != nil {
		return errcode.New(errcode.CannotCreateChunk, name, err)
	}
	if err := s.copier.CopyExact(ctx, size, src, dst); err != nil {
		_ = dst.Close()
		return fmt.Errorf("chunk %s: %w", name, err)
	}
	if err := dst.Close(); err != nil {
		return errcode.New(errcode.ShortWrite, name, err)
	}
	return nil
}

func (s *Splitter) logPlan(sourcePath string, plan chunkplan.Plan) {
	s.log.Info("Split plan",
		slog.String("file", sourcePath),
		slog.String("mode", plan.Mode.String()),
		slog.Uint64("even_parts", plan.PartCount),
		slog.Uint64("part_size", plan.PartSize),
		slog.Uint64("left_over_bytes", plan.TailSize),
	)
	if plan.HasTail() {
		s.log.Info("Writing remaining (uneven) bytes to last file",
			slog.Uint64("bytes", plan.TailSize),
			slog.Uint64("file_number", plan.FileCount()),
		)
	}
}
