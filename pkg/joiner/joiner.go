// Package joiner rebuilds a file from the chunk files listed in a manifest.
package joiner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/copier"
	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/sgaunet/fsj/pkg/manifest"
)

// Joiner concatenates chunk files in manifest order.
type Joiner struct {
	copier  *copier.Copier
	log     *slog.Logger
	onChunk ChunkFunc
}

// ChunkFunc is called after each chunk is appended to the output. current
// counts from 1 up to total.
type ChunkFunc func(name string, size uint64, current, total int)

// Result describes a completed join.
type Result struct {
	Output       string
	Chunks       []string
	BytesWritten uint64
}

// New returns a Joiner copying through c and logging to log.
func New(c *copier.Copier, log *slog.Logger) *Joiner {
	return &Joiner{copier: c, log: log}
}

// OnChunk registers f to be called after every chunk appended.
func (j *Joiner) OnChunk(f ChunkFunc) {
	j.onChunk = f
}

// Join reads manifestPath and writes the chunks it lists, in order, into
// the file named by the manifest (see manifest.OutputName). The output is
// overwritten if it exists and left as is when a chunk fails.
func (j *Joiner) Join(ctx context.Context, manifestPath string) (*Result, error) {
	data, err := ReadManifest(manifestPath)
	if err != nil {
		return nil, err
	}

	outputPath, err := manifest.OutputName(manifestPath)
	if err != nil {
		return nil, err
	}

	//nolint:gosec // G304: output name derives from the user supplied manifest path
	out, err := os.OpenFile(outputPath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, constants.ChunkFilePermission)
	if err != nil {
		return nil, errcode.New(errcode.CannotCreateOutput, outputPath, err)
	}
	defer func() { _ = out.Close() }()

	names, err := manifest.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", manifestPath, err)
	}

	result := &Result{Output: outputPath, Chunks: names}
	for i, name := range names {
		n, err := j.appendChunk(ctx, out, name)
		if err != nil {
			return nil, err
		}
		result.BytesWritten += n
		if j.onChunk != nil {
			j.onChunk(name, n, i+1, len(names))
		}
	}

	if err := out.Close(); err != nil {
		return nil, errcode.New(errcode.ShortWrite, outputPath, err)
	}
	return result, nil
}

// ReadManifest loads the whole manifest file into memory.
func ReadManifest(manifestPath string) ([]byte, error) {
	//nolint:gosec // G304: reading a user supplied manifest is intentional
	f, err := os.Open(manifestPath)
	if err != nil {
		return nil, errcode.New(errcode.CannotOpenManifest, manifestPath, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return nil, errcode.New(errcode.CannotStatManifest, manifestPath, err)
	}

	data := make([]byte, info.Size())
	if _, err := io.ReadFull(f, data); err != nil {
		return nil, errcode.New(errcode.CannotReadManifest, manifestPath, err)
	}
	return data, nil
}

func (j *Joiner) appendChunk(ctx context.Context, out io.Writer, name string) (uint64, error) {
	//nolint:gosec // G304: chunk names come from the manifest verbatim
	f, err := os.Open(name)
	if err != nil {
		return 0, errcode.New(errcode.CannotOpenChunk, name, err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return 0, errcode.New(errcode.CannotStatChunk, name, err)
	}
	size := uint64(info.Size()) //nolint:gosec // G115: file sizes are never negative
	j.log.Info("Processing file", slog.String("file", name), slog.Uint64("bytes", size))

	if err := j.copier.CopyExact(ctx, size, f, out); err != nil {
		return 0, fmt.Errorf("chunk %s: %w", name, err)
	}
	return size, nil
}
