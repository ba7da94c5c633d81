// Package copier moves an exact number of bytes between two streams
// through a fixed-size, reusable transfer buffer.
package copier

import (
	"context"
	"io"

	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/errcode"
)

// Copier owns the transfer buffer shared by every copy of a run.
// It is not safe for concurrent use.
type Copier struct {
	buf []byte
}

// New returns a Copier with the default 64KB buffer.
func New() *Copier {
	return NewWithBufferSize(constants.IOBufferSize)
}

// NewWithBufferSize returns a Copier with a buffer of the given capacity.
// Non-positive sizes fall back to the default.
func NewWithBufferSize(size int) *Copier {
	if size <= 0 {
		size = constants.IOBufferSize
	}
	return &Copier{buf: make([]byte, size)}
}

// BufferSize returns the capacity of the transfer buffer.
func (c *Copier) BufferSize() int {
	return len(c.buf)
}

// CopyExact copies total bytes from src to dst starting at their current
// positions: first total/BufferSize full-buffer transfers, then a single
// transfer of the remainder when there is one.
//
// A source that ends early fails with errcode.ShortRead, a destination that
// accepts fewer bytes than given fails with errcode.ShortWrite. Neither is
// retried. The context is checked before every transfer.
func (c *Copier) CopyExact(ctx context.Context, total uint64, src io.Reader, dst io.Writer) error {
	size := uint64(len(c.buf))
	full := total / size
	remainder := total % size

	for range full {
		if err := c.transfer(ctx, src, dst, c.buf); err != nil {
			return err
		}
	}
	if remainder > 0 {
		return c.transfer(ctx, src, dst, c.buf[:remainder])
	}
	return nil
}

func (c *Copier) transfer(ctx context.Context, src io.Reader, dst io.Writer, buf []byte) error {
	if err := ctx.Err(); err != nil {
		return errcode.New(errcode.Interrupted, "", err)
	}
	if _, err := io.ReadFull(src, buf); err != nil {
		return errcode.New(errcode.ShortRead, "", err)
	}
	n, err := dst.Write(buf)
	if err != nil {
		return errcode.New(errcode.ShortWrite, "", err)
	}
	if n != len(buf) {
		return errcode.New(errcode.ShortWrite, "", io.ErrShortWrite)
	}
	return nil
}
