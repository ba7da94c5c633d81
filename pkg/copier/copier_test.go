package copier_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/sgaunet/fsj/pkg/copier"
	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recordingWriter keeps the length of every Write call.
type recordingWriter struct {
	bytes.Buffer
	writes []int
}

func (w *recordingWriter) Write(p []byte) (int, error) {
	w.writes = append(w.writes, len(p))
	return w.Buffer.Write(p)
}

// shortWriter accepts at most limit bytes per call without reporting an error.
type shortWriter struct {
	limit int
}

func (w *shortWriter) Write(p []byte) (int, error) {
	if len(p) > w.limit {
		return w.limit, nil
	}
	return len(p), nil
}

type failingWriter struct{}

func (failingWriter) Write(_ []byte) (int, error) {
	return 0, errors.New("disk full")
}

func payload(n int) []byte {
	b := make([]byte, n)
	for i := range b {
		b[i] = byte(i % 251)
	}
	return b
}

func TestCopyExact_FullBufferPlusRemainder(t *testing.T) {
	c := copier.New()
	require.Equal(t, 65536, c.BufferSize())

	src := payload(70000)
	dst := &recordingWriter{}

	err := c.CopyExact(context.Background(), 70000, bytes.NewReader(src), dst)
	require.NoError(t, err)
	assert.Equal(t, []int{65536, 4464}, dst.writes)
	assert.Equal(t, src, dst.Bytes())
}

func TestCopyExact_Transfers(t *testing.T) {
	tests := []struct {
		name   string
		buf    int
		total  int
		writes []int
	}{
		{name: "zero bytes", buf: 16, total: 0, writes: nil},
		{name: "smaller than buffer", buf: 16, total: 5, writes: []int{5}},
		{name: "exact multiple", buf: 16, total: 48, writes: []int{16, 16, 16}},
		{name: "multiple plus tail", buf: 16, total: 35, writes: []int{16, 16, 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := copier.NewWithBufferSize(tt.buf)
			src := payload(tt.total)
			dst := &recordingWriter{}

			err := c.CopyExact(context.Background(), uint64(tt.total), bytes.NewReader(src), dst)
			require.NoError(t, err)
			assert.Equal(t, tt.writes, dst.writes)
			assert.Equal(t, tt.total, dst.Len())
		})
	}
}

func TestCopyExact_LeavesRestOfSource(t *testing.T) {
	c := copier.NewWithBufferSize(4)
	src := bytes.NewReader([]byte("abcdefghij"))
	var first, second bytes.Buffer

	require.NoError(t, c.CopyExact(context.Background(), 6, src, &first))
	require.NoError(t, c.CopyExact(context.Background(), 4, src, &second))
	assert.Equal(t, "abcdef", first.String())
	assert.Equal(t, "ghij", second.String())
}

func TestCopyExact_ShortRead(t *testing.T) {
	c := copier.NewWithBufferSize(8)
	err := c.CopyExact(context.Background(), 20, bytes.NewReader(payload(10)), io.Discard)
	require.ErrorIs(t, err, errcode.ShortRead)
	require.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestCopyExact_ShortWrite(t *testing.T) {
	c := copier.NewWithBufferSize(8)

	t.Run("fewer bytes accepted", func(t *testing.T) {
		err := c.CopyExact(context.Background(), 8, bytes.NewReader(payload(8)), &shortWriter{limit: 3})
		require.ErrorIs(t, err, errcode.ShortWrite)
		require.ErrorIs(t, err, io.ErrShortWrite)
	})
	t.Run("write error", func(t *testing.T) {
		err := c.CopyExact(context.Background(), 8, bytes.NewReader(payload(8)), failingWriter{})
		require.ErrorIs(t, err, errcode.ShortWrite)
	})
}

func TestCopyExact_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dst := &recordingWriter{}
	err := copier.NewWithBufferSize(8).CopyExact(ctx, 16, bytes.NewReader(payload(16)), dst)
	require.ErrorIs(t, err, errcode.Interrupted)
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, dst.writes)
}

func TestNewWithBufferSize_Default(t *testing.T) {
	assert.Equal(t, 65536, copier.NewWithBufferSize(0).BufferSize())
	assert.Equal(t, 65536, copier.NewWithBufferSize(-1).BufferSize())
}
