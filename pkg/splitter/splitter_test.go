package splitter_test

import (
	"context"
	"io"
	"log/slog"
	"os"
	"testing"

	"github.com/sgaunet/fsj/pkg/copier"
	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/sgaunet/fsj/pkg/splitter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSplitter() *splitter.Splitter {
	return splitter.New(copier.New(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func writeSource(t *testing.T, name string, size int) []byte {
	t.Helper()
	content := make([]byte, size)
	for i := range content {
		content[i] = byte(i * 7 % 256)
	}
	require.NoError(t, os.WriteFile(name, content, 0o644))
	return content
}

func TestSplit_ByCountWithTail(t *testing.T) {
	t.Chdir(t.TempDir())
	content := writeSource(t, "data.bin", 1000)

	res, err := newSplitter().Split(context.Background(), "data.bin", 3, 0)
	require.NoError(t, err)

	assert.Equal(t, "join_data.bin.fsj", res.Manifest)
	assert.Equal(t, []string{"data.bin0", "data.bin1", "data.bin2", "data.bin3"}, res.Chunks)
	assert.Equal(t, uint64(1000), res.BytesWritten)

	wantSizes := []int{333, 333, 333, 1}
	offset := 0
	for i, name := range res.Chunks {
		got, err := os.ReadFile(name)
		require.NoError(t, err)
		require.Len(t, got, wantSizes[i])
		assert.Equal(t, content[offset:offset+wantSizes[i]], got)
		offset += wantSizes[i]
	}

	raw, err := os.ReadFile("join_data.bin.fsj")
	require.NoError(t, err)
	assert.Equal(t, "data.bin0\x18data.bin1\x18data.bin2\x18data.bin3\x18", string(raw))

	info, err := os.Stat("data.bin0")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestSplit_BySize(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "big.iso", 200_000)

	res, err := newSplitter().Split(context.Background(), "big.iso", 0, 70_000)
	require.NoError(t, err)
	assert.Equal(t, []string{"big.iso0", "big.iso1", "big.iso2"}, res.Chunks)

	for i, want := range []int64{70_000, 70_000, 60_000} {
		info, err := os.Stat(res.Chunks[i])
		require.NoError(t, err)
		assert.Equal(t, want, info.Size())
	}
}

func TestSplit_EvenDivisionHasNoTail(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "even", 900)

	res, err := newSplitter().Split(context.Background(), "even", 3, 0)
	require.NoError(t, err)
	assert.Len(t, res.Chunks, 3)
	assert.NoFileExists(t, "even3")
}

func TestSplit_PartTooLargeCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	writeSource(t, "small", 100)

	_, err := newSplitter().Split(context.Background(), "small", 0, 500)
	require.ErrorIs(t, err, errcode.PartTooLarge)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "only the source file should exist")
}

func TestSplit_Errors(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "src", 50)
	require.NoError(t, os.Mkdir("adir", 0o755))

	tests := []struct {
		name     string
		source   string
		parts    int64
		partSize uint64
		kind     errcode.Kind
	}{
		{name: "missing source", source: "nope", parts: 3, kind: errcode.CannotOpenSource},
		{name: "directory source", source: "adir", parts: 3, kind: errcode.CannotOpenSource},
		{name: "no parameters", source: "src", kind: errcode.InvalidParameters},
		{name: "one part", source: "src", parts: 1, kind: errcode.InvalidParameters},
		{name: "too many parts", source: "src", parts: 51, kind: errcode.NotEnoughParts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newSplitter().Split(context.Background(), tt.source, tt.parts, tt.partSize)
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestSplit_ManifestNotCreatable(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.Mkdir("sub", 0o755))
	writeSource(t, "sub/file", 10)

	// the manifest embeds the directory: join_sub/ does not exist
	_, err := newSplitter().Split(context.Background(), "sub/file", 2, 0)
	require.ErrorIs(t, err, errcode.CannotCreateManifest)
}

func TestSplit_ChunkNotCreatable(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "f", 10)
	// a directory squatting on the first chunk name
	require.NoError(t, os.Mkdir("f0", 0o755))

	_, err := newSplitter().Split(context.Background(), "f", 2, 0)
	require.ErrorIs(t, err, errcode.CannotCreateChunk)
	assert.FileExists(t, "join_f.fsj")
}

func TestSplit_Interrupted(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "f", 10)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newSplitter().Split(ctx, "f", 2, 0)
	require.ErrorIs(t, err, errcode.Interrupted)
}

func TestSplit_OverwritesExistingChunks(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "f", 10)
	require.NoError(t, os.WriteFile("f0", []byte("stale stale stale"), 0o600))

	_, err := newSplitter().Split(context.Background(), "f", 2, 0)
	require.NoError(t, err)
	info, err := os.Stat("f0")
	require.NoError(t, err)
	assert.Equal(t, int64(5), info.Size())
}

func TestSplit_OnChunk(t *testing.T) {
	t.Chdir(t.TempDir())
	writeSource(t, "data.bin", 1000)

	type call struct {
		name           string
		size           uint64
		current, total int
	}
	var calls []call
	s := newSplitter()
	s.OnChunk(func(name string, size uint64, current, total int) {
		calls = append(calls, call{name, size, current, total})
	})

	_, err := s.Split(context.Background(), "data.bin", 3, 0)
	require.NoError(t, err)
	assert.Equal(t, []call{
		{"data.bin0", 333, 1, 4},
		{"data.bin1", 333, 2, 4},
		{"data.bin2", 333, 3, 4},
		{"data.bin3", 1, 4, 4},
	}, calls)
}
