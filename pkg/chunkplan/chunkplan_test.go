package chunkplan_test

import (
	"testing"

	"github.com/sgaunet/fsj/pkg/chunkplan"
	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ByCount(t *testing.T) {
	tests := []struct {
		total     uint64
		parts     int64
		partSize  uint64
		tailSize  uint64
		fileCount uint64
	}{
		{total: 1000, parts: 3, partSize: 333, tailSize: 1, fileCount: 4},
		{total: 1000, parts: 4, partSize: 250, tailSize: 0, fileCount: 4},
		{total: 1024, parts: 5, partSize: 204, tailSize: 4, fileCount: 6},
		{total: 10, parts: 6, partSize: 1, tailSize: 4, fileCount: 7},
		{total: 2, parts: 2, partSize: 1, tailSize: 0, fileCount: 2},
	}

	for _, tt := range tests {
		p, err := chunkplan.New(tt.total, tt.parts, 0)
		require.NoError(t, err)
		assert.Equal(t, chunkplan.ByCount, p.Mode)
		assert.Equal(t, uint64(tt.parts), p.PartCount)
		assert.Equal(t, tt.partSize, p.PartSize)
		assert.Equal(t, tt.tailSize, p.TailSize)
		assert.Equal(t, tt.fileCount, p.FileCount())
		assert.Equal(t, tt.total, p.PartCount*p.PartSize+p.TailSize)
	}
}

func TestNew_ByCountProperty(t *testing.T) {
	for total := uint64(2); total < 300; total += 7 {
		for parts := int64(2); uint64(parts) <= total && parts < 40; parts++ {
			p, err := chunkplan.New(total, parts, 0)
			require.NoError(t, err)
			assert.Equal(t, uint64(parts), p.PartCount)
			assert.Equal(t, total/uint64(parts), p.PartSize)
			assert.Equal(t, total%uint64(parts), p.TailSize)
			assert.Equal(t, total, p.PartCount*p.PartSize+p.TailSize)
		}
	}
}

func TestNew_BySize(t *testing.T) {
	p, err := chunkplan.New(1000, 0, 300)
	require.NoError(t, err)
	assert.Equal(t, chunkplan.BySize, p.Mode)
	assert.Equal(t, uint64(3), p.PartCount)
	assert.Equal(t, uint64(300), p.PartSize)
	assert.Equal(t, uint64(100), p.TailSize)
	assert.Less(t, p.TailSize, p.PartSize)

	// the part count knob is ignored in size mode
	p, err = chunkplan.New(1000, 7, 250)
	require.NoError(t, err)
	assert.Equal(t, uint64(4), p.PartCount)
	assert.False(t, p.HasTail())
}

func TestNew_Errors(t *testing.T) {
	tests := []struct {
		name     string
		total    uint64
		parts    int64
		partSize uint64
		kind     errcode.Kind
	}{
		{name: "nothing requested", total: 100, parts: 0, partSize: 0, kind: errcode.InvalidParameters},
		{name: "single part", total: 100, parts: 1, partSize: 0, kind: errcode.InvalidParameters},
		{name: "negative parts", total: 100, parts: -4, partSize: 0, kind: errcode.InvalidParameters},
		{name: "part size equals file", total: 100, parts: 0, partSize: 100, kind: errcode.PartTooLarge},
		{name: "part size above file", total: 100, parts: 0, partSize: 500, kind: errcode.PartTooLarge},
		{name: "empty file by size", total: 0, parts: 0, partSize: 1, kind: errcode.PartTooLarge},
		{name: "more parts than bytes", total: 3, parts: 4, partSize: 0, kind: errcode.NotEnoughParts},
		{name: "empty file by count", total: 0, parts: 2, partSize: 0, kind: errcode.NotEnoughParts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := chunkplan.New(tt.total, tt.parts, tt.partSize)
			require.ErrorIs(t, err, tt.kind)
		})
	}
}

func TestPlan_Chunks(t *testing.T) {
	p, err := chunkplan.New(1000, 3, 0)
	require.NoError(t, err)

	want := []chunkplan.Chunk{
		{Index: 0, Size: 333},
		{Index: 1, Size: 333},
		{Index: 2, Size: 333},
		{Index: 3, Size: 1, Tail: true},
	}
	assert.Equal(t, want, p.Chunks())

	p, err = chunkplan.New(900, 3, 0)
	require.NoError(t, err)
	assert.Len(t, p.Chunks(), 3)
	for _, c := range p.Chunks() {
		assert.False(t, c.Tail)
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "count", chunkplan.ByCount.String())
	assert.Equal(t, "size", chunkplan.BySize.String())
}
