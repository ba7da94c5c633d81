// Package chunkplan computes how a file of a given size is cut into chunks.
package chunkplan

import (
	"fmt"

	"github.com/sgaunet/fsj/pkg/errcode"
)

// Mode tells which knob selected the part size.
type Mode int

const (
	// ByCount divides the file into a requested number of parts.
	ByCount Mode = iota
	// BySize cuts the file into parts of a requested size.
	BySize
)

func (m Mode) String() string {
	if m == BySize {
		return "size"
	}
	return "count"
}

// Plan is the immutable result of planning a split.
//
// PartCount regular chunks of PartSize bytes come first, followed by one
// tail chunk of TailSize bytes when TailSize is not zero.
type Plan struct {
	Mode      Mode
	TotalSize uint64
	PartCount uint64
	PartSize  uint64
	TailSize  uint64
}

// Chunk is one file to produce.
type Chunk struct {
	// Index is 0..PartCount-1 for regular chunks and PartCount for the tail.
	Index uint64
	Size  uint64
	Tail  bool
}

// New plans the split of totalSize bytes.
//
// When requestedPartSize is positive the file is cut into parts of that size
// and requestedParts is ignored; otherwise it is divided into requestedParts
// parts with the remainder going to a tail chunk.
func New(totalSize uint64, requestedParts int64, requestedPartSize uint64) (Plan, error) {
	if requestedPartSize > 0 {
		return bySize(totalSize, requestedPartSize)
	}
	if requestedParts <= 1 {
		return Plan{}, fmt.Errorf("%w: parts=%d, part size=%d", errcode.InvalidParameters, requestedParts, requestedPartSize)
	}
	return byCount(totalSize, uint64(requestedParts))
}

func byCount(totalSize, parts uint64) (Plan, error) {
	if totalSize < parts {
		return Plan{}, fmt.Errorf("%w: %d bytes into %d parts", errcode.NotEnoughParts, totalSize, parts)
	}
	return Plan{
		Mode:      ByCount,
		TotalSize: totalSize,
		PartCount: parts,
		PartSize:  totalSize / parts,
		TailSize:  totalSize % parts,
	}, nil
}

func bySize(totalSize, partSize uint64) (Plan, error) {
	if partSize >= totalSize {
		return Plan{}, fmt.Errorf("%w: part size %d, file size %d", errcode.PartTooLarge, partSize, totalSize)
	}
	return Plan{
		Mode:      BySize,
		TotalSize: totalSize,
		PartCount: totalSize / partSize,
		PartSize:  partSize,
		TailSize:  totalSize % partSize,
	}, nil
}

// HasTail reports whether a tail chunk follows the regular chunks.
func (p Plan) HasTail() bool {
	return p.TailSize > 0
}

// FileCount is the number of chunk files the plan produces.
func (p Plan) FileCount() uint64 {
	if p.HasTail() {
		return p.PartCount + 1
	}
	return p.PartCount
}

// Chunks lists the chunk files in write order.
func (p Plan) Chunks() []Chunk {
	chunks := make([]Chunk, 0, p.FileCount())
	for i := range p.PartCount {
		chunks = append(chunks, Chunk{Index: i, Size: p.PartSize})
	}
	if p.HasTail() {
		chunks = append(chunks, Chunk{Index: p.PartCount, Size: p.TailSize, Tail: true})
	}
	return chunks
}
