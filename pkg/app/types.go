package app

import (
	"time"
)

// Operation selects what a run does.
type Operation int

const (
	// OpSplit cuts a file into chunks.
	OpSplit Operation = iota
	// OpJoin rebuilds a file from a manifest.
	OpJoin
)

func (o Operation) String() string {
	switch o {
	case OpSplit:
		return "split"
	case OpJoin:
		return "join"
	default:
		return "unknown"
	}
}

// Request is the parsed command line.
type Request struct {
	Op Operation
	// Path is the source file for a split, the manifest for a join.
	Path string
	// Parts is the requested part count (-n).
	Parts int64
	// PartSize is the requested part size in bytes (-s).
	PartSize uint64
}

// Phase represents a step of a run.
type Phase string

const (
	// PhaseHooks runs the user hooks.
	PhaseHooks Phase = "hooks"
	// PhasePlan computes the chunk plan.
	PhasePlan Phase = "plan"
	// PhaseSplit writes chunks and manifest.
	PhaseSplit Phase = "split"
	// PhasePublish saves chunks and manifest to storage.
	PhasePublish Phase = "publish"
	// PhaseFetch retrieves manifest and chunks from storage.
	PhaseFetch Phase = "fetch"
	// PhaseJoin concatenates chunks into the output file.
	PhaseJoin Phase = "join"
)

// Result represents the outcome of a run.
type Result struct {
	Op Operation
	// Output is the manifest written by a split or the file rebuilt by a join.
	Output string
	// Chunks lists the chunk files in manifest order.
	Chunks  []string
	Metrics Metrics
}

// Metrics tracks quantitative run metrics.
type Metrics struct {
	// BytesWritten is the number of bytes copied into chunks or the output.
	BytesWritten uint64
	// FilesPublished counts files saved to storage, manifest included.
	FilesPublished int
	// FilesFetched counts files retrieved from storage, manifest included.
	FilesFetched int
	// Duration is the wall time of the run.
	Duration time.Duration
}
