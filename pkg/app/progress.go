package app

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/sgaunet/fsj/pkg/constants"
)

// ProgressReporter provides user-visible progress reporting for a run.
type ProgressReporter interface {
	// StartPhase signals the beginning of a phase.
	StartPhase(phase Phase)

	// UpdatePhase provides mid-phase progress (e.g., "3/8 files published").
	UpdatePhase(phase Phase, current, total int)

	// ChunkDone reports one chunk written by a split or appended by a join.
	ChunkDone(phase Phase, name string, size uint64, current, total int)

	// CompletePhase signals successful phase completion.
	CompletePhase(phase Phase)

	// FailPhase signals phase failure.
	FailPhase(phase Phase, err error)

	// SkipPhase signals that a phase was skipped.
	SkipPhase(phase Phase, reason string)
}

// ConsoleProgressReporter implements ProgressReporter with console output.
type ConsoleProgressReporter struct {
	logger *slog.Logger

	mu    sync.Mutex
	phase Phase
	bytes uint64
}

// NewConsoleProgressReporter creates a new console progress reporter.
func NewConsoleProgressReporter(logger *slog.Logger) *ConsoleProgressReporter {
	return &ConsoleProgressReporter{
		logger: logger,
	}
}

// StartPhase logs the start of a phase.
func (r *ConsoleProgressReporter) StartPhase(phase Phase) {
	r.logger.Info(fmt.Sprintf("%s %s...", constants.ProgressTag, phaseMessage(phase)))
}

// UpdatePhase logs mid-phase progress.
func (r *ConsoleProgressReporter) UpdatePhase(phase Phase, current, total int) {
	r.logger.Info(fmt.Sprintf("%s %s... (%d/%d)", constants.ProgressTag, phaseMessage(phase), current, total))
}

// ChunkDone logs a finished chunk with its size and the running total of
// bytes moved in the phase.
func (r *ConsoleProgressReporter) ChunkDone(phase Phase, name string, size uint64, current, total int) {
	r.mu.Lock()
	if r.phase != phase {
		r.phase, r.bytes = phase, 0
	}
	r.bytes += size
	moved := r.bytes
	r.mu.Unlock()
	r.logger.Info(fmt.Sprintf("%s %s... (%d/%d)", constants.ProgressTag, phaseMessage(phase), current, total),
		slog.String("chunk", name),
		slog.Uint64("bytes", size),
		slog.Uint64("phase_bytes", moved),
	)
}

// CompletePhase logs successful phase completion.
func (r *ConsoleProgressReporter) CompletePhase(phase Phase) {
	r.logger.Info(fmt.Sprintf("%s %s ✓", constants.ProgressTag, phaseMessage(phase)))
}

// FailPhase logs phase failure.
func (r *ConsoleProgressReporter) FailPhase(phase Phase, err error) {
	r.logger.Error(fmt.Sprintf("%s %s ✗ %v", constants.ProgressTag, phaseMessage(phase), err))
}

// SkipPhase logs that a phase was skipped.
func (r *ConsoleProgressReporter) SkipPhase(phase Phase, reason string) {
	r.logger.Info(fmt.Sprintf("%s %s (skipped: %s)", constants.ProgressTag, phaseMessage(phase), reason))
}

func phaseMessage(phase Phase) string {
	switch phase {
	case PhaseHooks:
		return "Running hooks"
	case PhasePlan:
		return "Computing chunk plan"
	case PhaseSplit:
		return "Writing chunks"
	case PhasePublish:
		return "Publishing chunk set"
	case PhaseFetch:
		return "Fetching chunk set"
	case PhaseJoin:
		return "Joining chunks"
	default:
		return string(phase)
	}
}

// NoOpProgressReporter is a progress reporter that does nothing.
type NoOpProgressReporter struct{}

// NewNoOpProgressReporter creates a new no-op progress reporter.
func NewNoOpProgressReporter() *NoOpProgressReporter {
	return &NoOpProgressReporter{}
}

// StartPhase does nothing.
func (r *NoOpProgressReporter) StartPhase(_ Phase) {}

// UpdatePhase does nothing.
func (r *NoOpProgressReporter) UpdatePhase(_ Phase, _, _ int) {}

// ChunkDone does nothing.
func (r *NoOpProgressReporter) ChunkDone(_ Phase, _ string, _ uint64, _, _ int) {}

// CompletePhase does nothing.
func (r *NoOpProgressReporter) CompletePhase(_ Phase) {}

// FailPhase does nothing.
func (r *NoOpProgressReporter) FailPhase(_ Phase, _ error) {}

// SkipPhase does nothing.
func (r *NoOpProgressReporter) SkipPhase(_ Phase, _ string) {}
