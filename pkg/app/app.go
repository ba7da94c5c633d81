// Package app runs one fsj invocation: a split or a join, the user hooks
// around it and the optional publish or fetch of the chunk set.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/sgaunet/fsj/pkg/chunkplan"
	"github.com/sgaunet/fsj/pkg/config"
	"github.com/sgaunet/fsj/pkg/constants"
	"github.com/sgaunet/fsj/pkg/copier"
	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/sgaunet/fsj/pkg/joiner"
	"github.com/sgaunet/fsj/pkg/splitter"
	"github.com/sgaunet/fsj/pkg/storage"
	"github.com/sgaunet/fsj/pkg/storage/localstorage"
	"github.com/sgaunet/fsj/pkg/storage/s3storage"
	"golang.org/x/time/rate"
)

var (
	errUnknownOperation = errors.New("unknown operation")
	errIsDirectory      = errors.New("is a directory")
)

// App holds everything a run needs.
type App struct {
	cfg      *config.Config
	storage  storage.Storage
	log      *slog.Logger
	progress ProgressReporter
	copier   *copier.Copier
	limiter  *rate.Limiter
}

// NewApp builds an App from cfg. The storage backend is S3 when the S3
// block is complete, the local directory when LOCALPATH is set, none otherwise.
func NewApp(ctx context.Context, cfg *config.Config) (*App, error) {
	app := &App{
		cfg:      cfg,
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		progress: NewNoOpProgressReporter(),
		copier:   copier.New(),
		limiter:  rate.NewLimiter(rate.Limit(cfg.StorageRateLimit), constants.StorageRateBurst),
	}
	switch {
	case cfg.IsS3ConfigValid():
		s3, err := s3storage.NewS3Storage(ctx, cfg.S3cfg.Region, cfg.S3cfg.Endpoint, cfg.S3cfg.BucketName, cfg.S3cfg.BucketPath,
			s3storage.WithStaticCredentials(cfg.S3cfg.AccessKey, cfg.S3cfg.SecretKey))
		if err != nil {
			return nil, errcode.New(errcode.StorageFailed, cfg.S3cfg.BucketName, err)
		}
		app.storage = s3
	case cfg.IsLocalConfigValid():
		if stat, err := os.Stat(cfg.LocalPath); err == nil && !stat.IsDir() {
			return nil, errcode.New(errcode.StorageFailed, cfg.LocalPath, fmt.Errorf("%s is not a directory", cfg.LocalPath))
		}
		app.storage = localstorage.NewLocalStorage(cfg.LocalPath)
	}
	return app, nil
}

// SetLogger sets the logger used by the run and by the split and join steps.
func (a *App) SetLogger(l *slog.Logger) {
	a.log = l
}

// SetProgressReporter sets the phase progress reporter.
func (a *App) SetProgressReporter(p ProgressReporter) {
	a.progress = p
}

// SetStorage replaces the storage backend. A nil storage disables publish and fetch.
func (a *App) SetStorage(s storage.Storage) {
	a.storage = s
}

// Run executes req. Any failure is returned as an *errcode.Error.
func (a *App) Run(ctx context.Context, req Request) (*Result, error) {
	start := time.Now()
	var (
		res *Result
		err error
	)
	switch req.Op {
	case OpSplit:
		res, err = a.runSplit(ctx, req)
	case OpJoin:
		res, err = a.runJoin(ctx, req)
	default:
		return nil, errcode.New(errcode.Usage, req.Op.String(), errUnknownOperation)
	}
	if err != nil {
		return nil, err
	}
	res.Metrics.Duration = time.Since(start)
	return res, nil
}

func (a *App) runSplit(ctx context.Context, req Request) (*Result, error) {
	if err := a.checkPlan(req); err != nil {
		return nil, err
	}
	if err := a.runPreHook(ctx); err != nil {
		return nil, err
	}

	a.progress.StartPhase(PhaseSplit)
	sp := splitter.New(a.copier, a.log)
	sp.OnChunk(func(name string, size uint64, current, total int) {
		a.progress.ChunkDone(PhaseSplit, name, size, current, total)
	})
	sr, err := sp.Split(ctx, req.Path, req.Parts, req.PartSize)
	if err != nil {
		a.progress.FailPhase(PhaseSplit, err)
		return nil, interrupted(ctx, err)
	}
	a.progress.CompletePhase(PhaseSplit)

	res := &Result{
		Op:      OpSplit,
		Output:  sr.Manifest,
		Chunks:  sr.Chunks,
		Metrics: Metrics{BytesWritten: sr.BytesWritten},
	}

	if a.cfg.Hooks.HasPostSplit() {
		a.progress.StartPhase(PhaseHooks)
		a.log.Info("call postsplit hook", "manifest", sr.Manifest)
		if err := a.cfg.Hooks.ExecutePostSplit(ctx, sr.Manifest); err != nil {
			a.progress.FailPhase(PhaseHooks, err)
			return nil, errcode.New(errcode.HookFailed, "postsplit", err)
		}
		a.progress.CompletePhase(PhaseHooks)
	}

	published, err := a.publish(ctx, sr.Chunks, sr.Manifest)
	if err != nil {
		return nil, err
	}
	res.Metrics.FilesPublished = published
	return res, nil
}

func (a *App) runJoin(ctx context.Context, req Request) (*Result, error) {
	if err := a.runPreHook(ctx); err != nil {
		return nil, err
	}

	fetched, err := a.fetch(ctx, req.Path)
	if err != nil {
		return nil, err
	}

	a.progress.StartPhase(PhaseJoin)
	jn := joiner.New(a.copier, a.log)
	jn.OnChunk(func(name string, size uint64, current, total int) {
		a.progress.ChunkDone(PhaseJoin, name, size, current, total)
	})
	jr, err := jn.Join(ctx, req.Path)
	if err != nil {
		a.progress.FailPhase(PhaseJoin, err)
		return nil, interrupted(ctx, err)
	}
	a.progress.CompletePhase(PhaseJoin)

	if a.cfg.Hooks.HasPostJoin() {
		a.progress.StartPhase(PhaseHooks)
		a.log.Info("call postjoin hook", "output", jr.Output)
		if err := a.cfg.Hooks.ExecutePostJoin(ctx, jr.Output); err != nil {
			a.progress.FailPhase(PhaseHooks, err)
			return nil, errcode.New(errcode.HookFailed, "postjoin", err)
		}
		a.progress.CompletePhase(PhaseHooks)
	}

	return &Result{
		Op:     OpJoin,
		Output: jr.Output,
		Chunks: jr.Chunks,
		Metrics: Metrics{
			BytesWritten: jr.BytesWritten,
			FilesFetched: fetched,
		},
	}, nil
}

// checkPlan validates the request against the source size before any hook
// runs or any file is created.
func (a *App) checkPlan(req Request) error {
	a.progress.StartPhase(PhasePlan)
	info, err := os.Stat(req.Path)
	switch {
	case err != nil:
		err = errcode.New(errcode.CannotOpenSource, req.Path, err)
	case info.IsDir():
		err = errcode.New(errcode.CannotOpenSource, req.Path, errIsDirectory)
	}
	if err != nil {
		a.progress.FailPhase(PhasePlan, err)
		return err
	}
	plan, err := chunkplan.New(uint64(info.Size()), req.Parts, req.PartSize) //nolint:gosec // G115: file sizes are never negative
	if err != nil {
		a.progress.FailPhase(PhasePlan, err)
		return err
	}
	a.log.Debug("chunk plan", "mode", plan.Mode, "parts", plan.PartCount, "partSize", plan.PartSize, "tail", plan.TailSize)
	a.progress.CompletePhase(PhasePlan)
	return nil
}

func (a *App) runPreHook(ctx context.Context) error {
	if !a.cfg.Hooks.HasPreRun() {
		return nil
	}
	a.progress.StartPhase(PhaseHooks)
	a.log.Info("call prerun hook")
	if err := a.cfg.Hooks.ExecutePreRun(ctx); err != nil {
		a.progress.FailPhase(PhaseHooks, err)
		return errcode.New(errcode.HookFailed, "prerun", err)
	}
	a.progress.CompletePhase(PhaseHooks)
	return nil
}

// interrupted reports err as Interrupted when it was caused by ctx.
func interrupted(ctx context.Context, err error) error {
	if ctx.Err() == nil || errors.Is(err, errcode.Interrupted) {
		return err
	}
	return errcode.New(errcode.Interrupted, "", ctx.Err())
}
