package app

import (
	"context"
	"path/filepath"
	"sync/atomic"

	"github.com/sgaunet/fsj/pkg/errcode"
	"github.com/sgaunet/fsj/pkg/joiner"
	"github.com/sgaunet/fsj/pkg/manifest"
	"golang.org/x/sync/errgroup"
)

// publish saves every chunk then the manifest to storage. Chunks are
// uploaded concurrently; the manifest goes last so that a published
// manifest always refers to chunks already stored.
func (a *App) publish(ctx context.Context, chunks []string, manifestPath string) (int, error) {
	if a.storage == nil {
		a.progress.SkipPhase(PhasePublish, "no storage configured")
		return 0, nil
	}
	a.progress.StartPhase(PhasePublish)
	if err := a.prepareStorage(ctx); err != nil {
		a.progress.FailPhase(PhasePublish, err)
		return 0, interrupted(ctx, err)
	}
	total := len(chunks) + 1
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.UploadConcurrency)
	for _, name := range chunks {
		g.Go(func() error {
			if err := a.save(gctx, name, filepath.Base(name)); err != nil {
				return err
			}
			a.progress.UpdatePhase(PhasePublish, int(done.Add(1)), total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.progress.FailPhase(PhasePublish, err)
		return 0, interrupted(ctx, err)
	}

	if err := a.save(ctx, manifestPath, manifestKey(manifestPath)); err != nil {
		a.progress.FailPhase(PhasePublish, err)
		return 0, interrupted(ctx, err)
	}
	a.progress.UpdatePhase(PhasePublish, total, total)
	a.progress.CompletePhase(PhasePublish)
	return total, nil
}

func (a *App) save(ctx context.Context, path, key string) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return errcode.New(errcode.Interrupted, path, err)
	}
	a.log.Debug("save file", "file", path, "key", key)
	if err := a.storage.SaveFile(ctx, path, key); err != nil {
		return errcode.New(errcode.StorageFailed, path, err)
	}
	return nil
}

// fetch retrieves the manifest then every chunk it lists into the working
// directory, under the names the manifest records.
func (a *App) fetch(ctx context.Context, manifestPath string) (int, error) {
	if !a.cfg.FetchBeforeJoin {
		return 0, nil
	}
	if a.storage == nil {
		a.progress.SkipPhase(PhaseFetch, "no storage configured")
		return 0, nil
	}
	a.progress.StartPhase(PhaseFetch)

	if err := a.get(ctx, manifestKey(manifestPath), manifestPath); err != nil {
		a.progress.FailPhase(PhaseFetch, err)
		return 0, interrupted(ctx, err)
	}
	data, err := joiner.ReadManifest(manifestPath)
	if err != nil {
		a.progress.FailPhase(PhaseFetch, err)
		return 0, err
	}
	names, err := manifest.Decode(data)
	if err != nil {
		a.progress.FailPhase(PhaseFetch, err)
		return 0, err
	}

	total := len(names) + 1
	var done atomic.Int64
	done.Store(1)
	a.progress.UpdatePhase(PhaseFetch, 1, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.UploadConcurrency)
	for _, name := range names {
		g.Go(func() error {
			if err := a.get(gctx, filepath.Base(name), name); err != nil {
				return err
			}
			a.progress.UpdatePhase(PhaseFetch, int(done.Add(1)), total)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		a.progress.FailPhase(PhaseFetch, err)
		return 0, interrupted(ctx, err)
	}
	a.progress.CompletePhase(PhaseFetch)
	return total, nil
}

func (a *App) get(ctx context.Context, key, path string) error {
	if err := a.limiter.Wait(ctx); err != nil {
		return errcode.New(errcode.Interrupted, path, err)
	}
	a.log.Debug("get file", "key", key, "file", path)
	if err := a.storage.GetFile(ctx, key, path); err != nil {
		return errcode.New(errcode.StorageFailed, path, err)
	}
	return nil
}

// bucketCreator is implemented by backends that must create their
// container before the first upload.
type bucketCreator interface {
	CreateBucket(ctx context.Context) error
}

func (a *App) prepareStorage(ctx context.Context) error {
	bc, ok := a.storage.(bucketCreator)
	if !ok {
		return nil
	}
	if err := bc.CreateBucket(ctx); err != nil {
		return errcode.New(errcode.StorageFailed, "", err)
	}
	return nil
}

// manifestKey is the storage key of a manifest: the manifest name of the
// reconstructed file without its directories, so "join_dir/file.fsj" is
// stored as "join_file.fsj". Chunks are stored under their base name.
func manifestKey(manifestPath string) string {
	out, err := manifest.OutputName(manifestPath)
	if err != nil {
		return filepath.Base(manifestPath)
	}
	return manifest.Name(filepath.Base(out))
}
