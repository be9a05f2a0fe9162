package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
)

const (
	DefaultReaperInterval = 24 * time.Hour
	DefaultOrphanMaxAge   = 48 * time.Hour
)

// RelatedJobsFinder resolves the jobs that read or write an artifact path.
type RelatedJobsFinder interface {
	GetRelatedJobs(ctx context.Context, path string) ([]*domain.Job, error)
}

// ArtifactReaperOptions groups dependencies for ArtifactReaper.
type ArtifactReaperOptions struct {
	Jobs         RelatedJobsFinder // Required
	Dir          string            // Required: artifact directory to sweep
	Interval     time.Duration     // Optional: defaults to DefaultReaperInterval
	OrphanMaxAge time.Duration     // Optional: defaults to DefaultOrphanMaxAge
	Now          func() time.Time
}

// ArtifactReaper deletes files in the artifact directory once no job needs
// them. It reads job records only and never touches the manager's queue.
type ArtifactReaper struct {
	jobs         RelatedJobsFinder
	dir          string
	interval     time.Duration
	orphanMaxAge time.Duration
	now          func() time.Time
}

// SweepResult summarises one pass over the artifact directory.
type SweepResult struct {
	Scanned int
	Removed int
	Kept    int
	Failed  int
}

func NewArtifactReaper(opts ArtifactReaperOptions) (*ArtifactReaper, error) {
	if opts.Jobs == nil {
		return nil, errors.New("related jobs finder is required")
	}
	if opts.Dir == "" {
		return nil, errors.New("artifact directory is required")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultReaperInterval
	}
	if opts.OrphanMaxAge <= 0 {
		opts.OrphanMaxAge = DefaultOrphanMaxAge
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &ArtifactReaper{
		jobs:         opts.Jobs,
		dir:          opts.Dir,
		interval:     opts.Interval,
		orphanMaxAge: opts.OrphanMaxAge,
		now:          opts.Now,
	}, nil
}

// Run sweeps immediately, then once per interval until ctx is cancelled.
// Sweep failures are logged and never stop the loop.
func (r *ArtifactReaper) Run(ctx context.Context) error {
	logger.Info.Printf("artifact reaper started (dir=%s, interval=%s)", r.dir, r.interval)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.sweepAndLog(ctx)

	for {
		select {
		case <-ctx.Done():
			logger.Info.Printf("artifact reaper stopping: %v", ctx.Err())
			return nil
		case <-ticker.C:
			r.sweepAndLog(ctx)
		}
	}
}

func (r *ArtifactReaper) sweepAndLog(ctx context.Context) {
	res, err := r.Sweep(ctx)
	if err != nil {
		logger.Error.Printf("artifact sweep: %v", err)
		return
	}
	logger.Info.Printf("artifact sweep: scanned=%d removed=%d kept=%d failed=%d",
		res.Scanned, res.Removed, res.Kept, res.Failed)
}

// Sweep makes one pass over the regular files in the artifact directory.
// Per-file problems are counted in Failed and the pass continues; a file whose
// fate cannot be decided is kept.
func (r *ArtifactReaper) Sweep(ctx context.Context) (SweepResult, error) {
	var res SweepResult

	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return res, fmt.Errorf("read artifact dir: %w", err)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		if !entry.Type().IsRegular() {
			continue
		}
		res.Scanned++

		path := filepath.Join(r.dir, entry.Name())
		remove, err := r.shouldRemove(ctx, path, entry)
		if err != nil {
			logger.Warn.Printf("keeping %s: %v", logger.SanitizeForLog(path), err)
			res.Failed++
			continue
		}
		if !remove {
			res.Kept++
			continue
		}

		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			logger.Error.Printf("remove %s: %v", logger.SanitizeForLog(path), err)
			res.Failed++
			continue
		}
		logger.Debug.Printf("removed %s", logger.SanitizeForLog(path))
		res.Removed++
	}
	return res, nil
}

// shouldRemove: a file nobody references goes once it reaches the orphan age;
// a referenced file goes once every referencing job has expired.
func (r *ArtifactReaper) shouldRemove(ctx context.Context, path string, entry fs.DirEntry) (bool, error) {
	now := r.now()

	jobs, err := r.jobs.GetRelatedJobs(ctx, path)
	if err != nil {
		return false, err
	}

	if len(jobs) == 0 {
		info, err := entry.Info()
		if err != nil {
			return false, fmt.Errorf("stat: %w", err)
		}
		return now.Sub(info.ModTime()) >= r.orphanMaxAge, nil
	}

	for _, job := range jobs {
		if !job.IsExpired(now) {
			return false, nil
		}
	}
	return true, nil
}
