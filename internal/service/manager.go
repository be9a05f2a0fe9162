package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
	"github.com/bnema/vcomp/internal/port"
)

const (
	DefaultJobTimeout = 2 * time.Hour
	DefaultRetention  = 48 * time.Hour
)

// JobManagerOptions groups dependencies for JobManager.
type JobManagerOptions struct {
	Store       port.JobStore   // Required
	Compressor  port.Compressor // Required
	ArtifactDir string          // Required: where compressed outputs are written
	Events      EventPublisher  // Optional
	Retention   time.Duration   // Optional: defaults to DefaultRetention
	JobTimeout  time.Duration   // Optional: defaults to DefaultJobTimeout
	Now         func() time.Time
}

// JobManager owns the in-memory FIFO of pending jobs and the single consumer
// that executes them. The queue is a projection of the PENDING rows in the
// store: a job is appended only after its rows are committed.
type JobManager struct {
	store       port.JobStore
	compressor  port.Compressor
	events      EventPublisher
	artifactDir string
	retention   time.Duration
	jobTimeout  time.Duration
	now         func() time.Time

	mu     sync.Mutex
	queue  []*domain.Job
	active *domain.Job
	// wake holds at most one pending signal so a push between the consumer's
	// empty check and its wait is never lost.
	wake chan struct{}
}

// CompressionRequest is a validated-at-the-edge request for a new compression job.
type CompressionRequest struct {
	SourcePath    string
	Quality       domain.Quality
	QualityFactor int
	FrameRate     int
}

func NewJobManager(opts JobManagerOptions) (*JobManager, error) {
	if opts.Store == nil {
		return nil, errors.New("job store is required")
	}
	if opts.Compressor == nil {
		return nil, errors.New("compressor is required")
	}
	if opts.ArtifactDir == "" {
		return nil, errors.New("artifact directory is required")
	}
	if opts.Retention <= 0 {
		opts.Retention = DefaultRetention
	}
	if opts.JobTimeout <= 0 {
		opts.JobTimeout = DefaultJobTimeout
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	return &JobManager{
		store:       opts.Store,
		compressor:  opts.Compressor,
		events:      opts.Events,
		artifactDir: opts.ArtifactDir,
		retention:   opts.Retention,
		jobTimeout:  opts.JobTimeout,
		now:         opts.Now,
		wake:        make(chan struct{}, 1),
	}, nil
}

// PushJob appends job to the queue. With persist set, the job's rows are
// written first under the queue lock; if that fails nothing is enqueued.
// Without persist, a job already queued or executing is ignored.
func (m *JobManager) PushJob(ctx context.Context, job *domain.Job, persist bool) error {
	_, err := m.push(ctx, job, persist)
	return err
}

func (m *JobManager) push(ctx context.Context, job *domain.Job, persist bool) (bool, error) {
	if err := job.Validate(); err != nil {
		return false, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if persist {
		if err := m.store.CreateJob(ctx, job); err != nil {
			return false, fmt.Errorf("persist job %s: %w", job.ID, err)
		}
	} else if m.isQueuedLocked(job.ID) {
		return false, nil
	}
	m.queue = append(m.queue, job)

	select {
	case m.wake <- struct{}{}:
	default:
	}
	return true, nil
}

func (m *JobManager) isQueuedLocked(id string) bool {
	if m.active != nil && m.active.ID == id {
		return true
	}
	for _, job := range m.queue {
		if job.ID == id {
			return true
		}
	}
	return false
}

// SubmitCompression creates and enqueues a PENDING compression job writing to a
// freshly named file in the artifact directory.
func (m *JobManager) SubmitCompression(ctx context.Context, req CompressionRequest) (*domain.Job, error) {
	name, err := domain.GenerateFileName(domain.MediaTypeMP4)
	if err != nil {
		return nil, err
	}

	job, err := domain.NewCompressionJob(domain.CompressionParams{
		OriginalFilePath:    req.SourcePath,
		DestinationFilePath: filepath.Join(m.artifactDir, name),
		Quality:             req.Quality,
		QualityFactor:       req.QualityFactor,
		FrameRate:           req.FrameRate,
	}, m.now())
	if err != nil {
		return nil, err
	}

	// Once queued, job belongs to the consumer; callers get their own copy.
	snapshot := *job
	if err := m.PushJob(ctx, job, true); err != nil {
		return nil, err
	}
	logger.Info.Printf("job %s queued: %s -> %s", snapshot.ID,
		logger.SanitizeForLog(snapshot.Compression.OriginalFilePath), snapshot.Compression.DestinationFilePath)
	return &snapshot, nil
}

// nextJob blocks until a job is queued or ctx is done. The returned job is
// marked active until clearActive.
func (m *JobManager) nextJob(ctx context.Context) (*domain.Job, error) {
	for {
		m.mu.Lock()
		if len(m.queue) > 0 {
			job := m.queue[0]
			m.queue[0] = nil
			m.queue = m.queue[1:]
			m.active = job
			m.mu.Unlock()
			return job, nil
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-m.wake:
		}
	}
}

func (m *JobManager) clearActive() {
	m.mu.Lock()
	m.active = nil
	m.mu.Unlock()
}

// Run recovers pending jobs from the store, then executes queued jobs one at a
// time until ctx is cancelled. It returns an error only if recovery fails.
func (m *JobManager) Run(ctx context.Context) error {
	recovered, err := m.Recover(ctx)
	if err != nil {
		return fmt.Errorf("recover jobs: %w", err)
	}
	logger.Info.Printf("job manager started, %d pending job(s) recovered", recovered)

	for {
		job, err := m.nextJob(ctx)
		if err != nil {
			logger.Info.Printf("job manager stopping: %v", err)
			return nil
		}
		m.process(ctx, job)
	}
}

func (m *JobManager) process(ctx context.Context, job *domain.Job) {
	logger.Info.Printf("job %s started (type=%s)", job.ID, job.Type)
	stats, execErr := m.execute(ctx, job)

	// Shutdown interrupted the run; the row is still PENDING and recovery
	// requeues it on the next start.
	if execErr != nil && ctx.Err() != nil {
		logger.Warn.Printf("job %s interrupted by shutdown, left pending: %v", job.ID, execErr)
		m.clearActive()
		return
	}

	// ListActive reads job under m.mu while this runs, so the transition is
	// applied to a copy.
	outcome := *job
	finished := m.now()
	var transitionErr error
	if execErr != nil {
		logger.Error.Printf("job %s failed: %v", job.ID, execErr)
		stats = nil
		transitionErr = outcome.Fail(finished, m.retention)
	} else {
		transitionErr = outcome.Complete(finished, m.retention)
	}
	if transitionErr != nil {
		// Only PENDING jobs are queued, so this means the record changed
		// underneath the run. Its current state is still written back.
		logger.Error.Printf("job %s: %v", job.ID, transitionErr)
		stats = nil
	}

	if err := m.store.SaveOutcome(context.WithoutCancel(ctx), &outcome, stats); err != nil {
		logger.Error.Printf("persist outcome of job %s: %v", job.ID, err)
	} else {
		logOutcome(&outcome, stats)
	}

	m.clearActive()
	m.publish(&outcome)
}

func logOutcome(job *domain.Job, stats *domain.CompressionStatistics) {
	expires := "never"
	if job.ExpiresAt != nil {
		expires = job.ExpiresAt.Format(time.RFC3339)
	}
	if stats != nil {
		logger.Info.Printf("job %s %s in %ds, expires %s", job.ID, job.State, stats.DurationSeconds(), expires)
		return
	}
	logger.Info.Printf("job %s %s, expires %s", job.ID, job.State, expires)
}

// execute runs the variant under the job deadline. A panic is reported as an
// ordinary execution error.
func (m *JobManager) execute(ctx context.Context, job *domain.Job) (stats *domain.CompressionStatistics, err error) {
	defer func() {
		if r := recover(); r != nil {
			stats = nil
			err = fmt.Errorf("job %s panicked: %v", job.ID, r)
		}
	}()

	runCtx, cancel := context.WithTimeout(ctx, m.jobTimeout)
	defer cancel()

	switch job.Type {
	case domain.JobTypeCompression:
		return m.compress(runCtx, job)
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownJobType, job.Type)
	}
}

func (m *JobManager) compress(ctx context.Context, job *domain.Job) (*domain.CompressionStatistics, error) {
	params := *job.Compression

	src, err := os.Stat(params.OriginalFilePath)
	if err != nil {
		return nil, fmt.Errorf("stat source: %w", err)
	}

	started := m.now()
	if err := m.compressor.Compress(ctx, params); err != nil {
		return nil, fmt.Errorf("compress: %w", err)
	}
	ended := m.now()

	out, err := os.Stat(params.DestinationFilePath)
	if err != nil {
		return nil, fmt.Errorf("stat output: %w", err)
	}
	if out.Size() == 0 {
		return nil, fmt.Errorf("compress: output %s is empty", params.DestinationFilePath)
	}

	stats := domain.NewCompressionStatistics(job.ID, src.Size(), out.Size(), started, ended)
	return &stats, nil
}

func (m *JobManager) publish(job *domain.Job) {
	if m.events == nil {
		return
	}
	m.events.Publish(job.ID, Event{Type: "state", State: job.State})
}

// GetJobByID loads a job from the store. Records that cannot be rebuilt are
// reported as domain.ErrNotFound.
func (m *JobManager) GetJobByID(ctx context.Context, id string) (*domain.Job, error) {
	job, err := m.store.GetJob(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownJobType) || errors.Is(err, domain.ErrImproperState) {
			logger.Warn.Printf("job %s cannot be loaded: %v", logger.SanitizeForLog(id), err)
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return job, nil
}

// ListActive returns the executing job, if any, followed by the queue in FIFO order.
func (m *JobManager) ListActive() []domain.JobView {
	m.mu.Lock()
	defer m.mu.Unlock()

	views := make([]domain.JobView, 0, len(m.queue)+1)
	if m.active != nil {
		views = append(views, m.active.View())
	}
	for _, job := range m.queue {
		views = append(views, job.View())
	}
	return views
}

// GetRelatedJobs returns every job whose source or destination is path. Any
// record that cannot be loaded fails the whole lookup.
func (m *JobManager) GetRelatedJobs(ctx context.Context, path string) ([]*domain.Job, error) {
	ids, err := m.store.ListRelatedJobIDs(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("list related jobs: %w", err)
	}

	jobs := make([]*domain.Job, 0, len(ids))
	for _, id := range ids {
		job, err := m.store.GetJob(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("load related job %s: %w", id, err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}
