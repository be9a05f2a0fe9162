package port

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
)

// JobStore is the durable record of every job. PENDING rows form the queue of
// record; the in-memory queue is rebuilt from them on start.
type JobStore interface {
	// CreateJob writes the base row and the variant detail row atomically.
	CreateJob(ctx context.Context, job *domain.Job) error
	// GetJob returns domain.ErrNotFound, domain.ErrUnknownJobType or
	// domain.ErrImproperState when the record cannot be rebuilt.
	GetJob(ctx context.Context, id string) (*domain.Job, error)
	// ListJobIDsByState returns IDs in insertion order.
	ListJobIDsByState(ctx context.Context, state domain.JobState) ([]string, error)
	// ListRelatedJobIDs returns jobs whose artifact paths include path.
	ListRelatedJobIDs(ctx context.Context, path string) ([]string, error)
	// SaveOutcome persists the terminal state and expiry, plus stats when non-nil.
	SaveOutcome(ctx context.Context, job *domain.Job, stats *domain.CompressionStatistics) error
}
