package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
)

// Recover requeues every PENDING job from the store in insertion order.
// Records with an unknown type or a missing detail row are skipped and stay
// PENDING in the store. Jobs submitted before recovery ran are not queued
// twice. A storage error aborts recovery.
func (m *JobManager) Recover(ctx context.Context) (int, error) {
	ids, err := m.store.ListJobIDsByState(ctx, domain.JobStatePending)
	if err != nil {
		return 0, fmt.Errorf("list pending jobs: %w", err)
	}

	recovered := 0
	for _, id := range ids {
		job, err := m.store.GetJob(ctx, id)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrUnknownJobType),
			errors.Is(err, domain.ErrImproperState),
			errors.Is(err, domain.ErrNotFound):
			logger.Warn.Printf("skipping pending job %s: %v", id, err)
			continue
		default:
			return recovered, fmt.Errorf("load pending job %s: %w", id, err)
		}

		added, err := m.push(ctx, job, false)
		if err != nil {
			logger.Warn.Printf("skipping pending job %s: %v", id, err)
			continue
		}
		if added {
			recovered++
		}
	}
	return recovered, nil
}
