package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port"
)

func (s *Store) CreateJob(ctx context.Context, job *domain.Job) error {
	if err := job.Validate(); err != nil {
		return err
	}

	return s.withTx(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO jobs (id, state, type, created_at, expires_at) VALUES (?, ?, ?, ?, ?)`,
			job.ID, string(job.State), string(job.Type), formatTime(job.CreatedAt), nullableTime(job.ExpiresAt),
		)
		if err != nil {
			return fmt.Errorf("insert job %s: %w", job.ID, err)
		}

		switch job.Type {
		case domain.JobTypeCompression:
			c := job.Compression
			_, err = tx.ExecContext(ctx,
				`INSERT INTO compression_jobs (job_id, original_file_path, destination_file_path, frame_rate, quality_factor, quality)
				 VALUES (?, ?, ?, ?, ?, ?)`,
				job.ID, c.OriginalFilePath, c.DestinationFilePath, c.FrameRate, c.QualityFactor, string(c.Quality),
			)
			if err != nil {
				return fmt.Errorf("insert compression details %s: %w", job.ID, err)
			}
		default:
			return fmt.Errorf("%w: %q", domain.ErrUnknownJobType, job.Type)
		}
		return nil
	})
}

func (s *Store) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	var (
		jobType, state, createdAt string
		expiresAt                 sql.NullString
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT type, state, created_at, expires_at FROM jobs WHERE id = ?`, id,
	).Scan(&jobType, &state, &createdAt, &expiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get job %s: %w", id, err)
	}

	job := &domain.Job{
		ID:    id,
		Type:  domain.JobType(jobType),
		State: domain.JobState(state),
	}
	if job.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		t, err := parseTime(expiresAt.String)
		if err != nil {
			return nil, err
		}
		job.ExpiresAt = &t
	}

	switch job.Type {
	case domain.JobTypeCompression:
		job.Compression, err = s.getCompressionParams(ctx, id)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: job %s has type %q", domain.ErrUnknownJobType, id, jobType)
	}

	return job, nil
}

func (s *Store) getCompressionParams(ctx context.Context, id string) (*domain.CompressionParams, error) {
	var (
		p       domain.CompressionParams
		quality string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT original_file_path, destination_file_path, frame_rate, quality_factor, quality
		 FROM compression_jobs WHERE job_id = ?`, id,
	).Scan(&p.OriginalFilePath, &p.DestinationFilePath, &p.FrameRate, &p.QualityFactor, &quality)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: job %s", domain.ErrImproperState, id)
		}
		return nil, fmt.Errorf("get compression details %s: %w", id, err)
	}
	p.Quality = domain.Quality(quality)
	return &p, nil
}

func (s *Store) ListJobIDsByState(ctx context.Context, state domain.JobState) ([]string, error) {
	return s.queryIDs(ctx, `SELECT id FROM jobs WHERE state = ? ORDER BY rowid`, string(state))
}

func (s *Store) ListRelatedJobIDs(ctx context.Context, path string) ([]string, error) {
	return s.queryIDs(ctx,
		`SELECT job_id FROM compression_jobs
		 WHERE original_file_path = ? OR destination_file_path = ?
		 ORDER BY rowid`,
		path, path,
	)
}

func (s *Store) queryIDs(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query job ids: %w", err)
	}
	defer rows.Close() //nolint:errcheck

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan job id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate job ids: %w", err)
	}
	return ids, nil
}

func (s *Store) SaveOutcome(ctx context.Context, job *domain.Job, stats *domain.CompressionStatistics) error {
	return s.withTx(ctx, func(tx *sql.Tx) error {
		res, err := tx.ExecContext(ctx,
			`UPDATE jobs SET state = ?, expires_at = ? WHERE id = ?`,
			string(job.State), nullableTime(job.ExpiresAt), job.ID,
		)
		if err != nil {
			return fmt.Errorf("update job %s: %w", job.ID, err)
		}
		n, err := res.RowsAffected()
		if err != nil {
			return fmt.Errorf("update job %s: %w", job.ID, err)
		}
		if n == 0 {
			return fmt.Errorf("update job %s: %w", job.ID, domain.ErrNotFound)
		}

		if stats == nil {
			return nil
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO compression_statistics (job_id, original_size_bytes, final_size_bytes, start_timestamp, end_timestamp)
			 VALUES (?, ?, ?, ?, ?)`,
			stats.JobID, stats.OriginalSizeBytes, stats.FinalSizeBytes, stats.StartTimestamp, stats.EndTimestamp,
		)
		if err != nil {
			return fmt.Errorf("insert statistics %s: %w", stats.JobID, err)
		}
		return nil
	})
}

var _ port.JobStore = (*Store)(nil)
