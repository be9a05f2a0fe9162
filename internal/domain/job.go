package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type JobType string

const (
	JobTypeCompression JobType = "VIDEO_COMPRESSION_JOB"
)

// Known reports whether t is a variant this build can load and execute.
func (t JobType) Known() bool {
	switch t {
	case JobTypeCompression:
		return true
	default:
		return false
	}
}

type JobState string

const (
	JobStatePending   JobState = "PENDING"
	JobStateCompleted JobState = "COMPLETED"
	JobStateFailed    JobState = "FAILED"
)

func (s JobState) IsTerminal() bool {
	return s == JobStateCompleted || s == JobStateFailed
}

// Job is the base record shared by every job variant. Exactly one variant
// payload is set, matching Type.
type Job struct {
	ID        string
	Type      JobType
	State     JobState
	CreatedAt time.Time
	ExpiresAt *time.Time

	Compression *CompressionParams
}

// NewCompressionJob returns a PENDING compression job with a fresh ID.
func NewCompressionJob(params CompressionParams, now time.Time) (*Job, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	return &Job{
		ID:          uuid.NewString(),
		Type:        JobTypeCompression,
		State:       JobStatePending,
		CreatedAt:   now,
		Compression: &params,
	}, nil
}

// IsExpired is false while ExpiresAt is unset and true only once now is past it.
func (j *Job) IsExpired(now time.Time) bool {
	if j.ExpiresAt == nil {
		return false
	}
	return now.After(*j.ExpiresAt)
}

func (j *Job) IsTerminal() bool {
	return j.State.IsTerminal()
}

// Complete moves a PENDING job to COMPLETED and stamps its expiry.
func (j *Job) Complete(now time.Time, retention time.Duration) error {
	return j.finish(JobStateCompleted, now, retention)
}

// Fail moves a PENDING job to FAILED and stamps its expiry.
func (j *Job) Fail(now time.Time, retention time.Duration) error {
	return j.finish(JobStateFailed, now, retention)
}

func (j *Job) finish(to JobState, now time.Time, retention time.Duration) error {
	if !isValidTransition(j.State, to) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, j.State, to)
	}
	expiresAt := now.Add(retention)
	j.State = to
	j.ExpiresAt = &expiresAt
	return nil
}

// isValidTransition enforces PENDING -> COMPLETED|FAILED; terminal states have no exits.
func isValidTransition(from, to JobState) bool {
	switch from {
	case JobStatePending:
		return to == JobStateCompleted || to == JobStateFailed
	default:
		return false
	}
}

// Validate checks that the variant payload matches the discriminator.
func (j *Job) Validate() error {
	if !j.Type.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownJobType, j.Type)
	}
	if j.Type == JobTypeCompression && j.Compression == nil {
		return fmt.Errorf("%w: job %s has no compression details", ErrImproperState, j.ID)
	}
	return nil
}
