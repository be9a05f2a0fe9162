package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParams() CompressionParams {
	return CompressionParams{
		OriginalFilePath:    "/files/in.mp4",
		DestinationFilePath: "/files/out.mp4",
		Quality:             Quality720p,
		QualityFactor:       23,
		FrameRate:           30,
	}
}

func TestNewCompressionJob(t *testing.T) {
	now := time.Now()

	job, err := NewCompressionJob(validParams(), now)
	require.NoError(t, err)

	assert.Len(t, job.ID, 36, "ID should be a UUID")
	assert.Equal(t, JobTypeCompression, job.Type)
	assert.Equal(t, JobStatePending, job.State)
	assert.Equal(t, now, job.CreatedAt)
	assert.Nil(t, job.ExpiresAt, "pending jobs have no expiry")
	require.NotNil(t, job.Compression)
	assert.Equal(t, 23, job.Compression.QualityFactor)
	assert.NoError(t, job.Validate())
}

func TestNewCompressionJob_UniqueIDs(t *testing.T) {
	a, err := NewCompressionJob(validParams(), time.Now())
	require.NoError(t, err)
	b, err := NewCompressionJob(validParams(), time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
}

func TestCompressionParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *CompressionParams)
		wantErr bool
	}{
		{name: "valid", mutate: func(p *CompressionParams) {}},
		{name: "1080p", mutate: func(p *CompressionParams) { p.Quality = Quality1080p }},
		{name: "unknown quality", mutate: func(p *CompressionParams) { p.Quality = "480p" }, wantErr: true},
		{name: "factor too low", mutate: func(p *CompressionParams) { p.QualityFactor = 9 }, wantErr: true},
		{name: "factor too high", mutate: func(p *CompressionParams) { p.QualityFactor = 51 }, wantErr: true},
		{name: "factor lower bound", mutate: func(p *CompressionParams) { p.QualityFactor = 10 }},
		{name: "factor upper bound", mutate: func(p *CompressionParams) { p.QualityFactor = 50 }},
		{name: "framerate zero", mutate: func(p *CompressionParams) { p.FrameRate = 0 }, wantErr: true},
		{name: "framerate too high", mutate: func(p *CompressionParams) { p.FrameRate = 61 }, wantErr: true},
		{name: "framerate bounds", mutate: func(p *CompressionParams) { p.FrameRate = 60 }},
		{name: "missing source", mutate: func(p *CompressionParams) { p.OriginalFilePath = "" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validParams()
			tt.mutate(&p)

			err := p.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, ErrInvalidParams), "got %v", err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestQuality_Height(t *testing.T) {
	assert.Equal(t, 720, Quality720p.Height())
	assert.Equal(t, 1080, Quality1080p.Height())
	assert.Equal(t, 720, Quality("").Height(), "unknown quality defaults to 720")
}

func TestJob_Transitions(t *testing.T) {
	retention := 48 * time.Hour
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	t.Run("pending to completed", func(t *testing.T) {
		job, _ := NewCompressionJob(validParams(), now)

		require.NoError(t, job.Complete(now, retention))
		assert.Equal(t, JobStateCompleted, job.State)
		require.NotNil(t, job.ExpiresAt)
		assert.Equal(t, now.Add(retention), *job.ExpiresAt)
		assert.True(t, job.IsTerminal())
	})

	t.Run("pending to failed", func(t *testing.T) {
		job, _ := NewCompressionJob(validParams(), now)

		require.NoError(t, job.Fail(now, retention))
		assert.Equal(t, JobStateFailed, job.State)
		require.NotNil(t, job.ExpiresAt)
		assert.Equal(t, now.Add(retention), *job.ExpiresAt)
	})

	t.Run("terminal states are final", func(t *testing.T) {
		job, _ := NewCompressionJob(validParams(), now)
		require.NoError(t, job.Fail(now, retention))
		firstExpiry := *job.ExpiresAt

		err := job.Complete(now.Add(time.Hour), retention)
		assert.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, JobStateFailed, job.State)
		assert.Equal(t, firstExpiry, *job.ExpiresAt, "expiry is set exactly once")

		assert.ErrorIs(t, job.Fail(now, retention), ErrInvalidTransition)
	})
}

func TestJob_IsExpired(t *testing.T) {
	now := time.Now()
	past := now.Add(-time.Minute)
	future := now.Add(time.Minute)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{name: "no expiry", expiresAt: nil, want: false},
		{name: "future expiry", expiresAt: &future, want: false},
		{name: "exactly now", expiresAt: &now, want: false},
		{name: "past expiry", expiresAt: &past, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := &Job{ExpiresAt: tt.expiresAt}
			assert.Equal(t, tt.want, job.IsExpired(now))
		})
	}
}

func TestJob_Validate(t *testing.T) {
	assert.ErrorIs(t, (&Job{ID: "a", Type: JobTypeCompression}).Validate(), ErrImproperState)
	assert.ErrorIs(t, (&Job{ID: "a", Type: "AUDIO_JOB"}).Validate(), ErrUnknownJobType)
	assert.False(t, JobType("AUDIO_JOB").Known())
	assert.True(t, JobTypeCompression.Known())
}

func TestJob_View(t *testing.T) {
	created := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	job, err := NewCompressionJob(validParams(), created)
	require.NoError(t, err)

	v := job.View()
	assert.Equal(t, job.ID, v.ID)
	assert.Equal(t, JobStatePending, v.State)
	assert.Equal(t, "2026-03-01T10:00:00Z", v.CreatedAt)
	assert.Nil(t, v.ExpiresAt)
	assert.Equal(t, "/files/in.mp4", v.OriginalFilePath)
	assert.Equal(t, "/files/out.mp4", v.DestinationFilePath)
	assert.Equal(t, 30, v.FrameRate)
	assert.Equal(t, Quality720p, v.Quality)
	assert.Equal(t, 23, v.QualityFactor)

	require.NoError(t, job.Complete(created, 48*time.Hour))
	v = job.View()
	require.NotNil(t, v.ExpiresAt)
	assert.Equal(t, "2026-03-03T10:00:00Z", *v.ExpiresAt)
}

func TestNewCompressionStatistics(t *testing.T) {
	start := time.Unix(1000, 200)

	t.Run("same second bumps end", func(t *testing.T) {
		s := NewCompressionStatistics("job", 100, 50, start, time.Unix(1000, 900))
		assert.Equal(t, int64(1000), s.StartTimestamp)
		assert.Equal(t, int64(1001), s.EndTimestamp)
		assert.Equal(t, int64(1), s.DurationSeconds())
	})

	t.Run("longer run kept", func(t *testing.T) {
		s := NewCompressionStatistics("job", 100, 50, start, time.Unix(1010, 0))
		assert.Equal(t, int64(10), s.DurationSeconds())
		assert.Equal(t, "job", s.JobID)
		assert.Equal(t, int64(100), s.OriginalSizeBytes)
		assert.Equal(t, int64(50), s.FinalSizeBytes)
	})
}
