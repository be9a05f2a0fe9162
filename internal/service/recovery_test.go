package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestJobManager_Recover_RestoresPendingInOrder(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var want []string
	for i := 0; i < 3; i++ {
		job, err := domain.NewCompressionJob(domain.CompressionParams{
			OriginalFilePath:    "/files/in.mp4",
			DestinationFilePath: "/files/out.mp4",
			Quality:             domain.Quality720p,
			QualityFactor:       25,
			FrameRate:           30,
		}, time.Now())
		require.NoError(t, err)
		require.NoError(t, store.CreateJob(ctx, job))
		want = append(want, job.ID)
	}

	done, err := domain.NewCompressionJob(domain.CompressionParams{
		OriginalFilePath:    "/files/a.mp4",
		DestinationFilePath: "/files/b.mp4",
		Quality:             domain.Quality720p,
		QualityFactor:       25,
		FrameRate:           30,
	}, time.Now())
	require.NoError(t, err)
	require.NoError(t, store.CreateJob(ctx, done))
	require.NoError(t, done.Fail(time.Now(), time.Hour))
	require.NoError(t, store.SaveOutcome(ctx, done, nil))

	m := newTestManager(t, store, mocks.NewCompressorMock(t))

	n, err := m.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	active := m.ListActive()
	require.Len(t, active, 3)
	for i, id := range want {
		assert.Equal(t, id, active[i].ID)
	}
}

func TestJobManager_Recover_ReadsOnlyAndSkipsBrokenRecords(t *testing.T) {
	store := mocks.NewJobStoreMock(t)
	m := newTestManager(t, store, mocks.NewCompressorMock(t))

	newPending := func() *domain.Job {
		job, err := domain.NewCompressionJob(domain.CompressionParams{
			OriginalFilePath:    "/files/in.mp4",
			DestinationFilePath: "/files/out.mp4",
			Quality:             domain.Quality1080p,
			QualityFactor:       20,
			FrameRate:           25,
		}, time.Now())
		require.NoError(t, err)
		return job
	}
	first, second := newPending(), newPending()

	store.EXPECT().ListJobIDsByState(mock.Anything, domain.JobStatePending).
		Return([]string{first.ID, "no-details", "alien", second.ID}, nil).Once()
	store.EXPECT().GetJob(mock.Anything, first.ID).Return(first, nil).Once()
	store.EXPECT().GetJob(mock.Anything, "no-details").Return(nil, domain.ErrImproperState).Once()
	store.EXPECT().GetJob(mock.Anything, "alien").Return(nil, domain.ErrUnknownJobType).Once()
	store.EXPECT().GetJob(mock.Anything, second.ID).Return(second, nil).Once()

	n, err := m.Recover(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	active := m.ListActive()
	require.Len(t, active, 2)
	assert.Equal(t, first.ID, active[0].ID)
	assert.Equal(t, second.ID, active[1].ID)
	store.AssertNotCalled(t, "CreateJob", mock.Anything, mock.Anything)
	store.AssertNotCalled(t, "SaveOutcome", mock.Anything, mock.Anything, mock.Anything)
}

func TestJobManager_Recover_DoesNotDuplicateQueuedJobs(t *testing.T) {
	store := newTestStore(t)
	m := newTestManager(t, store, mocks.NewCompressorMock(t))
	ctx := context.Background()

	job, err := m.SubmitCompression(ctx, compressionRequest("/files/in.mp4"))
	require.NoError(t, err)

	n, err := m.Recover(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	active := m.ListActive()
	require.Len(t, active, 1)
	assert.Equal(t, job.ID, active[0].ID)
}

func TestJobManager_Recover_StorageErrors(t *testing.T) {
	storageErr := errors.New("disk I/O error")

	t.Run("listing fails", func(t *testing.T) {
		store := mocks.NewJobStoreMock(t)
		m := newTestManager(t, store, mocks.NewCompressorMock(t))
		store.EXPECT().ListJobIDsByState(mock.Anything, domain.JobStatePending).Return(nil, storageErr).Once()

		_, err := m.Recover(context.Background())

		assert.ErrorIs(t, err, storageErr)
		assert.Empty(t, m.ListActive())
	})

	t.Run("loading fails", func(t *testing.T) {
		store := mocks.NewJobStoreMock(t)
		m := newTestManager(t, store, mocks.NewCompressorMock(t))
		store.EXPECT().ListJobIDsByState(mock.Anything, domain.JobStatePending).Return([]string{"a"}, nil).Once()
		store.EXPECT().GetJob(mock.Anything, "a").Return(nil, storageErr).Once()

		_, err := m.Recover(context.Background())

		assert.ErrorIs(t, err, storageErr)
	})

	t.Run("vanished record is skipped", func(t *testing.T) {
		store := mocks.NewJobStoreMock(t)
		m := newTestManager(t, store, mocks.NewCompressorMock(t))
		store.EXPECT().ListJobIDsByState(mock.Anything, domain.JobStatePending).Return([]string{"gone"}, nil).Once()
		store.EXPECT().GetJob(mock.Anything, "gone").Return(nil, domain.ErrNotFound).Once()

		n, err := m.Recover(context.Background())

		require.NoError(t, err)
		assert.Equal(t, 0, n)
	})
}
