package mocks

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/stretchr/testify/mock"
)

// JobStoreMock is a testify mock for port.JobStore.
type JobStoreMock struct {
	mock.Mock
}

type JobStoreMock_Expecter struct {
	mock *mock.Mock
}

func (_m *JobStoreMock) EXPECT() *JobStoreMock_Expecter {
	return &JobStoreMock_Expecter{mock: &_m.Mock}
}

func (_m *JobStoreMock) CreateJob(ctx context.Context, job *domain.Job) error {
	ret := _m.Called(ctx, job)
	return ret.Error(0)
}

type JobStoreMock_CreateJob_Call struct {
	*mock.Call
}

func (_e *JobStoreMock_Expecter) CreateJob(ctx interface{}, job interface{}) *JobStoreMock_CreateJob_Call {
	return &JobStoreMock_CreateJob_Call{Call: _e.mock.On("CreateJob", ctx, job)}
}

func (_c *JobStoreMock_CreateJob_Call) Return(err error) *JobStoreMock_CreateJob_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *JobStoreMock_CreateJob_Call) Run(run func(ctx context.Context, job *domain.Job)) *JobStoreMock_CreateJob_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*domain.Job))
	})
	return _c
}

func (_m *JobStoreMock) GetJob(ctx context.Context, id string) (*domain.Job, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Job
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Job)
	}
	return r0, ret.Error(1)
}

type JobStoreMock_GetJob_Call struct {
	*mock.Call
}

func (_e *JobStoreMock_Expecter) GetJob(ctx interface{}, id interface{}) *JobStoreMock_GetJob_Call {
	return &JobStoreMock_GetJob_Call{Call: _e.mock.On("GetJob", ctx, id)}
}

func (_c *JobStoreMock_GetJob_Call) Return(job *domain.Job, err error) *JobStoreMock_GetJob_Call {
	_c.Call.Return(job, err)
	return _c
}

func (_m *JobStoreMock) ListJobIDsByState(ctx context.Context, state domain.JobState) ([]string, error) {
	ret := _m.Called(ctx, state)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

type JobStoreMock_ListJobIDsByState_Call struct {
	*mock.Call
}

func (_e *JobStoreMock_Expecter) ListJobIDsByState(ctx interface{}, state interface{}) *JobStoreMock_ListJobIDsByState_Call {
	return &JobStoreMock_ListJobIDsByState_Call{Call: _e.mock.On("ListJobIDsByState", ctx, state)}
}

func (_c *JobStoreMock_ListJobIDsByState_Call) Return(ids []string, err error) *JobStoreMock_ListJobIDsByState_Call {
	_c.Call.Return(ids, err)
	return _c
}

func (_m *JobStoreMock) ListRelatedJobIDs(ctx context.Context, path string) ([]string, error) {
	ret := _m.Called(ctx, path)

	var r0 []string
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]string)
	}
	return r0, ret.Error(1)
}

type JobStoreMock_ListRelatedJobIDs_Call struct {
	*mock.Call
}

func (_e *JobStoreMock_Expecter) ListRelatedJobIDs(ctx interface{}, path interface{}) *JobStoreMock_ListRelatedJobIDs_Call {
	return &JobStoreMock_ListRelatedJobIDs_Call{Call: _e.mock.On("ListRelatedJobIDs", ctx, path)}
}

func (_c *JobStoreMock_ListRelatedJobIDs_Call) Return(ids []string, err error) *JobStoreMock_ListRelatedJobIDs_Call {
	_c.Call.Return(ids, err)
	return _c
}

func (_m *JobStoreMock) SaveOutcome(ctx context.Context, job *domain.Job, stats *domain.CompressionStatistics) error {
	ret := _m.Called(ctx, job, stats)
	return ret.Error(0)
}

type JobStoreMock_SaveOutcome_Call struct {
	*mock.Call
}

func (_e *JobStoreMock_Expecter) SaveOutcome(ctx interface{}, job interface{}, stats interface{}) *JobStoreMock_SaveOutcome_Call {
	return &JobStoreMock_SaveOutcome_Call{Call: _e.mock.On("SaveOutcome", ctx, job, stats)}
}

func (_c *JobStoreMock_SaveOutcome_Call) Return(err error) *JobStoreMock_SaveOutcome_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *JobStoreMock_SaveOutcome_Call) Run(run func(ctx context.Context, job *domain.Job, stats *domain.CompressionStatistics)) *JobStoreMock_SaveOutcome_Call {
	_c.Call.Run(func(args mock.Arguments) {
		var stats *domain.CompressionStatistics
		if args[2] != nil {
			stats = args[2].(*domain.CompressionStatistics)
		}
		run(args[0].(context.Context), args[1].(*domain.Job), stats)
	})
	return _c
}

// NewJobStoreMock registers a cleanup that asserts every expectation was met.
func NewJobStoreMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *JobStoreMock {
	m := &JobStoreMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
