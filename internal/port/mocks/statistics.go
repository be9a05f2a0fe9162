package mocks

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/stretchr/testify/mock"
)

type StatisticsStoreMock struct {
	mock.Mock
}

type StatisticsStoreMock_Expecter struct {
	mock *mock.Mock
}

func (_m *StatisticsStoreMock) EXPECT() *StatisticsStoreMock_Expecter {
	return &StatisticsStoreMock_Expecter{mock: &_m.Mock}
}

func (_m *StatisticsStoreMock) StatisticsReport(ctx context.Context) (domain.StatisticsReport, error) {
	ret := _m.Called(ctx)
	return ret.Get(0).(domain.StatisticsReport), ret.Error(1)
}

type StatisticsStoreMock_StatisticsReport_Call struct {
	*mock.Call
}

func (_e *StatisticsStoreMock_Expecter) StatisticsReport(ctx interface{}) *StatisticsStoreMock_StatisticsReport_Call {
	return &StatisticsStoreMock_StatisticsReport_Call{Call: _e.mock.On("StatisticsReport", ctx)}
}

func (_c *StatisticsStoreMock_StatisticsReport_Call) Return(report domain.StatisticsReport, err error) *StatisticsStoreMock_StatisticsReport_Call {
	_c.Call.Return(report, err)
	return _c
}

func NewStatisticsStoreMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *StatisticsStoreMock {
	m := &StatisticsStoreMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
