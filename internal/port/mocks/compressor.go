package mocks

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/stretchr/testify/mock"
)

// CompressorMock is a testify mock for port.Compressor.
type CompressorMock struct {
	mock.Mock
}

type CompressorMock_Expecter struct {
	mock *mock.Mock
}

func (_m *CompressorMock) EXPECT() *CompressorMock_Expecter {
	return &CompressorMock_Expecter{mock: &_m.Mock}
}

func (_m *CompressorMock) Compress(ctx context.Context, params domain.CompressionParams) error {
	ret := _m.Called(ctx, params)

	if rf, ok := ret.Get(0).(func(context.Context, domain.CompressionParams) error); ok {
		return rf(ctx, params)
	}
	return ret.Error(0)
}

type CompressorMock_Compress_Call struct {
	*mock.Call
}

func (_e *CompressorMock_Expecter) Compress(ctx interface{}, params interface{}) *CompressorMock_Compress_Call {
	return &CompressorMock_Compress_Call{Call: _e.mock.On("Compress", ctx, params)}
}

func (_c *CompressorMock_Compress_Call) Return(err error) *CompressorMock_Compress_Call {
	_c.Call.Return(err)
	return _c
}

// RunAndReturn lets a test compute the result from the call arguments.
func (_c *CompressorMock_Compress_Call) RunAndReturn(run func(context.Context, domain.CompressionParams) error) *CompressorMock_Compress_Call {
	_c.Call.Return(run)
	return _c
}

func NewCompressorMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *CompressorMock {
	m := &CompressorMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
