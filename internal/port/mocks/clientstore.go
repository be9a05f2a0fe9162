package mocks

import (
	"context"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/stretchr/testify/mock"
)

type ClientStoreMock struct {
	mock.Mock
}

type ClientStoreMock_Expecter struct {
	mock *mock.Mock
}

func (_m *ClientStoreMock) EXPECT() *ClientStoreMock_Expecter {
	return &ClientStoreMock_Expecter{mock: &_m.Mock}
}

func (_m *ClientStoreMock) CreateClient(ctx context.Context, c *domain.Client) error {
	ret := _m.Called(ctx, c)
	return ret.Error(0)
}

type ClientStoreMock_CreateClient_Call struct {
	*mock.Call
}

func (_e *ClientStoreMock_Expecter) CreateClient(ctx interface{}, c interface{}) *ClientStoreMock_CreateClient_Call {
	return &ClientStoreMock_CreateClient_Call{Call: _e.mock.On("CreateClient", ctx, c)}
}

func (_c *ClientStoreMock_CreateClient_Call) Return(err error) *ClientStoreMock_CreateClient_Call {
	_c.Call.Return(err)
	return _c
}

func (_c *ClientStoreMock_CreateClient_Call) Run(run func(ctx context.Context, c *domain.Client)) *ClientStoreMock_CreateClient_Call {
	_c.Call.Run(func(args mock.Arguments) {
		run(args[0].(context.Context), args[1].(*domain.Client))
	})
	return _c
}

func (_m *ClientStoreMock) GetClient(ctx context.Context, id string) (*domain.Client, error) {
	ret := _m.Called(ctx, id)

	var r0 *domain.Client
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*domain.Client)
	}
	return r0, ret.Error(1)
}

type ClientStoreMock_GetClient_Call struct {
	*mock.Call
}

func (_e *ClientStoreMock_Expecter) GetClient(ctx interface{}, id interface{}) *ClientStoreMock_GetClient_Call {
	return &ClientStoreMock_GetClient_Call{Call: _e.mock.On("GetClient", ctx, id)}
}

func (_c *ClientStoreMock_GetClient_Call) Return(c *domain.Client, err error) *ClientStoreMock_GetClient_Call {
	_c.Call.Return(c, err)
	return _c
}

func (_m *ClientStoreMock) RevokeClient(ctx context.Context, id string) error {
	ret := _m.Called(ctx, id)
	return ret.Error(0)
}

type ClientStoreMock_RevokeClient_Call struct {
	*mock.Call
}

func (_e *ClientStoreMock_Expecter) RevokeClient(ctx interface{}, id interface{}) *ClientStoreMock_RevokeClient_Call {
	return &ClientStoreMock_RevokeClient_Call{Call: _e.mock.On("RevokeClient", ctx, id)}
}

func (_c *ClientStoreMock_RevokeClient_Call) Return(err error) *ClientStoreMock_RevokeClient_Call {
	_c.Call.Return(err)
	return _c
}

func NewClientStoreMock(t interface {
	mock.TestingT
	Cleanup(func())
}) *ClientStoreMock {
	m := &ClientStoreMock{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}
