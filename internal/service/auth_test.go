package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port"
	"github.com/bnema/vcomp/internal/port/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testRootSecret = "root-secret"

func newTestKeyService(store port.ClientStore) *APIKeyService {
	s := NewAPIKeyService(store, testRootSecret)
	s.cost = bcrypt.MinCost
	return s
}

func TestAPIKeyService_IssueAndValidate(t *testing.T) {
	s := newTestKeyService(newTestStore(t))
	ctx := context.Background()

	key, err := s.IssueKey(ctx, testRootSecret)
	require.NoError(t, err)

	clientID, secret, ok := strings.Cut(key, ".")
	require.True(t, ok)
	assert.NotEmpty(t, clientID)
	assert.NotEmpty(t, secret)

	client, err := s.ValidateKey(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, clientID, client.ID)
	assert.NotContains(t, client.KeyHash, secret)
}

func TestAPIKeyService_IssueKey_WrongSecret(t *testing.T) {
	s := newTestKeyService(mocks.NewClientStoreMock(t))

	for _, secret := range []string{"", "nope", testRootSecret + "x"} {
		_, err := s.IssueKey(context.Background(), secret)
		assert.ErrorIs(t, err, ErrInvalidSecret, "secret %q", secret)
	}
}

func TestAPIKeyService_IssueKey_EmptyRootSecretRejectsEverything(t *testing.T) {
	s := NewAPIKeyService(mocks.NewClientStoreMock(t), "")

	_, err := s.IssueKey(context.Background(), "")
	assert.ErrorIs(t, err, ErrInvalidSecret)
}

func TestAPIKeyService_IssueKey_StoreError(t *testing.T) {
	store := mocks.NewClientStoreMock(t)
	s := newTestKeyService(store)
	store.EXPECT().CreateClient(mock.Anything, mock.AnythingOfType("*domain.Client")).
		Return(errors.New("readonly database")).Once()

	_, err := s.IssueKey(context.Background(), testRootSecret)

	assert.Error(t, err)
}

func TestAPIKeyService_ValidateKey_Rejects(t *testing.T) {
	s := newTestKeyService(newTestStore(t))
	ctx := context.Background()

	key, err := s.IssueKey(ctx, testRootSecret)
	require.NoError(t, err)
	clientID, _, _ := strings.Cut(key, ".")

	tests := []struct {
		name string
		key  string
	}{
		{name: "empty", key: ""},
		{name: "no separator", key: "abcdef"},
		{name: "missing secret", key: clientID + "."},
		{name: "unknown client", key: "00000000-0000-0000-0000-000000000000.secret"},
		{name: "wrong secret", key: clientID + ".wrong"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.ValidateKey(ctx, tt.key)
			assert.ErrorIs(t, err, ErrInvalidAPIKey)
		})
	}
}

func TestAPIKeyService_RevokeKey(t *testing.T) {
	s := newTestKeyService(newTestStore(t))
	ctx := context.Background()

	key, err := s.IssueKey(ctx, testRootSecret)
	require.NoError(t, err)
	clientID, _, _ := strings.Cut(key, ".")

	assert.ErrorIs(t, s.RevokeKey(ctx, "wrong", clientID), ErrInvalidSecret)
	require.NoError(t, s.RevokeKey(ctx, testRootSecret, clientID))

	_, err = s.ValidateKey(ctx, key)
	assert.ErrorIs(t, err, domain.ErrRevokedKey)

	assert.ErrorIs(t, s.RevokeKey(ctx, testRootSecret, "missing"), domain.ErrNotFound)
}

func TestAPIKeyService_ValidateKey_StoreError(t *testing.T) {
	store := mocks.NewClientStoreMock(t)
	s := newTestKeyService(store)
	storeErr := errors.New("database is locked")
	store.EXPECT().GetClient(mock.Anything, "c1").Return(nil, storeErr).Once()

	_, err := s.ValidateKey(context.Background(), "c1.secret")

	assert.ErrorIs(t, err, storeErr)
}
