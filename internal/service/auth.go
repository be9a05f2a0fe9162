package service

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/port"
)

var (
	ErrInvalidSecret = errors.New("invalid root secret")
	ErrInvalidAPIKey = errors.New("invalid api key")
)

const keySecretBytes = 32

// APIKeyService issues and checks client API keys. A key is
// "<clientID>.<secret>"; only a bcrypt hash of the secret is stored.
type APIKeyService struct {
	store      port.ClientStore
	rootSecret string
	cost       int
	now        func() time.Time
}

func NewAPIKeyService(store port.ClientStore, rootSecret string) *APIKeyService {
	return &APIKeyService{
		store:      store,
		rootSecret: rootSecret,
		cost:       bcrypt.DefaultCost,
		now:        time.Now,
	}
}

// IssueKey creates a new client when secret matches the root secret.
func (s *APIKeyService) IssueKey(ctx context.Context, secret string) (string, error) {
	if !s.checkRootSecret(secret) {
		return "", ErrInvalidSecret
	}

	raw := make([]byte, keySecretBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", fmt.Errorf("generate key: %w", err)
	}
	keySecret := base64.RawURLEncoding.EncodeToString(raw)

	hash, err := bcrypt.GenerateFromPassword([]byte(keySecret), s.cost)
	if err != nil {
		return "", fmt.Errorf("hash key: %w", err)
	}

	client := &domain.Client{
		ID:        uuid.NewString(),
		KeyHash:   string(hash),
		CreatedAt: s.now(),
	}
	if err := s.store.CreateClient(ctx, client); err != nil {
		return "", err
	}
	return client.ID + "." + keySecret, nil
}

// ValidateKey returns the owning client, ErrInvalidAPIKey for unknown or
// malformed keys and domain.ErrRevokedKey for revoked ones.
func (s *APIKeyService) ValidateKey(ctx context.Context, key string) (*domain.Client, error) {
	clientID, keySecret, ok := strings.Cut(key, ".")
	if !ok || clientID == "" || keySecret == "" {
		return nil, ErrInvalidAPIKey
	}

	client, err := s.store.GetClient(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, ErrInvalidAPIKey
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(client.KeyHash), []byte(keySecret)); err != nil {
		return nil, ErrInvalidAPIKey
	}
	if client.Revoked {
		return nil, domain.ErrRevokedKey
	}
	return client, nil
}

// RevokeKey disables a client's key. It needs the root secret, like IssueKey.
func (s *APIKeyService) RevokeKey(ctx context.Context, secret, clientID string) error {
	if !s.checkRootSecret(secret) {
		return ErrInvalidSecret
	}
	return s.store.RevokeClient(ctx, clientID)
}

func (s *APIKeyService) checkRootSecret(secret string) bool {
	if secret == "" || s.rootSecret == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(secret), []byte(s.rootSecret)) == 1
}
