package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/bnema/vcomp/internal/adapter/http/middleware"
	"github.com/bnema/vcomp/internal/adapter/http/ratelimit"
	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
	"github.com/bnema/vcomp/internal/service"
)

const APIKeyHeader = "X-API-Key"

type KeyService interface {
	IssueKey(ctx context.Context, secret string) (string, error)
	ValidateKey(ctx context.Context, key string) (*domain.Client, error)
	RevokeKey(ctx context.Context, secret, clientID string) error
}

type clientKey struct{}

// ClientFromContext returns the client authenticated by APIKeyMiddleware.
func ClientFromContext(ctx context.Context) (*domain.Client, bool) {
	c, ok := ctx.Value(clientKey{}).(*domain.Client)
	return c, ok
}

func forbidden(w http.ResponseWriter) {
	writeJSON(w, http.StatusForbidden, map[string]string{"message": "Forbidden: Invalid API key"})
}

// APIKeyMiddleware rejects requests without a valid, unrevoked X-API-Key.
func APIKeyMiddleware(keys KeyService, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(APIKeyHeader)
		if key == "" {
			forbidden(w)
			return
		}

		client, err := keys.ValidateKey(r.Context(), key)
		if err != nil {
			if errors.Is(err, service.ErrInvalidAPIKey) || errors.Is(err, domain.ErrRevokedKey) {
				forbidden(w)
				return
			}
			logger.Error.Printf("validate api key: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to validate API key")
			return
		}

		next(w, r.WithContext(context.WithValue(r.Context(), clientKey{}, client)))
	}
}

type secretRequest struct {
	Secret string `json:"secret"`
}

func decodeSecret(r *http.Request) (string, bool) {
	var body secretRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 64<<10)).Decode(&body); err != nil {
		return "", false
	}
	return body.Secret, body.Secret != ""
}

// KeyGuard throttles root secret attempts per client IP: a sliding-window
// limiter plus an exponential delay after each wrong secret.
type KeyGuard struct {
	limiter     *ratelimit.Limiter
	failures    *ratelimit.FailureTracker
	backoff     *ratelimit.Backoff
	behindProxy bool
}

func NewKeyGuard(behindProxy bool) *KeyGuard {
	return &KeyGuard{
		limiter:     ratelimit.NewLimiter(5, 15*time.Minute, 30*time.Minute),
		failures:    ratelimit.NewFailureTracker(),
		backoff:     ratelimit.NewBackoff(500*time.Millisecond, 10*time.Second, 2.0),
		behindProxy: behindProxy,
	}
}

// allow reports whether ip may attempt a secret, writing 429 when it may not.
func (g *KeyGuard) allow(w http.ResponseWriter, ip string) bool {
	allowed, retryAfter := g.limiter.Check(ip)
	if allowed {
		return true
	}
	w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())+1))
	writeError(w, http.StatusTooManyRequests, "Too many attempts")
	return false
}

// fail delays the response to a wrong secret.
func (g *KeyGuard) fail(ctx context.Context, ip string) {
	n := g.failures.RecordFailure(ip)
	logger.Warn.Printf("invalid root secret from %s (attempt %d)", ip, n)

	t := time.NewTimer(g.backoff.Duration(n))
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func (g *KeyGuard) succeed(ip string) {
	g.failures.RecordSuccess(ip)
	g.limiter.Reset(ip)
}

func IssueKeyHandler(keys KeyService, guard *KeyGuard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := middleware.ClientIP(r, guard.behindProxy)
		if !guard.allow(w, ip) {
			return
		}

		secret, ok := decodeSecret(r)
		if !ok {
			writeError(w, http.StatusBadRequest, `Expected "secret" argument`)
			return
		}

		key, err := keys.IssueKey(r.Context(), secret)
		if err != nil {
			if errors.Is(err, service.ErrInvalidSecret) {
				guard.fail(r.Context(), ip)
				writeError(w, http.StatusUnauthorized, "Invalid secret")
				return
			}
			logger.Error.Printf("issue api key: %v", err)
			writeError(w, http.StatusInternalServerError, "Failed to issue key")
			return
		}

		guard.succeed(ip)
		writeJSON(w, http.StatusOK, map[string]string{"apikey": key})
	}
}

func RevokeKeyHandler(keys KeyService, guard *KeyGuard) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := middleware.ClientIP(r, guard.behindProxy)
		if !guard.allow(w, ip) {
			return
		}

		secret, ok := decodeSecret(r)
		if !ok {
			writeError(w, http.StatusBadRequest, `Expected "secret" argument`)
			return
		}

		clientID := r.PathValue("id")
		if err := keys.RevokeKey(r.Context(), secret, clientID); err != nil {
			switch {
			case errors.Is(err, service.ErrInvalidSecret):
				guard.fail(r.Context(), ip)
				writeError(w, http.StatusUnauthorized, "Invalid secret")
			case errors.Is(err, domain.ErrNotFound):
				writeError(w, http.StatusNotFound, "Not found")
			default:
				logger.Error.Printf("revoke api key %s: %v", logger.SanitizeForLog(clientID), err)
				writeError(w, http.StatusInternalServerError, "Failed to revoke key")
			}
			return
		}

		guard.succeed(ip)
		writeJSON(w, http.StatusOK, map[string]string{"status": "revoked"})
	}
}
