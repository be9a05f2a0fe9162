package middleware

import (
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/vcomp/internal/infrastructure/logger"
)

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

// Flush keeps event streams working through the wrapper.
func (r *statusRecorder) Flush() {
	if f, ok := r.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (r *statusRecorder) Unwrap() http.ResponseWriter {
	return r.ResponseWriter
}

// RequestLogger logs method, path, status and latency of every request at
// debug level, and at warn level for server errors.
func RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		l := logger.Debug
		if rec.status >= http.StatusInternalServerError {
			l = logger.Warn
		}
		l.Printf("%s %s -> %d (%s)", r.Method, logger.SanitizeForLog(r.URL.Path), rec.status, time.Since(start).Round(time.Millisecond))
	})
}

// ClientIP returns the caller address used for rate limiting. The first
// X-Forwarded-For hop is trusted only when behindProxy is set.
func ClientIP(r *http.Request, behindProxy bool) string {
	if behindProxy {
		if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
			first, _, _ := strings.Cut(fwd, ",")
			if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
				return ip.String()
			}
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
