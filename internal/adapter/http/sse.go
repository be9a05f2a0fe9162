package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bnema/vcomp/internal/domain"
	"github.com/bnema/vcomp/internal/infrastructure/logger"
	"github.com/bnema/vcomp/internal/service"
)

const keepAliveInterval = 15 * time.Second

type EventSubscriber interface {
	Subscribe(jobID string) chan service.Event
	Unsubscribe(jobID string, ch chan service.Event)
}

type SSEHandler struct {
	events    EventSubscriber
	jobs      JobService
	keepAlive time.Duration
}

func NewSSEHandler(events EventSubscriber, jobs JobService) *SSEHandler {
	return &SSEHandler{
		events:    events,
		jobs:      jobs,
		keepAlive: keepAliveInterval,
	}
}

// sseWrite writes an SSE event, handling multi-line data correctly.
func sseWrite(w http.ResponseWriter, eventName string, data string) {
	_, _ = fmt.Fprintf(w, "event: %s\n", eventName)
	for _, line := range strings.Split(data, "\n") {
		_, _ = fmt.Fprintf(w, "data: %s\n", line)
	}
	_, _ = fmt.Fprint(w, "\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// sendKeepAlive writes an SSE comment to keep the connection active.
func sendKeepAlive(w http.ResponseWriter) {
	_, _ = fmt.Fprint(w, ": keep-alive\n\n")
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// sendState emits a "state" event carrying the job view unless the state is
// the one last sent. It returns the state now known to the client.
func sendState(w http.ResponseWriter, job *domain.Job, last domain.JobState) (domain.JobState, error) {
	if job.State == last {
		return last, nil
	}
	data, err := json.Marshal(job.View())
	if err != nil {
		return last, err
	}
	sseWrite(w, "state", string(data))
	return job.State, nil
}

// Events streams state changes of one job until it reaches a terminal state
// or the client goes away.
func (h *SSEHandler) Events() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "Missing job ID")
			return
		}

		// Subscribe before loading so a transition between the two is not lost.
		ch := h.events.Subscribe(id)
		defer h.events.Unsubscribe(id, ch)

		ctx := r.Context()
		job, err := h.jobs.GetJobByID(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "Not found")
				return
			}
			logger.Error.Printf("sse: load job %s: %v", logger.SanitizeForLog(id), err)
			writeError(w, http.StatusInternalServerError, "Failed to load job")
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")
		w.Header().Set("X-Accel-Buffering", "no")
		w.WriteHeader(http.StatusOK)

		last, err := sendState(w, job, "")
		if err != nil || last.IsTerminal() {
			return
		}

		keepAlive := time.NewTicker(h.keepAlive)
		defer keepAlive.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-keepAlive.C:
				sendKeepAlive(w)
			case _, ok := <-ch:
				if !ok {
					return
				}
				// Re-fetch to send the full view, including expiry.
				job, err := h.jobs.GetJobByID(ctx, id)
				if err != nil {
					logger.Warn.Printf("sse: reload job %s: %v", logger.SanitizeForLog(id), err)
					return
				}
				if last, err = sendState(w, job, last); err != nil || last.IsTerminal() {
					return
				}
			}
		}
	}
}
