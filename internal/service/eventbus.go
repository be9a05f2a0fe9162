package service

import (
	"sync"

	"github.com/bnema/vcomp/internal/domain"
)

type EventPublisher interface {
	Publish(jobID string, event Event)
}

// Event is a job state change as seen by SSE subscribers.
type Event struct {
	Type  string // "state"
	State domain.JobState
}

type EventBus struct {
	subscribers map[string][]chan Event
	mu          sync.RWMutex
}

func NewEventBus() *EventBus {
	return &EventBus{
		subscribers: make(map[string][]chan Event),
	}
}

func (eb *EventBus) Subscribe(jobID string) chan Event {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	ch := make(chan Event, 4)
	eb.subscribers[jobID] = append(eb.subscribers[jobID], ch)
	return ch
}

func (eb *EventBus) Unsubscribe(jobID string, ch chan Event) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	subs := eb.subscribers[jobID]
	for i, sub := range subs {
		if sub == ch {
			eb.subscribers[jobID] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}

	if len(eb.subscribers[jobID]) == 0 {
		delete(eb.subscribers, jobID)
	}
}

// Publish never blocks the job loop: a full subscriber misses the event.
func (eb *EventBus) Publish(jobID string, event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	for _, ch := range eb.subscribers[jobID] {
		select {
		case ch <- event:
		default:
		}
	}
}

func (eb *EventBus) SubscriberCount(jobID string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers[jobID])
}
