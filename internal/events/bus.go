// Package events provides a minimal in-process publish/subscribe bus used to
// push analysis lifecycle events to streaming clients.
package events

import (
	"sync"
	"time"
)

// EventType identifies the kind of event published on the bus.
type EventType string

const (
	// AnalysisStarted is published when a portfolio analysis begins.
	AnalysisStarted EventType = "analysis_started"
	// AnalysisCompleted is published when a portfolio analysis finishes.
	AnalysisCompleted EventType = "analysis_completed"
	// RecommendationGenerated is published for each per-symbol recommendation.
	RecommendationGenerated EventType = "recommendation_generated"
)

// Event is a single bus message.
type Event struct {
	Type      EventType              `json:"type"`
	Timestamp time.Time              `json:"timestamp"`
	Data      map[string]interface{} `json:"data,omitempty"`
}

// Bus fans events out to subscribers. Publishing never blocks: slow
// subscribers drop events once their buffer is full.
type Bus struct {
	mu          sync.RWMutex
	subscribers map[int]chan Event
	nextID      int
}

// NewBus creates a new event bus.
func NewBus() *Bus {
	return &Bus{
		subscribers: make(map[int]chan Event),
	}
}

// Subscribe registers a new subscriber and returns its channel plus an
// unsubscribe function. The channel is closed on unsubscribe.
func (b *Bus) Subscribe() (<-chan Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan Event, 32)
	b.subscribers[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subscribers[id]; ok {
			delete(b.subscribers, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// Publish sends an event to all current subscribers.
func (b *Bus) Publish(eventType EventType, data map[string]interface{}) {
	event := Event{
		Type:      eventType,
		Timestamp: time.Now().UTC(),
		Data:      data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for _, ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			// Subscriber buffer full - drop rather than block publishers
		}
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}
