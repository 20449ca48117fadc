package events

import (
	"context"
	"sync"
)

// MockPublisher records published events for tests.
type MockPublisher struct {
	mu     sync.Mutex
	events []RatingSubmittedEvent
	err    error
}

func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// FailWith makes every subsequent publish return err.
func (m *MockPublisher) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *MockPublisher) PublishRatingSubmitted(_ context.Context, event RatingSubmittedEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.events = append(m.events, event)
	return nil
}

func (m *MockPublisher) PublishedEvents() []RatingSubmittedEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RatingSubmittedEvent, len(m.events))
	copy(out, m.events)
	return out
}

func (m *MockPublisher) ClearEvents() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = nil
}

func (m *MockPublisher) Close() error {
	return nil
}
