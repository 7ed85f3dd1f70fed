package eventbus

import (
	"sync"
)

// EventType identifies a session notification
type EventType string

const (
	// EventHandshakeComplete fires when the second driver joins
	EventHandshakeComplete EventType = "HANDSHAKE_COMPLETE"

	// EventReportSubmitted fires when one driver's draft is in but the partner's is pending
	EventReportSubmitted EventType = "REPORT_SUBMITTED"

	// EventAllReportsSubmitted fires when both drafts are in and the case record exists
	EventAllReportsSubmitted EventType = "ALL_REPORTS_SUBMITTED"

	// EventMeetingStarted fires when police open the review meeting
	EventMeetingStarted EventType = "MEETING_STARTED"

	// EventUserSigned fires when a driver signs but the case is not yet closed
	EventUserSigned EventType = "USER_SIGNED"

	// EventPoliceSigned fires when the police signature lands on the report
	EventPoliceSigned EventType = "POLICE_SIGNED"

	// EventCaseClosed fires exactly once, when all three signatures are present
	EventCaseClosed EventType = "CASE_CLOSED"
)

// Event is one notification delivered to session observers
type Event struct {
	Type    EventType      `json:"event"`
	Payload map[string]any `json:"data"`
}

//go:generate mockgen -package=mocks -destination=mocks/mock_bus.go github.com/settleco/accord/internal/eventbus Bus

// Bus fans events out to every observer currently subscribed to a session.
// Delivery is at-most-once with no replay: an observer that subscribes after
// a publish never sees it and must reconcile via a point-in-time read.
type Bus interface {
	// Subscribe registers a new observer for the session and returns its
	// subscription. The caller must Close it when done.
	Subscribe(sessionID string) *Subscription

	// Publish delivers the event to every observer currently subscribed to
	// the session. With no observers the event is dropped.
	Publish(sessionID string, eventType EventType, payload map[string]any)
}

// Subscription is one observer's handle on a session's event stream
type Subscription struct {
	// C yields events in per-subscriber FIFO publish order
	C <-chan Event

	cancel func()
	once   sync.Once
}

// Close deregisters the subscription. Safe to call more than once. Other
// subscribers and the session itself are unaffected.
func (s *Subscription) Close() {
	s.once.Do(s.cancel)
}

// Config holds configuration for the in-memory bus
type Config struct {
	// SubscriberBuffer is the per-subscriber channel capacity. A subscriber
	// that falls this far behind starts losing events, which the
	// at-most-once contract permits.
	SubscriberBuffer int
}

const defaultSubscriberBuffer = 16

// Memory is the in-process Bus implementation: a subscriber-set map keyed
// by session id, guarded by a single mutex.
type Memory struct {
	mu          sync.Mutex
	buffer      int
	subscribers map[string][]chan Event
}

// New creates an in-memory event bus
func New(cfg *Config) *Memory {
	buffer := defaultSubscriberBuffer
	if cfg != nil && cfg.SubscriberBuffer > 0 {
		buffer = cfg.SubscriberBuffer
	}

	return &Memory{
		buffer:      buffer,
		subscribers: make(map[string][]chan Event),
	}
}

// Subscribe registers a new observer channel under the session's set
func (m *Memory) Subscribe(sessionID string) *Subscription {
	ch := make(chan Event, m.buffer)

	m.mu.Lock()
	m.subscribers[sessionID] = append(m.subscribers[sessionID], ch)
	m.mu.Unlock()

	return &Subscription{
		C: ch,
		cancel: func() {
			m.remove(sessionID, ch)
			close(ch)
		},
	}
}

// Publish hands the event to each subscriber channel without blocking on
// subscriber processing
func (m *Memory) Publish(sessionID string, eventType EventType, payload map[string]any) {
	event := Event{
		Type:    eventType,
		Payload: payload,
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ch := range m.subscribers[sessionID] {
		select {
		case ch <- event:
		default:
			// subscriber buffer full; drop for this observer
		}
	}
}

// remove deregisters one channel and cleans up the session entry when the
// set becomes empty
func (m *Memory) remove(sessionID string, ch chan Event) {
	m.mu.Lock()
	defer m.mu.Unlock()

	channels := m.subscribers[sessionID]
	for i, c := range channels {
		if c == ch {
			channels = append(channels[:i], channels[i+1:]...)
			break
		}
	}

	if len(channels) == 0 {
		delete(m.subscribers, sessionID)
		return
	}
	m.subscribers[sessionID] = channels
}
