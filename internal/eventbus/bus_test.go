package eventbus

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receiveOne(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case event, ok := <-sub.C:
		require.True(t, ok, "subscription closed unexpectedly")
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}
	}
}

func TestMemory_SubscriberReceivesPublishExactlyOnce(t *testing.T) {
	bus := New(nil)
	sub := bus.Subscribe("session-1")
	defer sub.Close()

	bus.Publish("session-1", EventReportSubmitted, map[string]any{"user_id": "d1"})

	event := receiveOne(t, sub)
	assert.Equal(t, EventReportSubmitted, event.Type)
	assert.Equal(t, "d1", event.Payload["user_id"])

	select {
	case extra := <-sub.C:
		t.Fatalf("unexpected second delivery: %+v", extra)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemory_LateSubscriberMissesEarlierPublish(t *testing.T) {
	bus := New(nil)

	bus.Publish("session-1", EventHandshakeComplete, nil)

	sub := bus.Subscribe("session-1")
	defer sub.Close()

	select {
	case event := <-sub.C:
		t.Fatalf("late subscriber received replayed event: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemory_TwoSubscribersBothReceive(t *testing.T) {
	bus := New(nil)
	subA := bus.Subscribe("session-1")
	defer subA.Close()
	subB := bus.Subscribe("session-1")
	defer subB.Close()

	bus.Publish("session-1", EventMeetingStarted, map[string]any{"link": "meet-1"})

	eventA := receiveOne(t, subA)
	eventB := receiveOne(t, subB)
	assert.Equal(t, EventMeetingStarted, eventA.Type)
	assert.Equal(t, eventA, eventB)
}

func TestMemory_SessionsAreIsolated(t *testing.T) {
	bus := New(nil)
	sub := bus.Subscribe("session-1")
	defer sub.Close()

	bus.Publish("session-2", EventCaseClosed, nil)

	select {
	case event := <-sub.C:
		t.Fatalf("event leaked across sessions: %+v", event)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestMemory_PerSubscriberFIFOOrder(t *testing.T) {
	bus := New(nil)
	sub := bus.Subscribe("session-1")
	defer sub.Close()

	bus.Publish("session-1", EventReportSubmitted, nil)
	bus.Publish("session-1", EventAllReportsSubmitted, nil)
	bus.Publish("session-1", EventMeetingStarted, nil)

	assert.Equal(t, EventReportSubmitted, receiveOne(t, sub).Type)
	assert.Equal(t, EventAllReportsSubmitted, receiveOne(t, sub).Type)
	assert.Equal(t, EventMeetingStarted, receiveOne(t, sub).Type)
}

func TestMemory_CloseDeregistersWithoutAffectingOthers(t *testing.T) {
	bus := New(nil)
	subA := bus.Subscribe("session-1")
	subB := bus.Subscribe("session-1")
	defer subB.Close()

	subA.Close()
	subA.Close() // double close is safe

	bus.Publish("session-1", EventUserSigned, nil)

	event := receiveOne(t, subB)
	assert.Equal(t, EventUserSigned, event.Type)

	_, open := <-subA.C
	assert.False(t, open)
}

func TestMemory_EmptySubscriberSetIsCleanedUp(t *testing.T) {
	bus := New(nil)
	sub := bus.Subscribe("session-1")
	sub.Close()

	bus.mu.Lock()
	_, exists := bus.subscribers["session-1"]
	bus.mu.Unlock()
	assert.False(t, exists)
}

func TestMemory_ConcurrentPublishAndSubscribe(t *testing.T) {
	bus := New(&Config{SubscriberBuffer: 256})

	var wg sync.WaitGroup
	received := make([]int, 8)
	for i := 0; i < 8; i++ {
		sub := bus.Subscribe("session-1")
		wg.Add(1)
		go func(i int, sub *Subscription) {
			defer wg.Done()
			defer sub.Close()
			for range sub.C {
				received[i]++
				if received[i] == 100 {
					return
				}
			}
		}(i, sub)
	}

	for i := 0; i < 100; i++ {
		bus.Publish("session-1", EventReportSubmitted, nil)
	}

	wg.Wait()
	for i, count := range received {
		assert.Equal(t, 100, count, "subscriber %d", i)
	}
}
