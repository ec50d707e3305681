package bus

import (
	"testing"
	"time"
)

func TestPublishSubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("activity.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindActivitySnap, Payload: "test"})

	select {
	case evt := <-ch:
		if evt.Kind != KindActivitySnap {
			t.Errorf("got kind %q, want %s", evt.Kind, KindActivitySnap)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}
}

func TestPublishAssignsIDAndTimestamp(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("wa.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindWAPresence})
	b.Publish(Event{Kind: KindWAPresence, ID: "fixed"})

	first := <-ch
	if first.ID == "" {
		t.Error("event ID not assigned")
	}
	if first.Timestamp.IsZero() {
		t.Error("event timestamp not assigned")
	}
	second := <-ch
	if second.ID != "fixed" {
		t.Errorf("ID = %q, want caller-supplied ID kept", second.ID)
	}
	if first.ID == second.ID {
		t.Error("IDs should be unique")
	}
}

func TestNamespaceFiltering(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("sync.", 10)
	defer unsub()

	b.Publish(Event{Kind: KindStatusChanged})
	b.Publish(Event{Kind: KindSyncConnected})

	select {
	case evt := <-ch:
		if evt.Kind != KindSyncConnected {
			t.Errorf("got kind %q, want sync.connected", evt.Kind)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for event")
	}

	// Ensure session event was not delivered.
	select {
	case evt := <-ch:
		t.Errorf("unexpected event: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected: no more events.
	}
}

func TestUnsubscribe(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("session.", 10)
	unsub()

	b.Publish(Event{Kind: KindStatusChanged})

	select {
	case evt := <-ch:
		t.Errorf("received event after unsubscribe: %v", evt)
	case <-time.After(50 * time.Millisecond):
		// Expected.
	}
}

func TestDropOnFullBuffer(t *testing.T) {
	b := New()
	ch, unsub := b.Subscribe("test.", 1)
	defer unsub()

	// Fill buffer.
	b.Publish(Event{Kind: "test.one"})
	// This should be dropped (non-blocking).
	b.Publish(Event{Kind: "test.two"})

	evt := <-ch
	if evt.Kind != "test.one" {
		t.Errorf("got %q, want test.one", evt.Kind)
	}
}
