// Package presence keeps the live "who is doing what" state of every chat
// and publishes an activity.Snapshot whenever a chat's state changes.
package presence

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/bus"
	"go.uber.org/zap"
)

// Update is one participant's activity change in one chat.
type Update struct {
	ChatID   string
	SenderID string
	Direct   bool
	Kind     activity.Kind
	Active   bool
}

// NameResolver returns the compact display name for a participant JID.
type NameResolver interface {
	DisplayName(jid string) string
}

// Observer is notified of every update the tracker accepts.
type Observer interface {
	ObservePresence(u Update)
}

type entry struct {
	participant activity.Participant
	kind        activity.Kind
	seen        time.Time
}

// Tracker aggregates presence updates into per-chat snapshots. Entries keep
// their arrival order; a participant that changes activity keeps its place.
// WhatsApp repeats "composing" while the user types, so an entry not
// refreshed within the timeout is dropped.
type Tracker struct {
	bus      *bus.Bus
	names    NameResolver
	observer Observer
	timeout  time.Duration
	logger   *zap.Logger
	now      func() time.Time
	cancel   context.CancelFunc

	mu    sync.Mutex
	chats map[string][]entry
}

// NewTracker creates a tracker. names and observer may be nil.
func NewTracker(b *bus.Bus, names NameResolver, observer Observer, timeout time.Duration, logger *zap.Logger) *Tracker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Tracker{
		bus:      b,
		names:    names,
		observer: observer,
		timeout:  timeout,
		logger:   logger,
		now:      time.Now,
		chats:    make(map[string][]entry),
	}
}

// Start consumes wa.presence events and expires stale entries until Stop.
func (t *Tracker) Start(ctx context.Context) {
	ctx, t.cancel = context.WithCancel(ctx)
	ch, unsub := t.bus.Subscribe(bus.KindWAPresence, 256)

	interval := max(t.timeout/5, 100*time.Millisecond)
	ticker := time.NewTicker(interval)

	go func() {
		defer unsub()
		defer ticker.Stop()
		for {
			select {
			case evt := <-ch:
				u, ok := evt.Payload.(Update)
				if !ok {
					continue
				}
				t.Handle(u)
			case <-ticker.C:
				t.Expire()
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the tracker.
func (t *Tracker) Stop() {
	if t.cancel != nil {
		t.cancel()
	}
}

// Handle applies u and publishes the chat's snapshot if it changed.
func (t *Tracker) Handle(u Update) {
	if u.ChatID == "" || u.SenderID == "" {
		return
	}
	if u.Active && u.Kind == "" {
		u.Kind = activity.TypingText
	}
	if t.observer != nil {
		t.observer.ObservePresence(u)
	}

	var name string
	if u.Active {
		name = t.displayName(u.SenderID)
	}

	t.mu.Lock()
	entries := t.chats[u.ChatID]
	idx := slices.IndexFunc(entries, func(e entry) bool { return e.participant.ID == u.SenderID })
	changed := true
	switch {
	case !u.Active && idx < 0:
		changed = false
	case !u.Active:
		entries = slices.Delete(entries, idx, idx+1)
	case idx >= 0:
		changed = entries[idx].kind != u.Kind || entries[idx].participant.Name != name
		entries[idx].kind = u.Kind
		entries[idx].participant.Name = name
		entries[idx].seen = t.now()
	default:
		entries = append(entries, entry{
			participant: activity.Participant{ID: u.SenderID, Name: name, Direct: u.Direct},
			kind:        u.Kind,
			seen:        t.now(),
		})
	}
	t.store(u.ChatID, entries)
	var snap activity.Snapshot
	if changed {
		snap = snapshotOf(u.ChatID, entries)
	}
	t.mu.Unlock()

	if changed {
		t.publish(snap)
	}
}

// Expire drops entries older than the timeout and publishes the affected
// chats.
func (t *Tracker) Expire() {
	if t.timeout <= 0 {
		return
	}
	cutoff := t.now().Add(-t.timeout)

	var snaps []activity.Snapshot
	t.mu.Lock()
	for chatID, entries := range t.chats {
		kept := slices.DeleteFunc(slices.Clone(entries), func(e entry) bool { return e.seen.Before(cutoff) })
		if len(kept) == len(entries) {
			continue
		}
		t.store(chatID, kept)
		snaps = append(snaps, snapshotOf(chatID, kept))
	}
	t.mu.Unlock()

	for _, s := range snaps {
		t.logger.Debug("presence expired", zap.String("chat", s.ChatID), zap.Int("remaining", len(s.Activities)))
		t.publish(s)
	}
}

// Snapshot returns the current activity of a chat.
func (t *Tracker) Snapshot(chatID string) activity.Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return snapshotOf(chatID, t.chats[chatID])
}

func (t *Tracker) store(chatID string, entries []entry) {
	if len(entries) == 0 {
		delete(t.chats, chatID)
		return
	}
	t.chats[chatID] = entries
}

func (t *Tracker) displayName(jid string) string {
	if t.names != nil {
		if name := t.names.DisplayName(jid); name != "" {
			return name
		}
	}
	return jid
}

func (t *Tracker) publish(s activity.Snapshot) {
	if t.bus != nil {
		t.bus.Publish(bus.Event{Kind: bus.KindActivitySnap, Payload: s})
	}
}

func snapshotOf(chatID string, entries []entry) activity.Snapshot {
	s := activity.Snapshot{ChatID: chatID}
	if len(entries) > 0 {
		s.Activities = make([]activity.ParticipantActivity, len(entries))
		for i, e := range entries {
			s.Activities[i] = activity.ParticipantActivity{Participant: e.participant, Kind: e.kind}
		}
	}
	return s
}
