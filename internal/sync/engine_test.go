package sync

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/matheus3301/wppstatus/internal/bus"
	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/wa"
	"go.uber.org/zap"
)

func testDB(t *testing.T) *store.DB {
	t.Helper()
	path := filepath.Join(t.TempDir(), "app.db")
	db, err := store.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.Migrate(); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("condition not met in time")
		}
		time.Sleep(10 * time.Millisecond)
	}
}

type staticContacts []store.Contact

func (s staticContacts) GetContacts(context.Context) []store.Contact { return s }

func TestEngineIngestMessage(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, nil, nil)

	ch, unsub := b.Subscribe("store.", 10)
	defer unsub()

	msg := &wa.ParsedMessage{
		ChatJID: "g@g.us", IsGroup: true, SenderJID: "s@s.whatsapp.net", SenderName: "Sam",
		Body: "hello", MessageType: "text", Timestamp: 1000,
	}
	if err := e.IngestMessage(msg); err != nil {
		t.Fatal(err)
	}

	chat, err := db.GetChat("g@g.us")
	if err != nil {
		t.Fatal(err)
	}
	if chat == nil || !chat.IsGroup || chat.LastMessagePreview != "hello" {
		t.Fatalf("chat = %+v", chat)
	}
	if got := db.DisplayName("s@s.whatsapp.net"); got != "Sam" {
		t.Errorf("sender name = %q, want Sam", got)
	}

	select {
	case evt := <-ch:
		if evt.Kind != bus.KindChatsChanged {
			t.Errorf("event kind = %q, want %s", evt.Kind, bus.KindChatsChanged)
		}
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for store.chats_changed")
	}
}

func TestEngineIngestMessageIdempotent(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db, bus.New(), nil, nil)

	msg := &wa.ParsedMessage{ChatJID: "c@s", Body: "v1", MessageType: "text", Timestamp: 1000}
	if err := e.IngestMessage(msg); err != nil {
		t.Fatal(err)
	}
	msg.Body = "v2"
	if err := e.IngestMessage(msg); err != nil {
		t.Fatal(err)
	}

	if n, _ := db.ChatCount(); n != 1 {
		t.Fatalf("chats = %d, want 1", n)
	}
	chat, _ := db.GetChat("c@s")
	if chat.LastMessagePreview != "v2" {
		t.Errorf("preview = %q, want v2", chat.LastMessagePreview)
	}
}

func TestEngineIngestHistoryBatch(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db, bus.New(), nil, nil)

	msgs := []*wa.ParsedMessage{
		{ChatJID: "a@g.us", ChatName: "Alpha", IsGroup: true, SenderJID: "x@s", SenderName: "Xavi", Body: "one", MessageType: "text", Timestamp: 1000},
		{ChatJID: "a@g.us", IsGroup: true, Body: "two", MessageType: "text", Timestamp: 2000},
		{ChatJID: "b@s", Body: "three", MessageType: "text", Timestamp: 3000},
		{ChatJID: "a@g.us", IsGroup: true, Body: "older", MessageType: "text", Timestamp: 500},
	}
	if err := e.IngestHistoryBatch(msgs); err != nil {
		t.Fatal(err)
	}

	chats, err := db.ListChats(10, 0)
	if err != nil {
		t.Fatal(err)
	}
	if len(chats) != 2 {
		t.Fatalf("got %d chats, want 2", len(chats))
	}
	if chats[0].JID != "b@s" {
		t.Errorf("first chat = %q, want newest b@s", chats[0].JID)
	}
	a := chats[1]
	if a.Name != "Alpha" || a.LastMessagePreview != "two" || a.LastMessageAt != 2000 {
		t.Errorf("chat a = %+v, want Alpha/two/2000", a)
	}
	if c, _ := db.GetContact("x@s"); c == nil || c.PushName != "Xavi" {
		t.Errorf("sender contact = %+v", c)
	}

	// Replaying the batch changes nothing.
	if err := e.IngestHistoryBatch(msgs); err != nil {
		t.Fatal(err)
	}
	if n, _ := db.ChatCount(); n != 2 {
		t.Errorf("chats = %d after replay, want 2", n)
	}
}

func TestEngineImportContacts(t *testing.T) {
	db := testDB(t)
	e := NewEngine(db, bus.New(), staticContacts{
		{JID: "1@s.whatsapp.net", Name: "Ana Lima", PushName: "ana"},
	}, nil)

	e.ImportContacts(context.Background())

	if got := db.DisplayName("1@s.whatsapp.net"); got != "Ana" {
		t.Errorf("DisplayName = %q, want Ana", got)
	}
}

// The engine must pick up everything the wa event handler publishes.
func TestEngineBusSubscription(t *testing.T) {
	db := testDB(t)
	b := bus.New()
	e := NewEngine(db, b, staticContacts{{JID: "c@s", Name: "Carla"}}, zap.NewNop())

	e.Start(context.Background())
	defer e.Stop()

	b.Publish(bus.Event{Kind: bus.KindWAMessage, Payload: &wa.ParsedMessage{
		ChatJID: "bus@s", Body: "from bus", MessageType: "text", Timestamp: 5000,
	}})
	waitFor(t, func() bool { c, _ := db.GetChat("bus@s"); return c != nil })

	b.Publish(bus.Event{Kind: bus.KindWAHistoryBatch, Payload: []*wa.ParsedMessage{
		{ChatJID: "batch@s", Body: "history", MessageType: "text", Timestamp: 6000},
	}})
	waitFor(t, func() bool { c, _ := db.GetChat("batch@s"); return c != nil })

	b.Publish(bus.Event{Kind: bus.KindWAContact, Payload: &store.Contact{JID: "p@s", PushName: "Pia"}})
	waitFor(t, func() bool { return db.DisplayName("p@s") == "Pia" })

	b.Publish(bus.Event{Kind: bus.KindSyncConnected})
	waitFor(t, func() bool { return db.DisplayName("c@s") == "Carla" })
}
