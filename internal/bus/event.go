package bus

import "time"

// Event kinds published on the bus. Subscribers filter by namespace prefix
// ("wa.", "activity.", ...).
const (
	KindWAPresence     = "wa.presence"
	KindWAMessage      = "wa.message"
	KindWAHistoryBatch = "wa.history_batch"
	KindWAContact      = "wa.contact"
	KindSyncConnected  = "sync.connected"
	KindSyncDisconnect = "sync.disconnected"
	KindStatusChanged  = "session.status_changed"
	KindLoggedOut      = "session.logged_out"
	KindActivitySnap   = "activity.snapshot"
	KindChatsChanged   = "store.chats_changed"
)

// Event represents a domain event published on the bus.
type Event struct {
	ID        string
	Kind      string
	Timestamp time.Time
	Payload   any
}
