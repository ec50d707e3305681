// Package sync keeps the app database's chat list and contact names in step
// with what the WhatsApp connection reports.
package sync

import (
	"context"
	"fmt"
	"time"

	"github.com/matheus3301/wppstatus/internal/bus"
	"github.com/matheus3301/wppstatus/internal/store"
	"github.com/matheus3301/wppstatus/internal/wa"
	"go.uber.org/zap"
)

// ContactSource lists the contacts known to the device store.
type ContactSource interface {
	GetContacts(ctx context.Context) []store.Contact
}

// Engine handles idempotent ingestion of chats and contacts into the store.
// It subscribes to "wa." and "sync." events on the bus.
type Engine struct {
	db       *store.DB
	bus      *bus.Bus
	contacts ContactSource
	logger   *zap.Logger
	cancel   context.CancelFunc
}

// NewEngine creates a new sync engine. contacts may be nil.
func NewEngine(db *store.DB, b *bus.Bus, contacts ContactSource, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		db:       db,
		bus:      b,
		contacts: contacts,
		logger:   logger,
	}
}

// Start subscribes to inbound WhatsApp events on the bus.
func (e *Engine) Start(ctx context.Context) {
	ctx, e.cancel = context.WithCancel(ctx)
	waCh, unsubWA := e.bus.Subscribe("wa.", 256)
	syncCh, unsubSync := e.bus.Subscribe(bus.KindSyncConnected, 4)

	go func() {
		defer unsubWA()
		defer unsubSync()
		for {
			select {
			case evt := <-waCh:
				e.handleEvent(evt)
			case <-syncCh:
				e.ImportContacts(ctx)
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the engine.
func (e *Engine) Stop() {
	if e.cancel != nil {
		e.cancel()
	}
}

func (e *Engine) handleEvent(evt bus.Event) {
	switch evt.Kind {
	case bus.KindWAMessage:
		msg, ok := evt.Payload.(*wa.ParsedMessage)
		if !ok {
			return
		}
		if err := e.IngestMessage(msg); err != nil {
			e.logger.Error("failed to ingest message", zap.Error(err), zap.String("chat", msg.ChatJID))
		}
	case bus.KindWAHistoryBatch:
		msgs, ok := evt.Payload.([]*wa.ParsedMessage)
		if !ok {
			return
		}
		if err := e.IngestHistoryBatch(msgs); err != nil {
			e.logger.Error("failed to ingest history batch", zap.Error(err), zap.Int("count", len(msgs)))
		} else {
			e.logger.Info("history batch ingested", zap.Int("messages", len(msgs)))
		}
	case bus.KindWAContact:
		c, ok := evt.Payload.(*store.Contact)
		if !ok {
			return
		}
		if err := e.db.UpsertContact(c); err != nil {
			e.logger.Error("failed to upsert contact", zap.Error(err), zap.String("jid", c.JID))
			return
		}
		e.changed()
	}
}

// IngestMessage updates the message's chat row and its sender's push name.
func (e *Engine) IngestMessage(msg *wa.ParsedMessage) error {
	if err := e.db.UpsertChat(msg.ToChat()); err != nil {
		return fmt.Errorf("upsert chat: %w", err)
	}
	if c := msg.ToContact(); c != nil {
		if err := e.db.UpsertContact(c); err != nil {
			return fmt.Errorf("upsert sender: %w", err)
		}
	}
	e.changed()
	return nil
}

// IngestHistoryBatch folds a history batch into one chat row per
// conversation (its newest message) plus the senders' push names.
func (e *Engine) IngestHistoryBatch(msgs []*wa.ParsedMessage) error {
	latest := make(map[string]*wa.ParsedMessage)
	var order []string
	senders := make(map[string]store.Contact)

	for _, m := range msgs {
		if m.ChatJID == "" {
			continue
		}
		prev, seen := latest[m.ChatJID]
		if !seen {
			order = append(order, m.ChatJID)
		}
		if !seen || m.Timestamp >= prev.Timestamp {
			if seen && m.ChatName == "" {
				m.ChatName = prev.ChatName
			}
			latest[m.ChatJID] = m
		}
		if c := m.ToContact(); c != nil {
			senders[c.JID] = *c
		}
	}

	for _, jid := range order {
		if err := e.db.UpsertChat(latest[jid].ToChat()); err != nil {
			return fmt.Errorf("upsert chat %q: %w", jid, err)
		}
	}

	contacts := make([]store.Contact, 0, len(senders))
	for _, c := range senders {
		contacts = append(contacts, c)
	}
	if err := e.db.BulkUpsertContacts(contacts); err != nil {
		return fmt.Errorf("upsert senders: %w", err)
	}

	if len(order) > 0 || len(contacts) > 0 {
		e.changed()
	}
	return nil
}

// ImportContacts copies the device store's address book into the app DB.
func (e *Engine) ImportContacts(ctx context.Context) {
	if e.contacts == nil {
		return
	}
	start := time.Now()
	contacts := e.contacts.GetContacts(ctx)
	if len(contacts) == 0 {
		return
	}
	if err := e.db.BulkUpsertContacts(contacts); err != nil {
		e.logger.Error("failed to import contacts", zap.Error(err))
		return
	}
	e.logger.Info("contacts imported",
		zap.Int("count", len(contacts)),
		zap.Duration("took", time.Since(start)))
	e.changed()
}

func (e *Engine) changed() {
	e.bus.Publish(bus.Event{Kind: bus.KindChatsChanged})
}
