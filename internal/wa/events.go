package wa

import (
	"context"
	"time"

	"github.com/matheus3301/wppstatus/internal/bus"
	"github.com/matheus3301/wppstatus/internal/presence"
	"github.com/matheus3301/wppstatus/internal/status"
	"github.com/matheus3301/wppstatus/internal/store"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
	"go.uber.org/zap"
)

// Peer is the part of the adapter the event handler calls back into.
type Peer interface {
	ResolveLID(ctx context.Context, jid types.JID) types.JID
	SetAvailable(ctx context.Context) error
}

// EventHandler turns whatsmeow events into bus events and drives the
// connection state machine. Consumers (tracker, sync engine) subscribe to
// the bus; the handler never calls them directly.
type EventHandler struct {
	bus     *bus.Bus
	machine *status.Machine
	peer    Peer
	logger  *zap.Logger
}

// NewEventHandler creates a new event handler. peer may be nil, in which
// case LIDs stay unresolved.
func NewEventHandler(b *bus.Bus, machine *status.Machine, peer Peer, logger *zap.Logger) *EventHandler {
	return &EventHandler{
		bus:     b,
		machine: machine,
		peer:    peer,
		logger:  logger,
	}
}

// Handle is the whatsmeow event handler function.
func (h *EventHandler) Handle(rawEvt any) {
	switch evt := rawEvt.(type) {
	case *events.ChatPresence:
		h.handleChatPresence(evt)
	case *events.Message:
		h.handleMessage(evt)
	case *events.PushName:
		h.bus.Publish(bus.Event{
			Kind:    bus.KindWAContact,
			Payload: &store.Contact{JID: h.resolve(evt.JID).String(), PushName: evt.NewPushName},
		})
	case *events.Connected:
		h.handleConnected()
	case *events.Disconnected:
		h.logger.Warn("WhatsApp disconnected")
		_ = h.machine.Transition(status.Reconnecting)
		h.bus.Publish(bus.Event{Kind: bus.KindSyncDisconnect})
	case *events.HistorySync:
		h.handleHistorySync(evt)
	case *events.LoggedOut:
		h.logger.Warn("WhatsApp logged out", zap.String("reason", evt.Reason.String()))
		_ = h.machine.Transition(status.AuthRequired)
		h.bus.Publish(bus.Event{Kind: bus.KindLoggedOut, Payload: evt.Reason.String()})
	}
}

func (h *EventHandler) handleConnected() {
	h.logger.Info("WhatsApp connected")
	if h.machine.Current() != status.Connecting {
		_ = h.machine.Transition(status.Connecting)
	}
	if err := h.machine.Transition(status.Online); err != nil {
		h.logger.Warn("unexpected state on connect", zap.Error(err))
	}

	// Chat states are only delivered to clients that announced themselves
	// as available.
	if h.peer != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := h.peer.SetAvailable(ctx); err != nil {
				h.logger.Warn("failed to send available presence", zap.Error(err))
			}
		}()
	}
	h.bus.Publish(bus.Event{Kind: bus.KindSyncConnected})
}

func (h *EventHandler) handleChatPresence(evt *events.ChatPresence) {
	if evt.IsFromMe {
		return
	}
	u := ParseChatPresence(evt)
	u.ChatID = h.resolve(evt.Chat).String()
	u.SenderID = h.resolve(evt.Sender).String()
	h.logger.Debug("chat presence",
		zap.String("chat", u.ChatID),
		zap.String("sender", u.SenderID),
		zap.String("kind", string(u.Kind)),
		zap.Bool("active", u.Active))
	h.bus.Publish(bus.Event{Kind: bus.KindWAPresence, Payload: u})
}

func (h *EventHandler) handleMessage(evt *events.Message) {
	parsed := ParseLiveMessage(evt)
	parsed.ChatJID = h.resolve(evt.Info.Chat).String()
	parsed.SenderJID = h.resolve(evt.Info.Sender).String()

	h.bus.Publish(bus.Event{Kind: bus.KindWAMessage, Payload: parsed})

	// A delivered message ends whatever the sender was composing.
	if !parsed.FromMe {
		h.bus.Publish(bus.Event{Kind: bus.KindWAPresence, Payload: presence.Update{
			ChatID:   parsed.ChatJID,
			SenderID: parsed.SenderJID,
			Direct:   !parsed.IsGroup,
		}})
	}
}

func (h *EventHandler) handleHistorySync(evt *events.HistorySync) {
	data := evt.Data
	if data == nil {
		return
	}

	var msgs []*ParsedMessage
	for _, conv := range data.GetConversations() {
		chatJID := h.resolveJID(conv.GetID())
		isGroup := isGroupJID(chatJID)
		for _, hm := range conv.GetMessages() {
			wmsg := hm.GetMessage()
			if wmsg == nil || wmsg.GetMessage() == nil {
				continue
			}
			key := wmsg.GetKey()
			sender := key.GetParticipant()
			if sender == "" && !isGroup && !key.GetFromMe() {
				sender = chatJID
			}
			msgs = append(msgs, &ParsedMessage{
				ChatJID:     chatJID,
				ChatName:    conv.GetName(),
				SenderJID:   h.resolveJID(sender),
				SenderName:  wmsg.GetPushName(),
				Body:        extractTextBody(wmsg.GetMessage()),
				MessageType: detectMessageType(wmsg.GetMessage()),
				FromMe:      key.GetFromMe(),
				IsGroup:     isGroup,
				Timestamp:   int64(wmsg.GetMessageTimestamp()) * 1000,
			})
		}
	}

	if len(msgs) > 0 {
		h.bus.Publish(bus.Event{Kind: bus.KindWAHistoryBatch, Payload: msgs})
	}
}

func (h *EventHandler) resolve(jid types.JID) types.JID {
	jid = jid.ToNonAD()
	if h.peer == nil {
		return jid
	}
	return h.peer.ResolveLID(context.Background(), jid)
}

func (h *EventHandler) resolveJID(s string) string {
	if s == "" {
		return ""
	}
	jid, err := types.ParseJID(s)
	if err != nil || jid.User == "" {
		return s
	}
	return h.resolve(jid).String()
}

func isGroupJID(s string) bool {
	jid, err := types.ParseJID(s)
	return err == nil && jid.Server == types.GroupServer
}
