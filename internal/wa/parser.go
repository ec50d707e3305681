package wa

import (
	"github.com/matheus3301/wppstatus/internal/activity"
	"github.com/matheus3301/wppstatus/internal/presence"
	"github.com/matheus3301/wppstatus/internal/store"
	"go.mau.fi/whatsmeow/proto/waE2E"
	"go.mau.fi/whatsmeow/types"
	"go.mau.fi/whatsmeow/types/events"
)

const previewLen = 100

// ParsedMessage is the part of a message the chat list cares about.
type ParsedMessage struct {
	ChatJID     string
	ChatName    string
	SenderJID   string
	SenderName  string
	Body        string
	MessageType string
	FromMe      bool
	IsGroup     bool
	Timestamp   int64
}

// ParseLiveMessage normalizes a live whatsmeow message event.
func ParseLiveMessage(evt *events.Message) *ParsedMessage {
	return &ParsedMessage{
		ChatJID:     evt.Info.Chat.ToNonAD().String(),
		SenderJID:   evt.Info.Sender.ToNonAD().String(),
		SenderName:  evt.Info.PushName,
		Body:        extractTextBody(evt.Message),
		MessageType: detectMessageType(evt.Message),
		FromMe:      evt.Info.IsFromMe,
		IsGroup:     evt.Info.Chat.Server == types.GroupServer,
		Timestamp:   evt.Info.Timestamp.UnixMilli(),
	}
}

// Preview returns the chat list preview line for the message.
func (p *ParsedMessage) Preview() string {
	if p.Body != "" {
		return truncate(p.Body, previewLen)
	}
	if p.MessageType == "unknown" {
		return ""
	}
	return "[" + p.MessageType + "]"
}

// ToChat converts the message into the chat row it updates.
func (p *ParsedMessage) ToChat() *store.Chat {
	return &store.Chat{
		JID:                p.ChatJID,
		Name:               p.ChatName,
		IsGroup:            p.IsGroup,
		LastMessageAt:      p.Timestamp,
		LastMessagePreview: p.Preview(),
	}
}

// ToContact returns the sender's push name as a contact, or nil when the
// message carries none.
func (p *ParsedMessage) ToContact() *store.Contact {
	if p.FromMe || p.SenderName == "" || p.SenderJID == "" {
		return nil
	}
	return &store.Contact{JID: p.SenderJID, PushName: p.SenderName}
}

// ParseChatPresence maps a chat state notification to a tracker update.
// WhatsApp only reports composing (optionally with audio media) and paused.
func ParseChatPresence(evt *events.ChatPresence) presence.Update {
	u := presence.Update{
		ChatID:   evt.Chat.ToNonAD().String(),
		SenderID: evt.Sender.ToNonAD().String(),
		Direct:   !evt.IsGroup && evt.Chat.Server != types.GroupServer,
	}
	if evt.State != types.ChatPresenceComposing {
		return u
	}
	u.Active = true
	u.Kind = activity.TypingText
	if evt.Media == types.ChatPresenceMediaAudio {
		u.Kind = activity.RecordingVoice
	}
	return u
}

// NormalizeJID strips the device part of a JID string. Strings that do not
// parse are returned unchanged.
func NormalizeJID(s string) string {
	if s == "" {
		return ""
	}
	j, err := types.ParseJID(s)
	if err != nil || j.User == "" {
		return s
	}
	return j.ToNonAD().String()
}

func truncate(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen])
}

func extractTextBody(msg *waE2E.Message) string {
	if msg == nil {
		return ""
	}
	if c := msg.GetConversation(); c != "" {
		return c
	}
	if ext := msg.GetExtendedTextMessage(); ext != nil {
		return ext.GetText()
	}
	return ""
}

func detectMessageType(msg *waE2E.Message) string {
	if msg == nil {
		return "unknown"
	}
	switch {
	case msg.GetConversation() != "" || msg.GetExtendedTextMessage() != nil:
		return "text"
	case msg.GetImageMessage() != nil:
		return "image"
	case msg.GetVideoMessage() != nil:
		if msg.GetVideoMessage().GetGifPlayback() {
			return "gif"
		}
		return "video"
	case msg.GetPtvMessage() != nil:
		return "video note"
	case msg.GetAudioMessage() != nil:
		if msg.GetAudioMessage().GetPTT() {
			return "voice"
		}
		return "audio"
	case msg.GetDocumentMessage() != nil:
		return "document"
	case msg.GetStickerMessage() != nil:
		return "sticker"
	case msg.GetContactMessage() != nil:
		return "contact"
	case msg.GetLocationMessage() != nil:
		return "location"
	default:
		return "unknown"
	}
}
