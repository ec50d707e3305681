package store

// Chat is a conversation known to the session.
type Chat struct {
	JID                string
	Name               string
	IsGroup            bool
	LastMessageAt      int64
	LastMessagePreview string
}

// Contact holds the names WhatsApp knows for a user.
type Contact struct {
	JID      string
	Name     string
	PushName string
}
