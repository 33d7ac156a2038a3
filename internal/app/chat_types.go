package app

import "time"

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one entry in a chat transcript. Messages are append-only: once
// written to a session they are never mutated or reordered.
type Message struct {
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatInfo is the listing projection of a session, served from the catalog
// without opening the session record.
type ChatInfo struct {
	ID        string
	Title     string
	UpdatedAt time.Time
}

// catalogEntry is what the catalog file stores per session. The message list
// deliberately lives only in the session record; the catalog carries
// lightweight metadata so the two files cannot diverge on content.
type catalogEntry struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Title     string    `json:"title"`
}

// chatRecord is the on-disk shape of one session file.
type chatRecord struct {
	Messages []Message `json:"messages"`
}
