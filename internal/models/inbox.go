package models

import (
	"time"

	"github.com/google/uuid"
)

// InboxMessage represents a message shown on the inbox screen
type InboxMessage struct {
	ID      uuid.UUID `json:"id"`
	Title   string    `json:"title"`
	Snippet string    `json:"snippet"`
	Date    time.Time `json:"date"`
	Icon    string    `json:"icon"`
	Read    bool      `json:"read"`
}
