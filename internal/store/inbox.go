package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/benvon/taskdesk/internal/kv"
	"github.com/benvon/taskdesk/internal/models"
)

// inboxKey is the fixed slot key for the serialized inbox messages
const inboxKey = "inbox_v1"

// ErrMessageNotFound is returned when no inbox message matches the given id
var ErrMessageNotFound = errors.New("inbox message not found")

// DefaultInboxMessages returns the messages an empty inbox is seeded with
func DefaultInboxMessages(now time.Time) []models.InboxMessage {
	return []models.InboxMessage{
		{
			ID:      uuid.New(),
			Title:   "Event Reminder: Tech Innovators Summit",
			Snippet: "Your event starts in 2 days. Get ready!",
			Date:    now.Add(-2 * 24 * time.Hour),
			Icon:    "calendar",
		},
		{
			ID:      uuid.New(),
			Title:   "New Invitation: Project Alpha Kick-off",
			Snippet: "You've been invited by Jane Doe.",
			Date:    now.Add(-5 * time.Hour),
			Icon:    "envelope",
		},
		{
			ID:      uuid.New(),
			Title:   "Summer Festival Update",
			Snippet: "Schedule change for Stage B. Check details.",
			Date:    now.Add(-24 * time.Hour),
			Icon:    "megaphone",
			Read:    true,
		},
		{
			ID:      uuid.New(),
			Title:   "Welcome to Taskdesk!",
			Snippet: "Explore features and create your first event.",
			Date:    now.Add(-7 * 24 * time.Hour),
			Icon:    "sparkles",
			Read:    true,
		},
	}
}

// InboxStore owns the inbox message list. It follows the same write-through
// persistence rules as TaskStore.
type InboxStore struct {
	slot     kv.Slot
	logger   *zap.Logger
	messages []models.InboxMessage
}

// NewInboxStore loads persisted messages from the slot. When the slot has
// never been written and seed is non-nil, the store starts with seed and
// persists it.
func NewInboxStore(slot kv.Slot, logger *zap.Logger, seed []models.InboxMessage) *InboxStore {
	s := &InboxStore{slot: slot, logger: logger}

	data, found, err := s.slot.Get(inboxKey)
	if err != nil {
		s.logger.Warn("failed to read saved inbox, starting empty", zap.Error(err))
		return s
	}
	if !found {
		if len(seed) > 0 {
			s.messages = seed
			s.persist()
		}
		return s
	}

	var messages []models.InboxMessage
	if err := json.Unmarshal(data, &messages); err != nil {
		s.logger.Warn("failed to decode saved inbox, starting empty", zap.Error(err))
		return s
	}
	s.messages = messages
	return s
}

func (s *InboxStore) persist() {
	data, err := json.Marshal(s.messages)
	if err != nil {
		s.logger.Error("failed to encode inbox for saving", zap.Error(err))
		return
	}
	if err := s.slot.Put(inboxKey, data); err != nil {
		s.logger.Error("failed to save inbox", zap.Error(err))
	}
}

// List returns the messages, newest first
func (s *InboxStore) List() []models.InboxMessage {
	out := make([]models.InboxMessage, len(s.messages))
	copy(out, s.messages)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.After(out[j].Date)
	})
	return out
}

// Unread returns the number of unread messages
func (s *InboxStore) Unread() int {
	n := 0
	for _, m := range s.messages {
		if !m.Read {
			n++
		}
	}
	return n
}

// MarkRead marks the message with the given id as read
func (s *InboxStore) MarkRead(id uuid.UUID) error {
	for i := range s.messages {
		if s.messages[i].ID == id {
			if !s.messages[i].Read {
				s.messages[i].Read = true
				s.persist()
			}
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMessageNotFound, id)
}

// Delete removes the message with the given id
func (s *InboxStore) Delete(id uuid.UUID) error {
	for i := range s.messages {
		if s.messages[i].ID == id {
			s.messages = append(s.messages[:i], s.messages[i+1:]...)
			s.persist()
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrMessageNotFound, id)
}
