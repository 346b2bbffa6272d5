// Package session stages edits to a single task before they are reconciled
// into the task store. A session is ephemeral: it is created when editing
// begins and dropped after Commit or Discard.
package session

import (
	"strings"
	"time"

	"github.com/benvon/taskdesk/internal/models"
	"github.com/benvon/taskdesk/internal/store"
)

// TaskWriter is the subset of the task store a session commits through
type TaskWriter interface {
	Add(input store.NewTask) (models.Task, error)
	Update(task models.Task) error
}

var _ TaskWriter = (*store.TaskStore)(nil)

// FetchToken identifies one location-fetch attempt. A result is only applied
// when its token still matches the session's current pending fetch, so
// late-arriving results from cancelled or superseded fetches are dropped.
type FetchToken uint64

// Session holds the staged fields for one task edit.
//
// DueDate and IncludeDueDate are independent: turning the flag off keeps the
// staged date, and the date resurfaces if the flag is turned back on. Only
// Commit consults both.
type Session struct {
	existing *models.Task

	Title          string
	Notes          string
	Location       string
	DueDate        *time.Time
	IncludeDueDate bool

	fetchSeq      FetchToken
	fetchPending  bool
	priorLocation string
}

// New starts a session. When existing is non-nil every staged field is
// seeded from it, and IncludeDueDate reflects whether a due date is set.
func New(existing *models.Task) *Session {
	s := &Session{}
	if existing == nil {
		return s
	}

	copied := *existing
	s.existing = &copied
	s.Title = copied.Title
	if copied.Notes != nil {
		s.Notes = *copied.Notes
	}
	if copied.LocationDetails != nil {
		s.Location = *copied.LocationDetails
	}
	if copied.DueDate != nil {
		due := *copied.DueDate
		s.DueDate = &due
		s.IncludeDueDate = true
	}
	return s
}

// Editing reports whether the session was started from an existing task
func (s *Session) Editing() bool {
	return s.existing != nil
}

// BeginLocationFetch marks a location fetch as pending and clears the staged
// location text, returning the token the eventual result must carry. The
// previous text is kept aside so a failed fetch does not lose it.
func (s *Session) BeginLocationFetch() FetchToken {
	s.fetchSeq++
	s.fetchPending = true
	s.priorLocation = s.Location
	s.Location = ""
	return s.fetchSeq
}

// ApplyLocationResult stages text as the location if token identifies the
// current pending fetch. It reports whether the result was applied.
func (s *Session) ApplyLocationResult(token FetchToken, text string) bool {
	if !s.fetchPending || token != s.fetchSeq {
		return false
	}
	s.fetchPending = false
	s.Location = text
	return true
}

// CancelLocationFetch abandons any pending fetch and restores the location
// text staged before the fetch began; a later result for it will be dropped
func (s *Session) CancelLocationFetch() {
	if !s.fetchPending {
		return
	}
	s.fetchPending = false
	s.Location = s.priorLocation
}

// FetchPending reports whether a location fetch is outstanding
func (s *Session) FetchPending() bool {
	return s.fetchPending
}

// Commit reconciles the staged fields into the store: an update for a
// session started from an existing task, an add otherwise. Blank notes and
// location become absent, and the staged due date is discarded unless
// IncludeDueDate is set.
func (s *Session) Commit(tasks TaskWriter) (models.Task, error) {
	s.CancelLocationFetch()

	var due *time.Time
	if s.IncludeDueDate && s.DueDate != nil {
		d := *s.DueDate
		due = &d
	}

	notes := optional(s.Notes)
	location := optional(strings.TrimSpace(s.Location))

	if s.existing != nil {
		updated := *s.existing
		updated.Title = s.Title
		updated.Notes = notes
		updated.DueDate = due
		updated.LocationDetails = location
		if err := tasks.Update(updated); err != nil {
			return models.Task{}, err
		}
		return updated, nil
	}

	return tasks.Add(store.NewTask{
		Title:           s.Title,
		Notes:           notes,
		DueDate:         due,
		LocationDetails: location,
	})
}

// Discard abandons the staged state without touching the store
func (s *Session) Discard() {
	s.CancelLocationFetch()
}

func optional(v string) *string {
	if v == "" {
		return nil
	}
	return &v
}
