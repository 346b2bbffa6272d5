// Package calendar provides read-only snapshots of upcoming calendar
// entries from an ICS file, plus entry creation. It is a standalone
// collaborator: nothing in the task store depends on it.
package calendar

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrAccessDenied is returned when calendar access has not been granted
var ErrAccessDenied = errors.New("calendar access not granted")

// Entry is one concrete calendar occurrence. Recurring events appear once
// per occurrence inside the requested range.
type Entry struct {
	UID      string
	Title    string
	Notes    string
	Location string
	Calendar string
	Start    time.Time
	End      time.Time
	AllDay   bool
}

// Service reads and writes a single ICS file
type Service struct {
	path    string
	granted bool
	logger  *zap.Logger
}

// NewService creates a calendar service over the ICS file at path. Access
// is granted or denied once, from configuration, standing in for the
// platform permission prompt.
func NewService(path string, granted bool, logger *zap.Logger) *Service {
	return &Service{path: path, granted: granted, logger: logger}
}

// RequestAccess reports whether calendar access is available
func (s *Service) RequestAccess() bool {
	return s.granted
}

// Entries returns every occurrence between from and to, sorted by start
// time. When calendars is non-empty, only entries whose calendar name is
// listed are returned. A missing ICS file yields an empty snapshot.
func (s *Service) Entries(from, to time.Time, calendars []string) ([]Entry, error) {
	if !s.granted {
		return nil, ErrAccessDenied
	}
	if to.Before(from) {
		return nil, fmt.Errorf("invalid range: end %s is before start %s", to, from)
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read calendar file: %w", err)
	}

	parsed, err := parseICS(data, s.logger)
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(calendars))
	for _, c := range calendars {
		wanted[c] = true
	}

	var entries []Entry
	for _, ev := range parsed {
		if len(wanted) > 0 && !wanted[ev.Calendar] {
			continue
		}
		entries = append(entries, expandOccurrences(ev, from, to, s.logger)...)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Start.Before(entries[j].Start)
	})
	return entries, nil
}

// CreateEntry appends a new event to the ICS file and returns it. The file
// is created when it does not exist yet.
func (s *Service) CreateEntry(title string, start, end time.Time, notes string) (Entry, error) {
	if !s.granted {
		return Entry{}, ErrAccessDenied
	}
	if !end.After(start) {
		return Entry{}, fmt.Errorf("invalid entry: end %s is not after start %s", end, start)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)

	if data, err := os.ReadFile(s.path); err == nil {
		existing, perr := ical.ParseCalendar(bytes.NewReader(data))
		if perr != nil {
			return Entry{}, fmt.Errorf("failed to parse calendar file: %w", perr)
		}
		cal = existing
	} else if !os.IsNotExist(err) {
		return Entry{}, fmt.Errorf("failed to read calendar file: %w", err)
	}

	uid := uuid.New().String() + "@taskdesk"
	ev := cal.AddEvent(uid)
	ev.SetCreatedTime(time.Now())
	ev.SetDtStampTime(time.Now())
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(title)
	if notes != "" {
		ev.SetDescription(notes)
	}

	if err := os.WriteFile(s.path, []byte(cal.Serialize()), 0o644); err != nil {
		return Entry{}, fmt.Errorf("failed to save calendar file: %w", err)
	}

	s.logger.Info("calendar entry created",
		zap.String("uid", uid),
		zap.String("title", title),
		zap.Time("start", start),
	)

	return Entry{UID: uid, Title: title, Notes: notes, Start: start, End: end}, nil
}
