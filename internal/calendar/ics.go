package calendar

import (
	"bytes"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"
	"go.uber.org/zap"
)

// Recurring events are capped per event to keep a malformed rule from
// expanding without bound.
const maxOccurrencesPerEvent = 1000

// parsedEvent is the normalized form of one VEVENT before recurrence
// expansion
type parsedEvent struct {
	UID      string
	Title    string
	Notes    string
	Location string
	Calendar string
	Start    time.Time
	End      time.Time
	AllDay   bool
	RawRRule string
	ExDates  []time.Time
}

// parseICS parses an ICS payload into parsedEvents. Individual events that
// fail to parse are logged and skipped; the rest of the file is kept.
func parseICS(data []byte, logger *zap.Logger) ([]parsedEvent, error) {
	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	var events []parsedEvent
	for _, ve := range cal.Events() {
		ev, ok := parseVEvent(ve, logger)
		if !ok {
			continue
		}
		events = append(events, ev)
	}
	return events, nil
}

func parseVEvent(ve *ical.VEvent, logger *zap.Logger) (parsedEvent, bool) {
	var out parsedEvent

	uid := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uid == nil || uid.Value == "" {
		logger.Warn("skipping calendar event without UID")
		return out, false
	}
	out.UID = uid.Value

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		out.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyDescription); p != nil {
		out.Notes = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		out.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		out.Calendar = p.Value
	}

	start, err := ve.GetStartAt()
	if err != nil {
		logger.Warn("skipping calendar event without usable DTSTART",
			zap.String("uid", out.UID), zap.Error(err))
		return out, false
	}
	out.Start = start

	end, err := ve.GetEndAt()
	if err != nil {
		// No DTEND: treat as a zero-length entry at DTSTART.
		end = start
	}
	out.End = end

	// All-day when DTSTART carries VALUE=DATE or a date-only value.
	if p := ve.GetProperty(ical.ComponentPropertyDtStart); p != nil {
		if vs, ok := p.ICalParameters["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			out.AllDay = true
		}
		if !strings.Contains(p.Value, "T") {
			out.AllDay = true
		}
	}

	if p := ve.GetProperty(ical.ComponentPropertyRrule); p != nil {
		out.RawRRule = p.Value
	}

	for _, p := range ve.GetProperties(ical.ComponentPropertyExdate) {
		for _, part := range strings.Split(p.Value, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			if t, perr := parseICSTime(part); perr == nil {
				out.ExDates = append(out.ExDates, t)
			}
		}
	}

	return out, true
}

// expandOccurrences turns one parsed event into concrete entries within
// [from, to]. Non-recurring events yield at most one entry; recurring
// events are expanded through their RRULE with EXDATEs removed.
func expandOccurrences(ev parsedEvent, from, to time.Time, logger *zap.Logger) []Entry {
	if ev.RawRRule == "" {
		if ev.End.Before(from) || ev.Start.After(to) {
			return nil
		}
		return []Entry{makeEntry(ev, ev.Start, ev.End)}
	}

	r, err := rrule.StrToRRule(ev.RawRRule)
	if err != nil {
		logger.Warn("skipping unparseable recurrence rule",
			zap.String("uid", ev.UID), zap.String("rrule", ev.RawRRule), zap.Error(err))
		return nil
	}
	r.DTStart(ev.Start)

	var set rrule.Set
	set.RRule(r)
	for _, ex := range ev.ExDates {
		set.ExDate(ex.In(ev.Start.Location()))
	}

	starts := set.Between(from.In(ev.Start.Location()), to.In(ev.Start.Location()), true)
	if len(starts) > maxOccurrencesPerEvent {
		logger.Warn("truncating recurrence expansion",
			zap.String("uid", ev.UID), zap.Int("cap", maxOccurrencesPerEvent))
		starts = starts[:maxOccurrencesPerEvent]
	}

	duration := ev.End.Sub(ev.Start)
	entries := make([]Entry, 0, len(starts))
	for _, start := range starts {
		if ev.AllDay {
			day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, start.Location())
			entries = append(entries, makeEntry(ev, day, day.Add(24*time.Hour)))
			continue
		}
		entries = append(entries, makeEntry(ev, start, start.Add(duration)))
	}
	return entries
}

func makeEntry(ev parsedEvent, start, end time.Time) Entry {
	return Entry{
		UID:      ev.UID,
		Title:    ev.Title,
		Notes:    ev.Notes,
		Location: ev.Location,
		Calendar: ev.Calendar,
		Start:    start,
		End:      end,
		AllDay:   ev.AllDay,
	}
}

// parseICSTime handles the basic EXDATE value forms: UTC date-time, local
// date-time and date-only
func parseICSTime(v string) (time.Time, error) {
	if strings.HasSuffix(v, "Z") {
		return time.Parse("20060102T150405Z", v)
	}
	if strings.Contains(v, "T") {
		return time.ParseInLocation("20060102T150405", v, time.Local)
	}
	return time.ParseInLocation("20060102", v, time.Local)
}
