// Package calendar turns iCalendar files into alarm times.
package calendar

import (
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"go.uber.org/zap"

	"github.com/borgmon/puzzle-alarm/pkg/logger"
)

var errNotICalendar = errors.New("invalid iCalendar data, expected BEGIN:VCALENDAR")

// Entry is one alarm time found in a calendar
type Entry struct {
	UID   string
	Title string
	Time  time.Time
}

// Importer reads alarm entries from iCalendar data
type Importer struct {
	log *zap.SugaredLogger
	loc *time.Location
}

// NewImporter creates an Importer resolving floating times in loc
func NewImporter(loc *time.Location, log *zap.SugaredLogger) *Importer {
	if loc == nil {
		loc = time.Local
	}
	return &Importer{loc: loc, log: logger.OrNop(log)}
}

// Parse returns one entry per event that rings after now, soonest first.
// The alarm time is the event start shifted by its first relative VALARM
// trigger; recurring events contribute their next occurrence. Cancelled and
// past events are skipped.
func (im *Importer) Parse(r io.Reader, now time.Time) ([]Entry, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read calendar: %w", err)
	}
	if !strings.HasPrefix(strings.TrimSpace(string(body)), "BEGIN:VCALENDAR") {
		return nil, errNotICalendar
	}

	decoder := ical.NewDecoder(strings.NewReader(string(body)))
	entries := []Entry{}
	seen := make(map[string]bool)
	stats := importStats{}

	for {
		cal, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}
			stats.events++

			entry, ok := im.entryFor(comp, now, &stats)
			if !ok {
				continue
			}

			key := entry.UID + "|" + entry.Time.Format(time.RFC3339)
			if seen[key] {
				stats.duplicates++
				continue
			}
			seen[key] = true
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Time.Before(entries[j].Time)
	})

	im.log.Infow("calendar parsed",
		"events", stats.events,
		"imported", len(entries),
		"cancelled", stats.cancelled,
		"past", stats.past,
		"missing_time", stats.missingTime,
		"duplicates", stats.duplicates)

	return entries, nil
}

type importStats struct {
	events      int
	cancelled   int
	past        int
	missingTime int
	duplicates  int
}

func (im *Importer) entryFor(comp *ical.Component, now time.Time, stats *importStats) (Entry, bool) {
	normalizeComponentTimezones(comp)

	entry := Entry{}
	if prop := comp.Props.Get(ical.PropUID); prop != nil {
		entry.UID = prop.Value
	}
	if prop := comp.Props.Get(ical.PropSummary); prop != nil {
		entry.Title = prop.Value
	}
	if prop := comp.Props.Get(ical.PropStatus); prop != nil && strings.EqualFold(prop.Value, "CANCELLED") {
		stats.cancelled++
		im.log.Debugw("skipping cancelled event", "title", entry.Title)
		return Entry{}, false
	}

	start, err := im.startTime(comp)
	if err != nil {
		stats.missingTime++
		im.log.Debugw("skipping event without usable start", "title", entry.Title, "error", err)
		return Entry{}, false
	}

	offset := alarmOffset(comp)

	set, err := comp.RecurrenceSet(im.loc)
	if err != nil {
		im.log.Warnw("ignoring unreadable recurrence rule", "title", entry.Title, "error", err)
		set = nil
	}

	if set != nil {
		// The earliest occurrence whose alarm time is still ahead
		next := set.After(now.Add(-offset), false)
		if next.IsZero() {
			stats.past++
			return Entry{}, false
		}
		start = next
	}

	entry.Time = start.Add(offset).In(im.loc)
	if !entry.Time.After(now) {
		stats.past++
		return Entry{}, false
	}
	if entry.UID == "" {
		entry.UID = entry.Title + "-" + start.Format(time.RFC3339)
	}

	return entry, true
}

func (im *Importer) startTime(comp *ical.Component) (time.Time, error) {
	prop := comp.Props.Get(ical.PropDateTimeStart)
	if prop == nil {
		return time.Time{}, errors.New("no DTSTART")
	}

	loc := getTimezoneFromComponent(comp, im.loc)
	if t, err := prop.DateTime(loc); err == nil {
		return t, nil
	}

	formats := []string{
		"20060102T150405",
		"20060102T150405Z",
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, prop.Value, loc); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unable to parse datetime value: %s", prop.Value)
}

// alarmOffset returns the TRIGGER of the first VALARM that is relative to the
// event start, or zero.
func alarmOffset(comp *ical.Component) time.Duration {
	for _, child := range comp.Children {
		if child.Name != ical.CompAlarm {
			continue
		}
		trigger := child.Props.Get(ical.PropTrigger)
		if trigger == nil {
			continue
		}
		if related := trigger.Params.Get("RELATED"); related != "" && !strings.EqualFold(related, "START") {
			continue
		}
		if d, err := trigger.Duration(); err == nil {
			return d
		}
	}
	return 0
}
