package analysis

import (
	"sort"
	"time"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/normalize"
)

// DefaultWindowStart is the lower bound of every timeline.
var DefaultWindowStart = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Window bounds a timeline, both ends inclusive.
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) contains(t time.Time) bool {
	return !t.Before(w.Start) && !t.After(w.End)
}

// TimelineOptions control how stored date strings are read back.
type TimelineOptions struct {
	Window   Window
	Location *time.Location
	// WithDetails attaches the day's records to every entry.
	WithDetails bool
}

// BuildTimeline buckets messages and calls by calendar day. The result holds
// one entry per day present in either input, sorted ascending; a side with no
// records that day keeps zero counts.
func BuildTimeline(messages []models.Message, calls []models.CallLogEntry, opts TimelineOptions) []models.TimelineEntry {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	days := make(map[string]*models.TimelineEntry)
	bucket := func(date *string) *models.TimelineEntry {
		if date == nil {
			return nil
		}
		t, err := time.ParseInLocation(normalize.DateLayout, *date, loc)
		if err != nil || !opts.Window.contains(t) {
			return nil
		}
		key := t.Format(normalize.DayLayout)
		e, ok := days[key]
		if !ok {
			e = &models.TimelineEntry{Date: key}
			days[key] = e
		}
		return e
	}

	for _, m := range messages {
		e := bucket(m.Date)
		if e == nil {
			continue
		}
		e.TotalMessages++
		if m.IsSuspicious {
			e.SuspiciousMessages++
		}
		if opts.WithDetails {
			e.Messages = append(e.Messages, m)
		}
	}

	for _, c := range calls {
		e := bucket(c.Date)
		if e == nil {
			continue
		}
		e.TotalCalls++
		if c.Direction != nil {
			switch *c.Direction {
			case models.CallIncoming:
				e.IncomingCalls++
			case models.CallOutgoing:
				e.OutgoingCalls++
			case models.CallMissed:
				e.MissedCalls++
			}
		}
		if opts.WithDetails {
			e.CallLogs = append(e.CallLogs, c)
		}
	}

	out := make([]models.TimelineEntry, 0, len(days))
	for _, e := range days {
		out = append(out, *e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}
