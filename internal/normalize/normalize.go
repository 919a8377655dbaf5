// Package normalize converts raw content-provider fields into their canonical forms.
package normalize

import (
	"fmt"
	"strconv"
	"time"

	"github.com/RanaNomiRana/backend-afa/internal/models"
	"github.com/RanaNomiRana/backend-afa/internal/parser"
)

// DateLayout is the canonical YYYY-MM-DD HH:mm:ss form of every stored date.
const DateLayout = "2006-01-02 15:04:05"

// DayLayout is the calendar-day key used by timelines.
const DayLayout = "2006-01-02"

// FormatTimestamp interprets raw as epoch milliseconds and formats it in loc.
func FormatTimestamp(raw string, loc *time.Location) (string, bool) {
	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return "", false
	}
	return time.UnixMilli(ms).In(loc).Format(DateLayout), true
}

// MessageDirection maps the SMS type code: "1" is received, anything else sent.
func MessageDirection(code string) string {
	if code == "1" {
		return models.DirectionReceived
	}
	return models.DirectionSent
}

// CallDirection maps the call-log type code.
func CallDirection(code string) string {
	switch code {
	case "1":
		return models.CallIncoming
	case "2":
		return models.CallOutgoing
	case "3":
		return models.CallMissed
	default:
		return models.CallUnknown
	}
}

// FormatDuration renders whole seconds as "<m>m <s>s".
func FormatDuration(seconds int64) string {
	return fmt.Sprintf("%dm %ds", seconds/60, seconds%60)
}

// Normalizer builds typed records from raw ones. Dates are rendered in Location.
type Normalizer struct {
	Location *time.Location
}

func New(loc *time.Location) *Normalizer {
	if loc == nil {
		loc = time.Local
	}
	return &Normalizer{Location: loc}
}

// Message builds an unclassified message. ok is false when the address is missing.
func (n *Normalizer) Message(raw parser.RawRecord) (models.Message, bool) {
	address, ok := raw.Get("address")
	if !ok {
		return models.Message{}, false
	}
	msg := models.Message{Address: address}
	if code, ok := raw.Get("type"); ok {
		dir := MessageDirection(code)
		msg.Direction = &dir
	}
	msg.Date = n.date(raw)
	if body, ok := raw.Get("body"); ok {
		msg.Body = &body
	}
	return msg, true
}

// CallLog builds a call-log entry. ok is false when the number is missing.
func (n *Normalizer) CallLog(raw parser.RawRecord) (models.CallLogEntry, bool) {
	number, ok := raw.Get("number")
	if !ok {
		return models.CallLogEntry{}, false
	}
	entry := models.CallLogEntry{Number: number}
	if code, ok := raw.Get("type"); ok {
		dir := CallDirection(code)
		entry.Direction = &dir
	}
	entry.Date = n.date(raw)
	if d, ok := raw.Get("duration"); ok {
		if secs, err := strconv.ParseInt(d, 10, 64); err == nil {
			formatted := FormatDuration(secs)
			entry.Duration = &formatted
		}
	}
	return entry, true
}

// Contact builds a contact. ok is false when the display name is missing.
func (n *Normalizer) Contact(raw parser.RawRecord) (models.Contact, bool) {
	name, ok := raw.Get("display_name")
	if !ok {
		return models.Contact{}, false
	}
	c := models.Contact{DisplayName: name}
	if number, ok := raw.Get("number"); ok {
		c.Number = &number
	}
	return c, true
}

func (n *Normalizer) date(raw parser.RawRecord) *string {
	v, ok := raw.Get("date")
	if !ok {
		return nil
	}
	formatted, ok := FormatTimestamp(v, n.Location)
	if !ok {
		return nil
	}
	return &formatted
}
