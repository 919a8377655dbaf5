package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

// Call directions.
const (
	CallIncoming = "incoming"
	CallOutgoing = "outgoing"
	CallMissed   = "missed"
	CallUnknown  = "unknown"
)

// CallLogEntry represents a call stored in the 'call_logs' table.
// Duration is kept only in its display form ("<m>m <s>s").
type CallLogEntry struct {
	ID        int64      `db:"id" json:"id,omitempty"`
	Number    string     `db:"number" json:"number"`
	Date      *string    `db:"date" json:"date"`
	Direction *string    `db:"direction" json:"direction"`
	Duration  *string    `db:"duration" json:"duration"`
	CreatedAt *time.Time `db:"created_at" json:"createdAt,omitempty"`
}

type CallLogList []CallLogEntry

func (l CallLogList) Value() (driver.Value, error) {
	if l == nil {
		l = CallLogList{}
	}
	return json.Marshal(l)
}

func (l *CallLogList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// CallStats holds direction counts over all persisted calls.
type CallStats struct {
	TotalCalls    int `db:"total_calls" json:"totalCalls"`
	IncomingCalls int `db:"incoming_calls" json:"incomingCalls"`
	OutgoingCalls int `db:"outgoing_calls" json:"outgoingCalls"`
	MissedCalls   int `db:"missed_calls" json:"missedCalls"`
}
