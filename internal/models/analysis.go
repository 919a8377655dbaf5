package models

import (
	"time"

	"github.com/lib/pq"
)

// TimelineEntry aggregates one calendar day of messages and calls.
type TimelineEntry struct {
	Date               string `db:"date" json:"date"` // YYYY-MM-DD
	TotalMessages      int    `db:"total_messages" json:"totalMessages"`
	SuspiciousMessages int    `db:"suspicious_messages" json:"suspiciousMessages"`
	TotalCalls         int    `db:"total_calls" json:"totalCalls"`
	IncomingCalls      int    `db:"incoming_calls" json:"incomingCalls"`
	OutgoingCalls      int    `db:"outgoing_calls" json:"outgoingCalls"`
	MissedCalls        int    `db:"missed_calls" json:"missedCalls"`

	Messages []Message      `db:"-" json:"messages,omitempty"`
	CallLogs []CallLogEntry `db:"-" json:"callLogs,omitempty"`
}

// CorrelationEntry joins the messages of one address with the calls to the same number.
type CorrelationEntry struct {
	Number   string      `db:"number" json:"number"`
	SMSCount int         `db:"sms_count" json:"smsCount"`
	Messages MessageList `db:"messages" json:"messages,omitempty"`
	CallLogs CallLogList `db:"call_logs" json:"callLogs"`
}

// URLFinding is a message body that carries at least one http(s) URL.
type URLFinding struct {
	Sender string         `db:"sender" json:"sender"`
	Date   *string        `db:"date" json:"date"`
	Body   string         `db:"body" json:"body"`
	URLs   pq.StringArray `db:"urls" json:"urls"`
}

// URLAnalysis partitions URL-bearing messages by spam-domain match.
type URLAnalysis struct {
	SpamURLs    []URLFinding `json:"spamUrls"`
	NonSpamURLs []URLFinding `json:"nonSpamUrls"`
}

// ConnectionDetail records which investigator connected to which device.
type ConnectionDetail struct {
	ID             int64     `db:"id" json:"id"`
	DeviceName     string    `db:"device_name" json:"deviceName"`
	ConnectorID    string    `db:"connector_id" json:"connectorId"`
	AdditionalInfo *string   `db:"additional_info" json:"additionalInfo,omitempty"`
	InvestigatorID string    `db:"investigator_id" json:"investigatorId"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt      time.Time `db:"updated_at" json:"updatedAt"`
}

// SearchResult holds every record matching a keyword search.
type SearchResult struct {
	Messages []Message      `json:"sms"`
	CallLogs []CallLogEntry `json:"callLog"`
	Contacts []Contact      `json:"contacts"`
}
