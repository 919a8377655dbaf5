package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Category is the single risk label assigned to a message.
type Category string

const (
	CategoryFraud             Category = "fraud"
	CategoryCriminal          Category = "criminal"
	CategoryCyberbullying     Category = "cyberbullying"
	CategoryThreat            Category = "threat"
	CategoryNegativeSentiment Category = "negative_sentiment"
	CategoryNormal            Category = "normal"
)

// Message directions.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// Message represents an SMS stored in the 'messages' table of a device schema.
type Message struct {
	ID             int64      `db:"id" json:"id,omitempty"`
	Address        string     `db:"address" json:"address"`
	Date           *string    `db:"date" json:"date"`           // YYYY-MM-DD HH:mm:ss
	Direction      *string    `db:"direction" json:"direction"` // "sent" or "received"
	Body           *string    `db:"body" json:"body"`
	IsSuspicious   bool       `db:"is_suspicious" json:"isSuspicious"`
	Category       Category   `db:"category" json:"category"`
	SentimentEmoji string     `db:"sentiment_emoji" json:"sentimentEmoji"`
	ContactName    *string    `db:"contact_name" json:"contactName"`
	CreatedAt      *time.Time `db:"created_at" json:"createdAt,omitempty"`
}

// MessageList is stored as JSONB inside correlation rows.
type MessageList []Message

func (l MessageList) Value() (driver.Value, error) {
	if l == nil {
		l = MessageList{}
	}
	return json.Marshal(l)
}

func (l *MessageList) Scan(src interface{}) error {
	return scanJSON(src, l)
}

// MessageStats holds per-category counts over all persisted messages.
type MessageStats struct {
	TotalMessages      int `db:"total_messages" json:"totalMessages"`
	SuspiciousMessages int `db:"suspicious_messages" json:"suspiciousMessages"`
	Fraud              int `db:"fraud" json:"fraud"`
	Criminal           int `db:"criminal" json:"criminal"`
	Cyberbullying      int `db:"cyberbullying" json:"cyberbullying"`
	Threat             int `db:"threat" json:"threat"`
	NegativeSentiment  int `db:"negative_sentiment" json:"negative_sentiment"`
}

// AddressCount is one row of the per-address message statistics.
type AddressCount struct {
	Address       string `db:"address" json:"address"`
	TotalMessages int    `db:"total_messages" json:"totalMessages"`
}

func scanJSON(src interface{}, dst interface{}) error {
	switch v := src.(type) {
	case nil:
		return nil
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	default:
		return errors.New("unsupported JSON column type")
	}
}
