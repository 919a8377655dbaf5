package models

import "time"

// ShortReport carries counts only.
type ShortReport struct {
	DeviceName    string `json:"deviceName"`
	TotalContacts int    `json:"totalContacts"`
	MessageStats  `json:"smsStats"`
	CallStats     `json:"callStats"`
}

// Report is an immutable snapshot of a short report, created on explicit submission.
type Report struct {
	ID             string  `db:"id" json:"id"`
	CaseNumber     string  `db:"case_number" json:"caseNumber"`
	Remark         string  `db:"remark" json:"remark"`
	DeviceName     string  `db:"device_name" json:"deviceName"`
	InvestigatorID *string `db:"investigator_id" json:"investigatorId,omitempty"`
	TotalContacts  int     `db:"total_contacts" json:"totalContacts"`
	MessageStats   `json:"smsStats"`
	CallStats      `json:"callStats"`
	CreatedAt      time.Time `db:"created_at" json:"createdAt"`
}

// ComprehensiveReport is recomputed on every request and never persisted.
type ComprehensiveReport struct {
	DeviceName      string             `json:"deviceName"`
	Messages        []Message          `json:"smsData"`
	CallLogs        []CallLogEntry     `json:"callLogs"`
	Contacts        []Contact          `json:"contacts"`
	MessageStats    MessageStats       `json:"smsStats"`
	CallStats       CallStats          `json:"callStats"`
	Timeline        []TimelineEntry    `json:"timelineAnalysis"`
	MessagesWithURL []Message          `json:"smsWithUrls"`
	Correlation     []CorrelationEntry `json:"dataCorrelationResults"`
	GeneratedAt     time.Time          `json:"generatedAt"`
}
