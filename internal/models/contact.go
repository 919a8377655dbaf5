package models

import "time"

// Contact is a phone-book entry; used as a number -> display name lookup.
type Contact struct {
	ID          int64      `db:"id" json:"id,omitempty"`
	DisplayName string     `db:"display_name" json:"display_name"`
	Number      *string    `db:"number" json:"number"`
	CreatedAt   *time.Time `db:"created_at" json:"createdAt,omitempty"`
}
