package domain

import "time"

// Reminder is a one-shot notification with an optional amount attached.
type Reminder struct {
	ID        string
	UserID    string
	Message   string
	Amount    *float64
	DueAt     time.Time
	Sent      bool
	CreatedAt time.Time
}
