package domain

import "time"

// User represents a registered assistant user, keyed by WhatsApp chat id.
type User struct {
	ID        string
	Phone     string
	Name      string
	CreatedAt time.Time
}

// FirstName returns the first word of the user's name, for greetings.
func (u *User) FirstName() string {
	for i, r := range u.Name {
		if r == ' ' {
			return u.Name[:i]
		}
	}
	return u.Name
}
