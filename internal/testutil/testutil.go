package testutil

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"ggfinance/internal/domain"
)

// NewTestLogger returns a no-op logger for tests.
func NewTestLogger() *zap.Logger {
	return zap.NewNop()
}

// FakeSender records outgoing messages instead of delivering them.
type FakeSender struct {
	mu   sync.Mutex
	Sent []SentMessage
}

type SentMessage struct {
	To   string
	Text string
}

func (s *FakeSender) Send(_ context.Context, to, text string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Sent = append(s.Sent, SentMessage{To: to, Text: text})
}

// Last returns the most recent message, or an empty one if nothing was sent.
func (s *FakeSender) Last() SentMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.Sent) == 0 {
		return SentMessage{}
	}
	return s.Sent[len(s.Sent)-1]
}

func (s *FakeSender) Texts() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Sent))
	for i, m := range s.Sent {
		out[i] = m.Text
	}
	return out
}

// FixedClock always reports the same instant.
type FixedClock struct {
	Time time.Time
}

func (c FixedClock) Now() time.Time {
	return c.Time
}

// NewTestUser creates a user for tests.
func NewTestUser() *domain.User {
	return &domain.User{
		ID:        "user-1",
		Phone:     "5511999990000",
		Name:      "Maria Silva",
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

// NewTestCategory creates a category for tests.
func NewTestCategory(userID, name string) *domain.Category {
	return &domain.Category{
		ID:     "cat-1",
		UserID: userID,
		Name:   name,
		Kind:   domain.KindExpense,
	}
}

// NewTestReminder creates a reminder for tests.
func NewTestReminder(userID string, dueAt time.Time) *domain.Reminder {
	return &domain.Reminder{
		ID:      "rem-1",
		UserID:  userID,
		Message: "pagar boleto",
		DueAt:   dueAt,
	}
}
