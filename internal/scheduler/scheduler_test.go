package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ggfinance/internal/domain"
	"ggfinance/internal/testutil"
)

type fixture struct {
	users        *testutil.MockUserRepository
	reminders    *testutil.MockReminderRepository
	transactions *testutil.MockTransactionRepository
	recurrences  *testutil.MockRecurrenceRepository
	sender       *testutil.FakeSender
}

func newScheduler(now time.Time) (*Scheduler, *fixture) {
	f := &fixture{
		users:        new(testutil.MockUserRepository),
		reminders:    new(testutil.MockReminderRepository),
		transactions: new(testutil.MockTransactionRepository),
		recurrences:  new(testutil.MockRecurrenceRepository),
		sender:       new(testutil.FakeSender),
	}
	s := New(f.users, f.reminders, f.transactions, f.recurrences, f.sender,
		testutil.FixedClock{Time: now}, testutil.NewTestLogger())
	return s, f
}

func TestTick_DeliversDueReminders(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	s, f := newScheduler(now)

	user := testutil.NewTestUser()
	amount := 160.0
	f.reminders.On("ListDueUnsent", now).Return([]domain.Reminder{
		{ID: "rem-1", UserID: user.ID, Message: "pagar boleto", Amount: &amount, DueAt: now.Add(-time.Hour)},
	}, nil)
	f.users.On("FindByID", user.ID).Return(user, nil)
	f.reminders.On("MarkSent", "rem-1").Return(nil)
	f.recurrences.On("ListDue", now).Return([]domain.RecurrenceWithTemplate{}, nil)

	s.Tick(context.Background())

	require.Len(t, f.sender.Sent, 1)
	assert.Equal(t, user.Phone, f.sender.Sent[0].To)
	assert.Contains(t, f.sender.Sent[0].Text, "Lembrete!")
	assert.Contains(t, f.sender.Sent[0].Text, "pagar boleto")
	assert.Contains(t, f.sender.Sent[0].Text, "160,00")
	f.reminders.AssertExpectations(t)
}

func TestTick_HoldsRemindersDuringQuietHours(t *testing.T) {
	now := time.Date(2024, time.June, 10, 5, 30, 0, 0, time.UTC)
	s, f := newScheduler(now)

	f.recurrences.On("ListDue", now).Return([]domain.RecurrenceWithTemplate{}, nil)

	s.Tick(context.Background())

	assert.Empty(t, f.sender.Sent)
	f.reminders.AssertNotCalled(t, "ListDueUnsent", mock.Anything)
}

func TestTick_SkipsReminderWithoutUser(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	s, f := newScheduler(now)

	f.reminders.On("ListDueUnsent", now).Return([]domain.Reminder{
		{ID: "rem-1", UserID: "gone", Message: "pagar boleto", DueAt: now},
	}, nil)
	f.users.On("FindByID", "gone").Return(nil, nil)
	f.recurrences.On("ListDue", now).Return([]domain.RecurrenceWithTemplate{}, nil)

	s.Tick(context.Background())

	assert.Empty(t, f.sender.Sent)
	f.reminders.AssertNotCalled(t, "MarkSent", mock.Anything)
}

func TestTick_ChargesDueRecurrence(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	s, f := newScheduler(now)

	user := testutil.NewTestUser()
	day := 10
	rule := domain.MonthlyRuleFixedDay
	charge := time.Date(2024, time.June, 10, 0, 0, 0, 0, time.UTC)

	f.reminders.On("ListDueUnsent", now).Return([]domain.Reminder{}, nil)
	f.recurrences.On("ListDue", now).Return([]domain.RecurrenceWithTemplate{
		{
			Recurrence: domain.Recurrence{
				ID:          "rec-1",
				UserID:      user.ID,
				Frequency:   domain.FrequencyMonthly,
				MonthlyRule: &rule,
				DayOfMonth:  &day,
				Interval:    1,
				NextCharge:  charge,
			},
			Description: "academia",
			Amount:      130.0,
			Kind:        domain.KindExpense,
		},
	}, nil)
	f.transactions.On("Create", mock.MatchedBy(func(tx *domain.Transaction) bool {
		return tx.UserID == user.ID &&
			tx.Kind == domain.KindExpense &&
			tx.Amount == 130.0 &&
			tx.Status == domain.StatusDone &&
			tx.Recurring &&
			tx.Date.Equal(charge)
	})).Return(nil)
	f.recurrences.On("SetNextCharge", "rec-1",
		time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)).Return(nil)
	f.users.On("FindByID", user.ID).Return(user, nil)

	s.Tick(context.Background())

	require.Len(t, f.sender.Sent, 1)
	assert.Contains(t, f.sender.Sent[0].Text, "Lancei sua recorrência")
	assert.Contains(t, f.sender.Sent[0].Text, "10/07/2024")
	f.transactions.AssertExpectations(t)
	f.recurrences.AssertExpectations(t)
}

func TestTick_RepositoryErrorDoesNotPanic(t *testing.T) {
	now := time.Date(2024, time.June, 10, 9, 0, 0, 0, time.UTC)
	s, f := newScheduler(now)

	f.reminders.On("ListDueUnsent", now).Return(nil, assert.AnError)
	f.recurrences.On("ListDue", now).Return(nil, assert.AnError)

	s.Tick(context.Background())

	assert.Empty(t, f.sender.Sent)
}
