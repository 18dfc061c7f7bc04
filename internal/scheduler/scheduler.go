// Package scheduler runs the periodic jobs: delivering due reminders and
// materializing due recurrences as transactions.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ggfinance/internal/domain"
	"ggfinance/internal/recurrence"
	"ggfinance/internal/repository"
	"ggfinance/internal/sender"
)

// quietUntilHour holds reminder delivery until this local hour, so nobody
// is pinged in the middle of the night. Due reminders accumulate and go
// out on the first tick after the window opens.
const quietUntilHour = 7

// Clock mirrors the engine's clock abstraction.
type Clock interface {
	Now() time.Time
}

// Scheduler owns the tick loop.
type Scheduler struct {
	users        repository.UserRepository
	reminders    repository.ReminderRepository
	transactions repository.TransactionRepository
	recurrences  repository.RecurrenceRepository
	sender       sender.Sender
	clock        Clock
	interval     time.Duration
	logger       *zap.Logger
}

func New(
	users repository.UserRepository,
	reminders repository.ReminderRepository,
	transactions repository.TransactionRepository,
	recurrences repository.RecurrenceRepository,
	snd sender.Sender,
	clock Clock,
	logger *zap.Logger,
) *Scheduler {
	return &Scheduler{
		users:        users,
		reminders:    reminders,
		transactions: transactions,
		recurrences:  recurrences,
		sender:       snd,
		clock:        clock,
		interval:     time.Minute,
		logger:       logger,
	}
}

// Run ticks until the context is cancelled.
func (s *Scheduler) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Tick(ctx)
		}
	}
}

// Tick runs both jobs once. Failures are logged and retried naturally on
// the next tick.
func (s *Scheduler) Tick(ctx context.Context) {
	if err := s.deliverReminders(ctx); err != nil {
		s.logger.Error("reminder delivery failed", zap.Error(err))
	}
	if err := s.chargeRecurrences(ctx); err != nil {
		s.logger.Error("recurrence charging failed", zap.Error(err))
	}
}

func (s *Scheduler) deliverReminders(ctx context.Context) error {
	now := s.clock.Now()
	if now.Hour() < quietUntilHour {
		return nil
	}

	due, err := s.reminders.ListDueUnsent(now)
	if err != nil {
		return fmt.Errorf("failed to list due reminders: %w", err)
	}

	for _, reminder := range due {
		user, err := s.users.FindByID(reminder.UserID)
		if err != nil {
			return fmt.Errorf("failed to load user: %w", err)
		}
		if user == nil {
			s.logger.Warn("reminder without user", zap.String("reminder_id", reminder.ID))
			continue
		}

		text := fmt.Sprintf("⏰ *Lembrete!*\n\n%s", reminder.Message)
		if reminder.Amount != nil {
			text += fmt.Sprintf("\n💰 Valor: R$ %s", domain.FormatMoney(*reminder.Amount))
		}
		s.sender.Send(ctx, user.Phone, text)

		if err := s.reminders.MarkSent(reminder.ID); err != nil {
			return fmt.Errorf("failed to mark reminder sent: %w", err)
		}
		s.logger.Info("reminder delivered", zap.String("reminder_id", reminder.ID))
	}
	return nil
}

// chargeRecurrences turns each due recurrence into a concluded
// transaction copied from its template and advances next_charge.
func (s *Scheduler) chargeRecurrences(ctx context.Context) error {
	now := s.clock.Now()

	due, err := s.recurrences.ListDue(now)
	if err != nil {
		return fmt.Errorf("failed to list due recurrences: %w", err)
	}

	for _, rec := range due {
		tx := &domain.Transaction{
			ID:          uuid.NewString(),
			UserID:      rec.UserID,
			Kind:        rec.Kind,
			Amount:      rec.Amount,
			Description: rec.Description,
			Date:        rec.NextCharge,
			Recurring:   true,
			Status:      domain.StatusDone,
		}
		if err := s.transactions.Create(tx); err != nil {
			return fmt.Errorf("failed to create recurring transaction: %w", err)
		}

		next := recurrence.Next(recurrence.Input{
			Frequency:      rec.Frequency,
			MonthlyRule:    rec.MonthlyRule,
			DayOfMonth:     rec.DayOfMonth,
			NthBusinessDay: rec.NthBusinessDay,
			Interval:       rec.Interval,
			Base:           now,
		})
		if err := s.recurrences.SetNextCharge(rec.ID, next); err != nil {
			return fmt.Errorf("failed to advance recurrence: %w", err)
		}

		if user, err := s.users.FindByID(rec.UserID); err == nil && user != nil {
			s.sender.Send(ctx, user.Phone, fmt.Sprintf(
				"🔁 Lancei sua recorrência: *%s* (R$ %s).\n📆 Próxima: *%s*",
				rec.Description, domain.FormatMoney(rec.Amount), domain.FormatDate(next)))
		}

		s.logger.Info("recurrence charged",
			zap.String("recurrence_id", rec.ID),
			zap.Time("next_charge", next))
	}
	return nil
}
