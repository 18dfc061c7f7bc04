package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
)

const (
	msgAskReminderText = "💭 O que você quer que eu te lembre?"
	msgAskReminderDate = "📆 Quando devo te lembrar? (ex: 20/11 ou 20/11/2025)"
	msgBadReminderDate = "❌ Não consegui entender essa data.\nTente *20/11* ou *20/11/2025*."
)

// startReminder enters the reminder flow with whatever slots the upstream
// intent already filled. Whichever of {message, date, value} is missing
// determines the next question.
func (e *Engine) startReminder(ctx context.Context, user *domain.User, intent domain.Intent) error {
	message := strings.TrimSpace(intent.Message)
	expr := strings.TrimSpace(intent.DateExpr)
	amount := intent.Amount

	switch {
	case message != "" && expr != "" && amount != nil:
		return e.resolveReminderDate(ctx, user, message, expr, amount)

	case message != "" && expr != "":
		data := domain.ContextData{Text: message, DateExpr: expr}
		if err := e.contexts.Save(user.Phone, domain.StageReminderValue, data); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone,
			"💰 Você não informou o *valor*. Quer deixar *sem valor* ou informar agora? (ex: 50)")
		return nil

	case message != "":
		data := domain.ContextData{Text: message, Amount: amount}
		if err := e.contexts.Save(user.Phone, domain.StageReminderDate, data); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "📅 Quando você quer que eu te lembre disso?")
		return nil

	case expr != "":
		data := domain.ContextData{DateExpr: expr, Amount: amount}
		if err := e.contexts.Save(user.Phone, domain.StageReminderText, data); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, msgAskReminderText)
		return nil
	}

	if err := e.contexts.Save(user.Phone, domain.StageReminderText, domain.ContextData{Amount: amount}); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, msgAskReminderText)
	return nil
}

func (e *Engine) handleReminderText(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	message := strings.TrimSpace(text)
	if message == "" {
		e.sender.Send(ctx, user.Phone, msgAskReminderText)
		return nil
	}

	if data.DateExpr != "" {
		return e.resolveReminderDate(ctx, user, message, data.DateExpr, data.Amount)
	}

	next := domain.ContextData{Text: message, Amount: data.Amount}
	if err := e.contexts.Save(user.Phone, domain.StageReminderDate, next); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, msgAskReminderDate)
	return nil
}

func (e *Engine) handleReminderDate(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if data.Text == "" {
		if err := e.contexts.Save(user.Phone, domain.StageReminderText, domain.ContextData{}); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone,
			"⚠️ Não encontrei o texto do lembrete.\nVamos começar de novo? O que você quer lembrar?")
		return nil
	}
	return e.resolveReminderDate(ctx, user, data.Text, text, data.Amount)
}

func (e *Engine) handleReminderValue(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if data.Text == "" || data.DateExpr == "" {
		return e.restartFlow(ctx, user.Phone)
	}

	if isNoValue(text) {
		return e.resolveReminderDate(ctx, user, data.Text, data.DateExpr, nil)
	}

	amount, ok := extractAmount(text)
	if !ok || amount <= 0 {
		e.sender.Send(ctx, user.Phone,
			"❌ Não consegui entender o valor. Me manda só o número (ex: *160* ou *160,50*), ou responda *sem valor*.")
		return nil
	}
	return e.resolveReminderDate(ctx, user, data.Text, data.DateExpr, &amount)
}

// handleReminderMonth completes a date that arrived as a bare day of
// month. It accepts a full date expression (wins immediately) or a bare
// month to combine with the stored day; a combined date already past
// rolls to next year.
func (e *Engine) handleReminderMonth(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if data.Text == "" || data.Day == 0 {
		return e.restartFlow(ctx, user.Phone)
	}

	now := e.clock.Now()
	if due, ok := dates.ParseDate(now, text); ok {
		return e.createReminder(ctx, user, data.Text, due, data.Amount)
	}
	if due, ok := dates.CombineDayMonth(now, data.Day, text); ok {
		return e.createReminder(ctx, user, data.Text, due, data.Amount)
	}

	e.sender.Send(ctx, user.Phone,
		"❌ Não entendi o mês. Pode mandar só o mês (*fevereiro*) ou uma data completa (*10/02*).")
	return nil
}

// resolveReminderDate turns the date expression into a concrete date and
// persists the reminder, diverting to the month-complement stage when the
// expression is only a bare day of month.
func (e *Engine) resolveReminderDate(ctx context.Context, user *domain.User, message, expr string, amount *float64) error {
	now := e.clock.Now()

	if day, ok := dates.BareDay(expr); ok {
		data := domain.ContextData{Text: message, Day: day, Amount: amount}
		if err := e.contexts.Save(user.Phone, domain.StageReminderMonth, data); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone,
			fmt.Sprintf("📅 Dia %d de qual mês?", day))
		return nil
	}

	due, ok := dates.ParseDate(now, expr)
	if !ok {
		data := domain.ContextData{Text: message, Amount: amount}
		if err := e.contexts.Save(user.Phone, domain.StageReminderDate, data); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, msgBadReminderDate)
		return nil
	}

	return e.createReminder(ctx, user, message, due, amount)
}

func (e *Engine) createReminder(ctx context.Context, user *domain.User, message string, due time.Time, amount *float64) error {
	reminder := &domain.Reminder{
		ID:      uuid.NewString(),
		UserID:  user.ID,
		Message: message,
		Amount:  amount,
		DueAt:   due,
	}
	if err := e.reminders.Create(reminder); err != nil {
		return fmt.Errorf("failed to create reminder: %w", err)
	}
	if err := e.contexts.Clear(user.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}

	suffix := ""
	if amount != nil {
		suffix = fmt.Sprintf(" (R$ %s)", domain.FormatMoney(*amount))
	}
	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"🔔 Prontinho! Vou te lembrar: *%s* no dia *%s*%s.",
		message, domain.FormatDate(due), suffix))
	return nil
}

func isNoValue(text string) bool {
	switch dates.Normalize(text) {
	case "sem valor", "sem", "nao", "n", "nenhum", "pode deixar":
		return true
	}
	return false
}
