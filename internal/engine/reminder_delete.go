package engine

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
)

// startReminderDeletion finds the reminder the user wants gone. A unique
// match is deleted on the spot; anything ambiguous goes through a
// numbered list and a confirmation.
func (e *Engine) startReminderDeletion(ctx context.Context, user *domain.User, message, expr string) error {
	message = strings.TrimSpace(message)
	now := e.clock.Now()

	var candidates []domain.Reminder
	var err error

	if message != "" && expr != "" {
		if due, ok := dates.ParseDate(now, expr); ok {
			candidates, err = e.reminders.SearchByTextAndDate(user.ID, message, due)
			if err != nil {
				return fmt.Errorf("failed to search reminders: %w", err)
			}
		}
	}
	if len(candidates) == 0 && message != "" {
		candidates, err = e.reminders.SearchByText(user.ID, message)
		if err != nil {
			return fmt.Errorf("failed to search reminders: %w", err)
		}
	}

	if len(candidates) == 1 {
		if err := e.reminders.Delete(candidates[0].ID); err != nil {
			return fmt.Errorf("failed to delete reminder: %w", err)
		}
		e.sender.Send(ctx, user.Phone, fmt.Sprintf(
			"🗑 Lembrete excluído:\n\"%s\" – %s",
			candidates[0].Message, domain.FormatDate(candidates[0].DueAt)))
		return nil
	}

	header := "📋 *Encontrei vários lembretes parecidos:*\n\n"
	if len(candidates) == 0 {
		candidates, err = e.reminders.ListUpcoming(user.ID, now)
		if err != nil {
			return fmt.Errorf("failed to list reminders: %w", err)
		}
		if len(candidates) == 0 {
			e.sender.Send(ctx, user.Phone, "⚠️ Você não tem lembretes futuros para excluir.")
			return nil
		}
		header = "❌ Não encontrei esse lembrete.\n\n📋 *Seus lembretes:*\n\n"
	}

	ids := make([]string, len(candidates))
	for i, r := range candidates {
		ids[i] = r.ID
	}
	data := domain.ContextData{ReminderIDs: ids}
	if err := e.contexts.Save(user.Phone, domain.StageDeleteReminderChoose, data); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	e.sender.Send(ctx, user.Phone,
		header+formatReminderChoices(candidates)+"Envie o *número* do lembrete que deseja excluir.")
	return nil
}

func (e *Engine) handleDeleteReminderChoose(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if len(data.ReminderIDs) == 0 {
		return e.restartFlow(ctx, user.Phone)
	}

	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || index < 1 || index > len(data.ReminderIDs) {
		e.sender.Send(ctx, user.Phone, "Opção inválida. Envie apenas o número da lista.")
		return nil
	}

	reminder, err := e.reminders.FindByID(data.ReminderIDs[index-1])
	if err != nil {
		return fmt.Errorf("failed to load reminder: %w", err)
	}
	if reminder == nil {
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "⚠️ Esse lembrete já não existe mais.")
		return nil
	}

	next := domain.ContextData{ReminderID: reminder.ID}
	if err := e.contexts.Save(user.Phone, domain.StageDeleteReminderConfirm, next); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"Confirmar exclusão?\n\n📝 %s\n📅 %s\n\nResponda *sim* ou *não*.",
		reminder.Message, domain.FormatDate(reminder.DueAt)))
	return nil
}

func (e *Engine) handleDeleteReminderConfirm(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if data.ReminderID == "" {
		return e.restartFlow(ctx, user.Phone)
	}

	if !strings.HasPrefix(dates.Normalize(text), "s") {
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "Operação cancelada.")
		return nil
	}

	if err := e.reminders.Delete(data.ReminderID); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	if err := e.contexts.Clear(user.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, "🗑 Lembrete excluído com sucesso!")
	return nil
}

func formatReminderChoices(reminders []domain.Reminder) string {
	var b strings.Builder
	for i, r := range reminders {
		fmt.Fprintf(&b, "(%d) %s\n📅 %s\n", i+1, r.Message, domain.FormatDate(r.DueAt))
		if r.Amount != nil {
			fmt.Fprintf(&b, "💰 R$ %s\n", domain.FormatMoney(*r.Amount))
		}
		b.WriteString("\n")
	}
	return b.String()
}
