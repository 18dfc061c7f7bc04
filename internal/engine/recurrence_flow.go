package engine

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
	"ggfinance/internal/recurrence"
)

var yesTokens = map[string]bool{
	"sim": true, "s": true, "confirmo": true, "pode": true,
	"ok": true, "fechado": true, "isso": true,
}

var noTokens = map[string]bool{
	"nao": true, "n": true, "cancela": true, "cancelar": true, "negativo": true,
}

// startRecurrence enters the recurrence flow. Description and frequency
// are mandatory to proceed at all; a missing value detours through the
// value stage, and a monthly frequency must resolve its sub-rule before
// the confirmation summary goes out.
func (e *Engine) startRecurrence(ctx context.Context, user *domain.User, intent domain.Intent) error {
	description := strings.TrimSpace(intent.Description)
	if description == "" {
		e.sender.Send(ctx, user.Phone,
			"❌ Não entendi o que você quer tornar recorrente. Ex:\n"+
				"• \"pagar academia todo mês dia 10 130\"\n"+
				"• \"recebo salário todo mês dia 1 3200\"")
		return nil
	}
	if !intent.Frequency.Valid() {
		e.sender.Send(ctx, user.Phone,
			"❌ Não consegui identificar a frequência (mensal, diária, semanal...).")
		return nil
	}

	kind := intent.Kind
	if kind == "" {
		kind = domain.KindExpense
	}

	draft := domain.ContextData{
		Description: description,
		Kind:        string(kind),
		Frequency:   string(intent.Frequency),
		MonthlyRule: string(intent.MonthlyRule),
		Amount:      intent.Amount,
	}
	if intent.DayOfMonth != nil {
		draft.DayOfMonth = *intent.DayOfMonth
	}
	if intent.NthBusinessDay != nil {
		draft.NthBusinessDay = *intent.NthBusinessDay
	}

	if draft.Amount == nil {
		if err := e.contexts.Save(user.Phone, domain.StageRecurrenceValue, draft); err != nil {
			return fmt.Errorf("failed to save context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, fmt.Sprintf(
			"💰 Qual o valor dessa %s recorrente? Ex: \"3200\"", kind))
		return nil
	}

	return e.finishRecurrenceSetup(ctx, user, draft)
}

func (e *Engine) handleRecurrenceValue(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	amount, ok := extractAmount(text)
	if !ok || amount <= 0 {
		e.sender.Send(ctx, user.Phone,
			"❌ Não consegui entender o valor. Me manda só o número. Ex: *160* ou *160,50*")
		return nil
	}

	if data.Description == "" || !domain.Frequency(data.Frequency).Valid() {
		return e.restartFlow(ctx, user.Phone)
	}

	data.Amount = &amount
	return e.finishRecurrenceSetup(ctx, user, data)
}

// finishRecurrenceSetup validates the monthly sub-rule, computes the next
// occurrence and parks the draft in the confirmation stage.
func (e *Engine) finishRecurrenceSetup(ctx context.Context, user *domain.User, data domain.ContextData) error {
	freq := domain.Frequency(data.Frequency)

	if freq == domain.FrequencyMonthly {
		rule := domain.MonthlyRule(data.MonthlyRule)
		if data.NthBusinessDay != 0 {
			rule = domain.MonthlyRuleNthBusinessDay
		}
		if rule == "" && data.DayOfMonth != 0 {
			rule = domain.MonthlyRuleFixedDay
		}

		switch rule {
		case domain.MonthlyRuleFixedDay:
			if data.DayOfMonth < 1 || data.DayOfMonth > 31 {
				return e.cancelRecurrenceSetup(ctx, user,
					"📅 Qual dia do mês? (1 a 31). Ex: \"todo dia 10 do mês\" ou \"todo mês dia 1\"")
			}
		case domain.MonthlyRuleNthBusinessDay:
			if data.NthBusinessDay < 1 || data.NthBusinessDay > 23 {
				return e.cancelRecurrenceSetup(ctx, user,
					"📅 Qual dia útil do mês? Ex: \"5º dia útil\" (use um número de 1 a 23)")
			}
		default:
			return e.cancelRecurrenceSetup(ctx, user,
				"📅 Essa recorrência mensal é em *dia fixo* ou *dia útil*?\n\n"+
					"Responda:\n• \"dia 1\" (fixo)\n• \"5º dia útil\"")
		}
		data.MonthlyRule = string(rule)
	}

	next := recurrence.Next(recurrenceInput(data, e.clock.Now()))
	data.NextCharge = &next

	if err := e.contexts.Save(user.Phone, domain.StageRecurrenceConfirm, data); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"Beleza. Vou criar essa recorrência de *%s*:\n\n"+
			"📌 *%s*\n"+
			"💰 *R$ %s*\n"+
			"⏳ *%s*%s\n"+
			"📆 Próxima cobrança: *%s*\n\n"+
			"Confirma? (Sim/Não)",
		data.Kind, data.Description, domain.FormatMoney(*data.Amount),
		strings.ToUpper(data.Frequency), monthlyRuleSuffix(data),
		domain.FormatDate(next)))
	return nil
}

func (e *Engine) handleRecurrenceConfirm(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	norm := dates.Normalize(text)

	if noTokens[norm] {
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "Tranquilo, cancelei a criação da recorrência ✅")
		return nil
	}
	if !yesTokens[norm] {
		e.sender.Send(ctx, user.Phone, "Só pra confirmar: responde com *Sim* ou *Não* 🙂")
		return nil
	}

	if data.Description == "" || !domain.Frequency(data.Frequency).Valid() ||
		data.Amount == nil || data.NextCharge == nil {
		return e.restartFlow(ctx, user.Phone)
	}

	if err := e.contexts.Clear(user.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}

	kind := domain.TransactionKind(data.Kind)
	if kind == "" {
		kind = domain.KindExpense
	}

	template := &domain.Transaction{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		Kind:         kind,
		Amount:       *data.Amount,
		Description:  data.Description,
		Date:         e.clock.Now(),
		ScheduledFor: data.NextCharge,
		Recurring:    true,
		Status:       domain.StatusPending,
	}
	if err := e.transactions.Create(template); err != nil {
		return fmt.Errorf("failed to create template transaction: %w", err)
	}

	rec := &domain.Recurrence{
		ID:            uuid.NewString(),
		UserID:        user.ID,
		TransactionID: template.ID,
		Frequency:     domain.Frequency(data.Frequency),
		Interval:      1,
		NextCharge:    *data.NextCharge,
	}
	if data.MonthlyRule != "" {
		rule := domain.MonthlyRule(data.MonthlyRule)
		rec.MonthlyRule = &rule
	}
	if data.DayOfMonth != 0 {
		day := data.DayOfMonth
		rec.DayOfMonth = &day
	}
	if data.NthBusinessDay != 0 {
		n := data.NthBusinessDay
		rec.NthBusinessDay = &n
	}
	if err := e.recurrences.Create(rec); err != nil {
		return fmt.Errorf("failed to create recurrence: %w", err)
	}

	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"🔁 Recorrência criada!\n\n"+
			"📌 *%s*\n"+
			"📌 Tipo: *%s*\n"+
			"💰 Valor: *R$ %s*\n"+
			"⏳ Frequência: *%s*%s\n"+
			"📆 Próxima cobrança: *%s*",
		data.Description, kind, domain.FormatMoney(*data.Amount),
		strings.ToUpper(data.Frequency), monthlyRuleSuffix(data),
		domain.FormatDate(*data.NextCharge)))
	return nil
}

// cancelRecurrenceSetup drops whatever draft is parked in the context and
// sends a guidance message, so the user restarts with a fuller phrase.
func (e *Engine) cancelRecurrenceSetup(ctx context.Context, user *domain.User, guidance string) error {
	if err := e.contexts.Clear(user.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, guidance)
	return nil
}

func recurrenceInput(data domain.ContextData, base time.Time) recurrence.Input {
	in := recurrence.Input{
		Frequency: domain.Frequency(data.Frequency),
		Interval:  1,
		Base:      base,
	}
	if data.MonthlyRule != "" {
		rule := domain.MonthlyRule(data.MonthlyRule)
		in.MonthlyRule = &rule
	}
	if data.DayOfMonth != 0 {
		day := data.DayOfMonth
		in.DayOfMonth = &day
	}
	if data.NthBusinessDay != 0 {
		n := data.NthBusinessDay
		in.NthBusinessDay = &n
	}
	return in
}

func monthlyRuleSuffix(data domain.ContextData) string {
	if domain.Frequency(data.Frequency) != domain.FrequencyMonthly {
		return ""
	}
	if domain.MonthlyRule(data.MonthlyRule) == domain.MonthlyRuleNthBusinessDay {
		return fmt.Sprintf(" (no %dº dia útil)", data.NthBusinessDay)
	}
	return fmt.Sprintf(" (dia %d)", data.DayOfMonth)
}
