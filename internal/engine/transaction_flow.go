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

// recordTransaction persists one income or expense coming straight from
// an intent. A scheduled date makes it pending; otherwise it is concluded
// on the spot.
func (e *Engine) recordTransaction(ctx context.Context, user *domain.User, kind domain.TransactionKind, intent domain.Intent) error {
	if intent.Amount == nil || *intent.Amount <= 0 {
		e.sender.Send(ctx, user.Phone,
			"❌ Valor inválido. Digite algo como 25, 100, 350,90...\nExemplo: *300 mercado*")
		return nil
	}

	category, err := e.resolveCategory(user.ID, kind, intent.Category)
	if err != nil {
		return err
	}

	var scheduled *time.Time
	if expr := strings.TrimSpace(intent.ScheduledFor); expr != "" {
		due, ok := dates.ParseDate(e.clock.Now(), expr)
		if !ok {
			e.sender.Send(ctx, user.Phone,
				"📅 Não consegui entender a data que você informou.\n"+
					"Mande novamente no formato *dd/mm/aaaa*.")
			return nil
		}
		scheduled = &due
	}

	status := domain.StatusDone
	if scheduled != nil {
		status = domain.StatusPending
	}

	tx := &domain.Transaction{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		CategoryID:   &category.ID,
		Kind:         kind,
		Amount:       *intent.Amount,
		Description:  strings.TrimSpace(intent.Description),
		Date:         e.clock.Now(),
		ScheduledFor: scheduled,
		Status:       status,
	}
	if err := e.transactions.Create(tx); err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}

	description := tx.Description
	if description == "" {
		description = "Sem descrição"
	}

	if scheduled != nil {
		title := "📅 *Despesa agendada!*"
		if kind == domain.KindIncome {
			title = "📅 *Receita agendada!*"
		}
		e.sender.Send(ctx, user.Phone, fmt.Sprintf(
			"%s\n📝 *Descrição*: %s\n🏷 *Categoria*: %s\n💰 *Valor*: R$ %s\n🔔 Para: *%s*",
			title, description, category.Name,
			domain.FormatMoney(tx.Amount), domain.FormatDate(*scheduled)))
		return nil
	}

	title := "💸 *Despesa registrada!*"
	if kind == domain.KindIncome {
		title = "✅ *Receita registrada!*"
	}
	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"%s\n📝 *Descrição*: %s\n🏷 *Categoria*: %s\n💰 *Valor*: R$ %s",
		title, description, category.Name, domain.FormatMoney(tx.Amount)))
	return nil
}

// resolveCategory finds the named category or creates it, falling back to
// the per-kind default when the intent carried no name.
func (e *Engine) resolveCategory(userID string, kind domain.TransactionKind, name string) (*domain.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		name = "Outras despesas"
		if kind == domain.KindIncome {
			name = "Outras receitas"
		}
	}

	existing, err := e.categories.FindByName(userID, name)
	if err != nil {
		return nil, fmt.Errorf("failed to look up category: %w", err)
	}
	if existing != nil {
		return existing, nil
	}

	category := &domain.Category{
		ID:     uuid.NewString(),
		UserID: userID,
		Name:   name,
		Kind:   kind,
	}
	if err := e.categories.Create(category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return category, nil
}

func (e *Engine) startTransactionEdit(ctx context.Context, user *domain.User, id string) error {
	if strings.TrimSpace(id) != "" {
		return e.selectTransactionForEdit(ctx, user, strings.TrimSpace(id))
	}
	if err := e.contexts.Save(user.Phone, domain.StageEditTransactionID, domain.ContextData{}); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, "✏️ Informe o ID da transação que deseja editar.")
	return nil
}

func (e *Engine) handleEditTransactionID(ctx context.Context, user *domain.User, text string) error {
	return e.selectTransactionForEdit(ctx, user, strings.TrimSpace(text))
}

func (e *Engine) selectTransactionForEdit(ctx context.Context, user *domain.User, id string) error {
	tx, err := e.transactions.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}
	if tx == nil || tx.UserID != user.ID {
		e.sender.Send(ctx, user.Phone, "❌ Transação não encontrada.")
		return nil
	}

	data := domain.ContextData{TransactionID: tx.ID}
	if err := e.contexts.Save(user.Phone, domain.StageEditTransactionField, data); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone,
		"O que deseja editar?\n1️⃣ Valor\n2️⃣ Descrição\n\n"+
			"Responda com a opção e o novo conteúdo. Ex: *1 250* ou *2 mercado do mês*")
	return nil
}

func (e *Engine) handleEditTransactionField(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if data.TransactionID == "" {
		return e.restartFlow(ctx, user.Phone)
	}

	option, rest, _ := strings.Cut(strings.TrimSpace(text), " ")
	rest = strings.TrimSpace(rest)

	switch option {
	case "1":
		amount, ok := extractAmount(rest)
		if !ok || amount <= 0 {
			e.sender.Send(ctx, user.Phone, "❌ Valor inválido. Ex: *1 250* ou *1 250,90*")
			return nil
		}
		if err := e.transactions.UpdateAmount(data.TransactionID, amount); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "✔ Valor atualizado!")
		return nil

	case "2":
		if rest == "" {
			e.sender.Send(ctx, user.Phone, "✏️ Me manda a nova descrição. Ex: *2 mercado do mês*")
			return nil
		}
		if err := e.transactions.UpdateDescription(data.TransactionID, rest); err != nil {
			return fmt.Errorf("failed to update transaction: %w", err)
		}
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "✔ Descrição atualizada!")
		return nil
	}

	e.sender.Send(ctx, user.Phone,
		"Escolha 1 ou 2, seguido do novo conteúdo. Ex: *1 250* ou *2 mercado do mês*")
	return nil
}

func (e *Engine) startTransactionDelete(ctx context.Context, user *domain.User, id string) error {
	if strings.TrimSpace(id) != "" {
		return e.confirmTransactionDelete(ctx, user, strings.TrimSpace(id))
	}
	if err := e.contexts.Save(user.Phone, domain.StageDeleteTransactionID, domain.ContextData{}); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, "🗑 Envie o ID da transação que deseja excluir.")
	return nil
}

func (e *Engine) handleDeleteTransactionID(ctx context.Context, user *domain.User, text string) error {
	return e.confirmTransactionDelete(ctx, user, strings.TrimSpace(text))
}

func (e *Engine) confirmTransactionDelete(ctx context.Context, user *domain.User, id string) error {
	tx, err := e.transactions.FindByID(id)
	if err != nil {
		return fmt.Errorf("failed to load transaction: %w", err)
	}
	if tx == nil || tx.UserID != user.ID {
		e.sender.Send(ctx, user.Phone, "❌ Transação não encontrada.")
		return nil
	}

	data := domain.ContextData{TransactionID: tx.ID}
	if err := e.contexts.Save(user.Phone, domain.StageDeleteTransactionConfirm, data); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}

	description := tx.Description
	if description == "" {
		description = "Sem descrição"
	}
	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"⚠ Tem certeza que deseja excluir?\n📝 %s (R$ %s)\n\nResponda *sim* ou *não*.",
		description, domain.FormatMoney(tx.Amount)))
	return nil
}

func (e *Engine) handleDeleteTransactionConfirm(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	if data.TransactionID == "" {
		return e.restartFlow(ctx, user.Phone)
	}

	if !strings.HasPrefix(dates.Normalize(text), "s") {
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone, "Operação cancelada.")
		return nil
	}

	if err := e.transactions.Delete(data.TransactionID); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	if err := e.contexts.Clear(user.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, "🗑 Transação excluída com sucesso!")
	return nil
}
