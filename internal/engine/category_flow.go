package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"ggfinance/internal/domain"
)

func (e *Engine) startCategoryCreation(ctx context.Context, user *domain.User) error {
	if err := e.contexts.Save(user.Phone, domain.StageCategoryName, domain.ContextData{}); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, "📂 Qual o *nome da categoria*?")
	return nil
}

func (e *Engine) handleCategoryName(ctx context.Context, user *domain.User, text string) error {
	name := strings.TrimSpace(text)
	if name == "" {
		e.sender.Send(ctx, user.Phone, "📂 Me diz o nome da categoria.")
		return nil
	}

	if err := e.contexts.Save(user.Phone, domain.StageCategoryKind, domain.ContextData{Name: name}); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, user.Phone, "Essa categoria é de:\n1️⃣ Receita\n2️⃣ Despesa")
	return nil
}

func (e *Engine) handleCategoryKind(ctx context.Context, user *domain.User, data domain.ContextData, text string) error {
	var kind domain.TransactionKind
	switch {
	case strings.HasPrefix(strings.TrimSpace(text), "1"):
		kind = domain.KindIncome
	case strings.HasPrefix(strings.TrimSpace(text), "2"):
		kind = domain.KindExpense
	default:
		e.sender.Send(ctx, user.Phone, "Escolha 1 ou 2.")
		return nil
	}

	if data.Name == "" {
		return e.restartFlow(ctx, user.Phone)
	}

	existing, err := e.categories.FindByName(user.ID, data.Name)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if existing != nil {
		if err := e.contexts.Clear(user.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, user.Phone,
			fmt.Sprintf("📂 A categoria *%s* já existe por aqui!", existing.Name))
		return nil
	}

	category := &domain.Category{
		ID:     uuid.NewString(),
		UserID: user.ID,
		Name:   data.Name,
		Kind:   kind,
	}
	if err := e.categories.Create(category); err != nil {
		return fmt.Errorf("failed to create category: %w", err)
	}
	if err := e.contexts.Clear(user.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}

	e.sender.Send(ctx, user.Phone,
		fmt.Sprintf("✅ Categoria *%s* criada como *%s*!", category.Name, kind))
	return nil
}

// restartFlow recovers from a context whose data no longer carries what
// the stage expects, e.g. after an external wipe.
func (e *Engine) restartFlow(ctx context.Context, phone string) error {
	if err := e.contexts.Clear(phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	e.sender.Send(ctx, phone, msgRestartFlow)
	return nil
}
