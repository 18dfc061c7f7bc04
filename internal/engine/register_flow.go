package engine

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"ggfinance/internal/domain"
)

// Registration is a hard gate: an unknown identity can never reach
// detectors or the NLU until a profile exists.

func (e *Engine) startRegistration(ctx context.Context, phone string) error {
	if err := e.contexts.Save(phone, domain.StageRegisterName, domain.ContextData{}); err != nil {
		return fmt.Errorf("failed to save context: %w", err)
	}
	e.sender.Send(ctx, phone,
		"👋 Bem-vindo ao *GG Finance*!\n\n"+
			"Antes de começarmos, como você gostaria de ser chamado?")
	return nil
}

func (e *Engine) handleRegisterName(ctx context.Context, phone, text string) error {
	name := strings.TrimSpace(text)
	if len([]rune(name)) < 2 {
		e.sender.Send(ctx, phone, "🤔 Esse nome ficou curto demais. Como posso te chamar?")
		return nil
	}

	user := &domain.User{
		ID:    uuid.NewString(),
		Phone: phone,
		Name:  name,
	}
	if err := e.users.Create(user); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	if err := e.contexts.Clear(phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}

	e.logger.Info("user registered", zap.String("user_id", user.ID))

	e.sender.Send(ctx, phone, fmt.Sprintf(
		"✅ Prazer, *%s*! Cadastro feito.\n\n"+
			"Você já pode registrar gastos e receitas, criar lembretes e muito mais. "+
			"Manda um *ajuda* pra ver tudo que eu faço.", user.FirstName()))
	return nil
}
