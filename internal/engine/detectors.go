package engine

import (
	"context"
	"regexp"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
)

// detector is one deterministic recognizer for a common reporting
// question. Matching a detector answers the turn locally, with no NLU
// call.
type detector struct {
	name  string
	match func(e *Engine, norm string) bool
	run   func(e *Engine, ctx context.Context, user *domain.User, norm string) error
}

var (
	reExpenseWords  = regexp.MustCompile(`\b(despesa|despesas|gasto|gastos)\b`)
	reIncomeWords   = regexp.MustCompile(`\b(receita|receitas|entrada|entradas)\b`)
	reCategoryWords = regexp.MustCompile(`\b(categoria|categorias)\b`)
	reReminderWords = regexp.MustCompile(`\b(lembrete|lembretes|avisos|agenda|recordatorio|recordatorios)\b`)
	reListExpenses  = regexp.MustCompile(`\b(despesas|gastos)\b`)
	reListIncomes   = regexp.MustCompile(`\b(receitas|entradas)\b`)
	reReminderVerbs = regexp.MustCompile(`\b(quais|meus|minhas|listar|ver|mostrar|exibir|tem|tenho)\b`)
)

// detectors are evaluated top to bottom; the first match wins and the
// turn terminates. Order matters: specific patterns (category plus month)
// come before the general listings they would otherwise lose to.
var detectors = []detector{
	{
		name: "gastos_por_categoria_mes",
		match: func(e *Engine, norm string) bool {
			return reCategoryWords.MatchString(norm) &&
				reExpenseWords.MatchString(norm) &&
				e.hasPeriod(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendSpendingByCategory(ctx, user, periodFromExpr(e.clock.Now(), norm))
		},
	},
	{
		name: "despesas_por_mes",
		match: func(e *Engine, norm string) bool {
			return reExpenseWords.MatchString(norm) && e.hasPeriod(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendTransactionList(ctx, user, domain.KindExpense, periodFromExpr(e.clock.Now(), norm))
		},
	},
	{
		name: "receitas_por_mes",
		match: func(e *Engine, norm string) bool {
			return reIncomeWords.MatchString(norm) && e.hasPeriod(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendTransactionList(ctx, user, domain.KindIncome, periodFromExpr(e.clock.Now(), norm))
		},
	},
	{
		name: "listar_despesas",
		match: func(e *Engine, norm string) bool {
			return reListExpenses.MatchString(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendTransactionList(ctx, user, domain.KindExpense, nil)
		},
	},
	{
		name: "listar_receitas",
		match: func(e *Engine, norm string) bool {
			return reListIncomes.MatchString(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendTransactionList(ctx, user, domain.KindIncome, nil)
		},
	},
	{
		name: "lembretes_por_mes",
		match: func(e *Engine, norm string) bool {
			return reReminderWords.MatchString(norm) && e.hasPeriod(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendReminderList(ctx, user, periodFromExpr(e.clock.Now(), norm))
		},
	},
	{
		name: "listar_lembretes",
		match: func(e *Engine, norm string) bool {
			return reReminderWords.MatchString(norm) && reReminderVerbs.MatchString(norm)
		},
		run: func(e *Engine, ctx context.Context, user *domain.User, norm string) error {
			return e.sendReminderList(ctx, user, nil)
		},
	},
}

func (e *Engine) hasPeriod(norm string) bool {
	_, ok := dates.ExtractPeriod(e.clock.Now(), norm)
	return ok
}
