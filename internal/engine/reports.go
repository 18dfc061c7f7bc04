package engine

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
)

const helpText = "📌 *Como posso te ajudar?*\n\n" +
	"• Registrar *despesa* (\"gastei 50 no mercado\")\n" +
	"• Registrar *receita* (\"recebi 3200 de salário\")\n" +
	"• Ver *saldo*\n" +
	"• Ver *gastos por categoria*\n" +
	"• Criar *lembrete* (\"me lembra de pagar o aluguel dia 10\")\n" +
	"• Criar *recorrência* (\"aluguel 1500 todo mês dia 10\")\n" +
	"• Criar *categoria*\n\n" +
	"Pra recomeçar uma conversa, mande *#reset*."

// listDisplayLimit caps report listings so a reply fits one WhatsApp
// message comfortably.
const listDisplayLimit = 15

type futureEntry struct {
	date   time.Time
	label  string
	amount float64
	income bool
}

// sendBalanceReport sums concluded incomes and expenses and previews the
// next scheduled reminders and recurrences.
func (e *Engine) sendBalanceReport(ctx context.Context, user *domain.User) error {
	income, err := e.transactions.SumByKind(user.ID, domain.KindIncome)
	if err != nil {
		return fmt.Errorf("failed to sum incomes: %w", err)
	}
	expense, err := e.transactions.SumByKind(user.ID, domain.KindExpense)
	if err != nil {
		return fmt.Errorf("failed to sum expenses: %w", err)
	}
	balance := domain.Balance{Income: income, Expense: expense}

	now := e.clock.Now()
	reminders, err := e.reminders.ListUpcoming(user.ID, now)
	if err != nil {
		return fmt.Errorf("failed to list reminders: %w", err)
	}
	recurrences, err := e.recurrences.ListUpcoming(user.ID, now, 10)
	if err != nil {
		return fmt.Errorf("failed to list recurrences: %w", err)
	}

	var future []futureEntry
	for _, r := range reminders {
		amount := 0.0
		if r.Amount != nil {
			amount = *r.Amount
		}
		future = append(future, futureEntry{
			date:   r.DueAt,
			label:  r.Message,
			amount: amount,
			income: looksLikeIncome(r.Message),
		})
	}
	for _, r := range recurrences {
		future = append(future, futureEntry{
			date:   r.NextCharge,
			label:  r.Description,
			amount: r.Amount,
			income: r.Kind == domain.KindIncome,
		})
	}
	sort.Slice(future, func(i, j int) bool { return future[i].date.Before(future[j].date) })

	var b strings.Builder
	fmt.Fprintf(&b, "📊 *RELATÓRIO FINANCEIRO*\n\n")
	fmt.Fprintf(&b, "💰 Receitas:  R$ %s\n", domain.FormatMoney(balance.Income))
	fmt.Fprintf(&b, "💸 Despesas:  R$ %s\n", domain.FormatMoney(balance.Expense))
	fmt.Fprintf(&b, "📍 Saldo:     R$ %s\n", domain.FormatMoney(balance.Net()))

	b.WriteString("\n📅 *PRÓXIMOS LANÇAMENTOS*")
	writeFutureSection(&b, "🔻 *Despesas futuras:*", future, false)
	writeFutureSection(&b, "🔺 *Receitas futuras:*", future, true)

	b.WriteString("\n\n🧾 Continue registrando para acompanhar sua saúde financeira!")
	e.sender.Send(ctx, user.Phone, b.String())
	return nil
}

func writeFutureSection(b *strings.Builder, title string, entries []futureEntry, income bool) {
	fmt.Fprintf(b, "\n\n%s", title)

	total := 0.0
	count := 0
	for _, entry := range entries {
		if entry.income != income {
			continue
		}
		count++
		total += entry.amount
		fmt.Fprintf(b, "\n• %s : %s", domain.FormatDate(entry.date), entry.label)
		if entry.amount > 0 {
			fmt.Fprintf(b, " (R$ %s)", domain.FormatMoney(entry.amount))
		}
	}

	if count == 0 {
		b.WriteString("\n• Nenhum lançamento futuro")
		return
	}
	fmt.Fprintf(b, "\n→ *Total:* R$ %s", domain.FormatMoney(total))
}

// looksLikeIncome classifies a reminder's message for the balance
// preview. Reminders don't carry a kind, so this is a keyword guess;
// anything unrecognized counts as an expense.
func looksLikeIncome(message string) bool {
	norm := dates.Normalize(message)
	for _, kw := range []string{"receber", "recebo", "salario", "deposito", "entrada"} {
		if strings.Contains(norm, kw) {
			return true
		}
	}
	return false
}

// sendTransactionList lists one kind of transaction, optionally filtered
// to a month.
func (e *Engine) sendTransactionList(ctx context.Context, user *domain.User, kind domain.TransactionKind, period *dates.Period) error {
	var txs []domain.Transaction
	var err error
	if period != nil {
		start, end := period.Interval(e.clock.Now().Location())
		txs, err = e.transactions.ListByKindBetween(user.ID, kind, start, end)
	} else {
		txs, err = e.transactions.ListByKind(user.ID, kind)
	}
	if err != nil {
		return fmt.Errorf("failed to list transactions: %w", err)
	}

	label := "despesas"
	capitalized := "Despesas"
	emoji := "💸"
	if kind == domain.KindIncome {
		label = "receitas"
		capitalized = "Receitas"
		emoji = "💰"
	}

	if len(txs) == 0 {
		scope := "por aqui ainda"
		if period != nil {
			scope = "em " + period.String()
		}
		e.sender.Send(ctx, user.Phone,
			fmt.Sprintf("%s Não encontrei %s %s.", emoji, label, scope))
		return nil
	}

	title := fmt.Sprintf("%s *Suas %s:*", emoji, label)
	if period != nil {
		title = fmt.Sprintf("%s *%s de %s:*", emoji, capitalized, period.String())
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	total := 0.0
	for i, t := range txs {
		total += t.Amount
		if i >= listDisplayLimit {
			continue
		}
		description := t.Description
		if description == "" {
			description = "Sem descrição"
		}
		fmt.Fprintf(&b, "\n• %s - %s: R$ %s",
			domain.FormatDate(t.Date), description, domain.FormatMoney(t.Amount))
	}
	if len(txs) > listDisplayLimit {
		fmt.Fprintf(&b, "\n… e mais %d", len(txs)-listDisplayLimit)
	}
	fmt.Fprintf(&b, "\n\n💰 *Total:* R$ %s", domain.FormatMoney(total))

	e.sender.Send(ctx, user.Phone, b.String())
	return nil
}

// sendSpendingByCategory aggregates concluded expenses per category,
// optionally restricted to a month.
func (e *Engine) sendSpendingByCategory(ctx context.Context, user *domain.User, period *dates.Period) error {
	var rows []domain.CategoryTotal
	var err error
	if period != nil {
		start, end := period.Interval(e.clock.Now().Location())
		rows, err = e.transactions.SpendingByCategoryBetween(user.ID, start, end)
	} else {
		rows, err = e.transactions.SpendingByCategory(user.ID)
	}
	if err != nil {
		return fmt.Errorf("failed to aggregate spending: %w", err)
	}

	if len(rows) == 0 {
		scope := "para calcular por categoria"
		if period != nil {
			scope = "para " + period.String()
		}
		e.sender.Send(ctx, user.Phone, fmt.Sprintf(
			"📊 Ainda não encontrei despesas concluídas %s.\n"+
				"Tente registrar algumas despesas primeiro e depois pergunte novamente 😉.", scope))
		return nil
	}

	title := "📊 *Resumo de gastos por categoria*"
	if period != nil {
		title = fmt.Sprintf("📊 *Gastos por categoria, %s*", period.String())
	}

	var b strings.Builder
	b.WriteString(title + "\n")
	total := 0.0
	for _, row := range rows {
		total += row.Total
		fmt.Fprintf(&b, "\n• *%s*: R$ %s", row.Name, domain.FormatMoney(row.Total))
	}
	fmt.Fprintf(&b, "\n\n💰 *Total gasto:* R$ %s\n", domain.FormatMoney(total))
	b.WriteString("_(considerando apenas despesas marcadas como concluídas)_")

	e.sender.Send(ctx, user.Phone, b.String())
	return nil
}

func (e *Engine) sendSpendingOfCategory(ctx context.Context, user *domain.User, name string) error {
	category, err := e.categories.FindByName(user.ID, name)
	if err != nil {
		return fmt.Errorf("failed to look up category: %w", err)
	}
	if category == nil {
		e.sender.Send(ctx, user.Phone, fmt.Sprintf(
			"📂 Não encontrei despesas na categoria *%s* ainda.", name))
		return nil
	}

	txs, err := e.transactions.ListExpensesOfCategory(user.ID, category.ID)
	if err != nil {
		return fmt.Errorf("failed to list category expenses: %w", err)
	}
	if len(txs) == 0 {
		e.sender.Send(ctx, user.Phone, fmt.Sprintf(
			"📂 Não encontrei despesas na categoria *%s* ainda.", category.Name))
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "📂 *Gastos na categoria %s*\n", category.Name)
	total := 0.0
	for _, t := range txs {
		total += t.Amount
		description := t.Description
		if description == "" {
			description = "Sem descrição"
		}
		fmt.Fprintf(&b, "\n• %s - %s: R$ %s",
			domain.FormatDate(t.Date), description, domain.FormatMoney(t.Amount))
	}
	fmt.Fprintf(&b, "\n\n💰 *Total nessa categoria:* R$ %s", domain.FormatMoney(total))

	e.sender.Send(ctx, user.Phone, b.String())
	return nil
}

func (e *Engine) sendReminderList(ctx context.Context, user *domain.User, period *dates.Period) error {
	var reminders []domain.Reminder
	var err error
	if period != nil {
		start, end := period.Interval(e.clock.Now().Location())
		reminders, err = e.reminders.ListBetween(user.ID, start, end)
	} else {
		reminders, err = e.reminders.ListUpcoming(user.ID, e.clock.Now())
	}
	if err != nil {
		return fmt.Errorf("failed to list reminders: %w", err)
	}

	if len(reminders) == 0 {
		if period != nil {
			e.sender.Send(ctx, user.Phone, fmt.Sprintf(
				"🔔 Nenhum lembrete em %s.", period.String()))
			return nil
		}
		e.sender.Send(ctx, user.Phone, "🔔 Você não tem lembretes futuros no momento.")
		return nil
	}

	title := "🔔 *Seus lembretes:*\n\n"
	if period != nil {
		title = fmt.Sprintf("🔔 *Lembretes de %s:*\n\n", period.String())
	}
	e.sender.Send(ctx, user.Phone, title+formatReminderChoices(reminders))
	return nil
}

func (e *Engine) sendProfile(ctx context.Context, user *domain.User) error {
	categories, err := e.categories.ListByUser(user.ID)
	if err != nil {
		return fmt.Errorf("failed to list categories: %w", err)
	}

	income, err := e.transactions.SumByKind(user.ID, domain.KindIncome)
	if err != nil {
		return fmt.Errorf("failed to sum incomes: %w", err)
	}
	expense, err := e.transactions.SumByKind(user.ID, domain.KindExpense)
	if err != nil {
		return fmt.Errorf("failed to sum expenses: %w", err)
	}
	balance := domain.Balance{Income: income, Expense: expense}

	e.sender.Send(ctx, user.Phone, fmt.Sprintf(
		"👤 *Seu perfil*\n\n"+
			"📛 Nome: %s\n"+
			"📱 Telefone: %s\n"+
			"📅 Por aqui desde: %s\n"+
			"📂 Categorias: %d\n"+
			"📍 Saldo atual: R$ %s",
		user.Name, user.Phone, domain.FormatDate(user.CreatedAt),
		len(categories), domain.FormatMoney(balance.Net())))
	return nil
}
