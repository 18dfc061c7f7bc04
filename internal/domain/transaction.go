package domain

import "time"

// TransactionKind distinguishes incomes from expenses.
type TransactionKind string

const (
	KindIncome  TransactionKind = "receita"
	KindExpense TransactionKind = "despesa"
)

// TransactionStatus tracks whether a transaction already happened or is
// scheduled for a future date.
type TransactionStatus string

const (
	StatusDone    TransactionStatus = "concluida"
	StatusPending TransactionStatus = "pendente"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID           string
	UserID       string
	CategoryID   *string
	Kind         TransactionKind
	Amount       float64
	Description  string
	Date         time.Time
	ScheduledFor *time.Time
	Recurring    bool
	Status       TransactionStatus
	CreatedAt    time.Time
}

// Category groups transactions of one kind under a user-visible name.
type Category struct {
	ID        string
	UserID    string
	Name      string
	Kind      TransactionKind
	CreatedAt time.Time
}

// CategoryTotal is one row of a spending-by-category aggregate.
type CategoryTotal struct {
	CategoryID *string
	Name       string
	Total      float64
}

// Balance summarizes a user's totals per kind.
type Balance struct {
	Income  float64
	Expense float64
}

// Net returns income minus expense.
func (b Balance) Net() float64 {
	return b.Income - b.Expense
}
