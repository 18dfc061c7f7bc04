package postgres

import (
	"database/sql"
	"time"

	"ggfinance/internal/domain"
)

// TransactionRepo implements repository.TransactionRepository
type TransactionRepo struct {
	db *sql.DB
}

// NewTransactionRepo creates a new transaction repository
func NewTransactionRepo(db *sql.DB) *TransactionRepo {
	return &TransactionRepo{db: db}
}

const transactionColumns = `id, user_id, category_id, kind, amount, description,
	date, scheduled_for, recurring, status, created_at`

func scanTransaction(row interface{ Scan(...any) error }) (*domain.Transaction, error) {
	var (
		tx           domain.Transaction
		categoryID   sql.NullString
		scheduledFor sql.NullTime
	)
	err := row.Scan(
		&tx.ID, &tx.UserID, &categoryID, &tx.Kind, &tx.Amount, &tx.Description,
		&tx.Date, &scheduledFor, &tx.Recurring, &tx.Status, &tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	if categoryID.Valid {
		tx.CategoryID = &categoryID.String
	}
	if scheduledFor.Valid {
		tx.ScheduledFor = &scheduledFor.Time
	}
	return &tx, nil
}

// Create inserts a new transaction
func (r *TransactionRepo) Create(tx *domain.Transaction) error {
	query := `
		INSERT INTO transactions (id, user_id, category_id, kind, amount,
			description, date, scheduled_for, recurring, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	var categoryID any
	if tx.CategoryID != nil {
		categoryID = *tx.CategoryID
	}
	var scheduledFor any
	if tx.ScheduledFor != nil {
		scheduledFor = *tx.ScheduledFor
	}
	_, err := r.db.Exec(query,
		tx.ID, tx.UserID, categoryID, tx.Kind, tx.Amount,
		tx.Description, tx.Date, scheduledFor, tx.Recurring, tx.Status,
	)
	return err
}

// FindByID returns a transaction or nil when absent
func (r *TransactionRepo) FindByID(id string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE id = $1`
	tx, err := scanTransaction(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return tx, nil
}

// ListRecent returns the newest transactions first
func (r *TransactionRepo) ListRecent(userID string, limit int) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`
	return r.list(query, userID, limit)
}

// ListByKind returns all of a user's incomes or expenses, newest first
func (r *TransactionRepo) ListByKind(userID string, kind domain.TransactionKind) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND kind = $2
		ORDER BY date DESC
	`
	return r.list(query, userID, kind)
}

// ListByKindBetween filters on the transaction date, end exclusive
func (r *TransactionRepo) ListByKindBetween(userID string, kind domain.TransactionKind, start, end time.Time) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND kind = $2 AND date >= $3 AND date < $4
		ORDER BY date DESC
	`
	return r.list(query, userID, kind, start, end)
}

// SumByKind totals concluded transactions of one kind
func (r *TransactionRepo) SumByKind(userID string, kind domain.TransactionKind) (float64, error) {
	var total float64
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM transactions
		WHERE user_id = $1 AND kind = $2 AND status = 'concluida'
	`
	err := r.db.QueryRow(query, userID, kind).Scan(&total)
	return total, err
}

// SpendingByCategory groups concluded expenses by category, biggest first.
// Uncategorized expenses come back under "Sem categoria".
func (r *TransactionRepo) SpendingByCategory(userID string) ([]domain.CategoryTotal, error) {
	query := `
		SELECT t.category_id, COALESCE(c.name, 'Sem categoria'), SUM(t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.kind = 'despesa' AND t.status = 'concluida'
		GROUP BY t.category_id, c.name
		ORDER BY SUM(t.amount) DESC
	`
	return r.listTotals(query, userID)
}

// SpendingByCategoryBetween is SpendingByCategory restricted to a date
// range, end exclusive
func (r *TransactionRepo) SpendingByCategoryBetween(userID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	query := `
		SELECT t.category_id, COALESCE(c.name, 'Sem categoria'), SUM(t.amount)
		FROM transactions t
		LEFT JOIN categories c ON c.id = t.category_id
		WHERE t.user_id = $1 AND t.kind = 'despesa' AND t.status = 'concluida'
			AND t.date >= $2 AND t.date < $3
		GROUP BY t.category_id, c.name
		ORDER BY SUM(t.amount) DESC
	`
	return r.listTotals(query, userID, start, end)
}

// ListExpensesOfCategory returns concluded expenses of one category
func (r *TransactionRepo) ListExpensesOfCategory(userID, categoryID string) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND kind = 'despesa' AND status = 'concluida'
			AND category_id = $2
		ORDER BY date DESC
	`
	return r.list(query, userID, categoryID)
}

// UpdateAmount changes a transaction's amount
func (r *TransactionRepo) UpdateAmount(id string, amount float64) error {
	_, err := r.db.Exec(`UPDATE transactions SET amount = $2 WHERE id = $1`, id, amount)
	return err
}

// UpdateDescription changes a transaction's description
func (r *TransactionRepo) UpdateDescription(id, description string) error {
	_, err := r.db.Exec(`UPDATE transactions SET description = $2 WHERE id = $1`, id, description)
	return err
}

// UpdateStatus changes a transaction's status
func (r *TransactionRepo) UpdateStatus(id string, status domain.TransactionStatus) error {
	_, err := r.db.Exec(`UPDATE transactions SET status = $2 WHERE id = $1`, id, status)
	return err
}

// Delete removes a transaction
func (r *TransactionRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM transactions WHERE id = $1`, id)
	return err
}

func (r *TransactionRepo) list(query string, args ...any) ([]domain.Transaction, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var txs []domain.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, *tx)
	}

	return txs, rows.Err()
}

func (r *TransactionRepo) listTotals(query string, args ...any) ([]domain.CategoryTotal, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var totals []domain.CategoryTotal
	for rows.Next() {
		var (
			ct         domain.CategoryTotal
			categoryID sql.NullString
		)
		if err := rows.Scan(&categoryID, &ct.Name, &ct.Total); err != nil {
			return nil, err
		}
		if categoryID.Valid {
			ct.CategoryID = &categoryID.String
		}
		totals = append(totals, ct)
	}

	return totals, rows.Err()
}
