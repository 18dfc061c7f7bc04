package postgres

import (
	"database/sql"
	"time"

	"ggfinance/internal/domain"
)

// ReminderRepo implements repository.ReminderRepository
type ReminderRepo struct {
	db *sql.DB
}

// NewReminderRepo creates a new reminder repository
func NewReminderRepo(db *sql.DB) *ReminderRepo {
	return &ReminderRepo{db: db}
}

const reminderColumns = `id, user_id, message, amount, due_at, sent, created_at`

func scanReminder(row interface{ Scan(...any) error }) (*domain.Reminder, error) {
	var (
		rem    domain.Reminder
		amount sql.NullFloat64
	)
	err := row.Scan(&rem.ID, &rem.UserID, &rem.Message, &amount, &rem.DueAt, &rem.Sent, &rem.CreatedAt)
	if err != nil {
		return nil, err
	}
	if amount.Valid {
		rem.Amount = &amount.Float64
	}
	return &rem, nil
}

// Create inserts a new reminder
func (r *ReminderRepo) Create(rem *domain.Reminder) error {
	query := `
		INSERT INTO reminders (id, user_id, message, amount, due_at, sent)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	var amount any
	if rem.Amount != nil {
		amount = *rem.Amount
	}
	_, err := r.db.Exec(query, rem.ID, rem.UserID, rem.Message, amount, rem.DueAt, rem.Sent)
	return err
}

// FindByID returns a reminder or nil when absent
func (r *ReminderRepo) FindByID(id string) (*domain.Reminder, error) {
	query := `SELECT ` + reminderColumns + ` FROM reminders WHERE id = $1`
	rem, err := scanReminder(r.db.QueryRow(query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return rem, nil
}

// ListUpcoming returns unsent reminders due after the instant, soonest first
func (r *ReminderRepo) ListUpcoming(userID string, after time.Time) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE user_id = $1 AND sent = FALSE AND due_at >= $2
		ORDER BY due_at
	`
	return r.list(query, userID, after)
}

// ListBetween returns reminders due inside a range, end exclusive
func (r *ReminderRepo) ListBetween(userID string, start, end time.Time) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE user_id = $1 AND due_at >= $2 AND due_at < $3
		ORDER BY due_at
	`
	return r.list(query, userID, start, end)
}

// SearchByText matches reminder messages containing text, case-insensitively
func (r *ReminderRepo) SearchByText(userID, text string) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE user_id = $1 AND message ILIKE '%' || $2 || '%'
		ORDER BY due_at
	`
	return r.list(query, userID, text)
}

// SearchByTextAndDate narrows SearchByText to one due date
func (r *ReminderRepo) SearchByTextAndDate(userID, text string, dueAt time.Time) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE user_id = $1 AND message ILIKE '%' || $2 || '%' AND due_at = $3
		ORDER BY due_at
	`
	return r.list(query, userID, text, dueAt)
}

// Delete removes a reminder
func (r *ReminderRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM reminders WHERE id = $1`, id)
	return err
}

// ListDueUnsent returns unsent reminders due at or before the instant
func (r *ReminderRepo) ListDueUnsent(until time.Time) ([]domain.Reminder, error) {
	query := `
		SELECT ` + reminderColumns + `
		FROM reminders
		WHERE sent = FALSE AND due_at <= $1
		ORDER BY due_at
	`
	return r.list(query, until)
}

// MarkSent flags a reminder as delivered
func (r *ReminderRepo) MarkSent(id string) error {
	_, err := r.db.Exec(`UPDATE reminders SET sent = TRUE WHERE id = $1`, id)
	return err
}

func (r *ReminderRepo) list(query string, args ...any) ([]domain.Reminder, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []domain.Reminder
	for rows.Next() {
		rem, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *rem)
	}

	return reminders, rows.Err()
}
