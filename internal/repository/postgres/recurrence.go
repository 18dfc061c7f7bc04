package postgres

import (
	"database/sql"
	"time"

	"ggfinance/internal/domain"
)

// RecurrenceRepo implements repository.RecurrenceRepository
type RecurrenceRepo struct {
	db *sql.DB
}

// NewRecurrenceRepo creates a new recurrence repository
func NewRecurrenceRepo(db *sql.DB) *RecurrenceRepo {
	return &RecurrenceRepo{db: db}
}

// Create inserts a new recurrence
func (r *RecurrenceRepo) Create(rec *domain.Recurrence) error {
	query := `
		INSERT INTO recurrences (id, user_id, transaction_id, frequency,
			interval, monthly_rule, day_of_month, nth_business_day,
			next_charge)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	var rule, day, nth any
	if rec.MonthlyRule != nil {
		rule = *rec.MonthlyRule
	}
	if rec.DayOfMonth != nil {
		day = *rec.DayOfMonth
	}
	if rec.NthBusinessDay != nil {
		nth = *rec.NthBusinessDay
	}
	_, err := r.db.Exec(query,
		rec.ID, rec.UserID, rec.TransactionID, rec.Frequency,
		rec.Interval, rule, day, nth, rec.NextCharge,
	)
	return err
}

const recurrenceJoin = `
	SELECT r.id, r.user_id, r.transaction_id, r.frequency, r.interval,
		r.monthly_rule, r.day_of_month, r.nth_business_day, r.next_charge,
		r.created_at, t.description, t.amount, t.kind
	FROM recurrences r
	JOIN transactions t ON t.id = r.transaction_id
`

// ListUpcoming returns a user's recurrences charging after the instant,
// soonest first, joined with their template transactions
func (r *RecurrenceRepo) ListUpcoming(userID string, after time.Time, limit int) ([]domain.RecurrenceWithTemplate, error) {
	query := recurrenceJoin + `
		WHERE r.user_id = $1 AND r.next_charge > $2
		ORDER BY r.next_charge
		LIMIT $3
	`
	return r.list(query, userID, after, limit)
}

// ListDue returns recurrences charging at or before the instant
func (r *RecurrenceRepo) ListDue(until time.Time) ([]domain.RecurrenceWithTemplate, error) {
	query := recurrenceJoin + `
		WHERE r.next_charge <= $1
		ORDER BY r.next_charge
	`
	return r.list(query, until)
}

// SetNextCharge advances a recurrence to its next occurrence date
func (r *RecurrenceRepo) SetNextCharge(id string, next time.Time) error {
	_, err := r.db.Exec(`UPDATE recurrences SET next_charge = $2 WHERE id = $1`, id, next)
	return err
}

func (r *RecurrenceRepo) list(query string, args ...any) ([]domain.RecurrenceWithTemplate, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []domain.RecurrenceWithTemplate
	for rows.Next() {
		var (
			rec  domain.RecurrenceWithTemplate
			rule sql.NullString
			day  sql.NullInt64
			nth  sql.NullInt64
		)
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.TransactionID, &rec.Frequency, &rec.Interval,
			&rule, &day, &nth, &rec.NextCharge, &rec.CreatedAt,
			&rec.Description, &rec.Amount, &rec.Kind,
		)
		if err != nil {
			return nil, err
		}
		if rule.Valid {
			mr := domain.MonthlyRule(rule.String)
			rec.MonthlyRule = &mr
		}
		if day.Valid {
			d := int(day.Int64)
			rec.DayOfMonth = &d
		}
		if nth.Valid {
			n := int(nth.Int64)
			rec.NthBusinessDay = &n
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}
