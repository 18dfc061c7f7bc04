package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"ggfinance/internal/domain"
)

// ContextRepo implements repository.ContextRepository
type ContextRepo struct {
	db *sql.DB
}

// NewContextRepo creates a new dialogue context repository
func NewContextRepo(db *sql.DB) *ContextRepo {
	return &ContextRepo{db: db}
}

// Get returns the user's active context, or nil when there is none
func (r *ContextRepo) Get(phone string) (*domain.Context, error) {
	var (
		ctx domain.Context
		raw []byte
	)
	query := `SELECT phone, stage, data, created_at FROM contexts WHERE phone = $1`
	err := r.db.QueryRow(query, phone).Scan(&ctx.Phone, &ctx.Stage, &raw, &ctx.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &ctx.Data); err != nil {
			return nil, fmt.Errorf("decode context data: %w", err)
		}
	}

	return &ctx, nil
}

// Save creates or fully replaces the context for a user
func (r *ContextRepo) Save(phone string, stage domain.Stage, data domain.ContextData) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("encode context data: %w", err)
	}

	query := `
		INSERT INTO contexts (phone, stage, data, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (phone)
		DO UPDATE SET stage = $2, data = $3
	`
	_, err = r.db.Exec(query, phone, stage, raw)
	return err
}

// MergeData shallow-merges patch into the stored data, creating the
// context if absent. The read-modify-write is not transactional; the
// engine serializes turns per user, which is what keeps this safe.
func (r *ContextRepo) MergeData(phone string, patch domain.ContextData) error {
	existing, err := r.Get(phone)
	if err != nil {
		return err
	}

	if existing == nil {
		return r.Save(phone, "", patch)
	}

	raw, err := json.Marshal(existing.Data.Merge(patch))
	if err != nil {
		return fmt.Errorf("encode context data: %w", err)
	}

	query := `UPDATE contexts SET data = $2 WHERE phone = $1`
	_, err = r.db.Exec(query, phone, raw)
	return err
}

// Clear removes the context; clearing a nonexistent one is a no-op
func (r *ContextRepo) Clear(phone string) error {
	query := `DELETE FROM contexts WHERE phone = $1`
	_, err := r.db.Exec(query, phone)
	return err
}
