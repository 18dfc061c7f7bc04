package postgres

import (
	"database/sql"

	"ggfinance/internal/domain"
)

// CategoryRepo implements repository.CategoryRepository
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo creates a new category repository
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// FindByName matches a category name case-insensitively
func (r *CategoryRepo) FindByName(userID, name string) (*domain.Category, error) {
	var c domain.Category
	query := `
		SELECT id, user_id, name, kind, created_at
		FROM categories
		WHERE user_id = $1 AND LOWER(name) = LOWER($2)
	`
	err := r.db.QueryRow(query, userID, name).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Kind, &c.CreatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// Create inserts a new category
func (r *CategoryRepo) Create(c *domain.Category) error {
	query := `
		INSERT INTO categories (id, user_id, name, kind)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.Exec(query, c.ID, c.UserID, c.Name, c.Kind)
	return err
}

// ListByUser returns all categories of a user, alphabetically
func (r *CategoryRepo) ListByUser(userID string) ([]domain.Category, error) {
	query := `
		SELECT id, user_id, name, kind, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`
	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var categories []domain.Category
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.CreatedAt); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}
