package postgres

import (
	"database/sql"

	"ggfinance/internal/domain"
)

// UserRepo implements repository.UserRepository
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo creates a new user repository
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// FindByPhone returns the user registered under a WhatsApp chat id
func (r *UserRepo) FindByPhone(phone string) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, phone, name, created_at FROM users WHERE phone = $1`
	err := r.db.QueryRow(query, phone).Scan(&u.ID, &u.Phone, &u.Name, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// FindByID returns the user with the given id, or nil when absent
func (r *UserRepo) FindByID(id string) (*domain.User, error) {
	var u domain.User
	query := `SELECT id, phone, name, created_at FROM users WHERE id = $1`
	err := r.db.QueryRow(query, id).Scan(&u.ID, &u.Phone, &u.Name, &u.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &u, nil
}

// Create inserts a new user profile
func (r *UserRepo) Create(u *domain.User) error {
	query := `
		INSERT INTO users (id, phone, name)
		VALUES ($1, $2, $3)
	`
	_, err := r.db.Exec(query, u.ID, u.Phone, u.Name)
	return err
}
