package postgres

import (
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"

	"ggfinance/internal/domain"
)

func TestUserRepo_FindByPhone(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name          string
		phone         string
		mockRows      *sqlmock.Rows
		mockError     error
		expectedUser  *domain.User
		expectedError bool
	}{
		{
			name:  "existing user",
			phone: "5511999990000",
			mockRows: sqlmock.NewRows([]string{"id", "phone", "name", "created_at"}).
				AddRow("user-1", "5511999990000", "Maria Silva", created),
			expectedUser: &domain.User{
				ID:        "user-1",
				Phone:     "5511999990000",
				Name:      "Maria Silva",
				CreatedAt: created,
			},
		},
		{
			name:      "unknown phone is nil, not an error",
			phone:     "5511888880000",
			mockError: sql.ErrNoRows,
		},
		{
			name:          "database error",
			phone:         "5511999990000",
			mockError:     sql.ErrConnDone,
			expectedError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			assert.NoError(t, err)
			defer db.Close()

			repo := NewUserRepo(db)

			query := "SELECT id, phone, name, created_at FROM users WHERE phone = \\$1"
			if tt.mockError != nil {
				mock.ExpectQuery(query).WithArgs(tt.phone).WillReturnError(tt.mockError)
			} else {
				mock.ExpectQuery(query).WithArgs(tt.phone).WillReturnRows(tt.mockRows)
			}

			user, err := repo.FindByPhone(tt.phone)

			if tt.expectedError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedUser, user)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestUserRepo_Create(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewUserRepo(db)

	mock.ExpectExec("INSERT INTO users").
		WithArgs("user-1", "5511999990000", "Maria Silva").
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(&domain.User{
		ID:    "user-1",
		Phone: "5511999990000",
		Name:  "Maria Silva",
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
