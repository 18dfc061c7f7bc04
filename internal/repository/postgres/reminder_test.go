package postgres

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ggfinance/internal/domain"
)

func TestReminderRepo_Create_NullableAmount(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewReminderRepo(db)

	due := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	mock.ExpectExec("INSERT INTO reminders").
		WithArgs("rem-1", "user-1", "pagar boleto", nil, due, false).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err = repo.Create(&domain.Reminder{
		ID:      "rem-1",
		UserID:  "user-1",
		Message: "pagar boleto",
		DueAt:   due,
	})

	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderRepo_SearchByText(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewReminderRepo(db)

	due := time.Date(2024, 11, 20, 0, 0, 0, 0, time.UTC)
	created := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	columns := []string{"id", "user_id", "message", "amount", "due_at", "sent", "created_at"}

	mock.ExpectQuery("SELECT (.+) FROM reminders").
		WithArgs("user-1", "boleto").
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow("rem-1", "user-1", "pagar boleto", 160.0, due, false, created))

	reminders, err := repo.SearchByText("user-1", "boleto")
	require.NoError(t, err)
	require.Len(t, reminders, 1)

	assert.Equal(t, "pagar boleto", reminders[0].Message)
	require.NotNil(t, reminders[0].Amount)
	assert.Equal(t, 160.0, *reminders[0].Amount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReminderRepo_MarkSent(t *testing.T) {
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	repo := NewReminderRepo(db)

	mock.ExpectExec("UPDATE reminders SET sent = TRUE").
		WithArgs("rem-1").
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, repo.MarkSent("rem-1"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
