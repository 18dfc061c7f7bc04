package repository

import (
	"time"

	"ggfinance/internal/domain"
)

// UserRepository defines user profile data operations.
type UserRepository interface {
	// FindByPhone returns nil with no error when the user is not registered.
	FindByPhone(phone string) (*domain.User, error)
	// FindByID returns nil with no error when absent.
	FindByID(id string) (*domain.User, error)
	Create(user *domain.User) error
}

// ContextRepository is the per-user single-slot dialogue state store.
// The engine re-reads the context on every turn and never holds one in
// memory across messages.
type ContextRepository interface {
	// Get returns nil with no error when the user has no active context.
	Get(phone string) (*domain.Context, error)
	// Save creates or fully replaces the context: stage and data are both
	// overwritten.
	Save(phone string, stage domain.Stage, data domain.ContextData) error
	// MergeData shallow-merges patch into the stored data, creating the
	// context if absent.
	MergeData(phone string, patch domain.ContextData) error
	// Clear removes the context; clearing a nonexistent context is not an
	// error.
	Clear(phone string) error
}

// CategoryRepository defines category data operations.
type CategoryRepository interface {
	// FindByName matches case-insensitively; nil when absent.
	FindByName(userID, name string) (*domain.Category, error)
	Create(category *domain.Category) error
	ListByUser(userID string) ([]domain.Category, error)
}

// TransactionRepository defines transaction data operations.
type TransactionRepository interface {
	Create(tx *domain.Transaction) error
	// FindByID returns nil with no error when absent.
	FindByID(id string) (*domain.Transaction, error)
	ListRecent(userID string, limit int) ([]domain.Transaction, error)
	ListByKind(userID string, kind domain.TransactionKind) ([]domain.Transaction, error)
	// ListByKindBetween filters on the transaction date, end exclusive.
	ListByKindBetween(userID string, kind domain.TransactionKind, start, end time.Time) ([]domain.Transaction, error)
	SumByKind(userID string, kind domain.TransactionKind) (float64, error)
	SpendingByCategory(userID string) ([]domain.CategoryTotal, error)
	SpendingByCategoryBetween(userID string, start, end time.Time) ([]domain.CategoryTotal, error)
	ListExpensesOfCategory(userID, categoryID string) ([]domain.Transaction, error)
	UpdateAmount(id string, amount float64) error
	UpdateDescription(id, description string) error
	UpdateStatus(id string, status domain.TransactionStatus) error
	Delete(id string) error
}

// ReminderRepository defines reminder data operations.
type ReminderRepository interface {
	Create(r *domain.Reminder) error
	FindByID(id string) (*domain.Reminder, error)
	ListUpcoming(userID string, after time.Time) ([]domain.Reminder, error)
	ListBetween(userID string, start, end time.Time) ([]domain.Reminder, error)
	// SearchByText matches reminders whose message contains text,
	// case-insensitively.
	SearchByText(userID, text string) ([]domain.Reminder, error)
	SearchByTextAndDate(userID, text string, dueAt time.Time) ([]domain.Reminder, error)
	Delete(id string) error
	// ListDueUnsent returns unsent reminders due at or before the instant.
	ListDueUnsent(until time.Time) ([]domain.Reminder, error)
	MarkSent(id string) error
}

// RecurrenceRepository defines recurrence data operations.
type RecurrenceRepository interface {
	Create(r *domain.Recurrence) error
	ListUpcoming(userID string, after time.Time, limit int) ([]domain.RecurrenceWithTemplate, error)
	// ListDue returns recurrences whose next charge is at or before the
	// instant, joined with their template transactions.
	ListDue(until time.Time) ([]domain.RecurrenceWithTemplate, error)
	SetNextCharge(id string, next time.Time) error
}
