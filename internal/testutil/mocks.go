package testutil

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"ggfinance/internal/domain"
)

// MockUserRepository is a mock for UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindByPhone(phone string) (*domain.User, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*domain.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) Create(user *domain.User) error {
	args := m.Called(user)
	return args.Error(0)
}

// MockContextRepository is a mock for ContextRepository
type MockContextRepository struct {
	mock.Mock
}

func (m *MockContextRepository) Get(phone string) (*domain.Context, error) {
	args := m.Called(phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Context), args.Error(1)
}

func (m *MockContextRepository) Save(phone string, stage domain.Stage, data domain.ContextData) error {
	args := m.Called(phone, stage, data)
	return args.Error(0)
}

func (m *MockContextRepository) MergeData(phone string, patch domain.ContextData) error {
	args := m.Called(phone, patch)
	return args.Error(0)
}

func (m *MockContextRepository) Clear(phone string) error {
	args := m.Called(phone)
	return args.Error(0)
}

// MockCategoryRepository is a mock for CategoryRepository
type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) FindByName(userID, name string) (*domain.Category, error) {
	args := m.Called(userID, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Category), args.Error(1)
}

func (m *MockCategoryRepository) Create(category *domain.Category) error {
	args := m.Called(category)
	return args.Error(0)
}

func (m *MockCategoryRepository) ListByUser(userID string) ([]domain.Category, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Category), args.Error(1)
}

// MockTransactionRepository is a mock for TransactionRepository
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) Create(tx *domain.Transaction) error {
	args := m.Called(tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) FindByID(id string) (*domain.Transaction, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListRecent(userID string, limit int) ([]domain.Transaction, error) {
	args := m.Called(userID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByKind(userID string, kind domain.TransactionKind) ([]domain.Transaction, error) {
	args := m.Called(userID, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByKindBetween(userID string, kind domain.TransactionKind, start, end time.Time) ([]domain.Transaction, error) {
	args := m.Called(userID, kind, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) SumByKind(userID string, kind domain.TransactionKind) (float64, error) {
	args := m.Called(userID, kind)
	return args.Get(0).(float64), args.Error(1)
}

func (m *MockTransactionRepository) SpendingByCategory(userID string) ([]domain.CategoryTotal, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockTransactionRepository) SpendingByCategoryBetween(userID string, start, end time.Time) ([]domain.CategoryTotal, error) {
	args := m.Called(userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.CategoryTotal), args.Error(1)
}

func (m *MockTransactionRepository) ListExpensesOfCategory(userID, categoryID string) ([]domain.Transaction, error) {
	args := m.Called(userID, categoryID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) UpdateAmount(id string, amount float64) error {
	args := m.Called(id, amount)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateDescription(id, description string) error {
	args := m.Called(id, description)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateStatus(id string, status domain.TransactionStatus) error {
	args := m.Called(id, status)
	return args.Error(0)
}

func (m *MockTransactionRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockReminderRepository is a mock for ReminderRepository
type MockReminderRepository struct {
	mock.Mock
}

func (m *MockReminderRepository) Create(r *domain.Reminder) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockReminderRepository) FindByID(id string) (*domain.Reminder, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListUpcoming(userID string, after time.Time) ([]domain.Reminder, error) {
	args := m.Called(userID, after)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) ListBetween(userID string, start, end time.Time) ([]domain.Reminder, error) {
	args := m.Called(userID, start, end)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) SearchByText(userID, text string) ([]domain.Reminder, error) {
	args := m.Called(userID, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) SearchByTextAndDate(userID, text string, dueAt time.Time) ([]domain.Reminder, error) {
	args := m.Called(userID, text, dueAt)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockReminderRepository) ListDueUnsent(until time.Time) ([]domain.Reminder, error) {
	args := m.Called(until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Reminder), args.Error(1)
}

func (m *MockReminderRepository) MarkSent(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockRecurrenceRepository is a mock for RecurrenceRepository
type MockRecurrenceRepository struct {
	mock.Mock
}

func (m *MockRecurrenceRepository) Create(r *domain.Recurrence) error {
	args := m.Called(r)
	return args.Error(0)
}

func (m *MockRecurrenceRepository) ListUpcoming(userID string, after time.Time, limit int) ([]domain.RecurrenceWithTemplate, error) {
	args := m.Called(userID, after, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurrenceWithTemplate), args.Error(1)
}

func (m *MockRecurrenceRepository) ListDue(until time.Time) ([]domain.RecurrenceWithTemplate, error) {
	args := m.Called(until)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RecurrenceWithTemplate), args.Error(1)
}

func (m *MockRecurrenceRepository) SetNextCharge(id string, next time.Time) error {
	args := m.Called(id, next)
	return args.Error(0)
}

// MockInterpreter is a mock for nlu.Interpreter
type MockInterpreter struct {
	mock.Mock
}

func (m *MockInterpreter) Interpret(ctx context.Context, message string, user *domain.User) ([]domain.Intent, error) {
	args := m.Called(ctx, message, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Intent), args.Error(1)
}

// MockResponder is a mock for nlu.Responder
type MockResponder struct {
	mock.Mock
}

func (m *MockResponder) Reply(ctx context.Context, message string) (string, error) {
	args := m.Called(ctx, message)
	return args.String(0), args.Error(1)
}
