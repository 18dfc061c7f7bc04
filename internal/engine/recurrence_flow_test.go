package engine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ggfinance/internal/domain"
	"ggfinance/internal/testutil"
)

func intentRecurrence(amount *float64, day int) domain.Intent {
	in := domain.Intent{
		Action:      domain.ActionCreateRecurrence,
		Description: "academia",
		Kind:        domain.KindExpense,
		Frequency:   domain.FrequencyMonthly,
		Amount:      amount,
	}
	if day != 0 {
		in.DayOfMonth = &day
	}
	return in
}

func TestStartRecurrence_MissingDescriptionGuides(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.idleUser(user)
	f.interpreter.On("Interpret", mock.Anything, mock.Anything, user).
		Return([]domain.Intent{{Action: domain.ActionCreateRecurrence, Frequency: domain.FrequencyMonthly}}, nil)

	err := f.engine.Process(context.Background(), testPhone, "cria uma recorrência aí")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "tornar recorrente")
	f.contexts.AssertNotCalled(t, "Save", mock.Anything, mock.Anything, mock.Anything)
}

func TestStartRecurrence_MissingFrequencyGuides(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.idleUser(user)
	f.interpreter.On("Interpret", mock.Anything, mock.Anything, user).
		Return([]domain.Intent{{Action: domain.ActionCreateRecurrence, Description: "academia"}}, nil)

	err := f.engine.Process(context.Background(), testPhone, "academia recorrente")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "frequência")
}

func TestStartRecurrence_MissingAmountAsksValue(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.idleUser(user)
	f.interpreter.On("Interpret", mock.Anything, mock.Anything, user).
		Return([]domain.Intent{intentRecurrence(nil, 10)}, nil)
	f.contexts.On("Save", testPhone, domain.StageRecurrenceValue, mock.AnythingOfType("domain.ContextData")).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "pagar academia todo mês dia 10")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "Qual o valor")
	f.contexts.AssertExpectations(t)
}

func TestStartRecurrence_CompleteIntentGoesToConfirm(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.idleUser(user)

	amount := 130.0
	f.interpreter.On("Interpret", mock.Anything, mock.Anything, user).
		Return([]domain.Intent{intentRecurrence(&amount, 10)}, nil)
	f.contexts.On("Save", testPhone, domain.StageRecurrenceConfirm,
		mock.MatchedBy(func(data domain.ContextData) bool {
			// Clock 2024-06-10: day 10 of June is not strictly ahead, so the
			// next charge lands in July.
			return data.NextCharge != nil &&
				data.NextCharge.Equal(time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)) &&
				data.MonthlyRule == string(domain.MonthlyRuleFixedDay)
		})).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "pagar academia todo mês dia 10 130")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "Confirma? (Sim/Não)")
	assert.Contains(t, f.sender.Last().Text, "10/07/2024")
	f.contexts.AssertExpectations(t)
}

func TestStartRecurrence_MonthlyWithoutRuleAsksDisambiguation(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.idleUser(user)

	amount := 130.0
	f.interpreter.On("Interpret", mock.Anything, mock.Anything, user).
		Return([]domain.Intent{intentRecurrence(&amount, 0)}, nil)
	f.contexts.On("Clear", testPhone).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "pagar academia todo mês 130")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "dia fixo")
	f.contexts.AssertExpectations(t)
	f.recurrences.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRecurrenceValue_FillsAmountAndConfirms(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.inStage(user, domain.StageRecurrenceValue, domain.ContextData{
		Description: "academia",
		Kind:        string(domain.KindExpense),
		Frequency:   string(domain.FrequencyMonthly),
		DayOfMonth:  10,
	})
	f.contexts.On("Save", testPhone, domain.StageRecurrenceConfirm, mock.AnythingOfType("domain.ContextData")).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "130,50")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "130,50")
	assert.Contains(t, f.sender.Last().Text, "Confirma? (Sim/Não)")
}

func confirmData() domain.ContextData {
	next := time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC)
	amount := 130.0
	return domain.ContextData{
		Description: "academia",
		Kind:        string(domain.KindExpense),
		Frequency:   string(domain.FrequencyMonthly),
		MonthlyRule: string(domain.MonthlyRuleFixedDay),
		DayOfMonth:  10,
		Amount:      &amount,
		NextCharge:  &next,
	}
}

func TestRecurrenceConfirm_YesCreatesTemplateAndSchedule(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.inStage(user, domain.StageRecurrenceConfirm, confirmData())
	f.contexts.On("Clear", testPhone).Return(nil)

	var templateID string
	f.transactions.On("Create", mock.MatchedBy(func(tx *domain.Transaction) bool {
		templateID = tx.ID
		return tx.Recurring &&
			tx.Status == domain.StatusPending &&
			tx.ScheduledFor != nil &&
			tx.Amount == 130.0
	})).Return(nil)
	f.recurrences.On("Create", mock.MatchedBy(func(r *domain.Recurrence) bool {
		return r.TransactionID == templateID &&
			r.Frequency == domain.FrequencyMonthly &&
			r.Interval == 1 &&
			r.DayOfMonth != nil && *r.DayOfMonth == 10 &&
			r.NextCharge.Equal(time.Date(2024, time.July, 10, 0, 0, 0, 0, time.UTC))
	})).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "Sim")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "Recorrência criada")
	f.transactions.AssertExpectations(t)
	f.recurrences.AssertExpectations(t)
}

func TestRecurrenceConfirm_NoCancels(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.inStage(user, domain.StageRecurrenceConfirm, confirmData())
	f.contexts.On("Clear", testPhone).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "não")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "cancelei")
	f.transactions.AssertNotCalled(t, "Create", mock.Anything)
	f.recurrences.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRecurrenceConfirm_AnythingElseReprompts(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.inStage(user, domain.StageRecurrenceConfirm, confirmData())

	err := f.engine.Process(context.Background(), testPhone, "talvez amanhã")
	require.NoError(t, err)

	assert.Contains(t, f.sender.Last().Text, "*Sim* ou *Não*")
	f.contexts.AssertNotCalled(t, "Clear", testPhone)
	f.recurrences.AssertNotCalled(t, "Create", mock.Anything)
}

func TestRecurrenceConfirm_CorruptDraftRestarts(t *testing.T) {
	f := newFixture(10)
	user := testutil.NewTestUser()
	f.inStage(user, domain.StageRecurrenceConfirm, domain.ContextData{Description: "academia"})
	f.contexts.On("Clear", testPhone).Return(nil)

	err := f.engine.Process(context.Background(), testPhone, "sim")
	require.NoError(t, err)

	assert.Equal(t, msgRestartFlow, f.sender.Last().Text)
	f.recurrences.AssertNotCalled(t, "Create", mock.Anything)
}
