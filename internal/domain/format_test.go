package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		value    float64
		expected string
	}{
		{value: 0, expected: "0,00"},
		{value: 160, expected: "160,00"},
		{value: 160.5, expected: "160,50"},
		{value: 3200, expected: "3.200,00"},
		{value: 1234567.89, expected: "1.234.567,89"},
		{value: -1250.5, expected: "-1.250,50"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(tt.value))
		})
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2024, time.February, 5, 14, 30, 0, 0, time.UTC)
	assert.Equal(t, "05/02/2024", FormatDate(d))
}

func TestUser_FirstName(t *testing.T) {
	assert.Equal(t, "Maria", (&User{Name: "Maria Silva"}).FirstName())
	assert.Equal(t, "Ana", (&User{Name: "Ana"}).FirstName())
	assert.Equal(t, "", (&User{}).FirstName())
}

func TestContextData_Merge(t *testing.T) {
	amount := 50.0
	base := ContextData{Text: "pagar boleto", Day: 10}

	merged := base.Merge(ContextData{Amount: &amount, DateExpr: "10/02"})

	assert.Equal(t, "pagar boleto", merged.Text)
	assert.Equal(t, 10, merged.Day)
	assert.Equal(t, "10/02", merged.DateExpr)
	assert.Equal(t, &amount, merged.Amount)

	// Zero-valued patch fields never erase what is already collected.
	untouched := merged.Merge(ContextData{})
	assert.Equal(t, merged, untouched)
}

func TestBalance_Net(t *testing.T) {
	b := Balance{Income: 3200, Expense: 1250.5}
	assert.Equal(t, 1949.5, b.Net())
}

func TestFrequency_Valid(t *testing.T) {
	assert.True(t, FrequencyMonthly.Valid())
	assert.True(t, FrequencyDaily.Valid())
	assert.False(t, Frequency("quinzenal").Valid())
	assert.False(t, Frequency("").Valid())
}
