package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseDate(t *testing.T) {
	now := time.Date(2024, time.March, 10, 15, 30, 0, 0, time.UTC)

	tests := []struct {
		name     string
		text     string
		expected time.Time
		ok       bool
	}{
		{
			name:     "hoje",
			text:     "hoje",
			expected: date(2024, time.March, 10),
			ok:       true,
		},
		{
			name:     "hoje with explicit date wins",
			text:     "hoje dia 15/04",
			expected: date(2024, time.April, 15),
			ok:       true,
		},
		{
			name:     "amanha",
			text:     "amanhã",
			expected: date(2024, time.March, 11),
			ok:       true,
		},
		{
			name:     "depois de amanha",
			text:     "depois de amanhã",
			expected: date(2024, time.March, 12),
			ok:       true,
		},
		{
			name:     "relative days",
			text:     "daqui a 5 dias",
			expected: date(2024, time.March, 15),
			ok:       true,
		},
		{
			name:     "relative weeks",
			text:     "daqui 2 semanas",
			expected: date(2024, time.March, 24),
			ok:       true,
		},
		{
			name:     "relative without unit means days",
			text:     "em 3",
			expected: date(2024, time.March, 13),
			ok:       true,
		},
		{
			name:     "full numeric date",
			text:     "25/12/2024",
			expected: date(2024, time.December, 25),
			ok:       true,
		},
		{
			name:     "two digit year",
			text:     "05/01/25",
			expected: date(2025, time.January, 5),
			ok:       true,
		},
		{
			name:     "day month in future stays this year",
			text:     "15/04",
			expected: date(2024, time.April, 15),
			ok:       true,
		},
		{
			name:     "day month already past rolls to next year",
			text:     "10/02",
			expected: date(2025, time.February, 10),
			ok:       true,
		},
		{
			name:     "bare day ahead stays this month",
			text:     "dia 20",
			expected: date(2024, time.March, 20),
			ok:       true,
		},
		{
			name:     "bare day past rolls to next month",
			text:     "dia 5",
			expected: date(2024, time.April, 5),
			ok:       true,
		},
		{
			name:     "day next month",
			text:     "dia 5 do mês que vem",
			expected: date(2024, time.April, 5),
			ok:       true,
		},
		{
			name:     "day of this month",
			text:     "no dia 2 deste mês",
			expected: date(2024, time.March, 2),
			ok:       true,
		},
		{
			name:     "day of named month ahead",
			text:     "dia 7 de junho",
			expected: date(2024, time.June, 7),
			ok:       true,
		},
		{
			name:     "day of named month past rolls to next year",
			text:     "dia 7 de janeiro",
			expected: date(2025, time.January, 7),
			ok:       true,
		},
		{
			name:     "day of named month with year",
			text:     "15 de agosto de 2026",
			expected: date(2026, time.August, 15),
			ok:       true,
		},
		{
			name: "no date at all",
			text: "pagar o boleto da internet",
			ok:   false,
		},
		{
			name: "empty",
			text: "   ",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseDate(now, tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestParseDate_RelativeMonthsClamp(t *testing.T) {
	now := time.Date(2024, time.January, 31, 9, 0, 0, 0, time.UTC)

	got, ok := ParseDate(now, "daqui a 1 mes")
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.February, 29), got)

	got, ok = ParseDate(now, "daqui a 2 meses")
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.March, 31), got)
}

func TestBareDay(t *testing.T) {
	tests := []struct {
		name string
		text string
		day  int
		ok   bool
	}{
		{name: "lone number", text: "12", day: 12, ok: true},
		{name: "dia prefix", text: "dia 5", day: 5, ok: true},
		{name: "no dia prefix", text: "no dia 28", day: 28, ok: true},
		{name: "slash date is not bare", text: "12/05", ok: false},
		{name: "month name is not bare", text: "12 de maio", ok: false},
		{name: "relative is not bare", text: "daqui 12", ok: false},
		{name: "out of range", text: "dia 42", ok: false},
		{name: "zero", text: "0", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, ok := BareDay(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.day, day)
			}
		})
	}
}

func TestMonthIndex(t *testing.T) {
	tests := []struct {
		text  string
		month time.Month
		ok    bool
	}{
		{text: "dezembro", month: time.December, ok: true},
		{text: "dez", month: time.December, ok: true},
		{text: "Março", month: time.March, ok: true},
		{text: "11", month: time.November, ok: true},
		{text: "01", month: time.January, ok: true},
		{text: "de abril", month: time.April, ok: true},
		{text: "13", ok: false},
		{text: "qualquer coisa", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			m, ok := MonthIndex(tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.month, m)
			}
		})
	}
}

func TestCombineDayMonth(t *testing.T) {
	now := time.Date(2024, time.June, 15, 8, 0, 0, 0, time.UTC)

	got, ok := CombineDayMonth(now, 20, "julho")
	assert.True(t, ok)
	assert.Equal(t, date(2024, time.July, 20), got)

	// Past combination rolls forward a year.
	got, ok = CombineDayMonth(now, 10, "fevereiro")
	assert.True(t, ok)
	assert.Equal(t, date(2025, time.February, 10), got)

	_, ok = CombineDayMonth(now, 10, "nada")
	assert.False(t, ok)
}

func TestAddMonthsClamped(t *testing.T) {
	assert.Equal(t, date(2024, time.February, 29), AddMonthsClamped(date(2024, time.January, 31), 1))
	assert.Equal(t, date(2023, time.February, 28), AddMonthsClamped(date(2023, time.January, 31), 1))
	assert.Equal(t, date(2024, time.April, 30), AddMonthsClamped(date(2024, time.March, 31), 1))
	assert.Equal(t, date(2025, time.January, 15), AddMonthsClamped(date(2024, time.December, 15), 1))
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "amanha", Normalize("Amanhã"))
	assert.Equal(t, "acao e reacao", Normalize("  Ação   e   Reação  "))
	assert.Equal(t, "", Normalize("   "))
}
