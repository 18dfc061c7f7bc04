package dates

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtractPeriod(t *testing.T) {
	now := time.Date(2024, time.February, 14, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		text     string
		expected Period
		ok       bool
	}{
		{
			name:     "this month",
			text:     "quanto gastei esse mês",
			expected: Period{Month: time.February, Year: 2024},
			ok:       true,
		},
		{
			name:     "last month",
			text:     "minhas despesas do mês passado",
			expected: Period{Month: time.January, Year: 2024},
			ok:       true,
		},
		{
			name:     "month before last crosses the year",
			text:     "receitas do mês retrasado",
			expected: Period{Month: time.December, Year: 2023},
			ok:       true,
		},
		{
			name:     "numbered month",
			text:     "gastos do mês 11",
			expected: Period{Month: time.November, Year: 2024},
			ok:       true,
		},
		{
			name:     "numbered month with year",
			text:     "gastos do mês 11 de 2023",
			expected: Period{Month: time.November, Year: 2023},
			ok:       true,
		},
		{
			name:     "month name",
			text:     "despesas de março",
			expected: Period{Month: time.March, Year: 2024},
			ok:       true,
		},
		{
			name:     "month name with year",
			text:     "despesas de março de 2025",
			expected: Period{Month: time.March, Year: 2025},
			ok:       true,
		},
		{
			name: "numbered month out of range",
			text: "mes 15",
			ok:   false,
		},
		{
			name: "no period",
			text: "listar minhas despesas",
			ok:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractPeriod(now, tt.text)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.expected, got)
			}
		})
	}
}

func TestPeriod_Interval(t *testing.T) {
	p := Period{Month: time.December, Year: 2024}
	start, end := p.Interval(time.UTC)

	assert.Equal(t, time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC), end)
}

func TestPeriod_String(t *testing.T) {
	assert.Equal(t, "02/2024", Period{Month: time.February, Year: 2024}.String())
}
