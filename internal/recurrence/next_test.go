package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"ggfinance/internal/domain"
)

func intp(n int) *int { return &n }

func rulep(r domain.MonthlyRule) *domain.MonthlyRule { return &r }

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestNext(t *testing.T) {
	tests := []struct {
		name     string
		in       Input
		expected time.Time
	}{
		{
			name: "daily",
			in: Input{
				Frequency: domain.FrequencyDaily,
				Base:      day(2024, time.June, 1),
			},
			expected: day(2024, time.June, 2),
		},
		{
			name: "daily with interval",
			in: Input{
				Frequency: domain.FrequencyDaily,
				Interval:  3,
				Base:      day(2024, time.June, 1),
			},
			expected: day(2024, time.June, 4),
		},
		{
			name: "weekly",
			in: Input{
				Frequency: domain.FrequencyWeekly,
				Base:      day(2024, time.June, 1),
			},
			expected: day(2024, time.June, 8),
		},
		{
			name: "yearly",
			in: Input{
				Frequency: domain.FrequencyYearly,
				Base:      day(2024, time.February, 10),
			},
			expected: day(2025, time.February, 10),
		},
		{
			name: "monthly fixed day still ahead this month",
			in: Input{
				Frequency:   domain.FrequencyMonthly,
				MonthlyRule: rulep(domain.MonthlyRuleFixedDay),
				DayOfMonth:  intp(25),
				Base:        day(2024, time.June, 10),
			},
			expected: day(2024, time.June, 25),
		},
		{
			name: "monthly fixed day already passed moves a month ahead",
			in: Input{
				Frequency:   domain.FrequencyMonthly,
				MonthlyRule: rulep(domain.MonthlyRuleFixedDay),
				DayOfMonth:  intp(5),
				Base:        day(2024, time.June, 10),
			},
			expected: day(2024, time.July, 5),
		},
		{
			name: "monthly fixed day equal to base is not today",
			in: Input{
				Frequency:   domain.FrequencyMonthly,
				MonthlyRule: rulep(domain.MonthlyRuleFixedDay),
				DayOfMonth:  intp(10),
				Base:        day(2024, time.June, 10),
			},
			expected: day(2024, time.July, 10),
		},
		{
			name: "monthly without rule uses base day",
			in: Input{
				Frequency: domain.FrequencyMonthly,
				Base:      day(2024, time.June, 10),
			},
			expected: day(2024, time.July, 10),
		},
		{
			name: "monthly with interval",
			in: Input{
				Frequency:   domain.FrequencyMonthly,
				MonthlyRule: rulep(domain.MonthlyRuleFixedDay),
				DayOfMonth:  intp(5),
				Interval:    2,
				Base:        day(2024, time.June, 10),
			},
			expected: day(2024, time.August, 5),
		},
		{
			// June 1 2024 is a Saturday, so the first business day is Monday the 3rd.
			name: "first business day skips the weekend",
			in: Input{
				Frequency:      domain.FrequencyMonthly,
				MonthlyRule:    rulep(domain.MonthlyRuleNthBusinessDay),
				NthBusinessDay: intp(1),
				Base:           day(2024, time.May, 20),
			},
			expected: day(2024, time.June, 3),
		},
		{
			// Base is past June's 1st business day, so it lands in July.
			name: "first business day already passed",
			in: Input{
				Frequency:      domain.FrequencyMonthly,
				MonthlyRule:    rulep(domain.MonthlyRuleNthBusinessDay),
				NthBusinessDay: intp(1),
				Base:           day(2024, time.June, 10),
			},
			expected: day(2024, time.July, 1),
		},
		{
			// 5th business day of June 2024: 3,4,5,6,7.
			name: "fifth business day",
			in: Input{
				Frequency:      domain.FrequencyMonthly,
				MonthlyRule:    rulep(domain.MonthlyRuleNthBusinessDay),
				NthBusinessDay: intp(5),
				Base:           day(2024, time.June, 1),
			},
			expected: day(2024, time.June, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Next(tt.in))
		})
	}
}

func TestNthBusinessDay_FallbackToLast(t *testing.T) {
	// No month has 23 business days, so the request clamps to the month's
	// last business day. June 2024 ends on a Sunday; Friday the 28th is last.
	got := nthBusinessDay(2024, time.June, 23, time.UTC)
	assert.Equal(t, day(2024, time.June, 28), got)
}
