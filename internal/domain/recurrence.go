package domain

import "time"

// Frequency is how often a recurrence fires.
type Frequency string

const (
	FrequencyDaily   Frequency = "diaria"
	FrequencyWeekly  Frequency = "semanal"
	FrequencyMonthly Frequency = "mensal"
	FrequencyYearly  Frequency = "anual"
)

// Valid reports whether f is one of the known frequencies.
func (f Frequency) Valid() bool {
	switch f {
	case FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly:
		return true
	}
	return false
}

// MonthlyRule selects how a monthly recurrence picks its day.
type MonthlyRule string

const (
	// MonthlyRuleFixedDay fires on a fixed day of the month (1..31).
	MonthlyRuleFixedDay MonthlyRule = "dia_do_mes"
	// MonthlyRuleNthBusinessDay fires on the Nth Monday-Friday day of the
	// month, counted from day 1.
	MonthlyRuleNthBusinessDay MonthlyRule = "n_dia_util"
)

// Recurrence repeats a template transaction on a schedule.
type Recurrence struct {
	ID             string
	UserID         string
	TransactionID  string
	Frequency      Frequency
	Interval       int
	MonthlyRule    *MonthlyRule
	DayOfMonth     *int
	NthBusinessDay *int
	NextCharge     time.Time
	CreatedAt      time.Time
}

// RecurrenceWithTemplate joins a recurrence to its template transaction's
// display fields, for report listings.
type RecurrenceWithTemplate struct {
	Recurrence
	Description string
	Amount      float64
	Kind        TransactionKind
}
