// Package recurrence computes the next occurrence date of a recurring
// transaction. Everything here is pure: the base instant is an input, so
// the same arguments always yield the same date.
package recurrence

import (
	"time"

	"ggfinance/internal/domain"
)

// Input describes one recurrence schedule.
type Input struct {
	Frequency      domain.Frequency
	MonthlyRule    *domain.MonthlyRule
	DayOfMonth     *int
	NthBusinessDay *int
	// Interval multiplies the frequency unit; zero means 1.
	Interval int
	// Base is the instant to compute from.
	Base time.Time
}

// Next returns the first occurrence strictly after Base.
//
// Daily, weekly and yearly frequencies are plain additive arithmetic.
// Monthly computes a candidate inside the base month using the monthly
// rule and, if that candidate is on or before Base, recomputes Interval
// months ahead.
func Next(in Input) time.Time {
	interval := in.Interval
	if interval <= 0 {
		interval = 1
	}
	base := in.Base

	switch in.Frequency {
	case domain.FrequencyDaily:
		return base.AddDate(0, 0, interval)
	case domain.FrequencyWeekly:
		return base.AddDate(0, 0, 7*interval)
	case domain.FrequencyYearly:
		return time.Date(base.Year()+interval, base.Month(), base.Day(),
			0, 0, 0, 0, base.Location())
	}

	// Monthly.
	candidate := monthlyCandidate(in, base.Year(), base.Month())
	if !candidate.After(base) {
		candidate = monthlyCandidate(in, base.Year(), base.Month()+time.Month(interval))
	}
	return candidate
}

func monthlyCandidate(in Input, year int, month time.Month) time.Time {
	if in.MonthlyRule != nil && *in.MonthlyRule == domain.MonthlyRuleNthBusinessDay {
		n := 1
		if in.NthBusinessDay != nil {
			n = *in.NthBusinessDay
		}
		return nthBusinessDay(year, month, n, in.Base.Location())
	}

	day := in.Base.Day()
	if in.DayOfMonth != nil {
		day = *in.DayOfMonth
	}
	return time.Date(year, month, day, 0, 0, 0, 0, in.Base.Location())
}

// nthBusinessDay scans the month from day 1 counting Monday-Friday dates
// and returns the Nth one. No holiday calendar: a weekday holiday still
// counts. When the month has fewer than n business days it falls back to
// the month's last business day.
func nthBusinessDay(year int, month time.Month, n int, loc *time.Location) time.Time {
	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	year, month = first.Year(), first.Month()

	count := 0
	for day := 1; day <= 31; day++ {
		d := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if d.Month() != month {
			break
		}
		if isBusinessDay(d) {
			count++
			if count == n {
				return d
			}
		}
	}

	for day := 31; day >= 1; day-- {
		d := time.Date(year, month, day, 0, 0, 0, 0, loc)
		if d.Month() != month {
			continue
		}
		if isBusinessDay(d) {
			return d
		}
	}

	return first
}

func isBusinessDay(d time.Time) bool {
	wd := d.Weekday()
	return wd != time.Saturday && wd != time.Sunday
}
