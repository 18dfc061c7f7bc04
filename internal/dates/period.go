package dates

import (
	"regexp"
	"strconv"
	"time"
)

// Period is a calendar month of a given year.
type Period struct {
	Month time.Month
	Year  int
}

var (
	reThisMonth   = regexp.MustCompile(`\b(?:esse|este|neste)\s+mes\b|\bmes\s+atual\b`)
	reLastMonth   = regexp.MustCompile(`\bmes\s+passad[oa]\b`)
	reBeforeLast  = regexp.MustCompile(`\bmes\s+retrasad[oa]\b`)
	reMonthNumber = regexp.MustCompile(`\bmes\s*(\d{1,2})\b`)
	reYear        = regexp.MustCompile(`\b(20\d{2})\b`)
	reMonthWord   = regexp.MustCompile(`\b(janeiro|fevereiro|marco|abril|maio|junho|julho|agosto|setembro|outubro|novembro|dezembro)\b`)
)

// ExtractPeriod finds a month/year reference inside a reporting-style
// message: "esse mês", "mês passado", "mês retrasado", "mês 11", a month
// name, each with an optional explicit year. It returns false when the
// message carries no period, so callers can fall back to an unfiltered
// listing.
func ExtractPeriod(now time.Time, text string) (Period, bool) {
	t := Normalize(text)

	if reThisMonth.MatchString(t) {
		return Period{Month: now.Month(), Year: now.Year()}, true
	}

	if reLastMonth.MatchString(t) {
		d := time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		return Period{Month: d.Month(), Year: d.Year()}, true
	}

	if reBeforeLast.MatchString(t) {
		d := time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
		return Period{Month: d.Month(), Year: d.Year()}, true
	}

	if m := reMonthNumber.FindStringSubmatch(t); m != nil {
		n, _ := strconv.Atoi(m[1])
		if n >= 1 && n <= 12 {
			return Period{Month: time.Month(n), Year: explicitYear(t, now)}, true
		}
	}

	if m := reMonthWord.FindStringSubmatch(t); m != nil {
		month := monthNames[m[1]]
		return Period{Month: month, Year: explicitYear(t, now)}, true
	}

	return Period{}, false
}

func explicitYear(t string, now time.Time) int {
	if m := reYear.FindStringSubmatch(t); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	return now.Year()
}

// Interval returns the period's half-open range: the first instant of the
// month through the first instant of the next one (end exclusive).
func (p Period) Interval(loc *time.Location) (start, end time.Time) {
	start = time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, loc)
	end = time.Date(p.Year, p.Month+1, 1, 0, 0, 0, 0, loc)
	return start, end
}

// String renders the period as mm/yyyy.
func (p Period) String() string {
	return time.Date(p.Year, p.Month, 1, 0, 0, 0, 0, time.UTC).Format("01/2006")
}
