package dates

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "janeiro": time.January,
	"fev": time.February, "fevereiro": time.February,
	"mar": time.March, "marco": time.March,
	"abr": time.April, "abril": time.April,
	"mai": time.May, "maio": time.May,
	"jun": time.June, "junho": time.June,
	"jul": time.July, "julho": time.July,
	"ago": time.August, "agosto": time.August,
	"set": time.September, "setembro": time.September,
	"out": time.October, "outubro": time.October,
	"nov": time.November, "novembro": time.November,
	"dez": time.December, "dezembro": time.December,
}

var (
	reToday       = regexp.MustCompile(`\bhoje\b`)
	reTomorrow    = regexp.MustCompile(`\bamanha\b`)
	reRelative    = regexp.MustCompile(`\b(?:daqui a|daqui|dentro de|em|apos)\s+(\d+)\s*(dias?|semanas?|meses|mes|anos?)?\b`)
	reNumericFull = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})[/-](\d{2,4})$`)
	reNumericDM   = regexp.MustCompile(`^(\d{1,2})[/-](\d{1,2})$`)
	reNumericAny  = regexp.MustCompile(`(\d{1,2})[/-](\d{1,2})(?:[/-](\d{2,4}))?`)
	reBareDay     = regexp.MustCompile(`^(?:no dia|dia)?\s*(\d{1,2})$`)
	reDayNextMo   = regexp.MustCompile(`(?:dia\s+)?(\d{1,2}).*(mes que vem|proximo mes)`)
	reDayThisMo   = regexp.MustCompile(`(?:no\s+)?dia\s+(\d{1,2})\s+(?:deste|desse|do)\s+mes(?:\s+atual)?`)
	reDayOfMonth  = regexp.MustCompile(`(?:dia\s+)?(\d{1,2})\s+de\s+([a-z]+)(?:\s+de\s+(\d{4}))?`)
)

// ParseDate resolves a free-text pt-BR date expression against now.
// It returns the resolved calendar date at midnight and false when nothing
// in the text reads as a date, so the caller can re-prompt instead of
// silently defaulting.
func ParseDate(now time.Time, text string) (time.Time, bool) {
	t := Normalize(text)
	if t == "" {
		return time.Time{}, false
	}

	today := midnight(now)

	// "hoje" — an explicit numeric date in the same phrase wins over the
	// word itself ("hoje dia 10/02" means the 10th, not today).
	if reToday.MatchString(t) {
		if d, ok := findNumericDate(t, today); ok {
			return d, true
		}
		return today, true
	}

	// Checked before "amanha": it contains the substring.
	if strings.Contains(t, "depois de amanha") {
		return today.AddDate(0, 0, 2), true
	}

	if reTomorrow.MatchString(t) {
		return today.AddDate(0, 0, 1), true
	}

	if m := reRelative.FindStringSubmatchIndex(t); m != nil {
		// "em 10/02" is a date, not an offset.
		end := m[3]
		if end >= len(t) || (t[end] != '/' && t[end] != '-') {
			n, _ := strconv.Atoi(t[m[2]:m[3]])
			unit := ""
			if m[4] >= 0 {
				unit = t[m[4]:m[5]]
			}
			return addOffset(today, n, unit), true
		}
	}

	if m := reNumericFull.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		year, _ := strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
		return dateIn(today.Location(), year, time.Month(month), day), true
	}

	if m := reNumericDM.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		month, _ := strconv.Atoi(m[2])
		d := dateIn(today.Location(), today.Year(), time.Month(month), day)
		if d.Before(today) {
			d = dateIn(today.Location(), today.Year()+1, time.Month(month), day)
		}
		return d, true
	}

	if day, ok := BareDay(t); ok {
		d := dateIn(today.Location(), today.Year(), today.Month(), day)
		if d.Before(today) {
			d = d.AddDate(0, 1, 0)
		}
		return d, true
	}

	if m := reDayNextMo.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		return dateIn(today.Location(), today.Year(), today.Month()+1, day), true
	}

	if m := reDayThisMo.FindStringSubmatch(t); m != nil {
		day, _ := strconv.Atoi(m[1])
		return dateIn(today.Location(), today.Year(), today.Month(), day), true
	}

	if m := reDayOfMonth.FindStringSubmatch(t); m != nil {
		month, ok := monthNames[m[2]]
		if !ok {
			return time.Time{}, false
		}
		day, _ := strconv.Atoi(m[1])
		if m[3] != "" {
			year, _ := strconv.Atoi(m[3])
			return dateIn(today.Location(), year, month, day), true
		}
		d := dateIn(today.Location(), today.Year(), month, day)
		if d.Before(today) {
			d = dateIn(today.Location(), today.Year()+1, month, day)
		}
		return d, true
	}

	return time.Time{}, false
}

// BareDay reports a lone day-of-month reference ("dia 5", "5", "no dia 12")
// with no month name, slash or relative keyword around it.
func BareDay(text string) (int, bool) {
	t := Normalize(text)
	if strings.ContainsAny(t, "/-") {
		return 0, false
	}
	for name := range monthNames {
		if len(name) > 3 && strings.Contains(t, name) {
			return 0, false
		}
	}
	for _, kw := range []string{"amanha", "hoje", "daqui", "dentro", "apos", "mes"} {
		if strings.Contains(t, kw) {
			return 0, false
		}
	}

	m := reBareDay.FindStringSubmatch(t)
	if m == nil {
		return 0, false
	}
	day, _ := strconv.Atoi(m[1])
	if day < 1 || day > 31 {
		return 0, false
	}
	return day, true
}

// MonthIndex resolves a month given by number ("11", "01") or pt-BR name or
// three-letter abbreviation ("dezembro", "dez").
func MonthIndex(text string) (time.Month, bool) {
	t := Normalize(text)
	if t == "" {
		return 0, false
	}

	if n, err := strconv.Atoi(strings.TrimLeft(t, "0")); err == nil && n >= 1 && n <= 12 {
		return time.Month(n), true
	}

	if m, ok := monthNames[t]; ok {
		return m, true
	}
	for name, m := range monthNames {
		if len(name) > 3 && strings.Contains(t, name) {
			return m, true
		}
	}
	return 0, false
}

// CombineDayMonth builds a date from a held day and a month expression.
// When the result is already past for the current year it rolls to the
// next year.
func CombineDayMonth(now time.Time, day int, monthExpr string) (time.Time, bool) {
	month, ok := MonthIndex(monthExpr)
	if !ok {
		return time.Time{}, false
	}
	today := midnight(now)
	d := dateIn(today.Location(), today.Year(), month, day)
	if d.Before(today) {
		d = dateIn(today.Location(), today.Year()+1, month, day)
	}
	return d, true
}

func findNumericDate(t string, today time.Time) (time.Time, bool) {
	m := reNumericAny.FindStringSubmatch(t)
	if m == nil {
		return time.Time{}, false
	}
	day, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	year := today.Year()
	if m[3] != "" {
		year, _ = strconv.Atoi(m[3])
		if year < 100 {
			year += 2000
		}
	}
	return dateIn(today.Location(), year, time.Month(month), day), true
}

func addOffset(today time.Time, n int, unit string) time.Time {
	switch {
	case strings.HasPrefix(unit, "semana"):
		return today.AddDate(0, 0, 7*n)
	case strings.HasPrefix(unit, "mes"):
		return AddMonthsClamped(today, n)
	case strings.HasPrefix(unit, "ano"):
		return AddMonthsClamped(today, 12*n)
	default:
		// Unit omitted means days.
		return today.AddDate(0, 0, n)
	}
}

// AddMonthsClamped advances t by n months, clamping the day to the last
// valid day of the target month instead of overflowing into the next one
// (Jan 31 + 1 month = Feb 29/28, not Mar 2/3).
func AddMonthsClamped(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month()+time.Month(n), 1, 0, 0, 0, 0, t.Location())
	last := daysIn(first.Year(), first.Month())
	day := t.Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func dateIn(loc *time.Location, year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}
