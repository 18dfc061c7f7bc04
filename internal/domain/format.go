package domain

import (
	"fmt"
	"strings"
	"time"
)

// FormatDate renders a date in pt-BR dd/mm/yyyy notation.
func FormatDate(t time.Time) string {
	return t.Format("02/01/2006")
}

// FormatMoney renders an amount in pt-BR notation with two decimals,
// thousands separated by dots: 3200.5 -> "3.200,50".
func FormatMoney(v float64) string {
	s := fmt.Sprintf("%.2f", v)

	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}

	intPart := s[:len(s)-3]
	decPart := s[len(s)-2:]

	var b strings.Builder
	if neg {
		b.WriteByte('-')
	}
	for i, d := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte('.')
		}
		b.WriteRune(d)
	}
	b.WriteByte(',')
	b.WriteString(decPart)
	return b.String()
}
