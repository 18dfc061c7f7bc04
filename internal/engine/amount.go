package engine

import (
	"regexp"
	"strconv"
	"strings"
)

var reNumber = regexp.MustCompile(`-?\d+(\.\d+)?`)

var currencyWords = strings.NewReplacer(
	"reais", "",
	"real", "",
	"contos", "",
	"conto", "",
)

// extractAmount pulls a monetary value out of free text, tolerating
// "R$ 160", "160,50", "3.200,00" and bare numbers. It reports false when
// no number is present.
func extractAmount(text string) (float64, bool) {
	t := strings.ToLower(text)
	t = strings.ReplaceAll(t, "r$", "")
	t = strings.Join(strings.Fields(t), "")
	t = currencyWords.Replace(t)

	switch {
	case strings.Contains(t, ",") && strings.Contains(t, "."):
		// pt-BR thousands plus decimal comma: 3.200,50.
		t = strings.ReplaceAll(t, ".", "")
		t = strings.Replace(t, ",", ".", 1)
	case strings.Contains(t, ","):
		t = strings.Replace(t, ",", ".", 1)
	}

	m := reNumber.FindString(t)
	if m == "" {
		return 0, false
	}

	v, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}
