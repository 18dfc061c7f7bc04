package nlu

import (
	"encoding/json"
	"strconv"
	"strings"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
)

// ExtractIntents turns a raw model payload into ordered intents. The
// payload should be a JSON object or array, but the model sometimes wraps
// it in code fences or surrounding prose; both are tolerated. Any decode
// failure yields the single unknown intent — never an error.
func ExtractIntents(raw string) []domain.Intent {
	payload, ok := firstJSONValue(stripFences(raw))
	if !ok {
		return []domain.Intent{domain.Unknown()}
	}

	var wires []wireIntent
	if strings.HasPrefix(payload, "[") {
		if err := json.Unmarshal([]byte(payload), &wires); err != nil {
			return []domain.Intent{domain.Unknown()}
		}
	} else {
		var w wireIntent
		if err := json.Unmarshal([]byte(payload), &w); err != nil {
			return []domain.Intent{domain.Unknown()}
		}
		wires = []wireIntent{w}
	}

	if len(wires) == 0 {
		return []domain.Intent{domain.Unknown()}
	}

	intents := make([]domain.Intent, 0, len(wires))
	for _, w := range wires {
		intents = append(intents, w.intent())
	}
	return intents
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```JSON", "")
	s = strings.ReplaceAll(s, "```", "")
	return strings.TrimSpace(s)
}

// firstJSONValue finds the first balanced JSON object or array in s.
// Brace depth is tracked outside string literals only, so values
// containing "{" inside strings don't truncate the scan.
func firstJSONValue(s string) (string, bool) {
	start := strings.IndexAny(s, "{[")
	if start < 0 {
		return "", false
	}

	open := s[start]
	var close byte = '}'
	if open == '[' {
		close = ']'
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}

	return "", false
}

// wireIntent is the tolerant decode target for one intent. The model is
// asked for exact types but drifts: numbers arrive as strings, ids as
// numbers, fields under slightly different casings. Flexible fields decode
// as raw JSON and are coerced afterwards.
type wireIntent struct {
	Action       string          `json:"acao"`
	Amount       json.RawMessage `json:"valor"`
	Description  string          `json:"descricao"`
	Category     string          `json:"categoria"`
	Message      string          `json:"mensagem"`
	Date         json.RawMessage `json:"data"`
	Schedule     bool            `json:"agendar"`
	ScheduledFor string          `json:"dataAgendada"`
	Name         string          `json:"nome"`
	Kind         string          `json:"tipo"`
	Frequency    string          `json:"frequencia"`
	MonthlyRule  string          `json:"regraMensal"`
	DayOfMonth   json.RawMessage `json:"diaDoMes"`
	NthBusiness  json.RawMessage `json:"nDiaUtil"`
	ID           json.RawMessage `json:"id"`
	Field        string          `json:"campo"`
	NewValue     json.RawMessage `json:"novoValor"`
}

func (w wireIntent) intent() domain.Intent {
	action := domain.Action(dates.Normalize(w.Action))
	if action == "" {
		action = domain.ActionUnknown
	}

	in := domain.Intent{
		Action:         action,
		Amount:         rawFloat(w.Amount),
		Description:    strings.TrimSpace(w.Description),
		Category:       strings.TrimSpace(w.Category),
		Message:        strings.TrimSpace(w.Message),
		DateExpr:       rawString(w.Date),
		Schedule:       w.Schedule,
		ScheduledFor:   strings.TrimSpace(w.ScheduledFor),
		Name:           strings.TrimSpace(w.Name),
		DayOfMonth:     rawInt(w.DayOfMonth),
		NthBusinessDay: rawInt(w.NthBusiness),
		ID:             rawString(w.ID),
		Field:          strings.TrimSpace(w.Field),
		NewValue:       rawString(w.NewValue),
	}

	switch dates.Normalize(w.Kind) {
	case "receita":
		in.Kind = domain.KindIncome
	case "despesa":
		in.Kind = domain.KindExpense
	}

	switch dates.Normalize(w.Frequency) {
	case "diaria":
		in.Frequency = domain.FrequencyDaily
	case "semanal":
		in.Frequency = domain.FrequencyWeekly
	case "mensal":
		in.Frequency = domain.FrequencyMonthly
	case "anual":
		in.Frequency = domain.FrequencyYearly
	}

	switch dates.Normalize(w.MonthlyRule) {
	case "dia_do_mes":
		in.MonthlyRule = domain.MonthlyRuleFixedDay
	case "n_dia_util":
		in.MonthlyRule = domain.MonthlyRuleNthBusinessDay
	}

	return in
}

func rawString(raw json.RawMessage) string {
	if len(raw) == 0 || string(raw) == "null" {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}
	return ""
}

func rawFloat(raw json.RawMessage) *float64 {
	s := rawString(raw)
	if s == "" {
		return nil
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}

func rawInt(raw json.RawMessage) *int {
	f := rawFloat(raw)
	if f == nil {
		return nil
	}
	n := int(*f)
	return &n
}
