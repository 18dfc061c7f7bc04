package domain

import "time"

// Stage identifies which multi-turn flow (and which step of it) a user is
// currently inside. A user with no stored context has no stage.
type Stage string

const (
	StageRegisterName Stage = "cadastro_nome"

	StageCategoryName Stage = "criando_categoria_nome"
	StageCategoryKind Stage = "criando_categoria_tipo"

	StageReminderText  Stage = "criando_lembrete_texto"
	StageReminderDate  Stage = "criando_lembrete_data"
	StageReminderValue Stage = "criando_lembrete_valor"
	StageReminderMonth Stage = "complementar_mes_lembrete"

	StageRecurrenceValue   Stage = "informar_valor_recorrencia"
	StageRecurrenceConfirm Stage = "confirmar_criar_recorrencia"

	StageEditTransactionID    Stage = "editar_transacao_id"
	StageEditTransactionField Stage = "editar_transacao_opcao"

	StageDeleteTransactionID      Stage = "excluir_transacao_id"
	StageDeleteTransactionConfirm Stage = "confirmar_exclusao"

	StageDeleteReminderChoose  Stage = "excluir_lembrete_escolher"
	StageDeleteReminderConfirm Stage = "confirmar_exclusao_lembrete"
)

// ContextData carries the partially collected slots of the active flow.
// Each stage reads and writes only the fields it owns; the zero value is
// an empty slot set.
type ContextData struct {
	// Reminder flow.
	Text     string   `json:"texto,omitempty"`
	DateExpr string   `json:"data,omitempty"`
	Amount   *float64 `json:"valor,omitempty"`
	// Day held while the month is being complemented.
	Day int `json:"dia,omitempty"`

	// Category flow.
	Name string `json:"nome,omitempty"`

	// Recurrence flow.
	Description    string     `json:"descricao,omitempty"`
	Kind           string     `json:"tipo,omitempty"`
	Frequency      string     `json:"frequencia,omitempty"`
	MonthlyRule    string     `json:"regra_mensal,omitempty"`
	DayOfMonth     int        `json:"dia_do_mes,omitempty"`
	NthBusinessDay int        `json:"n_dia_util,omitempty"`
	NextCharge     *time.Time `json:"proxima_cobra,omitempty"`

	// Transaction edit/delete flows.
	TransactionID string `json:"transacao_id,omitempty"`

	// Reminder deletion: candidate ids awaiting a list-index choice, then
	// the chosen id awaiting confirmation.
	ReminderIDs []string `json:"lembretes,omitempty"`
	ReminderID  string   `json:"lembrete_id,omitempty"`
}

// Merge returns a shallow merge of d overlaid with the non-zero fields of
// patch. Stage transitions that carry data forward go through here so the
// update is an explicit transform instead of ad hoc field pokes.
func (d ContextData) Merge(patch ContextData) ContextData {
	out := d
	if patch.Text != "" {
		out.Text = patch.Text
	}
	if patch.DateExpr != "" {
		out.DateExpr = patch.DateExpr
	}
	if patch.Amount != nil {
		out.Amount = patch.Amount
	}
	if patch.Day != 0 {
		out.Day = patch.Day
	}
	if patch.Name != "" {
		out.Name = patch.Name
	}
	if patch.Description != "" {
		out.Description = patch.Description
	}
	if patch.Kind != "" {
		out.Kind = patch.Kind
	}
	if patch.Frequency != "" {
		out.Frequency = patch.Frequency
	}
	if patch.MonthlyRule != "" {
		out.MonthlyRule = patch.MonthlyRule
	}
	if patch.DayOfMonth != 0 {
		out.DayOfMonth = patch.DayOfMonth
	}
	if patch.NthBusinessDay != 0 {
		out.NthBusinessDay = patch.NthBusinessDay
	}
	if patch.NextCharge != nil {
		out.NextCharge = patch.NextCharge
	}
	if patch.TransactionID != "" {
		out.TransactionID = patch.TransactionID
	}
	if patch.ReminderIDs != nil {
		out.ReminderIDs = patch.ReminderIDs
	}
	if patch.ReminderID != "" {
		out.ReminderID = patch.ReminderID
	}
	return out
}

// Context is the persisted dialogue state of one user. At most one context
// exists per user at any time.
type Context struct {
	Phone     string
	Stage     Stage
	Data      ContextData
	CreatedAt time.Time
}
