package domain

// Action tags the interpretation of a free-text message.
type Action string

const (
	ActionRecordExpense      Action = "registrar_despesa"
	ActionRecordIncome       Action = "registrar_receita"
	ActionCreateCategory     Action = "criar_categoria"
	ActionCreateReminder     Action = "criar_lembrete"
	ActionCreateRecurrence   Action = "criar_recorrencia"
	ActionEditTransaction    Action = "editar_transacao"
	ActionDeleteTransaction  Action = "excluir_transacao"
	ActionDeleteReminder     Action = "excluir_lembrete"
	ActionViewBalance        Action = "ver_saldo"
	ActionViewProfile        Action = "ver_perfil"
	ActionSpendingByCategory Action = "ver_gastos_por_categoria"
	ActionSpendingOfCategory Action = "ver_gastos_da_categoria"
	ActionViewIncomes        Action = "ver_receitas_detalhadas"
	ActionViewExpenses       Action = "ver_despesas_detalhadas"
	ActionHelp               Action = "ajuda"
	ActionUnknown            Action = "desconhecido"
)

// Intent is a structured, action-tagged interpretation of one message.
// It is transient: built per turn, dispatched, never persisted. All fields
// except Action are optional and action-specific.
type Intent struct {
	Action Action

	Amount      *float64
	Description string
	Category    string

	// Reminder fields.
	Message  string
	DateExpr string

	// Scheduling of a future expense/income.
	Schedule     bool
	ScheduledFor string

	// Recurrence fields.
	Kind           TransactionKind
	Frequency      Frequency
	MonthlyRule    MonthlyRule
	DayOfMonth     *int
	NthBusinessDay *int

	// Edit/delete fields.
	ID       string
	Field    string
	NewValue string

	// Category creation.
	Name string
}

// Unknown is the hard-fallback intent substituted for anything the
// interpreter could not decode.
func Unknown() Intent {
	return Intent{Action: ActionUnknown}
}
