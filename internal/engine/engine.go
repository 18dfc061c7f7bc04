// Package engine is the dialogue core: it turns one inbound message plus
// the user's persisted conversation state into exactly one reply, one
// domain mutation, or both.
//
// Every turn walks a fixed cascade with early-exit semantics: reset
// command, pure greeting, active slot-filling stage, registration gate,
// deterministic detectors, NLU interpretation with dispatch, and finally
// the open-ended fallback reply. Earlier steps always win; a message that
// matches a detector never reaches the NLU service.
package engine

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"ggfinance/internal/dates"
	"ggfinance/internal/domain"
	"ggfinance/internal/nlu"
	"ggfinance/internal/repository"
	"ggfinance/internal/sender"
)

const (
	msgReset         = "🧹 Contexto apagado! Podemos começar do zero."
	msgSlowDown      = "⏳ Você está usando rápido demais. Aguarde um pouco antes de tentar novamente."
	msgInternalError = "😵 Tive um problema técnico agora. Tenta de novo em instantes."
	msgRestartFlow   = "⚠️ Perdi o fio da conversa. Pode me dizer de novo o que você precisa?"

	msgAIRateLimited = "🤖 Estou recebendo muitas mensagens agora. Me chama de novo daqui a pouco!"
	msgAIUnavailable = "🤖 Meu interpretador está fora do ar no momento. Tenta de novo em alguns minutos."
	msgAIGeneric     = "🤖 Não consegui processar sua mensagem agora. Pode tentar de novo?"
)

var greetingTokens = []string{"oi", "ola", "bom dia", "boa tarde", "boa noite"}

var financeKeywords = []string{"recebi", "paguei", "gastei", "boleto", "cartao"}

// Params carries the engine's collaborators. All of them are required.
type Params struct {
	Users        repository.UserRepository
	Contexts     repository.ContextRepository
	Categories   repository.CategoryRepository
	Transactions repository.TransactionRepository
	Reminders    repository.ReminderRepository
	Recurrences  repository.RecurrenceRepository

	Sender      sender.Sender
	Interpreter nlu.Interpreter
	Responder   nlu.Responder
	Limiter     *RateLimiter
	Clock       Clock
	Logger      *zap.Logger
}

// Engine resolves intents and drives the slot-filling conversations.
type Engine struct {
	users        repository.UserRepository
	contexts     repository.ContextRepository
	categories   repository.CategoryRepository
	transactions repository.TransactionRepository
	reminders    repository.ReminderRepository
	recurrences  repository.RecurrenceRepository

	sender      sender.Sender
	interpreter nlu.Interpreter
	responder   nlu.Responder
	limiter     *RateLimiter
	clock       Clock
	logger      *zap.Logger

	// Turns for the same user are serialized: the context store's
	// read-modify-write is not transactional, so two racing turns could
	// clobber each other's context writes.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// New creates the engine.
func New(p Params) *Engine {
	return &Engine{
		users:        p.Users,
		contexts:     p.Contexts,
		categories:   p.Categories,
		transactions: p.Transactions,
		reminders:    p.Reminders,
		recurrences:  p.Recurrences,
		sender:       p.Sender,
		interpreter:  p.Interpreter,
		responder:    p.Responder,
		limiter:      p.Limiter,
		clock:        p.Clock,
		logger:       p.Logger,
		locks:        make(map[string]*sync.Mutex),
	}
}

// Process handles one inbound message from one user, end to end. The
// returned error is for the caller's log; the user has already received
// an apology by the time it surfaces.
func (e *Engine) Process(ctx context.Context, phone, text string) error {
	lock := e.userLock(phone)
	lock.Lock()
	defer lock.Unlock()

	if err := e.process(ctx, phone, text); err != nil {
		e.logger.Error("turn failed",
			zap.String("phone", phone),
			zap.Error(err))
		e.sender.Send(ctx, phone, msgInternalError)
		return err
	}
	return nil
}

func (e *Engine) process(ctx context.Context, phone, text string) error {
	user, err := e.users.FindByPhone(phone)
	if err != nil {
		return fmt.Errorf("failed to load user: %w", err)
	}

	trimmed := strings.TrimSpace(text)
	lower := strings.ToLower(trimmed)

	if lower == "#reset" || lower == "/reset" {
		if err := e.contexts.Clear(phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		e.sender.Send(ctx, phone, msgReset)
		return nil
	}

	dialogue, err := e.contexts.Get(phone)
	if err != nil {
		return fmt.Errorf("failed to load context: %w", err)
	}

	if user != nil && dialogue == nil && isGreeting(trimmed) {
		e.sender.Send(ctx, phone,
			fmt.Sprintf("👋 Olá, *%s*! Como posso te ajudar hoje?", user.FirstName()))
		return nil
	}

	if dialogue != nil {
		return e.routeStage(ctx, user, dialogue, trimmed)
	}

	if user == nil {
		return e.startRegistration(ctx, phone)
	}

	norm := dates.Normalize(trimmed)
	for _, d := range detectors {
		if d.match(e, norm) {
			return d.run(e, ctx, user, norm)
		}
	}

	if !e.limiter.Allow(user.ID, e.clock.Now()) {
		e.sender.Send(ctx, phone, msgSlowDown)
		return nil
	}

	intents, err := e.interpreter.Interpret(ctx, trimmed, user)
	if err != nil {
		e.logger.Error("nlu call failed",
			zap.String("phone", phone),
			zap.Error(err))
		e.sender.Send(ctx, phone, apologyFor(nlu.Classify(err)))
		return nil
	}

	handled := false
	for _, intent := range intents {
		ok, err := e.dispatch(ctx, user, intent)
		if err != nil {
			return err
		}
		handled = handled || ok
	}
	if handled {
		return nil
	}

	reply, err := e.responder.Reply(ctx, trimmed)
	if err != nil {
		e.logger.Error("fallback reply failed",
			zap.String("phone", phone),
			zap.Error(err))
		e.sender.Send(ctx, phone, apologyFor(nlu.Classify(err)))
		return nil
	}
	e.sender.Send(ctx, phone, reply)
	return nil
}

// routeStage resumes the active slot-filling flow. No fallthrough: while
// a context exists, message content never reaches detectors or the NLU.
func (e *Engine) routeStage(ctx context.Context, user *domain.User, dialogue *domain.Context, text string) error {
	if dialogue.Stage == domain.StageRegisterName {
		return e.handleRegisterName(ctx, dialogue.Phone, text)
	}

	// Any other stage presumes a registered user; a stale context from a
	// wiped account restarts registration.
	if user == nil {
		if err := e.contexts.Clear(dialogue.Phone); err != nil {
			return fmt.Errorf("failed to clear context: %w", err)
		}
		return e.startRegistration(ctx, dialogue.Phone)
	}

	switch dialogue.Stage {
	case domain.StageCategoryName:
		return e.handleCategoryName(ctx, user, text)
	case domain.StageCategoryKind:
		return e.handleCategoryKind(ctx, user, dialogue.Data, text)

	case domain.StageReminderText:
		return e.handleReminderText(ctx, user, dialogue.Data, text)
	case domain.StageReminderDate:
		return e.handleReminderDate(ctx, user, dialogue.Data, text)
	case domain.StageReminderValue:
		return e.handleReminderValue(ctx, user, dialogue.Data, text)
	case domain.StageReminderMonth:
		return e.handleReminderMonth(ctx, user, dialogue.Data, text)

	case domain.StageRecurrenceValue:
		return e.handleRecurrenceValue(ctx, user, dialogue.Data, text)
	case domain.StageRecurrenceConfirm:
		return e.handleRecurrenceConfirm(ctx, user, dialogue.Data, text)

	case domain.StageEditTransactionID:
		return e.handleEditTransactionID(ctx, user, text)
	case domain.StageEditTransactionField:
		return e.handleEditTransactionField(ctx, user, dialogue.Data, text)

	case domain.StageDeleteTransactionID:
		return e.handleDeleteTransactionID(ctx, user, text)
	case domain.StageDeleteTransactionConfirm:
		return e.handleDeleteTransactionConfirm(ctx, user, dialogue.Data, text)

	case domain.StageDeleteReminderChoose:
		return e.handleDeleteReminderChoose(ctx, user, dialogue.Data, text)
	case domain.StageDeleteReminderConfirm:
		return e.handleDeleteReminderConfirm(ctx, user, dialogue.Data, text)
	}

	// Unknown stage tag, likely written by a newer build. Drop it.
	e.logger.Warn("unknown dialogue stage",
		zap.String("phone", dialogue.Phone),
		zap.String("stage", string(dialogue.Stage)))
	if err := e.contexts.Clear(dialogue.Phone); err != nil {
		return fmt.Errorf("failed to clear context: %w", err)
	}
	e.sender.Send(ctx, dialogue.Phone, msgRestartFlow)
	return nil
}

// dispatch runs one structured intent against its handler. It reports
// whether the intent was actually handled; unknown actions and intents
// missing required fields are skipped and count as unhandled.
func (e *Engine) dispatch(ctx context.Context, user *domain.User, intent domain.Intent) (bool, error) {
	switch intent.Action {
	case domain.ActionRecordExpense:
		return true, e.recordTransaction(ctx, user, domain.KindExpense, intent)
	case domain.ActionRecordIncome:
		return true, e.recordTransaction(ctx, user, domain.KindIncome, intent)
	case domain.ActionCreateCategory:
		return true, e.startCategoryCreation(ctx, user)
	case domain.ActionCreateReminder:
		return true, e.startReminder(ctx, user, intent)
	case domain.ActionCreateRecurrence:
		return true, e.startRecurrence(ctx, user, intent)
	case domain.ActionEditTransaction:
		return true, e.startTransactionEdit(ctx, user, intent.ID)
	case domain.ActionDeleteTransaction:
		return true, e.startTransactionDelete(ctx, user, intent.ID)
	case domain.ActionDeleteReminder:
		return true, e.startReminderDeletion(ctx, user, intent.Message, intent.DateExpr)
	case domain.ActionViewBalance:
		return true, e.sendBalanceReport(ctx, user)
	case domain.ActionViewProfile:
		return true, e.sendProfile(ctx, user)
	case domain.ActionSpendingByCategory:
		return true, e.sendSpendingByCategory(ctx, user, periodFromExpr(e.clock.Now(), intent.DateExpr))
	case domain.ActionSpendingOfCategory:
		if intent.Category == "" {
			return false, nil
		}
		return true, e.sendSpendingOfCategory(ctx, user, intent.Category)
	case domain.ActionViewIncomes:
		return true, e.sendTransactionList(ctx, user, domain.KindIncome, periodFromExpr(e.clock.Now(), intent.DateExpr))
	case domain.ActionViewExpenses:
		return true, e.sendTransactionList(ctx, user, domain.KindExpense, periodFromExpr(e.clock.Now(), intent.DateExpr))
	case domain.ActionHelp:
		e.sender.Send(ctx, user.Phone, helpText)
		return true, nil
	}
	return false, nil
}

func (e *Engine) userLock(phone string) *sync.Mutex {
	e.mu.Lock()
	defer e.mu.Unlock()
	lock, ok := e.locks[phone]
	if !ok {
		lock = &sync.Mutex{}
		e.locks[phone] = lock
	}
	return lock
}

// isGreeting matches short salutations from registered idle users, so
// they get an instant reply instead of an NLU round trip.
func isGreeting(text string) bool {
	norm := dates.Normalize(text)
	if len(norm) > 20 {
		return false
	}
	for _, r := range norm {
		if r >= '0' && r <= '9' {
			return false
		}
	}
	for _, kw := range financeKeywords {
		if strings.Contains(norm, kw) {
			return false
		}
	}
	for _, tok := range greetingTokens {
		if strings.HasPrefix(norm, tok) {
			return true
		}
	}
	return false
}

func apologyFor(f nlu.Failure) string {
	switch f {
	case nlu.FailureRateLimited:
		return msgAIRateLimited
	case nlu.FailureUnavailable:
		return msgAIUnavailable
	}
	return msgAIGeneric
}

// periodFromExpr extracts an optional month filter from an intent's free
// date expression.
func periodFromExpr(now time.Time, expr string) *dates.Period {
	if expr == "" {
		return nil
	}
	p, ok := dates.ExtractPeriod(now, expr)
	if !ok {
		return nil
	}
	return &p
}
