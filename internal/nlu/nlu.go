// Package nlu delegates message interpretation to the hosted Gemini
// service and normalizes whatever comes back into structured intents.
//
// The hard guarantee here is that malformed model output never surfaces
// as an error: anything that fails to decode collapses into a single
// "desconhecido" intent. Transport failures, by contrast, are real errors
// and carry a coarse classification for the caller's apology message.
package nlu

import (
	"context"
	"strings"

	"ggfinance/internal/domain"
)

// Interpreter converts one free-text message into ordered intents.
type Interpreter interface {
	Interpret(ctx context.Context, message string, user *domain.User) ([]domain.Intent, error)
}

// Responder produces the open-ended fallback reply when no intent matched.
type Responder interface {
	Reply(ctx context.Context, message string) (string, error)
}

// Failure is the coarse classification of a transport error.
type Failure int

const (
	FailureGeneric Failure = iota
	FailureRateLimited
	FailureUnavailable
)

// Classify inspects a transport error and picks the apology bucket.
// The hosted API surfaces limits and outages with recognizable status
// markers in the error text; anything else is generic.
func Classify(err error) Failure {
	if err == nil {
		return FailureGeneric
	}
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "429"),
		strings.Contains(msg, "resource_exhausted"),
		strings.Contains(msg, "quota"):
		return FailureRateLimited
	case strings.Contains(msg, "503"),
		strings.Contains(msg, "unavailable"),
		strings.Contains(msg, "overloaded"):
		return FailureUnavailable
	}
	return FailureGeneric
}
