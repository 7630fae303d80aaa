// Package session implements one conversation turn against the model:
// build the user message, call the model, persist and audit-log both
// sides of the exchange.
package session

import (
	"context"

	"github.com/google/uuid"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
	"github.com/PabloGalante/modelfix-agent/internal/observability"
)

// FallbackNotice is the assistant content substituted when the model
// call fails. The session still completes and persists.
const FallbackNotice = "we were unable to process your request at this time."

type Service struct {
	llm   domain.ModelClient
	store domain.HistoryStore
}

func NewService(llm domain.ModelClient, store domain.HistoryStore) *Service {
	return &Service{
		llm:   llm,
		store: store,
	}
}

type ChatInput struct {
	Model  string
	Prompt string

	// StartFresh discards the persisted history and seeds a new
	// session, optionally with SystemMessage as the first entry.
	StartFresh    bool
	SystemMessage string
}

type ChatOutput struct {
	UserMessage      domain.Message
	AssistantMessage domain.Message
}

// Chat runs one full session turn. Whatever happens at the model or
// storage boundary, it returns both messages and leaves the persisted
// history ending in the new user and assistant turns; the user message
// is audit-logged before the model call, the assistant message after.
func (s *Service) Chat(ctx context.Context, in ChatInput) (*ChatOutput, error) {
	ctx = observability.WithTurnID(ctx, uuid.NewString())
	log := observability.LoggerFromContext(ctx).With(
		"model", in.Model,
		"start_fresh", in.StartFresh,
	)
	log.Info("session turn started")

	var working domain.History
	if in.StartFresh {
		working = domain.InitialHistory(in.SystemMessage)
	} else {
		working = s.store.Load(ctx)
	}

	userMsg, err := domain.NewMessage(domain.RoleUser, in.Prompt)
	if err != nil {
		return nil, err
	}

	// Logged before the model call is attempted, so the audit trail
	// has the request even when the call fails.
	if err := s.store.AppendLog(ctx, userMsg); err != nil {
		log.Warn("failed to append user message to audit log", "error", err)
	}
	working = append(working, userMsg)

	var assistantMsg domain.Message
	replyText, err := s.llm.Complete(ctx, in.Model, working)
	if err != nil {
		log.Warn("model call failed, substituting fallback reply", "error", err)
		assistantMsg = domain.Message{Role: domain.RoleAssistant, Content: FallbackNotice}
	} else {
		assistantMsg = domain.Message{Role: domain.RoleAssistant, Content: replyText}
	}

	working = append(working, assistantMsg)

	if err := s.store.Save(ctx, working); err != nil {
		log.Warn("failed to persist history snapshot", "error", err)
	}
	if err := s.store.AppendLog(ctx, assistantMsg); err != nil {
		log.Warn("failed to append assistant message to audit log", "error", err)
	}

	log.Info("session turn completed", "history_len", len(working))

	return &ChatOutput{
		UserMessage:      userMsg,
		AssistantMessage: assistantMsg,
	}, nil
}
