package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/modelfix-agent/internal/adapters/storage/memory"
	"github.com/PabloGalante/modelfix-agent/internal/app/session"
	"github.com/PabloGalante/modelfix-agent/internal/domain"
	"github.com/PabloGalante/modelfix-agent/internal/extract"
)

// stubClient returns a canned reply, or an error, and records the
// histories it was called with.
type stubClient struct {
	reply string
	err   error
	calls []domain.History
}

func (s *stubClient) Complete(ctx context.Context, model string, history domain.History) (string, error) {
	snapshot := make(domain.History, len(history))
	copy(snapshot, history)
	s.calls = append(s.calls, snapshot)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestChatAppendsAndPersistsBothTurns(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &stubClient{reply: "looks good"}
	svc := session.NewService(client, store)

	out, err := svc.Chat(ctx, session.ChatInput{
		Model:  "gemini-2.5-flash",
		Prompt: "check this",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, out.UserMessage.Role)
	assert.Equal(t, "check this", out.UserMessage.Content)
	assert.Equal(t, domain.RoleAssistant, out.AssistantMessage.Role)
	assert.Equal(t, "looks good", out.AssistantMessage.Content)

	persisted := store.Load(ctx)
	require.Len(t, persisted, 2)
	assert.Equal(t, out.UserMessage, persisted[0])
	assert.Equal(t, out.AssistantMessage, persisted[1])
}

func TestChatContinuesExistingHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, domain.History{
		{Role: domain.RoleUser, Content: "earlier"},
		{Role: domain.RoleAssistant, Content: "reply"},
	}))

	client := &stubClient{reply: "again"}
	svc := session.NewService(client, store)

	_, err := svc.Chat(ctx, session.ChatInput{Model: "m", Prompt: "next"})
	require.NoError(t, err)

	// The model sees prior turns plus the new prompt.
	require.Len(t, client.calls, 1)
	require.Len(t, client.calls[0], 3)
	assert.Equal(t, "earlier", client.calls[0][0].Content)
	assert.Equal(t, "next", client.calls[0][2].Content)

	assert.Len(t, store.Load(ctx), 4)
}

func TestChatStartFreshIgnoresPriorHistory(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.Save(ctx, domain.History{
		{Role: domain.RoleUser, Content: "stale"},
	}))

	client := &stubClient{reply: "ok"}
	svc := session.NewService(client, store)

	_, err := svc.Chat(ctx, session.ChatInput{
		Model:         "m",
		Prompt:        "fresh prompt",
		StartFresh:    true,
		SystemMessage: "S",
	})
	require.NoError(t, err)

	persisted := store.Load(ctx)
	require.Len(t, persisted, 3)
	assert.Equal(t, domain.Message{Role: domain.RoleSystem, Content: "S"}, persisted[0])
	assert.Equal(t, "fresh prompt", persisted[1].Content)
	assert.Equal(t, domain.RoleAssistant, persisted[2].Role)
	assert.NotContains(t, persisted, domain.Message{Role: domain.RoleUser, Content: "stale"})
}

func TestChatModelFailureSubstitutesFallback(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &stubClient{err: errors.New("network down")}
	svc := session.NewService(client, store)

	out, err := svc.Chat(ctx, session.ChatInput{Model: "m", Prompt: "hello"})
	require.NoError(t, err)

	assert.Equal(t, session.FallbackNotice, out.AssistantMessage.Content)

	persisted := store.Load(ctx)
	require.Len(t, persisted, 2)
	assert.Equal(t, "hello", persisted[0].Content)
	assert.Equal(t, session.FallbackNotice, persisted[1].Content)

	logged := store.LoggedMessages()
	require.Len(t, logged, 2)
	assert.Equal(t, domain.RoleUser, logged[0].Role)
	assert.Equal(t, session.FallbackNotice, logged[1].Content)
}

func TestChatAuditLogOrdering(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &stubClient{reply: "fine"}
	svc := session.NewService(client, store)

	_, err := svc.Chat(ctx, session.ChatInput{Model: "m", Prompt: "p"})
	require.NoError(t, err)

	logged := store.LoggedMessages()
	require.Len(t, logged, 2)
	assert.Equal(t, domain.RoleUser, logged[0].Role)
	assert.Equal(t, domain.RoleAssistant, logged[1].Role)
}

func TestChatEndToEndSuggestionExtraction(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	client := &stubClient{reply: "```plaintext\ncorrected model\n```"}
	svc := session.NewService(client, store)

	out, err := svc.Chat(ctx, session.ChatInput{
		Model:         "m",
		Prompt:        "fix spelling in: teh model",
		StartFresh:    true,
		SystemMessage: "You are a checker",
	})
	require.NoError(t, err)

	assert.Equal(t, "corrected model", extract.Suggestion(out.AssistantMessage.Content))

	persisted := store.Load(ctx)
	require.Len(t, persisted, 3)
	assert.Equal(t, domain.RoleSystem, persisted[0].Role)
	assert.Equal(t, domain.RoleUser, persisted[1].Role)
	assert.Equal(t, domain.RoleAssistant, persisted[2].Role)
}
