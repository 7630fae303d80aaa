package llm

import (
	"context"
	"fmt"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
)

// MockClient answers every call with the last user message echoed back
// inside a fenced block, so the whole workflow can be exercised
// offline without a real model.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (m *MockClient) Complete(ctx context.Context, model string, history domain.History) (string, error) {
	var lastUser string
	for _, msg := range history {
		if msg.Role == domain.RoleUser {
			lastUser = msg.Content
		}
	}
	return fmt.Sprintf(
		"No mistakes found. Compilation expected to be successful.\n```plaintext\n%s\n```",
		lastUser,
	), nil
}
