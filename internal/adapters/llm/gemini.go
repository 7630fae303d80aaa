package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/PabloGalante/modelfix-agent/internal/domain"
)

// GeminiClient implements domain.ModelClient on top of the genai SDK.
// With a GCP project configured it talks to Vertex AI; otherwise it
// uses the Gemini API and expects GEMINI_API_KEY in the environment.
type GeminiClient struct {
	client *genai.Client
}

type GeminiConfig struct {
	GCPProject  string
	GCPLocation string
}

func NewGeminiClient(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	clientCfg := &genai.ClientConfig{}
	if cfg.GCPProject != "" {
		clientCfg.Project = cfg.GCPProject
		clientCfg.Location = cfg.GCPLocation
		clientCfg.Backend = genai.BackendVertexAI
	} else {
		clientCfg.Backend = genai.BackendGeminiAPI
	}

	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GeminiClient{client: client}, nil
}

// Complete implements domain.ModelClient. The ordered history maps to
// genai contents; system messages become the system instruction.
func (g *GeminiClient) Complete(
	ctx context.Context,
	model string,
	history domain.History,
) (string, error) {
	var (
		systemParts []string
		contents    []*genai.Content
	)

	for _, m := range history {
		switch m.Role {
		case domain.RoleSystem:
			systemParts = append(systemParts, m.Content)
		case domain.RoleAssistant:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleModel))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}

	temp := float32(0.2)
	topP := float32(0.9)
	outputTokens := int32(8192)

	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: outputTokens,
	}
	if len(systemParts) > 0 {
		cfg.SystemInstruction = genai.NewContentFromText(strings.Join(systemParts, "\n\n"), genai.RoleUser)
	}

	res, err := g.client.Models.GenerateContent(ctx, model, contents, cfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate content: %w", err)
	}

	text := res.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}
