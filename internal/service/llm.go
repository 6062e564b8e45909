package service

import (
	"context"
	"errors"

	"google.golang.org/genai"

	config "github.com/hilit308-creator/autosocial/configs"
)

// TextModel is the only seam to the LLM. Everything above it deals in
// plain strings so generation can be faked in tests.
type TextModel interface {
	GenerateText(ctx context.Context, system, prompt string) (string, error)
}

type geminiModel struct {
	client *genai.Client
	model  string
}

func NewGeminiModel(ctx context.Context, cfg config.Config) (TextModel, error) {
	if cfg.GeminiAPIKey == "" {
		return nil, errors.New("GEMINI_API_KEY is not set")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GeminiAPIKey,
	})
	if err != nil {
		return nil, err
	}

	return &geminiModel{client: client, model: cfg.GeminiModel}, nil
}

func (m *geminiModel) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	result, err := m.client.Models.GenerateContent(
		ctx,
		m.model,
		genai.Text(prompt),
		&genai.GenerateContentConfig{
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: system}}},
		},
	)
	if err != nil {
		return "", err
	}
	return result.Text(), nil
}
