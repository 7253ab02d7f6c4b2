package ai

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"ChatBot/internal/service/conversation"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
	"go.uber.org/zap"
)

// GeminiClient отправляет историю в Gemini через чат-сессию.
// Все сообщения кроме последнего становятся History, последнее отправляется SendMessage.
type GeminiClient struct {
	client *genai.Client
	model  string
	logger *zap.SugaredLogger
}

func NewGeminiClient(ctx context.Context, model, apiKey string, logger *zap.SugaredLogger) (*GeminiClient, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("gemini init: %w", err)
	}
	return &GeminiClient{client: client, model: model, logger: logger}, nil
}

func (c *GeminiClient) Close() error {
	return c.client.Close()
}

func (c *GeminiClient) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	contents, err := geminiContents(turns)
	if err != nil {
		return "", err
	}
	if len(contents) == 0 {
		return "", errors.New("gemini: empty history")
	}
	last := contents[len(contents)-1]
	if last.Role != "user" {
		return "", errors.New("gemini: last message is not from user")
	}

	cs := c.client.GenerativeModel(c.model).StartChat()
	cs.History = contents[:len(contents)-1]

	resp, err := cs.SendMessage(ctx, last.Parts...)
	if err != nil {
		return "", fmt.Errorf("gemini send message: %w", err)
	}
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return "", errors.New("gemini: empty response")
	}

	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		} else {
			c.logger.Debugw("Gemini response part is not text", "type", fmt.Sprintf("%T", part))
		}
	}
	return b.String(), nil
}

// geminiContents переводит историю в genai.Content. Ответы ассистента идут с ролью model.
func geminiContents(turns []conversation.Turn) ([]*genai.Content, error) {
	contents := make([]*genai.Content, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case conversation.RoleUser:
			parts := make([]genai.Part, 0, len(t.Blocks))
			for _, b := range t.Blocks {
				switch b := b.(type) {
				case conversation.TextBlock:
					parts = append(parts, genai.Text(b.Text))
				case conversation.ImageBlock:
					raw, err := base64.StdEncoding.DecodeString(b.Data)
					if err != nil {
						return nil, fmt.Errorf("decode image: %w", err)
					}
					parts = append(parts, genai.ImageData(strings.TrimPrefix(b.MediaType(), "image/"), raw))
				}
			}
			contents = append(contents, &genai.Content{Role: "user", Parts: parts})
		case conversation.RoleAssistant:
			contents = append(contents, &genai.Content{Role: "model", Parts: []genai.Part{genai.Text(t.Text)}})
		}
	}
	return contents, nil
}
