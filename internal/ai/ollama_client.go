package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"ChatBot/internal/service/conversation"

	ollama "github.com/ollama/ollama/api"
	"go.uber.org/zap"
)

// OllamaClient отправляет историю в локальный Ollama.
// У сообщения Ollama один текст и список картинок, поэтому текстовые блоки
// склеиваются через пустую строку, а картинки уходят отдельным списком.
type OllamaClient struct {
	client *ollama.Client
	model  string
	logger *zap.SugaredLogger
}

func NewOllamaClient(host, model string, logger *zap.SugaredLogger) (*OllamaClient, error) {
	u, err := url.Parse(host)
	if err != nil {
		return nil, fmt.Errorf("invalid ollama host %q: %w", host, err)
	}
	return &OllamaClient{
		client: ollama.NewClient(u, http.DefaultClient),
		model:  model,
		logger: logger,
	}, nil
}

func (c *OllamaClient) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	msgs, err := ollamaMessages(turns)
	if err != nil {
		return "", err
	}

	stream := false
	req := &ollama.ChatRequest{
		Model:    c.model,
		Messages: msgs,
		Stream:   &stream,
	}

	var b strings.Builder
	err = c.client.Chat(ctx, req, func(r ollama.ChatResponse) error {
		b.WriteString(r.Message.Content)
		if r.Done {
			c.logger.Debugw("Ollama chat done", "reason", r.DoneReason)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return b.String(), nil
}

func ollamaMessages(turns []conversation.Turn) ([]ollama.Message, error) {
	msgs := make([]ollama.Message, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case conversation.RoleUser:
			var texts []string
			var images []ollama.ImageData
			for _, b := range t.Blocks {
				switch b := b.(type) {
				case conversation.TextBlock:
					texts = append(texts, b.Text)
				case conversation.ImageBlock:
					raw, err := base64.StdEncoding.DecodeString(b.Data)
					if err != nil {
						return nil, fmt.Errorf("decode image: %w", err)
					}
					images = append(images, ollama.ImageData(raw))
				}
			}
			msgs = append(msgs, ollama.Message{Role: "user", Content: strings.Join(texts, "\n\n"), Images: images})
		case conversation.RoleAssistant:
			msgs = append(msgs, ollama.Message{Role: "assistant", Content: t.Text})
		}
	}
	return msgs, nil
}
