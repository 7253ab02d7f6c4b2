package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"ChatBot/internal/config"
	"ChatBot/internal/service/conversation"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	ollama "github.com/ollama/ollama/api"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// Client интерфейс для взаимодействия с AI. Все реализации должны быть взаимозаменяемыми.
// Complete получает всю историю диалога и возвращает ответ на последнее сообщение.
type Client interface {
	Complete(ctx context.Context, turns []conversation.Turn) (string, error)
}

// New создаёт клиента выбранного в конфиге провайдера.
// Повторы запросов в SDK отключены: неудачный вызов завершается ошибкой сразу.
func New(ctx context.Context, cfg *config.Config, logger *zap.SugaredLogger) (Client, error) {
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewChatClient(cfg.Model, logger, openAIOptions(cfg)...), nil
	case config.ProviderResponses:
		return NewResponsesClient(cfg.Model, logger, openAIOptions(cfg)...), nil
	case config.ProviderAnthropic:
		return NewAnthropicClient(cfg.Model, cfg.MaxTokens, logger,
			anthropicopt.WithAPIKey(cfg.APIKey),
			anthropicopt.WithMaxRetries(0),
		), nil
	case config.ProviderGemini:
		return NewGeminiClient(ctx, cfg.Model, cfg.APIKey, logger)
	case config.ProviderOllama:
		return NewOllamaClient(cfg.OllamaHost, cfg.Model, logger)
	case config.ProviderStub:
		return NewStubClient(), nil
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}

func openAIOptions(cfg *config.Config) []option.RequestOption {
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		opts = append(opts, option.WithBaseURL(strings.TrimRight(base, "/")+"/"))
	}
	return opts
}

// StatusCode достаёт HTTP-статус из ошибки провайдера, если он есть.
func StatusCode(err error) (int, bool) {
	var oe *openai.Error
	if errors.As(err, &oe) {
		return oe.StatusCode, true
	}
	var ae *anthropic.Error
	if errors.As(err, &ae) {
		return ae.StatusCode, true
	}
	var se ollama.StatusError
	if errors.As(err, &se) {
		return se.StatusCode, true
	}
	return 0, false
}
