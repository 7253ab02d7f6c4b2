package ai

import (
	"context"
	"strings"

	"ChatBot/internal/service/conversation"

	"github.com/anthropics/anthropic-sdk-go"
	anthropicopt "github.com/anthropics/anthropic-sdk-go/option"
	"go.uber.org/zap"
)

// AnthropicClient отправляет историю в Anthropic Messages API.
type AnthropicClient struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	logger    *zap.SugaredLogger
}

func NewAnthropicClient(model string, maxTokens int, logger *zap.SugaredLogger, opts ...anthropicopt.RequestOption) *AnthropicClient {
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	return &AnthropicClient{
		client:    anthropic.NewClient(opts...),
		model:     model,
		maxTokens: int64(maxTokens),
		logger:    logger,
	}
}

func (c *AnthropicClient) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	msg, err := c.client.Messages.New(ctx, anthropic.MessageNewParams{
		Model:     anthropic.Model(c.model),
		MaxTokens: c.maxTokens,
		Messages:  anthropicMessages(turns),
	})
	if err != nil {
		return "", err
	}
	c.logger.Debugw("Anthropic message received", "id", msg.ID, "stopReason", msg.StopReason)

	var b strings.Builder
	for _, cb := range msg.Content {
		if tb, ok := cb.AsAny().(anthropic.TextBlock); ok {
			b.WriteString(tb.Text)
		}
	}
	return b.String(), nil
}

func anthropicMessages(turns []conversation.Turn) []anthropic.MessageParam {
	msgs := make([]anthropic.MessageParam, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case conversation.RoleUser:
			blocks := make([]anthropic.ContentBlockParamUnion, 0, len(t.Blocks))
			for _, b := range t.Blocks {
				switch b := b.(type) {
				case conversation.TextBlock:
					blocks = append(blocks, anthropic.NewTextBlock(b.Text))
				case conversation.ImageBlock:
					blocks = append(blocks, anthropic.NewImageBlockBase64(b.MediaType(), b.Data))
				}
			}
			msgs = append(msgs, anthropic.NewUserMessage(blocks...))
		case conversation.RoleAssistant:
			msgs = append(msgs, anthropic.NewAssistantMessage(anthropic.NewTextBlock(t.Text)))
		}
	}
	return msgs
}
