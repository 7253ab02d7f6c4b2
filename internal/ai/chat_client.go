package ai

import (
	"context"
	"errors"

	"ChatBot/internal/service/conversation"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
)

// ChatClient отправляет историю в Chat Completions API.
// Подходит для любого OpenAI-совместимого сервиса (по умолчанию Groq).
type ChatClient struct {
	client openai.Client
	model  openai.ChatModel
	logger *zap.SugaredLogger
}

func NewChatClient(model string, logger *zap.SugaredLogger, opts ...option.RequestOption) *ChatClient {
	return &ChatClient{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(model),
		logger: logger,
	}
}

func (c *ChatClient) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    c.model,
		Messages: chatMessages(turns),
	})
	if err != nil {
		return "", err
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in chat completion response")
	}
	c.logger.Debugw("Chat completion received", "model", resp.Model, "finishReason", resp.Choices[0].FinishReason)

	return resp.Choices[0].Message.Content, nil
}

// chatMessages переводит историю в сообщения Chat Completions.
// Картинки уходят как image_url с data URL.
func chatMessages(turns []conversation.Turn) []openai.ChatCompletionMessageParamUnion {
	msgs := make([]openai.ChatCompletionMessageParamUnion, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case conversation.RoleUser:
			parts := make([]openai.ChatCompletionContentPartUnionParam, 0, len(t.Blocks))
			for _, b := range t.Blocks {
				switch b := b.(type) {
				case conversation.TextBlock:
					parts = append(parts, openai.TextContentPart(b.Text))
				case conversation.ImageBlock:
					parts = append(parts, openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{
						URL: b.DataURL(),
					}))
				}
			}
			msgs = append(msgs, openai.UserMessage(parts))
		case conversation.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(t.Text))
		}
	}
	return msgs
}
