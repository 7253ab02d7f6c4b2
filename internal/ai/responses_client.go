package ai

import (
	"context"

	"ChatBot/internal/service/conversation"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/openai/openai-go/v3/responses"
	"go.uber.org/zap"
)

// ResponsesClient отправляет историю в Responses API.
// Сервер не хранит контекст: каждый запрос несёт всю локальную историю.
type ResponsesClient struct {
	client openai.Client
	model  openai.ChatModel
	logger *zap.SugaredLogger
}

func NewResponsesClient(model string, logger *zap.SugaredLogger, opts ...option.RequestOption) *ResponsesClient {
	return &ResponsesClient{
		client: openai.NewClient(opts...),
		model:  openai.ChatModel(model),
		logger: logger,
	}
}

func (c *ResponsesClient) Complete(ctx context.Context, turns []conversation.Turn) (string, error) {
	resp, err := c.client.Responses.New(ctx, responses.ResponseNewParams{
		Model: c.model,
		Input: responses.ResponseNewParamsInputUnion{OfInputItemList: responseItems(turns)},
	})
	if err != nil {
		return "", err
	}
	c.logger.Debugw("Response received", "id", resp.ID)

	return resp.OutputText(), nil
}

func responseItems(turns []conversation.Turn) responses.ResponseInputParam {
	items := make(responses.ResponseInputParam, 0, len(turns))
	for _, t := range turns {
		switch t.Role {
		case conversation.RoleUser:
			// Порядок блоков сохраняем: файлы, затем запрос
			content := make(responses.ResponseInputMessageContentListParam, 0, len(t.Blocks))
			for _, b := range t.Blocks {
				switch b := b.(type) {
				case conversation.TextBlock:
					content = append(content, responses.ResponseInputContentParamOfInputText(b.Text))
				case conversation.ImageBlock:
					imageParam := responses.ResponseInputContentParamOfInputImage(responses.ResponseInputImageDetailAuto)
					imageParam.OfInputImage.ImageURL = openai.String(b.DataURL())
					content = append(content, imageParam)
				}
			}
			items = append(items, responses.ResponseInputItemParamOfMessage(content, responses.EasyInputMessageRoleUser))
		case conversation.RoleAssistant:
			// В Responses API ответ ассистента передаётся как output_message с output_text.
			var out responses.ResponseOutputTextParam
			out.Text = t.Text
			out.Annotations = nil
			items = append(items,
				responses.ResponseInputItemParamOfOutputMessage(
					[]responses.ResponseOutputMessageContentUnionParam{{OfOutputText: &out}},
					"", // id не обязателен для входного output_message
					responses.ResponseOutputMessageStatusCompleted,
				),
			)
		}
	}
	return items
}
