package ai

import (
	"context"
	"fmt"

	"ChatBot/internal/service/conversation"
)

// StubClient заглушка, которая не делает реальных запросов
type StubClient struct{}

func NewStubClient() *StubClient { return &StubClient{} }

// Complete отвечает сводкой по последнему сообщению пользователя.
func (c *StubClient) Complete(_ context.Context, turns []conversation.Turn) (string, error) {
	if len(turns) == 0 {
		return "запрос получен", nil
	}
	last := turns[len(turns)-1]
	images := 0
	for _, b := range last.Blocks {
		if _, ok := b.(conversation.ImageBlock); ok {
			images++
		}
	}
	return fmt.Sprintf("запрос получен: сообщений %d, блоков %d, изображений %d", len(turns), len(last.Blocks), images), nil
}
