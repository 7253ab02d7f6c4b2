package requester

import (
	"context"
	"fmt"
	"time"

	"ChatBot/internal/ai"
	"ChatBot/internal/service/conversation"
	"ChatBot/internal/service/ingest"

	"go.uber.org/zap"
)

// Стадии хода, на которых ошибка считается фатальной.
const (
	StageIngest   = "ingest"
	StageComplete = "complete"
)

// TurnError описывает ошибку хода и стадию, на которой она произошла. Вызывающий логирует её и завершает процесс.
type TurnError struct {
	Stage string
	Err   error
}

func (e *TurnError) Error() string { return fmt.Sprintf("%s: %v", e.Stage, e.Err) }

func (e *TurnError) Unwrap() error { return e.Err }

// Ingestor превращает пути в записи файлов.
type Ingestor interface {
	Ingest(paths []string) ([]ingest.FileRecord, error)
}

type Requester struct {
	ingestor Ingestor
	client   ai.Client
	history  *conversation.History
	logger   *zap.SugaredLogger
}

func New(ingestor Ingestor, client ai.Client, history *conversation.History, logger *zap.SugaredLogger) *Requester {
	return &Requester{
		ingestor: ingestor,
		client:   client,
		history:  history,
		logger:   logger.With("session", history.ID),
	}
}

// RunOnce выполняет один ход диалога: файлы → сообщение → история → ответ ИИ → история.
// При ошибке ИИ сообщение пользователя остаётся в истории.
func (r *Requester) RunOnce(ctx context.Context, query string, paths []string) (string, error) {
	// 1. Разобрать файлы
	files, err := r.ingestor.Ingest(paths)
	if err != nil {
		return "", &TurnError{Stage: StageIngest, Err: err}
	}

	// 2. Собрать сообщение пользователя и добавить в историю
	blocks := conversation.Compose(query, files)
	r.history.Append(conversation.UserTurn(blocks))

	// 3. Отправить всю историю
	turns := r.history.Snapshot()
	start := time.Now()
	r.logger.Infow("Запрос в AI...", "turns", len(turns), "blocks", len(blocks), "files", len(files))
	reply, err := r.client.Complete(ctx, turns)
	dur := time.Since(start)
	if err != nil {
		r.logger.Errorw("Ошибка ответа AI", "duration", dur.String(), "error", err)
		return "", &TurnError{Stage: StageComplete, Err: err}
	}
	r.logger.Infow("Ответ AI получен", "duration", dur.String())

	// 4. Сохранить ответ
	r.history.Append(conversation.AssistantTurn(reply))
	return reply, nil
}
