package main

import (
	"context"
	"io"
	"os"

	"ChatBot/internal/ai"
	"ChatBot/internal/app/console"
	"ChatBot/internal/app/requester"
	"ChatBot/internal/config"
	"ChatBot/internal/service/conversation"
	"ChatBot/internal/service/ingest"

	"go.uber.org/zap"
)

func main() {
	os.Exit(run())
}

func run() int {
	cfg := config.NewConfig()

	// создаём регистратор zap: подробный в режиме дебага
	var (
		logger *zap.Logger
		err    error
	)
	if cfg.DebugMode {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Debugw("Failed to sync logger", "error", err)
		}
	}()

	ctx := context.Background()

	sugar.Infow(
		"Starting app",
		"DebugMode", cfg.DebugMode,
		"Provider", cfg.Provider,
		"Model", cfg.Model,
	)

	client, err := ai.New(ctx, cfg, sugar)
	if err != nil {
		sugar.Errorw("failed to create AI client", "error", err)
		return 1
	}
	if closer, ok := client.(io.Closer); ok {
		defer closer.Close()
	}

	// История живёт до конца процесса и никуда не сохраняется
	history := conversation.New()
	req := requester.New(ingest.New(os.Stdout, sugar), client, history, sugar)

	con, err := console.New(os.Stdin, os.Stdout, req, cfg, sugar)
	if err != nil {
		sugar.Errorw("failed to create console", "error", err)
		return 1
	}

	if err := con.Run(ctx); err != nil {
		sugar.Errorw("Session aborted", "error", err, "turns", history.Len())
		return 1
	}
	return 0
}
