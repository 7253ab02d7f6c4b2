package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Поддерживаемые провайдеры чата.
const (
	ProviderOpenAI    = "openai"
	ProviderResponses = "responses"
	ProviderAnthropic = "anthropic"
	ProviderGemini    = "gemini"
	ProviderOllama    = "ollama"
	ProviderStub      = "stub"
)

var providers = []string{ProviderOpenAI, ProviderResponses, ProviderAnthropic, ProviderGemini, ProviderOllama, ProviderStub}

type Config struct {
	DebugMode bool   `env:"DEBUG_MODE"` //Режим дебага
	Provider  string `env:"PROVIDER"`   // openai|responses|anthropic|gemini|ollama|stub
	Model     string `env:"MODEL"`      // Имя модели у провайдера
	APIKey    string `env:"GROQ_API"`   // Ключ провайдера. Пустой ключ не проверяем, провайдер ответит ошибкой авторизации
	BaseURL   string `env:"BASE_URL"`   // Базовый URL OpenAI-совместимого API (по умолчанию Groq)
	MaxTokens int    `env:"MAX_TOKENS"` // Лимит токенов ответа, нужен только Anthropic

	OllamaHost string `env:"OLLAMA_HOST"` // Адрес локального Ollama

	// Консоль
	ExitCommand    string `env:"EXIT_COMMAND"`    // Ввод, завершающий программу
	RenderMarkdown bool   `env:"RENDER_MARKDOWN"` // Рендерить ответ ИИ как markdown
	WordWrap       int    `env:"WORD_WRAP"`       // Ширина переноса при рендеринге
}

// Defaults возвращает конфигурацию с предустановленными значениями по умолчанию.
// Эти значения перекрываются .env, переменными окружения и флагами CLI.
func Defaults() *Config {
	return &Config{
		DebugMode:      false,
		Provider:       ProviderOpenAI,
		Model:          "meta-llama/llama-4-scout-17b-16e-instruct",
		BaseURL:        "https://api.groq.com/openai/v1",
		MaxTokens:      1024,
		OllamaHost:     "http://localhost:11434",
		ExitCommand:    "q",
		RenderMarkdown: false,
		WordWrap:       100,
	}
}

// NewConfig загружает конфигурацию приложения из .env, окружения и os.Args.
func NewConfig() *Config {
	cfg, err := Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load собирает конфигурацию: дефолты → .env → ENV → флаги из args.
func Load(args []string) (*Config, error) {
	_ = godotenv.Load()

	// Стартуем с дефолтов, затем перекрываем .env/окружением и флагами
	cfg := Defaults()
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	fs := flag.NewFlagSet("chatbot", flag.ContinueOnError)
	fs.BoolVar(&cfg.DebugMode, "debug-mode", cfg.DebugMode, "включить режим дебага (подробные логи)")
	fs.StringVar(&cfg.Provider, "provider", cfg.Provider, "провайдер: "+strings.Join(providers, "|"))
	fs.StringVar(&cfg.Model, "model", cfg.Model, "имя модели")
	fs.StringVar(&cfg.APIKey, "api-key", cfg.APIKey, "ключ API провайдера (перекрывает ENV GROQ_API)")
	fs.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "базовый URL OpenAI-совместимого API")
	fs.IntVar(&cfg.MaxTokens, "max-tokens", cfg.MaxTokens, "лимит токенов ответа (anthropic)")
	fs.StringVar(&cfg.OllamaHost, "ollama-host", cfg.OllamaHost, "адрес Ollama")
	fs.StringVar(&cfg.ExitCommand, "exit-command", cfg.ExitCommand, "команда выхода в приглашении Prompt")
	fs.BoolVar(&cfg.RenderMarkdown, "render-markdown", cfg.RenderMarkdown, "рендерить ответ ИИ как markdown")
	fs.IntVar(&cfg.WordWrap, "word-wrap", cfg.WordWrap, "ширина переноса строк при рендеринге markdown")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if !slices.Contains(providers, cfg.Provider) {
		return nil, fmt.Errorf("unknown provider %q, expected one of %s", cfg.Provider, strings.Join(providers, "|"))
	}
	if cfg.ExitCommand == "" {
		cfg.ExitCommand = "q"
	}

	return cfg, nil
}
