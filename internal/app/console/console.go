package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"ChatBot/internal/ai"
	"ChatBot/internal/config"

	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"
)

// Turner выполняет один ход диалога.
type Turner interface {
	RunOnce(ctx context.Context, query string, paths []string) (string, error)
}

// Console читает ввод пользователя в цикле. Один ход обрабатывается полностью до следующего.
type Console struct {
	in       *bufio.Reader
	out      io.Writer
	turner   Turner
	exit     string
	renderer *glamour.TermRenderer
	logger   *zap.SugaredLogger
}

func New(in io.Reader, out io.Writer, turner Turner, cfg *config.Config, logger *zap.SugaredLogger) (*Console, error) {
	c := &Console{
		in:     bufio.NewReader(in),
		out:    out,
		turner: turner,
		exit:   cfg.ExitCommand,
		logger: logger,
	}
	if cfg.RenderMarkdown {
		r, err := glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(cfg.WordWrap),
		)
		if err != nil {
			return nil, fmt.Errorf("markdown renderer: %w", err)
		}
		c.renderer = r
	}
	return c, nil
}

// Run крутит цикл до команды выхода или конца ввода (тогда возвращает nil).
// Ошибка хода возвращается как есть: продолжать диалог после неё нельзя.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprint(c.out, "Welcome to ChatBot!\n\n\n")
	for {
		query, err := c.ask("Prompt: ")
		if err != nil {
			return quit(err)
		}
		if query == c.exit {
			return nil
		}

		paths, err := c.askFiles()
		if err != nil {
			return quit(err)
		}

		reply, err := c.turner.RunOnce(ctx, query, paths)
		if err != nil {
			c.reportFailure(err)
			return err
		}
		fmt.Fprintln(c.out, "AI:", c.render(reply))
	}
}

// askFiles спрашивает, нужны ли файлы, и собирает пути до пустой строки.
func (c *Console) askFiles() ([]string, error) {
	answer, err := c.ask("Do you want to upload files? (y or n) ")
	if err != nil {
		return nil, err
	}
	paths := []string{} // свежий список на каждый ход
	if answer != "y" {
		return paths, nil
	}
	for {
		p, err := c.ask("File location: ")
		if err != nil {
			return nil, err
		}
		if p == "" {
			return paths, nil
		}
		paths = append(paths, p)
	}
}

// ask печатает приглашение и читает строку без завершающего перевода строки.
func (c *Console) ask(prompt string) (string, error) {
	fmt.Fprint(c.out, prompt)
	line, err := c.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return "", err
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return line, nil
}

func (c *Console) render(reply string) string {
	if c.renderer == nil {
		return reply
	}
	out, err := c.renderer.Render(reply)
	if err != nil {
		c.logger.Warnw("Не удалось отрендерить markdown, выводим как есть", "error", err)
		return reply
	}
	return out
}

// reportFailure печатает пользователю статус ответа провайдера, если он известен.
func (c *Console) reportFailure(err error) {
	if code, ok := ai.StatusCode(err); ok {
		fmt.Fprintf(c.out, "\nApp ran into an error. Status code %d\n", code)
	}
}

// quit превращает конец ввода в штатный выход.
func quit(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
