package console

import (
	"bytes"
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"ChatBot/internal/config"

	"go.uber.org/zap"
)

type call struct {
	query string
	paths []string
}

type fakeTurner struct {
	calls []call
	err   error
}

func (f *fakeTurner) RunOnce(_ context.Context, query string, paths []string) (string, error) {
	f.calls = append(f.calls, call{query: query, paths: paths})
	if f.err != nil {
		return "", f.err
	}
	return "answer to " + query, nil
}

func run(t *testing.T, input string, turner *fakeTurner) (string, error) {
	t.Helper()
	var out bytes.Buffer
	c, err := New(strings.NewReader(input), &out, turner, config.Defaults(), zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	err = c.Run(context.Background())
	return out.String(), err
}

func TestConsoleSingleTurnWithFiles(t *testing.T) {
	turner := &fakeTurner{}
	out, err := run(t, "Summarize\ny\na.txt\nb.png\n\nq\n", turner)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}

	want := []call{{query: "Summarize", paths: []string{"a.txt", "b.png"}}}
	if !reflect.DeepEqual(turner.calls, want) {
		t.Fatalf("unexpected calls: %#v", turner.calls)
	}
	if !strings.HasPrefix(out, "Welcome to ChatBot!\n\n\nPrompt: Do you want to upload files? (y or n) File location: ") {
		t.Fatalf("unexpected prompts: %q", out)
	}
	if !strings.Contains(out, "AI: answer to Summarize\n") {
		t.Fatalf("reply not printed: %q", out)
	}
}

func TestConsoleNoFiles(t *testing.T) {
	turner := &fakeTurner{}
	if _, err := run(t, "one\nn\ntwo\nanything\nq\n", turner); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	want := []call{{query: "one", paths: []string{}}, {query: "two", paths: []string{}}}
	if !reflect.DeepEqual(turner.calls, want) {
		t.Fatalf("unexpected calls: %#v", turner.calls)
	}
}

func TestConsoleExitImmediately(t *testing.T) {
	turner := &fakeTurner{}
	out, err := run(t, "q\n", turner)
	if err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(turner.calls) != 0 {
		t.Fatalf("no turns expected")
	}
	if out != "Welcome to ChatBot!\n\n\nPrompt: " {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestConsoleExitIsExactMatch(t *testing.T) {
	turner := &fakeTurner{}
	if _, err := run(t, " q\nn\nq\n", turner); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(turner.calls) != 1 || turner.calls[0].query != " q" {
		t.Fatalf("' q' is a regular query: %#v", turner.calls)
	}
}

func TestConsoleEOFEndsSession(t *testing.T) {
	turner := &fakeTurner{}
	if _, err := run(t, "hello\ny\nx.txt\n", turner); err != nil {
		t.Fatalf("EOF must end the session cleanly: %v", err)
	}
	if len(turner.calls) != 0 {
		t.Fatalf("unfinished turn must not be sent: %#v", turner.calls)
	}
}

func TestConsoleLastLineWithoutNewline(t *testing.T) {
	turner := &fakeTurner{}
	if _, err := run(t, "hi\r\nn\r\nq", turner); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if len(turner.calls) != 1 || turner.calls[0].query != "hi" {
		t.Fatalf("unexpected calls: %#v", turner.calls)
	}
}

func TestConsoleTurnFailureIsFatal(t *testing.T) {
	boom := errors.New("network is down")
	turner := &fakeTurner{err: boom}

	out, err := run(t, "one\nn\ntwo\nn\n", turner)
	if !errors.Is(err, boom) {
		t.Fatalf("expected turn error, got %v", err)
	}
	if len(turner.calls) != 1 {
		t.Fatalf("loop must stop after failure, calls=%d", len(turner.calls))
	}
	if strings.Contains(out, "Status code") {
		t.Fatalf("no status for plain errors: %q", out)
	}
}

func TestConsoleRendersMarkdown(t *testing.T) {
	cfg := config.Defaults()
	cfg.RenderMarkdown = true
	var out bytes.Buffer
	c, err := New(strings.NewReader("x\nn\nq\n"), &out, &fakeTurner{}, cfg, zap.NewNop().Sugar())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := c.Run(context.Background()); err != nil {
		t.Fatalf("Run returned error: %v", err)
	}
	if !strings.Contains(out.String(), "answer to x") {
		t.Fatalf("rendered reply missing: %q", out.String())
	}
}
