package ai

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"ChatBot/internal/service/conversation"
)

// sampleHistory: пользователь с файлом и картинкой, ответ ассистента, новый вопрос.
func sampleHistory() []conversation.Turn {
	h := conversation.New()
	h.Append(conversation.UserTurn([]conversation.Block{
		conversation.TextBlock{Text: "Uploaded document content:\nnotes.txt\n\nhello"},
		conversation.ImageBlock{MimeFormat: "jpg", Data: "/9j/AA=="},
		conversation.TextBlock{Text: "User query: what is this?"},
	}))
	h.Append(conversation.AssistantTurn("a cat"))
	h.Append(conversation.UserTurn([]conversation.Block{
		conversation.TextBlock{Text: "User query: are you sure?"},
	}))
	return h.Snapshot()
}

// captureServer отвечает фиксированным телом и запоминает последний запрос.
type captureServer struct {
	*httptest.Server
	path string
	body []byte
}

func newCaptureServer(t *testing.T, status int, response string) *captureServer {
	t.Helper()
	cs := &captureServer{}
	cs.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cs.path = r.URL.Path
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read body: %v", err)
		}
		cs.body = body
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, response)
	}))
	t.Cleanup(cs.Close)
	return cs
}

func imageWithData(data string) conversation.ImageBlock {
	return conversation.ImageBlock{MimeFormat: "png", Data: data}
}
