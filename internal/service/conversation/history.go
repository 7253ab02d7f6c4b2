package conversation

import (
	"slices"

	"github.com/google/uuid"
)

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn описывает одно сообщение диалога. У пользователя заполнены Blocks, у ассистента Text.
type Turn struct {
	Role   Role
	Blocks []Block
	Text   string
}

// UserTurn создаёт сообщение пользователя.
func UserTurn(blocks []Block) Turn { return Turn{Role: RoleUser, Blocks: blocks} }

// AssistantTurn создаёт ответ ассистента.
func AssistantTurn(text string) Turn { return Turn{Role: RoleAssistant, Text: text} }

// History хранит локальную историю диалога, пока жив процесс.
// Сообщения только добавляются: удаления и усечения нет.
type History struct {
	ID    string
	turns []Turn
}

// New создаёт пустую историю с новым идентификатором сессии.
func New() *History {
	return &History{ID: uuid.NewString()}
}

// Append добавляет сообщение в конец.
func (h *History) Append(t Turn) {
	t.Blocks = slices.Clone(t.Blocks)
	h.turns = append(h.turns, t)
}

// Snapshot возвращает копию всей истории по порядку.
func (h *History) Snapshot() []Turn {
	out := make([]Turn, len(h.turns))
	for i, t := range h.turns {
		t.Blocks = slices.Clone(t.Blocks)
		out[i] = t
	}
	return out
}

func (h *History) Len() int { return len(h.turns) }
