package simulator

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"

	"github.com/je17/promptflow/internal/llm"
)

// Turn is a single utterance in a simulated conversation.
type Turn struct {
	Role    llm.Role `json:"role"`
	Content string   `json:"content"`
}

// ConversationHistory accumulates the turns of one simulated conversation.
type ConversationHistory struct {
	Turns []Turn `json:"turns"`
}

// Add appends a turn to the history.
func (h *ConversationHistory) Add(role llm.Role, content string) {
	h.Turns = append(h.Turns, Turn{Role: role, Content: content})
}

// Len returns the number of turns so far.
func (h *ConversationHistory) Len() int {
	return len(h.Turns)
}

// Messages converts the history into LLM messages.
func (h *ConversationHistory) Messages() []llm.Message {
	msgs := make([]llm.Message, 0, len(h.Turns))
	for _, turn := range h.Turns {
		msgs = append(msgs, llm.Message{Role: turn.Role, Content: turn.Content})
	}
	return msgs
}

// JSONLine is one record of the JSON-line chat protocol: a finished
// conversation plus metadata about how it was produced.
type JSONLine struct {
	Messages   []Turn         `json:"messages"`
	TokenCount int            `json:"token_count"`
	Metadata   map[string]any `json:"metadata,omitempty"`
}

var (
	encodingOnce sync.Once
	encoding     *tiktoken.Tiktoken
)

// countTokens measures a conversation with the cl100k_base encoding. The
// encoding table is fetched lazily and may be unavailable offline, in which
// case a whitespace word count stands in.
func countTokens(turns []Turn) int {
	encodingOnce.Do(func() {
		enc, err := tiktoken.GetEncoding("cl100k_base")
		if err == nil {
			encoding = enc
		}
	})

	total := 0
	for _, turn := range turns {
		if encoding != nil {
			total += len(encoding.Encode(turn.Content, nil, nil))
		} else {
			total += len(strings.Fields(turn.Content))
		}
	}
	return total
}
