package chat

import (
	"context"
	"strings"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

const SystemPrompt = "You are an expert football tactics assistant. Answer with concrete, practical advice about formations, pressing, build-up and set pieces."

type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Model       string
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type Reply struct {
	Model        string `json:"model"`
	Content      string `json:"content"`
	FinishReason string `json:"finish_reason,omitempty"`
	TotalTokens  int    `json:"total_tokens,omitempty"`
}

// Completer sends a conversation to a chat-completion backend.
type Completer interface {
	Complete(ctx context.Context, req Request) (Reply, error)
}

// Conversation builds the message list for one question, with optional prior turns.
func Conversation(question string, history []Message) []Message {
	out := make([]Message, 0, len(history)+2)
	out = append(out, Message{Role: RoleSystem, Content: SystemPrompt})
	for _, m := range history {
		content := strings.TrimSpace(m.Content)
		if content == "" || (m.Role != RoleUser && m.Role != RoleAssistant) {
			continue
		}
		out = append(out, Message{Role: m.Role, Content: content})
	}
	out = append(out, Message{Role: RoleUser, Content: strings.TrimSpace(question)})
	return out
}
