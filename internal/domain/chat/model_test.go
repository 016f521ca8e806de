package chat

import "testing"

func TestConversation(t *testing.T) {
	got := Conversation("  How do I beat a 5-3-2?  ", []Message{
		{Role: RoleUser, Content: "We play 4-3-3."},
		{Role: RoleSystem, Content: "ignored"},
		{Role: RoleAssistant, Content: "   "},
		{Role: RoleAssistant, Content: "Use the wingers."},
	})

	if len(got) != 4 {
		t.Fatalf("expected 4 messages, got %d: %+v", len(got), got)
	}
	if got[0].Role != RoleSystem || got[0].Content != SystemPrompt {
		t.Fatalf("first message must be the system prompt, got %+v", got[0])
	}
	if got[3].Role != RoleUser || got[3].Content != "How do I beat a 5-3-2?" {
		t.Fatalf("last message must be the trimmed question, got %+v", got[3])
	}
}
