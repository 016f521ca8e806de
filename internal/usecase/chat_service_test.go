package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/chat"
	chatmock "github.com/merlocpr-creator/tacticxai-mvp/internal/mocks/domain/chat"
	"github.com/stretchr/testify/mock"
)

func TestChatService_Ask(t *testing.T) {
	t.Parallel()

	completer := chatmock.NewCompleter(t)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req chat.Request) bool {
		return req.Model == "llama-3.1-70b-versatile" &&
			len(req.Messages) == 2 &&
			req.Messages[0].Role == chat.RoleSystem &&
			req.Messages[1].Content == "How do I beat a low block?"
	})).Return(chat.Reply{Model: "llama-3.1-70b-versatile", Content: "Stretch the pitch."}, nil).Once()

	service := NewChatService(completer, ChatConfig{Enabled: true, Model: "llama-3.1-70b-versatile"}, nil)
	got, err := service.Ask(context.Background(), ChatInput{Question: "  How do I beat a low block? "})
	if err != nil {
		t.Fatalf("ask: %v", err)
	}
	if got.Content != "Stretch the pitch." {
		t.Fatalf("unexpected answer: %q", got.Content)
	}
}

func TestChatService_AskFailures(t *testing.T) {
	t.Parallel()

	t.Run("disabled", func(t *testing.T) {
		service := NewChatService(chatmock.NewCompleter(t), ChatConfig{}, nil)
		if _, err := service.Ask(context.Background(), ChatInput{Question: "press?"}); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})

	t.Run("empty question", func(t *testing.T) {
		service := NewChatService(chatmock.NewCompleter(t), ChatConfig{Enabled: true}, nil)
		if _, err := service.Ask(context.Background(), ChatInput{Question: "   "}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("question too long", func(t *testing.T) {
		service := NewChatService(chatmock.NewCompleter(t), ChatConfig{Enabled: true}, nil)
		question := strings.Repeat("á", maxQuestionRunes+1)
		if _, err := service.Ask(context.Background(), ChatInput{Question: question}); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput, got %v", err)
		}
	})

	t.Run("backend error", func(t *testing.T) {
		completer := chatmock.NewCompleter(t)
		completer.On("Complete", mock.Anything, mock.Anything).Return(chat.Reply{}, errors.New("status=429")).Once()
		service := NewChatService(completer, ChatConfig{Enabled: true}, nil)
		if _, err := service.Ask(context.Background(), ChatInput{Question: "press?"}); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})

	t.Run("empty answer", func(t *testing.T) {
		completer := chatmock.NewCompleter(t)
		completer.On("Complete", mock.Anything, mock.Anything).Return(chat.Reply{Content: " "}, nil).Once()
		service := NewChatService(completer, ChatConfig{Enabled: true}, nil)
		if _, err := service.Ask(context.Background(), ChatInput{Question: "press?"}); !errors.Is(err, ErrDependencyUnavailable) {
			t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
		}
	})
}
