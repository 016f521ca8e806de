package usecase

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/chat"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
)

const maxQuestionRunes = 2000

type ChatConfig struct {
	Enabled     bool
	Model       string
	Temperature float64
	MaxTokens   int
}

type ChatInput struct {
	Question string
	History  []chat.Message
}

type ChatService struct {
	completer chat.Completer
	cfg       ChatConfig
	logger    *logging.Logger
}

func NewChatService(completer chat.Completer, cfg ChatConfig, logger *logging.Logger) *ChatService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ChatService{completer: completer, cfg: cfg, logger: logger}
}

// Ask forwards one tactical question. Every backend failure is ErrDependencyUnavailable.
func (s *ChatService) Ask(ctx context.Context, input ChatInput) (chat.Reply, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ChatService.Ask")
	defer span.End()

	question := strings.TrimSpace(input.Question)
	if question == "" {
		return chat.Reply{}, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if utf8.RuneCountInString(question) > maxQuestionRunes {
		return chat.Reply{}, fmt.Errorf("%w: question must be at most %d characters", ErrInvalidInput, maxQuestionRunes)
	}
	if !s.cfg.Enabled || s.completer == nil {
		return chat.Reply{}, fmt.Errorf("%w: tactical chat is disabled (CHAT_ENABLED=false or CHAT_API_KEY empty)", ErrDependencyUnavailable)
	}

	reply, err := s.completer.Complete(ctx, chat.Request{
		Model:       s.cfg.Model,
		Messages:    chat.Conversation(question, input.History),
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "chat completion failed", "model", s.cfg.Model, "error", err)
		return chat.Reply{}, fmt.Errorf("%w: chat completion: %w", ErrDependencyUnavailable, err)
	}
	if strings.TrimSpace(reply.Content) == "" {
		return chat.Reply{}, fmt.Errorf("%w: chat completion returned an empty answer", ErrDependencyUnavailable)
	}

	return reply, nil
}
