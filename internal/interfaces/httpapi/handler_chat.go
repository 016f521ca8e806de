package httpapi

import (
	"fmt"
	"net/http"

	"github.com/merlocpr-creator/tacticxai-mvp/internal/domain/chat"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
)

type chatRequest struct {
	Question string           `json:"question" validate:"required"`
	History  []chatHistoryDTO `json:"history" validate:"max=20,dive"`
}

type chatHistoryDTO struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"required"`
}

type chatAnswerDTO struct {
	Answer string `json:"answer"`
	Model  string `json:"model"`
}

func (h *Handler) AskTacticalChat(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AskTacticalChat")
	defer span.End()

	if h.chatService == nil {
		writeError(ctx, w, fmt.Errorf("%w: tactical chat is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req chatRequest
	if err := decodeJSONBody(w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	history := make([]chat.Message, 0, len(req.History))
	for _, m := range req.History {
		history = append(history, chat.Message{Role: chat.Role(m.Role), Content: m.Content})
	}

	reply, err := h.chatService.Ask(ctx, usecase.ChatInput{Question: req.Question, History: history})
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, chatAnswerDTO{Answer: reply.Content, Model: reply.Model})
}
