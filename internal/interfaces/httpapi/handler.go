package httpapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/platform/logging"
	"github.com/merlocpr-creator/tacticxai-mvp/internal/usecase"
)

// Services groups the use cases the API exposes. Chat may be nil when disabled.
type Services struct {
	Catalog        *usecase.CatalogService
	Events         *usecase.EventService
	Analysis       *usecase.AnalysisService
	Recommendation *usecase.RecommendationService
	Export         *usecase.ExportService
	Chat           *usecase.ChatService
}

type Handler struct {
	catalogService        *usecase.CatalogService
	eventService          *usecase.EventService
	analysisService       *usecase.AnalysisService
	recommendationService *usecase.RecommendationService
	exportService         *usecase.ExportService
	chatService           *usecase.ChatService
	logger                *logging.Logger
	validator             *validator.Validate
}

func NewHandler(services Services, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		catalogService:        services.Catalog,
		eventService:          services.Events,
		analysisService:       services.Analysis,
		recommendationService: services.Recommendation,
		exportService:         services.Export,
		chatService:           services.Chat,
		logger:                logger,
		validator:             validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
