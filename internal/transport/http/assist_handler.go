package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	apierrors "crmkit/internal/errors"
	"crmkit/internal/llm"
	"crmkit/internal/validation"
)

// validate is the shared request validator
var validate = validator.New()

// AssistRequest is the JSON body for the assist endpoints
type AssistRequest struct {
	Text string `json:"text" validate:"required"`
}

// AssistResponse carries a generated draft
type AssistResponse struct {
	Draft string `json:"draft"`
}

// AssistHandler handles the prompt-based assist endpoints
type AssistHandler struct {
	service      AssistServiceInterface
	logger       *slog.Logger
	errorHandler *apierrors.ErrorHandler
}

// NewAssistHandler creates an assist handler
func NewAssistHandler(service AssistServiceInterface, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *AssistHandler {
	return &AssistHandler{
		service:      service,
		logger:       logger.With(slog.String("component", "assist_handler")),
		errorHandler: errorHandler,
	}
}

// Routes returns the assist routes
func (h *AssistHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/lead", h.Lead)
	r.Post("/requirements", h.Requirements)

	return r
}

// Lead handles POST /api/assist/lead
func (h *AssistHandler) Lead(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.Lead)
}

// Requirements handles POST /api/assist/requirements
func (h *AssistHandler) Requirements(w http.ResponseWriter, r *http.Request) {
	h.handle(w, r, h.service.Requirements)
}

// handle parses the shared request shape and runs one assist operation
func (h *AssistHandler) handle(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, input string) (string, error)) {
	ctx := r.Context()

	var req AssistRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	if err := validate.Struct(&req); err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrValidation("text", "Text content is required"))
		return
	}

	draft, err := op(ctx, req.Text)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, AssistResponse{Draft: draft})
}

// mapServiceError translates service-level failures into API errors
func (h *AssistHandler) mapServiceError(err error) error {
	var inputErr *validation.TextInputError
	if errors.As(err, &inputErr) {
		return apierrors.ErrValidation(inputErr.Field, inputErr.Reason)
	}

	if errors.Is(err, llm.ErrUnavailable) {
		return apierrors.ErrNarratorUnavailable
	}

	return err
}
