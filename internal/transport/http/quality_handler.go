package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	apierrors "crmkit/internal/errors"
	"crmkit/internal/services"
	"crmkit/internal/validation"
)

// QualityHandler handles data quality analysis requests
type QualityHandler struct {
	service        QualityServiceInterface
	logger         *slog.Logger
	errorHandler   *apierrors.ErrorHandler
	maxUploadBytes int64
}

// NewQualityHandler creates a quality handler. maxUploadBytes bounds the
// multipart request body.
func NewQualityHandler(service QualityServiceInterface, maxUploadBytes int64, logger *slog.Logger, errorHandler *apierrors.ErrorHandler) *QualityHandler {
	return &QualityHandler{
		service:        service,
		logger:         logger.With(slog.String("component", "quality_handler")),
		errorHandler:   errorHandler,
		maxUploadBytes: maxUploadBytes,
	}
}

// Routes returns the quality routes
func (h *QualityHandler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(render.SetContentType(render.ContentTypeJSON))

	r.Post("/analyze", h.Analyze)

	return r
}

// Analyze handles POST /api/quality/analyze. The request is a multipart
// form with a single "file" part holding a CSV or XLSX upload.
func (h *QualityHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadBytes)

	if err := r.ParseMultipartForm(h.maxUploadBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.errorHandler.HandleError(w, r, apierrors.ErrPayloadTooLarge)
			return
		}
		h.errorHandler.HandleError(w, r, apierrors.InvalidRequestWithError(err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		h.errorHandler.HandleError(w, r, apierrors.ErrMissingParameter)
		return
	}
	defer file.Close()

	h.logger.InfoContext(ctx, "analysis requested",
		slog.String("filename", header.Filename),
		slog.Int64("size", header.Size),
	)

	report, err := h.service.AnalyzeUpload(ctx, header.Filename, file)
	if err != nil {
		h.errorHandler.HandleError(w, r, h.mapServiceError(err))
		return
	}

	render.JSON(w, r, report)
}

// mapServiceError translates service-level failures into API errors
func (h *QualityHandler) mapServiceError(err error) error {
	var structErr *validation.StructuralError
	if errors.As(err, &structErr) {
		return apierrors.DatasetInvalidError(structErr.Reason)
	}

	if errors.Is(err, services.ErrUnsupportedFileType) {
		return apierrors.ErrUnsupportedMedia
	}

	return err
}
