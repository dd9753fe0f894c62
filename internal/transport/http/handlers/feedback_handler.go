package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	feedbacksvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/feedback"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/dto"
	httperrors "github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/errors"
)

type FeedbackHandler struct {
	service *feedbacksvc.Service
	log     *zap.Logger
}

func NewFeedbackHandler(service *feedbacksvc.Service, log *zap.Logger) *FeedbackHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeedbackHandler{service: service, log: log}
}

func (h *FeedbackHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	var req dto.FeedbackRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), feedbacksvc.Feedback{
		Name:     req.Name,
		Phone:    req.Phone,
		Place:    req.Place,
		Feedback: req.Feedback,
	})
	if err != nil {
		h.handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.FeedbackCreateResponse{
		Status:   "OK",
		Feedback: toFeedbackResponse(created),
	})
}

func (h *FeedbackHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	entries, err := h.service.List(r.Context())
	if err != nil {
		h.handleFeedbackError(w, err)
		return
	}

	out := make([]dto.FeedbackResponse, 0, len(entries))
	for _, entry := range entries {
		out = append(out, toFeedbackResponse(entry))
	}

	httperrors.Write(w, http.StatusOK, out)
}

func (h *FeedbackHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "FEEDBACK_SERVICE_UNAVAILABLE", "feedback service is unavailable")
		return
	}

	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handleFeedbackError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.FeedbackDeleteResponse{
		Message:  "Feedback entry deleted successfully",
		Feedback: toFeedbackResponse(deleted),
	})
}

func (h *FeedbackHandler) handleFeedbackError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, feedbacksvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, feedbacksvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "feedback entry not found")
	default:
		h.log.Error("feedback handler failure", zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func toFeedbackResponse(entry feedbacksvc.Feedback) dto.FeedbackResponse {
	return dto.FeedbackResponse{
		ID:       entry.ID,
		Name:     entry.Name,
		Phone:    entry.Phone,
		Place:    entry.Place,
		Feedback: entry.Feedback,
	}
}
