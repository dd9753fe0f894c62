package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	bookingssvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/bookings"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/dto"
	httperrors "github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/errors"
)

type BookingHandler struct {
	service *bookingssvc.Service
	log     *zap.Logger
}

func NewBookingHandler(service *bookingssvc.Service, log *zap.Logger) *BookingHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &BookingHandler{service: service, log: log}
}

func (h *BookingHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "BOOKING_SERVICE_UNAVAILABLE", "booking service is unavailable")
		return
	}

	var req dto.BookingRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), bookingssvc.Booking{
		Name:         req.Name,
		MobileNumber: req.MobileNumber,
		Place:        req.Place,
		Participants: req.Participants,
		Date:         req.Date,
		Time:         req.Time,
		Language:     req.Language,
		TotalPrice:   req.TotalPrice,
	})
	if err != nil {
		h.handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, toBookingResponse(created))
}

func (h *BookingHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "BOOKING_SERVICE_UNAVAILABLE", "booking service is unavailable")
		return
	}

	bookingsList, err := h.service.List(r.Context())
	if err != nil {
		h.handleBookingError(w, err)
		return
	}

	out := make([]dto.BookingResponse, 0, len(bookingsList))
	for _, booking := range bookingsList {
		out = append(out, toBookingResponse(booking))
	}

	httperrors.Write(w, http.StatusOK, out)
}

func (h *BookingHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "BOOKING_SERVICE_UNAVAILABLE", "booking service is unavailable")
		return
	}

	if _, err := h.service.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		h.handleBookingError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.BookingDeleteResponse{
		Message: "Booking deleted successfully",
	})
}

func (h *BookingHandler) handleBookingError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bookingssvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, bookingssvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "booking not found")
	default:
		h.log.Error("booking handler failure", zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

func toBookingResponse(booking bookingssvc.Booking) dto.BookingResponse {
	return dto.BookingResponse{
		ID:           booking.ID,
		Name:         booking.Name,
		MobileNumber: booking.MobileNumber,
		Place:        booking.Place,
		Participants: booking.Participants,
		Date:         booking.Date,
		Time:         booking.Time,
		Language:     booking.Language,
		TotalPrice:   booking.TotalPrice,
	}
}
