package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	mediasvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/media"
	placessvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/places"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/dto"
	httperrors "github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/errors"
)

const maxUploadSize = 10 << 20

type PlaceHandler struct {
	service *placessvc.Service
	media   *mediasvc.Service
	log     *zap.Logger
}

func NewPlaceHandler(service *placessvc.Service, media *mediasvc.Service, log *zap.Logger) *PlaceHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &PlaceHandler{
		service: service,
		media:   media,
		log:     log,
	}
}

func (h *PlaceHandler) Create(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLACE_SERVICE_UNAVAILABLE", "place service is unavailable")
		return
	}

	var req dto.PlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	created, err := h.service.Create(r.Context(), toPlaceInput(req))
	if err != nil {
		h.handlePlaceError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PlaceCreateResponse{
		Status: "OK",
		Place:  h.toPlaceResponse(r.Context(), created),
	})
}

func (h *PlaceHandler) List(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLACE_SERVICE_UNAVAILABLE", "place service is unavailable")
		return
	}

	placesList, err := h.service.List(r.Context())
	if err != nil {
		h.handlePlaceError(w, err)
		return
	}

	out := make([]dto.PlaceResponse, 0, len(placesList))
	for _, place := range placesList {
		out = append(out, h.toPlaceResponse(r.Context(), place))
	}

	httperrors.Write(w, http.StatusOK, out)
}

func (h *PlaceHandler) Get(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLACE_SERVICE_UNAVAILABLE", "place service is unavailable")
		return
	}

	place, err := h.service.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handlePlaceError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, h.toPlaceResponse(r.Context(), place))
}

func (h *PlaceHandler) Update(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLACE_SERVICE_UNAVAILABLE", "place service is unavailable")
		return
	}

	var req dto.PlaceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	updated, err := h.service.Update(r.Context(), chi.URLParam(r, "id"), toPlaceInput(req))
	if err != nil {
		h.handlePlaceError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.PlaceUpdateResponse{
		Status: "OK",
		Place:  h.toPlaceResponse(r.Context(), updated),
	})
}

func (h *PlaceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "PLACE_SERVICE_UNAVAILABLE", "place service is unavailable")
		return
	}

	deleted, err := h.service.Delete(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.handlePlaceError(w, err)
		return
	}

	if h.media != nil && deleted.ImageKey != "" {
		if err := h.media.DeleteImage(r.Context(), deleted.ImageKey); err != nil {
			h.log.Warn("delete place image object", zap.Error(err))
		}
	}

	httperrors.Write(w, http.StatusOK, dto.PlaceDeleteResponse{
		Message: "Place deleted successfully",
		Place:   h.toPlaceResponse(r.Context(), deleted),
	})
}

func (h *PlaceHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	if h.service == nil || h.media == nil {
		writeInternal(w, "PLACE_SERVICE_UNAVAILABLE", "place service is unavailable")
		return
	}

	placeID := chi.URLParam(r, "id")
	if _, err := h.service.Get(r.Context(), placeID); err != nil {
		h.handlePlaceError(w, err)
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid multipart body")
		return
	}
	file, header, err := r.FormFile("image")
	if err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "image file is required")
		return
	}
	defer file.Close()

	objectKey, err := h.media.UploadPlaceImage(
		r.Context(),
		placeID,
		header.Filename,
		header.Header.Get("Content-Type"),
		file,
		header.Size,
	)
	if err != nil {
		if errors.Is(err, mediasvc.ErrValidation) {
			writeBadRequest(w, "VALIDATION_ERROR", "invalid image upload")
			return
		}
		h.log.Error("upload place image", zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
		return
	}

	if err := h.service.AttachImage(r.Context(), placeID, objectKey); err != nil {
		_ = h.media.DeleteImage(r.Context(), objectKey)
		h.handlePlaceError(w, err)
		return
	}

	url, err := h.media.ImageURL(r.Context(), objectKey)
	if err != nil {
		h.log.Warn("presign uploaded image", zap.Error(err))
	}

	httperrors.Write(w, http.StatusOK, dto.PlaceImageResponse{
		Status:   "OK",
		ImageURL: url,
	})
}

func (h *PlaceHandler) handlePlaceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, placessvc.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, placessvc.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "place not found")
	default:
		h.log.Error("place handler failure", zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

// toPlaceResponse swaps the stored object key for a short-lived presigned
// URL; a presign failure degrades to an imageless response.
func (h *PlaceHandler) toPlaceResponse(ctx context.Context, place placessvc.Place) dto.PlaceResponse {
	imageURL := ""
	if h.media != nil && place.ImageKey != "" {
		url, err := h.media.ImageURL(ctx, place.ImageKey)
		if err != nil {
			h.log.Warn("presign place image", zap.String("place_id", place.ID), zap.Error(err))
		} else {
			imageURL = url
		}
	}

	return dto.PlaceResponse{
		ID:                 place.ID,
		Title:              place.Title,
		Location:           place.Location,
		GuideName:          place.GuideName,
		GuideMobile:        place.GuideMobile,
		GuideLanguage:      place.GuideLanguage,
		ResidentialDetails: place.ResidentialDetails,
		PoliceStation:      place.PoliceStation,
		FireStation:        place.FireStation,
		MapLink:            place.MapLink,
		Description:        place.Description,
		ImageURL:           imageURL,
		Latitude:           place.Latitude,
		Longitude:          place.Longitude,
	}
}

func toPlaceInput(req dto.PlaceRequest) placessvc.Place {
	return placessvc.Place{
		Title:              req.Title,
		Location:           req.Location,
		GuideName:          req.GuideName,
		GuideMobile:        req.GuideMobile,
		GuideLanguage:      req.GuideLanguage,
		ResidentialDetails: req.ResidentialDetails,
		PoliceStation:      req.PoliceStation,
		FireStation:        req.FireStation,
		MapLink:            req.MapLink,
		Description:        req.Description,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
	}
}
