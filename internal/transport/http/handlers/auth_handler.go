package handlers

import (
	"encoding/json"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	authsvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/auth"
	ratesvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/rate"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/dto"
	httperrors "github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/errors"
)

type AuthHandler struct {
	service *authsvc.Service
	limiter *ratesvc.Limiter
	log     *zap.Logger
}

func NewAuthHandler(service *authsvc.Service, limiter *ratesvc.Limiter, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		service: service,
		limiter: limiter,
		log:     log,
	}
}

func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}
	if !h.allow(w, r) {
		return
	}

	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	if err := h.service.Signup(r.Context(), req.Name, req.Phone, req.Password); err != nil {
		h.handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.SignupResponse{Status: "OK"})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}
	if !h.allow(w, r) {
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		Status:       "Success",
		Role:         res.Role,
		Name:         res.Name,
		Phone:        res.Phone,
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresInSec: maxInt64(0, int64(time.Until(res.AccessExpires).Seconds())),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if strings.TrimSpace(req.RefreshToken) == "" {
		writeUnauthorized(w, "UNAUTHORIZED", "refresh token is required")
		return
	}

	res, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RefreshResponse{
		Token:        res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresInSec: maxInt64(0, int64(time.Until(res.AccessExpires).Seconds())),
	})
}

func (h *AuthHandler) CheckUserExist(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	phone := r.URL.Query().Get("phone")
	exists, err := h.service.Exists(r.Context(), phone)
	if err != nil {
		h.handleAuthError(w, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.CheckUserExistResponse{Exists: exists})
}

// allow runs the login throttle; a nil limiter disables it.
func (h *AuthHandler) allow(w http.ResponseWriter, r *http.Request) bool {
	if h.limiter == nil {
		return true
	}

	retryAfter, ok, err := h.limiter.AllowLogin(r.Context(), clientIPFromRequest(r))
	if err != nil {
		h.log.Warn("login throttle unavailable, letting request through", zap.Error(err))
		return true
	}
	if !ok {
		httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
			Code:          "RATE_LIMITED",
			Message:       "too many attempts",
			RetryAfterSec: retryAfter,
		})
		return false
	}

	return true
}

func (h *AuthHandler) handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "request validation failed")
	case errors.Is(err, authsvc.ErrAccountNotFound):
		httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
			Code:    "ACCOUNT_NOT_FOUND",
			Message: "user not found",
		})
	case errors.Is(err, authsvc.ErrBadCredential):
		writeUnauthorized(w, "BAD_CREDENTIAL", "incorrect password")
	case errors.Is(err, authsvc.ErrPhoneTaken):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{
			Code:    "PHONE_TAKEN",
			Message: "phone number already registered",
		})
	case errors.Is(err, authsvc.ErrRefreshInvalid):
		writeForbidden(w, "INVALID_REFRESH_TOKEN", "invalid or expired refresh token")
	default:
		h.log.Error("auth handler failure", zap.Error(err))
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}

// clientIPFromRequest resolves the caller's host without the ephemeral port,
// so throttle windows survive reconnects from the same address.
func clientIPFromRequest(r *http.Request) string {
	if r == nil {
		return ""
	}
	if value := strings.TrimSpace(r.Header.Get("X-Forwarded-For")); value != "" {
		parts := strings.Split(value, ",")
		if len(parts) > 0 {
			return strings.TrimSpace(parts[0])
		}
	}
	if value := strings.TrimSpace(r.Header.Get("X-Real-IP")); value != "" {
		return value
	}
	host, _, err := net.SplitHostPort(strings.TrimSpace(r.RemoteAddr))
	if err == nil {
		return host
	}
	return strings.TrimSpace(r.RemoteAddr)
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

func writeInternal(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{Code: code, Message: message})
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
