package apiapp

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/config"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/metrics"
	authsvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/auth"
	bookingssvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/bookings"
	feedbacksvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/feedback"
	mediasvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/media"
	placessvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/places"
	ratesvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/rate"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/transport/http/handlers"
)

type Dependencies struct {
	AuthService     *authsvc.Service
	PlaceService    *placessvc.Service
	FeedbackService *feedbacksvc.Service
	BookingService  *bookingssvc.Service
	MediaService    *mediasvc.Service
	LoginLimiter    *ratesvc.Limiter
	Metrics         *metrics.Metrics
	Logger          *zap.Logger
	Config          config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	authHandler := handlers.NewAuthHandler(deps.AuthService, deps.LoginLimiter, deps.Logger)
	placeHandler := handlers.NewPlaceHandler(deps.PlaceService, deps.MediaService, deps.Logger)
	feedbackHandler := handlers.NewFeedbackHandler(deps.FeedbackService, deps.Logger)
	bookingHandler := handlers.NewBookingHandler(deps.BookingService, deps.Logger)
	healthHandler := handlers.NewHealthHandler()

	authMW := AuthMiddleware(deps.AuthService, deps.Logger)
	policy := deps.Config.Auth.Policy

	r.Get("/healthz", healthHandler.Get)
	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	r.Post("/Signup", authHandler.Signup)
	r.Post("/Login", authHandler.Login)
	r.Post("/RefreshToken", authHandler.Refresh)
	r.Get("/checkUserExist", authHandler.CheckUserExist)

	r.Get("/places", placeHandler.List)
	r.Get("/places/{id}", placeHandler.Get)
	r.With(gate(policy.PlacesWrite, authMW)...).Post("/Createplaces", placeHandler.Create)
	r.With(gate(policy.PlacesWrite, authMW)...).Put("/places/{id}", placeHandler.Update)
	r.With(gate(policy.PlacesWrite, authMW)...).Post("/places/{id}/image", placeHandler.UploadImage)
	r.With(gate(policy.PlacesDelete, authMW)...).Delete("/places/{id}", placeHandler.Delete)

	r.Post("/Feedback", feedbackHandler.Create)
	r.Get("/Feedback", feedbackHandler.List)
	r.With(gate(policy.FeedbackDelete, authMW)...).Delete("/Feedback/{id}", feedbackHandler.Delete)

	r.With(authMW).Post("/bookings", bookingHandler.Create)
	r.With(gate(policy.BookingsRead, authMW)...).Get("/bookings", bookingHandler.List)
	r.With(gate(policy.BookingsDelete, authMW)...).Delete("/bookings/{id}", bookingHandler.Delete)
}

// gate translates a policy table entry into a middleware chain: "public"
// leaves the route open, an empty value requires any valid token, any other
// value names the required role.
func gate(requiredRole string, authMW func(http.Handler) http.Handler) []func(http.Handler) http.Handler {
	switch strings.TrimSpace(strings.ToLower(requiredRole)) {
	case "public":
		return nil
	case "":
		return []func(http.Handler) http.Handler{authMW}
	default:
		return []func(http.Handler) http.Handler{authMW, RequireRole(requiredRole)}
	}
}
