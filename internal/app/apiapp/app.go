package apiapp

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/minio/minio-go/v7"
	goredis "github.com/redis/go-redis/v9"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/config"
	s3infra "github.com/AKASHGK006/Visit-Karnataka-Server/internal/infra/s3"
	"github.com/AKASHGK006/Visit-Karnataka-Server/internal/metrics"
	mongorepo "github.com/AKASHGK006/Visit-Karnataka-Server/internal/repo/mongo"
	redrepo "github.com/AKASHGK006/Visit-Karnataka-Server/internal/repo/redis"
	authsvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/auth"
	bookingssvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/bookings"
	feedbacksvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/feedback"
	mediasvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/media"
	placessvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/places"
	ratesvc "github.com/AKASHGK006/Visit-Karnataka-Server/internal/services/rate"
)

type App struct {
	cfg        config.Config
	logger     *zap.Logger
	server     *http.Server
	mongo      *mongodriver.Client
	redis      *goredis.Client
	s3         *minio.Client
	httpRouter http.Handler
}

func New(ctx context.Context, cfg config.Config, log *zap.Logger) (*App, error) {
	if log == nil {
		return nil, fmt.Errorf("logger is nil")
	}

	r := chi.NewRouter()
	ApplyMiddlewares(r, log)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	if cfg.CORS.CheckReferer {
		r.Use(RefererCheck(cfg.CORS.AllowedOrigins))
	}

	appMetrics := metrics.New()
	r.Use(appMetrics.Middleware)

	var mongoClient *mongodriver.Client
	if c, err := mongorepo.Connect(ctx, cfg.Mongo.URI); err != nil {
		log.Warn("mongo init failed, continuing in degraded mode", zap.Error(err))
	} else {
		mongoClient = c
	}

	credentialRepo := mongorepo.NewCredentialRepo(mongoClient, cfg.Mongo.Database)
	if mongoClient != nil {
		if err := credentialRepo.EnsureIndexes(ctx); err != nil {
			log.Warn("ensure credential indexes", zap.Error(err))
		}
	}
	placeRepo := mongorepo.NewPlaceRepo(mongoClient, cfg.Mongo.Database)
	feedbackRepo := mongorepo.NewFeedbackRepo(mongoClient, cfg.Mongo.Database)
	bookingRepo := mongorepo.NewBookingRepo(mongoClient, cfg.Mongo.Database)

	redisClient := redrepo.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	refreshRepo := redrepo.NewRefreshRepo(redisClient)
	rateRepo := redrepo.NewRateRepo(redisClient)

	var s3Client *minio.Client
	if c, err := s3infra.NewClient(s3infra.Config{
		Endpoint:  cfg.S3.Endpoint,
		AccessKey: cfg.S3.AccessKey,
		SecretKey: cfg.S3.SecretKey,
		UseSSL:    cfg.S3.UseSSL,
	}); err != nil {
		log.Warn("s3 init failed, continuing in degraded mode", zap.Error(err))
	} else {
		s3Client = c
	}

	hasher := authsvc.NewHasher(cfg.Auth.BcryptCost)
	jwtManager := authsvc.NewJWTManager(
		cfg.Auth.AccessSecret,
		cfg.Auth.RefreshSecret,
		cfg.Auth.AccessTTL,
		cfg.Auth.RefreshTTL,
	)
	authService := authsvc.NewService(credentialRepo, refreshRepo, hasher, jwtManager, cfg.Auth.DefaultRole, log)
	placeService := placessvc.NewService(placeRepo)
	feedbackService := feedbacksvc.NewService(feedbackRepo)
	bookingService := bookingssvc.NewService(bookingRepo)
	mediaService := mediasvc.NewService(mediasvc.NewS3Storage(s3Client, cfg.S3.Bucket))
	loginLimiter := ratesvc.NewLimiter(rateRepo, cfg.Rate.LoginPerMinute, cfg.Rate.LoginPer10Sec)

	server := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      r,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}

	RegisterRoutes(r, Dependencies{
		AuthService:     authService,
		PlaceService:    placeService,
		FeedbackService: feedbackService,
		BookingService:  bookingService,
		MediaService:    mediaService,
		LoginLimiter:    loginLimiter,
		Metrics:         appMetrics,
		Logger:          log,
		Config:          cfg,
	})

	return &App{
		cfg:        cfg,
		logger:     log,
		server:     server,
		mongo:      mongoClient,
		redis:      redisClient,
		s3:         s3Client,
		httpRouter: r,
	}, nil
}

func (a *App) Run() error {
	a.logger.Info("api server started", zap.String("addr", a.cfg.HTTP.Addr))
	err := a.server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (a *App) Shutdown(ctx context.Context) error {
	var shutdownErr error

	if err := a.server.Shutdown(ctx); err != nil {
		shutdownErr = err
	}
	if a.mongo != nil {
		if err := a.mongo.Disconnect(ctx); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil && shutdownErr == nil {
			shutdownErr = err
		}
	}

	return shutdownErr
}

func (a *App) Handler() http.Handler {
	return a.httpRouter
}
