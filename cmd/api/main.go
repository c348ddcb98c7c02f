package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/enemamar/enemamar-api/internal/config"
	"github.com/enemamar/enemamar-api/internal/handler"
	"github.com/enemamar/enemamar-api/internal/repository"
	"github.com/enemamar/enemamar-api/internal/usecase"
	"github.com/enemamar/enemamar-api/shared/auth"
	"github.com/enemamar/enemamar-api/shared/logger"
	"github.com/enemamar/enemamar-api/shared/registry"
	"github.com/enemamar/enemamar-api/shared/sms"
	"github.com/enemamar/enemamar-api/shared/validator"
)

func main() {
	_ = godotenv.Load()

	log := logger.New("enemamar-api")

	cfg := config.New(&log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	client, err := mongo.Connect(options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongodb")
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to disconnect from mongodb")
		}
	}()

	db := client.Database(cfg.MongoDatabase)
	userRepo := repository.NewUserMongoRepository(ctx, &log, db)

	smsClient := sms.NewClient(&log)
	codec := auth.NewPasswordResetCodec(
		cfg.Token.PasswordResetTokenSecret,
		cfg.Token.Issuer,
		cfg.Token.PasswordResetTokenExpiresIn,
	)

	passwordResetUsecase := usecase.NewPasswordResetUsecase(userRepo, smsClient, codec)
	verificationUsecase := usecase.NewVerificationUsecase(userRepo, smsClient)

	v, err := validator.New()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create validator")
	}

	authHandler := handler.NewAuthHandler(passwordResetUsecase, verificationUsecase, v, &log)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(&log))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Mount("/auth", authHandler.Routes())

	if cfg.ConsulAddress != "" {
		reg, err := registry.NewServiceRegistry(cfg.ConsulAddress, &log)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to create consul client")
		}
		if err := reg.Register(cfg.ServiceName, cfg.ServerHost, cfg.ServerPort); err != nil {
			log.Fatal().Err(err).Msg("failed to register service with consul")
		}
		defer reg.Deregister()
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.ServerHost, cfg.ServerPort),
		Handler: r,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("starting HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func requestLogger(log *zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			log.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("duration", time.Since(start)).
				Msg("request")
		})
	}
}
