package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/folioadmin/folioadmin-go/internal/config"
	"github.com/folioadmin/folioadmin-go/internal/crypto"
	"github.com/folioadmin/folioadmin-go/internal/handler"
	"github.com/folioadmin/folioadmin-go/internal/logger"
	"github.com/folioadmin/folioadmin-go/internal/repository"
	"github.com/folioadmin/folioadmin-go/internal/service"
	"github.com/folioadmin/folioadmin-go/internal/uploads"
)

func main() {
	config.LoadDotEnv()

	cfg, err := config.LoadServer()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}
	logger.Init(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(ctx, cfg.DatabaseDriver, cfg.DatabaseDSN)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DatabaseDriver).Msg("database connection failed")
	}
	defer db.Close()

	images, err := uploads.New(cfg.UploadDir)
	if err != nil {
		log.Fatal().Err(err).Msg("upload directory unavailable")
	}

	tokens := crypto.NewTokenIssuer(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(repository.NewUserRepository(db), tokens, logger.Component("auth"))
	projectService := service.NewProjectService(repository.NewProjectRepository(db), images, logger.Component("projects"))

	if cfg.AdminUsername != "" {
		if _, err := authService.EnsureAdmin(ctx, cfg.AdminUsername, cfg.AdminPassword); err != nil {
			log.Fatal().Err(err).Msg("failed to create administrator account")
		}
	}

	router := handler.NewRouter(ctx, handler.RouterConfig{
		Auth:           handler.NewAuthHandler(authService, logger.Component("auth")),
		Projects:       handler.NewProjectHandler(projectService, logger.Component("projects")),
		Images:         handler.NewImageHandler(images),
		Tokens:         tokens,
		AllowedOrigins: cfg.AllowedOrigins,
		LoginRPS:       5,
		LoginBurst:     10,
		Log:            logger.Component("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server error")
			os.Exit(1)
		}
	}()

	<-ctx.Done()

	log.Info().Msg("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
