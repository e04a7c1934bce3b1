package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/folioadmin/folioadmin-go/internal/crypto"
	"github.com/folioadmin/folioadmin-go/internal/middleware"
)

// RouterConfig carries everything NewRouter wires together.
type RouterConfig struct {
	Auth           *AuthHandler
	Projects       *ProjectHandler
	Images         *ImageHandler
	Tokens         *crypto.TokenIssuer
	AllowedOrigins []string
	LoginRPS       float64
	LoginBurst     int
	Log            zerolog.Logger
}

// NewRouter builds the projects API. Background work started for the rate
// limiter stops when ctx is done.
func NewRouter(ctx context.Context, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(cfg.Log))
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.With(middleware.RateLimit(ctx, cfg.LoginRPS, cfg.LoginBurst)).Post("/login", cfg.Auth.HandleLogin)

	r.Get("/projects", cfg.Projects.HandleList)
	r.Get("/uploads/{filename}", cfg.Images.HandleGet)

	r.Group(func(r chi.Router) {
		r.Use(middleware.JWTAuth(cfg.Tokens))
		r.Post("/projects", cfg.Projects.HandleCreate)
		r.Patch("/projects/{id}", cfg.Projects.HandleUpdate)
		r.Delete("/projects/{id}", cfg.Projects.HandleDelete)
	})

	return r
}
