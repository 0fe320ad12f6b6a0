package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	mW "github.com/livrocaixa/backend/internal/middleware"
	"github.com/rs/zerolog"
	httpSwagger "github.com/swaggo/http-swagger"
)

type RouterConfig struct {
	Log            zerolog.Logger
	JWTSecret      []byte
	AllowedOrigins []string
	RequestTimeout time.Duration
	StaticDir      string
}

// NewRouter mounts the API under /api/v1. Everything there except /health
// requires a session.
func NewRouter(cfg RouterConfig, ledger *LedgerHandler, accounts *AccountHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mW.RequestLogger(cfg.Log))
	r.Use(chimw.Recoverer)
	r.Use(mW.SecurityHeaders)
	if cfg.RequestTimeout > 0 {
		r.Use(chimw.Timeout(cfg.RequestTimeout))
	}

	// cors treats an empty origin list as "allow all", so cross-origin access
	// is only mounted when origins are listed explicitly.
	if len(cfg.AllowedOrigins) > 0 {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   cfg.AllowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"Link"},
			AllowCredentials: true,
			MaxAge:           86400,
		}))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(mW.Auth(cfg.JWTSecret))

		r.Post("/ledger/transactions", ledger.PostTransaction)
		r.Get("/ledger/transactions/{txId}", ledger.GetTransaction)

		r.Get("/accounts", accounts.ListAccounts)
		r.Get("/accounts/postable", accounts.ListPostableAccounts)
		r.Post("/accounts", accounts.CreateAccount)
		r.Put("/accounts/{accountId}", accounts.UpdateAccount)
		r.Put("/accounts/{accountId}/active", accounts.SetActive)
		r.Delete("/accounts/{accountId}", accounts.DeleteAccount)
	})

	if cfg.StaticDir != "" {
		r.Handle("/*", mW.StaticFileServer(cfg.StaticDir))
	}

	return r
}
