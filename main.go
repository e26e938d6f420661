package main

import (
	"log"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/julianlk522/tryon/config"
	h "github.com/julianlk522/tryon/handler"
	m "github.com/julianlk522/tryon/middleware"
	"github.com/julianlk522/tryon/upstream"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	log_formatter, err := m.NewSplitLogFormatter(
		log.New(
			os.Stdout,
			"",
			log.LstdFlags,
		),
		cfg.ErrLogFile,
	)
	if err != nil {
		log.Fatal(err)
	}

	client := upstream.New(cfg.APIURL, cfg.APIKey, cfg.APIHost)

	r := chi.NewRouter()

	// ROUTER-WIDE MIDDLEWARE
	r.Use(middleware.RequestID)
	// LOGGER
	// should go before any other middleware that may change
	// the response, such as middleware.Recoverer
	r.Use(m.SplitRequestLogger(log_formatter))
	r.Use(middleware.Recoverer)

	// CORS
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{
			"Content-Type",
		},
	}))

	// ROUTES
	r.Get("/healthz", h.Health)
	r.
		With(m.TryOnRateLimits()...).
		With(m.MaxUploadSize(cfg.MaxUploadBytes)).
		Post("/api/try-on", h.TryOn(client, cfg.UploadDir, cfg.MaxUploadBytes))

	log.Printf("try-on API: %s (host %s)", cfg.APIURL, cfg.APIHost)
	log.Printf("staging uploads in %s", cfg.UploadDir)
	log.Printf("listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, r); err != nil {
		log.Fatal(err)
	}
}
