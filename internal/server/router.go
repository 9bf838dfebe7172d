package server

import (
	"fmt"
	"net/http"

	"image-story-web/internal/builder"
	"image-story-web/internal/server/handlers"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter は、ミドルウェアとルーティングを統合した http.Handler を構築します。
func NewRouter(appCtx *builder.AppContext) (http.Handler, error) {
	h, err := handlers.NewHandler(appCtx.Config, appCtx.Sessions, appCtx.History, appCtx.Pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize web handler: %w", err)
	}

	r := chi.NewRouter()

	setupCommonMiddleware(r)
	setupRoutes(r, h)

	return r, nil
}

func setupCommonMiddleware(r *chi.Mux) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.CleanPath)
}

func setupRoutes(r chi.Router, h *handlers.Handler) {
	r.Get("/", h.Index)

	r.Post("/generate", h.HandleSubmit)

	r.Route("/history", func(r chi.Router) {
		r.Get("/export", h.ExportHistory)
		r.Post("/clear", h.ClearHistory)
	})
}
