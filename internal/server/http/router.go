package httpserver

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter 挂上 /api/*、/ws/game/{id}，webDir 非空时再挂静态页面
func NewRouter(h *Handler, webDir string) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/ping", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, map[string]bool{"ok": true})
	})
	r.Post("/api/new_game", h.handleNewGame)
	r.Post("/api/state", h.handleState)
	r.Post("/api/legal_moves", h.handleLegalMoves)
	r.Post("/api/play", h.handlePlay)
	r.Post("/api/ai_move", h.handleAiMove)
	r.Get("/api/config", h.handleGetConfig)
	r.Post("/api/config", h.handleSetConfig)

	r.Get("/ws/game/{id}", h.serveGameWS)

	if webDir != "" {
		RegisterStaticRoutes(r, webDir)
	}
	return r
}
