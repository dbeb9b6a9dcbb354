package router

import (
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"chatrelay-backend/internal/handlers"
	"chatrelay-backend/internal/middleware"
)

// New assembles the HTTP surface: POST /api/chat, GET /api/chat/history,
// a health check, and the optional static client directory.
func New(
	chatHandler *handlers.ChatHandler,
	chatLimiter func(http.Handler) http.Handler,
	frontendURL string,
	staticDir string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api/chat", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(chatLimiter)
			r.Post("/", chatHandler.Chat)
		})
		r.Get("/history", chatHandler.History)
	})

	// Static client files, when a build is present
	if info, err := os.Stat(staticDir); err == nil && info.IsDir() {
		fs := http.FileServer(http.Dir(staticDir))
		r.Handle("/*", fs)
	}

	return r
}
