package api

import (
	"net/http"

	"github.com/dom/touchline-tactician/internal/api/handlers"
	"github.com/dom/touchline-tactician/internal/api/middleware"
	"github.com/dom/touchline-tactician/internal/service"
	"github.com/dom/touchline-tactician/internal/websocket"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(services *service.Services, hub *websocket.Hub) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.CORS)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	authHandler := handlers.NewAuthHandler(services.Auth)
	planHandler := handlers.NewPlanHandler(services.Plan)
	validateHandler := handlers.NewValidateHandler(services.Plan)
	wsHandler := handlers.NewWebSocketHandler(hub, services.Auth)

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("OK"))
		})

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Get("/me", authHandler.Me)
				r.Post("/logout", authHandler.Logout)
			})
		})

		r.Route("/plans", func(r chi.Router) {
			// Reads are public
			r.Get("/", planHandler.List)
			r.Post("/resolve", planHandler.Resolve)
			r.Get("/{ref}", planHandler.Get)
			r.Get("/{ref}/board", planHandler.Board)
			r.Get("/{ref}/report", planHandler.Report)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Auth(services.Auth))
				r.Post("/", planHandler.Create)
				r.Post("/{ref}/edits", planHandler.Edit)
				r.Delete("/{ref}", planHandler.Delete)
			})
		})

		r.Post("/validate/{check}", validateHandler.Validate)

		// WebSocket endpoint
		r.Get("/ws", wsHandler.Handle)
	})

	return r
}
