package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tessera-app/tessera/config"
	"github.com/tessera-app/tessera/server/handlers"
	"github.com/tessera-app/tessera/services"
	"github.com/tessera-app/tessera/store"
)

const ReadTimeout = 30 * time.Second

type Server struct {
	cfg    *config.Config
	router *chi.Mux
	server *http.Server
	hub    *Hub
	store  *store.Store
}

func NewServer(
	cfg *config.Config,
	s *store.Store,
	promptSvc *services.PromptService,
	modSvc *services.ModerationService,
) *Server {
	hub := NewHub()
	router := chi.NewRouter()

	router.Use(Recovery)
	router.Use(Logger)
	router.Use(Metrics)
	router.Use(CORS(cfg.Server.AllowedOrigins))

	healthH := handlers.NewHealthHandler(func(ctx context.Context) error {
		return s.Pool().Ping(ctx)
	})
	router.Get("/health", healthH.Readiness)
	router.Get("/health/ready", healthH.Readiness)
	router.Get("/health/live", healthH.Liveness)
	router.Handle("/metrics", promhttp.Handler())

	wsHandler := NewWSHandler(hub, cfg)
	router.Get("/api/v1/moderation/ws", wsHandler.ServeHTTP)

	router.Route("/api/v1", func(r chi.Router) {
		r.Use(AuthWithConfig(AuthConfig{RequireAuth: cfg.Server.RequireAuth}))

		promptH := handlers.NewPromptHandler(promptSvc, hub)
		r.Get("/prompts", promptH.List)
		r.Post("/prompts", promptH.Create)
		r.Post("/prompts/preview", promptH.Preview)
		r.Get("/prompts/{id}", promptH.Get)
		r.Put("/prompts/{id}", promptH.Update)
		r.Delete("/prompts/{id}", promptH.Delete)
		r.Get("/prompts/{id}/resolved", promptH.Resolve)
		r.Get("/tags", promptH.Tags)

		modH := handlers.NewModerationHandler(modSvc, hub)
		r.Route("/moderation", func(r chi.Router) {
			r.Use(AdminOnly(cfg.Server.AdminSecret))
			r.Get("/queue", modH.Queue)
			r.Post("/{id}/approve", modH.Approve)
			r.Post("/{id}/reject", modH.Reject)
			r.Get("/{id}/history", modH.History)
		})
	})

	return &Server{
		cfg:    cfg,
		router: router,
		hub:    hub,
		store:  s,
	}
}

func (s *Server) Hub() *Hub {
	return s.hub
}

func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.server = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  ReadTimeout,
		WriteTimeout: 0,
	}
	return s.server.ListenAndServe()
}

func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
