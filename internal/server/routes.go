package server

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/swaggest/swgui/v5emb"
)

func addRoutes(r chi.Router, logger *slog.Logger, deps Deps) {
	r.Get("/openapi.json", handleOpenAPI())
	r.Mount("/docs", v5emb.New("Spinwin API", "/openapi.json", "/docs"))
	if deps.Health != nil {
		r.Mount("/healthz", deps.Health)
	}

	r.Get("/api/games", handleListGames(deps.Games))
	r.Get("/api/games/{game}", handleGetGame(deps.Games))
	r.Post("/api/games/{game}/sessions", handleOpenSession(deps.Games, deps.Sessions, deps.Source))

	// Visitor routes: session resolved from the Bearer token, or ?token=
	// for streaming endpoints.
	r.Group(func(r chi.Router) {
		r.Use(sessionMiddleware(deps.Sessions))
		r.Get("/api/session", handleSessionState())
		r.Post("/api/session/identifier", handleSubmitIdentifier(logger, deps.Registrar))
		r.Post("/api/session/play", handlePlay(logger, deps.Broker, deps.Scheduler, deps.Source))
		r.Get("/api/session/events", handleEvents(deps.Broker))
		r.Get("/api/session/live", handleLive(logger, deps.Broker))
	})

	r.Post("/api/admin/login", handleAdminLogin(deps.Admin))
	r.Post("/api/admin/logout", handleAdminLogout(logger, deps.Admin))

	r.Group(func(r chi.Router) {
		r.Use(adminAuthMiddleware(deps.Admin))
		r.Get("/api/admin/me", handleAdminMe())
		r.Get("/api/admin/subscribers", handleAdminSubscribers(deps.Admin))
		r.Get("/api/admin/subscribers.csv", handleAdminSubscribersCSV(logger, deps.Admin))
		r.Get("/api/admin/games", handleAdminGames(deps.Games))
	})

	if deps.SPADir != "" {
		if info, err := os.Stat(deps.SPADir); err == nil && info.IsDir() {
			logger.Info("serving widget", "dir", deps.SPADir)
			r.NotFound(handleSPA(deps.SPADir))
		}
	}
}
