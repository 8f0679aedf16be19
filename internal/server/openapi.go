package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"

	"github.com/playperu/spinwin/internal/handler/health"
)

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "Spinwin API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the prize wheel and balloon pop widgets.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(health.Response{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// GET /api/games
	listGames, _ := r.NewOperationContext(http.MethodGet, "/api/games")
	listGames.SetSummary("List games")
	listGames.SetDescription("Returns every configured game with its segments. Weights are not exposed.")
	listGames.AddRespStructure([]GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(listGames)

	// GET /api/games/{game}
	getGame, _ := r.NewOperationContext(http.MethodGet, "/api/games/{game}")
	getGame.SetSummary("Get game")
	getGame.AddReqStructure(struct {
		Game string `path:"game"`
	}{})
	getGame.AddRespStructure(GameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getGame.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getGame)

	// POST /api/games/{game}/sessions
	openSession, _ := r.NewOperationContext(http.MethodPost, "/api/games/{game}/sessions")
	openSession.SetSummary("Open play session")
	openSession.SetDescription("Starts a session awaiting the visitor's email. Returns the session token.")
	openSession.AddReqStructure(struct {
		Game string `path:"game"`
	}{})
	openSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	openSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(openSession)

	// GET /api/session
	getSession, _ := r.NewOperationContext(http.MethodGet, "/api/session")
	getSession.SetSummary("Get session state")
	getSession.SetDescription("Returns the session state. Requires Bearer token.")
	getSession.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	getSession.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(getSession)

	// POST /api/session/identifier
	postIdentifier, _ := r.NewOperationContext(http.MethodPost, "/api/session/identifier")
	postIdentifier.SetSummary("Submit email")
	postIdentifier.SetDescription("Validates the visitor's email and unlocks play. Registration runs in the background. Requires Bearer token.")
	postIdentifier.AddReqStructure(IdentifierRequest{})
	postIdentifier.AddRespStructure(SessionResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postIdentifier.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	postIdentifier.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postIdentifier.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postIdentifier)

	// POST /api/session/play
	postPlay, _ := r.NewOperationContext(http.MethodPost, "/api/session/play")
	postPlay.SetSummary("Play")
	postPlay.SetDescription("Draws the prize and starts the animation. The outcome is published as a \"revealed\" event after the reveal delay. Requires Bearer token.")
	postPlay.AddReqStructure(PlayRequest{})
	postPlay.AddRespStructure(PlayResponse{}, openapi.WithHTTPStatus(http.StatusAccepted))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postPlay.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postPlay)

	// GET /api/session/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/session/events")
	getEvents.SetSummary("SSE event stream")
	getEvents.SetDescription("Server-Sent Events stream of session state and reveal events. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/session/live
	getLive, _ := r.NewOperationContext(http.MethodGet, "/api/session/live")
	getLive.SetSummary("WebSocket event stream")
	getLive.SetDescription("Same events as the SSE stream over a WebSocket. Pass token as query parameter.")
	getLive.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("application/json"))
	_ = r.AddOperation(getLive)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with email and password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusNoContent))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Returns the currently authenticated admin. Requires admin_session cookie.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/subscribers
	listSubs, _ := r.NewOperationContext(http.MethodGet, "/api/admin/subscribers")
	listSubs.SetSummary("List subscribers")
	listSubs.SetDescription("Returns every captured email in registration order. Requires admin_session cookie.")
	listSubs.AddRespStructure(AdminSubscribersResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listSubs.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listSubs)

	// GET /api/admin/subscribers.csv
	exportSubs, _ := r.NewOperationContext(http.MethodGet, "/api/admin/subscribers.csv")
	exportSubs.SetSummary("Export subscribers")
	exportSubs.SetDescription("Downloads the captured emails as CSV. Requires admin_session cookie.")
	exportSubs.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/csv"))
	exportSubs.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(exportSubs)

	// GET /api/admin/games
	adminGames, _ := r.NewOperationContext(http.MethodGet, "/api/admin/games")
	adminGames.SetSummary("Game odds")
	adminGames.SetDescription("Returns every game with prize weights and normalized probabilities. Requires admin_session cookie.")
	adminGames.AddRespStructure([]AdminGameResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	adminGames.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(adminGames)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}
