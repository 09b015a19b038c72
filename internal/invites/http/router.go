package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/mindtrackhq/mindtrack/internal/invites/service"
	"github.com/mindtrackhq/mindtrack/internal/invites/store"
	"github.com/mindtrackhq/mindtrack/pkg/httpx"
	"github.com/mindtrackhq/mindtrack/pkg/jwtx"
	"github.com/mindtrackhq/mindtrack/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	key          *jwtx.EdDSAKey
	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	InviteService *service.InviteService
}

func NewRouter(
	key *jwtx.EdDSAKey,
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		key:          key,
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Global middleware chain. CORS sits outermost so pre-flight OPTIONS
	// requests are answered before mux method matching can 405 them.
	r.middlewares = []httpx.Middleware{
		httpx.CORSMiddleware(),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerInvites()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerInvites() {
	issueHandler := &InviteIssueHandler{InviteService: r.InviteService}
	validateHandler := &InviteValidateHandler{InviteService: r.InviteService}
	consumeHandler := &InviteConsumeHandler{InviteService: r.InviteService}

	// POST /v1/invites - psychologist-only; the authn + role middlewares
	// run before the handler so no record is created for a bad credential.
	r.Mux.Handle("POST /v1/invites",
		httpx.Chain(issueHandler,
			httpx.AuthnMiddleware(r.verifier),
			httpx.RequireRole(jwtx.RolePsychologist),
			httpx.RateLimitByUser(httpx.ModerateLimit),
		),
	)

	// POST /v1/invites/validate - public pre-check, strict limit by IP
	// (token guessing prevention).
	r.Mux.Handle("POST /v1/invites/validate",
		httpx.Chain(validateHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /v1/invites/consume - public signup endpoint, strict limit by IP.
	r.Mux.Handle("POST /v1/invites/consume",
		httpx.Chain(consumeHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.key),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
