package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/cove/internal/cove/service"
	"github.com/aussiebroadwan/cove/internal/cove/store"
	"github.com/aussiebroadwan/cove/pkg/httpx"
	"github.com/aussiebroadwan/cove/pkg/jwtx"
	"github.com/aussiebroadwan/cove/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store         store.Store
	GroupService  *service.GroupService
	InviteService *service.InviteService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerGroups()
	r.registerInvites()
	r.registerIdentity()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global
// middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerGroups() {
	h := &GroupsHandler{GroupService: r.GroupService}

	// POST /v1/groups - moderate rate limit by user (mutation)
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	// Reads get the lenient profile
	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)
	securedMembers := httpx.Chain(http.HandlerFunc(h.HandleListMembers),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("POST /v1/groups", securedCreate)
	r.Mux.Handle("GET /v1/groups", securedList)
	r.Mux.Handle("GET /v1/groups/{id}", securedGet)
	r.Mux.Handle("GET /v1/groups/{id}/members", securedMembers)
}

func (r *Router) registerInvites() {
	h := &InvitesHandler{InviteService: r.InviteService}

	// POST /v1/invites - moderate rate limit by user (mints credentials)
	securedCreate := httpx.Chain(http.HandlerFunc(h.HandleCreate),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	securedList := httpx.Chain(http.HandlerFunc(h.HandleList),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	securedGet := httpx.Chain(http.HandlerFunc(h.HandleGet),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	// POST /v1/invites/{code}/accept - moderate rate limit by user. Codes
	// carry 128 bits of entropy so enumeration is not the threat model here;
	// the limit just keeps retry loops polite.
	securedAccept := httpx.Chain(http.HandlerFunc(h.HandleAccept),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.ModerateLimit),
	)

	r.Mux.Handle("POST /v1/invites", securedCreate)
	r.Mux.Handle("GET /v1/groups/{id}/invites", securedList)
	r.Mux.Handle("GET /v1/invites/{code}", securedGet)
	r.Mux.Handle("POST /v1/invites/{code}/accept", securedAccept)
}

func (r *Router) registerIdentity() {
	secured := httpx.Chain(MeHandler(),
		httpx.AuthnMiddleware(r.verifier),
		httpx.RateLimitByUser(httpx.LenientLimit),
	)

	r.Mux.Handle("GET /v1/me", secured)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may
	// poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
