package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/viewinvoices/server/internal/invoices"
	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/pkg/httpx"
	"github.com/viewinvoices/server/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	AuthService *service.AuthService
	UserService *service.UserService
	InvoiceRepo invoices.Repository // nil when no invoice database is configured
}

func NewRouter(buildVersion string, cors httpx.CORSConfig, logger *slog.Logger) *Router {
	if logger == nil {
		logger = slog.Default()
	}

	r := &Router{
		Mux:          http.NewServeMux(),
		buildVersion: buildVersion,
		startTime:    time.Now(),
		logger:       logger,
	}

	// Set default middleware chain. CORS runs outermost so even rate-limited
	// and failed responses carry the headers the browser needs.
	r.middlewares = []httpx.Middleware{
		httpx.CORSMiddleware(cors),
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerAdmin()
	r.registerInvoices()
	r.registerSystem()
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerAuth() {
	h := &AuthHandler{AuthService: r.AuthService}

	// POST /register - strict per-IP limit (account creation)
	r.Mux.Handle("POST /api/auth/register",
		httpx.Chain(http.HandlerFunc(h.HandleRegister),
			httpx.RateLimitByIP(httpx.RegisterLimit),
		),
	)

	// POST /login - strict limit keyed by IP + username body field so one
	// address can't brute-force many accounts in parallel
	r.Mux.Handle("POST /api/auth/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin),
			httpx.RateLimitByIPAndJSONField(httpx.LoginLimit, "username"),
		),
	)

	// GET /me - authenticated, lenient limit per user
	r.Mux.Handle("GET /api/auth/me",
		httpx.Chain(http.HandlerFunc(h.HandleMe),
			requireAuth(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerAdmin() {
	h := &UsersHandler{UserService: r.UserService}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			requireAuth(r.AuthService),
			requireAdmin(),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/admin/users", secured(h.HandleList))
	r.Mux.Handle("GET /api/admin/users/{id}", secured(h.HandleGet))
	r.Mux.Handle("PUT /api/admin/users/{id}", secured(h.HandleUpdate))
	r.Mux.Handle("DELETE /api/admin/users/{id}", secured(h.HandleDelete))
}

func (r *Router) registerInvoices() {
	h := &InvoicesHandler{Repo: r.InvoiceRepo}

	secured := func(handler http.HandlerFunc) http.Handler {
		return httpx.Chain(handler,
			requireAuth(r.AuthService),
			httpx.RateLimitByUser(httpx.LenientLimit),
		)
	}

	r.Mux.Handle("GET /api/invoices", secured(h.HandleList))
	r.Mux.Handle("GET /api/invoices/{id}", secured(h.HandleGet))
}

func (r *Router) registerSystem() {
	// Health endpoint - high limit (monitoring systems poll frequently)
	r.Mux.Handle("GET /api/health",
		httpx.Chain(HealthHandler(r.startTime, r.buildVersion, r.InvoiceRepo != nil),
			httpx.RateLimitByIP(httpx.PublicLimit),
		),
	)
}
