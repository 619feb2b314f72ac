package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/viewinvoices/server/internal/domain"
	"github.com/viewinvoices/server/internal/service"
	"github.com/viewinvoices/server/pkg/httpx"
)

type ctxKey string

const ctxKeyUser ctxKey = "current_user"

// userFromContext returns the authenticated user set by requireAuth.
func userFromContext(ctx context.Context) (domain.PublicUser, bool) {
	u, ok := ctx.Value(ctxKeyUser).(domain.PublicUser)
	return u, ok
}

// requireAuth validates the bearer token and attaches the resolved user to
// the request context. The user id is also stored under httpx.CtxKeyUserID
// so per-user rate limiting can key on it.
func requireAuth(auth *service.AuthService) httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				errUnauthenticated.WriteError(w)
				return
			}

			user, err := auth.AuthenticateToken(r.Context(), token)
			if err != nil {
				errUnauthenticated.WriteError(w)
				return
			}

			ctx := context.WithValue(r.Context(), ctxKeyUser, user)
			ctx = context.WithValue(ctx, httpx.CtxKeyUserID, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireAdmin rejects authenticated non-admin users. Must run after
// requireAuth in the chain.
func requireAdmin() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := userFromContext(r.Context())
			if !ok {
				errUnauthenticated.WriteError(w)
				return
			}
			if !user.IsAdmin {
				errForbidden.WriteError(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}
