package chi

import (
	"context"
	"net/http"
	"strings"

	"github.com/akash62835/ResumeRAG/internal/redact"
)

// APIKey is one configured bearer credential with its privilege role.
type APIKey struct {
	Key  string
	Name string
	Role redact.Role
}

// Identity is the resolved caller placed in the request context by the auth
// middleware.
type Identity struct {
	Name string
	Role redact.Role
}

type identityCtxKey struct{}

// ContextWithIdentity stores the caller identity in the context.
func ContextWithIdentity(ctx context.Context, ident Identity) context.Context {
	return context.WithValue(ctx, identityCtxKey{}, ident)
}

// IdentityFromContext returns the caller identity, defaulting to an anonymous
// viewer when the middleware did not run.
func IdentityFromContext(ctx context.Context) Identity {
	if ident, ok := ctx.Value(identityCtxKey{}).(Identity); ok {
		return ident
	}
	return Identity{Name: "anonymous", Role: redact.RoleViewer}
}

// RoleFromContext returns the caller role. Unauthenticated requests are
// viewers and get redacted payloads.
func RoleFromContext(ctx context.Context) redact.Role {
	return IdentityFromContext(ctx).Role
}

// exemptPaths are routes that bypass authentication (health, metrics).
var exemptPaths = map[string]struct{}{
	"/health":  {},
	"/metrics": {},
}

// BearerAuthMiddleware returns a middleware that validates Bearer tokens and
// resolves the caller role into the request context. If keys is empty,
// authentication is disabled and every request runs as an admin.
func BearerAuthMiddleware(keys []APIKey) func(http.Handler) http.Handler {
	byKey := make(map[string]Identity, len(keys))
	for _, k := range keys {
		if k.Key == "" {
			continue
		}
		ident := Identity{Name: k.Name, Role: k.Role}
		if ident.Name == "" {
			ident.Name = string(k.Role)
		}
		if ident.Role == "" {
			ident.Role = redact.RoleViewer
		}
		byKey[k.Key] = ident
	}

	return func(next http.Handler) http.Handler {
		// Auth disabled: pass everything through
		if len(byKey) == 0 {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				ctx := ContextWithIdentity(r.Context(), Identity{Name: "anonymous", Role: redact.RoleAdmin})
				next.ServeHTTP(w, r.WithContext(ctx))
			})
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Exempt paths
			if _, ok := exemptPaths[r.URL.Path]; ok {
				next.ServeHTTP(w, r)
				return
			}

			auth := r.Header.Get("Authorization")
			if auth == "" {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing authorization header")
				return
			}

			const bearerPrefix = "Bearer "
			if !strings.HasPrefix(auth, bearerPrefix) {
				writeError(w, http.StatusUnauthorized,
					codeUnauthorized, "authorization header must use Bearer scheme")
				return
			}

			ident, ok := byKey[auth[len(bearerPrefix):]]
			if !ok {
				writeError(w, http.StatusUnauthorized, codeUnauthorized, "invalid api key")
				return
			}

			next.ServeHTTP(w, r.WithContext(ContextWithIdentity(r.Context(), ident)))
		})
	}
}
