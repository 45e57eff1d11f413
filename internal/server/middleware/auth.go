// Package middleware provides HTTP middleware for authentication and authorization.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/jobboard/internal/types"
)

// ContextKey is a typed key for context values to avoid collisions.
type ContextKey string

const principalKey ContextKey = "principal"

// Roles carried in tokens
const (
	RoleCandidate = "candidate"
	RoleRecruiter = "recruiter"
	RoleCollege   = "college"
	RoleAdmin     = "admin"
)

// Principal is the authenticated caller.
type Principal struct {
	UserID  uuid.UUID
	Role    string
	College string // set for college accounts
}

// CanAccess reports whether the principal may read data of the given scope.
// Admins read everything; other roles only their own scope.
func (p Principal) CanAccess(kind types.ScopeKind, id string) bool {
	switch p.Role {
	case RoleAdmin:
		return true
	case RoleCandidate:
		return kind == types.ScopeCandidate && id == p.UserID.String()
	case RoleRecruiter:
		return kind == types.ScopeRecruiter && id == p.UserID.String()
	case RoleCollege:
		return kind == types.ScopeCollege && p.College != "" && id == p.College
	default:
		return false
	}
}

// TokenValidator validates bearer tokens.
// This allows the middleware to work with any JWT service implementation.
type TokenValidator interface {
	ValidateToken(tokenString string) (PrincipalGetter, error)
}

// PrincipalGetter extracts the caller from token claims.
type PrincipalGetter interface {
	GetPrincipal() Principal
}

// AuthMiddleware validates bearer tokens and stores the principal in the
// request context. Paths listed in public pass through unauthenticated.
func AuthMiddleware(validator TokenValidator, public ...string) func(http.Handler) http.Handler {
	open := make(map[string]bool, len(public))
	for _, p := range public {
		open[p] = true
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if open[r.URL.Path] || r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			// Handle case-insensitive "Bearer" prefix
			parts := strings.Fields(r.Header.Get("Authorization"))
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			claims, err := validator.ValidateToken(parts[1])
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			ctx := WithPrincipal(r.Context(), claims.GetPrincipal())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// WithPrincipal returns a context carrying the principal.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// GetPrincipal extracts the authenticated principal from the request context.
func GetPrincipal(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}
