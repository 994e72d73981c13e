package server

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"docvault/internal/store"
)

type authContextKey struct{}

type authPrincipal struct {
	OwnerID string
	User    *store.AuthUser
}

func contextWithAuthPrincipal(ctx context.Context, principal authPrincipal) context.Context {
	return context.WithValue(ctx, authContextKey{}, principal)
}

func authPrincipalFromContext(ctx context.Context) (authPrincipal, bool) {
	if ctx == nil {
		return authPrincipal{}, false
	}
	principal, ok := ctx.Value(authContextKey{}).(authPrincipal)
	return principal, ok
}

// withAuth resolves the request's owner identity. While no users are
// provisioned every request runs as the built-in local owner; once a user
// exists a valid bearer token is mandatory.
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !authExemptPath(r) {
			required, err := s.authService.AuthRequired(r.Context())
			if err != nil {
				s.writeStoreError(w, r, err)
				return
			}

			principal := authPrincipal{OwnerID: localOwnerID}
			if required {
				token := bearerTokenFromRequest(r)
				user, err := s.authService.AuthenticateToken(r.Context(), token, time.Now().UTC())
				if err != nil {
					s.writeStoreError(w, r, err)
					return
				}
				if user == nil {
					s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("a valid bearer token is required")))
					return
				}
				principal = authPrincipal{OwnerID: user.ID, User: user}
			}
			r = r.WithContext(contextWithAuthPrincipal(r.Context(), principal))
		}

		next.ServeHTTP(w, r)
	})
}

func authExemptPath(r *http.Request) bool {
	switch {
	case r.URL.Path == "/health":
		return true
	case r.URL.Path == "/v1/auth/login":
		return true
	case strings.HasPrefix(r.URL.Path, "/blobs/"):
		// Blob URLs are shared outside the CLI; keys are unguessable.
		return true
	default:
		return false
	}
}

func bearerTokenFromRequest(r *http.Request) string {
	header := strings.TrimSpace(r.Header.Get("Authorization"))
	if header == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func (s *Server) requestOwnerID(w http.ResponseWriter, r *http.Request) (string, bool) {
	principal, ok := authPrincipalFromContext(r.Context())
	if !ok || principal.OwnerID == "" {
		s.writeErrorReq(w, r, http.StatusUnauthorized, unauthorized(fmt.Errorf("unauthorized")))
		return "", false
	}
	return principal.OwnerID, true
}
