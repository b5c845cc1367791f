package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/pkordes/talentrail/internal/auth"
	"github.com/pkordes/talentrail/internal/domain"
)

// TokenVerifier validates a bearer token and returns its claims.
type TokenVerifier interface {
	Verify(token string) (auth.Claims, error)
}

type (
	claimsKey   struct{}
	userSinkKey struct{}
)

// withUserSink lets an outer middleware learn the authenticated username
// once the request has been served.
func withUserSink(ctx context.Context, user *string) context.Context {
	return context.WithValue(ctx, userSinkKey{}, user)
}

// ClaimsFromContext returns the claims Authenticate stored for the request.
func ClaimsFromContext(ctx context.Context) (auth.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(auth.Claims)
	return c, ok
}

// WithClaims stores c in ctx the same way Authenticate does.
func WithClaims(ctx context.Context, c auth.Claims) context.Context {
	return context.WithValue(ctx, claimsKey{}, c)
}

// Authenticate verifies the bearer token of requests that carry one and
// stores its claims in the request context. Requests without an
// Authorization header pass through anonymously; a header that is malformed
// or holds an invalid token is rejected with 401.
func Authenticate(tokens TokenVerifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if strings.TrimSpace(header) == "" {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerTokenFromHeader(header)
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authorization header must be 'Bearer <token>'")
				return
			}

			claims, err := tokens.Verify(token)
			if err != nil {
				msg := "invalid token"
				if errors.Is(err, auth.ErrTokenExpired) {
					msg = "token expired"
				}
				writeError(w, http.StatusUnauthorized, "unauthorized", msg)
				return
			}

			if sink, ok := r.Context().Value(userSinkKey{}).(*string); ok {
				*sink = claims.Username
			}
			next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole admits only authenticated requests whose token grants at least
// one of roles: anonymous requests get 401, authenticated ones lacking the
// role get 403.
func RequireRole(roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				writeError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
				return
			}
			if !claims.HasRole(roles...) {
				writeError(w, http.StatusForbidden, "forbidden", "insufficient role for this operation")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func bearerTokenFromHeader(header string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(header), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
