package middleware

import (
	"context"
	"net/http"
	"strings"

	"erp-ledger/internal/auth"
	"erp-ledger/pkg/utils"
)

type contextKey string

const SubjectKey contextKey = "subject"
const RoleKey contextKey = "role"

// subjectHolderKey carries a holder set by APILogging so the authenticated
// subject is visible to the outer log line.
const subjectHolderKey contextKey = "subject_holder"

// AccessTokenParam is read when no Authorization header is present. Browsers
// cannot set headers on a websocket upgrade.
const AccessTokenParam = "access_token"

type subjectHolder struct {
	subject string
}

type AuthMiddleware struct {
	jwtManager *auth.JWTManager
}

// NewAuthMiddleware accepts a nil manager, in which case requests pass through
func NewAuthMiddleware(jwtManager *auth.JWTManager) *AuthMiddleware {
	return &AuthMiddleware{jwtManager: jwtManager}
}

// Authenticate validates the bearer token when auth is enabled
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.jwtManager == nil {
			next.ServeHTTP(w, r)
			return
		}

		token := r.URL.Query().Get(AccessTokenParam)
		if authHeader := r.Header.Get("Authorization"); authHeader != "" {
			// Extract token from "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				utils.Error(w, http.StatusUnauthorized, "unauthorized", "Invalid authorization format")
				return
			}
			token = parts[1]
		}
		if token == "" {
			utils.Error(w, http.StatusUnauthorized, "unauthorized", "Authorization header required")
			return
		}

		claims, err := m.jwtManager.ValidateToken(token)
		if err != nil {
			utils.Error(w, http.StatusUnauthorized, "unauthorized", "Invalid or expired token")
			return
		}

		if holder, ok := r.Context().Value(subjectHolderKey).(*subjectHolder); ok {
			holder.subject = claims.Subject
		}
		ctx := context.WithValue(r.Context(), SubjectKey, claims.Subject)
		ctx = context.WithValue(ctx, RoleKey, claims.Role)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectFromContext extracts the token subject from request context
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectKey).(string)
	return subject, ok
}
