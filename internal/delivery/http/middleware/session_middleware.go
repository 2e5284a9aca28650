package middleware

import (
	"context"
	"net/http"

	"go-hospital-management/internal/service"
	"go-hospital-management/pkg/response"

	"github.com/google/uuid"
)

type contextKey string

const (
	UserIDKey       contextKey = "user_id"
	RoleIDKey       contextKey = "role_id"
	SessionTokenKey contextKey = "session_token"
)

// SessionMiddleware authenticates requests against the server-side
// session store. The client only holds the opaque token in a cookie.
type SessionMiddleware struct {
	sessionStore service.SessionStore
	cookieName   string
}

func NewSessionMiddleware(sessionStore service.SessionStore, cookieName string) *SessionMiddleware {
	return &SessionMiddleware{
		sessionStore: sessionStore,
		cookieName:   cookieName,
	}
}

func (m *SessionMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(m.cookieName)
		if err != nil || cookie.Value == "" {
			response.Unauthorized(w, "Authentication required")
			return
		}

		identity, err := m.sessionStore.Get(r.Context(), cookie.Value)
		if err != nil {
			response.InternalServerError(w, "Failed to validate session")
			return
		}
		if identity == nil {
			response.Unauthorized(w, "Session expired or invalid")
			return
		}

		ctx := context.WithValue(r.Context(), UserIDKey, identity.UserID)
		ctx = context.WithValue(ctx, RoleIDKey, identity.RoleID)
		ctx = context.WithValue(ctx, SessionTokenKey, cookie.Value)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUserIDFromContext extracts user ID from context
func GetUserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	userID, ok := ctx.Value(UserIDKey).(uuid.UUID)
	return userID, ok
}

// GetRoleIDFromContext extracts role ID from context
func GetRoleIDFromContext(ctx context.Context) (int, bool) {
	roleID, ok := ctx.Value(RoleIDKey).(int)
	return roleID, ok
}

// GetSessionTokenFromContext extracts the session token from context
func GetSessionTokenFromContext(ctx context.Context) (string, bool) {
	token, ok := ctx.Value(SessionTokenKey).(string)
	return token, ok
}
