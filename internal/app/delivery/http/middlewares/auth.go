package middlewares

import (
	"context"
	"fmt"
	"learnhub-service/internal/app/models"
	"learnhub-service/internal/pkg/constvars"
	"learnhub-service/internal/pkg/exceptions"
	"learnhub-service/internal/pkg/utils"
	"net/http"
	"strings"
)

// Authenticate resolves the bearer token into redis-backed session data and
// attaches it to the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(fmt.Errorf("authorization header missing or malformed")))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		sessionID, err := utils.ParseSessionJWT(tokenString, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		sessionData, err := m.SessionService.GetSession(r.Context(), sessionID)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, sessionData)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireAdmin must run after Authenticate.
func (m *Middlewares) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionData, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		if !ok || sessionData == nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrSessionInvalid(fmt.Errorf("session data missing from context")))
			return
		}
		if sessionData.Role != constvars.RoleAdmin {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrNotAdmin(fmt.Errorf("role %s is not allowed", sessionData.Role)))
			return
		}
		next.ServeHTTP(w, r)
	})
}
