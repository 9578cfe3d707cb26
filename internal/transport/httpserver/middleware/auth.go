package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	userdomain "sponsorship-app-go/internal/domain/user"
	"sponsorship-app-go/internal/session"
	"sponsorship-app-go/pkg/logger"
)

type contextKey int

const userKey contextKey = iota

// SessionAuth resolves the session cookie into a user account. Requests
// without a valid, unexpired session are rejected before they reach a handler.
type SessionAuth struct {
	sessions   session.Store
	users      *userdomain.Service
	cookieName string
	log        logger.Logger
}

func NewSessionAuth(sessions session.Store, users *userdomain.Service, cookieName string, log logger.Logger) *SessionAuth {
	return &SessionAuth{
		sessions:   sessions,
		users:      users,
		cookieName: cookieName,
		log:        log,
	}
}

func (a *SessionAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(a.cookieName)
		if err != nil {
			unauthorized(w)
			return
		}

		item, err := a.sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				a.log.Error("auth: session lookup failed", "error", err)
			}
			unauthorized(w)
			return
		}

		account, err := a.users.Get(r.Context(), item.UserID)
		if err != nil {
			if !errors.Is(err, userdomain.ErrUserNotFound) {
				a.log.Error("auth: user lookup failed", "error", err)
			}
			unauthorized(w)
			return
		}
		if !account.IsActive || !account.IsApproved {
			unauthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(withUser(r.Context(), account)))
	})
}

// RequireAdmin guards routes below it; it assumes Middleware already ran.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		account, ok := UserFromContext(r.Context())
		if !ok {
			unauthorized(w)
			return
		}
		if account.Role != userdomain.RoleAdmin {
			forbidden(w)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func withUser(ctx context.Context, account *userdomain.User) context.Context {
	return context.WithValue(ctx, userKey, account)
}

func UserFromContext(ctx context.Context) (*userdomain.User, bool) {
	account, ok := ctx.Value(userKey).(*userdomain.User)
	return account, ok
}

func unauthorized(w http.ResponseWriter) {
	writeErrorJSON(w, http.StatusUnauthorized, "authentication required")
}

func forbidden(w http.ResponseWriter) {
	writeErrorJSON(w, http.StatusForbidden, "admin access required")
}

func writeErrorJSON(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}
