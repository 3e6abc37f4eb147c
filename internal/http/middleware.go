package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"finlog/internal/core"
	applog "finlog/internal/log"
)

const (
	// SessionCookieName is the name of the session cookie.
	SessionCookieName = "session"
)

// requireAuth resolves the session cookie to a user and injects it into the
// request context. Unauthenticated requests are redirected to the login page.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.sessionUser(r)
		if err != nil {
			// Invalid or expired session: clear the cookie and bounce
			applog.FromContext(r.Context()).DebugContext(r.Context(), "Unauthenticated request", "url", r.URL.Path)
			s.clearSessionCookie(w)
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, user)
		next(w, r.WithContext(ctx))
	}
}

// sessionUser resolves the request's session cookie to its user.
func (s *Server) sessionUser(r *http.Request) (core.User, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return core.User{}, errors.New("no session cookie")
	}
	return s.auth.ResolveSession(r.Context(), cookie.Value)
}

// userFrom retrieves the authenticated user placed in the context by
// requireAuth.
func userFrom(r *http.Request) core.User {
	user, _ := r.Context().Value(userKey).(core.User)
	return user
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secureCookie,
		SameSite: http.SameSiteLaxMode,
	})
}
