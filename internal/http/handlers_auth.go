package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"finlog/internal/auth"
)

// AuthViewModel holds data for the login and register pages.
type AuthViewModel struct {
	Title    string
	Username string
	Error    string
}

func (s *Server) handleLoginForm(w http.ResponseWriter, r *http.Request) {
	// Already logged in, nothing to do here
	if _, err := s.sessionUser(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.render(w, http.StatusOK, "login.html", AuthViewModel{Title: "Log in"})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "login.html", AuthViewModel{Title: "Log in", Error: "Invalid form submission"})
		return
	}

	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")

	user, err := s.auth.Authenticate(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			s.render(w, http.StatusUnauthorized, "login.html", AuthViewModel{
				Title:    "Log in",
				Username: username,
				Error:    "Invalid username or password",
			})
			return
		}
		slog.ErrorContext(r.Context(), "Login failed", "error", err)
		s.render(w, http.StatusInternalServerError, "login.html", AuthViewModel{
			Title: "Log in",
			Error: "An error occurred. Please try again.",
		})
		return
	}

	token, err := s.auth.StartSession(r.Context(), user.ID)
	if err != nil {
		slog.ErrorContext(r.Context(), "Failed to start session", "error", err, "user_id", user.ID)
		s.render(w, http.StatusInternalServerError, "login.html", AuthViewModel{
			Title: "Log in",
			Error: "An error occurred. Please try again.",
		})
		return
	}

	s.setSessionCookie(w, token, s.auth.SessionTTL())
	http.Redirect(w, r, "/dashboard", http.StatusFound)
}

func (s *Server) handleRegisterForm(w http.ResponseWriter, r *http.Request) {
	if _, err := s.sessionUser(r); err == nil {
		http.Redirect(w, r, "/dashboard", http.StatusFound)
		return
	}
	s.render(w, http.StatusOK, "register.html", AuthViewModel{Title: "Register"})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.render(w, http.StatusBadRequest, "register.html", AuthViewModel{Title: "Register", Error: "Invalid form submission"})
		return
	}

	username := sanitizeInput(r.FormValue("username"))
	password := r.FormValue("password")

	_, err := s.auth.Register(r.Context(), username, password)
	switch {
	case errors.Is(err, auth.ErrEmptyCredentials):
		s.render(w, http.StatusUnprocessableEntity, "register.html", AuthViewModel{
			Title:    "Register",
			Username: username,
			Error:    "Username and password are required",
		})
		return
	case errors.Is(err, auth.ErrUsernameTaken):
		s.render(w, http.StatusConflict, "register.html", AuthViewModel{
			Title:    "Register",
			Username: username,
			Error:    "That username is already taken",
		})
		return
	case err != nil:
		slog.ErrorContext(r.Context(), "Registration failed", "error", err)
		s.render(w, http.StatusInternalServerError, "register.html", AuthViewModel{
			Title: "Register",
			Error: "An error occurred. Please try again.",
		})
		return
	}

	slog.InfoContext(r.Context(), "User registered", "username", username)
	http.Redirect(w, r, "/login", http.StatusFound)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		if err := s.auth.EndSession(r.Context(), cookie.Value); err != nil {
			slog.ErrorContext(r.Context(), "Failed to end session", "error", err)
		}
	}
	s.clearSessionCookie(w)
	http.Redirect(w, r, "/login", http.StatusFound)
}
