package server

import (
	"fmt"
	"html"
	"net/http"

	"github.com/jrsteele09/go-session-auth/auth"
	"github.com/jrsteele09/go-session-auth/internal/logutil"
	"github.com/jrsteele09/go-session-auth/users"
	"github.com/pkg/errors"
)

const contentTypeHTML = "text/html; charset=utf-8"

// genericLoginFailure is shown for every credential rejection. Whether the
// username or the password was wrong stays server-side so the endpoint can't
// be used to enumerate accounts.
const genericLoginFailure = "Log in failed"

// FormPageData is the template model for the sign-up and log-in pages
type FormPageData struct {
	Error    string
	Username string // Preserve username on error
}

// IndexHandler renders the home page. Session resolution failures degrade to
// an anonymous page here: the identity only gates personalisation.
func (s *Server) IndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, err := s.currentIdentity(r)
		if err != nil {
			logutil.GetOrDefault(r.Context()).Err(err).Msg("Session resolution failed, rendering anonymous page")
			identity = nil
		}

		data := map[string]interface{}{
			"AppName": s.config.GetAppName(),
			"User":    identity,
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		if err := indexTmpl.Execute(w, data); err != nil {
			logutil.GetOrDefault(r.Context()).Err(err).Msg("Failed to render index template")
		}
	}
}

// SignUpGetHandler renders the registration form
func (s *Server) SignUpGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := FormPageData{
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = signUpTmpl.Execute(w, data)
	}
}

// SignUpPostHandler processes the registration form: validate, hash, create,
// then log the new user straight in.
func (s *Server) SignUpPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		if err := users.ValidateCredentials(username, password); err != nil {
			redirectWithError(w, r, RouteSignUp, err.Error())
			return
		}

		hash, err := users.HashPassword(password, s.config.GetBcryptCost())
		if err != nil {
			logutil.GetOrDefault(r.Context()).Err(err).Msg("Password hashing failed")
			http.Error(w, "Failed to create account", http.StatusInternalServerError)
			return
		}

		user, err := s.users.Create(r.Context(), username, hash)
		if errors.Is(err, users.UsernameTakenErr) {
			redirectWithError(w, r, RouteSignUp, "Username already taken")
			return
		}
		if err != nil {
			logutil.GetOrDefault(r.Context()).Err(err).Msg("Failed to create user")
			http.Error(w, "Failed to create account", http.StatusInternalServerError)
			return
		}

		s.establishAndRedirect(w, r, user.Identity())
	}
}

// LogInGetHandler renders the login form
func (s *Server) LogInGetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := FormPageData{
			Error:    r.URL.Query().Get("error"),
			Username: r.URL.Query().Get("username"),
		}
		w.Header().Set("Content-Type", contentTypeHTML)
		_ = logInTmpl.Execute(w, data)
	}
}

// LogInPostHandler processes the login form submission
func (s *Server) LogInPostHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}

		username := r.FormValue("username")
		password := r.FormValue("password")

		if username == "" || password == "" {
			redirectWithError(w, r, RouteLogIn, "Username and password are required")
			return
		}

		identity, err := s.strategy.Authenticate(r.Context(), username, password)
		if auth.IsRejection(err) {
			// The real reason stays in the log only.
			logutil.GetOrDefault(r.Context()).Debug().Str("username", username).Err(err).Msg("Login rejected")
			redirectWithError(w, r, RouteLogIn, genericLoginFailure)
			return
		}
		if err != nil {
			logutil.GetOrDefault(r.Context()).Err(err).Msg("Authentication failed")
			http.Error(w, "Failed to log in", http.StatusInternalServerError)
			return
		}

		s.establishAndRedirect(w, r, identity)
	}
}

// LogOutHandler terminates the current session and clears the cookie.
// Logging out without a session, or twice in a row, is fine.
func (s *Server) LogOutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil && cookie.Value != "" {
			if err := s.sessions.Terminate(r.Context(), cookie.Value); err != nil {
				logutil.GetOrDefault(r.Context()).Err(err).Msg("Failed to terminate session")
			}
		}

		s.SetSessionCookie(w, r, "", -1) // Delete cookie
		redirectSuccess(w, r, "/")
	}
}

// ProtectedHandler is the guarded resource; RequireSessionAuth has already
// admitted the request and injected the identity.
func (s *Server) ProtectedHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFromContext(r.Context())
		if !ok {
			// Guard missing from the chain - refuse rather than serve.
			http.Error(w, "401 - Unauthorized", http.StatusUnauthorized)
			return
		}

		w.Header().Set("Content-Type", contentTypeHTML)
		fmt.Fprintf(w, "<h1>This is a protected route. Hello, %s!</h1>", html.EscapeString(identity.Username))
	}
}

func (s *Server) establishAndRedirect(w http.ResponseWriter, r *http.Request, identity users.Identity) {
	token, err := s.sessions.Establish(r.Context(), identity)
	if err != nil {
		logutil.GetOrDefault(r.Context()).Err(err).Msg("Failed to establish session")
		http.Error(w, "Failed to start session", http.StatusInternalServerError)
		return
	}

	s.SetSessionCookie(w, r, token, int(s.config.GetMaxSessionAge().Seconds()))
	redirectSuccess(w, r, "/")
}
