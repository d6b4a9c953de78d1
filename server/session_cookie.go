package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-session-auth/users"
)

// sessionCookieName is the name of the cookie carrying the opaque session token
const sessionCookieName = "session_id"

func (s *Server) SetSessionCookie(w http.ResponseWriter, r *http.Request, token string, maxAge int) {
	isSecure := getScheme(r) == "https"

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

// currentIdentity resolves the session cookie to an identity. No cookie, an
// unknown token, or an expired session all mean "anonymous" (nil identity, no
// error); only store failures return an error.
func (s *Server) currentIdentity(r *http.Request) (*users.Identity, error) {
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, nil
	}
	return s.sessions.Resolve(r.Context(), cookie.Value)
}

func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError redirects to a page with an error message in the query
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	http.Redirect(w, r, path+"?error="+url.QueryEscape(errorMsg), http.StatusSeeOther)
}
