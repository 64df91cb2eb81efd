package server

import (
	"net/http"
	"net/url"

	"github.com/jrsteele09/go-onboarding-server/token/jwt"
	"github.com/jrsteele09/go-onboarding-server/tokens"
)

// tokenStore binds the session token cookies to the current request.
func (s *Server) tokenStore(w http.ResponseWriter, r *http.Request) *tokens.CookieStore {
	names := tokens.CookieNames{
		Access:  s.config.GetAccessTokenCookie(),
		Refresh: s.config.GetRefreshTokenCookie(),
	}
	return tokens.NewCookieStore(w, r, names, getScheme(r) == "https")
}

func (s *Server) tokenValidator(store tokens.Store) *jwt.Validator {
	return jwt.NewValidator(store,
		jwt.WithSecret(s.config.GetAccessTokenSecret()),
		jwt.WithLeeway(s.config.GetTokenLeeway()),
	)
}

func (s *Server) sessionMaxAge() int {
	return int(s.config.GetSessionMaxAge().Seconds())
}

// redirectSuccess helper for htmx-aware success redirects
func redirectSuccess(w http.ResponseWriter, r *http.Request, path string) {
	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusNoContent) // 204 - no content, just redirect instruction
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

// redirectWithError helper for htmx-aware error redirects
func redirectWithError(w http.ResponseWriter, r *http.Request, path, errorMsg string) {
	fullPath := path + "?error=" + url.QueryEscape(errorMsg)

	if isHTMXRequest(r) {
		w.Header().Set("HX-Redirect", fullPath)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	http.Redirect(w, r, fullPath, http.StatusSeeOther)
}

// isHTMXRequest checks if the request was initiated by HTMX
func isHTMXRequest(r *http.Request) bool {
	return r.Header.Get("HX-Request") == "true"
}

// safeReturnURL only accepts local absolute paths.
func safeReturnURL(raw string) string {
	if raw == "" || raw[0] != '/' || (len(raw) > 1 && (raw[1] == '/' || raw[1] == '\\')) {
		return ""
	}
	return raw
}
