package tokens

import (
	"net/http"
	"strings"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
)

// CookieNames maps the token names onto cookie names.
type CookieNames struct {
	Access  string
	Refresh string
}

func (c CookieNames) cookie(name Name) (string, bool) {
	switch name {
	case Access:
		return c.Access, c.Access != ""
	case Refresh:
		return c.Refresh, c.Refresh != ""
	}
	return "", false
}

// CookieStore is a Store bound to a single request/response pair.
// Cleared or written values are visible to later reads on the same store.
type CookieStore struct {
	w      http.ResponseWriter
	r      *http.Request
	names  CookieNames
	secure bool
	local  map[Name]*string
}

var _ Store = (*CookieStore)(nil)

func NewCookieStore(w http.ResponseWriter, r *http.Request, names CookieNames, secure bool) *CookieStore {
	return &CookieStore{
		w:      w,
		r:      r,
		names:  names,
		secure: secure,
		local:  make(map[Name]*string),
	}
}

func (s *CookieStore) Get(name Name) (string, bool) {
	if v, ok := s.local[name]; ok {
		if v == nil {
			return "", false
		}
		return *v, true
	}
	cookieName, ok := s.names.cookie(name)
	if !ok || s.r == nil {
		return "", false
	}
	cookie, err := s.r.Cookie(cookieName)
	if err != nil || cookie == nil {
		return "", false
	}
	value := strings.TrimSpace(cookie.Value)
	if value == "" {
		return "", false
	}
	return value, true
}

// Set writes a token cookie. A blank value clears the token instead.
func (s *CookieStore) Set(name Name, value string, maxAge int) error {
	cookieName, ok := s.names.cookie(name)
	if !ok {
		return errors.Wrapf(errors.ErrUnknownToken, "[CookieStore Set] %q", name)
	}
	value = strings.TrimSpace(value)
	if value == "" {
		s.Clear(name)
		return nil
	}
	s.local[name] = &value
	s.write(cookieName, value, maxAge)
	return nil
}

func (s *CookieStore) Clear(name Name) {
	cookieName, ok := s.names.cookie(name)
	if !ok {
		return
	}
	s.local[name] = nil
	s.write(cookieName, "", -1)
}

func (s *CookieStore) write(cookieName, value string, maxAge int) {
	if s.w == nil {
		return
	}
	http.SetCookie(s.w, &http.Cookie{
		Name:     cookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}
