package tokens_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-onboarding-server/internal/errors"
	"github.com/jrsteele09/go-onboarding-server/tokens"
	"github.com/stretchr/testify/require"
)

var names = tokens.CookieNames{Access: "supabase-access-token", Refresh: "supabase-refresh-token"}

func newRequest(cookies ...*http.Cookie) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/onboarding", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	return r
}

func TestCookieStore_Get(t *testing.T) {
	r := newRequest(
		&http.Cookie{Name: "supabase-access-token", Value: "access-1"},
		&http.Cookie{Name: "supabase-refresh-token", Value: "   "},
	)
	s := tokens.NewCookieStore(httptest.NewRecorder(), r, names, false)

	v, ok := s.Get(tokens.Access)
	require.True(t, ok)
	require.Equal(t, "access-1", v)

	_, ok = s.Get(tokens.Refresh)
	require.False(t, ok, "blank values are absent")

	_, ok = s.Get(tokens.Name("other"))
	require.False(t, ok)
}

func TestCookieStore_Clear(t *testing.T) {
	r := newRequest(
		&http.Cookie{Name: "supabase-access-token", Value: "access-1"},
		&http.Cookie{Name: "supabase-refresh-token", Value: "refresh-1"},
	)
	w := httptest.NewRecorder()
	s := tokens.NewCookieStore(w, r, names, true)

	tokens.ClearAll(s)

	_, ok := s.Get(tokens.Access)
	require.False(t, ok)
	_, ok = s.Get(tokens.Refresh)
	require.False(t, ok)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	for _, c := range cookies {
		require.Equal(t, -1, c.MaxAge)
		require.Empty(t, c.Value)
		require.True(t, c.Secure)
		require.True(t, c.HttpOnly)
	}
}

func TestCookieStore_Set(t *testing.T) {
	w := httptest.NewRecorder()
	s := tokens.NewCookieStore(w, newRequest(), names, false)

	require.NoError(t, s.Set(tokens.Refresh, "refresh-2", 3600))
	v, ok := s.Get(tokens.Refresh)
	require.True(t, ok)
	require.Equal(t, "refresh-2", v)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "supabase-refresh-token", cookies[0].Name)
	require.Equal(t, 3600, cookies[0].MaxAge)

	err := s.Set(tokens.Name("other"), "x", 10)
	require.ErrorIs(t, err, errors.ErrUnknownToken)
}

func TestCookieStore_SetBlankClears(t *testing.T) {
	w := httptest.NewRecorder()
	r := newRequest(&http.Cookie{Name: "supabase-refresh-token", Value: "refresh-1"})
	s := tokens.NewCookieStore(w, r, names, false)

	require.NoError(t, s.Set(tokens.Refresh, "   ", 60))
	v, ok := s.Get(tokens.Refresh)
	require.False(t, ok)
	require.Empty(t, v)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	require.Equal(t, "supabase-refresh-token", cookies[0].Name)
	require.Equal(t, -1, cookies[0].MaxAge)
}
