package server

import (
	"net/http"

	"github.com/jrsteele09/go-onboarding-server/session"
)

// httpNavigator turns a navigation request into a redirect on the current response.
// Only the first navigation is written.
type httpNavigator struct {
	w    http.ResponseWriter
	r    *http.Request
	path string
}

var _ session.Navigator = (*httpNavigator)(nil)

func newHTTPNavigator(w http.ResponseWriter, r *http.Request) *httpNavigator {
	return &httpNavigator{w: w, r: r}
}

func (n *httpNavigator) Navigate(path string) {
	if n.path != "" {
		return
	}
	n.path = path
	redirectSuccess(n.w, n.r, path)
}

func (n *httpNavigator) navigated() bool {
	return n.path != ""
}
