package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jrsteele09/go-onboarding-server/internal/metrics"
	"github.com/stretchr/testify/require"
)

func TestHandlerExposesCounters(t *testing.T) {
	m := metrics.New()
	m.ObserveGate("authenticated_valid")
	m.ObserveSubmission("updated")
	m.ObserveSubmission("updated")
	m.ObserveRequest(http.MethodPost, "/onboarding", http.StatusSeeOther)

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	require.Contains(t, body, `onboarding_session_gate_total{state="authenticated_valid"} 1`)
	require.Contains(t, body, `onboarding_profile_submissions_total{outcome="updated"} 2`)
	require.Contains(t, body, `onboarding_http_requests_total{code="303",method="POST",route="/onboarding"} 1`)
}

func TestNewUsesPrivateRegistry(t *testing.T) {
	require.NotPanics(t, func() {
		metrics.New()
		metrics.New()
	})
}

func TestInstrumentTransportCountsOutboundRequests(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))
	t.Cleanup(srv.Close)

	m := metrics.New()
	client := &http.Client{Transport: m.InstrumentTransport(http.DefaultTransport)}
	req, err := http.NewRequest(http.MethodPatch, srv.URL+"/rest/v1/users", nil)
	require.NoError(t, err)
	resp, err := client.Do(req)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())

	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Contains(t, rr.Body.String(), `onboarding_datastore_requests_total{code="204",method="patch"} 1`)
}
