package exchangerate

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticURL string

func (u staticURL) RatesURL() string { return string(u) }

func Test_OnValidResponse_ShouldReturnRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v4/latest/USD", r.URL.Path)
		_, _ = w.Write([]byte(`{"base":"USD","date":"2026-10-19","rates":{"USD":1,"EUR":0.92,"GBP":0.79}}`))
	}))
	defer srv.Close()

	rates, err := New(staticURL(srv.URL + "/v4/latest/USD")).GetRates(context.Background())
	require.NoError(t, err)
	assert.Equal(t, map[string]float64{"USD": 1, "EUR": 0.92, "GBP": 0.79}, rates)
}

func Test_OnBadResponses_ShouldFail(t *testing.T) {
	cases := []struct {
		name   string
		status int
		body   string
	}{
		{"server error", http.StatusInternalServerError, `{"rates":{"USD":1}}`},
		{"not json", http.StatusOK, `<html>`},
		{"no rates", http.StatusOK, `{"base":"USD"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(staticURL(srv.URL)).GetRates(context.Background())
			assert.Error(t, err)
		})
	}
}

func Test_OnUnreachableProvider_ShouldFail(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := New(staticURL(url)).GetRates(context.Background())
	assert.Error(t, err)
}

func Test_OnErrorStatus_ShouldReportStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	_, err := New(staticURL(srv.URL)).GetRates(context.Background())
	require.Error(t, err)
	assert.EqualError(t, err, "rates provider answered 503")
}
