package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCountersByLabel(t *testing.T) {
	before := testutil.ToFloat64(GenerateRequests.WithLabelValues(OutcomeStale))
	GenerateRequests.WithLabelValues(OutcomeStale).Inc()
	assert.Equal(t, before+1, testutil.ToFloat64(GenerateRequests.WithLabelValues(OutcomeStale)))

	FavoritesStored.Set(3)
	assert.Equal(t, float64(3), testutil.ToFloat64(FavoritesStored))
}

func TestHandlerExposesMetrics(t *testing.T) {
	Shares.WithLabelValues("clipboard", "ok").Inc()

	srv := httptest.NewServer(Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `chow_shares_total{outcome="ok",target="clipboard"}`)
}
