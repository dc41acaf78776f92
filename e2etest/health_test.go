package e2etest

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/coin-browser/listing"
)

func TestHealthReportsUpstream(t *testing.T) {
	env := SetupTest(t, 2)

	var health struct {
		Status   string            `json:"status"`
		Services map[string]string `json:"services"`
	}
	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/health", &health))
	assert.Equal(t, "ok", health.Status)
	assert.Equal(t, "unknown", health.Services["coinranking"])

	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/coins/next", &listing.Snapshot{}))

	require.Equal(t, http.StatusOK, env.call(t, http.MethodGet, "/health", &health))
	assert.Equal(t, "up", health.Services["coinranking"])
}

func TestMetricsExposed(t *testing.T) {
	env := SetupTest(t, 2)
	require.Equal(t, http.StatusOK, env.call(t, http.MethodPost, "/api/v1/coins/next", &listing.Snapshot{}))

	resp, err := http.Get(env.ServerBaseURL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.Contains(string(body), "coin_browser_"), "expected coin browser metrics")
}
