package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirchsolutions/sirchweb/internal/version"
)

func TestHealthCheck(t *testing.T) {
	for _, configured := range []bool{true, false} {
		r := newTestRouter(&mockDispatcher{configured: configured}, true)

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)

		var body HealthResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "Health check OK", body.Message)
		assert.Equal(t, configured, body.EmailConfigured)
		assert.Equal(t, version.Version, body.Version)
	}
}
