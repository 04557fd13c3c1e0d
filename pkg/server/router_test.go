package server_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookvault/bookvault/pkg/cache"
	"github.com/bookvault/bookvault/pkg/model"
)

func TestCreateContactMessage(t *testing.T) {
	e := newEnv(t)

	w := e.do(t, http.MethodPost, "/api/contacts", gin.H{
		"name":    "Jane Doe",
		"email":   "jane@example.com",
		"message": "I would like to know more about your catalog.",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var msg model.ContactMessage
	decode(t, w, &msg)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, "Jane Doe | jane@example.com", msg.CreatedBy)
}

func TestContactMessageValidation(t *testing.T) {
	e := newEnv(t)

	tests := []struct {
		name string
		body gin.H
	}{
		{
			name: "invalid email",
			body: gin.H{"name": "Jane", "email": "not-an-email", "message": "A perfectly fine message."},
		},
		{
			name: "message too short",
			body: gin.H{"name": "Jane", "email": "jane@example.com", "message": "short"},
		},
		{
			name: "missing name",
			body: gin.H{"email": "jane@example.com", "message": "A perfectly fine message."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/api/contacts", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

type healthResponse struct {
	Status       string                `json:"status"`
	Database     string                `json:"database"`
	Cache        string                `json:"cache"`
	CacheMetrics cache.MetricsSnapshot `json:"cacheMetrics"`
}

func TestHealthz(t *testing.T) {
	e := newEnv(t)

	// Generate one miss so the counters are non-trivial.
	w := e.do(t, http.MethodGet, "/api/books", nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = e.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body healthResponse
	decode(t, w, &body)
	assert.Equal(t, "ok", body.Status)
	assert.Equal(t, "ok", body.Database)
	assert.Equal(t, "ok", body.Cache)
	assert.Equal(t, uint64(1), body.CacheMetrics.CacheMisses)
}

func TestHealthzWithCacheDown(t *testing.T) {
	e := newEnv(t)
	e.mr.Close()

	// A cache outage is reported but does not fail the probe.
	w := e.do(t, http.MethodGet, "/healthz", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var body healthResponse
	decode(t, w, &body)
	assert.Equal(t, "ok", body.Status)
	assert.NotEqual(t, "ok", body.Cache)
}
