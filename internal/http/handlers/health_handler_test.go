package handlers

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakePinger struct {
	err   error
	stats sql.DBStats
}

func (p fakePinger) PingContext(context.Context) error { return p.err }
func (p fakePinger) Stats() sql.DBStats { return p.stats }

func TestHealthHandler(t *testing.T) {
	tests := []struct {
		name     string
		pinger   fakePinger
		wantCode int
		wantBody string
	}{
		{"healthy", fakePinger{stats: sql.DBStats{MaxOpenConnections: 10, InUse: 1}}, http.StatusOK, `"status":"healthy"`},
		{"db down", fakePinger{err: errors.New("dial tcp")}, http.StatusServiceUnavailable, `"status":"unhealthy"`},
		{"pool exhausted", fakePinger{stats: sql.DBStats{MaxOpenConnections: 2, InUse: 2}}, http.StatusOK, "pool exhausted"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRouter("")
			r.GET("/health", NewHealthHandler(tt.pinger).Health)

			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tt.wantCode, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
		})
	}
}
