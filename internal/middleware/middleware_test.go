package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/avc-dev/link-resolver/internal/service"
)

// TestAuthMiddleware_RequireAdmin проверяет пропуск и отказ по заголовку Authorization
func TestAuthMiddleware_RequireAdmin(t *testing.T) {
	auth := service.NewAuthService("secret")
	valid, err := auth.GenerateJWT("admin", time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantError  string
	}{
		{name: "Valid token", header: "Bearer " + valid, wantStatus: http.StatusNoContent},
		{name: "Lowercase scheme", header: "bearer " + valid, wantStatus: http.StatusNoContent},
		{name: "Missing header", header: "", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "Basic scheme", header: "Basic YWRtaW46YWRtaW4=", wantStatus: http.StatusUnauthorized, wantError: "missing bearer token"},
		{name: "Invalid token", header: "Bearer broken", wantStatus: http.StatusUnauthorized, wantError: "invalid token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			var subject string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				subject, _ = GetSubjectFromContext(r.Context())
				w.WriteHeader(http.StatusNoContent)
			})
			handler := NewAuthMiddleware(auth, zap.NewNop()).RequireAdmin(next)

			req := httptest.NewRequest(http.MethodGet, "/api/links", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()

			// Act
			handler.ServeHTTP(w, req)

			// Assert
			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusNoContent {
				assert.Equal(t, "admin", subject)
			} else {
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				assert.JSONEq(t, `{"ok":false,"error":"`+tt.wantError+`"}`, w.Body.String())
			}
		})
	}
}

// TestLogger проверяет поля и уровень записи журнала запросов
func TestLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := Logger(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte("boom"))
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/abc123", nil))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zap.ErrorLevel, entries[0].Level)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/abc123", fields["uri"])
	assert.Equal(t, int64(http.StatusInternalServerError), fields["status"])
	assert.Equal(t, int64(4), fields["size"])
}
