package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/avc-dev/link-resolver/internal/mocks"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

// TestHealth_Success проверяет ответ при доступном хранилище
func TestHealth_Success(t *testing.T) {
	// Arrange
	mockDB := mocks.NewMockDatabase(t)
	mockDB.EXPECT().Ping(mock.Anything).Return(nil).Once()

	handler := New(nil, zap.NewNop(), mockDB, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	// Act
	handler.Health(w, req)

	// Assert
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}

// TestHealth_DatabaseError проверяет ответ при недоступном хранилище
func TestHealth_DatabaseError(t *testing.T) {
	// Arrange
	mockDB := mocks.NewMockDatabase(t)
	mockDB.EXPECT().Ping(mock.Anything).Return(assert.AnError).Once()

	handler := New(nil, zap.NewNop(), mockDB, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	// Act
	handler.Health(w, req)

	// Assert
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), `"ok":false`))
}

func TestHealth_NotConfigured(t *testing.T) {
	handler := New(nil, zap.NewNop(), nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	handler.Health(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
