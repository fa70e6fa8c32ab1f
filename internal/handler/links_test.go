package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avc-dev/link-resolver/internal/mocks"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// TestCreateLink_Success проверяет создание ссылки через JSON API
func TestCreateLink_Success(t *testing.T) {
	// Arrange
	mockUsecase := mocks.NewMockLinkUsecase(t)
	expiry := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)

	mockUsecase.EXPECT().
		CreateLink(mock.Anything, "https://example.com", mock.MatchedBy(func(at *time.Time) bool {
			return at != nil && at.Equal(expiry)
		}), "192.0.2.10").
		Return(model.CreatedLink{
			Link:     model.Link{ID: 1, Code: "baaab"},
			ShortURL: "http://localhost:8080/baaab",
		}, nil).
		Once()

	handler := New(mockUsecase, zap.NewNop(), nil, nil)

	body := `{"longUrl":"https://example.com","expiresAt":"2030-01-02T03:04:05Z"}`
	req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(body))
	req.RemoteAddr = "192.0.2.10:4000"
	w := httptest.NewRecorder()

	// Act
	handler.CreateLink(w, req)

	// Assert
	resp := w.Result()
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	var response CreateLinkResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&response))
	assert.Equal(t, CreateLinkResponse{OK: true, Code: "baaab", ShortURL: "http://localhost:8080/baaab"}, response)
}

// TestCreateLink_BadRequest проверяет отказ для некорректных тел запроса
func TestCreateLink_BadRequest(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "Malformed JSON", body: `{"longUrl": "https://example.com"`},
		{name: "Empty body", body: ""},
		{name: "Missing longUrl", body: `{"expiresAt":"2030-01-02T03:04:05Z"}`},
		{name: "Bad expiry format", body: `{"longUrl":"https://example.com","expiresAt":"tomorrow"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockUsecase := mocks.NewMockLinkUsecase(t)
			handler := New(mockUsecase, zap.NewNop(), nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			// Act
			handler.CreateLink(w, req)

			// Assert
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}

// TestCreateLink_UsecaseErrors проверяет ошибки бизнес-логики при создании
func TestCreateLink_UsecaseErrors(t *testing.T) {
	tests := []struct {
		name           string
		err            error
		expectedStatus int
	}{
		{name: "Invalid URL", err: usecase.ErrInvalidURL, expectedStatus: http.StatusBadRequest},
		{name: "Invalid expiry", err: usecase.ErrInvalidExpiry, expectedStatus: http.StatusBadRequest},
		{name: "Store failure", err: usecase.ErrServiceUnavailable, expectedStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockUsecase := mocks.NewMockLinkUsecase(t)
			mockUsecase.EXPECT().
				CreateLink(mock.Anything, mock.Anything, mock.Anything, mock.Anything).
				Return(model.CreatedLink{}, tt.err).
				Once()
			handler := New(mockUsecase, zap.NewNop(), nil, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/links", strings.NewReader(`{"longUrl":"http://127.0.0.1"}`))
			w := httptest.NewRecorder()

			// Act
			handler.CreateLink(w, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// TestListLinks проверяет разбор параметров и формат страницы
func TestListLinks(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		expectedFilter model.LinkFilter
		total          int
		expectedMore   bool
	}{
		{
			name:           "Defaults",
			query:          "",
			expectedFilter: model.LinkFilter{Page: 1, PageSize: 30},
			total:          1,
			expectedMore:   false,
		},
		{
			name:           "Explicit paging with flags",
			query:          "?page=2&pageSize=1&includeExpired=true&includeInactive=true",
			expectedFilter: model.LinkFilter{Page: 2, PageSize: 1, IncludeExpired: true, IncludeInactive: true},
			total:          5,
			expectedMore:   true,
		},
		{
			name:           "Garbage and clamping",
			query:          "?page=abc&pageSize=5000",
			expectedFilter: model.LinkFilter{Page: 1, PageSize: 200},
			total:          1,
			expectedMore:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
			mockUsecase := mocks.NewMockLinkUsecase(t)
			mockUsecase.EXPECT().
				ListLinks(mock.Anything, tt.expectedFilter).
				Return(model.LinkPage{
					Links: []model.Link{{ID: 3, Code: "baaad", Destination: "https://example.com/", CreatedAt: created, ExpiresAt: created.Add(time.Hour), IsActive: true}},
					Total: tt.total,
				}, nil).
				Once()
			handler := New(mockUsecase, zap.NewNop(), nil, nil)

			req := httptest.NewRequest(http.MethodGet, "/api/links"+tt.query, nil)
			w := httptest.NewRecorder()

			// Act
			handler.ListLinks(w, req)

			// Assert
			require.Equal(t, http.StatusOK, w.Code)
			var response ListLinksResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
			assert.True(t, response.OK)
			assert.Equal(t, tt.expectedFilter.Page, response.Page)
			assert.Equal(t, tt.expectedFilter.PageSize, response.PageSize)
			assert.Equal(t, tt.total, response.Total)
			assert.Equal(t, tt.expectedMore, response.HasMore)
			require.Len(t, response.Data, 1)
			assert.Equal(t, "http://localhost:8080/baaad", response.Data[0].ShortURL)
			assert.Equal(t, "https://example.com/", response.Data[0].LongURL)
		})
	}
}

// TestDeactivateLink проверяет коды ответов деактивации
func TestDeactivateLink(t *testing.T) {
	tests := []struct {
		name           string
		id             string
		err            error
		callUsecase    bool
		expectedStatus int
	}{
		{name: "Success", id: "1", callUsecase: true, expectedStatus: http.StatusOK},
		{name: "Non-numeric id", id: "abc", expectedStatus: http.StatusBadRequest},
		{name: "Zero id", id: "0", expectedStatus: http.StatusBadRequest},
		{name: "Fractional id", id: "1.5", expectedStatus: http.StatusBadRequest},
		{name: "Not found", id: "1", err: usecase.ErrLinkNotFound, callUsecase: true, expectedStatus: http.StatusNotFound},
		{name: "Already inactive", id: "1", err: usecase.ErrLinkAlreadyInactive, callUsecase: true, expectedStatus: http.StatusConflict},
		{name: "Expired", id: "1", err: usecase.ErrLinkExpired, callUsecase: true, expectedStatus: http.StatusGone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Arrange
			mockUsecase := mocks.NewMockLinkUsecase(t)
			if tt.callUsecase {
				mockUsecase.EXPECT().
					DeactivateLink(mock.Anything, int64(1)).
					Return(model.Link{ID: 1, Code: "baaab"}, tt.err).
					Once()
			}
			handler := New(mockUsecase, zap.NewNop(), nil, nil)

			req := withURLParam(httptest.NewRequest(http.MethodPatch, "/api/links/"+tt.id+"/deactivate", nil), "id", tt.id)
			w := httptest.NewRecorder()

			// Act
			handler.DeactivateLink(w, req)

			// Assert
			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

// TestDeleteLink проверяет удаление ссылки
func TestDeleteLink(t *testing.T) {
	// Arrange
	mockUsecase := mocks.NewMockLinkUsecase(t)
	mockUsecase.EXPECT().
		DeleteLink(mock.Anything, int64(42)).
		Return(model.Link{ID: 42, Code: "baaa4"}, nil).
		Once()
	handler := New(mockUsecase, zap.NewNop(), nil, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/links/42", nil), "id", "42")
	w := httptest.NewRecorder()

	// Act
	handler.DeleteLink(w, req)

	// Assert
	require.Equal(t, http.StatusOK, w.Code)
	var response LinkResponse
	require.NoError(t, json.NewDecoder(w.Body).Decode(&response))
	assert.Equal(t, int64(42), response.Link.ID)
}

// TestDeleteLink_NotFound проверяет ответ для неизвестного id
func TestDeleteLink_NotFound(t *testing.T) {
	// Arrange
	mockUsecase := mocks.NewMockLinkUsecase(t)
	mockUsecase.EXPECT().
		DeleteLink(mock.Anything, int64(7)).
		Return(model.Link{}, usecase.ErrLinkNotFound).
		Once()
	handler := New(mockUsecase, zap.NewNop(), nil, nil)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/links/7", nil), "id", "7")
	w := httptest.NewRecorder()

	// Act
	handler.DeleteLink(w, req)

	// Assert
	assert.Equal(t, http.StatusNotFound, w.Code)
}
