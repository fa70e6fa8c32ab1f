package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/usecase"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

type CreateLinkRequest struct {
	LongURL   string     `json:"longUrl" validate:"required"`
	ExpiresAt *time.Time `json:"expiresAt"`
}

type CreateLinkResponse struct {
	OK       bool   `json:"ok"`
	Code     string `json:"code"`
	ShortURL string `json:"shortUrl"`
}

// LinkView представление ссылки в административном API
type LinkView struct {
	ID        int64     `json:"id"`
	Code      string    `json:"code"`
	ShortURL  string    `json:"shortUrl"`
	LongURL   string    `json:"longUrl"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expireAt"`
	IsActive  bool      `json:"isActive"`
}

type ListLinksResponse struct {
	OK       bool       `json:"ok"`
	Page     int        `json:"page"`
	PageSize int        `json:"pageSize"`
	Total    int        `json:"total"`
	HasMore  bool       `json:"hasMore"`
	Data     []LinkView `json:"data"`
}

type LinkResponse struct {
	OK   bool     `json:"ok"`
	Link LinkView `json:"data"`
}

// CreateLink обрабатывает POST /api/links
func (h *Handler) CreateLink(w http.ResponseWriter, req *http.Request) {
	var request CreateLinkRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		h.logger.Warn("failed to decode JSON request",
			zap.Error(err),
			zap.String("remote_addr", req.RemoteAddr),
		)
		h.writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	if err := h.validate.Struct(request); err != nil {
		h.writeError(w, http.StatusBadRequest, "longUrl is required")
		return
	}

	created, err := h.usecase.CreateLink(req.Context(), request.LongURL, request.ExpiresAt, clientIP(req))
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, CreateLinkResponse{
		OK:       true,
		Code:     created.Link.Code.String(),
		ShortURL: created.ShortURL,
	})
}

// ListLinks обрабатывает GET /api/links
// Нечисловые параметры страницы заменяются значениями по умолчанию
func (h *Handler) ListLinks(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	filter := usecase.NormalizeFilter(model.LinkFilter{
		Page:            queryInt(query.Get("page")),
		PageSize:        queryInt(query.Get("pageSize")),
		IncludeExpired:  query.Get("includeExpired") == "true",
		IncludeInactive: query.Get("includeInactive") == "true",
	})

	page, err := h.usecase.ListLinks(req.Context(), filter)
	if err != nil {
		h.handleError(w, err)
		return
	}

	data := make([]LinkView, 0, len(page.Links))
	for _, link := range page.Links {
		data = append(data, h.view(link))
	}

	h.writeJSON(w, http.StatusOK, ListLinksResponse{
		OK:       true,
		Page:     filter.Page,
		PageSize: filter.PageSize,
		Total:    page.Total,
		HasMore:  filter.Page*filter.PageSize < page.Total,
		Data:     data,
	})
}

// DeactivateLink обрабатывает PATCH /api/links/{id}/deactivate
func (h *Handler) DeactivateLink(w http.ResponseWriter, req *http.Request) {
	id, ok := h.linkID(w, req)
	if !ok {
		return
	}

	link, err := h.usecase.DeactivateLink(req.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, LinkResponse{OK: true, Link: h.view(link)})
}

// DeleteLink обрабатывает DELETE /api/links/{id}
func (h *Handler) DeleteLink(w http.ResponseWriter, req *http.Request) {
	id, ok := h.linkID(w, req)
	if !ok {
		return
	}

	link, err := h.usecase.DeleteLink(req.Context(), id)
	if err != nil {
		h.handleError(w, err)
		return
	}

	h.writeJSON(w, http.StatusOK, LinkResponse{OK: true, Link: h.view(link)})
}

func (h *Handler) linkID(w http.ResponseWriter, req *http.Request) (int64, bool) {
	raw := strings.TrimSpace(chi.URLParam(req, "id"))
	if err := h.validate.Var(raw, "required,numeric"); err != nil {
		h.writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, http.StatusBadRequest, "id must be a positive integer")
		return 0, false
	}

	return id, true
}

func (h *Handler) view(link model.Link) LinkView {
	return LinkView{
		ID:        link.ID,
		Code:      link.Code.String(),
		ShortURL:  h.cfg.BaseURL.String() + "/" + link.Code.String(),
		LongURL:   link.Destination.String(),
		CreatedAt: link.CreatedAt,
		ExpiresAt: link.ExpiresAt,
		IsActive:  link.IsActive,
	}
}

func queryInt(raw string) int {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}
