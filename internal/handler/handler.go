package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/avc-dev/link-resolver/internal/config"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/usecase"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

//go:generate mockery --name LinkUsecase

// LinkUsecase определяет интерфейс бизнес-логики ссылок
type LinkUsecase interface {
	GetOriginalURL(ctx context.Context, code string, meta model.RequestMeta) (string, error)
	CreateLink(ctx context.Context, rawURL string, expiresAt *time.Time, creatorIP string) (model.CreatedLink, error)
	ListLinks(ctx context.Context, filter model.LinkFilter) (model.LinkPage, error)
	DeactivateLink(ctx context.Context, id int64) (model.Link, error)
	DeleteLink(ctx context.Context, id int64) (model.Link, error)
}

// HealthChecker проверяет доступность хранилища
type HealthChecker interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	usecase  LinkUsecase
	logger   *zap.Logger
	health   HealthChecker
	cfg      *config.Config
	validate *validator.Validate
}

func New(usecase LinkUsecase, logger *zap.Logger, health HealthChecker, cfg *config.Config) *Handler {
	if cfg == nil {
		cfg = config.NewDefaultConfig()
	}

	return &Handler{
		usecase:  usecase,
		logger:   logger,
		health:   health,
		cfg:      cfg,
		validate: validator.New(validator.WithRequiredStructEnabled()),
	}
}

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func (h *Handler) writeError(w http.ResponseWriter, status int, message string) {
	h.writeJSON(w, status, errorResponse{OK: false, Error: message})
}

// handleError переводит ошибки бизнес-логики в HTTP статусы
func (h *Handler) handleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidCode):
		h.writeError(w, http.StatusBadRequest, "invalid short code")
	case errors.Is(err, usecase.ErrInvalidURL):
		h.writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrInvalidExpiry):
		h.writeError(w, http.StatusBadRequest, "expiresAt must be in the future")
	case errors.Is(err, usecase.ErrURLNotFound):
		h.writeError(w, http.StatusNotFound, "short URL not found")
	case errors.Is(err, usecase.ErrLinkNotFound):
		h.writeError(w, http.StatusNotFound, "link not found")
	case errors.Is(err, usecase.ErrLinkAlreadyInactive):
		h.writeError(w, http.StatusConflict, "link already inactive")
	case errors.Is(err, usecase.ErrLinkExpired):
		h.writeError(w, http.StatusGone, "link expired")
	case errors.Is(err, usecase.ErrUnsafeDestination):
		h.writeError(w, http.StatusInternalServerError, "destination rejected by safety policy")
	default:
		h.logger.Error("internal error", zap.Error(err))
		h.writeError(w, http.StatusInternalServerError, "internal server error")
	}
}
