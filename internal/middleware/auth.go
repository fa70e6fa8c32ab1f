package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// SubjectKey ключ контекста для subject администратора
type SubjectKey string

const (
	// SubjectContextKey ключ контекста для subject из токена
	SubjectContextKey SubjectKey = "subject"
)

// TokenValidator проверяет токен и возвращает subject
type TokenValidator interface {
	ValidateJWT(token string) (string, error)
}

// AuthMiddleware проверяет bearer токены административных маршрутов
type AuthMiddleware struct {
	validator TokenValidator
	logger    *zap.Logger
}

// NewAuthMiddleware создает новый экземпляр AuthMiddleware
func NewAuthMiddleware(validator TokenValidator, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		validator: validator,
		logger:    logger,
	}
}

// RequireAdmin пропускает запрос только с действительным токеном в заголовке Authorization
func (am *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r)
		if !ok {
			unauthorized(w, "missing bearer token")
			return
		}

		subject, err := am.validator.ValidateJWT(token)
		if err != nil {
			am.logger.Info("rejected admin token", zap.String("remote_addr", r.RemoteAddr), zap.Error(err))
			unauthorized(w, "invalid token")
			return
		}

		ctx := context.WithValue(r.Context(), SubjectContextKey, subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetSubjectFromContext извлекает subject из контекста запроса
func GetSubjectFromContext(ctx context.Context) (string, bool) {
	subject, ok := ctx.Value(SubjectContextKey).(string)
	return subject, ok
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)
	return token, token != ""
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("WWW-Authenticate", "Bearer")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{"ok": false, "error": message})
}
