package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/service"
	"go.uber.org/zap"
)

// GetOriginalURL получает адрес назначения по короткому коду
func (u *URLUsecase) GetOriginalURL(ctx context.Context, code string, meta model.RequestMeta) (string, error) {
	res, err := u.resolver.Resolve(ctx, code, meta)
	switch {
	case err == nil:
		return res.Destination.String(), nil
	case errors.Is(err, service.ErrInvalidCode):
		return "", fmt.Errorf("%w: %w", ErrInvalidCode, err)
	case errors.Is(err, service.ErrNotFound):
		return "", fmt.Errorf("%w: %w", ErrURLNotFound, err)
	case errors.Is(err, service.ErrUnsafeDestination):
		return "", fmt.Errorf("%w: %w", ErrUnsafeDestination, err)
	}

	u.logger.Error("failed to resolve code",
		zap.String("code", code),
		zap.Error(err),
	)
	return "", fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
}
