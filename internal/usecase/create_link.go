package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
	"go.uber.org/zap"
)

// CreateLink проверяет адрес и создает ссылку вместе с задачей заполнения кэша
// Пустой expiresAt означает срок жизни по умолчанию
func (u *URLUsecase) CreateLink(ctx context.Context, rawURL string, expiresAt *time.Time, creatorIP string) (model.CreatedLink, error) {
	destination, err := u.normalizer.Normalize(ctx, rawURL)
	if err != nil {
		return model.CreatedLink{}, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	now := u.now()
	expiry := now.Add(u.cfg.DefaultLinkTTL)
	if expiresAt != nil {
		if !expiresAt.After(now) {
			return model.CreatedLink{}, ErrInvalidExpiry
		}
		expiry = *expiresAt
	}

	link, err := u.repo.CreateLink(ctx, destination, expiry, creatorIP, u.codes.CodeFor)
	if err != nil {
		u.logger.Error("failed to create link", zap.String("destination", destination.String()), zap.Error(err))
		return model.CreatedLink{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	u.logger.Info("link created",
		zap.Int64("link_id", link.ID),
		zap.String("code", link.Code.String()),
		zap.Time("expire_at", link.ExpiresAt),
	)

	return model.CreatedLink{
		Link:     link,
		ShortURL: u.cfg.BaseURL.String() + "/" + link.Code.String(),
	}, nil
}
