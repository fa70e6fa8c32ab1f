package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/avc-dev/link-resolver/internal/cache"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/avc-dev/link-resolver/internal/store"
	"go.uber.org/zap"
)

const (
	DefaultPageSize = 30
	MaxPageSize     = 200
)

// ListLinks возвращает страницу ссылок, параметры приводятся к допустимым границам
func (u *URLUsecase) ListLinks(ctx context.Context, filter model.LinkFilter) (model.LinkPage, error) {
	filter = NormalizeFilter(filter)

	page, err := u.repo.ListLinks(ctx, filter)
	if err != nil {
		u.logger.Error("failed to list links", zap.Error(err))
		return model.LinkPage{}, fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	return page, nil
}

// NormalizeFilter ограничивает номер и размер страницы
func NormalizeFilter(filter model.LinkFilter) model.LinkFilter {
	if filter.Page < 1 {
		filter.Page = 1
	}
	switch {
	case filter.PageSize <= 0:
		filter.PageSize = DefaultPageSize
	case filter.PageSize > MaxPageSize:
		filter.PageSize = MaxPageSize
	}
	return filter
}

// DeactivateLink выключает ссылку и удаляет ее запись из кэша
func (u *URLUsecase) DeactivateLink(ctx context.Context, id int64) (model.Link, error) {
	link, err := u.repo.DeactivateLink(ctx, id)
	if err != nil {
		return model.Link{}, u.mapLinkError(id, err)
	}

	if err := u.invalidate(ctx, link); err != nil {
		return model.Link{}, err
	}

	return link, nil
}

// DeleteLink удаляет ссылку и ее запись из кэша
func (u *URLUsecase) DeleteLink(ctx context.Context, id int64) (model.Link, error) {
	link, err := u.repo.DeleteLink(ctx, id)
	if err != nil {
		return model.Link{}, u.mapLinkError(id, err)
	}

	if err := u.invalidate(ctx, link); err != nil {
		return model.Link{}, err
	}

	return link, nil
}

// invalidate удаляет позитивную запись кода
// При ошибке запись будет удалена следующим проходом очистки
func (u *URLUsecase) invalidate(ctx context.Context, link model.Link) error {
	if link.Code == "" {
		return nil
	}

	if err := u.cache.Delete(ctx, cache.PositiveKey(link.Code)); err != nil {
		u.logger.Error("failed to invalidate cache entry",
			zap.Int64("link_id", link.ID),
			zap.String("code", link.Code.String()),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
	}

	return nil
}

func (u *URLUsecase) mapLinkError(id int64, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fmt.Errorf("%w: %d", ErrLinkNotFound, id)
	case errors.Is(err, store.ErrAlreadyInactive):
		return fmt.Errorf("%w: %d", ErrLinkAlreadyInactive, id)
	case errors.Is(err, store.ErrExpired):
		return fmt.Errorf("%w: %d", ErrLinkExpired, id)
	}

	u.logger.Error("link store operation failed", zap.Int64("link_id", id), zap.Error(err))
	return fmt.Errorf("%w: %w", ErrServiceUnavailable, err)
}
