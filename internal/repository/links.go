package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

// FindActiveByCode ищет ссылку, пригодную для выдачи
// Ошибка store.ErrNotFound сохраняется в цепочке
func (r Repository) FindActiveByCode(ctx context.Context, code model.Code) (model.Link, error) {
	link, err := r.underlying.FindActiveByCode(ctx, code)
	if err != nil {
		return model.Link{}, fmt.Errorf("failed to find link: %w", err)
	}
	return link, nil
}

func (r Repository) CreateLink(ctx context.Context, destination model.URL, expiresAt time.Time, creatorIP string, codeFor func(id int64) model.Code) (model.Link, error) {
	link, err := r.underlying.CreateLink(ctx, destination, expiresAt, creatorIP, codeFor)
	if err != nil {
		return model.Link{}, fmt.Errorf("failed to create link: %w", err)
	}
	return link, nil
}

func (r Repository) DeactivateLink(ctx context.Context, id int64) (model.Link, error) {
	link, err := r.underlying.DeactivateLink(ctx, id)
	if err != nil {
		return model.Link{}, fmt.Errorf("failed to deactivate link: %w", err)
	}
	return link, nil
}

func (r Repository) DeleteLink(ctx context.Context, id int64) (model.Link, error) {
	link, err := r.underlying.DeleteLink(ctx, id)
	if err != nil {
		return model.Link{}, fmt.Errorf("failed to delete link: %w", err)
	}
	return link, nil
}

func (r Repository) ListLinks(ctx context.Context, filter model.LinkFilter) (model.LinkPage, error) {
	page, err := r.underlying.ListLinks(ctx, filter)
	if err != nil {
		return model.LinkPage{}, fmt.Errorf("failed to list links: %w", err)
	}
	return page, nil
}

func (r Repository) DeactivateExpired(ctx context.Context) (int64, error) {
	n, err := r.underlying.DeactivateExpired(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired links: %w", err)
	}
	return n, nil
}

func (r Repository) ListInactiveCodes(ctx context.Context) ([]model.Code, error) {
	codes, err := r.underlying.ListInactiveCodes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list inactive codes: %w", err)
	}
	return codes, nil
}
