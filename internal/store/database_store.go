package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/avc-dev/link-resolver/internal/config/db"
	"github.com/avc-dev/link-resolver/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// querier общее подмножество pgxpool.Pool и pgx.Tx
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// DatabaseStore хранилище ссылок, очереди и журнала в PostgreSQL
type DatabaseStore struct {
	pool *pgxpool.Pool
}

// NewDatabaseStore создает новый DatabaseStore
func NewDatabaseStore(database db.Database) *DatabaseStore {
	return &DatabaseStore{
		pool: database.Pool(),
	}
}

const linkColumns = `id, COALESCE(code, ''), long_url, COALESCE(host(creator_ip), ''), created_at, expire_at, is_active`

func scanLink(row pgx.Row) (model.Link, error) {
	var (
		link        model.Link
		code        string
		destination string
	)

	err := row.Scan(&link.ID, &code, &destination, &link.CreatorIP, &link.CreatedAt, &link.ExpiresAt, &link.IsActive)
	if err != nil {
		return model.Link{}, err
	}

	link.Code = model.Code(code)
	link.Destination = model.URL(destination)

	return link, nil
}

// FindActiveByCode ищет активную и не истекшую ссылку по коду
func (ds *DatabaseStore) FindActiveByCode(ctx context.Context, code model.Code) (model.Link, error) {
	query := `
		SELECT ` + linkColumns + `
		FROM links
		WHERE code = $1 AND is_active = TRUE AND expire_at > now()
		LIMIT 1
	`

	link, err := scanLink(ds.pool.QueryRow(ctx, query, string(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Link{}, fmt.Errorf("code %s: %w", code, ErrNotFound)
		}
		return model.Link{}, fmt.Errorf("failed to read link: %w", err)
	}

	return link, nil
}

// CreateLink в одной транзакции вставляет ссылку, присваивает код по id и ставит задачу заполнения кэша
func (ds *DatabaseStore) CreateLink(ctx context.Context, destination model.URL, expiresAt time.Time, creatorIP string, codeFor func(id int64) model.Code) (model.Link, error) {
	var link model.Link

	err := pgx.BeginFunc(ctx, ds.pool, func(tx pgx.Tx) error {
		insert := `
			INSERT INTO links (long_url, creator_ip, expire_at)
			VALUES ($1, NULLIF($2, '')::INET, $3)
			RETURNING ` + linkColumns

		var err error
		link, err = scanLink(tx.QueryRow(ctx, insert, string(destination), creatorIP, expiresAt))
		if err != nil {
			return fmt.Errorf("failed to insert link: %w", err)
		}

		link.Code = codeFor(link.ID)
		if _, err := tx.Exec(ctx, `UPDATE links SET code = $1 WHERE id = $2`, string(link.Code), link.ID); err != nil {
			return fmt.Errorf("failed to assign code: %w", err)
		}

		payload, err := json.Marshal(model.NewPopulationPayload(link))
		if err != nil {
			return fmt.Errorf("failed to encode job payload: %w", err)
		}

		if _, err := enqueue(ctx, tx, link.ID, payload, time.Time{}); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		return model.Link{}, err
	}

	return link, nil
}

// DeactivateLink выключает активную и не истекшую ссылку
// Ожидающие задачи заполнения кэша закрываются в той же транзакции
func (ds *DatabaseStore) DeactivateLink(ctx context.Context, id int64) (model.Link, error) {
	var (
		link    model.Link
		updated bool
	)

	err := pgx.BeginFunc(ctx, ds.pool, func(tx pgx.Tx) error {
		query := `
			UPDATE links
			SET is_active = FALSE
			WHERE id = $1 AND is_active = TRUE AND expire_at > now()
			RETURNING ` + linkColumns

		var err error
		link, err = scanLink(tx.QueryRow(ctx, query, id))
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to deactivate link: %w", err)
		}
		updated = true

		_, err = tx.Exec(ctx, `
			UPDATE link_task
			SET status = 'done', processed_at = now()
			WHERE link_id = $1 AND status = 'pending'`, id)
		if err != nil {
			return fmt.Errorf("failed to close pending jobs: %w", err)
		}

		return nil
	})
	if err != nil {
		return model.Link{}, err
	}
	if updated {
		return link, nil
	}

	// Ничего не обновлено, выясняем причину
	var active, live bool
	err = ds.pool.QueryRow(ctx, `SELECT is_active, expire_at > now() FROM links WHERE id = $1`, id).Scan(&active, &live)
	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrNotFound)
	case err != nil:
		return model.Link{}, fmt.Errorf("failed to read link state: %w", err)
	case !active:
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrAlreadyInactive)
	case !live:
		return model.Link{}, fmt.Errorf("link %d: %w", id, ErrExpired)
	}

	// Состояние изменилось между запросами
	return model.Link{}, fmt.Errorf("link %d: %w", id, ErrAlreadyInactive)
}

// DeleteLink удаляет ссылку, задачи удаляются каскадно
func (ds *DatabaseStore) DeleteLink(ctx context.Context, id int64) (model.Link, error) {
	link, err := scanLink(ds.pool.QueryRow(ctx, `DELETE FROM links WHERE id = $1 RETURNING `+linkColumns, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Link{}, fmt.Errorf("link %d: %w", id, ErrNotFound)
		}
		return model.Link{}, fmt.Errorf("failed to delete link: %w", err)
	}

	return link, nil
}

// ListLinks возвращает страницу ссылок, новые первыми
func (ds *DatabaseStore) ListLinks(ctx context.Context, filter model.LinkFilter) (model.LinkPage, error) {
	conditions := make([]string, 0, 2)
	if !filter.IncludeExpired {
		conditions = append(conditions, "expire_at > now()")
	}
	if !filter.IncludeInactive {
		conditions = append(conditions, "is_active = TRUE")
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	query := `
		SELECT ` + linkColumns + `, COUNT(*) OVER () AS total
		FROM links
		` + where + `
		ORDER BY created_at DESC, id DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := ds.pool.Query(ctx, query, filter.PageSize, filter.Offset())
	if err != nil {
		return model.LinkPage{}, fmt.Errorf("failed to list links: %w", err)
	}
	defer rows.Close()

	page := model.LinkPage{Links: make([]model.Link, 0, filter.PageSize)}
	for rows.Next() {
		var (
			link        model.Link
			code        string
			destination string
		)
		err := rows.Scan(&link.ID, &code, &destination, &link.CreatorIP, &link.CreatedAt, &link.ExpiresAt, &link.IsActive, &page.Total)
		if err != nil {
			return model.LinkPage{}, fmt.Errorf("failed to scan link: %w", err)
		}
		link.Code = model.Code(code)
		link.Destination = model.URL(destination)
		page.Links = append(page.Links, link)
	}
	if err := rows.Err(); err != nil {
		return model.LinkPage{}, fmt.Errorf("failed to iterate links: %w", err)
	}

	// Оконная функция не дает total для страницы за пределами выборки
	if len(page.Links) == 0 && filter.Offset() > 0 {
		err := ds.pool.QueryRow(ctx, `SELECT COUNT(*) FROM links `+where).Scan(&page.Total)
		if err != nil {
			return model.LinkPage{}, fmt.Errorf("failed to count links: %w", err)
		}
	}

	return page, nil
}

// DeactivateExpired выключает все истекшие активные ссылки
func (ds *DatabaseStore) DeactivateExpired(ctx context.Context) (int64, error) {
	tag, err := ds.pool.Exec(ctx, `UPDATE links SET is_active = FALSE WHERE expire_at < now() AND is_active = TRUE`)
	if err != nil {
		return 0, fmt.Errorf("failed to deactivate expired links: %w", err)
	}

	return tag.RowsAffected(), nil
}

// ListInactiveCodes возвращает коды всех выключенных ссылок
func (ds *DatabaseStore) ListInactiveCodes(ctx context.Context) ([]model.Code, error) {
	rows, err := ds.pool.Query(ctx, `SELECT code FROM links WHERE is_active = FALSE AND code IS NOT NULL ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list inactive codes: %w", err)
	}

	codes, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Code, error) {
		var code string
		err := row.Scan(&code)
		return model.Code(code), err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan inactive codes: %w", err)
	}

	return codes, nil
}
