package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/avc-dev/link-resolver/internal/model"
)

type usageRecord struct {
	IP        string    `json:"ip,omitempty"`
	UserAgent string    `json:"ua,omitempty"`
	Referer   string    `json:"referer,omitempty"`
	Path      string    `json:"path,omitempty"`
	At        time.Time `json:"at"`
	Info      string    `json:"info"`
}

// WriteUsage сохраняет событие использования в link_logs
func (ds *DatabaseStore) WriteUsage(ctx context.Context, event model.UsageEvent) error {
	info, err := json.Marshal(usageRecord{
		IP:        event.Meta.IP,
		UserAgent: event.Meta.UserAgent,
		Referer:   event.Meta.Referer,
		Path:      event.Meta.Path,
		At:        event.Meta.At,
		Info:      event.Info,
	})
	if err != nil {
		return fmt.Errorf("failed to encode usage event: %w", err)
	}

	_, err = ds.pool.Exec(ctx, `INSERT INTO link_logs (link_id, log_info) VALUES ($1, $2::jsonb)`, event.LinkID, info)
	if err != nil {
		return fmt.Errorf("failed to write usage event: %w", err)
	}

	return nil
}
