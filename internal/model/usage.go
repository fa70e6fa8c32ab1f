package model

import "time"

// RequestMeta сведения о запросе, сохраняемые в журнале использования
type RequestMeta struct {
	IP        string    `json:"ip"`
	UserAgent string    `json:"ua"`
	Referer   string    `json:"referer"`
	Path      string    `json:"path"`
	At        time.Time `json:"at"`
}

// UsageEvent запись журнала использования ссылки
// LinkID пустой, когда ответ был получен из кэша и id записи неизвестен
type UsageEvent struct {
	LinkID *int64      `json:"link_id"`
	Info   string      `json:"info"`
	Meta   RequestMeta `json:"meta"`
}
