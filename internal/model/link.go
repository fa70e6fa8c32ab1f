package model

import "time"

// Code короткий публичный идентификатор ссылки
type Code string

func (c Code) String() string {
	return string(c)
}

// URL адрес назначения редиректа
type URL string

func (u URL) String() string {
	return string(u)
}

// Link запись о соответствии кода адресу назначения
type Link struct {
	ID          int64     `json:"id"`
	Code        Code      `json:"code"`
	Destination URL       `json:"long_url"`
	CreatorIP   string    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expire_at"`
	IsActive    bool      `json:"is_active"`
}

// Servable сообщает, может ли ссылка быть выдана резолвером в момент now
func (l Link) Servable(now time.Time) bool {
	return l.IsActive && l.ExpiresAt.After(now)
}

// LinkFilter параметры постраничной выборки ссылок
type LinkFilter struct {
	Page            int
	PageSize        int
	IncludeExpired  bool
	IncludeInactive bool
}

// Offset возвращает смещение для текущей страницы
func (f LinkFilter) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// LinkPage страница результатов выборки и общее число подходящих записей
type LinkPage struct {
	Links []Link
	Total int
}

// CreatedLink созданная ссылка и ее публичный короткий адрес
type CreatedLink struct {
	Link     Link
	ShortURL string
}
