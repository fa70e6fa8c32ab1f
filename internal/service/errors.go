package service

import "errors"

var (
	// ErrInvalidCode код не проходит синтаксическую проверку
	ErrInvalidCode = errors.New("invalid code")

	// ErrNotFound ссылка отсутствует, выключена или истекла
	ErrNotFound = errors.New("link not found")

	// ErrUnsafeDestination адрес назначения нарушает политику безопасности
	ErrUnsafeDestination = errors.New("unsafe destination")

	// ErrInvalidToken токен администратора не прошел проверку
	ErrInvalidToken = errors.New("invalid token")
)
