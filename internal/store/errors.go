package store

import "errors"

var (
	ErrNotFound        = errors.New("record not found")
	ErrAlreadyInactive = errors.New("link already inactive")
	ErrExpired         = errors.New("link expired")
	// ErrNotClaimed задача уже не находится в processing у этого обработчика
	ErrNotClaimed = errors.New("job is not in processing state")
)
