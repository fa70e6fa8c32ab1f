package usecase

import "errors"

var (
	ErrInvalidCode         = errors.New("invalid short code")
	ErrURLNotFound         = errors.New("URL not found")
	ErrUnsafeDestination   = errors.New("unsafe destination")
	ErrServiceUnavailable  = errors.New("service unavailable")
	ErrInvalidURL          = errors.New("invalid URL")
	ErrInvalidExpiry       = errors.New("expiry must be in the future")
	ErrLinkNotFound        = errors.New("link not found")
	ErrLinkAlreadyInactive = errors.New("link already inactive")
	ErrLinkExpired         = errors.New("link expired")
)
