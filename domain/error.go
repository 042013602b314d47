package domain

import "github.com/pkg/errors"

var (
	ErrNotFound           = errors.New("alias not found")
	ErrExpired            = errors.New("alias has expired")
	ErrDuplicate          = errors.New("duplicate")
	ErrCollisionExhausted = errors.New("failed to generate unique alias")
	ErrExpiryInPast       = errors.New("expires_at must be in the future")
	ErrInvalidTarget      = errors.New("invalid target url")
	ErrMalformedEvent     = errors.New("malformed event")
	ErrInvalidTimeRange   = errors.New("start must be before end")
)
