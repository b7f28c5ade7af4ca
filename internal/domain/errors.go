package domain

import "errors"

var (
	ErrMissingCredentials  = errors.New("telegram credentials not configured")
	ErrRegistryUnavailable = errors.New("session registry unavailable")
)
