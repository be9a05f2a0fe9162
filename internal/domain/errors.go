package domain

import "errors"

var (
	ErrNotFound             = errors.New("resource not found")
	ErrImproperState        = errors.New("job record has no matching detail row")
	ErrUnknownJobType       = errors.New("unknown job type")
	ErrInvalidTransition    = errors.New("invalid job state transition")
	ErrInvalidParams        = errors.New("invalid job parameters")
	ErrUnsupportedMediaType = errors.New("unsupported media type")
	ErrRevokedKey           = errors.New("api key revoked")
)
