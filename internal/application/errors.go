package application

import "errors"

// Service-level failures, mapped onto HTTP statuses by the handlers.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailTaken         = errors.New("email already in use")
	ErrSlugTaken          = errors.New("a course with this title already exists")
	ErrNotFound           = errors.New("not found")
	ErrInvalidResetToken  = errors.New("invalid or expired token")
	ErrUnauthenticated    = errors.New("unauthenticated")
)
