package models

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the user and rescue services. Handlers map
// these to HTTP status codes with errors.Is; anything unwrapped to one
// of them is reported as a 500 without leaking the underlying message.
var (
	ErrConflict     = errors.New("already exists")
	ErrNotFound     = errors.New("not found")
	ErrUnauthorized = errors.New("invalid credentials")
	ErrBadRequest   = errors.New("bad request")

	// ErrImageNotFound is the empty-image case of profile picture
	// deletion. It unwraps to ErrNotFound for status mapping but lets
	// the handler report it distinctly from a missing user.
	ErrImageNotFound = fmt.Errorf("image %w", ErrNotFound)
)
