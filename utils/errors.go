package utils

import "errors"

// ErrUserIDNotFound is returned when a handler runs without the auth
// middleware having put a subject in the context.
var ErrUserIDNotFound = errors.New("authentication required: user ID not found")
