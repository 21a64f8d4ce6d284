package domain

import "errors"

// ErrNotFound is returned by the store when a record does not exist or has
// been soft-deleted.
var ErrNotFound = errors.New("not found")
