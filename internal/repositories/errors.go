package repositories

import "errors"

// Sentinel errors shared by all repositories. Handlers map these to HTTP
// status codes at the boundary.
var (
	ErrNotFound = errors.New("record not found")
	ErrConflict = errors.New("conflicting record exists")
)
