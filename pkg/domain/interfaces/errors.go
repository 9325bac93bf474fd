package interfaces

import "errors"

// Shared repository error conditions. Backends wrap these so callers can
// match with errors.Is without depending on a concrete backend.
var (
	ErrNotFound      = errors.New("record not found")
	ErrScopeConflict = errors.New("scope already assessed")
)
