// errors.go
package receiptprefs

import "errors"

var (
	ErrInvalidInput         = errors.New("invalid input parameters")
	ErrInvalidKey           = errors.New("invalid preference key")
	ErrInvalidType          = errors.New("invalid preference type")
	ErrInvalidValue         = errors.New("invalid preference value")
	ErrNotFound             = errors.New("preference not found")
	ErrPreferenceNotDefined = errors.New("preference not defined")
	ErrStorageUnavailable   = errors.New("storage backend unavailable")
	ErrCacheUnavailable     = errors.New("cache backend unavailable")
)

var errNegative = errors.New("must not be negative")

// ErrSerialization is returned by storages when a value cannot be encoded or decoded.
var ErrSerialization = errors.New("preference serialization failed")
