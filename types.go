// Package receiptprefs defines the core types used by the preference store.
package receiptprefs

import (
	"time"
)

// Constants for the supported preference types.
const (
	// StringType represents a preference value that is a string.
	StringType string = "string"
	// BoolType represents a preference value that is a boolean.
	BoolType string = "bool"
	// IntType represents a preference value that is an integer.
	IntType string = "int"
	// FloatType represents a preference value that is a floating-point number.
	FloatType string = "float"
)

// Preference is a single user's value for a defined preference, as stored and
// retrieved by the system. JSON tags are used by storages and caches.
type Preference struct {
	// UserID is the user to whom this preference belongs.
	UserID string `json:"user_id"`
	// Key matches a PreferenceDefinition.Key.
	Key string `json:"key"`
	// Value is the user's value. After a Manager read it is one of
	// int, float64, bool or string, matching Type.
	Value interface{} `json:"value"`
	// DefaultValue is copied from the definition by the Manager.
	DefaultValue interface{} `json:"default_value,omitempty"`
	// Type is one of StringType, BoolType, IntType or FloatType.
	Type string `json:"type"`
	// Category groups related preferences, e.g. "Receipts".
	Category string `json:"category,omitempty"`
	// UpdatedAt records when this preference was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// PreferenceDefinition defines the schema and default of a preference key.
// Definitions are registered with the Manager before values can be read or
// written.
type PreferenceDefinition struct {
	// Key is the unique identifier of the preference. For catalog entries it
	// is also the key used in organization preference payloads.
	Key string `json:"key"`
	// Type is the expected data type of the preference's value.
	Type string `json:"type"`
	// DefaultValue is returned when a user has not set the preference.
	DefaultValue interface{} `json:"default_value,omitempty"`
	// Category is an optional grouping used by Manager.GetByCategory.
	Category string `json:"category,omitempty"`
	// Sensitive string preferences are encrypted before they reach storage
	// or cache when the Manager has an Encryptor.
	Sensitive bool `json:"sensitive,omitempty"`
	// ValidateFunc optionally performs custom validation after type checks.
	ValidateFunc func(value interface{}) error `json:"-"`
}

// Config holds the internal configuration of a Manager. It is populated by
// applying functional Options in New.
type Config struct {
	storage     Storage
	cache       Cache
	cacheTTL    time.Duration
	logger      Logger
	encryptor   Encryptor
	definitions []PreferenceDefinition
}

// Option configures a Manager.
type Option func(*Config)

// WithStorage sets the Storage used for persisting user preferences.
// This is a mandatory option for a functional Manager.
func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.storage = s
	}
}

// WithCache sets an optional read-through, write-through Cache.
func WithCache(cache Cache) Option {
	return func(c *Config) {
		c.cache = cache
	}
}

// WithCacheTTL overrides the lifetime of cached preferences. Non-positive
// values are ignored.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		if ttl > 0 {
			c.cacheTTL = ttl
		}
	}
}

// WithLogger sets the Logger. If not set, NewDefaultLogger is used.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithEncryptor enables at-rest encryption of Sensitive preferences.
func WithEncryptor(e Encryptor) Option {
	return func(c *Config) {
		c.encryptor = e
	}
}

// WithDefinitions registers definitions when the Manager is created, in the
// given order. Invalid definitions are logged and skipped; use
// Manager.DefinePreference to observe the error.
func WithDefinitions(defs ...PreferenceDefinition) Option {
	return func(c *Config) {
		c.definitions = append(c.definitions, defs...)
	}
}
