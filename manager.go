// manager.go
package receiptprefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"
)

const defaultCacheTTL = 24 * time.Hour

// Manager reads and writes typed user preferences through a Storage, with an
// optional Cache and Encryptor. It is safe for concurrent use.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	index  map[string]int
}

// New creates a Manager configured by opts.
func New(opts ...Option) *Manager {
	cfg := &Config{
		logger:   NewDefaultLogger(),
		cacheTTL: defaultCacheTTL,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	initial := cfg.definitions
	cfg.definitions = nil
	m := &Manager{
		config: cfg,
		index:  make(map[string]int),
	}
	for _, def := range initial {
		if err := m.DefinePreference(def); err != nil {
			cfg.logger.Warn("Skipping invalid preference definition", "key", def.Key, "error", err)
		}
	}
	return m
}

// DefinePreference registers def. Redefining a key replaces the previous
// definition and keeps its position.
func (m *Manager) DefinePreference(def PreferenceDefinition) error {
	def, err := validateDefinition(def)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if i, exists := m.index[def.Key]; exists {
		m.config.definitions[i] = def
		return nil
	}
	m.index[def.Key] = len(m.config.definitions)
	m.config.definitions = append(m.config.definitions, def)
	return nil
}

// GetDefinition returns the definition registered for key.
func (m *Manager) GetDefinition(key string) (PreferenceDefinition, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i, exists := m.index[key]
	if !exists {
		return PreferenceDefinition{}, false
	}
	return m.config.definitions[i], true
}

// Definitions returns all registered definitions in registration order.
func (m *Manager) Definitions() []PreferenceDefinition {
	m.mu.RLock()
	defer m.mu.RUnlock()
	defs := make([]PreferenceDefinition, len(m.config.definitions))
	copy(defs, m.config.definitions)
	return defs
}

// Get returns the user's preference for key, or a Preference carrying the
// definition's default when the user has not set it.
func (m *Manager) Get(ctx context.Context, userID, key string) (*Preference, error) {
	if userID == "" || key == "" {
		return nil, ErrInvalidInput
	}

	def, exists := m.GetDefinition(key)
	if !exists {
		return nil, ErrPreferenceNotDefined
	}

	if m.config.cache != nil {
		if pref, err := m.getFromCache(ctx, userID, key); err == nil {
			return m.decode(pref, def)
		} else if !errors.Is(err, ErrNotFound) {
			m.config.logger.Warn("Cache read failed", "user_id", userID, "key", key, "error", err)
		}
	}

	pref, err := m.config.storage.Get(ctx, userID, key)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return &Preference{
				UserID:       userID,
				Key:          key,
				Value:        def.DefaultValue,
				DefaultValue: def.DefaultValue,
				Type:         def.Type,
				Category:     def.Category,
				UpdatedAt:    time.Now(),
			}, nil
		}
		return nil, err
	}

	if m.config.cache != nil {
		m.setToCache(ctx, pref)
	}

	return m.decode(pref, def)
}

// Value is a shortcut for Get that returns only the value.
func (m *Manager) Value(ctx context.Context, userID, key string) (interface{}, error) {
	pref, err := m.Get(ctx, userID, key)
	if err != nil {
		return nil, err
	}
	return pref.Value, nil
}

// Set validates value against the definition of key and stores it.
func (m *Manager) Set(ctx context.Context, userID, key string, value interface{}) error {
	if userID == "" || key == "" {
		return ErrInvalidInput
	}

	def, exists := m.GetDefinition(key)
	if !exists {
		return ErrPreferenceNotDefined
	}

	normalized, err := validateValue(value, def)
	if err != nil {
		return err
	}

	stored, err := m.seal(normalized, def)
	if err != nil {
		return err
	}

	pref := &Preference{
		UserID:       userID,
		Key:          key,
		Value:        stored,
		DefaultValue: def.DefaultValue,
		Type:         def.Type,
		Category:     def.Category,
		UpdatedAt:    time.Now(),
	}

	if err := m.config.storage.Set(ctx, pref); err != nil {
		return err
	}

	if m.config.cache != nil {
		m.setToCache(ctx, pref)
	}

	return nil
}

// GetByCategory returns the preferences the user has set within category.
func (m *Manager) GetByCategory(ctx context.Context, userID, category string) (map[string]*Preference, error) {
	if userID == "" || category == "" {
		return nil, ErrInvalidInput
	}

	prefs, err := m.config.storage.GetByCategory(ctx, userID, category)
	if err != nil {
		return nil, err
	}
	return m.decodeAll(prefs)
}

// GetAll returns every preference the user has set.
func (m *Manager) GetAll(ctx context.Context, userID string) (map[string]*Preference, error) {
	if userID == "" {
		return nil, ErrInvalidInput
	}

	prefs, err := m.config.storage.GetAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	return m.decodeAll(prefs)
}

// Delete removes the user's value for key so that reads fall back to the default.
func (m *Manager) Delete(ctx context.Context, userID, key string) error {
	if userID == "" || key == "" {
		return ErrInvalidInput
	}

	if err := m.config.storage.Delete(ctx, userID, key); err != nil {
		return err
	}

	if m.config.cache != nil {
		m.deleteFromCache(ctx, userID, key)
	}

	return nil
}

// Close releases the storage and cache.
func (m *Manager) Close() error {
	var errs []error
	if m.config.cache != nil {
		if err := m.config.cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if m.config.storage != nil {
		if err := m.config.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close storage: %w", err))
		}
	}
	return errors.Join(errs...)
}

// Logger returns the logger the Manager was configured with.
func (m *Manager) Logger() Logger {
	return m.config.logger
}

func (m *Manager) decodeAll(prefs map[string]*Preference) (map[string]*Preference, error) {
	out := make(map[string]*Preference, len(prefs))
	for key, pref := range prefs {
		def, exists := m.GetDefinition(key)
		if !exists {
			m.config.logger.Debug("Skipping stored preference without definition", "key", key)
			continue
		}
		decoded, err := m.decode(pref, def)
		if err != nil {
			return nil, err
		}
		out[key] = decoded
	}
	return out, nil
}

// decode turns a stored preference into its caller-facing form.
func (m *Manager) decode(pref *Preference, def PreferenceDefinition) (*Preference, error) {
	out := *pref
	value := pref.Value
	if def.Sensitive && m.config.encryptor != nil {
		s, ok := value.(string)
		if !ok {
			return nil, fmt.Errorf("%w: sensitive value of %q is not a string", ErrInvalidValue, def.Key)
		}
		plain, err := m.config.encryptor.Decrypt(s)
		if err != nil {
			return nil, fmt.Errorf("decrypt %q: %w", def.Key, err)
		}
		value = plain
	}
	normalized, err := NormalizeValue(value, def.Type)
	if err != nil {
		return nil, fmt.Errorf("stored value of %q: %w", def.Key, err)
	}
	out.Value = normalized
	out.DefaultValue = def.DefaultValue
	out.Type = def.Type
	out.Category = def.Category
	return &out, nil
}

func (m *Manager) seal(value interface{}, def PreferenceDefinition) (interface{}, error) {
	if !def.Sensitive || m.config.encryptor == nil {
		return value, nil
	}
	sealed, err := m.config.encryptor.Encrypt(value.(string))
	if err != nil {
		return nil, fmt.Errorf("encrypt %q: %w", def.Key, err)
	}
	return sealed, nil
}

func cacheKey(userID, key string) string {
	return fmt.Sprintf("pref:%s:%s", userID, key)
}

func (m *Manager) getFromCache(ctx context.Context, userID, key string) (*Preference, error) {
	data, err := m.config.cache.Get(ctx, cacheKey(userID, key))
	if err != nil {
		return nil, err
	}

	var pref Preference
	if err := DecodeJSON(data, &pref); err != nil {
		return nil, fmt.Errorf("%w: corrupt cache entry: %v", ErrCacheUnavailable, err)
	}

	return &pref, nil
}

func (m *Manager) setToCache(ctx context.Context, pref *Preference) {
	data, err := json.Marshal(pref)
	if err != nil {
		m.config.logger.Error("Failed to marshal preference for cache", "error", err)
		return
	}

	if err := m.config.cache.Set(ctx, cacheKey(pref.UserID, pref.Key), data, m.config.cacheTTL); err != nil {
		m.config.logger.Error("Failed to cache preference", "error", err)
	}
}

func (m *Manager) deleteFromCache(ctx context.Context, userID, key string) {
	if err := m.config.cache.Delete(ctx, cacheKey(userID, key)); err != nil && !errors.Is(err, ErrNotFound) {
		m.config.logger.Error("Failed to delete preference from cache", "error", err)
	}
}
