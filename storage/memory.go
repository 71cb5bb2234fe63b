package storage

import (
	"context"
	"sync"
	"time"

	"github.com/CreativeUnicorns/receiptprefs"
)

// MemoryStorage keeps preferences in a map. It is useful for tests and for
// single-process deployments where persistence is not required.
type MemoryStorage struct {
	mu    sync.RWMutex
	prefs map[string]map[string]*receiptprefs.Preference // userID -> key -> Preference
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		prefs: make(map[string]map[string]*receiptprefs.Preference),
	}
}

// Get returns a copy of the stored preference or receiptprefs.ErrNotFound.
func (s *MemoryStorage) Get(_ context.Context, userID, key string) (*receiptprefs.Preference, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	pref, ok := s.prefs[userID][key]
	if !ok {
		return nil, receiptprefs.ErrNotFound
	}

	prefCopy := *pref
	return &prefCopy, nil
}

// Set stores a copy of pref, stamping UpdatedAt.
func (s *MemoryStorage) Set(_ context.Context, pref *receiptprefs.Preference) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userPrefs, ok := s.prefs[pref.UserID]
	if !ok {
		userPrefs = make(map[string]*receiptprefs.Preference)
		s.prefs[pref.UserID] = userPrefs
	}

	prefToStore := *pref
	prefToStore.UpdatedAt = time.Now()
	userPrefs[pref.Key] = &prefToStore
	return nil
}

// Delete removes a preference. It returns receiptprefs.ErrNotFound if the
// preference does not exist, like the SQL storages.
func (s *MemoryStorage) Delete(_ context.Context, userID, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	userPrefs, ok := s.prefs[userID]
	if !ok {
		return receiptprefs.ErrNotFound
	}
	if _, ok := userPrefs[key]; !ok {
		return receiptprefs.ErrNotFound
	}

	delete(userPrefs, key)
	if len(userPrefs) == 0 {
		delete(s.prefs, userID)
	}
	return nil
}

// GetAll returns copies of all preferences of userID.
func (s *MemoryStorage) GetAll(_ context.Context, userID string) (map[string]*receiptprefs.Preference, error) {
	return s.filter(userID, func(*receiptprefs.Preference) bool { return true }), nil
}

// GetByCategory returns copies of the preferences of userID in category.
func (s *MemoryStorage) GetByCategory(_ context.Context, userID, category string) (map[string]*receiptprefs.Preference, error) {
	return s.filter(userID, func(p *receiptprefs.Preference) bool { return p.Category == category }), nil
}

func (s *MemoryStorage) filter(userID string, keep func(*receiptprefs.Preference) bool) map[string]*receiptprefs.Preference {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]*receiptprefs.Preference)
	for key, pref := range s.prefs[userID] {
		if keep(pref) {
			prefCopy := *pref
			result[key] = &prefCopy
		}
	}
	return result
}

// Close is a no-op.
func (s *MemoryStorage) Close() error {
	return nil
}
