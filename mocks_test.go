package receiptprefs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockStorage implements the Storage interface for testing.
type MockStorage struct {
	mu     sync.RWMutex
	data   map[string]map[string]*Preference
	closed bool
	sets   int
	getErr error
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		data: make(map[string]map[string]*Preference),
	}
}

func (m *MockStorage) Get(_ context.Context, userID, key string) (*Preference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageUnavailable
	}
	if m.getErr != nil {
		return nil, m.getErr
	}
	if pref, exists := m.data[userID][key]; exists {
		p := *pref
		return &p, nil
	}
	return nil, ErrNotFound
}

func (m *MockStorage) Set(_ context.Context, pref *Preference) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageUnavailable
	}
	if _, exists := m.data[pref.UserID]; !exists {
		m.data[pref.UserID] = make(map[string]*Preference)
	}
	p := *pref
	m.data[pref.UserID][pref.Key] = &p
	m.sets++
	return nil
}

func (m *MockStorage) Delete(_ context.Context, userID, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageUnavailable
	}
	if _, exists := m.data[userID][key]; exists {
		delete(m.data[userID], key)
		return nil
	}
	return ErrNotFound
}

func (m *MockStorage) GetAll(_ context.Context, userID string) (map[string]*Preference, error) {
	return m.filter(userID, func(*Preference) bool { return true })
}

func (m *MockStorage) GetByCategory(_ context.Context, userID, category string) (map[string]*Preference, error) {
	return m.filter(userID, func(p *Preference) bool { return p.Category == category })
}

func (m *MockStorage) filter(userID string, keep func(*Preference) bool) (map[string]*Preference, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageUnavailable
	}
	out := make(map[string]*Preference)
	for key, pref := range m.data[userID] {
		if keep(pref) {
			p := *pref
			out[key] = &p
		}
	}
	return out, nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// raw returns the stored form of a preference, bypassing the Manager.
func (m *MockStorage) raw(userID, key string) (*Preference, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.data[userID][key]
	return p, ok
}

// MockCache implements the Cache interface for testing.
type MockCache struct {
	mu     sync.RWMutex
	data   map[string][]byte
	closed bool
	setErr error
}

func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrCacheUnavailable
	}
	v, exists := m.data[key]
	if !exists {
		return nil, ErrNotFound
	}
	return v, nil
}

func (m *MockCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	if m.setErr != nil {
		return m.setErr
	}
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	delete(m.data, key)
	return nil
}

func (m *MockCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// MockLogger implements the Logger interface for testing.
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (m *MockLogger) Debug(msg string, args ...any) { m.record("DEBUG", msg, args...) }
func (m *MockLogger) Info(msg string, args ...any)  { m.record("INFO", msg, args...) }
func (m *MockLogger) Warn(msg string, args ...any)  { m.record("WARN", msg, args...) }
func (m *MockLogger) Error(msg string, args ...any) { m.record("ERROR", msg, args...) }

func (m *MockLogger) record(level, msg string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(args) > 0 {
		m.Messages = append(m.Messages, fmt.Sprintf("%s: %s %v", level, msg, args))
		return
	}
	m.Messages = append(m.Messages, fmt.Sprintf("%s: %s", level, msg))
}

func (m *MockLogger) contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// reverseEncryptor is a reversible Encryptor that is easy to assert on.
type reverseEncryptor struct{}

func (reverseEncryptor) Encrypt(s string) (string, error) {
	return "rev:" + reverse(s), nil
}

func (reverseEncryptor) Decrypt(s string) (string, error) {
	if !strings.HasPrefix(s, "rev:") {
		return "", errors.New("not sealed")
	}
	return reverse(strings.TrimPrefix(s, "rev:")), nil
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}

var (
	_ Storage   = (*MockStorage)(nil)
	_ Cache     = (*MockCache)(nil)
	_ Logger    = (*MockLogger)(nil)
	_ Encryptor = reverseEncryptor{}
)
