// Package organization synchronizes server-pushed organization preferences
// into a user's local receipt settings.
package organization

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Preferences is the flat key/value preference bag of an organization, as
// sent by the server. Numbers are kept as json.Number until they are coerced
// to the type of the local preference.
type Preferences struct {
	values map[string]interface{}
}

// NewPreferences builds Preferences from already decoded values. Go numeric
// types are accepted alongside json.Number.
func NewPreferences(values map[string]interface{}) *Preferences {
	p := &Preferences{values: make(map[string]interface{}, len(values))}
	for k, v := range values {
		p.values[k] = v
	}
	return p
}

// ParsePreferences decodes a JSON object into Preferences.
func ParsePreferences(data []byte) (*Preferences, error) {
	var p Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (p *Preferences) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var values map[string]interface{}
	if err := dec.Decode(&values); err != nil {
		return fmt.Errorf("organization preferences: %w", err)
	}
	if values == nil && !bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return fmt.Errorf("organization preferences: expected a JSON object")
	}
	p.values = values
	return nil
}

// MarshalJSON implements json.Marshaler.
func (p *Preferences) MarshalJSON() ([]byte, error) {
	if p == nil || p.values == nil {
		return []byte("{}"), nil
	}
	return json.Marshal(p.values)
}

// Lookup returns the remote value for key. ok is false when the
// organization has no opinion: the key is absent or its value is null.
func (p *Preferences) Lookup(key string) (value interface{}, ok bool) {
	if p == nil {
		return nil, false
	}
	value, ok = p.values[key]
	if !ok || value == nil {
		return nil, false
	}
	return value, true
}

// Keys returns the keys that carry an opinion, sorted.
func (p *Preferences) Keys() []string {
	if p == nil {
		return nil
	}
	keys := make([]string, 0, len(p.values))
	for k, v := range p.values {
		if v != nil {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	return keys
}

// AppSettings is the application settings section of an organization.
type AppSettings struct {
	Settings Settings `json:"Settings"`
}

// Settings groups the organization's settings; only preferences are synchronized.
type Settings struct {
	Preferences *Preferences `json:"Preferences"`
}
