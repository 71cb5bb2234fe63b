package organization

import (
	"context"
	"fmt"

	"github.com/CreativeUnicorns/receiptprefs"
)

// PreferenceStore is the local, per-user preference store the synchronizer
// reads and writes. *receiptprefs.UserPreferences implements it.
type PreferenceStore interface {
	Definitions(ctx context.Context) ([]receiptprefs.PreferenceDefinition, error)
	Get(ctx context.Context, key string) (interface{}, error)
	Set(ctx context.Context, key string, value interface{}) error
}

var _ PreferenceStore = (*receiptprefs.UserPreferences)(nil)

// Synchronizer compares organization preferences with local settings and
// overwrites the local values that differ.
type Synchronizer struct {
	store  PreferenceStore
	logger receiptprefs.Logger
}

// NewSynchronizer returns a Synchronizer over store. A nil logger discards output.
func NewSynchronizer(store PreferenceStore, logger receiptprefs.Logger) *Synchronizer {
	if logger == nil {
		logger = receiptprefs.NopLogger()
	}
	return &Synchronizer{store: store, logger: logger}
}

// CheckPreferenceMatch reports whether the local value of def equals the
// remote one. It is true when the organization has no opinion on def.
func (s *Synchronizer) CheckPreferenceMatch(ctx context.Context, remote *Preferences, def receiptprefs.PreferenceDefinition) (bool, error) {
	c, ok, err := s.compare(ctx, remote, def)
	if err != nil {
		return false, err
	}
	if !ok {
		return true, nil
	}
	return c.matched, nil
}

// ApplyPreference writes the remote value of def when it differs from the
// local one. ok is false, and nothing is written, when the organization has
// no opinion on def. matched reports whether the values were equal before
// the call.
func (s *Synchronizer) ApplyPreference(ctx context.Context, remote *Preferences, def receiptprefs.PreferenceDefinition) (matched, ok bool, err error) {
	c, ok, err := s.compare(ctx, remote, def)
	if err != nil || !ok {
		return false, ok, err
	}
	if c.matched {
		return true, true, nil
	}

	if err := s.store.Set(ctx, def.Key, c.remote); err != nil {
		return false, true, fmt.Errorf("apply %s: %w", def.Key, err)
	}
	s.logger.Info("Applied organization preference", "key", def.Key, "from", logValue(def, c.local), "to", logValue(def, c.remote))
	return false, true, nil
}

// CheckOrganizationPreferencesMatch reports whether every known local
// preference matches the organization's preferences.
func (s *Synchronizer) CheckOrganizationPreferencesMatch(ctx context.Context, remote *Preferences) (bool, error) {
	defs, err := s.store.Definitions(ctx)
	if err != nil {
		return false, err
	}
	for _, def := range defs {
		matched, err := s.CheckPreferenceMatch(ctx, remote, def)
		if err != nil {
			return false, err
		}
		if !matched {
			s.logger.Debug("Organization preference mismatch", "key", def.Key)
			return false, nil
		}
	}
	return true, nil
}

// ApplyOrganizationPreferences applies every known preference and returns
// the keys that were written, in definition order. It stops at the first
// error; keys written before it stay written.
func (s *Synchronizer) ApplyOrganizationPreferences(ctx context.Context, remote *Preferences) ([]string, error) {
	defs, err := s.store.Definitions(ctx)
	if err != nil {
		return nil, err
	}

	var applied []string
	for _, def := range defs {
		if err := ctx.Err(); err != nil {
			return applied, err
		}
		matched, ok, err := s.ApplyPreference(ctx, remote, def)
		if err != nil {
			return applied, err
		}
		if ok && !matched {
			applied = append(applied, def.Key)
		}
	}
	s.logger.Info("Organization preferences applied", "changed", len(applied))
	return applied, nil
}

type comparison struct {
	local   interface{}
	remote  interface{}
	matched bool
}

func (s *Synchronizer) compare(ctx context.Context, remote *Preferences, def receiptprefs.PreferenceDefinition) (comparison, bool, error) {
	raw, ok := remote.Lookup(def.Key)
	if !ok {
		return comparison{}, false, nil
	}

	remoteValue, err := coerce(raw, def.Type)
	if err != nil {
		return comparison{}, true, fmt.Errorf("%s: %w", def.Key, err)
	}

	local, err := s.store.Get(ctx, def.Key)
	if err != nil {
		return comparison{}, true, fmt.Errorf("read %s: %w", def.Key, err)
	}

	c := comparison{local: local, remote: remoteValue}
	if normalized, err := receiptprefs.NormalizeValue(local, def.Type); err == nil {
		c.local = normalized
		c.matched = equal(normalized, remoteValue)
	}
	return c, true, nil
}

func logValue(def receiptprefs.PreferenceDefinition, v interface{}) interface{} {
	if def.Sensitive {
		return "[redacted]"
	}
	return v
}
