package receiptprefs

import "context"

// UserPreferences is a Manager bound to one user. It is the local preference
// store used by organization sync and tooltip controllers.
type UserPreferences struct {
	manager *Manager
	userID  string
}

// ForUser returns a view of m scoped to userID.
func (m *Manager) ForUser(userID string) *UserPreferences {
	return &UserPreferences{manager: m, userID: userID}
}

// UserID returns the user this view is bound to.
func (u *UserPreferences) UserID() string { return u.userID }

// Definitions returns every known preference in registration order.
func (u *UserPreferences) Definitions(_ context.Context) ([]PreferenceDefinition, error) {
	return u.manager.Definitions(), nil
}

// Get returns the current value of key, falling back to its default.
func (u *UserPreferences) Get(ctx context.Context, key string) (interface{}, error) {
	return u.manager.Value(ctx, u.userID, key)
}

// Set stores value for key.
func (u *UserPreferences) Set(ctx context.Context, key string, value interface{}) error {
	return u.manager.Set(ctx, u.userID, key, value)
}
