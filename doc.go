// Package receiptprefs keeps per-user receipt tracking settings in a typed,
// concurrent-safe preference store.
//
// A Manager validates values against registered PreferenceDefinitions and
// persists them through a pluggable Storage (memory, SQLite, PostgreSQL),
// with an optional Cache (in-memory, Redis) and optional at-rest encryption
// of sensitive string values. The organization sub-package synchronizes
// server-pushed organization preferences into a user's settings, and the
// tooltip sub-package selects and drives the highest priority tooltip hint.
package receiptprefs
