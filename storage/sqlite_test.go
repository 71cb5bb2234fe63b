package storage

import (
	"context"
	"encoding/json"
	"math"
	"path/filepath"
	"testing"
	"time"

	"github.com/CreativeUnicorns/receiptprefs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unmarshallable is a type that cannot be marshaled to JSON.
type unmarshallable struct {
	C chan int
}

func setupSQLiteTest(t *testing.T) *SQLiteStorage {
	t.Helper()
	s, err := NewSQLiteStorage(filepath.Join(t.TempDir(), "prefs.db"))
	require.NoError(t, err, "Failed to initialize SQLiteStorage")
	t.Cleanup(func() {
		require.NoError(t, s.Close(), "Failed to close storage")
	})
	return s
}

func TestSQLiteStorage_SetGet(t *testing.T) {
	s := setupSQLiteTest(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Second)

	pref := &receiptprefs.Preference{
		UserID:       "user1",
		Key:          receiptprefs.KeyMinimumReceiptPrice,
		Value:        5.5,
		DefaultValue: 0.0,
		Type:         receiptprefs.FloatType,
		Category:     receiptprefs.CategoryReceipts,
		UpdatedAt:    now,
	}
	require.NoError(t, s.Set(ctx, pref))

	got, err := s.Get(ctx, "user1", receiptprefs.KeyMinimumReceiptPrice)
	require.NoError(t, err)
	assert.Equal(t, json.Number("5.5"), got.Value)
	assert.Equal(t, json.Number("0"), got.DefaultValue)
	assert.Equal(t, receiptprefs.FloatType, got.Type)
	assert.Equal(t, receiptprefs.CategoryReceipts, got.Category)
	assert.True(t, now.Equal(got.UpdatedAt.UTC()), "UpdatedAt round trip: want %v got %v", now, got.UpdatedAt)

	t.Run("upsert_overwrites", func(t *testing.T) {
		pref.Value = 10.0
		require.NoError(t, s.Set(ctx, pref))
		got, err := s.Get(ctx, "user1", receiptprefs.KeyMinimumReceiptPrice)
		require.NoError(t, err)
		assert.Equal(t, json.Number("10"), got.Value)
	})

	t.Run("not_found", func(t *testing.T) {
		_, err := s.Get(ctx, "user1", "missing")
		assert.ErrorIs(t, err, receiptprefs.ErrNotFound)
	})

	t.Run("unmarshallable_value", func(t *testing.T) {
		err := s.Set(ctx, &receiptprefs.Preference{UserID: "user1", Key: "bad", Value: unmarshallable{C: make(chan int)}})
		assert.ErrorIs(t, err, receiptprefs.ErrSerialization)
	})
}

func TestSQLiteStorage_LargeIntegers(t *testing.T) {
	s := setupSQLiteTest(t)
	ctx := context.Background()

	for _, v := range []int{1<<53 + 1, math.MaxInt64, math.MinInt64} {
		pref := &receiptprefs.Preference{
			UserID:    "user1",
			Key:       receiptprefs.KeyDefaultReportDuration,
			Value:     v,
			Type:      receiptprefs.IntType,
			UpdatedAt: time.Now(),
		}
		require.NoError(t, s.Set(ctx, pref))

		got, err := s.Get(ctx, "user1", receiptprefs.KeyDefaultReportDuration)
		require.NoError(t, err)
		normalized, err := receiptprefs.NormalizeValue(got.Value, receiptprefs.IntType)
		require.NoError(t, err)
		assert.Equal(t, v, normalized)
	}
}

func TestSQLiteStorage_Queries(t *testing.T) {
	s := setupSQLiteTest(t)
	ctx := context.Background()

	for _, p := range []*receiptprefs.Preference{
		{UserID: "u", Key: "TripDuration", Value: 6, Type: receiptprefs.IntType, Category: receiptprefs.CategoryGeneral, UpdatedAt: time.Now()},
		{UserID: "u", Key: "trackcostcenter", Value: true, Type: receiptprefs.BoolType, Category: receiptprefs.CategoryGeneral, UpdatedAt: time.Now()},
		{UserID: "u", Key: "EmailSubject", Value: "subj", Type: receiptprefs.StringType, Category: receiptprefs.CategoryEmail, UpdatedAt: time.Now()},
		{UserID: "v", Key: "TripDuration", Value: 1, Type: receiptprefs.IntType, Category: receiptprefs.CategoryGeneral, UpdatedAt: time.Now()},
	} {
		require.NoError(t, s.Set(ctx, p))
	}

	all, err := s.GetAll(ctx, "u")
	require.NoError(t, err)
	require.Len(t, all, 3)
	// Numbers come back as json.Number; the Manager normalizes them to int.
	assert.Equal(t, json.Number("6"), all["TripDuration"].Value)
	assert.Equal(t, true, all["trackcostcenter"].Value)

	general, err := s.GetByCategory(ctx, "u", receiptprefs.CategoryGeneral)
	require.NoError(t, err)
	assert.Len(t, general, 2)

	require.NoError(t, s.Delete(ctx, "u", "TripDuration"))
	assert.ErrorIs(t, s.Delete(ctx, "u", "TripDuration"), receiptprefs.ErrNotFound)

	all, err = s.GetAll(ctx, "u")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
