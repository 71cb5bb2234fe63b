package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CreativeUnicorns/receiptprefs"
	"github.com/CreativeUnicorns/receiptprefs/cache"
	"github.com/CreativeUnicorns/receiptprefs/storage"
)

func newTestServer(t *testing.T) (*Server, *receiptprefs.Manager) {
	t.Helper()
	mgr := receiptprefs.New(
		receiptprefs.WithStorage(storage.NewMemoryStorage()),
		receiptprefs.WithCache(cache.NewMemoryCache()),
		receiptprefs.WithLogger(receiptprefs.NopLogger()),
		receiptprefs.WithDefinitions(receiptprefs.Catalog()...),
	)
	t.Cleanup(func() { _ = mgr.Close() })

	s, err := NewServer(Config{Manager: mgr})
	require.NoError(t, err)
	return s, mgr
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v), rec.Body.String())
}

func TestNewServer(t *testing.T) {
	_, err := NewServer(Config{})
	assert.ErrorIs(t, err, receiptprefs.ErrInvalidInput)

	s, _ := newTestServer(t)
	assert.Equal(t, defaultListenAddress, s.Addr())
	assert.Equal(t, defaultReadTimeout, s.httpServer.ReadTimeout)
}

func TestHealth(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/api/v1/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestDefinitions(t *testing.T) {
	s, _ := newTestServer(t)

	t.Run("list", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/definitions", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var defs []receiptprefs.PreferenceDefinition
		decode(t, rec, &defs)
		assert.Len(t, defs, len(receiptprefs.Catalog()))
		assert.Equal(t, receiptprefs.KeyDefaultReportDuration, defs[0].Key)
	})

	t.Run("get", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/definitions/isocurr", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var def receiptprefs.PreferenceDefinition
		decode(t, rec, &def)
		assert.Equal(t, "USD", def.DefaultValue)
	})

	t.Run("get unknown", func(t *testing.T) {
		rec := do(t, s, http.MethodGet, "/api/v1/definitions/nope", "")
		assert.Equal(t, http.StatusNotFound, rec.Code)
		var body errorBody
		decode(t, rec, &body)
		assert.Equal(t, "Preference definition not found", body.Error.Message)
	})

	t.Run("define", func(t *testing.T) {
		rec := do(t, s, http.MethodPost, "/api/v1/definitions", `{"key":"ReceiptSortOrder","type":"string","default_value":"date"}`)
		assert.Equal(t, http.StatusCreated, rec.Code)

		rec = do(t, s, http.MethodPost, "/api/v1/definitions", `{"key":"ReceiptSortOrder","type":"string","default_value":"price"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, s, http.MethodPost, "/api/v1/definitions", `{"key":"Broken","type":"enum"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = do(t, s, http.MethodPost, "/api/v1/definitions", `{"key":"X","type":"string","extra":1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestUserPreferences(t *testing.T) {
	s, _ := newTestServer(t)
	base := "/api/v1/users/user1/preferences"

	rec := do(t, s, http.MethodGet, base+"/TripDuration", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var pref receiptprefs.Preference
	decode(t, rec, &pref)
	assert.Equal(t, float64(3), pref.Value)

	rec = do(t, s, http.MethodPut, base+"/TripDuration", `{"value": 6}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	decode(t, rec, &pref)
	assert.Equal(t, float64(6), pref.Value)

	rec = do(t, s, http.MethodPut, base+"/TripDuration", `{"value": -1}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, base+"/TripDuration", `{"value": "six"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPut, base+"/SaveBW", `{"value": true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, s, http.MethodPut, base+"/Unknown", `{"value": true}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodPut, base+"/SaveBW", `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodGet, base, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var all map[string]receiptprefs.Preference
	decode(t, rec, &all)
	assert.Len(t, all, 2)

	rec = do(t, s, http.MethodGet, base+"?category="+receiptprefs.CategoryOutput, "")
	require.Equal(t, http.StatusOK, rec.Code)
	all = nil
	decode(t, rec, &all)
	assert.Len(t, all, 1)
	assert.Contains(t, all, receiptprefs.KeySaveBW)

	rec = do(t, s, http.MethodDelete, base+"/TripDuration", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = do(t, s, http.MethodDelete, base+"/TripDuration", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodDelete, base+"/Unknown", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, s, http.MethodGet, base+"/TripDuration", "")
	decode(t, rec, &pref)
	assert.Equal(t, float64(3), pref.Value)
}

func TestOrganization(t *testing.T) {
	s, mgr := newTestServer(t)
	base := "/api/v1/users/user1/organization"
	remote := `{"TripDuration": 6, "isocurr": "EUR", "trackcostcenter": true, "TaxPercentage": null, "MinReceiptPrice": 5.5}`

	rec := do(t, s, http.MethodPost, base+"/check", remote)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"match":false}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, base+"/apply", remote)
	require.Equal(t, http.StatusOK, rec.Code)
	var applied applyResponse
	decode(t, rec, &applied)
	assert.Equal(t, []string{
		receiptprefs.KeyDefaultReportDuration,
		receiptprefs.KeyDefaultCurrency,
		receiptprefs.KeyIncludeCostCenter,
		receiptprefs.KeyMinimumReceiptPrice,
	}, applied.Applied)

	v, err := mgr.Value(context.Background(), "user1", receiptprefs.KeyMinimumReceiptPrice)
	require.NoError(t, err)
	assert.Equal(t, 5.5, v)

	rec = do(t, s, http.MethodPost, base+"/check", remote)
	assert.JSONEq(t, `{"match":true}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, base+"/apply", remote)
	assert.JSONEq(t, `{"applied":[]}`, rec.Body.String())

	rec = do(t, s, http.MethodPost, base+"/check", `[1,2]`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, base+"/apply", `{"TripDuration": "many"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
