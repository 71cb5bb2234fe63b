package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/receiptprefs"
)

type setPreferenceRequest struct {
	Value interface{} `json:"value"`
}

// handleGetAllUserPreferences lists the values the user has set. The
// optional category query parameter narrows the result.
func (s *Server) handleGetAllUserPreferences(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "userID")

	var (
		prefs map[string]*receiptprefs.Preference
		err   error
	)
	if category := r.URL.Query().Get("category"); category != "" {
		prefs, err = s.manager.GetByCategory(r.Context(), userID, category)
	} else {
		prefs, err = s.manager.GetAll(r.Context(), userID)
	}
	if err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to list preferences", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, prefs)
}

func (s *Server) handleGetUserPreference(w http.ResponseWriter, r *http.Request) {
	pref, err := s.manager.Get(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "key"))
	if err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to get preference", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, pref)
}

// handleSetUserPreference expects {"value": ...} and returns the stored preference.
func (s *Server) handleSetUserPreference(w http.ResponseWriter, r *http.Request) {
	userID, key := chi.URLParam(r, "userID"), chi.URLParam(r, "key")

	data, err := readBody(w, r)
	if err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var req setPreferenceRequest
	if err := dec.Decode(&req); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	if err := s.manager.Set(r.Context(), userID, key, req.Value); err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to set preference", err)
		return
	}

	pref, err := s.manager.Get(r.Context(), userID, key)
	if err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to get preference", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, pref)
}

func (s *Server) handleDeleteUserPreference(w http.ResponseWriter, r *http.Request) {
	userID, key := chi.URLParam(r, "userID"), chi.URLParam(r, "key")
	if _, ok := s.manager.GetDefinition(key); !ok {
		s.respondWithError(w, r, http.StatusNotFound, "Preference definition not found", receiptprefs.ErrPreferenceNotDefined)
		return
	}
	if err := s.manager.Delete(r.Context(), userID, key); err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to delete preference", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
