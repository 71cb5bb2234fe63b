// Package api exposes the preference Manager and organization sync over HTTP.
package api

import (
	"bytes"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/receiptprefs"
)

func (s *Server) handleListDefinitions(w http.ResponseWriter, r *http.Request) {
	s.respondWithJSON(w, r, http.StatusOK, s.manager.Definitions())
}

func (s *Server) handleGetDefinition(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")
	def, found := s.manager.GetDefinition(key)
	if !found {
		s.respondWithError(w, r, http.StatusNotFound, "Preference definition not found", receiptprefs.ErrPreferenceNotDefined)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, def)
}

// handleDefinePreference registers a custom preference. Redefining an
// existing key replaces it.
func (s *Server) handleDefinePreference(w http.ResponseWriter, r *http.Request) {
	data, err := readBody(w, r)
	if err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var def receiptprefs.PreferenceDefinition
	if err := dec.Decode(&def); err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return
	}

	_, existed := s.manager.GetDefinition(def.Key)
	if err := s.manager.DefinePreference(def); err != nil {
		s.respondWithError(w, r, statusFor(err), "Invalid preference definition", err)
		return
	}

	stored, _ := s.manager.GetDefinition(def.Key)
	status := http.StatusCreated
	if existed {
		status = http.StatusOK
	}
	s.respondWithJSON(w, r, status, stored)
}
