package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/CreativeUnicorns/receiptprefs/organization"
)

type checkResponse struct {
	Match bool `json:"match"`
}

type applyResponse struct {
	Applied []string `json:"applied"`
}

func (s *Server) synchronizerFor(r *http.Request) *organization.Synchronizer {
	return organization.NewSynchronizer(s.manager.ForUser(chi.URLParam(r, "userID")), s.logger)
}

// readOrganizationPreferences decodes the request body, which is the
// organization's preference object.
func (s *Server) readOrganizationPreferences(w http.ResponseWriter, r *http.Request) (*organization.Preferences, bool) {
	data, err := readBody(w, r)
	if err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid request payload", err)
		return nil, false
	}
	prefs, err := organization.ParsePreferences(data)
	if err != nil {
		s.respondWithError(w, r, http.StatusBadRequest, "Invalid organization preferences", err)
		return nil, false
	}
	return prefs, true
}

func (s *Server) handleCheckOrganization(w http.ResponseWriter, r *http.Request) {
	remote, ok := s.readOrganizationPreferences(w, r)
	if !ok {
		return
	}
	match, err := s.synchronizerFor(r).CheckOrganizationPreferencesMatch(r.Context(), remote)
	if err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to check organization preferences", err)
		return
	}
	s.respondWithJSON(w, r, http.StatusOK, checkResponse{Match: match})
}

func (s *Server) handleApplyOrganization(w http.ResponseWriter, r *http.Request) {
	remote, ok := s.readOrganizationPreferences(w, r)
	if !ok {
		return
	}
	applied, err := s.synchronizerFor(r).ApplyOrganizationPreferences(r.Context(), remote)
	if err != nil {
		s.respondWithError(w, r, statusFor(err), "Failed to apply organization preferences", err)
		return
	}
	if applied == nil {
		applied = []string{}
	}
	s.respondWithJSON(w, r, http.StatusOK, applyResponse{Applied: applied})
}
