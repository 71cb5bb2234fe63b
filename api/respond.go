package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/CreativeUnicorns/receiptprefs"
	"github.com/CreativeUnicorns/receiptprefs/organization"
)

const maxBodyBytes = 1 << 20

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// statusFor maps domain errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, receiptprefs.ErrInvalidInput),
		errors.Is(err, receiptprefs.ErrInvalidKey),
		errors.Is(err, receiptprefs.ErrInvalidType),
		errors.Is(err, receiptprefs.ErrInvalidValue),
		errors.Is(err, organization.ErrRemoteValueType):
		return http.StatusBadRequest
	case errors.Is(err, receiptprefs.ErrNotFound),
		errors.Is(err, receiptprefs.ErrPreferenceNotDefined):
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func (s *Server) respondWithError(w http.ResponseWriter, r *http.Request, status int, message string, err error) {
	body := errorBody{Error: errorDetail{Message: message}}
	if err != nil {
		body.Error.Details = err.Error()
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("API error", "status", status, "message", message, "path", r.URL.Path, "error", err)
	} else {
		s.logger.Debug("API client error", "status", status, "message", message, "path", r.URL.Path, "error", err)
	}
	s.respondWithJSON(w, r, status, body)
}

func (s *Server) respondWithJSON(w http.ResponseWriter, _ *http.Request, status int, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Failed to marshal JSON response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":{"message":"Failed to marshal response"}}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

// readBody reads at most maxBodyBytes of the request body.
func readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", receiptprefs.ErrInvalidInput, err)
	}
	return data, nil
}
