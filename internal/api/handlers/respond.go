package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/jslate/trophy-share/internal/domain"
)

type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp,omitempty"`
}

type ValidationErrorResponse struct {
	Message    string              `json:"message"`
	StatusCode int                 `json:"statusCode"`
	Errors     map[string][]string `json:"errors"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Message: message, StatusCode: status})
}

// writeDomainError maps domain failures to transport status codes. Expired is
// 410, distinct from 404, so a client can tell "existed, too late" from
// "never existed". Unrecognized errors are logged in full and surfaced as a
// generic 500 with a timestamp only.
func writeDomainError(w http.ResponseWriter, err error, op string) {
	var vErr *domain.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Message:    vErr.Message,
			StatusCode: http.StatusBadRequest,
			Errors:     map[string][]string{vErr.Field: {vErr.Message}},
		})
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrTrophyNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrSessionExpired):
		writeError(w, http.StatusGone, err.Error())
	case errors.Is(err, domain.ErrSessionNotAccepting), errors.Is(err, domain.ErrNoTrophies):
		writeError(w, http.StatusConflict, err.Error())
	default:
		log.Printf("ERROR [%s] %v", op, err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{
			Message:    "internal server error",
			StatusCode: http.StatusInternalServerError,
			Timestamp:  time.Now().UTC().Format(time.RFC3339),
		})
	}
}
