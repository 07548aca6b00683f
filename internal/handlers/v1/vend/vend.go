// Package vend contains the HTTP handlers for the vending API:
// processing a vend, reading a user's status, and fetching the latest
// transaction receipt.
package vend

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mwangaza-power/vend-server/internal/service"
	"github.com/mwangaza-power/vend-server/internal/sts"
)

// dateFormat is the calendar-date wire format used by the vending API.
const dateFormat = "2006-01-02"

// messageResponse is the failure envelope for every endpoint.
type messageResponse struct {
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, err error) {
	writeJSON(w, statusForError(err), messageResponse{Message: err.Error()})
}

// statusForError maps service failure kinds to HTTP statuses. Issuer
// exhaustion is 502: nothing was issued or recorded, so the caller may
// safely retry. Storage failures stay 500; the post-issuance variant is
// not safely retryable and is logged separately by the service.
func statusForError(err error) int {
	switch {
	case errors.Is(err, service.ErrMissingFields),
		errors.Is(err, service.ErrClientIDRequired),
		errors.Is(err, service.ErrInvalidVendType),
		errors.Is(err, service.ErrInvalidAmount):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrDailyLimitReached):
		return http.StatusForbidden
	case errors.Is(err, service.ErrUserNotFound):
		return http.StatusNotFound
	}

	var exhausted *sts.ExhaustedError
	if errors.As(err, &exhausted) {
		return http.StatusBadGateway
	}

	return http.StatusInternalServerError
}
