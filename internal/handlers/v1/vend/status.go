package vend

import (
	"context"
	"net/http"

	"github.com/mwangaza-power/vend-server/internal/logging"
	"github.com/mwangaza-power/vend-server/internal/service"
)

// statusProvider is the interface for reading a user's status.
type statusProvider interface {
	Status(ctx context.Context, clientID string) (*service.UserStatus, error)
}

// StatusHandler handles GET /api/vend/status/{clientId}.
type StatusHandler struct {
	Users statusProvider
}

func NewStatusHandler(svc statusProvider) *StatusHandler {
	return &StatusHandler{Users: svc}
}

type statusResponse struct {
	TanescoNumber *string `json:"tanescoNumber"`
	LastVendDate  *string `json:"lastVendDate"`
}

func (h *StatusHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	clientID := req.PathValue("clientId")
	logData.AddData("clientId", clientID)

	status, err := h.Users.Status(req.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return err
	}

	resp := statusResponse{TanescoNumber: status.TanescoNumber}
	if status.LastVendDate != nil {
		formatted := status.LastVendDate.Format(dateFormat)
		resp.LastVendDate = &formatted
	}

	writeJSON(w, http.StatusOK, resp)
	return nil
}
