package status

import (
	"context"
	"errors"
	"net/http"

	"github.com/mwangaza-power/vend-server/internal/logging"
)

// pinger reports whether the backing database is reachable.
type pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	DB pinger
}

func NewHandler(db pinger) Handler {
	return Handler{DB: db}
}

func (h *Handler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	if req.Method != "GET" {
		w.WriteHeader(http.StatusBadRequest)
		return errors.New("status: method not GET")
	}

	if err := h.DB.Ping(req.Context()); err != nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return err
	}

	w.WriteHeader(http.StatusOK)
	return nil
}
