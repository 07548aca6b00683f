package vend

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/mwangaza-power/vend-server/internal/logging"
	"github.com/mwangaza-power/vend-server/internal/service"
)

// vendProcessor is the interface for running a vend.
type vendProcessor interface {
	ProcessVend(ctx context.Context, req service.VendRequest) (*service.VendResult, error)
}

// ProcessVendHandler handles POST /api/vend.
type ProcessVendHandler struct {
	Vend vendProcessor
}

func NewProcessVendHandler(svc vendProcessor) *ProcessVendHandler {
	return &ProcessVendHandler{Vend: svc}
}

type processVendBody struct {
	ClientID       string          `json:"clientId"`
	SubmeterNumber string          `json:"submeterNumber"`
	VendData       json.RawMessage `json:"vendData"`
	VendType       string          `json:"vendType"`
}

// vendData carries the fields this service interprets. Upload clients
// send extra fields alongside them; those are echoed back untouched
// via the raw map.
type vendData struct {
	Amount        float64 `json:"amount"`
	Units         float64 `json:"units"`
	TransactionID string  `json:"transactionId"`
	TanescoNumber string  `json:"tanescoNumber"`
}

type processVendResponse struct {
	Message string                 `json:"message"`
	Data    map[string]interface{} `json:"data"`
}

func (h *ProcessVendHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	var body processVendBody
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid request body"})
		return err
	}

	logData.AddData("clientId", body.ClientID)
	logData.AddData("submeterNumber", body.SubmeterNumber)

	if body.ClientID == "" || body.SubmeterNumber == "" || len(body.VendData) == 0 || body.VendType == "" {
		writeError(w, service.ErrMissingFields)
		return service.ErrMissingFields
	}

	var data vendData
	if err := json.Unmarshal(body.VendData, &data); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid vendData"})
		return err
	}

	// Second decode keeps fields we do not interpret so the success
	// payload can echo vendData as received.
	var echo map[string]interface{}
	if err := json.Unmarshal(body.VendData, &echo); err != nil {
		writeJSON(w, http.StatusBadRequest, messageResponse{Message: "invalid vendData"})
		return err
	}

	stopTimer := logData.AddTiming("processVendMs")
	result, err := h.Vend.ProcessVend(req.Context(), service.VendRequest{
		ClientID:       body.ClientID,
		SubmeterNumber: body.SubmeterNumber,
		TransactionID:  data.TransactionID,
		TanescoNumber:  data.TanescoNumber,
		Amount:         decimal.NewFromFloat(data.Amount),
		Units:          decimal.NewFromFloat(data.Units),
		VendType:       service.VendType(body.VendType),
	})
	stopTimer()
	if err != nil {
		writeError(w, err)
		return err
	}

	echo["tokenNumber"] = result.TokenNumber
	units, _ := result.Units.Float64()
	echo["units"] = units

	writeJSON(w, http.StatusOK, processVendResponse{
		Message: "Vend successful!",
		Data:    echo,
	})
	return nil
}
