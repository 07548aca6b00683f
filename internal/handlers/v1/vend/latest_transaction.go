package vend

import (
	"context"
	"net/http"

	"github.com/mwangaza-power/vend-server/internal/logging"
	"github.com/mwangaza-power/vend-server/internal/service"
)

// receiptProvider is the interface for fetching the latest receipt.
type receiptProvider interface {
	LatestReceipt(ctx context.Context, clientID string) (*service.Receipt, error)
}

// LatestTransactionHandler handles GET /api/vend/latest/{clientId}.
type LatestTransactionHandler struct {
	Vend receiptProvider
}

func NewLatestTransactionHandler(svc receiptProvider) *LatestTransactionHandler {
	return &LatestTransactionHandler{Vend: svc}
}

type receiptData struct {
	TanescoNumber string  `json:"tanescoNumber"`
	TokenNumber   string  `json:"tokenNumber"`
	TransactionID string  `json:"transactionId"`
	Amount        float64 `json:"amount"`
	Units         float64 `json:"units"`
	Date          string  `json:"date"`
}

type latestTransactionResponse struct {
	Data *receiptData `json:"data"`
}

func (h *LatestTransactionHandler) Handler(w http.ResponseWriter, req *http.Request, logData *logging.LogData) error {
	clientID := req.PathValue("clientId")
	logData.AddData("clientId", clientID)

	receipt, err := h.Vend.LatestReceipt(req.Context(), clientID)
	if err != nil {
		writeError(w, err)
		return err
	}

	// A known user with no vends yet is a success with null data.
	if receipt == nil {
		writeJSON(w, http.StatusOK, latestTransactionResponse{Data: nil})
		return nil
	}

	amount, _ := receipt.Amount.Float64()
	units, _ := receipt.Units.Float64()

	writeJSON(w, http.StatusOK, latestTransactionResponse{
		Data: &receiptData{
			TanescoNumber: receipt.TanescoNumber,
			TokenNumber:   receipt.TokenNumber,
			TransactionID: receipt.TransactionID,
			Amount:        amount,
			Units:         units,
			Date:          receipt.Date.Format(dateFormat),
		},
	})
	return nil
}
