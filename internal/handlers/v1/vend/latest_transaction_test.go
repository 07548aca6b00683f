package vend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/mwangaza-power/vend-server/internal/service"
)

type mockReceiptProvider struct {
	mock.Mock
}

func (m *mockReceiptProvider) LatestReceipt(ctx context.Context, clientID string) (*service.Receipt, error) {
	args := m.Called(ctx, clientID)
	receipt, _ := args.Get(0).(*service.Receipt)
	return receipt, args.Error(1)
}

func getLatest(t *testing.T, svc receiptProvider, clientID string) *httptest.ResponseRecorder {
	t.Helper()
	handler := NewLatestTransactionHandler(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/vend/latest/"+clientID, nil)
	req.SetPathValue("clientId", clientID)
	w := httptest.NewRecorder()
	_ = handler.Handler(w, req, createTestLogData())
	return w
}

func TestLatestTransactionHandler_ReturnsReceipt(t *testing.T) {
	svc := &mockReceiptProvider{}
	svc.On("LatestReceipt", mock.Anything, "client-1").Return(&service.Receipt{
		TanescoNumber: "0401223344556",
		TokenNumber:   "1111-2222",
		TransactionID: "TX-1001",
		Amount:        decimal.NewFromInt(5000),
		Units:         decimal.NewFromInt(12),
		Date:          time.Date(2026, 8, 29, 9, 15, 0, 0, time.UTC),
	}, nil)

	w := getLatest(t, svc, "client-1")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data map[string]interface{} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "1111-2222", resp.Data["tokenNumber"])
	assert.Equal(t, "TX-1001", resp.Data["transactionId"])
	assert.Equal(t, float64(5000), resp.Data["amount"])
	assert.Equal(t, float64(12), resp.Data["units"])
	assert.Equal(t, "2026-08-29", resp.Data["date"])
}

func TestLatestTransactionHandler_NoTransactions(t *testing.T) {
	svc := &mockReceiptProvider{}
	svc.On("LatestReceipt", mock.Anything, "client-1").Return(nil, nil)

	w := getLatest(t, svc, "client-1")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"data":null}`, w.Body.String())
}

func TestLatestTransactionHandler_UnknownUser(t *testing.T) {
	svc := &mockReceiptProvider{}
	svc.On("LatestReceipt", mock.Anything, "ghost").Return(nil, service.ErrUserNotFound)

	w := getLatest(t, svc, "ghost")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp messageResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "user not found", resp.Message)
}
