package service

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/mwangaza-power/vend-server/internal/sts"
)

// VendType is the channel a vend request arrived through.
type VendType string

const (
	VendTypeUpload VendType = "upload"
	VendTypeManual VendType = "manual"
)

func (v VendType) Valid() bool {
	return v == VendTypeUpload || v == VendTypeManual
}

// VendRequest is a vend in the service layer.
type VendRequest struct {
	ClientID       string
	SubmeterNumber string
	TransactionID  string
	TanescoNumber  string
	Amount         decimal.Decimal
	Units          decimal.Decimal
	VendType       VendType
}

// VendResult is the outcome of a successful vend. Units is zero for
// amount vends because the STS API does not report units for those.
type VendResult struct {
	TokenNumber string
	Kind        sts.VendKind
	Units       decimal.Decimal
}

// Receipt is the latest-transaction view returned to clients.
type Receipt struct {
	TanescoNumber string
	TokenNumber   string
	TransactionID string
	Amount        decimal.Decimal
	Units         decimal.Decimal
	Date          time.Time
}
