package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/shopspring/decimal"
)

// Transaction represents one successful vend. Rows are immutable audit
// entries; created_at is the authoritative ordering key.
type Transaction struct {
	ID             uuid.UUID
	UserID         uuid.UUID
	SubmeterNumber string
	TanescoNumber  string
	TokenNumber    string
	TransactionID  string
	Amount         decimal.Decimal
	Units          decimal.Decimal
	VendType       string
	CreatedAt      time.Time
}

// TransactionCreate is the input for recording a new transaction.
type TransactionCreate struct {
	UserID         uuid.UUID
	SubmeterNumber string
	TanescoNumber  string
	TokenNumber    string
	TransactionID  string // caller-supplied, not globally unique
	Amount         decimal.Decimal
	Units          decimal.Decimal
	VendType       string
}

// ITransactionsTable defines the interface for transaction storage operations.
type ITransactionsTable interface {
	Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error)

	// LatestByUserID returns the most recent transaction for the user,
	// or nil when the user has none.
	LatestByUserID(ctx context.Context, userID uuid.UUID) (*Transaction, error)
}
