package sqlconfig

import (
	"context"
	"errors"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ ITransactionsTable = (*TransactionsTable)(nil)

type TransactionsTable struct {
	pool *pgxpool.Pool
}

func NewTransactionsTable(pool *pgxpool.Pool) *TransactionsTable {
	return &TransactionsTable{pool: pool}
}

// Insert creates a new transaction and returns its generated ID.
func (t *TransactionsTable) Insert(ctx context.Context, create *TransactionCreate) (uuid.UUID, error) {
	var id uuid.UUID
	err := t.pool.QueryRow(ctx, `
		INSERT INTO transactions (
			user_id, submeter_number, tanesco_number, token_number,
			transaction_id, amount, units, vend_type
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		create.UserID,
		create.SubmeterNumber,
		create.TanescoNumber,
		create.TokenNumber,
		create.TransactionID,
		create.Amount,
		create.Units,
		create.VendType,
	).Scan(&id)
	if err != nil {
		return uuid.Nil, err
	}
	return id, nil
}

// LatestByUserID orders by created_at then id so same-timestamp rows
// still resolve deterministically.
func (t *TransactionsTable) LatestByUserID(ctx context.Context, userID uuid.UUID) (*Transaction, error) {
	row := t.pool.QueryRow(ctx, `
		SELECT id, user_id, submeter_number, tanesco_number, token_number,
		       transaction_id, amount, units, vend_type, created_at
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT 1
	`, userID)

	var tx Transaction
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.SubmeterNumber,
		&tx.TanescoNumber,
		&tx.TokenNumber,
		&tx.TransactionID,
		&tx.Amount,
		&tx.Units,
		&tx.VendType,
		&tx.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &tx, nil
}
