package sqlconfig

import (
	"context"
	"errors"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ IUsersTable = (*UsersTable)(nil)

type UsersTable struct {
	pool *pgxpool.Pool
}

func NewUsersTable(pool *pgxpool.Pool) *UsersTable {
	return &UsersTable{pool: pool}
}

const userColumns = "id, client_id, tanesco_number, last_vend_date, created_at"

// FindOrCreate inserts the row if absent and reads it back. The
// ON CONFLICT DO NOTHING + SELECT pair makes concurrent first-contact
// requests converge on one row instead of racing a lookup-then-insert.
func (t *UsersTable) FindOrCreate(ctx context.Context, clientID string) (*User, error) {
	_, err := t.pool.Exec(ctx, `
		INSERT INTO users (client_id)
		VALUES ($1)
		ON CONFLICT (client_id) DO NOTHING
	`, clientID)
	if err != nil {
		return nil, err
	}

	return t.FindByClientID(ctx, clientID)
}

// FindByClientID returns nil without error when no row exists.
func (t *UsersTable) FindByClientID(ctx context.Context, clientID string) (*User, error) {
	row := t.pool.QueryRow(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE client_id = $1
	`, clientID)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

// RecordVend performs the post-issuance user update. The WHERE clause is
// a compare-and-swap on the previously observed last_vend_date so two
// same-day requests cannot both claim the day.
func (t *UsersTable) RecordVend(ctx context.Context, id uuid.UUID, tanescoNumber *string, prevVendDate *time.Time, vendDate time.Time) (bool, error) {
	tag, err := t.pool.Exec(ctx, `
		UPDATE users
		SET tanesco_number = COALESCE(tanesco_number, $2),
		    last_vend_date = $3::date
		WHERE id = $1
		  AND last_vend_date IS NOT DISTINCT FROM $4::date
	`, id, tanescoNumber, vendDate, prevVendDate)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func scanUser(row pgx.Row) (*User, error) {
	var user User
	err := row.Scan(
		&user.ID,
		&user.ClientID,
		&user.TanescoNumber,
		&user.LastVendDate,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}
