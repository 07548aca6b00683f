package sqlconfig

import (
	"context"
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user record. One row exists per opaque client
// identifier; rows are created lazily and never deleted.
type User struct {
	ID            uuid.UUID
	ClientID      string
	TanescoNumber *string
	LastVendDate  *time.Time // date precision, UTC
	CreatedAt     time.Time
}

// IUsersTable defines the interface for user storage operations.
// This abstraction allows swapping the implementation without changing callers.
type IUsersTable interface {
	// FindOrCreate returns the user for clientID, inserting a fresh row
	// if none exists. Concurrent first-contact calls for the same
	// clientID resolve to the same single row.
	FindOrCreate(ctx context.Context, clientID string) (*User, error)

	// FindByClientID returns the user for clientID, or nil when absent.
	FindByClientID(ctx context.Context, clientID string) (*User, error)

	// RecordVend stickily sets the tanesco number (only when currently
	// unset) and advances last_vend_date to vendDate, conditional on
	// last_vend_date still holding prevVendDate. Returns false when the
	// guard matched no row, meaning a concurrent vend advanced it first.
	RecordVend(ctx context.Context, id uuid.UUID, tanescoNumber *string, prevVendDate *time.Time, vendDate time.Time) (bool, error)
}
