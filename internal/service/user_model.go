package service

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// User represents a user in the service layer.
type User struct {
	ID            uuid.UUID
	ClientID      string
	TanescoNumber *string
	LastVendDate  *time.Time
}

// UserStatus is the read-only status view of a user.
type UserStatus struct {
	TanescoNumber *string
	LastVendDate  *time.Time
}
