package service

import (
	"context"

	"github.com/mwangaza-power/vend-server/internal/storage"
	"github.com/mwangaza-power/vend-server/internal/storage/sqlconfig"
)

// UserService resolves opaque client identifiers to user records,
// creating them on first sight.
type UserService struct {
	storage *storage.Storage
}

func NewUserService(store *storage.Storage) *UserService {
	return &UserService{storage: store}
}

// FindOrCreate returns the user for clientID, creating the record if
// this is the first time the identifier has been seen.
func (s *UserService) FindOrCreate(ctx context.Context, clientID string) (*User, error) {
	if clientID == "" {
		return nil, ErrClientIDRequired
	}

	row, err := s.storage.Users.FindOrCreate(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return userFromStorage(row), nil
}

// Status returns the status view of a user, creating the record on
// first sight so the endpoint stays idempotent.
func (s *UserService) Status(ctx context.Context, clientID string) (*UserStatus, error) {
	user, err := s.FindOrCreate(ctx, clientID)
	if err != nil {
		return nil, err
	}

	return &UserStatus{
		TanescoNumber: user.TanescoNumber,
		LastVendDate:  user.LastVendDate,
	}, nil
}

func userFromStorage(row *sqlconfig.User) *User {
	return &User{
		ID:            row.ID,
		ClientID:      row.ClientID,
		TanescoNumber: row.TanescoNumber,
		LastVendDate:  row.LastVendDate,
	}
}
