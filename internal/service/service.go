package service

import (
	"github.com/sirupsen/logrus"

	"github.com/mwangaza-power/vend-server/internal/storage"
)

// Service holds all business logic services.
type Service struct {
	Users *UserService
	Vend  *VendService
}

// NewService wires the services over the given storage and STS gateway.
func NewService(store *storage.Storage, issuer TokenIssuer, logger *logrus.Logger) *Service {
	users := NewUserService(store)
	return &Service{
		Users: users,
		Vend:  NewVendService(store, users, issuer, logger),
	}
}
