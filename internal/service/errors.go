package service

import "errors"

// Caller-fault conditions, matched with errors.Is at the handler
// boundary.
var (
	ErrClientIDRequired  = errors.New("client ID is required")
	ErrMissingFields     = errors.New("missing required fields")
	ErrInvalidVendType   = errors.New("vendType must be 'upload' or 'manual'")
	ErrInvalidAmount     = errors.New("vend amount or units must be greater than zero")
	ErrDailyLimitReached = errors.New("daily vending limit reached")
	ErrUserNotFound      = errors.New("user not found")
)

// RecordError is a storage failure that happened after the STS token
// was already issued. Retrying the request would risk a duplicate
// external issuance, so this is kept distinct from ordinary storage
// errors and logged with the issued token for reconciliation.
type RecordError struct {
	Token string
	Err   error
}

func (e *RecordError) Error() string {
	return "failed to record vend after token issuance: " + e.Err.Error()
}

func (e *RecordError) Unwrap() error {
	return e.Err
}
