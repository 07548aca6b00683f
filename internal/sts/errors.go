package sts

import "fmt"

// APIError is a structured failure reported by the STS API body
// (non-zero Code) or a missing token on a nominal success.
type APIError struct {
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("sts: vending failed with code %d", e.Code)
	}
	return e.Message
}

// ExhaustedError reports that every configured STS user id was tried
// without obtaining a token. LastErr is the failure from the final
// attempt, which is what the caller-facing message carries.
type ExhaustedError struct {
	Attempts int
	LastErr  error
}

func (e *ExhaustedError) Error() string {
	if e.LastErr == nil {
		return fmt.Sprintf("all %d STS user ids failed to process the vend request", e.Attempts)
	}
	return e.LastErr.Error()
}

func (e *ExhaustedError) Unwrap() error {
	return e.LastErr
}
