package businessflow

import (
	"errors"
	"fmt"
)

var (
	ErrPricingSourceNotConfigured = errors.New("pricing source is not configured")
	ErrPricingSheetFetchFailed    = errors.New("failed to fetch pricing sheet")
	ErrPricingRecordNotFound      = errors.New("pricing record not found")
	ErrQuoteNotAvailable          = errors.New("no offer available for this device")
	ErrInvalidGrade               = errors.New("unknown condition grade")
	ErrAdminNotFound              = errors.New("admin not found")
	ErrIncorrectPassword          = errors.New("incorrect password")
	ErrAccountInactive            = errors.New("account is inactive")
	ErrDatabaseError              = errors.New("database error")
)

// BusinessError wraps a domain error with a stable code for the API layer.
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{Code: code, Message: message, Err: err}
}

func IsPricingSourceNotConfigured(err error) bool {
	return errors.Is(err, ErrPricingSourceNotConfigured)
}

func IsPricingRecordNotFound(err error) bool {
	return errors.Is(err, ErrPricingRecordNotFound)
}

func IsQuoteNotAvailable(err error) bool {
	return errors.Is(err, ErrQuoteNotAvailable)
}

func IsInvalidGrade(err error) bool {
	return errors.Is(err, ErrInvalidGrade)
}

func IsAuthError(err error) bool {
	return errors.Is(err, ErrAdminNotFound) ||
		errors.Is(err, ErrIncorrectPassword) ||
		errors.Is(err, ErrAccountInactive)
}
