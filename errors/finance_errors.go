// errors/finance_errors.go
package errors

import "errors"

var (
	// ErrPaymentAlreadyFinalized rejects a verify/reject attempt against a
	// payment that is no longer pending. No state changes.
	ErrPaymentAlreadyFinalized = errors.New("payment already finalized")

	// ErrRegistrationLocked rejects a registration confirm while the
	// semester fee is not sufficiently paid. User-facing, not alert-worthy.
	ErrRegistrationLocked = errors.New("registration locked")

	ErrPaymentNotFound      = errors.New("payment not found")
	ErrPaymentConflict      = errors.New("payment conflict")
	ErrInvalidPaymentData   = errors.New("invalid payment data")
	ErrRegistrationNotFound = errors.New("registration record not found")
)
