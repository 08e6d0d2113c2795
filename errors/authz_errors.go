// errors/authz_errors.go
package errors

import "errors"

var (
	// ErrPolicyLookupFailed marks a policy store that could not be reached.
	// The decision still fails closed; this sentinel exists so the failure
	// is logged as operational rather than as a denial.
	ErrPolicyLookupFailed = errors.New("policy lookup failed")

	// ErrInvalidConditionShape marks a stored rule tree that could not be
	// decoded. The owning policy is treated as a non-match.
	ErrInvalidConditionShape = errors.New("invalid condition shape")

	ErrPolicyNotFound        = errors.New("policy not found")
	ErrPolicyConflict        = errors.New("policy conflict")
	ErrInvalidPolicyData     = errors.New("invalid policy data")
	ErrDatabaseOperation     = errors.New("database operation failed")
	ErrInternalServer        = errors.New("internal server error")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrInvalidPagination     = errors.New("invalid pagination parameters")
	ErrInvalidSearchCriteria = errors.New("invalid search criteria")
)
