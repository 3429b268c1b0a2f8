package feederrors

import "errors"

// Repository-level errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("seller profile not found")
)

// business logic errors
var (
	ErrInvalidFilter = errors.New("invalid filter")
	ErrInvalidPage   = errors.New("invalid page")
	ErrNotAuction    = errors.New("listing is not an auction")
)
