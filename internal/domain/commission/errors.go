package commission

import "errors"

var (
	ErrCommissionNotFound = errors.New("weekly commission not found")
	ErrUnauthorized       = errors.New("not authorized to access this commission")
	ErrAlreadyValidated   = errors.New("commission is already validated")
	ErrNotValidatedYet    = errors.New("commission must be validated before payment")
	ErrAlreadyPaid        = errors.New("commission is already paid")
)
