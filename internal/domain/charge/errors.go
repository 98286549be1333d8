package charge

import "errors"

var (
	ErrChargeNotFound = errors.New("charge not found")
	ErrUnauthorized   = errors.New("unauthorized to access this charge")
)
