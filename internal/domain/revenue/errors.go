package revenue

import "errors"

var (
	ErrRevenueNotFound = errors.New("revenue not found")
	ErrUnauthorized    = errors.New("unauthorized to access this revenue")
)
