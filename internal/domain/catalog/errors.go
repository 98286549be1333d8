package catalog

import "errors"

var (
	ErrPackageNotFound = errors.New("package not found")
	ErrUnauthorized    = errors.New("unauthorized to access this package")
)
