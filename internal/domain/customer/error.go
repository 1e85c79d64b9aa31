package customer

import "errors"

var (
	ErrNotFound      = errors.New("customer not found")
	ErrInvalidData   = errors.New("invalid customer data")
	ErrAlreadyExists = errors.New("customer with this phone already exists")
)
