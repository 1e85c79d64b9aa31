package credit

import "errors"

var (
	ErrNotFound      = errors.New("credit transaction not found")
	ErrInvalidData   = errors.New("invalid credit transaction data")
	ErrAlreadyExists = errors.New("credit transaction already exists")
)
