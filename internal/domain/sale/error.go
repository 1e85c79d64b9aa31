package sale

import "errors"

var (
	ErrNotFound      = errors.New("sale not found")
	ErrInvalidData   = errors.New("invalid sale data")
	ErrAlreadyExists = errors.New("sale already exists")
)
