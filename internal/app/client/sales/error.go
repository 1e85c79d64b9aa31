package sales

import (
	"errors"
	"strings"
)

var (
	ErrEmptyCart        = errors.New("cart is empty")
	ErrInvalidPayment   = errors.New("invalid payment type")
	ErrInvalidQuantity  = errors.New("quantity must be positive")
	ErrCustomerRequired = errors.New("credit sale requires a customer")
	ErrInvalidProduct   = errors.New("invalid product")
	ErrProductExists    = errors.New("product with this name already exists")
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidCustomer  = errors.New("invalid customer")
	ErrCustomerExists   = errors.New("customer with this phone already exists")
	ErrCustomerNotFound = errors.New("customer not found")
	ErrInvalidAmount    = errors.New("amount must be positive with at most two decimal places")
)

// InventoryError - продажа отклонена проверкой остатков, ничего не записано
type InventoryError struct {
	Problems []string
}

func (e *InventoryError) Error() string {
	return strings.Join(e.Problems, "; ")
}
