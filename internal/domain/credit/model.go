package credit

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	TypeSale    = "sale"
	TypePayment = "payment"
)

type Transaction struct {
	ID         uuid.UUID
	UserID     int
	ClientID   string
	CustomerID string
	Type       string
	Amount     decimal.Decimal
	Notes      string
	Date       time.Time
	SaleID     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Record struct {
	ID         string    `json:"id" maxLength:"64" validate:"required,max=64"`
	Synced     bool      `json:"synced,omitempty"`
	CreatedAt  time.Time `json:"createdAt,omitempty"`
	UpdatedAt  time.Time `json:"updatedAt,omitempty"`
	CustomerID string    `json:"customerId" validate:"required,max=64"`
	Type       string    `json:"type" enum:"sale,payment" validate:"oneof=sale payment"`
	Amount     string    `json:"amount" validate:"required,numeric"`
	Notes      string    `json:"notes,omitempty"`
	Date       time.Time `json:"date"`
	SaleID     string    `json:"saleId,omitempty" validate:"max=64"`
}

func (t Transaction) ToRecord() Record {
	return Record{
		ID:         t.ClientID,
		Synced:     true,
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
		CustomerID: t.CustomerID,
		Type:       t.Type,
		Amount:     t.Amount.String(),
		Notes:      t.Notes,
		Date:       t.Date,
		SaleID:     t.SaleID,
	}
}
