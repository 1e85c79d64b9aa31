package product

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Product struct {
	ID           uuid.UUID
	UserID       int
	ClientID     string
	Name         string
	Quantity     int
	SellingPrice decimal.Decimal
	CostPrice    *decimal.Decimal
	UnitType     string
	Category     string
	SKU          string
	ExpiryDate   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Record - товар в том виде, в котором его хранит клиент.
// id - клиентский идентификатор, суммы передаются строками.
type Record struct {
	ID           string     `json:"id" maxLength:"64" validate:"required,max=64"`
	Synced       bool       `json:"synced,omitempty"`
	CreatedAt    time.Time  `json:"createdAt,omitempty"`
	UpdatedAt    time.Time  `json:"updatedAt,omitempty"`
	Name         string     `json:"name" maxLength:"200" validate:"required,max=200"`
	Quantity     int        `json:"quantity" validate:"gte=0"`
	SellingPrice string     `json:"sellingPrice" validate:"required,numeric"`
	CostPrice    string     `json:"costPrice,omitempty" validate:"omitempty,numeric"`
	UnitType     string     `json:"unitType,omitempty" validate:"max=50"`
	Category     string     `json:"category,omitempty" validate:"max=100"`
	SKU          string     `json:"sku,omitempty" validate:"max=100"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
}

// ToRecord - записи с сервера у клиента всегда считаются синхронизированными
func (p Product) ToRecord() Record {
	rec := Record{
		ID:           p.ClientID,
		Synced:       true,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
		Name:         p.Name,
		Quantity:     p.Quantity,
		SellingPrice: p.SellingPrice.String(),
		UnitType:     p.UnitType,
		Category:     p.Category,
		SKU:          p.SKU,
		ExpiryDate:   p.ExpiryDate,
	}
	if p.CostPrice != nil {
		rec.CostPrice = p.CostPrice.String()
	}
	return rec
}
