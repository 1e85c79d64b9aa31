package sale

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	PaymentCash        = "cash"
	PaymentMobileMoney = "mobile-money"
	PaymentCredit      = "credit"
)

type Item struct {
	ProductID string          `json:"productId"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity"`
}

type Sale struct {
	ID                  uuid.UUID
	UserID              int
	ClientID            string
	Items               []Item
	Total               decimal.Decimal
	PaymentType         string
	CustomerID          string
	CustomerName        string
	CreditTransactionID string
	Timestamp           time.Time
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

type ItemRecord struct {
	ProductID string `json:"productId" validate:"required,max=64"`
	Name      string `json:"name" validate:"max=200"`
	Price     string `json:"price" validate:"required,numeric"`
	Quantity  int    `json:"quantity" minimum:"1" validate:"gt=0"`
}

type Record struct {
	ID                  string       `json:"id" maxLength:"64" validate:"required,max=64"`
	Synced              bool         `json:"synced,omitempty"`
	CreatedAt           time.Time    `json:"createdAt,omitempty"`
	UpdatedAt           time.Time    `json:"updatedAt,omitempty"`
	Items               []ItemRecord `json:"items" minItems:"1" validate:"required,min=1,dive"`
	Total               string       `json:"total" validate:"required,numeric"`
	PaymentType         string       `json:"paymentType" enum:"cash,mobile-money,credit" validate:"oneof=cash mobile-money credit"`
	CustomerID          string       `json:"customerId,omitempty" validate:"required_if=PaymentType credit,max=64"`
	CustomerName        string       `json:"customerName,omitempty" validate:"max=200"`
	CreditTransactionID string       `json:"creditTransactionId,omitempty" validate:"max=64"`
	Timestamp           time.Time    `json:"timestamp"`
}

func (s Sale) ToRecord() Record {
	items := make([]ItemRecord, 0, len(s.Items))
	for _, it := range s.Items {
		items = append(items, ItemRecord{
			ProductID: it.ProductID,
			Name:      it.Name,
			Price:     it.Price.String(),
			Quantity:  it.Quantity,
		})
	}

	return Record{
		ID:                  s.ClientID,
		Synced:              true,
		CreatedAt:           s.CreatedAt,
		UpdatedAt:           s.UpdatedAt,
		Items:               items,
		Total:               s.Total.String(),
		PaymentType:         s.PaymentType,
		CustomerID:          s.CustomerID,
		CustomerName:        s.CustomerName,
		CreditTransactionID: s.CreditTransactionID,
		Timestamp:           s.Timestamp,
	}
}
