package pos

import (
	"time"

	"github.com/shopspring/decimal"
)

// Meta - общие поля всех синхронизируемых записей
type Meta struct {
	ID        string    `json:"id"`
	Synced    bool      `json:"synced"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (m Meta) RecordID() string { return m.ID }

func (m Meta) IsSynced() bool { return m.Synced }

// NewMeta создает метаданные для новой локальной записи (synced=false)
func NewMeta(now time.Time) Meta {
	return Meta{
		ID:        NewID(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

type Product struct {
	Meta
	Name         string           `json:"name" validate:"required,max=200"`
	Quantity     int              `json:"quantity" validate:"gte=0"`
	SellingPrice decimal.Decimal  `json:"sellingPrice"`
	CostPrice    *decimal.Decimal `json:"costPrice,omitempty"`
	UnitType     string           `json:"unitType,omitempty" validate:"max=50"`
	Category     string           `json:"category,omitempty" validate:"max=100"`
	SKU          string           `json:"sku,omitempty" validate:"max=100"`
	ExpiryDate   *time.Time       `json:"expiryDate,omitempty"`
}

func (p Product) Label() string { return p.Name }

func (p Product) MarkSynced() Product {
	p.Synced = true
	return p
}

type Customer struct {
	Meta
	Name     string `json:"name" validate:"required,max=200"`
	Phone    string `json:"phone" validate:"required,max=32"`
	Location string `json:"location,omitempty" validate:"max=200"`
	Notes    string `json:"notes,omitempty"`
}

func (c Customer) Label() string { return c.Name }

func (c Customer) MarkSynced() Customer {
	c.Synced = true
	return c
}

type TxnType string

const (
	TxnSale    TxnType = "sale"
	TxnPayment TxnType = "payment"
)

type CreditTransaction struct {
	Meta
	CustomerID string          `json:"customerId" validate:"required"`
	Type       TxnType         `json:"type" validate:"oneof=sale payment"`
	Amount     decimal.Decimal `json:"amount"`
	Notes      string          `json:"notes,omitempty"`
	Date       time.Time       `json:"date"`
	// SaleID связывает кредитную транзакцию с продажей, которая ее породила
	SaleID string `json:"saleId,omitempty"`
}

func (t CreditTransaction) Label() string { return "credit transaction " + t.ID }

func (t CreditTransaction) MarkSynced() CreditTransaction {
	t.Synced = true
	return t
}

type PaymentType string

const (
	PaymentCash        PaymentType = "cash"
	PaymentMobileMoney PaymentType = "mobile-money"
	PaymentCredit      PaymentType = "credit"
)

func (p PaymentType) Valid() bool {
	switch p {
	case PaymentCash, PaymentMobileMoney, PaymentCredit:
		return true
	}
	return false
}

type CartItem struct {
	ProductID string          `json:"productId" validate:"required"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Quantity  int             `json:"quantity" validate:"gt=0"`
}

func (i CartItem) Subtotal() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

type Sale struct {
	Meta
	Items        []CartItem      `json:"items" validate:"required,min=1,dive"`
	Total        decimal.Decimal `json:"total"`
	PaymentType  PaymentType     `json:"paymentType" validate:"oneof=cash mobile-money credit"`
	CustomerID   string          `json:"customerId,omitempty"`
	CustomerName string          `json:"customerName,omitempty"`
	// CreditTransactionID - id кредитной транзакции, созданной вместе с продажей в кредит
	CreditTransactionID string    `json:"creditTransactionId,omitempty"`
	Timestamp           time.Time `json:"timestamp"`
}

func (s Sale) Label() string { return "sale " + s.ID }

func (s Sale) MarkSynced() Sale {
	s.Synced = true
	return s
}

// CartTotal считает сумму по всем позициям корзины
func CartTotal(items []CartItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.Subtotal())
	}
	return total
}

// SyncMeta сохраняется после каждого pull
type SyncMeta struct {
	LastSync time.Time `json:"lastSync"`
	Errors   []string  `json:"errors,omitempty"`
}
