package syncer

import (
	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

const (
	KindProducts           = "products"
	KindCustomers          = "customers"
	KindCreditTransactions = "credit transactions"
	KindSales              = "sales"
)

type Adapters struct {
	Products           *Adapter[pos.Product]
	Customers          *Adapter[pos.Customer]
	CreditTransactions *Adapter[pos.CreditTransaction]
	Sales              *Adapter[pos.Sale]
}

func NewAdapters(
	store *storage.Store,
	log *slog.Logger,
	products Remote[pos.Product],
	customers Remote[pos.Customer],
	credit Remote[pos.CreditTransaction],
	sales Remote[pos.Sale],
) *Adapters {
	return &Adapters{
		Products:           NewAdapter(KindProducts, storage.KeyProducts, products, store, log),
		Customers:          NewAdapter(KindCustomers, storage.KeyCustomers, customers, store, log),
		CreditTransactions: NewAdapter(KindCreditTransactions, storage.KeyCreditTransactions, credit, store, log),
		Sales:              NewAdapter(KindSales, storage.KeySales, sales, store, log),
	}
}

// Pushers - порядок отправки: товары, клиенты, кредитные транзакции, продажи
func (a *Adapters) Pushers() []Pusher {
	return []Pusher{a.Products, a.Customers, a.CreditTransactions, a.Sales}
}

// Refreshers - история продаж на сервер только отправляется, поэтому в pull не участвует
func (a *Adapters) Refreshers() []Refresher {
	return []Refresher{a.Products, a.Customers, a.CreditTransactions}
}
