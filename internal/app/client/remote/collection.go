package remote

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"shopkeeper/internal/domain/pos"
)

const (
	PathProducts           = "/api/v1/products"
	PathCustomers          = "/api/v1/customers"
	PathCreditTransactions = "/api/v1/credit-transactions"
	PathSales              = "/api/v1/sales"
)

// Collection - удаленная коллекция записей одного вида.
// Все запросы выполняются от имени пользователя сессии, сервер сам ограничивает выборку его записями.
type Collection[T any] struct {
	c    *Client
	path string
	key  func(T) string
}

func NewCollection[T any](c *Client, path string, key func(T) string) *Collection[T] {
	return &Collection[T]{c: c, path: path, key: key}
}

func Products(c *Client) *Collection[pos.Product] {
	return NewCollection(c, PathProducts, func(p pos.Product) string { return p.Name })
}

func Customers(c *Client, region string) *Collection[pos.Customer] {
	return NewCollection(c, PathCustomers, func(cu pos.Customer) string {
		return pos.NormalizePhone(cu.Phone, region)
	})
}

func CreditTransactions(c *Client) *Collection[pos.CreditTransaction] {
	return NewCollection(c, PathCreditTransactions, func(t pos.CreditTransaction) string { return t.ID })
}

func Sales(c *Client) *Collection[pos.Sale] {
	return NewCollection(c, PathSales, func(s pos.Sale) string { return s.ID })
}

// Find ищет запись по естественному ключу среди записей пользователя
func (col *Collection[T]) Find(ctx context.Context, sess pos.Session, rec T) (bool, error) {
	var resp struct {
		Found bool `json:"found"`
	}

	path := col.path + "/lookup?key=" + url.QueryEscape(col.key(rec))
	if err := col.c.call(ctx, sess.Token, http.MethodGet, path, nil, &resp); err != nil {
		return false, fmt.Errorf("lookup: %w", err)
	}

	return resp.Found, nil
}

func (col *Collection[T]) Insert(ctx context.Context, sess pos.Session, rec T) error {
	if err := col.c.call(ctx, sess.Token, http.MethodPost, col.path, rec, nil); err != nil {
		return fmt.Errorf("insert: %w", err)
	}
	return nil
}

func (col *Collection[T]) List(ctx context.Context, sess pos.Session) ([]T, error) {
	var resp struct {
		Items []T `json:"items"`
	}

	if err := col.c.call(ctx, sess.Token, http.MethodGet, col.path, nil, &resp); err != nil {
		return nil, err
	}

	return resp.Items, nil
}
