package storage

import "errors"

var ErrClosed = errors.New("storage closed")

// KV - низкоуровневое хранилище строковых значений
type KV interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
	Delete(key string) error
	Close() error
}

// Ключи коллекций. К каждому добавляется суффикс _{userID}
const (
	KeyProducts           = "products"
	KeyCustomers          = "customers"
	KeySales              = "sales"
	KeyCreditTransactions = "creditTransactions"
	KeySyncMeta           = "syncMeta"
)
