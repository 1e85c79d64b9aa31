package sales

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

// SaleRemote сохраняет продажу на сервере
type SaleRemote interface {
	Insert(ctx context.Context, sess pos.Session, sale pos.Sale) error
}

type Service struct {
	store       *storage.Store
	remote      SaleRemote
	log         *slog.Logger
	phoneRegion string
	now         func() time.Time
}

func NewService(store *storage.Store, remote SaleRemote, phoneRegion string, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		remote:      remote,
		log:         log.With("component", "sales_service"),
		phoneRegion: phoneRegion,
		now:         time.Now,
	}
}

type Checkout struct {
	Items       []pos.CartItem
	PaymentType pos.PaymentType
	Customer    *pos.Customer
}

type Receipt struct {
	Sale              pos.Sale
	CreditTransaction *pos.CreditTransaction
	// Synced - продажа сохранена на сервере сразу
	Synced  bool
	Message string
}

// CompleteSale списывает товар, сохраняет продажу локально и пытается отправить ее на сервер.
// Ошибка сервера не отменяет продажу: она останется с synced=false до следующей синхронизации.
func (s *Service) CompleteSale(ctx context.Context, sess pos.Session, co Checkout) (Receipt, error) {
	if !sess.Authenticated() {
		return Receipt{}, pos.ErrUnauthenticated
	}
	if err := validateCheckout(co); err != nil {
		return Receipt{}, err
	}

	now := s.now()

	if err := s.decrementInventory(sess.UserID, co.Items, now); err != nil {
		return Receipt{}, err
	}

	sale := pos.Sale{
		Meta:        pos.NewMeta(now),
		Items:       co.Items,
		Total:       pos.CartTotal(co.Items),
		PaymentType: co.PaymentType,
		Timestamp:   now,
	}
	if co.Customer != nil {
		sale.CustomerID = co.Customer.ID
		sale.CustomerName = co.Customer.Name
	}

	var txn *pos.CreditTransaction
	if co.PaymentType == pos.PaymentCredit {
		txn = &pos.CreditTransaction{
			Meta:       pos.Meta{ID: pos.NewCreditID(now), CreatedAt: now, UpdatedAt: now},
			CustomerID: co.Customer.ID,
			Type:       pos.TxnSale,
			Amount:     sale.Total,
			Notes:      fmt.Sprintf("Credit sale - %d items", len(co.Items)),
			Date:       now,
			SaleID:     sale.ID,
		}
		sale.CreditTransactionID = txn.ID
	}

	// склад уже списан: если продажа не сохранилась, возвращаем остатки
	if err := appendRecord(s.store, sess.UserID, storage.KeySales, sale); err != nil {
		s.restoreInventory(sess.UserID, co.Items, now)
		return Receipt{}, fmt.Errorf("save sale: %w", err)
	}
	if txn != nil {
		if err := appendRecord(s.store, sess.UserID, storage.KeyCreditTransactions, *txn); err != nil {
			s.removeSale(sess.UserID, sale.ID)
			s.restoreInventory(sess.UserID, co.Items, now)
			return Receipt{}, fmt.Errorf("save credit transaction: %w", err)
		}
	}

	receipt := Receipt{Sale: sale, CreditTransaction: txn}

	if err := s.remote.Insert(ctx, sess, sale); err != nil {
		s.log.Warn("sale saved locally only", "sale_id", sale.ID, "error", err)
	} else {
		receipt.Synced = true
		s.markSaleSynced(sess.UserID, sale)
		receipt.Sale.Synced = true
		if receipt.CreditTransaction != nil {
			receipt.CreditTransaction.Synced = true
		}
	}

	receipt.Message = saleMessage(sale, co.Customer, receipt.Synced)
	s.log.Info("sale completed", "sale_id", sale.ID, "total", sale.Total.String(), "synced", receipt.Synced)

	return receipt, nil
}

func validateCheckout(co Checkout) error {
	if len(co.Items) == 0 {
		return ErrEmptyCart
	}
	if !co.PaymentType.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidPayment, co.PaymentType)
	}
	if co.PaymentType == pos.PaymentCredit && (co.Customer == nil || co.Customer.ID == "") {
		return ErrCustomerRequired
	}
	for _, it := range co.Items {
		if it.Quantity <= 0 {
			return fmt.Errorf("%w: %s", ErrInvalidQuantity, it.Name)
		}
	}
	return nil
}

// decrementInventory проверяет остатки по всей корзине и списывает товар одной записью.
// Если хоть одна позиция не проходит проверку, склад не меняется.
func (s *Service) decrementInventory(userID string, items []pos.CartItem, now time.Time) error {
	required := make(map[string]int)
	var order []string
	for _, it := range items {
		if _, seen := required[it.ProductID]; !seen {
			order = append(order, it.ProductID)
		}
		required[it.ProductID] += it.Quantity
	}

	names := make(map[string]string, len(items))
	for _, it := range items {
		names[it.ProductID] = it.Name
	}

	return storage.Update(s.store, userID, storage.KeyProducts, []pos.Product{}, func(products []pos.Product) ([]pos.Product, error) {
		if len(products) == 0 {
			return nil, &InventoryError{Problems: []string{"No products found in inventory"}}
		}

		index := make(map[string]int, len(products))
		for i, p := range products {
			index[p.ID] = i
		}

		var problems []string
		for _, id := range order {
			i, ok := index[id]
			if !ok {
				problems = append(problems, fmt.Sprintf("Product %s not found in inventory", names[id]))
				continue
			}
			if p := products[i]; p.Quantity < required[id] {
				problems = append(problems, fmt.Sprintf("Insufficient stock for %s. Available: %d, Required: %d",
					p.Name, p.Quantity, required[id]))
			}
		}
		if len(problems) > 0 {
			return nil, &InventoryError{Problems: problems}
		}

		for _, id := range order {
			i := index[id]
			products[i].Quantity -= required[id]
			products[i].UpdatedAt = now
		}
		return products, nil
	})
}

// restoreInventory возвращает на склад товар несохраненной продажи
func (s *Service) restoreInventory(userID string, items []pos.CartItem, now time.Time) {
	returned := make(map[string]int, len(items))
	for _, it := range items {
		returned[it.ProductID] += it.Quantity
	}

	err := storage.Update(s.store, userID, storage.KeyProducts, []pos.Product{}, func(products []pos.Product) ([]pos.Product, error) {
		for i, p := range products {
			if n, ok := returned[p.ID]; ok {
				products[i].Quantity += n
				products[i].UpdatedAt = now
			}
		}
		return products, nil
	})
	if err != nil {
		s.log.Error("failed to restore inventory after unsaved sale", "error", err)
	}
}

func (s *Service) removeSale(userID, saleID string) {
	err := storage.Update(s.store, userID, storage.KeySales, []pos.Sale{}, func(sales []pos.Sale) ([]pos.Sale, error) {
		kept := sales[:0]
		for _, sale := range sales {
			if sale.ID != saleID {
				kept = append(kept, sale)
			}
		}
		return kept, nil
	})
	if err != nil {
		s.log.Error("failed to remove unsaved sale", "sale_id", saleID, "error", err)
	}
}

// markSaleSynced помечает продажу и связанные с ней кредитные транзакции как синхронизированные
func (s *Service) markSaleSynced(userID string, sale pos.Sale) {
	err := storage.Update(s.store, userID, storage.KeySales, []pos.Sale{}, func(sales []pos.Sale) ([]pos.Sale, error) {
		for i := range sales {
			if sales[i].ID == sale.ID {
				sales[i].Synced = true
			}
		}
		return sales, nil
	})
	if err != nil {
		s.log.Error("failed to mark sale synced", "sale_id", sale.ID, "error", err)
	}

	if sale.PaymentType != pos.PaymentCredit {
		return
	}

	err = storage.Update(s.store, userID, storage.KeyCreditTransactions, []pos.CreditTransaction{},
		func(txns []pos.CreditTransaction) ([]pos.CreditTransaction, error) {
			for i, t := range txns {
				if matchesSale(t, sale) {
					txns[i].Synced = true
				}
			}
			return txns, nil
		})
	if err != nil {
		s.log.Error("failed to mark credit transactions synced", "sale_id", sale.ID, "error", err)
	}
}

// matchesSale: связанная транзакция определяется по SaleID,
// у записей без ссылки по клиенту и сумме. Платежи никогда не совпадают с продажей
func matchesSale(t pos.CreditTransaction, sale pos.Sale) bool {
	if t.Synced || t.Type != pos.TxnSale || t.CustomerID != sale.CustomerID || !t.Amount.Equal(sale.Total) {
		return false
	}
	return t.SaleID == "" || t.SaleID == sale.ID
}

func saleMessage(sale pos.Sale, customer *pos.Customer, synced bool) string {
	var msg string
	if sale.PaymentType == pos.PaymentCredit && customer != nil {
		msg = fmt.Sprintf("Credit sale of %s completed for %s.", money(sale.Total), customer.Name)
	} else {
		msg = fmt.Sprintf("Sale of %s completed successfully.", money(sale.Total))
	}
	if !synced {
		msg += " (Will sync when online)"
	}
	return msg
}

func money(d decimal.Decimal) string {
	return "$" + d.StringFixed(2)
}

func appendRecord[T any](store *storage.Store, userID, key string, rec T) error {
	return storage.Update(store, userID, key, []T{}, func(records []T) ([]T, error) {
		return append(records, rec), nil
	})
}

// ListSales возвращает историю продаж пользователя
func (s *Service) ListSales(sess pos.Session) ([]pos.Sale, error) {
	if !sess.Authenticated() {
		return nil, pos.ErrUnauthenticated
	}
	return storage.Load(s.store, sess.UserID, storage.KeySales, []pos.Sale{}), nil
}

// IsInventoryError сообщает, отклонена ли продажа проверкой остатков
func IsInventoryError(err error) bool {
	var ie *InventoryError
	return errors.As(err, &ie)
}
