package sales

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

type NewCustomer struct {
	Name     string
	Phone    string
	Location string
	Notes    string
}

func (s *Service) AddCustomer(sess pos.Session, nc NewCustomer) (pos.Customer, error) {
	if !sess.Authenticated() {
		return pos.Customer{}, pos.ErrUnauthenticated
	}
	if strings.TrimSpace(nc.Name) == "" || strings.TrimSpace(nc.Phone) == "" {
		return pos.Customer{}, fmt.Errorf("%w: name and phone are required", ErrInvalidCustomer)
	}

	c := pos.Customer{
		Meta:     pos.NewMeta(s.now()),
		Name:     strings.TrimSpace(nc.Name),
		Phone:    strings.TrimSpace(nc.Phone),
		Location: nc.Location,
		Notes:    nc.Notes,
	}
	phone := pos.NormalizePhone(c.Phone, s.phoneRegion)

	err := storage.Update(s.store, sess.UserID, storage.KeyCustomers, []pos.Customer{}, func(customers []pos.Customer) ([]pos.Customer, error) {
		for _, existing := range customers {
			if pos.NormalizePhone(existing.Phone, s.phoneRegion) == phone {
				return nil, fmt.Errorf("%w: %s", ErrCustomerExists, c.Phone)
			}
		}
		return append(customers, c), nil
	})
	if err != nil {
		return pos.Customer{}, err
	}

	return c, nil
}

func (s *Service) ListCustomers(sess pos.Session) ([]pos.Customer, error) {
	if !sess.Authenticated() {
		return nil, pos.ErrUnauthenticated
	}
	return storage.Load(s.store, sess.UserID, storage.KeyCustomers, []pos.Customer{}), nil
}

// FindCustomer ищет клиента по id или номеру телефона
func (s *Service) FindCustomer(sess pos.Session, ref string) (pos.Customer, error) {
	customers, err := s.ListCustomers(sess)
	if err != nil {
		return pos.Customer{}, err
	}

	phone := pos.NormalizePhone(ref, s.phoneRegion)
	for _, c := range customers {
		if c.ID == ref || pos.NormalizePhone(c.Phone, s.phoneRegion) == phone {
			return c, nil
		}
	}
	return pos.Customer{}, fmt.Errorf("%w: %s", ErrCustomerNotFound, ref)
}

// RecordPayment записывает погашение долга клиентом
func (s *Service) RecordPayment(sess pos.Session, customerID string, amount decimal.Decimal, notes string) (pos.CreditTransaction, error) {
	if !sess.Authenticated() {
		return pos.CreditTransaction{}, pos.ErrUnauthenticated
	}
	if !amount.IsPositive() || !pos.IsMoney(amount) {
		return pos.CreditTransaction{}, ErrInvalidAmount
	}
	if _, err := s.FindCustomer(sess, customerID); err != nil {
		return pos.CreditTransaction{}, err
	}

	now := s.now()
	txn := pos.CreditTransaction{
		Meta:       pos.Meta{ID: pos.NewCreditID(now), CreatedAt: now, UpdatedAt: now},
		CustomerID: customerID,
		Type:       pos.TxnPayment,
		Amount:     amount,
		Notes:      notes,
		Date:       now,
	}

	if err := appendRecord(s.store, sess.UserID, storage.KeyCreditTransactions, txn); err != nil {
		return pos.CreditTransaction{}, err
	}

	return txn, nil
}

func (s *Service) ListCreditTransactions(sess pos.Session, customerID string) ([]pos.CreditTransaction, error) {
	if !sess.Authenticated() {
		return nil, pos.ErrUnauthenticated
	}

	all := storage.Load(s.store, sess.UserID, storage.KeyCreditTransactions, []pos.CreditTransaction{})
	if customerID == "" {
		return all, nil
	}

	var out []pos.CreditTransaction
	for _, t := range all {
		if t.CustomerID == customerID {
			out = append(out, t)
		}
	}
	return out, nil
}

// CustomerBalance - долг клиента: продажи в кредит минус платежи
func (s *Service) CustomerBalance(sess pos.Session, customerID string) (decimal.Decimal, error) {
	txns, err := s.ListCreditTransactions(sess, customerID)
	if err != nil {
		return decimal.Zero, err
	}

	balance := decimal.Zero
	for _, t := range txns {
		switch t.Type {
		case pos.TxnSale:
			balance = balance.Add(t.Amount)
		case pos.TxnPayment:
			balance = balance.Sub(t.Amount)
		}
	}
	return balance, nil
}
