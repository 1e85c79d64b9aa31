package sales

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"shopkeeper/internal/app/client/storage"
	"shopkeeper/internal/domain/pos"
)

type NewProduct struct {
	Name         string
	Quantity     int
	SellingPrice decimal.Decimal
	CostPrice    *decimal.Decimal
	UnitType     string
	Category     string
	SKU          string
	ExpiryDate   *time.Time
}

func (np NewProduct) validate() error {
	switch {
	case strings.TrimSpace(np.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalidProduct)
	case np.Quantity < 0:
		return fmt.Errorf("%w: quantity cannot be negative", ErrInvalidProduct)
	case np.SellingPrice.IsNegative():
		return fmt.Errorf("%w: selling price cannot be negative", ErrInvalidProduct)
	case np.CostPrice != nil && np.CostPrice.IsNegative():
		return fmt.Errorf("%w: cost price cannot be negative", ErrInvalidProduct)
	case !pos.IsMoney(np.SellingPrice) || (np.CostPrice != nil && !pos.IsMoney(*np.CostPrice)):
		return fmt.Errorf("%w: prices allow at most %d decimal places", ErrInvalidProduct, pos.MoneyPlaces)
	}
	return nil
}

// AddProduct добавляет товар в локальный склад (synced=false)
func (s *Service) AddProduct(sess pos.Session, np NewProduct) (pos.Product, error) {
	added, err := s.AddProducts(sess, []NewProduct{np})
	if err != nil {
		return pos.Product{}, err
	}
	return added[0], nil
}

// AddProducts добавляет несколько товаров одной записью: либо все, либо ни одного
func (s *Service) AddProducts(sess pos.Session, batch []NewProduct) ([]pos.Product, error) {
	if !sess.Authenticated() {
		return nil, pos.ErrUnauthenticated
	}
	for _, np := range batch {
		if err := np.validate(); err != nil {
			return nil, err
		}
	}

	now := s.now()
	added := make([]pos.Product, 0, len(batch))
	for _, np := range batch {
		added = append(added, pos.Product{
			Meta:         pos.NewMeta(now),
			Name:         strings.TrimSpace(np.Name),
			Quantity:     np.Quantity,
			SellingPrice: np.SellingPrice,
			CostPrice:    np.CostPrice,
			UnitType:     np.UnitType,
			Category:     np.Category,
			SKU:          np.SKU,
			ExpiryDate:   np.ExpiryDate,
		})
	}

	err := storage.Update(s.store, sess.UserID, storage.KeyProducts, []pos.Product{}, func(products []pos.Product) ([]pos.Product, error) {
		names := make(map[string]bool, len(products)+len(added))
		for _, p := range products {
			names[strings.ToLower(p.Name)] = true
		}
		for _, p := range added {
			if names[strings.ToLower(p.Name)] {
				return nil, fmt.Errorf("%w: %s", ErrProductExists, p.Name)
			}
			names[strings.ToLower(p.Name)] = true
		}
		return append(products, added...), nil
	})
	if err != nil {
		return nil, err
	}

	return added, nil
}

// UpdateProduct меняет остаток и, если передана, цену товара
func (s *Service) UpdateProduct(sess pos.Session, id string, quantity int, price *decimal.Decimal) (pos.Product, error) {
	if !sess.Authenticated() {
		return pos.Product{}, pos.ErrUnauthenticated
	}
	if quantity < 0 {
		return pos.Product{}, fmt.Errorf("%w: quantity cannot be negative", ErrInvalidProduct)
	}
	if price != nil && (price.IsNegative() || !pos.IsMoney(*price)) {
		return pos.Product{}, fmt.Errorf("%w: invalid price %s", ErrInvalidProduct, price)
	}

	var updated pos.Product
	err := storage.Update(s.store, sess.UserID, storage.KeyProducts, []pos.Product{}, func(products []pos.Product) ([]pos.Product, error) {
		for i := range products {
			if products[i].ID != id {
				continue
			}
			products[i].Quantity = quantity
			if price != nil {
				products[i].SellingPrice = *price
			}
			products[i].UpdatedAt = s.now()
			updated = products[i]
			return products, nil
		}
		return nil, ErrProductNotFound
	})

	return updated, err
}

func (s *Service) DeleteProduct(sess pos.Session, id string) error {
	if !sess.Authenticated() {
		return pos.ErrUnauthenticated
	}

	return storage.Update(s.store, sess.UserID, storage.KeyProducts, []pos.Product{}, func(products []pos.Product) ([]pos.Product, error) {
		for i := range products {
			if products[i].ID == id {
				return append(products[:i], products[i+1:]...), nil
			}
		}
		return nil, ErrProductNotFound
	})
}

func (s *Service) ListProducts(sess pos.Session) ([]pos.Product, error) {
	if !sess.Authenticated() {
		return nil, pos.ErrUnauthenticated
	}
	return storage.Load(s.store, sess.UserID, storage.KeyProducts, []pos.Product{}), nil
}

// FindProduct ищет товар по id или по имени без учета регистра
func (s *Service) FindProduct(sess pos.Session, ref string) (pos.Product, error) {
	products, err := s.ListProducts(sess)
	if err != nil {
		return pos.Product{}, err
	}
	for _, p := range products {
		if p.ID == ref || strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	return pos.Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, ref)
}
