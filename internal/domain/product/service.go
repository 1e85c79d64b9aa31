package product

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/validation"
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Record, error)
	Create(ctx context.Context, userID int, rec Record) error
	Exists(ctx context.Context, userID int, name string) (bool, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "product_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Record, error) {
	products, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	records := make([]Record, 0, len(products))
	for _, p := range products {
		records = append(records, p.ToRecord())
	}
	return records, nil
}

func (s *Service) Create(ctx context.Context, userID int, rec Record) error {
	p, err := s.fromRecord(userID, rec)
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("create product: %w", err)
	}

	s.log.Debug("product created", "user_id", userID, "client_id", p.ClientID)
	return nil
}

// Exists - поиск по естественному ключу: имя товара в пределах пользователя
func (s *Service) Exists(ctx context.Context, userID int, name string) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, fmt.Errorf("%w: empty name", ErrInvalidData)
	}
	return s.repo.ExistsByName(ctx, userID, name)
}

func (s *Service) fromRecord(userID int, rec Record) (Product, error) {
	rec.Name = strings.TrimSpace(rec.Name)
	if err := validation.Struct(rec); err != nil {
		return Product{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	price, err := validation.Money(rec.SellingPrice)
	if err != nil || price.IsNegative() {
		return Product{}, fmt.Errorf("%w: selling price %q", ErrInvalidData, rec.SellingPrice)
	}

	now := s.now()
	p := Product{
		ID:           uuid.New(),
		UserID:       userID,
		ClientID:     rec.ID,
		Name:         rec.Name,
		Quantity:     rec.Quantity,
		SellingPrice: price,
		UnitType:     rec.UnitType,
		Category:     rec.Category,
		SKU:          rec.SKU,
		ExpiryDate:   rec.ExpiryDate,
		CreatedAt:    rec.CreatedAt,
		UpdatedAt:    now,
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = now
	}

	if rec.CostPrice != "" {
		cost, err := validation.Money(rec.CostPrice)
		if err != nil || cost.IsNegative() {
			return Product{}, fmt.Errorf("%w: cost price %q", ErrInvalidData, rec.CostPrice)
		}
		p.CostPrice = &cost
	}

	return p, nil
}
