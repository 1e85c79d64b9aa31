package sale

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/credit"
	"shopkeeper/internal/domain/validation"
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Record, error)
	Create(ctx context.Context, userID int, rec Record) error
	Exists(ctx context.Context, userID int, clientID string) (bool, error)
}

type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{
		repo: repo,
		log:  log.With("component", "sale_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Record, error) {
	sales, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}

	records := make([]Record, 0, len(sales))
	for _, sl := range sales {
		records = append(records, sl.ToRecord())
	}
	return records, nil
}

func (s *Service) Create(ctx context.Context, userID int, rec Record) error {
	sl, err := s.fromRecord(userID, rec)
	if err != nil {
		return err
	}

	var txn *credit.Transaction
	if sl.PaymentType == PaymentCredit && sl.CreditTransactionID != "" {
		t, err := credit.FromRecord(userID, credit.Record{
			ID:         sl.CreditTransactionID,
			CustomerID: sl.CustomerID,
			Type:       credit.TypeSale,
			Amount:     sl.Total.String(),
			Notes:      fmt.Sprintf("Credit sale - %d items", len(sl.Items)),
			Date:       sl.Timestamp,
			SaleID:     sl.ClientID,
		}, s.now())
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidData, err)
		}
		txn = &t
	}

	if err := s.repo.Create(ctx, sl, txn); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("create sale: %w", err)
	}

	s.log.Debug("sale created", "user_id", userID, "client_id", sl.ClientID, "total", sl.Total.String())
	return nil
}

func (s *Service) Exists(ctx context.Context, userID int, clientID string) (bool, error) {
	if clientID == "" {
		return false, fmt.Errorf("%w: empty id", ErrInvalidData)
	}
	return s.repo.ExistsByClientID(ctx, userID, clientID)
}

func (s *Service) fromRecord(userID int, rec Record) (Sale, error) {
	if err := validation.Struct(rec); err != nil {
		return Sale{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	total, err := validation.Money(rec.Total)
	if err != nil || total.IsNegative() {
		return Sale{}, fmt.Errorf("%w: total %q", ErrInvalidData, rec.Total)
	}

	items := make([]Item, 0, len(rec.Items))
	sum := decimal.Zero
	for _, it := range rec.Items {
		price, err := validation.Money(it.Price)
		if err != nil || price.IsNegative() {
			return Sale{}, fmt.Errorf("%w: price %q", ErrInvalidData, it.Price)
		}
		items = append(items, Item{ProductID: it.ProductID, Name: it.Name, Price: price, Quantity: it.Quantity})
		sum = sum.Add(price.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}

	if !sum.Equal(total) {
		return Sale{}, fmt.Errorf("%w: total %s does not match items %s", ErrInvalidData, total, sum)
	}

	now := s.now()
	sl := Sale{
		ID:                  uuid.New(),
		UserID:              userID,
		ClientID:            rec.ID,
		Items:               items,
		Total:               total,
		PaymentType:         rec.PaymentType,
		CustomerID:          rec.CustomerID,
		CustomerName:        rec.CustomerName,
		CreditTransactionID: rec.CreditTransactionID,
		Timestamp:           rec.Timestamp,
		CreatedAt:           rec.CreatedAt,
		UpdatedAt:           now,
	}
	if sl.Timestamp.IsZero() {
		sl.Timestamp = now
	}
	if sl.CreatedAt.IsZero() {
		sl.CreatedAt = now
	}

	return sl, nil
}
