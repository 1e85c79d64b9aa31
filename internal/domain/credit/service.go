package credit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

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
		log:  log.With("component", "credit_service"),
		now:  time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Record, error) {
	txns, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list credit transactions: %w", err)
	}

	records := make([]Record, 0, len(txns))
	for _, t := range txns {
		records = append(records, t.ToRecord())
	}
	return records, nil
}

func (s *Service) Create(ctx context.Context, userID int, rec Record) error {
	t, err := FromRecord(userID, rec, s.now())
	if err != nil {
		return err
	}

	if err := s.repo.Create(ctx, t); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("create credit transaction: %w", err)
	}

	return nil
}

func (s *Service) Exists(ctx context.Context, userID int, clientID string) (bool, error) {
	if clientID == "" {
		return false, fmt.Errorf("%w: empty id", ErrInvalidData)
	}
	return s.repo.ExistsByClientID(ctx, userID, clientID)
}

// FromRecord проверяет запись клиента и строит транзакцию. Используется и при сохранении продажи в кредит
func FromRecord(userID int, rec Record, now time.Time) (Transaction, error) {
	if err := validation.Struct(rec); err != nil {
		return Transaction{}, fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	amount, err := validation.Money(rec.Amount)
	if err != nil || !amount.IsPositive() {
		return Transaction{}, fmt.Errorf("%w: amount %q", ErrInvalidData, rec.Amount)
	}

	t := Transaction{
		ID:         uuid.New(),
		UserID:     userID,
		ClientID:   rec.ID,
		CustomerID: rec.CustomerID,
		Type:       rec.Type,
		Amount:     amount,
		Notes:      rec.Notes,
		Date:       rec.Date,
		SaleID:     rec.SaleID,
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  now,
	}
	if t.Date.IsZero() {
		t.Date = now
	}
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}

	return t, nil
}
