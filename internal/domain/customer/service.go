package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/pos"
	"shopkeeper/internal/domain/validation"
)

type Servicer interface {
	List(ctx context.Context, userID int) ([]Record, error)
	Create(ctx context.Context, userID int, rec Record) error
	Exists(ctx context.Context, userID int, phone string) (bool, error)
}

// Service хранит клиентов с телефоном, приведенным к E.164: это естественный ключ клиента
type Service struct {
	repo   Repository
	region string
	log    *slog.Logger
	now    func() time.Time
}

func NewService(repo Repository, region string, log *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		region: region,
		log:    log.With("component", "customer_service"),
		now:    time.Now,
	}
}

func (s *Service) List(ctx context.Context, userID int) ([]Record, error) {
	customers, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}

	records := make([]Record, 0, len(customers))
	for _, c := range customers {
		records = append(records, c.ToRecord())
	}
	return records, nil
}

func (s *Service) Create(ctx context.Context, userID int, rec Record) error {
	rec.Name = strings.TrimSpace(rec.Name)
	rec.Phone = strings.TrimSpace(rec.Phone)
	if err := validation.Struct(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidData, err)
	}

	now := s.now()
	c := Customer{
		ID:        uuid.New(),
		UserID:    userID,
		ClientID:  rec.ID,
		Name:      rec.Name,
		Phone:     pos.NormalizePhone(rec.Phone, s.region),
		Location:  rec.Location,
		Notes:     rec.Notes,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: now,
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}

	if err := s.repo.Create(ctx, c); err != nil {
		if errors.Is(err, ErrAlreadyExists) {
			return err
		}
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (s *Service) Exists(ctx context.Context, userID int, phone string) (bool, error) {
	phone = pos.NormalizePhone(phone, s.region)
	if phone == "" {
		return false, fmt.Errorf("%w: empty phone", ErrInvalidData)
	}
	return s.repo.ExistsByPhone(ctx, userID, phone)
}
