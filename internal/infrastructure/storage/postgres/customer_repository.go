package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/customer"
)

type CustomerRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCustomerRepository(pool *pgxpool.Pool, log *slog.Logger) *CustomerRepository {
	return &CustomerRepository{
		pool: pool,
		log:  log.With("component", "customer_repository"),
	}
}

func (r *CustomerRepository) Create(ctx context.Context, c customer.Customer) error {
	const query = `
		INSERT INTO customers (id, user_id, client_id, name, phone, location, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := r.pool.Exec(ctx, query,
		c.ID, c.UserID, c.ClientID, c.Name, c.Phone, c.Location, c.Notes, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return customer.ErrAlreadyExists
		}
		r.log.Error("failed to create customer", "user_id", c.UserID, "client_id", c.ClientID, "error", err)
		return fmt.Errorf("create customer: %w", err)
	}

	return nil
}

func (r *CustomerRepository) List(ctx context.Context, userID int) ([]customer.Customer, error) {
	const query = `
		SELECT id, user_id, client_id, name, phone, location, notes, created_at, updated_at
		FROM customers
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list customers", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		var c customer.Customer
		if err := rows.Scan(&c.ID, &c.UserID, &c.ClientID, &c.Name, &c.Phone, &c.Location, &c.Notes,
			&c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}

	return customers, rows.Err()
}

func (r *CustomerRepository) ExistsByPhone(ctx context.Context, userID int, phone string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM customers WHERE user_id = $1 AND phone = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, phone).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup customer: %w", err)
	}
	return exists, nil
}
