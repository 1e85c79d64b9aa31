package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/credit"
)

const insertCreditQuery = `
	INSERT INTO credit_transactions (id, user_id, client_id, customer_id, type, amount, notes, date, sale_id,
	                                 created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6::numeric, $7, $8, $9, $10, $11)`

func creditArgs(t credit.Transaction) []any {
	return []any{
		t.ID, t.UserID, t.ClientID, t.CustomerID, t.Type, t.Amount.String(), t.Notes, t.Date, t.SaleID,
		t.CreatedAt, t.UpdatedAt,
	}
}

type CreditRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewCreditRepository(pool *pgxpool.Pool, log *slog.Logger) *CreditRepository {
	return &CreditRepository{
		pool: pool,
		log:  log.With("component", "credit_repository"),
	}
}

func (r *CreditRepository) Create(ctx context.Context, t credit.Transaction) error {
	if _, err := r.pool.Exec(ctx, insertCreditQuery, creditArgs(t)...); err != nil {
		if isUniqueViolation(err) {
			return credit.ErrAlreadyExists
		}
		r.log.Error("failed to create credit transaction", "user_id", t.UserID, "client_id", t.ClientID, "error", err)
		return fmt.Errorf("create credit transaction: %w", err)
	}

	return nil
}

func (r *CreditRepository) List(ctx context.Context, userID int) ([]credit.Transaction, error) {
	const query = `
		SELECT id, user_id, client_id, customer_id, type, amount::text, notes, date, sale_id,
		       created_at, updated_at
		FROM credit_transactions
		WHERE user_id = $1
		ORDER BY date`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list credit transactions", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list credit transactions: %w", err)
	}
	defer rows.Close()

	var txns []credit.Transaction
	for rows.Next() {
		var (
			t      credit.Transaction
			amount string
		)
		if err := rows.Scan(&t.ID, &t.UserID, &t.ClientID, &t.CustomerID, &t.Type, &amount, &t.Notes, &t.Date,
			&t.SaleID, &t.CreatedAt, &t.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credit transaction: %w", err)
		}
		if t.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("parse amount: %w", err)
		}
		txns = append(txns, t)
	}

	return txns, rows.Err()
}

func (r *CreditRepository) ExistsByClientID(ctx context.Context, userID int, clientID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM credit_transactions WHERE user_id = $1 AND client_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup credit transaction: %w", err)
	}
	return exists, nil
}
