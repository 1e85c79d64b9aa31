package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/credit"
	"shopkeeper/internal/domain/sale"
)

type SaleRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewSaleRepository(pool *pgxpool.Pool, log *slog.Logger) *SaleRepository {
	return &SaleRepository{
		pool: pool,
		log:  log.With("component", "sale_repository"),
	}
}

func (r *SaleRepository) Create(ctx context.Context, s sale.Sale, txn *credit.Transaction) error {
	const insertSale = `
		INSERT INTO sales (id, user_id, client_id, items, total, payment_type, customer_id, customer_name,
		                   credit_transaction_id, sold_at, created_at, updated_at)
		VALUES ($1, $2, $3, $4::jsonb, $5::numeric, $6, $7, $8, $9, $10, $11, $12)`

	items, err := json.Marshal(s.Items)
	if err != nil {
		return fmt.Errorf("marshal items: %w", err)
	}

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer func() {
		if rbErr := tx.Rollback(ctx); rbErr != nil && rbErr != pgx.ErrTxClosed {
			r.log.Error("rollback failed", "error", rbErr)
		}
	}()

	_, err = tx.Exec(ctx, insertSale,
		s.ID, s.UserID, s.ClientID, string(items), s.Total.String(), s.PaymentType, s.CustomerID, s.CustomerName,
		s.CreditTransactionID, s.Timestamp, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return sale.ErrAlreadyExists
		}
		r.log.Error("failed to create sale", "user_id", s.UserID, "client_id", s.ClientID, "error", err)
		return fmt.Errorf("create sale: %w", err)
	}

	// кредитная транзакция могла прийти раньше продажи отдельным запросом
	if txn != nil {
		if _, err := tx.Exec(ctx, insertCreditQuery+` ON CONFLICT (user_id, client_id) DO NOTHING`, creditArgs(*txn)...); err != nil {
			r.log.Error("failed to create linked credit transaction", "sale_id", s.ClientID, "error", err)
			return fmt.Errorf("create linked credit transaction: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}

	return nil
}

func (r *SaleRepository) List(ctx context.Context, userID int) ([]sale.Sale, error) {
	const query = `
		SELECT id, user_id, client_id, items, total::text, payment_type, customer_id, customer_name,
		       credit_transaction_id, sold_at, created_at, updated_at
		FROM sales
		WHERE user_id = $1
		ORDER BY sold_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list sales", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()

	var sales []sale.Sale
	for rows.Next() {
		var (
			s     sale.Sale
			items []byte
			total string
		)
		if err := rows.Scan(&s.ID, &s.UserID, &s.ClientID, &items, &total, &s.PaymentType, &s.CustomerID,
			&s.CustomerName, &s.CreditTransactionID, &s.Timestamp, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, fmt.Errorf("parse items: %w", err)
		}
		if s.Total, err = decimal.NewFromString(total); err != nil {
			return nil, fmt.Errorf("parse total: %w", err)
		}
		sales = append(sales, s)
	}

	return sales, rows.Err()
}

func (r *SaleRepository) ExistsByClientID(ctx context.Context, userID int, clientID string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM sales WHERE user_id = $1 AND client_id = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, clientID).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup sale: %w", err)
	}
	return exists, nil
}
