package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/product"
)

type ProductRepository struct {
	pool *pgxpool.Pool
	log  *slog.Logger
}

func NewProductRepository(pool *pgxpool.Pool, log *slog.Logger) *ProductRepository {
	return &ProductRepository{
		pool: pool,
		log:  log.With("component", "product_repository"),
	}
}

func (r *ProductRepository) Create(ctx context.Context, p product.Product) error {
	const query = `
		INSERT INTO products (id, user_id, client_id, name, quantity, selling_price, cost_price,
		                      unit_type, category, sku, expiry_date, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6::numeric, $7::numeric, $8, $9, $10, $11, $12, $13)`

	_, err := r.pool.Exec(ctx, query,
		p.ID, p.UserID, p.ClientID, p.Name, p.Quantity, p.SellingPrice.String(), decimalPtr(p.CostPrice),
		p.UnitType, p.Category, p.SKU, p.ExpiryDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return product.ErrAlreadyExists
		}
		r.log.Error("failed to create product", "user_id", p.UserID, "client_id", p.ClientID, "error", err)
		return fmt.Errorf("create product: %w", err)
	}

	return nil
}

func (r *ProductRepository) List(ctx context.Context, userID int) ([]product.Product, error) {
	const query = `
		SELECT id, user_id, client_id, name, quantity, selling_price::text, cost_price::text,
		       unit_type, category, sku, expiry_date, created_at, updated_at
		FROM products
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.log.Error("failed to list products", "user_id", userID, "error", err)
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []product.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, p)
	}

	return products, rows.Err()
}

func (r *ProductRepository) ExistsByName(ctx context.Context, userID int, name string) (bool, error) {
	const query = `SELECT EXISTS (SELECT 1 FROM products WHERE user_id = $1 AND name = $2)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, userID, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("lookup product: %w", err)
	}
	return exists, nil
}

func scanProduct(row pgx.Row) (product.Product, error) {
	var (
		p            product.Product
		sellingPrice string
		costPrice    *string
	)

	err := row.Scan(&p.ID, &p.UserID, &p.ClientID, &p.Name, &p.Quantity, &sellingPrice, &costPrice,
		&p.UnitType, &p.Category, &p.SKU, &p.ExpiryDate, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return product.Product{}, fmt.Errorf("scan product: %w", err)
	}

	if p.SellingPrice, err = decimal.NewFromString(sellingPrice); err != nil {
		return product.Product{}, fmt.Errorf("parse selling price: %w", err)
	}
	if p.CostPrice, err = parseDecimalPtr(costPrice); err != nil {
		return product.Product{}, fmt.Errorf("parse cost price: %w", err)
	}

	return p, nil
}

// numeric передаем и читаем текстом, чтобы не терять точность
func decimalPtr(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func parseDecimalPtr(s *string) (*decimal.Decimal, error) {
	if s == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
