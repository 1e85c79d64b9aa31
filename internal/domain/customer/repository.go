package customer

import "context"

type Repository interface {
	Create(ctx context.Context, c Customer) error
	List(ctx context.Context, userID int) ([]Customer, error)
	ExistsByPhone(ctx context.Context, userID int, phone string) (bool, error)
}
