package product

import "context"

type Repository interface {
	Create(ctx context.Context, p Product) error
	List(ctx context.Context, userID int) ([]Product, error)
	ExistsByName(ctx context.Context, userID int, name string) (bool, error)
}
