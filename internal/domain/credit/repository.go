package credit

import "context"

type Repository interface {
	Create(ctx context.Context, t Transaction) error
	List(ctx context.Context, userID int) ([]Transaction, error)
	ExistsByClientID(ctx context.Context, userID int, clientID string) (bool, error)
}
