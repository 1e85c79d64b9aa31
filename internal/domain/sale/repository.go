package sale

import (
	"context"

	"shopkeeper/internal/domain/credit"
)

type Repository interface {
	// Create сохраняет продажу и, для продажи в кредит, связанную транзакцию в одной транзакции БД.
	// Уже существующая кредитная транзакция с тем же клиентским id не дублируется.
	Create(ctx context.Context, s Sale, txn *credit.Transaction) error
	List(ctx context.Context, userID int) ([]Sale, error)
	ExistsByClientID(ctx context.Context, userID int, clientID string) (bool, error)
}
