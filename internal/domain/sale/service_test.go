package sale

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/domain/credit"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, s Sale, txn *credit.Transaction) error {
	args := m.Called(ctx, s, txn)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, userID int) ([]Sale, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Sale), args.Error(1)
}

func (m *MockRepository) ExistsByClientID(ctx context.Context, userID int, clientID string) (bool, error) {
	args := m.Called(ctx, userID, clientID)
	return args.Bool(0), args.Error(1)
}

var soldAt = time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

func cashSale() Record {
	return Record{
		ID: "1700000000000abc",
		Items: []ItemRecord{
			{ProductID: "p1", Name: "Rice", Price: "2.50", Quantity: 2},
			{ProductID: "p2", Name: "Beans", Price: "1", Quantity: 1},
		},
		Total:       "6",
		PaymentType: PaymentCash,
		Timestamp:   soldAt,
	}
}

func TestService_Create_Cash(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(s Sale) bool {
		return s.ClientID == "1700000000000abc" && len(s.Items) == 2 && s.Total.Equal(decimal.NewFromInt(6))
	}), (*credit.Transaction)(nil)).Return(nil)

	// Act
	err := NewService(mockRepo, slog.Default()).Create(context.Background(), 5, cashSale())

	// Assert
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Create_CreditLinksTransaction(t *testing.T) {
	rec := cashSale()
	rec.PaymentType = PaymentCredit
	rec.CustomerID = "c1"
	rec.CustomerName = "Ann"
	rec.CreditTransactionID = "credit_1700000000000abc"

	mockRepo := new(MockRepository)
	var txn *credit.Transaction
	mockRepo.On("Create", mock.Anything, mock.Anything, mock.MatchedBy(func(t *credit.Transaction) bool {
		txn = t
		return t != nil
	})).Return(nil)

	err := NewService(mockRepo, slog.Default()).Create(context.Background(), 5, rec)

	require.NoError(t, err)
	require.NotNil(t, txn)
	assert.Equal(t, "credit_1700000000000abc", txn.ClientID)
	assert.Equal(t, "c1", txn.CustomerID)
	assert.Equal(t, credit.TypeSale, txn.Type)
	assert.Equal(t, rec.ID, txn.SaleID)
	assert.Equal(t, "Credit sale - 2 items", txn.Notes)
	assert.Equal(t, soldAt, txn.Date)
	assert.True(t, decimal.NewFromInt(6).Equal(txn.Amount))
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Record)
	}{
		{name: "no items", mutate: func(r *Record) { r.Items = nil }},
		{name: "zero quantity", mutate: func(r *Record) { r.Items[0].Quantity = 0 }},
		{name: "unknown payment", mutate: func(r *Record) { r.PaymentType = "barter" }},
		{name: "credit without customer", mutate: func(r *Record) { r.PaymentType = PaymentCredit }},
		{name: "total mismatch", mutate: func(r *Record) { r.Total = "7" }},
		{name: "bad price", mutate: func(r *Record) { r.Items[1].Price = "one" }},
		{name: "total below cents", mutate: func(r *Record) { r.Total = "10.001" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := cashSale()
			tt.mutate(&rec)
			mockRepo := new(MockRepository)

			err := NewService(mockRepo, slog.Default()).Create(context.Background(), 5, rec)

			assert.ErrorIs(t, err, ErrInvalidData)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("List", mock.Anything, 5).Return([]Sale{{
		ClientID:    "s1",
		Items:       []Item{{ProductID: "p1", Name: "Rice", Price: decimal.RequireFromString("2.5"), Quantity: 2}},
		Total:       decimal.NewFromInt(5),
		PaymentType: PaymentMobileMoney,
		Timestamp:   soldAt,
	}}, nil)

	records, err := NewService(mockRepo, slog.Default()).List(context.Background(), 5)

	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "5", records[0].Total)
	assert.Equal(t, "2.5", records[0].Items[0].Price)
	assert.True(t, records[0].Synced)
}
