package sale

import (
	"context"
	"net/http"
	"testing"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/humatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/exp/slog"

	"shopkeeper/internal/app/server/api/http/middleware/auth"
	"shopkeeper/internal/domain/sale"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int) ([]sale.Record, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]sale.Record), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, rec sale.Record) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

func (m *MockService) Exists(ctx context.Context, userID int, clientID string) (bool, error) {
	args := m.Called(ctx, userID, clientID)
	return args.Bool(0), args.Error(1)
}

func setupAPI(t *testing.T, svc *MockService) humatest.TestAPI {
	_, api := humatest.New(t)
	withUser := func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), 3)))
	}
	NewHandler(svc, slog.Default(), huma.Middlewares{withUser}).SetupRoutes(api)
	return api
}

func TestHandler_CreateCreditSale(t *testing.T) {
	svc := &MockService{}
	svc.On("Create", mock.Anything, 3, mock.MatchedBy(func(r sale.Record) bool {
		return r.ID == "s1" && r.PaymentType == sale.PaymentCredit &&
			r.CreditTransactionID == "credit_s1" && len(r.Items) == 1 && r.Items[0].Quantity == 2
	})).Return(nil)
	api := setupAPI(t, svc)

	resp := api.Post(basePath, map[string]any{
		"id": "s1",
		"items": []map[string]any{
			{"productId": "p1", "name": "Rice", "price": "2.50", "quantity": 2},
		},
		"total":               "5.00",
		"paymentType":         "credit",
		"customerId":          "c1",
		"customerName":        "Ama",
		"creditTransactionId": "credit_s1",
		"timestamp":           "2024-03-01T10:00:00Z",
	})

	assert.Equal(t, http.StatusCreated, resp.Code)
	assert.Contains(t, resp.Body.String(), `"id":"s1"`)
	svc.AssertExpectations(t)
}

func TestHandler_CreateRejectsBadPayload(t *testing.T) {
	tests := []struct {
		name    string
		payload map[string]any
	}{
		{
			name: "empty cart",
			payload: map[string]any{
				"id": "s1", "items": []any{}, "total": "0", "paymentType": "cash", "timestamp": "2024-03-01T10:00:00Z",
			},
		},
		{
			name: "unknown payment",
			payload: map[string]any{
				"id":          "s1",
				"items":       []map[string]any{{"productId": "p1", "name": "Rice", "price": "1", "quantity": 1}},
				"total":       "1",
				"paymentType": "barter",
				"timestamp":   "2024-03-01T10:00:00Z",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			api := setupAPI(t, svc)

			resp := api.Post(basePath, tt.payload)

			assert.Equal(t, http.StatusUnprocessableEntity, resp.Code)
			svc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestHandler_CreateDuplicate(t *testing.T) {
	svc := &MockService{}
	svc.On("Create", mock.Anything, 3, mock.Anything).Return(sale.ErrAlreadyExists)
	api := setupAPI(t, svc)

	resp := api.Post(basePath, map[string]any{
		"id":          "s1",
		"items":       []map[string]any{{"productId": "p1", "name": "Rice", "price": "1", "quantity": 1}},
		"total":       "1",
		"paymentType": "cash",
		"timestamp":   "2024-03-01T10:00:00Z",
	})

	assert.Equal(t, http.StatusConflict, resp.Code)
}

func TestHandler_LookupByClientID(t *testing.T) {
	svc := &MockService{}
	svc.On("Exists", mock.Anything, 3, "s9").Return(false, nil)
	api := setupAPI(t, svc)

	resp := api.Get(basePath + "/lookup?key=s9")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"found":false`)
}
