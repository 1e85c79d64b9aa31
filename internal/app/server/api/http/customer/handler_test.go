package customer

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
	"shopkeeper/internal/domain/customer"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) List(ctx context.Context, userID int) ([]customer.Record, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]customer.Record), args.Error(1)
}

func (m *MockService) Create(ctx context.Context, userID int, rec customer.Record) error {
	args := m.Called(ctx, userID, rec)
	return args.Error(0)
}

func (m *MockService) Exists(ctx context.Context, userID int, key string) (bool, error) {
	args := m.Called(ctx, userID, key)
	return args.Bool(0), args.Error(1)
}

func setupAPI(t *testing.T, svc *MockService) humatest.TestAPI {
	_, api := humatest.New(t)
	withUser := func(ctx huma.Context, next func(huma.Context)) {
		next(huma.WithContext(ctx, auth.WithUserID(ctx.Context(), 1)))
	}
	NewHandler(svc, slog.Default(), huma.Middlewares{withUser}).SetupRoutes(api)
	return api
}

func TestHandler_Create(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		{name: "phone taken", err: customer.ErrAlreadyExists, wantStatus: http.StatusConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &MockService{}
			svc.On("Create", mock.Anything, 1, mock.MatchedBy(func(r customer.Record) bool {
				return r.Phone == "0241234567" && r.Name == "Ama"
			})).Return(tt.err)
			api := setupAPI(t, svc)

			resp := api.Post(basePath, map[string]any{"id": "c1", "name": "Ama", "phone": "0241234567"})

			assert.Equal(t, tt.wantStatus, resp.Code)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandler_LookupByPhone(t *testing.T) {
	svc := &MockService{}
	svc.On("Exists", mock.Anything, 1, "+233241234567").Return(true, nil)
	api := setupAPI(t, svc)

	resp := api.Get(basePath + "/lookup?key=%2B233241234567")

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"found":true`)
}

func TestHandler_List(t *testing.T) {
	svc := &MockService{}
	svc.On("List", mock.Anything, 1).Return([]customer.Record{{ID: "c1", Name: "Ama", Phone: "+233241234567", Synced: true}}, nil)
	api := setupAPI(t, svc)

	resp := api.Get(basePath)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"phone":"+233241234567"`)
}
