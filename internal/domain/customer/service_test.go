package customer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) Create(ctx context.Context, c Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockRepository) List(ctx context.Context, userID int) ([]Customer, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]Customer), args.Error(1)
}

func (m *MockRepository) ExistsByPhone(ctx context.Context, userID int, phone string) (bool, error) {
	args := m.Called(ctx, userID, phone)
	return args.Bool(0), args.Error(1)
}

func TestService_Create_NormalizesPhone(t *testing.T) {
	// Arrange
	mockRepo := new(MockRepository)
	mockRepo.On("Create", mock.Anything, mock.MatchedBy(func(c Customer) bool {
		return c.Phone == "+16502530001" && c.ClientID == "c1" && c.UserID == 3 && c.Name == "Ann"
	})).Return(nil)

	// Act
	err := NewService(mockRepo, "US", slog.Default()).Create(context.Background(), 3,
		Record{ID: "c1", Name: " Ann ", Phone: "(650) 253-0001"})

	// Assert
	require.NoError(t, err)
	mockRepo.AssertExpectations(t)
}

func TestService_Create_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rec  Record
	}{
		{name: "no phone", rec: Record{ID: "c1", Name: "Ann"}},
		{name: "no name", rec: Record{ID: "c1", Phone: "650-253-0001"}},
		{name: "no id", rec: Record{Name: "Ann", Phone: "650-253-0001"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockRepository)

			err := NewService(mockRepo, "US", slog.Default()).Create(context.Background(), 3, tt.rec)

			assert.ErrorIs(t, err, ErrInvalidData)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestService_Create_Duplicate(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("Create", mock.Anything, mock.Anything).Return(ErrAlreadyExists)

	err := NewService(mockRepo, "US", slog.Default()).Create(context.Background(), 3,
		Record{ID: "c1", Name: "Ann", Phone: "650-253-0001"})

	assert.ErrorIs(t, err, ErrAlreadyExists)
}

func TestService_Exists(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("ExistsByPhone", mock.Anything, 3, "+16502530001").Return(true, nil)
	svc := NewService(mockRepo, "US", slog.Default())

	found, err := svc.Exists(context.Background(), 3, "650.253.0001")
	require.NoError(t, err)
	assert.True(t, found)

	_, err = svc.Exists(context.Background(), 3, " ")
	assert.ErrorIs(t, err, ErrInvalidData)
}

func TestService_List(t *testing.T) {
	mockRepo := new(MockRepository)
	mockRepo.On("List", mock.Anything, 3).Return([]Customer{{ClientID: "c1", Name: "Ann", Phone: "+16502530001"}}, nil)

	records, err := NewService(mockRepo, "US", slog.Default()).List(context.Background(), 3)

	require.NoError(t, err)
	assert.Equal(t, []Record{{ID: "c1", Synced: true, Name: "Ann", Phone: "+16502530001"}}, records)
}
