package services

import (
	"errors"
	"testing"
	"time"

	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockUserRepository is a mock type for the UserRepository interface
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(userID uint) (*models.User, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) CreateActivePlan(record *models.ActivePlanRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

// Transaction runs fn against the mock itself; the rollback behavior of the
// real repository is covered by the schedule service integration tests.
func (m *MockUserRepository) Transaction(fn func(tx repository.UserRepository) error) error {
	return fn(m)
}

func testPlan() *models.Plan {
	return &models.Plan{
		ID:           3,
		Name:         "keto starter",
		Description:  "low carb plan",
		PlanDuration: 14,
		PlanCost:     1500,
	}
}

func TestPurchaseService_BuyPlan(t *testing.T) {
	instant := time.Date(2026, time.February, 20, 10, 30, 0, 0, time.UTC)
	clock := func() time.Time { return instant }

	t.Run("Activates the plan and returns the bill", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newPurchaseServiceAt(mockUserRepo, clock)
		plan := testPlan()
		user := &models.User{ID: 7, Email: "buyer@example.com"}
		wantExpiry := instant.AddDate(0, 0, 14)

		mockUserRepo.On("GetUserByID", uint(7)).Return(user, nil).Once()
		mockUserRepo.On("CreateActivePlan", mock.MatchedBy(func(r *models.ActivePlanRecord) bool {
			return r.UserID == 7 && r.PlanID == 3
		})).Return(nil).Once()
		mockUserRepo.On("UpdateUser", mock.MatchedBy(func(u *models.User) bool {
			return u.ActivePlan && u.PurchasedDurationDays == 14 && u.ExpiryDate.Equal(wantExpiry)
		})).Return(nil).Once()

		bill, err := service.BuyPlan(7, plan)

		require.NoError(t, err)
		require.NotNil(t, bill)
		assert.Equal(t, "keto starter", bill.PlanName)
		assert.Equal(t, "low carb plan", bill.PlanDescription)
		assert.Equal(t, 1500, bill.PlanCost)
		assert.Equal(t, 14, bill.PlanDuration)
		assert.Equal(t, "6/3/2026", bill.ExpiryDate) // no zero-padding
		mockUserRepo.AssertExpectations(t)
	})

	t.Run("Rejects a buyer whose plan is already active, without mutation", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newPurchaseServiceAt(mockUserRepo, clock)
		user := &models.User{
			ID:         7,
			ActivePlan: true,
			ExpiryDate: instant.AddDate(0, 0, 5),
		}
		mockUserRepo.On("GetUserByID", uint(7)).Return(user, nil).Once()

		bill, err := service.BuyPlan(7, testPlan())

		assert.Nil(t, bill)
		var alreadyActive *AlreadyActiveError
		require.ErrorAs(t, err, &alreadyActive)
		assert.Equal(t, 5, alreadyActive.RemainingDays)
		assert.Equal(t, "your plan is already activated try to buy after 5 days", err.Error())
		mockUserRepo.AssertNotCalled(t, "CreateActivePlan", mock.Anything)
		mockUserRepo.AssertNotCalled(t, "UpdateUser", mock.Anything)
	})

	t.Run("Fails without user mutation when the activation link cannot be written", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newPurchaseServiceAt(mockUserRepo, clock)
		mockUserRepo.On("GetUserByID", uint(7)).Return(&models.User{ID: 7}, nil).Once()
		mockUserRepo.On("CreateActivePlan", mock.Anything).Return(errors.New("DB error")).Once()

		bill, err := service.BuyPlan(7, testPlan())

		assert.Nil(t, bill)
		assert.Error(t, err)
		mockUserRepo.AssertNotCalled(t, "UpdateUser", mock.Anything)
	})

	t.Run("Fails when the user update cannot be written", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newPurchaseServiceAt(mockUserRepo, clock)
		mockUserRepo.On("GetUserByID", uint(7)).Return(&models.User{ID: 7}, nil).Once()
		mockUserRepo.On("CreateActivePlan", mock.Anything).Return(nil).Once()
		mockUserRepo.On("UpdateUser", mock.Anything).Return(errors.New("DB error")).Once()

		bill, err := service.BuyPlan(7, testPlan())

		assert.Nil(t, bill)
		assert.Error(t, err)
	})

	t.Run("Fails for an unknown user", func(t *testing.T) {
		mockUserRepo := new(MockUserRepository)
		service := newPurchaseServiceAt(mockUserRepo, clock)
		mockUserRepo.On("GetUserByID", uint(99)).Return(nil, nil).Once()

		bill, err := service.BuyPlan(99, testPlan())

		assert.Nil(t, bill)
		assert.Error(t, err)
	})
}

func TestDaysUntil(t *testing.T) {
	now := time.Date(2026, time.February, 20, 10, 0, 0, 0, time.UTC)

	assert.Equal(t, 0, daysUntil(now, now))
	assert.Equal(t, 0, daysUntil(now, now.AddDate(0, 0, -1)))
	assert.Equal(t, 1, daysUntil(now, now.Add(6*time.Hour)))
	assert.Equal(t, 14, daysUntil(now, now.AddDate(0, 0, 14)))
}
