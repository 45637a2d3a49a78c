package services

import (
	"fmt"
	"log"
	"math"
	"time"

	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/repository"
	"github.com/tilakWebkorps/Healthy-meal/utils"
)

// AlreadyActiveError reports that the buyer already has an active plan.
// RemainingDays is the whole number of days until that plan's expiry, for
// message composition; no state is mutated when this error is returned.
type AlreadyActiveError struct {
	RemainingDays int
}

func (e *AlreadyActiveError) Error() string {
	return fmt.Sprintf("your plan is already activated try to buy after %d days", e.RemainingDays)
}

// PurchaseService activates plans for users. Activation writes the
// ActivePlanRecord link and the user's activation fields in one transaction,
// so a failure never leaves a dangling link behind.
type PurchaseService interface {
	BuyPlan(userID uint, plan *models.Plan) (*models.Bill, error)
}

type purchaseService struct {
	userRepo repository.UserRepository
	now      func() time.Time
}

// NewPurchaseService creates a new instance of PurchaseService.
func NewPurchaseService(userRepo repository.UserRepository) PurchaseService {
	return &purchaseService{
		userRepo: userRepo,
		now:      time.Now,
	}
}

// newPurchaseServiceAt builds a service with a fixed clock. Used by tests that
// assert exact expiry arithmetic.
func newPurchaseServiceAt(userRepo repository.UserRepository, now func() time.Time) PurchaseService {
	return &purchaseService{userRepo: userRepo, now: now}
}

// BuyPlan activates plan for the given user and returns the purchase bill.
// A user holds at most one active plan: when the activation flag is already
// set the call fails with *AlreadyActiveError and leaves the user untouched.
func (s *purchaseService) BuyPlan(userID uint, plan *models.Plan) (*models.Bill, error) {
	user, err := s.userRepo.GetUserByID(userID)
	if err != nil {
		errMsg := fmt.Sprintf("failed to fetch user ID %d for plan purchase", userID)
		log.Printf("ERROR: [PurchaseService] %s: %v", errMsg, err)
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}
	if user == nil {
		log.Printf("WARN: [PurchaseService] User with ID %d not found for plan purchase.", userID)
		return nil, fmt.Errorf("user with ID %d not found", userID)
	}

	if user.ActivePlan {
		remaining := daysUntil(s.now(), user.ExpiryDate)
		log.Printf("INFO: [PurchaseService] User ID %d already has an active plan (%d days remaining), purchase rejected.", userID, remaining)
		return nil, &AlreadyActiveError{RemainingDays: remaining}
	}

	expiryDate := s.now().AddDate(0, 0, plan.PlanDuration)

	err = s.userRepo.Transaction(func(tx repository.UserRepository) error {
		record := &models.ActivePlanRecord{UserID: user.ID, PlanID: plan.ID}
		if err := tx.CreateActivePlan(record); err != nil {
			return err
		}
		user.ActivePlan = true
		user.PurchasedDurationDays = plan.PlanDuration
		user.ExpiryDate = expiryDate
		return tx.UpdateUser(user)
	})
	if err != nil {
		errMsg := fmt.Sprintf("failed to activate plan ID %d for user ID %d", plan.ID, userID)
		log.Printf("ERROR: [PurchaseService] %s: %v", errMsg, err)
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	log.Printf("INFO: [PurchaseService] User ID %d activated plan ID %d, expires %s.", userID, plan.ID, expiryDate.Format("2006-01-02"))
	return &models.Bill{
		PlanName:        plan.Name,
		PlanDescription: plan.Description,
		PlanCost:        plan.PlanCost,
		PlanDuration:    plan.PlanDuration,
		ExpiryDate:      utils.FormatBillDate(expiryDate),
	}, nil
}

// daysUntil returns the whole number of days from now until expiry, rounded
// up so a plan with any remaining time reports at least one day.
func daysUntil(now, expiry time.Time) int {
	remaining := expiry.Sub(now)
	if remaining <= 0 {
		return 0
	}
	return int(math.Ceil(remaining.Hours() / 24))
}
