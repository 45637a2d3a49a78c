package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/tilakWebkorps/Healthy-meal/models"

	"gorm.io/gorm"
)

// UserRepository defines the interface for user and active-plan persistence.
// Activation writes two entities (the active-plan link and the user's flags)
// and therefore goes through Transaction.
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(userID uint) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUser(user *models.User) error
	CreateActivePlan(record *models.ActivePlanRecord) error
	Transaction(fn func(tx UserRepository) error) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database
// transaction. fn returning an error rolls the whole transaction back.
func (r *userRepository) Transaction(fn func(tx UserRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&userRepository{db: tx})
	})
}

// CreateUser creates a new user row.
func (r *userRepository) CreateUser(user *models.User) error {
	if user == nil {
		log.Printf("ERROR: [UserRepository] CreateUser: user cannot be nil")
		return errors.New("user cannot be nil")
	}
	if err := r.db.Create(user).Error; err != nil {
		log.Printf("ERROR: [UserRepository] Failed to create user '%s': %v", user.Email, err)
		return fmt.Errorf("failed to create user '%s': %w", user.Email, err)
	}
	log.Printf("INFO: [UserRepository] Successfully created user ID %d.", user.ID)
	return nil
}

// GetUserByID retrieves a user by primary key.
func (r *userRepository) GetUserByID(userID uint) (*models.User, error) {
	var user models.User
	err := r.db.First(&user, userID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [UserRepository] User with ID %d not found.", userID)
			return nil, nil // Not found
		}
		log.Printf("ERROR: [UserRepository] Failed to retrieve user ID %d: %v", userID, err)
		return nil, fmt.Errorf("failed to retrieve user ID %d: %w", userID, err)
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email address.
func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil // Not found
		}
		log.Printf("ERROR: [UserRepository] Failed to retrieve user by email: %v", err)
		return nil, fmt.Errorf("failed to retrieve user by email: %w", err)
	}
	return &user, nil
}

// UpdateUser persists the user's activation fields.
func (r *userRepository) UpdateUser(user *models.User) error {
	if user == nil {
		log.Printf("ERROR: [UserRepository] UpdateUser: user cannot be nil")
		return errors.New("user cannot be nil")
	}
	if user.ID == 0 {
		log.Printf("ERROR: [UserRepository] UpdateUser: user ID must be provided for update")
		return errors.New("user ID must be provided for update")
	}
	err := r.db.Model(&models.User{}).Where("id = ?", user.ID).Updates(map[string]interface{}{
		"active_plan":             user.ActivePlan,
		"purchased_duration_days": user.PurchasedDurationDays,
		"expiry_date":             user.ExpiryDate,
	}).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to update user ID %d: %v", user.ID, err)
		return fmt.Errorf("failed to update user ID %d: %w", user.ID, err)
	}
	log.Printf("INFO: [UserRepository] Successfully updated user ID %d.", user.ID)
	return nil
}

// CreateActivePlan records the purchase link between a user and a plan.
func (r *userRepository) CreateActivePlan(record *models.ActivePlanRecord) error {
	if record == nil {
		log.Printf("ERROR: [UserRepository] CreateActivePlan: record cannot be nil")
		return errors.New("record cannot be nil")
	}
	if record.UserID == 0 || record.PlanID == 0 {
		log.Printf("ERROR: [UserRepository] CreateActivePlan: record must reference a user and a plan")
		return errors.New("record must reference a user and a plan")
	}
	if err := r.db.Create(record).Error; err != nil {
		log.Printf("ERROR: [UserRepository] Failed to create active plan link (user %d, plan %d): %v", record.UserID, record.PlanID, err)
		return fmt.Errorf("failed to create active plan link for user %d: %w", record.UserID, err)
	}
	log.Printf("INFO: [UserRepository] Successfully created active plan link ID %d (user %d, plan %d).", record.ID, record.UserID, record.PlanID)
	return nil
}
