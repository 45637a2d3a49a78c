package repository

import (
	"errors"
	"fmt"
	"log"

	"github.com/tilakWebkorps/Healthy-meal/models"

	"gorm.io/gorm"
)

// PlanRepository defines the interface for interacting with plan, day and meal data.
// Multi-entity mutations are expected to run inside Transaction so that a
// failure partway through a schedule write never leaves a partial tree behind.
type PlanRepository interface {
	CreatePlan(plan *models.Plan) error
	GetPlanByID(planID uint) (*models.Plan, error)
	GetAllPlans() ([]*models.Plan, error)
	UpdatePlan(plan *models.Plan) error
	DeletePlan(planID uint) error
	CreateDay(day *models.Day) error
	CreateMeal(meal *models.Meal) error
	UpdateMeal(meal *models.Meal) error
	Transaction(fn func(tx PlanRepository) error) error
}

type planRepository struct {
	db *gorm.DB
}

// NewPlanRepository creates a new instance of PlanRepository.
func NewPlanRepository(db *gorm.DB) PlanRepository {
	return &planRepository{db: db}
}

// Transaction runs fn against a repository bound to a single database
// transaction. fn returning an error rolls the whole transaction back.
func (r *planRepository) Transaction(fn func(tx PlanRepository) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(&planRepository{db: tx})
	})
}

// CreatePlan creates a new plan row. Days are written separately by the
// schedule builder so that construction order and slot assignment stay explicit.
func (r *planRepository) CreatePlan(plan *models.Plan) error {
	if plan == nil {
		log.Printf("ERROR: [PlanRepository] CreatePlan: plan cannot be nil")
		return errors.New("plan cannot be nil")
	}
	if err := r.db.Create(plan).Error; err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to create plan '%s': %v", plan.Name, err)
		return fmt.Errorf("failed to create plan '%s': %w", plan.Name, err)
	}
	log.Printf("INFO: [PlanRepository] Successfully created plan ID %d ('%s').", plan.ID, plan.Name)
	return nil
}

// GetPlanByID retrieves a plan by its ID, preloading the full schedule tree:
// days in for_day order, each day's meals in category slot order, and the
// category/recipe rows needed for presentation.
func (r *planRepository) GetPlanByID(planID uint) (*models.Plan, error) {
	var plan models.Plan
	err := r.db.
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("for_day asc") }).
		Preload("Days.Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meal_category_id asc") }).
		Preload("Days.Meals.MealCategory").
		Preload("Days.Meals.Recipe").
		First(&plan, planID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("INFO: [PlanRepository] Plan with ID %d not found.", planID)
			return nil, nil // Not found
		}
		log.Printf("ERROR: [PlanRepository] Failed to retrieve plan ID %d: %v", planID, err)
		return nil, fmt.Errorf("failed to retrieve plan ID %d: %w", planID, err)
	}
	return &plan, nil
}

// GetAllPlans retrieves every plan with its full schedule tree preloaded.
func (r *planRepository) GetAllPlans() ([]*models.Plan, error) {
	var plans []*models.Plan
	err := r.db.
		Preload("Days", func(db *gorm.DB) *gorm.DB { return db.Order("for_day asc") }).
		Preload("Days.Meals", func(db *gorm.DB) *gorm.DB { return db.Order("meal_category_id asc") }).
		Preload("Days.Meals.MealCategory").
		Preload("Days.Meals.Recipe").
		Order("created_at asc, id asc").
		Find(&plans).Error
	if err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to retrieve plans: %v", err)
		return nil, fmt.Errorf("failed to retrieve plans: %w", err)
	}
	return plans, nil
}

// UpdatePlan updates the scalar fields of an existing plan.
func (r *planRepository) UpdatePlan(plan *models.Plan) error {
	if plan == nil {
		log.Printf("ERROR: [PlanRepository] UpdatePlan: plan cannot be nil")
		return errors.New("plan cannot be nil")
	}
	if plan.ID == 0 {
		log.Printf("ERROR: [PlanRepository] UpdatePlan: plan ID must be provided for update")
		return errors.New("plan ID must be provided for update")
	}
	err := r.db.Model(&models.Plan{}).Where("id = ?", plan.ID).Updates(map[string]interface{}{
		"name":          plan.Name,
		"description":   plan.Description,
		"plan_duration": plan.PlanDuration,
		"plan_cost":     plan.PlanCost,
		"image":         plan.Image,
	}).Error
	if err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to update plan ID %d: %v", plan.ID, err)
		return fmt.Errorf("failed to update plan ID %d: %w", plan.ID, err)
	}
	log.Printf("INFO: [PlanRepository] Successfully updated plan ID %d.", plan.ID)
	return nil
}

// DeletePlan removes a plan and its entire Day/Meal tree in one transaction.
// The cascade is issued explicitly rather than relying on store-level foreign
// key enforcement, which sqlite does not apply by default.
func (r *planRepository) DeletePlan(planID uint) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		dayIDs := tx.Model(&models.Day{}).Select("id").Where("plan_id = ?", planID)
		if err := tx.Where("day_id IN (?)", dayIDs).Delete(&models.Meal{}).Error; err != nil {
			return err
		}
		if err := tx.Where("plan_id = ?", planID).Delete(&models.Day{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Plan{}, planID).Error
	})
	if err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to delete plan ID %d: %v", planID, err)
		return fmt.Errorf("failed to delete plan ID %d: %w", planID, err)
	}
	log.Printf("INFO: [PlanRepository] Successfully deleted plan ID %d with its days and meals.", planID)
	return nil
}

// CreateDay creates a day row belonging to a plan.
func (r *planRepository) CreateDay(day *models.Day) error {
	if day == nil {
		log.Printf("ERROR: [PlanRepository] CreateDay: day cannot be nil")
		return errors.New("day cannot be nil")
	}
	if day.PlanID == 0 {
		log.Printf("ERROR: [PlanRepository] CreateDay: day must be associated with a PlanID (PlanID is 0)")
		return errors.New("day must be associated with a PlanID")
	}
	if err := r.db.Create(day).Error; err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to create day %d for plan ID %d: %v", day.ForDay, day.PlanID, err)
		return fmt.Errorf("failed to create day %d for plan ID %d: %w", day.ForDay, day.PlanID, err)
	}
	return nil
}

// CreateMeal creates a meal row belonging to a day.
func (r *planRepository) CreateMeal(meal *models.Meal) error {
	if meal == nil {
		log.Printf("ERROR: [PlanRepository] CreateMeal: meal cannot be nil")
		return errors.New("meal cannot be nil")
	}
	if meal.DayID == 0 {
		log.Printf("ERROR: [PlanRepository] CreateMeal: meal must be associated with a DayID (DayID is 0)")
		return errors.New("meal must be associated with a DayID")
	}
	if err := r.db.Create(meal).Error; err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to create meal (category %d) for day ID %d: %v", meal.MealCategoryID, meal.DayID, err)
		return fmt.Errorf("failed to create meal for day ID %d: %w", meal.DayID, err)
	}
	return nil
}

// UpdateMeal overwrites a meal's recipe assignment.
func (r *planRepository) UpdateMeal(meal *models.Meal) error {
	if meal == nil {
		log.Printf("ERROR: [PlanRepository] UpdateMeal: meal cannot be nil")
		return errors.New("meal cannot be nil")
	}
	if meal.ID == 0 {
		log.Printf("ERROR: [PlanRepository] UpdateMeal: meal ID must be provided for update")
		return errors.New("meal ID must be provided for update")
	}
	err := r.db.Model(&models.Meal{}).Where("id = ?", meal.ID).Update("recipe_id", meal.RecipeID).Error
	if err != nil {
		log.Printf("ERROR: [PlanRepository] Failed to update meal ID %d: %v", meal.ID, err)
		return fmt.Errorf("failed to update meal ID %d: %w", meal.ID, err)
	}
	return nil
}
