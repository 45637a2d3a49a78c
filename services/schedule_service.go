package services

import (
	"errors"
	"fmt"
	"log"

	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/repository"
)

// FieldErrors maps an input field tag (plan_cost, plan_duration, plan_meals,
// recipe, meal) to a human-readable reason. Validation collects every
// violation; construction stops at the first.
type FieldErrors map[string]string

// Any reports whether at least one field error was recorded.
func (e FieldErrors) Any() bool {
	return len(e) > 0
}

const (
	msgPlanCost     = "cost of the plan must be larger than 1000"
	msgPlanDuration = "duration must be 7, 14 or 21"
	msgPlanMeals    = "please enter all day's schedules"
	msgRecipe       = "the recipe that you give is not found first create it"
	msgMeal         = "please enter all meal schedule corretly"
)

// errConstruction signals a schedule construction failure inside a
// transaction so the whole plan tree is rolled back. The field-level detail
// travels in the FieldErrors value alongside it.
var errConstruction = errors.New("schedule construction failed")

// ScheduleService owns the plan-schedule business rules: payload validation,
// schedule construction for new plans and schedule reconciliation for updates.
type ScheduleService interface {
	ValidateSchedule(cost int, duration int, meals []models.DayMeals) FieldErrors
	CreatePlan(payload models.PlanPayload) (*models.Plan, FieldErrors, error)
	UpdatePlan(plan *models.Plan, payload models.PlanPayload) (FieldErrors, error)
}

type scheduleService struct {
	planRepo   repository.PlanRepository
	recipeRepo repository.RecipeRepository
}

// NewScheduleService creates a new instance of ScheduleService.
func NewScheduleService(planRepo repository.PlanRepository, recipeRepo repository.RecipeRepository) ScheduleService {
	return &scheduleService{
		planRepo:   planRepo,
		recipeRepo: recipeRepo,
	}
}

// ValidateSchedule checks the submitted cost, duration and day count against
// the business rules. All violations are collected; nothing is persisted.
// Category names and recipe existence are deliberately left to construction,
// which walks the schedule day by day.
func (s *scheduleService) ValidateSchedule(cost int, duration int, meals []models.DayMeals) FieldErrors {
	fieldErrors := FieldErrors{}
	if cost < models.MinimumPlanCost {
		fieldErrors["plan_cost"] = msgPlanCost
	}
	validDuration := false
	for _, d := range models.ValidPlanDurations {
		if duration == d {
			validDuration = true
			break
		}
	}
	if !validDuration {
		fieldErrors["plan_duration"] = msgPlanDuration
	}
	if len(meals) != duration {
		fieldErrors["plan_meals"] = msgPlanMeals
	}
	return fieldErrors
}

// CreatePlan validates the payload and, when well-formed, builds the full
// Plan/Day/Meal tree inside one transaction. A construction failure (unknown
// category name, missing recipe) is plan-fatal: the transaction rolls back and
// no part of the plan survives. The returned FieldErrors is non-empty exactly
// when the caller should report a 406; a non-nil error means the store failed.
func (s *scheduleService) CreatePlan(payload models.PlanPayload) (*models.Plan, FieldErrors, error) {
	fieldErrors := s.ValidateSchedule(payload.PlanCost, payload.PlanDuration, payload.PlanMeals)
	if fieldErrors.Any() {
		log.Printf("WARN: [ScheduleService] Plan payload rejected by validation: %v", fieldErrors)
		return nil, fieldErrors, nil
	}

	plan := &models.Plan{
		Name:         payload.Name,
		Description:  payload.Description,
		PlanDuration: payload.PlanDuration,
		PlanCost:     payload.PlanCost,
		Image:        payload.Image,
	}

	err := s.planRepo.Transaction(func(tx repository.PlanRepository) error {
		if err := tx.CreatePlan(plan); err != nil {
			return err
		}
		return s.buildDays(tx, plan.ID, payload.PlanMeals, fieldErrors)
	})
	if err != nil {
		if errors.Is(err, errConstruction) {
			log.Printf("WARN: [ScheduleService] Schedule construction failed, plan rolled back: %v", fieldErrors)
			return nil, fieldErrors, nil
		}
		errMsg := fmt.Sprintf("failed to build schedule for plan '%s'", payload.Name)
		log.Printf("ERROR: [ScheduleService] %s: %v", errMsg, err)
		return nil, nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	log.Printf("INFO: [ScheduleService] Successfully created plan ID %d with %d days.", plan.ID, payload.PlanDuration)
	return plan, nil, nil
}

// buildDays creates one Day per schedule entry, for_day assigned sequentially
// from 1, and fills each day's meal slots. Slot assignment comes from the
// explicit category name on each entry, never from map iteration order; a day
// carrying fewer than five entries simply gets fewer meals.
func (s *scheduleService) buildDays(tx repository.PlanRepository, planID uint, meals []models.DayMeals, fieldErrors FieldErrors) error {
	for i, dayMeals := range meals {
		day := &models.Day{ForDay: i + 1, PlanID: planID}
		if err := tx.CreateDay(day); err != nil {
			return err
		}
		for _, category := range models.MealCategoryNames {
			recipeID, ok := dayMeals[category]
			if !ok {
				continue
			}
			exists, err := s.recipeRepo.Exists(recipeID)
			if err != nil {
				return err
			}
			if !exists {
				fieldErrors["recipe"] = msgRecipe
				return errConstruction
			}
			meal := &models.Meal{
				DayID:          day.ID,
				MealCategoryID: models.MealCategoryIDs[category],
				RecipeID:       recipeID,
			}
			if err := tx.CreateMeal(meal); err != nil {
				return err
			}
		}
		if unknown := unknownCategory(dayMeals); unknown != "" {
			log.Printf("WARN: [ScheduleService] Unrecognized meal category '%s' on day %d.", unknown, i+1)
			fieldErrors["meal"] = msgMeal
			return errConstruction
		}
	}
	return nil
}

// unknownCategory returns the first submitted key that is not a recognized
// meal category, or "" when every key is valid.
func unknownCategory(dayMeals models.DayMeals) string {
	for key := range dayMeals {
		if _, ok := models.MealCategoryIDs[key]; !ok {
			return key
		}
	}
	return ""
}

// UpdatePlan replaces an existing plan's schedule. The stored shape is
// immutable on update: days are matched in for_day order against the submitted
// sequence and each submitted entry must name a category slot the stored day
// already has. The update validates with the same strength as create (category
// names, recipe existence) and rejects shape-mismatched payloads instead of
// silently dropping data; on success only the targeted recipe assignments and
// the plan's scalar fields change, atomically.
func (s *scheduleService) UpdatePlan(plan *models.Plan, payload models.PlanPayload) (FieldErrors, error) {
	fieldErrors := s.ValidateSchedule(payload.PlanCost, payload.PlanDuration, payload.PlanMeals)
	if fieldErrors.Any() {
		log.Printf("WARN: [ScheduleService] Plan update payload rejected by validation: %v", fieldErrors)
		return fieldErrors, nil
	}
	if len(payload.PlanMeals) != len(plan.Days) {
		// Duration cannot change without resubmitting a matching schedule.
		fieldErrors["plan_meals"] = msgPlanMeals
		return fieldErrors, nil
	}

	err := s.planRepo.Transaction(func(tx repository.PlanRepository) error {
		for i := range plan.Days {
			day := &plan.Days[i]
			for _, category := range models.MealCategoryNames {
				recipeID, ok := payload.PlanMeals[i][category]
				if !ok {
					continue
				}
				exists, err := s.recipeRepo.Exists(recipeID)
				if err != nil {
					return err
				}
				if !exists {
					fieldErrors["recipe"] = msgRecipe
					return errConstruction
				}
				meal := findMealByCategory(day.Meals, models.MealCategoryIDs[category])
				if meal == nil {
					log.Printf("WARN: [ScheduleService] Day %d of plan ID %d has no '%s' slot, rejecting shape change.", day.ForDay, plan.ID, category)
					fieldErrors["meal"] = msgMeal
					return errConstruction
				}
				meal.RecipeID = recipeID
				if err := tx.UpdateMeal(meal); err != nil {
					return err
				}
			}
			if unknown := unknownCategory(payload.PlanMeals[i]); unknown != "" {
				log.Printf("WARN: [ScheduleService] Unrecognized meal category '%s' on day %d of plan ID %d.", unknown, day.ForDay, plan.ID)
				fieldErrors["meal"] = msgMeal
				return errConstruction
			}
		}

		plan.Name = payload.Name
		plan.Description = payload.Description
		plan.PlanDuration = payload.PlanDuration
		plan.PlanCost = payload.PlanCost
		plan.Image = payload.Image
		return tx.UpdatePlan(plan)
	})
	if err != nil {
		if errors.Is(err, errConstruction) {
			log.Printf("WARN: [ScheduleService] Schedule update failed, changes rolled back: %v", fieldErrors)
			return fieldErrors, nil
		}
		errMsg := fmt.Sprintf("failed to update schedule for plan ID %d", plan.ID)
		log.Printf("ERROR: [ScheduleService] %s: %v", errMsg, err)
		return nil, fmt.Errorf("%s: %w", errMsg, err)
	}

	log.Printf("INFO: [ScheduleService] Successfully updated plan ID %d.", plan.ID)
	return nil, nil
}

// findMealByCategory returns the meal occupying the given category slot, or
// nil when the day has no such slot.
func findMealByCategory(meals []models.Meal, categoryID uint) *models.Meal {
	for i := range meals {
		if meals[i].MealCategoryID == categoryID {
			return &meals[i]
		}
	}
	return nil
}
