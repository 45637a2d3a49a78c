package services

import (
	"fmt"
	"testing"

	"github.com/tilakWebkorps/Healthy-meal/database"
	"github.com/tilakWebkorps/Healthy-meal/models"
	"github.com/tilakWebkorps/Healthy-meal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// scheduleTestEnv wires a ScheduleService against an isolated in-memory
// database with the fixed categories and a small recipe catalog seeded.
type scheduleTestEnv struct {
	db       *gorm.DB
	planRepo repository.PlanRepository
	service  ScheduleService
}

func newScheduleTestEnv(t *testing.T) *scheduleTestEnv {
	t.Helper()
	db, err := database.InitInMemory()
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	for i := uint(101); i <= 110; i++ {
		recipe := models.Recipe{ID: i, Name: fmt.Sprintf("recipe-%d", i)}
		require.NoError(t, db.Create(&recipe).Error)
	}

	planRepo := repository.NewPlanRepository(db)
	recipeRepo := repository.NewRecipeRepository(db)
	return &scheduleTestEnv{
		db:       db,
		planRepo: planRepo,
		service:  NewScheduleService(planRepo, recipeRepo),
	}
}

// fullSchedule builds a schedule of `days` days with all five slots filled by
// the same recipe.
func fullSchedule(days int, recipeID uint) []models.DayMeals {
	schedule := make([]models.DayMeals, 0, days)
	for i := 0; i < days; i++ {
		day := models.DayMeals{}
		for _, category := range models.MealCategoryNames {
			day[category] = recipeID
		}
		schedule = append(schedule, day)
	}
	return schedule
}

func validPayload(days int, recipeID uint) models.PlanPayload {
	return models.PlanPayload{
		Name:         "keto starter",
		Description:  "low carb plan",
		PlanDuration: days,
		PlanCost:     1500,
		PlanMeals:    fullSchedule(days, recipeID),
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(model).Count(&count).Error)
	return count
}

func TestScheduleService_ValidateSchedule(t *testing.T) {
	env := newScheduleTestEnv(t)

	t.Run("Accepts a well-formed schedule", func(t *testing.T) {
		fieldErrors := env.service.ValidateSchedule(1500, 7, fullSchedule(7, 101))
		assert.False(t, fieldErrors.Any())
	})

	t.Run("Rejects cost below the minimum", func(t *testing.T) {
		fieldErrors := env.service.ValidateSchedule(999, 7, fullSchedule(7, 101))
		assert.Equal(t, "cost of the plan must be larger than 1000", fieldErrors["plan_cost"])
	})

	t.Run("Rejects a duration outside 7, 14, 21", func(t *testing.T) {
		for _, duration := range []int{0, 5, 10, 28} {
			fieldErrors := env.service.ValidateSchedule(1500, duration, fullSchedule(duration, 101))
			assert.Equal(t, "duration must be 7, 14 or 21", fieldErrors["plan_duration"], "duration %d", duration)
		}
	})

	t.Run("Rejects a day count that does not match the duration", func(t *testing.T) {
		fieldErrors := env.service.ValidateSchedule(1500, 7, fullSchedule(6, 101))
		assert.Equal(t, "please enter all day's schedules", fieldErrors["plan_meals"])
	})

	t.Run("Collects every violation instead of failing fast", func(t *testing.T) {
		fieldErrors := env.service.ValidateSchedule(500, 9, fullSchedule(3, 101))
		assert.Len(t, fieldErrors, 3)
		assert.Contains(t, fieldErrors, "plan_cost")
		assert.Contains(t, fieldErrors, "plan_duration")
		assert.Contains(t, fieldErrors, "plan_meals")
	})

	t.Run("Zero duration with empty schedule still fails on duration", func(t *testing.T) {
		fieldErrors := env.service.ValidateSchedule(1500, 0, nil)
		assert.Equal(t, "duration must be 7, 14 or 21", fieldErrors["plan_duration"])
		assert.NotContains(t, fieldErrors, "plan_meals")
	})
}

func TestScheduleService_CreatePlan(t *testing.T) {
	t.Run("Builds the complete Day and Meal tree", func(t *testing.T) {
		env := newScheduleTestEnv(t)

		plan, fieldErrors, err := env.service.CreatePlan(validPayload(7, 101))
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())
		require.NotNil(t, plan)
		assert.NotZero(t, plan.ID)

		stored, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		require.NotNil(t, stored)
		require.Len(t, stored.Days, 7)
		for i, day := range stored.Days {
			assert.Equal(t, i+1, day.ForDay)
			require.Len(t, day.Meals, 5)
			for slot, meal := range day.Meals {
				assert.Equal(t, uint(slot+1), meal.MealCategoryID)
				assert.Equal(t, uint(101), meal.RecipeID)
			}
		}
	})

	t.Run("Slot assignment comes from the category name, not entry order", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		payload := validPayload(7, 101)
		payload.PlanMeals[0]["dinner"] = 105

		plan, fieldErrors, err := env.service.CreatePlan(payload)
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())

		stored, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		dinner := stored.Days[0].Meals[3]
		assert.Equal(t, models.MealCategoryIDs["dinner"], dinner.MealCategoryID)
		assert.Equal(t, uint(105), dinner.RecipeID)
	})

	t.Run("A day may carry fewer than five meals", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		payload := validPayload(7, 101)
		payload.PlanMeals[2] = models.DayMeals{"lunch": 102, "dinner": 103}

		plan, fieldErrors, err := env.service.CreatePlan(payload)
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())

		stored, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		assert.Len(t, stored.Days[2].Meals, 2)
	})

	t.Run("Unknown recipe is plan-fatal and leaves no rows behind", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		payload := validPayload(7, 101)
		payload.PlanMeals[4]["lunch"] = 9999

		plan, fieldErrors, err := env.service.CreatePlan(payload)
		require.NoError(t, err)
		assert.Nil(t, plan)
		assert.Equal(t, "the recipe that you give is not found first create it", fieldErrors["recipe"])

		assert.Zero(t, countRows(t, env.db, &models.Plan{}))
		assert.Zero(t, countRows(t, env.db, &models.Day{}))
		assert.Zero(t, countRows(t, env.db, &models.Meal{}))
	})

	t.Run("Unrecognized category name is plan-fatal", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		payload := validPayload(7, 101)
		payload.PlanMeals[0]["midnight_snacks"] = 101

		plan, fieldErrors, err := env.service.CreatePlan(payload)
		require.NoError(t, err)
		assert.Nil(t, plan)
		assert.Equal(t, "please enter all meal schedule corretly", fieldErrors["meal"])

		assert.Zero(t, countRows(t, env.db, &models.Plan{}))
		assert.Zero(t, countRows(t, env.db, &models.Day{}))
	})

	t.Run("Validation failure persists nothing", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		payload := validPayload(7, 101)
		payload.PlanCost = 500

		plan, fieldErrors, err := env.service.CreatePlan(payload)
		require.NoError(t, err)
		assert.Nil(t, plan)
		assert.True(t, fieldErrors.Any())
		assert.Zero(t, countRows(t, env.db, &models.Plan{}))
	})
}

func TestScheduleService_UpdatePlan(t *testing.T) {
	createPlan := func(t *testing.T, env *scheduleTestEnv) *models.Plan {
		t.Helper()
		plan, fieldErrors, err := env.service.CreatePlan(validPayload(7, 101))
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())
		stored, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		return stored
	}

	t.Run("Overwrites a single targeted meal and nothing else", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		plan := createPlan(t, env)

		payload := validPayload(7, 101)
		payload.PlanMeals[0]["morning_snacks"] = 107

		fieldErrors, err := env.service.UpdatePlan(plan, payload)
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())

		updated, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		changed := 0
		for _, day := range updated.Days {
			for _, meal := range day.Meals {
				if meal.RecipeID != 101 {
					changed++
					assert.Equal(t, 1, day.ForDay)
					assert.Equal(t, models.MealCategoryIDs["morning_snacks"], meal.MealCategoryID)
					assert.Equal(t, uint(107), meal.RecipeID)
				}
			}
		}
		assert.Equal(t, 1, changed)
	})

	t.Run("Updates plan scalar fields alongside the schedule", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		plan := createPlan(t, env)

		payload := validPayload(7, 102)
		payload.Name = "keto advanced"
		payload.PlanCost = 2500

		fieldErrors, err := env.service.UpdatePlan(plan, payload)
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())

		updated, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		assert.Equal(t, "keto advanced", updated.Name)
		assert.Equal(t, 2500, updated.PlanCost)
		assert.Equal(t, uint(102), updated.Days[6].Meals[4].RecipeID)
	})

	t.Run("Rejects an update referencing an unknown recipe, atomically", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		plan := createPlan(t, env)

		payload := validPayload(7, 101)
		payload.PlanMeals[0]["lunch"] = 106 // would change if not rolled back
		payload.PlanMeals[6]["dinner"] = 9999

		fieldErrors, err := env.service.UpdatePlan(plan, payload)
		require.NoError(t, err)
		assert.Equal(t, "the recipe that you give is not found first create it", fieldErrors["recipe"])

		unchanged, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		for _, day := range unchanged.Days {
			for _, meal := range day.Meals {
				assert.Equal(t, uint(101), meal.RecipeID)
			}
		}
	})

	t.Run("Rejects a payload naming a slot the stored day does not have", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		payload := validPayload(7, 101)
		payload.PlanMeals[3] = models.DayMeals{"lunch": 101} // day 4 stored with one slot
		plan, fieldErrors, err := env.service.CreatePlan(payload)
		require.NoError(t, err)
		require.False(t, fieldErrors.Any())
		stored, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)

		update := validPayload(7, 102) // day 4 now submits all five slots
		fieldErrors, err = env.service.UpdatePlan(stored, update)
		require.NoError(t, err)
		assert.Equal(t, "please enter all meal schedule corretly", fieldErrors["meal"])

		unchanged, err := env.planRepo.GetPlanByID(plan.ID)
		require.NoError(t, err)
		assert.Equal(t, uint(101), unchanged.Days[0].Meals[0].RecipeID)
	})

	t.Run("Rejects an update whose payload fails basic validation", func(t *testing.T) {
		env := newScheduleTestEnv(t)
		plan := createPlan(t, env)

		payload := validPayload(7, 101)
		payload.PlanDuration = 10

		fieldErrors, err := env.service.UpdatePlan(plan, payload)
		require.NoError(t, err)
		assert.Contains(t, fieldErrors, "plan_duration")
	})
}

func TestPlanDeletionRemovesWholeTree(t *testing.T) {
	env := newScheduleTestEnv(t)

	kept, fieldErrors, err := env.service.CreatePlan(validPayload(7, 101))
	require.NoError(t, err)
	require.False(t, fieldErrors.Any())
	doomed, fieldErrors, err := env.service.CreatePlan(validPayload(14, 102))
	require.NoError(t, err)
	require.False(t, fieldErrors.Any())

	require.NoError(t, env.planRepo.DeletePlan(doomed.ID))

	assert.Equal(t, int64(1), countRows(t, env.db, &models.Plan{}))
	assert.Equal(t, int64(7), countRows(t, env.db, &models.Day{}))
	assert.Equal(t, int64(35), countRows(t, env.db, &models.Meal{}))

	remaining, err := env.planRepo.GetPlanByID(kept.ID)
	require.NoError(t, err)
	require.NotNil(t, remaining)
	assert.Len(t, remaining.Days, 7)
}
