package services

import (
	"fmt"

	"github.com/tilakWebkorps/Healthy-meal/models"
)

// Presenter formats plans into their external read representations. It is
// read-only and expects plans with the full schedule tree preloaded (days in
// for_day order, meals with their category and recipe rows resolved).
type Presenter struct {
	baseURL string
}

// NewPresenter creates a Presenter that builds view links under baseURL.
func NewPresenter(baseURL string) *Presenter {
	return &Presenter{baseURL: baseURL}
}

// PresentPlan builds the full view of a plan, including one category-name to
// recipe-name mapping per day.
func (p *Presenter) PresentPlan(plan *models.Plan) models.PlanView {
	planMeal := make([]map[string]string, 0, len(plan.Days))
	for _, day := range plan.Days {
		dayView := make(map[string]string, len(day.Meals))
		for _, meal := range day.Meals {
			dayView[meal.MealCategory.Name] = meal.Recipe.Name
		}
		planMeal = append(planMeal, dayView)
	}
	return models.PlanView{
		ID:           plan.ID,
		Name:         plan.Name,
		Description:  plan.Description,
		PlanDuration: plan.PlanDuration,
		PlanCost:     plan.PlanCost,
		ViewURL:      p.planURL(plan.ID),
		PlanMeal:     planMeal,
		CreatedAt:    plan.CreatedAt,
		UpdatedAt:    plan.UpdatedAt,
	}
}

// PresentPlans builds the scalar-only summary views used by the list endpoint.
func (p *Presenter) PresentPlans(plans []*models.Plan) []models.PlanSummaryView {
	views := make([]models.PlanSummaryView, 0, len(plans))
	for _, plan := range plans {
		views = append(views, models.PlanSummaryView{
			ID:           plan.ID,
			Name:         plan.Name,
			Description:  plan.Description,
			PlanDuration: plan.PlanDuration,
			PlanCost:     plan.PlanCost,
			ViewURL:      p.planURL(plan.ID),
			CreatedAt:    plan.CreatedAt,
			UpdatedAt:    plan.UpdatedAt,
		})
	}
	return views
}

func (p *Presenter) planURL(planID uint) string {
	return fmt.Sprintf("%s/plans/%d", p.baseURL, planID)
}
