package models

import (
	"time"
)

// DayMeals is one day's worth of the submitted schedule: a mapping from meal
// category name (see MealCategoryIDs) to the recipe id filling that slot.
type DayMeals map[string]uint

// PlanPayload is the client-submitted body for plan create and update.
type PlanPayload struct {
	Name         string     `json:"name"`
	Description  string     `json:"description"`
	PlanDuration int        `json:"plan_duration"`
	PlanCost     int        `json:"plan_cost"`
	Image        string     `json:"image"`
	PlanMeals    []DayMeals `json:"plan_meals"`
}

// PlanRequest wraps the payload under the "plan" key, matching the wire format.
type PlanRequest struct {
	Plan PlanPayload `json:"plan" binding:"required"`
}

// LoginRequest carries the session credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// PlanView is the full read representation of a plan, including the per-day
// schedule resolved to category and recipe display names.
type PlanView struct {
	ID           uint                `json:"id"`
	Name         string              `json:"name"`
	Description  string              `json:"description"`
	PlanDuration int                 `json:"plan_duration"`
	PlanCost     int                 `json:"plan_cost"`
	ViewURL      string              `json:"view_url"`
	PlanMeal     []map[string]string `json:"plan_meal"` // one entry per day, in for_day order
	CreatedAt    time.Time           `json:"created_at"`
	UpdatedAt    time.Time           `json:"updated_at"`
}

// PlanSummaryView is the scalar-only projection used by the list endpoint.
// It intentionally omits the nested schedule.
type PlanSummaryView struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Description  string    `json:"description"`
	PlanDuration int       `json:"plan_duration"`
	PlanCost     int       `json:"plan_cost"`
	ViewURL      string    `json:"view_url"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Bill is the purchase confirmation summary returned to the buyer.
type Bill struct {
	PlanName        string `json:"plan_name"`
	PlanDescription string `json:"plan_description"`
	PlanCost        int    `json:"plan_cost"`
	PlanDuration    int    `json:"plan_duration"`
	ExpiryDate      string `json:"expiry_date"` // D/M/YYYY, no zero-padding
}
