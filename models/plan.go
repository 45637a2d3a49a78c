package models

import (
	"time"
)

// ValidPlanDurations are the only plan lengths (in days) that can be sold.
var ValidPlanDurations = []int{7, 14, 21}

// MinimumPlanCost is the lowest price a plan may be created with.
const MinimumPlanCost = 1000

// Plan represents a purchasable, fixed-duration meal schedule product.
// A Plan owns its Days exclusively; deleting a Plan cascades to Days and their Meals.
type Plan struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Name         string    `gorm:"not null" json:"name"`
	Description  string    `gorm:"type:text" json:"description"`
	PlanDuration int       `gorm:"not null" json:"plan_duration"` // days; one of ValidPlanDurations
	PlanCost     int       `gorm:"not null" json:"plan_cost"`
	Image        string    `json:"image"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
	Days         []Day     `gorm:"foreignKey:PlanID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for the Plan model.
func (Plan) TableName() string {
	return "plans"
}

// Day is one position (1..PlanDuration) within a Plan's schedule.
type Day struct {
	ID     uint   `gorm:"primarykey" json:"id"`
	ForDay int    `gorm:"not null" json:"for_day"` // 1-based position within the plan
	PlanID uint   `gorm:"index;not null" json:"plan_id"`
	Meals  []Meal `gorm:"foreignKey:DayID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for the Day model.
func (Day) TableName() string {
	return "days"
}

// Meal assigns a recipe to one category slot within a Day.
type Meal struct {
	ID             uint         `gorm:"primarykey" json:"id"`
	DayID          uint         `gorm:"index;not null" json:"day_id"`
	MealCategoryID uint         `gorm:"not null" json:"meal_category_id"`
	RecipeID       uint         `gorm:"not null" json:"recipe_id"`
	MealCategory   MealCategory `gorm:"foreignKey:MealCategoryID" json:"-"`
	Recipe         Recipe       `gorm:"foreignKey:RecipeID" json:"-"`
}

// TableName specifies the table name for the Meal model.
func (Meal) TableName() string {
	return "meals"
}

// MealCategory is one of the five fixed slot types of a day.
type MealCategory struct {
	ID   uint   `gorm:"primarykey" json:"id"`
	Name string `gorm:"uniqueIndex;not null" json:"name"`
}

// TableName specifies the table name for the MealCategory model.
func (MealCategory) TableName() string {
	return "meal_categories"
}

// MealCategoryIDs maps each recognized category name to its fixed identifier.
// The schedule payload keys every meal entry by one of these names; the slot a
// meal lands in is derived from this mapping, never from submission order.
var MealCategoryIDs = map[string]uint{
	"morning_snacks":   1,
	"lunch":            2,
	"afternoon_snacks": 3,
	"dinner":           4,
	"hydration":        5,
}

// MealCategoryNames lists the category names in slot order (ID 1..5).
var MealCategoryNames = []string{
	"morning_snacks",
	"lunch",
	"afternoon_snacks",
	"dinner",
	"hydration",
}

// Recipe is an entry of the externally-owned recipe catalog. The plan core
// only reads recipes; it never creates or mutates them.
type Recipe struct {
	ID          uint   `gorm:"primarykey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `gorm:"type:text" json:"description"`
}

// TableName specifies the table name for the Recipe model.
func (Recipe) TableName() string {
	return "recipes"
}
