package models

import (
	"time"
)

// User is the account entity consumed and partially mutated by the purchase
// engine. ActivePlan, PurchasedDurationDays and ExpiryDate are owned by this
// core; the credential fields belong to the session layer.
type User struct {
	ID                    uint      `gorm:"primarykey" json:"id"`
	Email                 string    `gorm:"uniqueIndex;not null" json:"email"`
	PasswordDigest        string    `gorm:"not null" json:"-"`
	ActivePlan            bool      `gorm:"default:false" json:"active_plan"`
	PurchasedDurationDays int       `gorm:"default:0" json:"purchased_duration_days"`
	ExpiryDate            time.Time `json:"expiry_date"`
	CreatedAt             time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt             time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}

// ActivePlanRecord links a user to the plan they purchased. A user has at most
// one of these at a time; the purchase engine enforces that, not the store.
type ActivePlanRecord struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	PlanID    uint      `gorm:"index;not null" json:"plan_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// TableName specifies the table name for the ActivePlanRecord model.
func (ActivePlanRecord) TableName() string {
	return "active_plans"
}
