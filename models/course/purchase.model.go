package course

import (
	"time"

	"gorm.io/gorm"
)

// Purchase states
const (
	PurchasePending   = "PENDING"
	PurchaseCompleted = "COMPLETED"
	PurchaseExpired   = "EXPIRED"
)

// Purchase grants a user access to a course. Free enrollments are recorded
// as completed purchases with a zero amount so entitlement checks stay uniform.
type Purchase struct {
	gorm.Model
	UserID            uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_course"`
	CourseID          uint       `json:"course_id" gorm:"not null;uniqueIndex:idx_user_course"`
	Reference         string     `json:"reference" gorm:"unique;not null"` // receipt number shown to the user
	Status            string     `json:"status" gorm:"default:'PENDING'"`  // PENDING, COMPLETED, EXPIRED
	AmountCents       int64      `json:"amount_cents" gorm:"default:0"`
	CheckoutSessionID string     `json:"checkout_session_id" gorm:"index"`
	CompletedAt       *time.Time `json:"completed_at"`
	IsDeleted         bool       `gorm:"default:false"`
}
