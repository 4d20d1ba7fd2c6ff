package course

import (
	"time"

	"gorm.io/gorm"
)

// LessonProgress is the per-(user, lesson) completion fact. The composite
// unique index makes completion writes idempotent; content rows are never
// mutated with per-user state.
type LessonProgress struct {
	gorm.Model
	UserID           uint       `json:"user_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	LessonID         uint       `json:"lesson_id" gorm:"not null;uniqueIndex:idx_user_lesson"`
	CourseID         uint       `json:"course_id" gorm:"index;not null"`
	Completed        bool       `json:"completed" gorm:"default:false"`
	CompletedAt      *time.Time `json:"completed_at"`
	WatchTimeSeconds int        `json:"watch_time_seconds" gorm:"default:0"`
	IsDeleted        bool       `gorm:"default:false"`
}
