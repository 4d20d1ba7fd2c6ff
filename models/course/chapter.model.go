package course

import "gorm.io/gorm"

// Chapter is an ordered section within a course. Chapters group lessons for
// display only; lesson gating runs over the course-wide lesson sequence.
type Chapter struct {
	gorm.Model
	CourseID    uint   `json:"course_id" gorm:"index;not null"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Position    int    `json:"position" gorm:"default:0"` // Chapter order in course
	IsDeleted   bool   `gorm:"default:false"`
}
