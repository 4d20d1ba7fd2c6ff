package course

import "gorm.io/gorm"

// Lesson is a single unit of content within a chapter
type Lesson struct {
	gorm.Model
	ChapterID       uint   `json:"chapter_id" gorm:"index;not null"`
	CourseID        uint   `json:"course_id" gorm:"index;not null"` // denormalized for course-wide queries
	Title           string `json:"title"`
	Description     string `json:"description"`
	ContentType     string `json:"content_type" gorm:"default:'TEXT'"` // TEXT, VIDEO
	TextContent     string `json:"text_content" gorm:"type:text"`
	VideoURL        string `json:"video_url"`
	DurationSeconds int    `json:"duration_seconds" gorm:"default:0"`
	Position        int    `json:"position" gorm:"default:0"` // Lesson order within chapter
	IsDeleted       bool   `gorm:"default:false"`
}

// Attachment is a downloadable file attached to a lesson
type Attachment struct {
	gorm.Model
	LessonID  uint   `json:"lesson_id" gorm:"index;not null"`
	Name      string `json:"name"`
	FileURL   string `json:"file_url"`
	IsDeleted bool   `gorm:"default:false"`
}
