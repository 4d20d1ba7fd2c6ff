package course

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Quiz belongs to at most one lesson. A lesson with a quiz only completes
// when an attempt scores at or above PassingScore.
type Quiz struct {
	gorm.Model
	LessonID     uint   `json:"lesson_id" gorm:"uniqueIndex;not null"`
	Title        string `json:"title"`
	PassingScore int    `json:"passing_score" gorm:"default:70"` // percentage 0-100
	IsDeleted    bool   `gorm:"default:false"`
}

// Question is a single question within a quiz
type Question struct {
	gorm.Model
	QuizID    uint   `json:"quiz_id" gorm:"index;not null"`
	Prompt    string `json:"prompt"`
	Position  int    `json:"position" gorm:"default:0"`
	IsDeleted bool   `gorm:"default:false"`
}

// Answer is one selectable option for a question
type Answer struct {
	gorm.Model
	QuestionID uint   `json:"question_id" gorm:"index;not null"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"is_correct" gorm:"default:false"`
	Position   int    `json:"position" gorm:"default:0"`
	IsDeleted  bool   `gorm:"default:false"`
}

// QuizAttempt records a student's scored attempt at a quiz
type QuizAttempt struct {
	gorm.Model
	UserID        uint           `json:"user_id" gorm:"index;not null"`
	QuizID        uint           `json:"quiz_id" gorm:"index;not null"`
	LessonID      uint           `json:"lesson_id" gorm:"index;not null"`
	Selections    datatypes.JSON `json:"selections"` // questionID -> selected answerID
	Score         int            `json:"score"`      // percentage 0-100
	Passed        bool           `json:"passed" gorm:"default:false"`
	AttemptNumber int            `json:"attempt_number" gorm:"default:1"`
	IsDeleted     bool           `gorm:"default:false"`
}
