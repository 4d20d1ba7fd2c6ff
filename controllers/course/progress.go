package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"

	"github.com/gofiber/fiber/v2"
)

// ChapterProgress is the per-chapter completion breakdown
type ChapterProgress struct {
	ChapterID        uint   `json:"chapter_id"`
	ChapterTitle     string `json:"chapter_title"`
	TotalLessons     int    `json:"total_lessons"`
	CompletedLessons int    `json:"completed_lessons"`
	Percentage       int    `json:"percentage"`
}

// GetCourseProgress returns the course summary plus a per-chapter breakdown
func GetCourseProgress(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?",
		courseID, false, courseModels.StatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	if !hasCourseAccess(db, userID, course.ID) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please purchase or enroll in this course first!", nil)
	}

	summary, err := courseSummary(db, userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	completed, err := completedLessonSet(db, userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	var chapters []courseModels.Chapter
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&chapters)

	var lessons []courseModels.Lesson
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Find(&lessons)

	totalByChapter := make(map[uint]int)
	doneByChapter := make(map[uint]int)
	for _, l := range lessons {
		totalByChapter[l.ChapterID]++
		if completed[l.ID] {
			doneByChapter[l.ChapterID]++
		}
	}

	breakdown := make([]ChapterProgress, len(chapters))
	for i, ch := range chapters {
		chSummary := progression.Summarize(totalByChapter[ch.ID], doneByChapter[ch.ID], 0)
		breakdown[i] = ChapterProgress{
			ChapterID:        ch.ID,
			ChapterTitle:     ch.Title,
			TotalLessons:     chSummary.TotalLessons,
			CompletedLessons: chSummary.CompletedLessons,
			Percentage:       chSummary.CompletionPercentage,
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", fiber.Map{
		"summary":          summary,
		"chapter_progress": breakdown,
	})
}
