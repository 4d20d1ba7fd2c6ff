package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// GetLesson returns lesson content with attachments and quiz questions
// (answer correctness stripped). Locked lessons return 403 with the lock
// reason so the client can point at the required lesson.
func GetLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?",
		courseID, false, courseModels.StatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	access, err := resolveLessonAccess(db, userID, course.ID, lesson.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve lesson access!", nil)
	}
	if access.State != progression.Accessible {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Lesson is locked!", fiber.Map{
			"access": access,
		})
	}

	var attachments []courseModels.Attachment
	db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).Find(&attachments)

	// Quiz questions ship without the is_correct flags
	var quizView fiber.Map
	var quiz courseModels.Quiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&quiz).Error; err == nil {
		var questions []courseModels.Question
		db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("position asc").Find(&questions)

		questionViews := make([]fiber.Map, len(questions))
		for i, q := range questions {
			var answers []courseModels.Answer
			db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Order("position asc").Find(&answers)
			for j := range answers {
				answers[j].IsCorrect = false
			}
			questionViews[i] = fiber.Map{
				"id":      q.ID,
				"prompt":  q.Prompt,
				"answers": answers,
			}
		}
		quizView = fiber.Map{
			"id":            quiz.ID,
			"title":         quiz.Title,
			"passing_score": quiz.PassingScore,
			"questions":     questionViews,
		}
	}

	var progress courseModels.LessonProgress
	isCompleted := db.Where("user_id = ? AND lesson_id = ? AND completed = ? AND is_deleted = ?",
		userID, lesson.ID, true, false).First(&progress).Error == nil

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson fetched successfully!", fiber.Map{
		"lesson":       lesson,
		"attachments":  attachments,
		"quiz":         quizView,
		"is_completed": isCompleted,
	})
}

// CompleteLesson marks a lesson complete for the learner. Completing an
// already-completed lesson is a no-op success, never an error. The response
// carries the advisory next-lesson hint.
func CompleteLesson(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ? AND status = ?",
		courseID, false, courseModels.StatusPublished).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	// A lesson with a quiz only completes through a passing quiz attempt
	var quiz courseModels.Quiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&quiz).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This lesson requires passing its quiz to complete!", nil)
	}

	access, err := resolveLessonAccess(db, userID, course.ID, lesson.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to resolve lesson access!", nil)
	}
	if access.State != progression.Accessible {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Lesson is locked!", fiber.Map{
			"access": access,
		})
	}

	data, err := completeAndAdvance(db, user, course, lesson.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as completed!", data)
}

// AddWatchTime accumulates video watch time on the learner's progress row.
// Watch time is advisory display data: last writer wins, no completion change.
func AddWatchTime(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	courseID := c.Locals("courseID").(int)
	lessonID := c.Locals("lessonID").(int)

	reqData, ok := c.Locals("validatedWatchTime").(*struct {
		Seconds int `json:"seconds"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND course_id = ? AND is_deleted = ?", lessonID, courseID, false).
		First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !hasCourseAccess(db, userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please purchase or enroll in this course first!", nil)
	}

	var progress courseModels.LessonProgress
	err := db.Where("user_id = ? AND lesson_id = ? AND is_deleted = ?", userID, lessonID, false).
		First(&progress).Error
	if err == gorm.ErrRecordNotFound {
		progress = courseModels.LessonProgress{
			UserID:           userID,
			LessonID:         uint(lessonID),
			CourseID:         uint(courseID),
			WatchTimeSeconds: reqData.Seconds,
		}
		if err := db.Create(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record watch time!", nil)
		}
	} else if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record watch time!", nil)
	} else {
		progress.WatchTimeSeconds += reqData.Seconds
		if err := db.Save(&progress).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record watch time!", nil)
		}
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Watch time recorded!", fiber.Map{
		"watch_time_seconds": progress.WatchTimeSeconds,
	})
}

// resolveLessonAccess runs the progression engine for a single lesson
func resolveLessonAccess(db *gorm.DB, userID, courseID, lessonID uint) (progression.Access, error) {
	tree, err := loadCourseTree(db, courseID)
	if err != nil {
		return progression.Access{}, err
	}
	completed, err := completedLessonSet(db, userID, courseID)
	if err != nil {
		return progression.Access{}, err
	}
	decisions, err := progression.ResolveAccess(tree, completed, hasCourseAccess(db, userID, courseID))
	if err != nil {
		return progression.Access{}, err
	}
	return decisions[lessonID], nil
}

// completeAndAdvance persists the completion fact, computes the advancement
// hint and fires the course-completed email when the last lesson closes out.
// The returned map is the response payload for the caller to extend.
func completeAndAdvance(db *gorm.DB, user models.User, course courseModels.Course, lessonID uint) (fiber.Map, error) {
	alreadyComplete, err := markLessonComplete(db, user.ID, course.ID, lessonID)
	if err != nil {
		return nil, err
	}

	tree, err := loadCourseTree(db, course.ID)
	if err != nil {
		return nil, err
	}

	nextLessonID, hasNext := progression.NextLesson(tree, lessonID)

	summary, err := courseSummary(db, user.ID, course.ID)
	if err != nil {
		return nil, err
	}

	if !alreadyComplete && summary.CompletionPercentage >= 100 {
		go utils.SendCourseCompletedEmail(user.Email, user.Name, course.Title)
	}

	data := fiber.Map{
		"already_completed": alreadyComplete,
		"course_complete":   !hasNext && summary.CompletionPercentage >= 100,
		"summary":           summary,
	}
	if hasNext {
		data["next_lesson_id"] = nextLessonID
	}
	return data, nil
}
