package controllers

import (
	"encoding/json"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"

	"github.com/gofiber/fiber/v2"
	"gorm.io/datatypes"
)

// SubmitQuiz scores a quiz attempt. A passing score completes the owning
// lesson exactly like CompleteLesson; a failing score records the attempt and
// leaves persisted progress untouched.
func SubmitQuiz(c *fiber.Ctx) error {
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

	reqData, ok := c.Locals("validatedQuizSubmission").(*struct {
		Selections map[uint]uint `json:"selections"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

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

	var quiz courseModels.Quiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lesson.ID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This lesson has no quiz!", nil)
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

	// Load questions with their answers for scoring
	var questions []courseModels.Question
	db.Where("quiz_id = ? AND is_deleted = ?", quiz.ID, false).Order("position asc").Find(&questions)

	scoringQuestions := make([]progression.Question, len(questions))
	for i, q := range questions {
		var answers []courseModels.Answer
		db.Where("question_id = ? AND is_deleted = ?", q.ID, false).Find(&answers)

		opts := make([]progression.Answer, len(answers))
		for j, a := range answers {
			opts[j] = progression.Answer{ID: a.ID, Correct: a.IsCorrect}
		}
		scoringQuestions[i] = progression.Question{ID: q.ID, Answers: opts}
	}

	result := progression.ScoreQuiz(scoringQuestions, reqData.Selections)
	passed := result.PassedAgainst(quiz.PassingScore)

	// Record the attempt regardless of outcome
	var attemptCount int64
	db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quiz.ID, false).
		Count(&attemptCount)

	selectedJSON, _ := json.Marshal(reqData.Selections)

	attempt := courseModels.QuizAttempt{
		UserID:        userID,
		QuizID:        quiz.ID,
		LessonID:      lesson.ID,
		Selections:    datatypes.JSON(selectedJSON),
		Score:         result.Score,
		Passed:        passed,
		AttemptNumber: int(attemptCount) + 1,
	}
	if err := db.Create(&attempt).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to record quiz attempt!", nil)
	}

	if !passed {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz submitted.", fiber.Map{
			"score":         result.Score,
			"correct":       result.Correct,
			"total":         result.Total,
			"passed":        false,
			"passing_score": quiz.PassingScore,
			"attempt":       attempt.AttemptNumber,
		})
	}

	// Passing attempt completes the lesson (idempotent)
	data, err := completeAndAdvance(db, user, course, lesson.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to mark lesson as completed!", nil)
	}
	data["score"] = result.Score
	data["correct"] = result.Correct
	data["total"] = result.Total
	data["passed"] = true
	data["passing_score"] = quiz.PassingScore
	data["attempt"] = attempt.AttemptNumber

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz passed! Lesson completed.", data)
}

// GetQuizAttempts lists the learner's attempts for a lesson's quiz
func GetQuizAttempts(c *fiber.Ctx) error {
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

	var quiz courseModels.Quiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "This lesson has no quiz!", nil)
	}

	if !hasCourseAccess(db, userID, uint(courseID)) {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Please purchase or enroll in this course first!", nil)
	}

	var attempts []courseModels.QuizAttempt
	if err := db.Where("user_id = ? AND quiz_id = ? AND is_deleted = ?", userID, quiz.ID, false).
		Order("created_at desc").Find(&attempts).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch attempts!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Attempts fetched successfully!", fiber.Map{
		"attempts": attempts,
	})
}
