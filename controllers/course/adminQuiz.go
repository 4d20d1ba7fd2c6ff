package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// AdminCreateQuiz attaches a quiz to a lesson. A lesson can carry at most
// one quiz; the unique index on lesson_id backs this up.
func AdminCreateQuiz(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	db := database.Database.Db

	var lesson courseModels.Lesson
	if err := db.Where("id = ? AND is_deleted = ?", lessonID, false).First(&lesson).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	var existing courseModels.Quiz
	if err := db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Lesson already has a quiz!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	passingScore := reqData.PassingScore
	if passingScore == 0 {
		passingScore = progression.DefaultPassingScore
	}

	quiz := courseModels.Quiz{
		LessonID:     uint(lessonID),
		Title:        reqData.Title,
		PassingScore: passingScore,
	}

	if err := db.Create(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Quiz created successfully!", quiz)
}

func AdminUpdateQuiz(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuiz").(*courseValidator.QuizRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	quiz.Title = reqData.Title
	if reqData.PassingScore > 0 {
		quiz.PassingScore = reqData.PassingScore
	}

	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz updated successfully!", quiz)
}

func AdminDeleteQuiz(c *fiber.Ctx) error {
	lessonID := c.Locals("lessonID").(int)

	var quiz courseModels.Quiz
	if err := database.Database.Db.Where("lesson_id = ? AND is_deleted = ?", lessonID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	quiz.IsDeleted = true
	if err := database.Database.Db.Save(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete quiz!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Quiz deleted successfully!", nil)
}

func AdminAddQuestion(c *fiber.Ctx) error {
	quizID := c.Locals("quizID").(int)

	db := database.Database.Db

	var quiz courseModels.Quiz
	if err := db.Where("id = ? AND is_deleted = ?", quizID, false).First(&quiz).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Quiz not found!", nil)
	}

	reqData, ok := c.Locals("validatedQuestion").(*courseValidator.QuestionRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	position := reqData.Position
	if position == 0 {
		var maxPos int64
		db.Model(&courseModels.Question{}).
			Where("quiz_id = ? AND is_deleted = ?", quizID, false).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
		position = int(maxPos) + 1
	}

	question := courseModels.Question{
		QuizID:   uint(quizID),
		Prompt:   reqData.Prompt,
		Position: position,
	}

	if err := db.Create(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Question added successfully!", question)
}

func AdminDeleteQuestion(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	var question courseModels.Question
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	question.IsDeleted = true
	if err := database.Database.Db.Save(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete question!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Question deleted successfully!", nil)
}

func AdminAddAnswer(c *fiber.Ctx) error {
	questionID := c.Locals("questionID").(int)

	db := database.Database.Db

	var question courseModels.Question
	if err := db.Where("id = ? AND is_deleted = ?", questionID, false).First(&question).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Question not found!", nil)
	}

	reqData, ok := c.Locals("validatedAnswer").(*courseValidator.AnswerRequest)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	position := reqData.Position
	if position == 0 {
		var maxPos int64
		db.Model(&courseModels.Answer{}).
			Where("question_id = ? AND is_deleted = ?", questionID, false).
			Select("COALESCE(MAX(position), 0)").Scan(&maxPos)
		position = int(maxPos) + 1
	}

	answer := courseModels.Answer{
		QuestionID: uint(questionID),
		Text:       reqData.Text,
		IsCorrect:  reqData.IsCorrect,
		Position:   position,
	}

	if err := db.Create(&answer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to add answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Answer added successfully!", answer)
}

func AdminDeleteAnswer(c *fiber.Ctx) error {
	answerID := c.Locals("answerID").(int)

	var answer courseModels.Answer
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", answerID, false).First(&answer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Answer not found!", nil)
	}

	answer.IsDeleted = true
	if err := database.Database.Db.Save(&answer).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete answer!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Answer deleted successfully!", nil)
}
