package courseValidator

import (
	"learnhub/middleware"

	"github.com/gofiber/fiber/v2"
)

// GetLesson validates the lesson detail route
func GetLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		return c.Next()
	}
}

// CompleteLesson validates the mark-complete route
func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		return c.Next()
	}
}

// WatchTime validates the watch-time accumulation payload
func WatchTime() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}

		reqData := new(struct {
			Seconds int `json:"seconds"`
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		if reqData.Seconds < 1 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Seconds must be a positive number!", nil)
		}
		if reqData.Seconds > 60*60*12 {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Seconds exceeds the allowed maximum!", nil)
		}

		c.Locals("validatedWatchTime", reqData)
		return c.Next()
	}
}

// SubmitQuiz validates a quiz submission payload
func SubmitQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}

		reqData := new(struct {
			Selections map[uint]uint `json:"selections"` // questionID -> answerID
		})
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}
		// An empty selection map is allowed: every question simply counts as
		// incorrect and the attempt is recorded with its failing score.
		c.Locals("validatedQuizSubmission", reqData)
		return c.Next()
	}
}
