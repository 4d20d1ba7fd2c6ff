package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupCourseRoutes sets up all user-facing course routes
func SetupCourseRoutes(app *fiber.App) {
	userGroup := app.Group("/course")

	// Course listing and details (published courses)
	userGroup.Get("/list", middleware.JWTMiddleware, validators.CourseList(), controllers.GetAllCourses)
	userGroup.Get("/:id", middleware.JWTMiddleware, validators.GetCourseDetail(), controllers.GetCourseDetails)

	// Entitlement
	userGroup.Post("/:id/enroll", middleware.JWTMiddleware, validators.EnrollCourse(), controllers.EnrollInCourse)
	userGroup.Post("/:id/checkout", middleware.JWTMiddleware, validators.CheckoutCourse(), controllers.CheckoutCourse)

	// Lesson consumption
	userGroup.Get("/:id/lesson/:lesson_id", middleware.JWTMiddleware, validators.GetLesson(), controllers.GetLesson)
	userGroup.Post("/:id/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.CompleteLesson(), controllers.CompleteLesson)
	userGroup.Post("/:id/lesson/:lesson_id/watch-time", middleware.JWTMiddleware, validators.WatchTime(), controllers.AddWatchTime)

	// Quiz
	userGroup.Post("/:id/lesson/:lesson_id/quiz/submit", middleware.JWTMiddleware, validators.SubmitQuiz(), controllers.SubmitQuiz)
	userGroup.Get("/:id/lesson/:lesson_id/quiz/attempts", middleware.JWTMiddleware, validators.GetLesson(), controllers.GetQuizAttempts)

	// Progress tracking
	userGroup.Get("/:id/progress", middleware.JWTMiddleware, validators.CourseProgress(), controllers.GetCourseProgress)

	// User purchases
	userPurchaseGroup := app.Group("/user")
	userPurchaseGroup.Get("/purchases", middleware.JWTMiddleware, controllers.GetMyPurchases)
}
