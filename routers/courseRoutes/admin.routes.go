package courseRoutes

import (
	controllers "learnhub/controllers/course"
	"learnhub/middleware"
	validators "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminCourseRoutes sets up all admin course management routes
func SetupAdminCourseRoutes(app *fiber.App) {
	adminGroup := app.Group("/admin/course", middleware.JWTMiddleware, middleware.RequireAdmin)

	// Course CRUD
	adminGroup.Post("/create", validators.CreateCourseAdmin(), controllers.AdminCreateCourse)
	adminGroup.Put("/:id", validators.UpdateCourseAdmin(), controllers.AdminUpdateCourse)
	adminGroup.Delete("/:id", validators.CourseIDOnly(), controllers.AdminDeleteCourse)
	adminGroup.Get("/list", validators.AdminList(), controllers.AdminGetAllCourses)
	adminGroup.Get("/:id", validators.CourseIDOnly(), controllers.AdminGetCourseDetails)
	adminGroup.Post("/:id/publish", validators.CourseIDOnly(), controllers.AdminPublishCourse)
	adminGroup.Post("/:id/unpublish", validators.CourseIDOnly(), controllers.AdminUnpublishCourse)

	// Chapter Management
	adminGroup.Post("/:id/chapter", validators.CreateChapter(), controllers.AdminCreateChapter)
	adminGroup.Put("/:id/chapter/:chapter_id", validators.UpdateChapter(), controllers.AdminUpdateChapter)
	adminGroup.Delete("/:id/chapter/:chapter_id", validators.DeleteChapter(), controllers.AdminDeleteChapter)
	adminGroup.Post("/:id/chapters/reorder", validators.ReorderChapters(), controllers.AdminReorderChapters)

	// Lesson Management
	adminGroup.Post("/:id/chapter/:chapter_id/lesson", validators.CreateLesson(), controllers.AdminCreateLesson)

	// Lesson endpoints (separate group for easier access)
	lessonGroup := app.Group("/admin/lesson", middleware.JWTMiddleware, middleware.RequireAdmin)
	lessonGroup.Put("/:lesson_id", validators.UpdateLesson(), controllers.AdminUpdateLesson)
	lessonGroup.Delete("/:lesson_id", validators.LessonIDOnly(), controllers.AdminDeleteLesson)
	lessonGroup.Post("/:lesson_id/attachment", validators.AddAttachment(), controllers.AdminAddAttachment)
	lessonGroup.Delete("/attachment/:attachment_id", controllers.AdminDeleteAttachment)

	chapterGroup := app.Group("/admin/chapter", middleware.JWTMiddleware, middleware.RequireAdmin)
	chapterGroup.Post("/:chapter_id/lessons/reorder", validators.ReorderLessons(), controllers.AdminReorderLessons)

	// Quiz Management
	lessonGroup.Post("/:lesson_id/quiz", validators.CreateQuiz(), controllers.AdminCreateQuiz)
	lessonGroup.Put("/:lesson_id/quiz", validators.CreateQuiz(), controllers.AdminUpdateQuiz)
	lessonGroup.Delete("/:lesson_id/quiz", validators.LessonIDOnly(), controllers.AdminDeleteQuiz)

	quizGroup := app.Group("/admin/quiz", middleware.JWTMiddleware, middleware.RequireAdmin)
	quizGroup.Post("/:quiz_id/question", validators.AddQuestion(), controllers.AdminAddQuestion)

	questionGroup := app.Group("/admin/question", middleware.JWTMiddleware, middleware.RequireAdmin)
	questionGroup.Delete("/:question_id", validators.QuestionIDOnly(), controllers.AdminDeleteQuestion)
	questionGroup.Post("/:question_id/answer", validators.AddAnswer(), controllers.AdminAddAnswer)

	answerGroup := app.Group("/admin/answer", middleware.JWTMiddleware, middleware.RequireAdmin)
	answerGroup.Delete("/:answer_id", validators.AnswerIDOnly(), controllers.AdminDeleteAnswer)

	// Enrollment & Progress Tracking
	adminGroup.Get("/:id/students", validators.CourseIDOnly(), controllers.AdminGetCourseStudents)

	studentGroup := app.Group("/admin/student", middleware.JWTMiddleware, middleware.RequireAdmin)
	studentGroup.Get("/:user_id/progress", validators.StudentProgress(), controllers.AdminGetStudentProgress)

	// Dashboard
	dashGroup := app.Group("/admin/dashboard", middleware.JWTMiddleware, middleware.RequireAdmin)
	dashGroup.Get("/stats", controllers.AdminDashboardStats)
}
