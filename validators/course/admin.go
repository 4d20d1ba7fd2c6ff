package courseValidator

import (
	"regexp"
	"strings"

	"learnhub/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = validator.New()

var unsafeChars = regexp.MustCompile(`[<>{}]`)

// checkStruct runs validator tags and flattens failures into a field map
func checkStruct(s interface{}) map[string]string {
	errs := make(map[string]string)
	if err := validate.Struct(s); err != nil {
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				errs[strings.ToLower(fe.Field())] = "Failed validation rule: " + fe.Tag()
			}
		} else {
			errs["request"] = "Invalid request data!"
		}
	}
	return errs
}

// CourseRequest is the admin create/update course payload
type CourseRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=100"`
	Description  string `json:"description" validate:"max=2000"`
	Author       string `json:"author" validate:"max=100"`
	ThumbnailURL string `json:"thumbnail_url" validate:"omitempty,url"`
	PriceCents   int64  `json:"price_cents" validate:"min=0"`
	IsFree       bool   `json:"is_free"`
}

// ChapterRequest is the admin create/update chapter payload
type ChapterRequest struct {
	Title       string `json:"title" validate:"required,min=3,max=100"`
	Description string `json:"description" validate:"max=1000"`
	Position    int    `json:"position" validate:"min=0"`
}

// LessonRequest is the admin create/update lesson payload
type LessonRequest struct {
	Title           string `json:"title" validate:"required,min=3,max=100"`
	Description     string `json:"description" validate:"max=1000"`
	ContentType     string `json:"content_type" validate:"omitempty,oneof=TEXT VIDEO"`
	TextContent     string `json:"text_content"`
	VideoURL        string `json:"video_url" validate:"omitempty,url"`
	DurationSeconds int    `json:"duration_seconds" validate:"min=0"`
	Position        int    `json:"position" validate:"min=0"`
}

// QuizRequest is the admin create/update quiz payload
type QuizRequest struct {
	Title        string `json:"title" validate:"required,min=3,max=100"`
	PassingScore int    `json:"passing_score" validate:"min=0,max=100"`
}

// QuestionRequest is the admin create/update question payload
type QuestionRequest struct {
	Prompt   string `json:"prompt" validate:"required,min=3,max=500"`
	Position int    `json:"position" validate:"min=0"`
}

// AnswerRequest is the admin create/update answer payload
type AnswerRequest struct {
	Text      string `json:"text" validate:"required,min=1,max=300"`
	IsCorrect bool   `json:"is_correct"`
	Position  int    `json:"position" validate:"min=0"`
}

// ReorderRequest carries the new ordering of chapter or lesson IDs
type ReorderRequest struct {
	OrderedIDs []uint `json:"ordered_ids" validate:"required,min=1,dive,min=1"`
}

// validateBody parses and validates a JSON payload, writing the error
// response itself. Returns false when the request was rejected.
func validateBody(c *fiber.Ctx, reqData interface{}, title *string) bool {
	if err := c.BodyParser(reqData); err != nil {
		middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		return false
	}
	if title != nil {
		*title = strings.TrimSpace(*title)
		if unsafeChars.MatchString(*title) {
			middleware.ValidationErrorResponse(c, map[string]string{
				"title": "Title contains invalid characters (e.g., <, >, {, })!",
			})
			return false
		}
	}
	if errs := checkStruct(reqData); len(errs) > 0 {
		middleware.ValidationErrorResponse(c, errs)
		return false
	}
	return true
}

func CreateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CourseRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func UpdateCourseAdmin() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		reqData := new(CourseRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedCourse", reqData)
		return c.Next()
	}
}

func CourseIDOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		return c.Next()
	}
}

func AdminList() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(Pagination)
		if err := c.QueryParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid query parameters!", nil)
		}
		paginationDefaults(reqData)
		c.Locals("validatedList", reqData)
		return c.Next()
	}
}

func CreateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		reqData := new(ChapterRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func UpdateChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "chapter_id", "chapterID") {
			return nil
		}
		reqData := new(ChapterRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedChapter", reqData)
		return c.Next()
	}
}

func DeleteChapter() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "chapter_id", "chapterID") {
			return nil
		}
		return c.Next()
	}
}

func ReorderChapters() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		reqData := new(ReorderRequest)
		if !validateBody(c, reqData, nil) {
			return nil
		}
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

func CreateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "id", "courseID") {
			return nil
		}
		if !parseIDParam(c, "chapter_id", "chapterID") {
			return nil
		}
		reqData := new(LessonRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func UpdateLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		reqData := new(LessonRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedLesson", reqData)
		return c.Next()
	}
}

func LessonIDOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		return c.Next()
	}
}

func ReorderLessons() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "chapter_id", "chapterID") {
			return nil
		}
		reqData := new(ReorderRequest)
		if !validateBody(c, reqData, nil) {
			return nil
		}
		c.Locals("validatedReorder", reqData)
		return c.Next()
	}
}

func AddAttachment() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		return c.Next()
	}
}

func CreateQuiz() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "lesson_id", "lessonID") {
			return nil
		}
		reqData := new(QuizRequest)
		if !validateBody(c, reqData, &reqData.Title) {
			return nil
		}
		c.Locals("validatedQuiz", reqData)
		return c.Next()
	}
}

func AddQuestion() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "quiz_id", "quizID") {
			return nil
		}
		reqData := new(QuestionRequest)
		if !validateBody(c, reqData, nil) {
			return nil
		}
		c.Locals("validatedQuestion", reqData)
		return c.Next()
	}
}

func QuestionIDOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "question_id", "questionID") {
			return nil
		}
		return c.Next()
	}
}

func AddAnswer() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "question_id", "questionID") {
			return nil
		}
		reqData := new(AnswerRequest)
		if !validateBody(c, reqData, nil) {
			return nil
		}
		c.Locals("validatedAnswer", reqData)
		return c.Next()
	}
}

func AnswerIDOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "answer_id", "answerID") {
			return nil
		}
		return c.Next()
	}
}

func StudentProgress() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !parseIDParam(c, "user_id", "studentID") {
			return nil
		}
		return c.Next()
	}
}
