package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"
	courseValidator "learnhub/validators/course"

	"github.com/gofiber/fiber/v2"
)

// GetAllCourses lists published courses with pagination
func GetAllCourses(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	reqData, _ := c.Locals("validatedList").(*courseValidator.Pagination)

	page := 1
	limit := 10
	if reqData != nil && reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData != nil && reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db.Model(&courseModels.Course{}).
		Where("is_deleted = ? AND status = ?", false, courseModels.StatusPublished)

	var total int64
	db.Count(&total)

	var courses []courseModels.Course
	if err := db.Offset(offset).Limit(limit).Order("published_at desc").Find(&courses).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch courses!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Courses fetched successfully!", fiber.Map{
		"courses": courses,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// LessonView is a lesson enriched with the learner's derived view state.
// Per-user state lives here, never on the shared content rows.
type LessonView struct {
	courseModels.Lesson
	HasQuiz     bool               `json:"has_quiz"`
	IsCompleted bool               `json:"is_completed"`
	Access      progression.Access `json:"access"`
}

// ChapterView groups lesson views for display
type ChapterView struct {
	courseModels.Chapter
	Lessons []LessonView `json:"lessons"`
}

// GetCourseDetails returns the course with its chapter/lesson tree, each
// lesson carrying the learner's access decision and completion flag.
func GetCourseDetails(c *fiber.Ctx) error {
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

	tree, err := loadCourseTree(db, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch course content!", nil)
	}

	completed, err := completedLessonSet(db, userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	hasAccess := hasCourseAccess(db, userID, course.ID)

	decisions, err := progression.ResolveAccess(tree, completed, hasAccess)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Course content is invalid!", nil)
	}

	var chapters []courseModels.Chapter
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&chapters)

	var lessons []courseModels.Lesson
	db.Where("course_id = ? AND is_deleted = ?", course.ID, false).Order("position asc").Find(&lessons)

	lessonIDs := make([]uint, len(lessons))
	for i, l := range lessons {
		lessonIDs[i] = l.ID
	}

	quizByLesson := make(map[uint]bool)
	if len(lessonIDs) > 0 {
		var quizzes []courseModels.Quiz
		db.Where("lesson_id IN ? AND is_deleted = ?", lessonIDs, false).Find(&quizzes)
		for _, q := range quizzes {
			quizByLesson[q.LessonID] = true
		}
	}

	lessonViews := make(map[uint][]LessonView)
	for _, l := range lessons {
		lessonViews[l.ChapterID] = append(lessonViews[l.ChapterID], LessonView{
			Lesson:      l,
			HasQuiz:     quizByLesson[l.ID],
			IsCompleted: completed[l.ID],
			Access:      decisions[l.ID],
		})
	}

	chapterViews := make([]ChapterView, len(chapters))
	for i, ch := range chapters {
		chapterViews[i] = ChapterView{Chapter: ch, Lessons: lessonViews[ch.ID]}
	}

	summary, err := courseSummary(db, userID, course.ID)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch progress!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Course details fetched successfully!", fiber.Map{
		"course":     course,
		"chapters":   chapterViews,
		"has_access": hasAccess,
		"summary":    summary,
	})
}
