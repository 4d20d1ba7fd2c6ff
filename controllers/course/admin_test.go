package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"learnhub/database"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdminRoutesRejectNonAdmin(t *testing.T) {
	app := setupTestApp(t)
	user := createUser(t, "USER")
	auth := authHeader(t, user)

	body := map[string]any{"title": "Sneaky Course"}
	status, _ := doRequest(t, app, http.MethodPost, "/admin/course/create", body, auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestAdminAuthoringFlow(t *testing.T) {
	app := setupTestApp(t)
	admin := createUser(t, "ADMIN")
	auth := authHeader(t, admin)

	// Create a draft course
	body := map[string]any{"title": "Effective Go", "description": "Patterns and practice", "is_free": true}
	status, resp := doRequest(t, app, http.MethodPost, "/admin/course/create", body, auth)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, courseModels.StatusDraft, resp.Data["status"])
	courseID := uint(resp.Data["ID"].(float64))

	// Draft courses are invisible to students
	student := createUser(t, "USER")
	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d", courseID), nil, authHeader(t, student))
	assert.Equal(t, fiber.StatusNotFound, status)

	// An empty course cannot be published
	status, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", courseID), nil, auth)
	assert.Equal(t, fiber.StatusBadRequest, status)

	// Add a chapter and a lesson
	status, resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/chapter", courseID),
		map[string]any{"title": "Getting Started"}, auth)
	require.Equal(t, fiber.StatusCreated, status)
	chapterID := uint(resp.Data["ID"].(float64))

	status, resp = doRequest(t, app, http.MethodPost,
		fmt.Sprintf("/admin/course/%d/chapter/%d/lesson", courseID, chapterID),
		map[string]any{"title": "Installing Go", "content_type": "TEXT", "text_content": "Download the toolchain."}, auth)
	require.Equal(t, fiber.StatusCreated, status)

	// Now publishing succeeds and the course becomes visible
	status, resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", courseID), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, courseModels.StatusPublished, resp.Data["status"])
	assert.NotNil(t, resp.Data["published_at"])

	status, _ = doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d", courseID), nil, authHeader(t, student))
	assert.Equal(t, fiber.StatusOK, status)

	// Publishing again is a no-op success
	status, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/publish", courseID), nil, auth)
	assert.Equal(t, fiber.StatusOK, status)

	// Unpublish hides it again
	status, resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/unpublish", courseID), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, courseModels.StatusDraft, resp.Data["status"])
	assert.Nil(t, resp.Data["published_at"])
}

func TestAdminReorderChapters(t *testing.T) {
	app := setupTestApp(t)
	course, _ := seedCourse(t, true)
	admin := createUser(t, "ADMIN")
	auth := authHeader(t, admin)

	var chapters []courseModels.Chapter
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).Order("position asc").Find(&chapters).Error)
	require.Len(t, chapters, 2)

	body := map[string]any{"ordered_ids": []uint{chapters[1].ID, chapters[0].ID}}
	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/chapters/reorder", course.ID), body, auth)
	require.Equal(t, fiber.StatusOK, status)

	var reordered []courseModels.Chapter
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).Order("position asc").Find(&reordered).Error)
	assert.Equal(t, chapters[1].ID, reordered[0].ID)
	assert.Equal(t, chapters[0].ID, reordered[1].ID)
}

func TestAdminReorderRejectsForeignIDs(t *testing.T) {
	app := setupTestApp(t)
	course, _ := seedCourse(t, true)
	admin := createUser(t, "ADMIN")
	auth := authHeader(t, admin)

	body := map[string]any{"ordered_ids": []uint{9991, 9992}}
	status, _ := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/chapters/reorder", course.ID), body, auth)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAdminReorderDoesNotRevokeCompletedLessons(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	userAuth := authHeader(t, user)
	enrollUser(t, user, course)

	// Student completes lesson 1
	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, userAuth)
	require.Equal(t, fiber.StatusOK, status)

	// Admin moves chapter B in front of chapter A
	admin := createUser(t, "ADMIN")
	var chapters []courseModels.Chapter
	require.NoError(t, database.Database.Db.
		Where("course_id = ?", course.ID).Order("position asc").Find(&chapters).Error)
	body := map[string]any{"ordered_ids": []uint{chapters[1].ID, chapters[0].ID}}
	status, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/course/%d/chapters/reorder", course.ID), body, authHeader(t, admin))
	require.Equal(t, fiber.StatusOK, status)

	// The completed lesson stays accessible even though it now sits later
	status, _ = doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[0].ID, ""), nil, userAuth)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestAdminQuizAuthoring(t *testing.T) {
	app := setupTestApp(t)
	_, lessons := seedCourse(t, true)
	admin := createUser(t, "ADMIN")
	auth := authHeader(t, admin)

	status, resp := doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/lesson/%d/quiz", lessons[0].ID),
		map[string]any{"title": "Basics Check", "passing_score": 80}, auth)
	require.Equal(t, fiber.StatusCreated, status)
	quizID := uint(resp.Data["ID"].(float64))
	assert.EqualValues(t, 80, resp.Data["passing_score"])

	// A lesson holds at most one quiz
	status, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/lesson/%d/quiz", lessons[0].ID),
		map[string]any{"title": "Another", "passing_score": 50}, auth)
	assert.Equal(t, fiber.StatusConflict, status)

	status, resp = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/quiz/%d/question", quizID),
		map[string]any{"prompt": "What declares a variable?"}, auth)
	require.Equal(t, fiber.StatusCreated, status)
	questionID := uint(resp.Data["ID"].(float64))

	status, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/admin/question/%d/answer", questionID),
		map[string]any{"text": "var", "is_correct": true}, auth)
	require.Equal(t, fiber.StatusCreated, status)
}

func TestAdminCreateCourseValidation(t *testing.T) {
	app := setupTestApp(t)
	admin := createUser(t, "ADMIN")
	auth := authHeader(t, admin)

	// Title too short
	status, _ := doRequest(t, app, http.MethodPost, "/admin/course/create", map[string]any{"title": "ab"}, auth)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)

	// Unsafe characters
	status, _ = doRequest(t, app, http.MethodPost, "/admin/course/create", map[string]any{"title": "<script>bad"}, auth)
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
}

func TestAdminStudentProgressView(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	enrollUser(t, user, course)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, authHeader(t, user))
	require.Equal(t, fiber.StatusOK, status)

	admin := createUser(t, "ADMIN")
	auth := authHeader(t, admin)

	status, resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/admin/course/%d/students", course.ID), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	students := resp.Data["students"].([]any)
	require.Len(t, students, 1)

	status, resp = doRequest(t, app, http.MethodGet, fmt.Sprintf("/admin/student/%d/progress", user.ID), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	courses := resp.Data["courses"].([]any)
	require.Len(t, courses, 1)
}
