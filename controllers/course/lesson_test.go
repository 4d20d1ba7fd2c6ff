package controllers_test

import (
	"fmt"
	"net/http"
	"testing"

	"learnhub/database"
	courseModels "learnhub/models/course"
	"learnhub/pkg/progression"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetLessonLockedWithoutAccess(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)

	status, resp := doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[0].ID, ""), nil, auth)
	require.Equal(t, fiber.StatusForbidden, status)

	access, ok := resp.Data["access"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, progression.LockedNoCourseAccess, access["state"])
}

func TestLessonGatingFollowsCourseOrder(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	// Lesson 2 is locked behind lesson 1
	status, resp := doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[1].ID, ""), nil, auth)
	require.Equal(t, fiber.StatusForbidden, status)
	access := resp.Data["access"].(map[string]any)
	assert.Equal(t, progression.LockedPreviousIncomplete, access["state"])
	assert.EqualValues(t, lessons[0].ID, access["required_lesson_id"])

	// Completing lesson 1 unlocks lesson 2 and hints at it
	status, resp = doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, resp.Data["already_completed"])
	assert.EqualValues(t, lessons[1].ID, resp.Data["next_lesson_id"])

	status, _ = doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[1].ID, ""), nil, auth)
	assert.Equal(t, fiber.StatusOK, status)

	// Lesson 3 (next chapter) stays locked until lesson 2 completes
	status, resp = doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[2].ID, ""), nil, auth)
	require.Equal(t, fiber.StatusForbidden, status)
	access = resp.Data["access"].(map[string]any)
	assert.Equal(t, progression.LockedPreviousIncomplete, access["state"])
	assert.EqualValues(t, lessons[1].ID, access["required_lesson_id"])
}

func TestCompleteLockedLessonRejected(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[2].ID, "/complete"), nil, auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestCompleteLessonIsIdempotent(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	status, resp := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, false, resp.Data["already_completed"])

	// Second completion is a success, not a conflict, and changes nothing
	status, resp = doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, true, resp.Data["already_completed"])

	summary := resp.Data["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["completed_lessons"])

	var rows int64
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ?", user.ID, lessons[0].ID).Count(&rows)
	assert.EqualValues(t, 1, rows)
}

func TestCompleteLastLessonFinishesCourse(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	var resp apiResponse
	var status int
	for _, l := range lessons {
		status, resp = doRequest(t, app, http.MethodPost, lessonURL(course.ID, l.ID, "/complete"), nil, auth)
		require.Equal(t, fiber.StatusOK, status)
	}

	assert.Equal(t, true, resp.Data["course_complete"])
	assert.Nil(t, resp.Data["next_lesson_id"])
	summary := resp.Data["summary"].(map[string]any)
	assert.EqualValues(t, 100, summary["completion_percentage"])
	assert.EqualValues(t, 3, summary["completed_lessons"])
}

func TestCompleteQuizLessonRejected(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	quiz := courseModels.Quiz{LessonID: lessons[0].ID, Title: "Checkpoint", PassingScore: 70}
	require.NoError(t, database.Database.Db.Create(&quiz).Error)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, auth)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestAddWatchTimeAccumulates(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	body := map[string]int{"seconds": 60}
	status, resp := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/watch-time"), body, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 60, resp.Data["watch_time_seconds"])

	body["seconds"] = 30
	status, resp = doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/watch-time"), body, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 90, resp.Data["watch_time_seconds"])
}

func TestWatchTimeDoesNotComplete(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	body := map[string]int{"seconds": 3600}
	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/watch-time"), body, auth)
	require.Equal(t, fiber.StatusOK, status)

	// Watch time alone never flips completion
	status, _ = doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[1].ID, ""), nil, auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestGetLessonStripsAnswerCorrectness(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	db := database.Database.Db
	quiz := courseModels.Quiz{LessonID: lessons[0].ID, Title: "Checkpoint", PassingScore: 70}
	require.NoError(t, db.Create(&quiz).Error)
	question := courseModels.Question{QuizID: quiz.ID, Prompt: "What does go build do?", Position: 1}
	require.NoError(t, db.Create(&question).Error)
	require.NoError(t, db.Create(&courseModels.Answer{QuestionID: question.ID, Text: "Compiles the package", IsCorrect: true, Position: 1}).Error)
	require.NoError(t, db.Create(&courseModels.Answer{QuestionID: question.ID, Text: "Runs the tests", Position: 2}).Error)

	status, resp := doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[0].ID, ""), nil, auth)
	require.Equal(t, fiber.StatusOK, status)

	quizView, ok := resp.Data["quiz"].(map[string]any)
	require.True(t, ok)
	questions := quizView["questions"].([]any)
	require.Len(t, questions, 1)
	answers := questions[0].(map[string]any)["answers"].([]any)
	require.Len(t, answers, 2)
	for _, a := range answers {
		assert.Equal(t, false, a.(map[string]any)["is_correct"])
	}
}

func TestGetLessonUnknownCourse(t *testing.T) {
	app := setupTestApp(t)
	user := createUser(t, "USER")
	auth := authHeader(t, user)

	status, _ := doRequest(t, app, http.MethodGet, "/course/999/lesson/1", nil, auth)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestCourseProgressBreakdown(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/complete"), nil, auth)
	require.Equal(t, fiber.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), nil, auth)
	require.Equal(t, fiber.StatusOK, status)

	summary := resp.Data["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["completed_lessons"])
	assert.EqualValues(t, 3, summary["total_lessons"])
	assert.EqualValues(t, 33, summary["completion_percentage"])
}

func TestCourseProgressRequiresAccess(t *testing.T) {
	app := setupTestApp(t)
	course, _ := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)

	status, _ := doRequest(t, app, http.MethodGet, fmt.Sprintf("/course/%d/progress", course.ID), nil, auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}
