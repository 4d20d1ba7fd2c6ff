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

// seedQuiz attaches a two-question quiz to a lesson and returns the correct
// selections for a perfect score.
func seedQuiz(t *testing.T, lessonID uint, passingScore int) (courseModels.Quiz, map[string]uint) {
	t.Helper()
	db := database.Database.Db

	quiz := courseModels.Quiz{LessonID: lessonID, Title: "Checkpoint", PassingScore: passingScore}
	require.NoError(t, db.Create(&quiz).Error)

	correct := make(map[string]uint)
	prompts := []string{"What keyword declares a function?", "Which type holds UTF-8 text?"}
	answers := [][2]string{{"func", "def"}, {"string", "char"}}
	for i, prompt := range prompts {
		q := courseModels.Question{QuizID: quiz.ID, Prompt: prompt, Position: i + 1}
		require.NoError(t, db.Create(&q).Error)

		right := courseModels.Answer{QuestionID: q.ID, Text: answers[i][0], IsCorrect: true, Position: 1}
		wrong := courseModels.Answer{QuestionID: q.ID, Text: answers[i][1], Position: 2}
		require.NoError(t, db.Create(&right).Error)
		require.NoError(t, db.Create(&wrong).Error)

		correct[uintKey(q.ID)] = right.ID
	}
	return quiz, correct
}

func uintKey(id uint) string {
	return fmt.Sprintf("%d", id)
}

func TestSubmitQuizPassCompletesLesson(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	_, correct := seedQuiz(t, lessons[0].ID, 70)

	body := map[string]any{"selections": correct}
	status, resp := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/quiz/submit"), body, auth)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, true, resp.Data["passed"])
	assert.EqualValues(t, 100, resp.Data["score"])
	assert.EqualValues(t, lessons[1].ID, resp.Data["next_lesson_id"])

	summary := resp.Data["summary"].(map[string]any)
	assert.EqualValues(t, 1, summary["completed_lessons"])

	// The next lesson actually unlocked
	status, _ = doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[1].ID, ""), nil, auth)
	assert.Equal(t, fiber.StatusOK, status)
}

func TestSubmitQuizFailLeavesProgressUntouched(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	quiz, correct := seedQuiz(t, lessons[0].ID, 70)

	// Pick the right answer for only one of the two questions: 50 < 70
	partial := make(map[string]uint)
	for k, v := range correct {
		partial[k] = v
		break
	}

	body := map[string]any{"selections": partial}
	status, resp := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/quiz/submit"), body, auth)
	require.Equal(t, fiber.StatusOK, status)

	assert.Equal(t, false, resp.Data["passed"])
	assert.EqualValues(t, 50, resp.Data["score"])
	assert.EqualValues(t, 1, resp.Data["attempt"])

	// Attempt is recorded, completion is not
	var attempts int64
	database.Database.Db.Model(&courseModels.QuizAttempt{}).
		Where("user_id = ? AND quiz_id = ?", user.ID, quiz.ID).Count(&attempts)
	assert.EqualValues(t, 1, attempts)

	var completed int64
	database.Database.Db.Model(&courseModels.LessonProgress{}).
		Where("user_id = ? AND lesson_id = ? AND completed = ?", user.ID, lessons[0].ID, true).Count(&completed)
	assert.EqualValues(t, 0, completed)

	status, _ = doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[1].ID, ""), nil, auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestSubmitQuizAttemptNumbersIncrement(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	_, correct := seedQuiz(t, lessons[0].ID, 70)

	status, resp := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/quiz/submit"),
		map[string]any{"selections": map[string]uint{}}, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 1, resp.Data["attempt"])

	status, resp = doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/quiz/submit"),
		map[string]any{"selections": correct}, auth)
	require.Equal(t, fiber.StatusOK, status)
	assert.EqualValues(t, 2, resp.Data["attempt"])
	assert.Equal(t, true, resp.Data["passed"])
}

func TestSubmitQuizWithoutQuiz(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/quiz/submit"),
		map[string]any{"selections": map[string]uint{}}, auth)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestSubmitQuizOnLockedLesson(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	_, correct := seedQuiz(t, lessons[1].ID, 70)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[1].ID, "/quiz/submit"),
		map[string]any{"selections": correct}, auth)
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestGetQuizAttempts(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)
	user := createUser(t, "USER")
	auth := authHeader(t, user)
	enrollUser(t, user, course)

	_, correct := seedQuiz(t, lessons[0].ID, 70)

	status, _ := doRequest(t, app, http.MethodPost, lessonURL(course.ID, lessons[0].ID, "/quiz/submit"),
		map[string]any{"selections": correct}, auth)
	require.Equal(t, fiber.StatusOK, status)

	status, resp := doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[0].ID, "/quiz/attempts"), nil, auth)
	require.Equal(t, fiber.StatusOK, status)
	attempts := resp.Data["attempts"].([]any)
	require.Len(t, attempts, 1)
	assert.Equal(t, true, attempts[0].(map[string]any)["passed"])
}
