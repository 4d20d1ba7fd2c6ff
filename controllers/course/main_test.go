package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"learnhub/config"
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	courseRoutes "learnhub/routers/courseRoutes"
	paymentRoutes "learnhub/routers/paymentRoutes"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestApp wires a fresh in-memory database and the full route surface
// for one test.
func setupTestApp(t *testing.T) *fiber.App {
	t.Helper()

	config.AppConfig = &config.Config{
		Port:              "0",
		JWTKey:            "test-secret",
		SaltRound:         4,
		EmailSender:       "no-reply@test.local",
		CheckoutSecretKey: "whsec-test",
		UploadDir:         t.TempDir(),
	}

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	database.Database = database.DbInstance{Db: db}

	app := fiber.New()
	courseRoutes.SetupCourseRoutes(app)
	courseRoutes.SetupAdminCourseRoutes(app)
	paymentRoutes.SetupPaymentRoutes(app)
	return app
}

func createUser(t *testing.T, role string) models.User {
	t.Helper()
	user := models.User{
		Name:     "Test " + role,
		Email:    strings.ToLower(role) + "-" + uuid.NewString() + "@test.local",
		Role:     role,
		Password: "not-used",
	}
	require.NoError(t, database.Database.Db.Create(&user).Error)
	return user
}

func authHeader(t *testing.T, user models.User) string {
	t.Helper()
	token, err := middleware.GenerateJWT(user.ID, user.Name, user.Role, user.Email)
	require.NoError(t, err)
	return "Bearer " + token
}

// seedCourse creates a published course with chapter A (two lessons) followed
// by chapter B (one lesson). Returns the course and the three lessons in
// course order.
func seedCourse(t *testing.T, free bool) (courseModels.Course, []courseModels.Lesson) {
	t.Helper()
	db := database.Database.Db

	now := time.Now()
	course := courseModels.Course{
		Title:       "Go From Scratch",
		Description: "A hands-on Go course",
		Author:      "Jane Doe",
		IsFree:      free,
		Status:      courseModels.StatusPublished,
		PublishedAt: &now,
	}
	if !free {
		course.PriceCents = 4900
	}
	require.NoError(t, db.Create(&course).Error)

	chapterA := courseModels.Chapter{CourseID: course.ID, Title: "Basics", Position: 1}
	chapterB := courseModels.Chapter{CourseID: course.ID, Title: "Concurrency", Position: 2}
	require.NoError(t, db.Create(&chapterA).Error)
	require.NoError(t, db.Create(&chapterB).Error)

	lessons := []courseModels.Lesson{
		{ChapterID: chapterA.ID, CourseID: course.ID, Title: "Hello World", ContentType: "TEXT", Position: 1},
		{ChapterID: chapterA.ID, CourseID: course.ID, Title: "Types and Structs", ContentType: "TEXT", Position: 2},
		{ChapterID: chapterB.ID, CourseID: course.ID, Title: "Goroutines", ContentType: "VIDEO", Position: 1},
	}
	for i := range lessons {
		require.NoError(t, db.Create(&lessons[i]).Error)
	}
	return course, lessons
}

// enrollUser grants course access directly through a completed purchase row
func enrollUser(t *testing.T, user models.User, course courseModels.Course) {
	t.Helper()
	now := time.Now()
	purchase := courseModels.Purchase{
		UserID:      user.ID,
		CourseID:    course.ID,
		Reference:   uuid.NewString(),
		Status:      courseModels.PurchaseCompleted,
		CompletedAt: &now,
	}
	require.NoError(t, database.Database.Db.Create(&purchase).Error)
}

type apiResponse struct {
	Status  bool           `json:"status"`
	Message string         `json:"message"`
	Data    map[string]any `json:"data"`
}

// doRequest performs a JSON request against the test app and decodes the
// response envelope.
func doRequest(t *testing.T, app *fiber.App, method, url string, body any, auth string) (int, apiResponse) {
	t.Helper()

	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reqBody = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, url, reqBody)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, 10000)
	require.NoError(t, err)
	defer resp.Body.Close()

	var envelope apiResponse
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &envelope), "body: %s", raw)
	}
	return resp.StatusCode, envelope
}

func jsonDecode(r io.Reader, v any) error {
	return json.NewDecoder(r).Decode(v)
}

func lessonURL(courseID, lessonID uint, suffix string) string {
	return fmt.Sprintf("/course/%d/lesson/%d%s", courseID, lessonID, suffix)
}

func TestRoutesRequireAuth(t *testing.T) {
	app := setupTestApp(t)
	course, lessons := seedCourse(t, true)

	status, _ := doRequest(t, app, http.MethodGet, lessonURL(course.ID, lessons[0].ID, ""), nil, "")
	require.Equal(t, fiber.StatusUnauthorized, status)

	status, _ = doRequest(t, app, http.MethodPost, fmt.Sprintf("/course/%d/enroll", course.ID), nil, "garbage")
	require.Equal(t, fiber.StatusUnauthorized, status)
}
