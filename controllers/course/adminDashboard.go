package controllers

import (
	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"

	"github.com/gofiber/fiber/v2"
)

// AdminGetCourseStudents lists students entitled to a course with their
// progress summary.
func AdminGetCourseStudents(c *fiber.Ctx) error {
	courseID := c.Locals("courseID").(int)

	db := database.Database.Db

	var course courseModels.Course
	if err := db.Where("id = ? AND is_deleted = ?", courseID, false).First(&course).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Course not found!", nil)
	}

	var purchases []courseModels.Purchase
	if err := db.Where("course_id = ? AND status = ? AND is_deleted = ?",
		courseID, courseModels.PurchaseCompleted, false).
		Order("created_at desc").Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch students!", nil)
	}

	type studentRow struct {
		UserID    uint   `json:"user_id"`
		UserName  string `json:"user_name"`
		UserEmail string `json:"user_email"`
		Summary   any    `json:"summary"`
	}

	rows := make([]studentRow, 0, len(purchases))
	for _, p := range purchases {
		var student models.User
		if err := db.Where("id = ? AND is_deleted = ?", p.UserID, false).First(&student).Error; err != nil {
			continue
		}
		summary, err := courseSummary(db, p.UserID, uint(courseID))
		if err != nil {
			continue
		}
		rows = append(rows, studentRow{
			UserID:    student.ID,
			UserName:  student.Name,
			UserEmail: student.Email,
			Summary:   summary,
		})
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Students fetched successfully!", fiber.Map{
		"students": rows,
	})
}

// AdminGetStudentProgress returns one student's progress across all courses
// they hold access to.
func AdminGetStudentProgress(c *fiber.Ctx) error {
	studentID := c.Locals("studentID").(int)

	db := database.Database.Db

	var student models.User
	if err := db.Where("id = ? AND is_deleted = ?", studentID, false).First(&student).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Student not found!", nil)
	}

	var purchases []courseModels.Purchase
	db.Where("user_id = ? AND status = ? AND is_deleted = ?",
		studentID, courseModels.PurchaseCompleted, false).Find(&purchases)

	type courseRow struct {
		CourseID    uint   `json:"course_id"`
		CourseTitle string `json:"course_title"`
		Summary     any    `json:"summary"`
	}

	rows := make([]courseRow, 0, len(purchases))
	for _, p := range purchases {
		var course courseModels.Course
		if err := db.Where("id = ? AND is_deleted = ?", p.CourseID, false).First(&course).Error; err != nil {
			continue
		}
		summary, err := courseSummary(db, uint(studentID), p.CourseID)
		if err != nil {
			continue
		}
		rows = append(rows, courseRow{
			CourseID:    course.ID,
			CourseTitle: course.Title,
			Summary:     summary,
		})
	}

	student.Password = ""

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Student progress fetched successfully!", fiber.Map{
		"student": student,
		"courses": rows,
	})
}

// AdminDashboardStats returns platform-wide counters for the admin dashboard
func AdminDashboardStats(c *fiber.Ctx) error {
	db := database.Database.Db

	var totalUsers, totalCourses, publishedCourses int64
	var totalPurchases, completedPurchases int64
	var totalCompletions int64
	var revenueCents int64

	db.Model(&models.User{}).Where("is_deleted = ?", false).Count(&totalUsers)
	db.Model(&courseModels.Course{}).Where("is_deleted = ?", false).Count(&totalCourses)
	db.Model(&courseModels.Course{}).Where("is_deleted = ? AND status = ?", false, courseModels.StatusPublished).Count(&publishedCourses)
	db.Model(&courseModels.Purchase{}).Where("is_deleted = ?", false).Count(&totalPurchases)
	db.Model(&courseModels.Purchase{}).Where("is_deleted = ? AND status = ?", false, courseModels.PurchaseCompleted).Count(&completedPurchases)
	db.Model(&courseModels.LessonProgress{}).Where("is_deleted = ? AND completed = ?", false, true).Count(&totalCompletions)
	db.Model(&courseModels.Purchase{}).
		Where("is_deleted = ? AND status = ?", false, courseModels.PurchaseCompleted).
		Select("COALESCE(SUM(amount_cents), 0)").Scan(&revenueCents)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Dashboard stats fetched successfully!", fiber.Map{
		"total_users":         totalUsers,
		"total_courses":       totalCourses,
		"published_courses":   publishedCourses,
		"total_purchases":     totalPurchases,
		"completed_purchases": completedPurchases,
		"lesson_completions":  totalCompletions,
		"revenue_cents":       revenueCents,
	})
}
