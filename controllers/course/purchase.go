package controllers

import (
	"log"
	"time"

	"learnhub/database"
	"learnhub/middleware"
	"learnhub/models"
	courseModels "learnhub/models/course"
	"learnhub/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// EnrollInCourse grants access to a free course. Enrollment is recorded as a
// zero-amount completed purchase so entitlement checks stay uniform.
func EnrollInCourse(c *fiber.Ctx) error {
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

	if !course.IsFree {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course requires purchase. Use checkout instead.", nil)
	}

	// Enrolling twice is a no-op success
	var existing courseModels.Purchase
	if err := db.Where("user_id = ? AND course_id = ? AND status = ? AND is_deleted = ?",
		userID, courseID, courseModels.PurchaseCompleted, false).First(&existing).Error; err == nil {
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Already enrolled in this course!", existing)
	}

	now := time.Now()
	purchase := courseModels.Purchase{
		UserID:      userID,
		CourseID:    uint(courseID),
		Reference:   uuid.NewString(),
		Status:      courseModels.PurchaseCompleted,
		AmountCents: 0,
		CompletedAt: &now,
	}

	tx := db.Begin()
	if err := tx.Create(&purchase).Error; err != nil {
		tx.Rollback()
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to enroll in course!", nil)
	}
	tx.Commit()

	go utils.SendEnrollmentEmail(user.Email, user.Name, course.Title, purchase.Reference)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Enrolled in course successfully!", purchase)
}

// CheckoutCourse creates a hosted checkout session for a paid course and a
// PENDING purchase tied to the session. The webhook completes it.
func CheckoutCourse(c *fiber.Ctx) error {
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

	if course.IsFree {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "This course is free. Use enroll instead.", nil)
	}

	var existing courseModels.Purchase
	err := db.Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&existing).Error
	if err == nil && existing.Status == courseModels.PurchaseCompleted {
		return middleware.JsonResponse(c, fiber.StatusConflict, false, "Course already purchased!", nil)
	}

	session, sessErr := utils.CreateCheckoutSession(user.Email, course.Title, course.PriceCents)
	if sessErr != nil {
		log.Printf("[CHECKOUT] Failed to create session: %v", sessErr)
		return middleware.JsonResponse(c, fiber.StatusBadGateway, false, "Failed to start checkout. Please try again.", nil)
	}

	if err == nil {
		// Re-checkout of a pending/expired purchase reuses the row
		existing.Status = courseModels.PurchasePending
		existing.AmountCents = course.PriceCents
		existing.CheckoutSessionID = session.ID
		if err := db.Save(&existing).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
			"checkout_url": session.URL,
			"purchase":     existing,
		})
	}

	purchase := courseModels.Purchase{
		UserID:            userID,
		CourseID:          uint(courseID),
		Reference:         uuid.NewString(),
		Status:            courseModels.PurchasePending,
		AmountCents:       course.PriceCents,
		CheckoutSessionID: session.ID,
	}
	if err := db.Create(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to start checkout!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Checkout session created!", fiber.Map{
		"checkout_url": session.URL,
		"purchase":     purchase,
	})
}

// PaymentWebhook reconciles a checkout session with its purchase row. The
// provider may retry deliveries, so a session that is already reconciled
// returns success without touching the row again.
func PaymentWebhook(c *fiber.Ctx) error {
	signature := c.Get("X-Webhook-Signature")
	if !utils.VerifyWebhookSignature(c.Body(), signature) {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Invalid webhook signature!", nil)
	}

	reqData := new(struct {
		SessionID string `json:"session_id"`
		Event     string `json:"event"` // checkout.completed, checkout.expired
	})
	if err := c.BodyParser(reqData); err != nil || reqData.SessionID == "" {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid webhook payload!", nil)
	}

	db := database.Database.Db

	var purchase courseModels.Purchase
	if err := db.Where("checkout_session_id = ? AND is_deleted = ?", reqData.SessionID, false).
		First(&purchase).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "No purchase for this session!", nil)
	}

	switch reqData.Event {
	case "checkout.completed":
		if purchase.Status == courseModels.PurchaseCompleted {
			// Duplicate delivery
			return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchase already reconciled.", nil)
		}
		now := time.Now()
		purchase.Status = courseModels.PurchaseCompleted
		purchase.CompletedAt = &now
		if err := db.Save(&purchase).Error; err != nil {
			return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to reconcile purchase!", nil)
		}

		var buyer models.User
		var course courseModels.Course
		if db.First(&buyer, purchase.UserID).Error == nil && db.First(&course, purchase.CourseID).Error == nil {
			go utils.SendEnrollmentEmail(buyer.Email, buyer.Name, course.Title, purchase.Reference)
		}
		log.Printf("[PAYMENTS] Purchase %s reconciled for user %d course %d", purchase.Reference, purchase.UserID, purchase.CourseID)

	case "checkout.expired":
		if purchase.Status == courseModels.PurchasePending {
			purchase.Status = courseModels.PurchaseExpired
			db.Save(&purchase)
		}

	default:
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown webhook event!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Webhook processed.", nil)
}

// GetMyPurchases lists the user's purchases and enrollments
func GetMyPurchases(c *fiber.Ctx) error {
	userID, ok := c.Locals("userId").(uint)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Unauthorized!", nil)
	}

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = ?", userID, false).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "User not found!", nil)
	}

	var purchases []courseModels.Purchase
	if err := database.Database.Db.Where("user_id = ? AND is_deleted = ?", userID, false).
		Order("created_at desc").Find(&purchases).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch purchases!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Purchases fetched successfully!", fiber.Map{
		"purchases": purchases,
	})
}
